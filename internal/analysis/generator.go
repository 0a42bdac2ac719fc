package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Part é um pedaço da requisição ao modelo: texto ou mídia inline
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// GenerateRequest agrupa a instrução de sistema e as partes do conteúdo
type GenerateRequest struct {
	SystemInstruction string
	Parts             []Part
}

// Generator é o contrato mínimo com o modelo generativo
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeminiConfig configuração do gerador Gemini
type GeminiConfig struct {
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// DefaultGeminiConfig retorna configuração padrão
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:       "gemini-2.0-flash",
		Timeout:     60 * time.Second,
		Temperature: 0.2,
	}
}

// GeminiGenerator implementa Generator com a API Google Gemini
type GeminiGenerator struct {
	client *genai.Client
	config GeminiConfig
}

// NewGeminiClient cria o cliente da API Gemini. Retorna nil, nil quando a chave está vazia.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}
	return client, nil
}

// NewGeminiGenerator cria um gerador a partir de um cliente já construído
func NewGeminiGenerator(client *genai.Client, cfg GeminiConfig) *GeminiGenerator {
	defaults := DefaultGeminiConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaults.Temperature
	}
	return &GeminiGenerator{client: client, config: cfg}
}

// Generate envia as partes ao modelo e retorna o texto da resposta
func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if len(p.Data) > 0 {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		if strings.TrimSpace(p.Text) != "" {
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
	}
	if len(parts) == 0 {
		return "", ErrEmptyInput
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(g.config.Temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar conteúdo com %s: %w", g.config.Model, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	return resp.Text(), nil
}
