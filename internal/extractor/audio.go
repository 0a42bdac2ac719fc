package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/sanitize"
)

// audioMinChars é o mínimo de fala transcrita para seguir com a análise
const audioMinChars = 20

// ErrTranscriberNotConfigured indica ausência de backend de transcrição
var ErrTranscriberNotConfigured = errors.New("transcrição de áudio não configurada")

// Transcriber converte áudio em texto
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// AudioExtractor delega o áudio em base64 a um Transcriber
type AudioExtractor struct {
	transcriber Transcriber
	timeout     time.Duration
	maxChars    int
}

// NewAudioExtractor cria o extrator de áudio
func NewAudioExtractor(transcriber Transcriber, timeout time.Duration) *AudioExtractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AudioExtractor{transcriber: transcriber, timeout: timeout, maxChars: DefaultMaxChars}
}

// Extract decodifica o data URL e transcreve o áudio
func (a *AudioExtractor) Extract(ctx context.Context, dataURL string) models.ExtractionResult {
	media, err := models.ParseDataURL(dataURL)
	if err != nil || !media.IsAudio() {
		return models.ExtractionFailure(MsgAudioInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.transcriber.Transcribe(ctx, media.Data, media.MIMEType)
	if err != nil {
		log.Printf("[Audio] Falha na transcrição (%s, %d bytes): %v", media.MIMEType, len(media.Data), err)
		return models.ExtractionFailure(MsgAudioFailed)
	}

	text = sanitize.CollapseWhitespace(text)
	if runeLen(text) < audioMinChars {
		return models.ExtractionFailure(MsgAudioTooShort)
	}

	warnings := []string{WarnAudioTranscribed}
	text, truncated := capText(text, a.maxChars)
	if truncated {
		warnings = append(warnings, WarnTranscriptTruncated)
	}

	log.Printf("[Audio] Transcrição obtida: %d caracteres", runeLen(text))
	return models.ExtractionResult{
		OK:       true,
		Text:     text,
		Title:    "Transcrição de áudio",
		Warnings: warnings,
	}
}

const transcribePrompt = "Transcreva literalmente a fala deste áudio, no idioma original. Retorne apenas a transcrição, sem comentários. Se não houver fala, retorne uma resposta vazia."

// GeminiTranscriber implementa Transcriber com o Gemini
type GeminiTranscriber struct {
	client *genai.Client
	model  string
}

// NewGeminiTranscriber cria o transcritor
func NewGeminiTranscriber(client *genai.Client, model string) *GeminiTranscriber {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiTranscriber{client: client, model: model}
}

// Transcribe envia o áudio inline e retorna o texto falado
func (g *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrTranscriberNotConfigured
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(audio, mimeType),
		genai.NewPartFromText(transcribePrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao transcrever com %s: %w", g.model, err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
