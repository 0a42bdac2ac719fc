// Package analysis monta a requisição ao modelo generativo, interpreta a resposta de forma
// tolerante e produz o AnalysisResult final com relatório e fingerprint.
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fakenewsverificaton/verificaton-api/internal/fingerprint"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
	"github.com/fakenewsverificaton/verificaton-api/internal/sanitize"
)

// DefaultMaxPromptChars limita o texto enviado ao modelo
const DefaultMaxPromptChars = 20_000

// Textos do resultado substituto quando a resposta do modelo não é aproveitável
const (
	FallbackHeadline  = "Resultado Inconclusivo"
	FallbackParagraph = "Nao ha base suficiente para uma conclusao definitiva. Recomendamos verificar em fontes confiaveis."
	FallbackWarning   = "Analise baseada apenas no conteudo fornecido. Nao substitui verificacao profissional."
	ParseWarning      = "A resposta do modelo veio em formato inesperado; resultado inconclusivo gerado automaticamente."
	defaultHeadline   = "Resultado"
)

// FallbackScores são os scores do resultado substituto
var FallbackScores = models.Scores{
	FakeProbability:  50,
	VerifiableTruth:  20,
	BiasFraming:      40,
	ManipulationRisk: 30,
}

// Input é o conteúdo efetivo a ser analisado: texto já sanitizado ou mídia
type Input struct {
	InputType models.InputType
	Text      string
	Media     *models.Media
}

// Invoker orquestra a chamada ao modelo
type Invoker struct {
	generator      Generator
	prompts        Prompts
	maxPromptChars int
	now            func() time.Time
	newID          func() string
}

// Option configura o Invoker
type Option func(*Invoker)

// WithPrompts substitui os textos do prompt
func WithPrompts(p Prompts) Option {
	return func(i *Invoker) { i.prompts = p.withDefaults() }
}

// WithClock injeta o relógio (testes)
func WithClock(now func() time.Time) Option {
	return func(i *Invoker) { i.now = now }
}

// WithIDGenerator injeta o gerador de ids (testes)
func WithIDGenerator(newID func() string) Option {
	return func(i *Invoker) { i.newID = newID }
}

// WithMaxPromptChars altera o limite de texto enviado ao modelo
func WithMaxPromptChars(n int) Option {
	return func(i *Invoker) {
		if n > 0 {
			i.maxPromptChars = n
		}
	}
}

// NewInvoker cria um Invoker. generator pode ser nil: nesse caso Analyze retorna ErrNotConfigured.
func NewInvoker(generator Generator, opts ...Option) *Invoker {
	inv := &Invoker{
		generator:      generator,
		prompts:        DefaultPrompts(),
		maxPromptChars: DefaultMaxPromptChars,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Configured indica se há um modelo disponível
func (i *Invoker) Configured() bool {
	return i != nil && i.generator != nil
}

// Analyze chama o modelo e retorna o resultado normalizado.
// Respostas fora do formato viram o resultado substituto (mode=fallback), nunca erro.
func (i *Invoker) Analyze(ctx context.Context, in Input) (*models.AnalysisResult, error) {
	if !i.Configured() {
		return nil, ErrNotConfigured
	}

	req, fp, err := i.buildRequest(in)
	if err != nil {
		return nil, err
	}

	reply, err := i.generator.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelCall, err)
	}

	result, warnings, err := parseReply(reply)
	mode := models.ModeNormal
	if err != nil {
		log.Printf("[Invoker] Resposta do modelo não aproveitável (%d bytes): %v", len(reply), err)
		result = fallbackResult()
		warnings = []string{FallbackWarning, ParseWarning}
		mode = models.ModeFallback
	}

	i.finalize(result, in.InputType, mode, fp, warnings)
	return result, nil
}

func (i *Invoker) buildRequest(in Input) (GenerateRequest, string, error) {
	req := GenerateRequest{SystemInstruction: i.prompts.System}

	if in.Media != nil && len(in.Media.Data) > 0 {
		req.Parts = []Part{
			{MIMEType: in.Media.MIMEType, Data: in.Media.Data},
			{Text: i.prompts.instructionFor(in.InputType)},
		}
		return req, fingerprint.OfBytes(in.Media.Data), nil
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return req, "", ErrEmptyInput
	}
	text = sanitize.Truncate(text, i.maxPromptChars)
	req.Parts = []Part{{Text: i.prompts.instructionFor(in.InputType) + "\n\n" + text}}
	return req, fingerprint.Of(text), nil
}

// finalize preenche os campos controlados pelo servidor e regenera o relatório
func (i *Invoker) finalize(result *models.AnalysisResult, inputType models.InputType, mode models.Mode, fp string, warnings []string) {
	result.OK = true
	result.Meta = models.Meta{
		ID:          i.newID(),
		CreatedAt:   i.now(),
		InputType:   inputType,
		Language:    models.Language,
		Mode:        mode,
		Warnings:    dedupe(warnings),
		Fingerprint: fp,
	}

	result.Scores = result.Scores.Clamp()
	if result.Summary.Headline == "" {
		result.Summary.Headline = defaultHeadline
	}
	if result.Summary.Verdict == "" {
		result.Summary.Verdict = models.VerdictInconclusive
	}
	if result.Claims == nil {
		result.Claims = []models.Claim{}
	}
	if result.Similar.SearchQueries == nil {
		result.Similar.SearchQueries = []string{}
	}
	if result.Similar.ExternalChecks == nil {
		result.Similar.ExternalChecks = []models.ExternalCheck{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}

	result.ReportMarkdown = report.Render(result)
}

func fallbackResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Scores: FallbackScores,
		Summary: models.Summary{
			Headline:     FallbackHeadline,
			OneParagraph: FallbackParagraph,
			Verdict:      models.VerdictInconclusive,
		},
	}
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
