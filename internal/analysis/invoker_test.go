package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsverificaton/verificaton-api/internal/fingerprint"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	lastReq GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestInvoker(gen Generator) *Invoker {
	return NewInvoker(gen,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "id-fixo" }),
	)
}

const validReply = `{
  "scores": {"fakeProbability": 150, "verifiableTruth": -3, "biasFraming": 40, "manipulationRisk": 61.6},
  "summary": {"headline": "Alegação falsa", "oneParagraph": "Não há evidências.", "verdict": "Provavel fake"},
  "claims": [{"claim": "A terra é plana", "assessment": "Falso", "confidence": 0.9}],
  "similar": {"searchQueries": ["terra plana"], "externalChecks": [{"title": "Checagem", "url": "https://aosfatos.org/x", "publisher": "Aos Fatos", "summary": "Falso"}]},
  "recommendations": ["Consulte fontes"],
  "reportMarkdown": "# markdown do modelo"
}`

func TestAnalyzeValidReply(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	inv := newTestInvoker(gen)

	text := "A terra é plana segundo um vídeo viral"
	result, err := inv.Analyze(context.Background(), Input{InputType: models.InputText, Text: text})
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, models.ModeNormal, result.Meta.Mode)
	assert.Equal(t, "id-fixo", result.Meta.ID)
	assert.Equal(t, fixedNow, result.Meta.CreatedAt)
	assert.Equal(t, models.Language, result.Meta.Language)
	assert.Equal(t, fingerprint.Of(text), result.Meta.Fingerprint)

	assert.Equal(t, 100, result.Scores.FakeProbability)
	assert.Equal(t, 0, result.Scores.VerifiableTruth)
	assert.Equal(t, 62, result.Scores.ManipulationRisk)
	assert.Equal(t, models.VerdictFake, result.Summary.Verdict)
	require.Len(t, result.Claims, 1)
	assert.Equal(t, 90.0, result.Claims[0].Confidence)

	assert.NotContains(t, result.ReportMarkdown, "markdown do modelo")
	assert.Contains(t, result.ReportMarkdown, "Alegação falsa")

	require.Len(t, gen.lastReq.Parts, 1)
	assert.Contains(t, gen.lastReq.Parts[0].Text, text)
	assert.NotEmpty(t, gen.lastReq.SystemInstruction)
}

func TestAnalyzeFencedReply(t *testing.T) {
	gen := &fakeGenerator{reply: "Aqui está:\n```json\n" + validReply + "\n```\nObrigado"}
	result, err := newTestInvoker(gen).Analyze(context.Background(), Input{InputType: models.InputText, Text: "texto"})
	require.NoError(t, err)
	assert.Equal(t, models.ModeNormal, result.Meta.Mode)
	assert.Equal(t, "Alegação falsa", result.Summary.Headline)
}

func TestAnalyzeNonJSONReplyFallsBack(t *testing.T) {
	for _, reply := range []string{"não consigo analisar isso", "", "{quebrado", "[1,2,3]"} {
		gen := &fakeGenerator{reply: reply}
		result, err := newTestInvoker(gen).Analyze(context.Background(), Input{InputType: models.InputText, Text: "texto qualquer"})
		require.NoError(t, err, reply)

		assert.Equal(t, models.ModeFallback, result.Meta.Mode, reply)
		assert.Equal(t, models.VerdictInconclusive, result.Summary.Verdict)
		assert.Equal(t, FallbackScores, result.Scores)
		assert.NotEmpty(t, result.Meta.Warnings)
		assert.NotEmpty(t, result.ReportMarkdown)
		assert.NotNil(t, result.Claims)
	}
}

func TestAnalyzeBackfillsMissingFields(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary": {"verdict": "talvez"}}`}
	result, err := newTestInvoker(gen).Analyze(context.Background(), Input{InputType: models.InputText, Text: "texto"})
	require.NoError(t, err)

	assert.Equal(t, models.ModeNormal, result.Meta.Mode)
	assert.Equal(t, "Resultado", result.Summary.Headline)
	assert.Equal(t, models.VerdictInconclusive, result.Summary.Verdict)
	assert.NotNil(t, result.Claims)
	assert.NotNil(t, result.Similar.SearchQueries)
	assert.NotNil(t, result.Similar.ExternalChecks)
	assert.NotNil(t, result.Recommendations)
	assert.NotNil(t, result.Meta.Warnings)
}

func TestAnalyzeLooseTypes(t *testing.T) {
	reply := `{
	  "scores": {"fakeProbability": "85%", "verifiableTruth": "10", "biasFraming": null, "manipulationRisk": "alto"},
	  "summary": {"headline": "X", "verdict": "PROVÁVEL FAKE"},
	  "similar": {"searchQueries": "busca única", "externalChecks": ["Lupa checou em 2022"]},
	  "recommendations": ["a", 3, "b"],
	  "warnings": ["conteúdo parcial"]
	}`
	result, err := newTestInvoker(&fakeGenerator{reply: reply}).Analyze(context.Background(), Input{InputType: models.InputText, Text: "t"})
	require.NoError(t, err)

	assert.Equal(t, 85, result.Scores.FakeProbability)
	assert.Equal(t, 10, result.Scores.VerifiableTruth)
	assert.Equal(t, 0, result.Scores.ManipulationRisk)
	assert.Equal(t, models.VerdictFake, result.Summary.Verdict)
	assert.Equal(t, []string{"busca única"}, result.Similar.SearchQueries)
	require.Len(t, result.Similar.ExternalChecks, 1)
	assert.Equal(t, "Lupa checou em 2022", result.Similar.ExternalChecks[0].Title)
	assert.Equal(t, []string{"a", "b"}, result.Recommendations)
	assert.Equal(t, []string{"conteúdo parcial"}, result.Meta.Warnings)
}

func TestAnalyzeMedia(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	media := &models.Media{MIMEType: "image/png", Data: []byte{1, 2, 3}}

	result, err := newTestInvoker(gen).Analyze(context.Background(), Input{InputType: models.InputImage, Media: media})
	require.NoError(t, err)

	require.Len(t, gen.lastReq.Parts, 2)
	assert.Equal(t, "image/png", gen.lastReq.Parts[0].MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, gen.lastReq.Parts[0].Data)
	assert.Equal(t, DefaultPrompts().Image, gen.lastReq.Parts[1].Text)
	assert.Equal(t, fingerprint.OfBytes(media.Data), result.Meta.Fingerprint)
	assert.Equal(t, models.InputImage, result.Meta.InputType)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := newTestInvoker(nil).Analyze(context.Background(), Input{InputType: models.InputText, Text: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	gen := &fakeGenerator{err: errors.New("quota excedida")}
	_, err = newTestInvoker(gen).Analyze(context.Background(), Input{InputType: models.InputText, Text: "x"})
	assert.ErrorIs(t, err, ErrModelCall)
	assert.Contains(t, err.Error(), "quota excedida")

	gen = &fakeGenerator{reply: validReply}
	_, err = newTestInvoker(gen).Analyze(context.Background(), Input{InputType: models.InputText, Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, gen.calls)
}

func TestAnalyzeTruncatesPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	inv := NewInvoker(gen, WithMaxPromptChars(10))
	_, err := inv.Analyze(context.Background(), Input{InputType: models.InputText, Text: strings.Repeat("x", 50)})
	require.NoError(t, err)
	assert.NotContains(t, gen.lastReq.Parts[0].Text, strings.Repeat("x", 11))
}

func TestWithPromptsKeepsDefaults(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	inv := NewInvoker(gen, WithPrompts(Prompts{System: "instrução customizada"}))
	_, err := inv.Analyze(context.Background(), Input{InputType: models.InputText, Text: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "instrução customizada", gen.lastReq.SystemInstruction)
	assert.True(t, strings.HasPrefix(gen.lastReq.Parts[0].Text, DefaultPrompts().Text))
}

func TestSelfReference(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	inv := newTestInvoker(gen)

	result := inv.SelfReference(models.InputLink, "https://fakenewszeiton.com.br/sobre")
	assert.Zero(t, gen.calls)
	assert.Equal(t, models.ModeSelfReference, result.Meta.Mode)
	assert.Equal(t, 0, result.Scores.FakeProbability)
	assert.Equal(t, 100, result.Scores.VerifiableTruth)
	assert.Equal(t, models.VerdictTrue, result.Summary.Verdict)
	assert.Equal(t, "https://fakenewszeiton.com.br/sobre", result.Meta.SourceURL)
	assert.Contains(t, result.ReportMarkdown, "Site oficial")
}
