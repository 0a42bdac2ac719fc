package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	calls  []models.AnalysisRequest
	result *models.AnalysisResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	s.calls = append(s.calls, req)
	return s.result, s.err
}

func sampleResult() *models.AnalysisResult {
	result := &models.AnalysisResult{
		OK:      true,
		Meta:    models.Meta{ID: "abc", InputType: models.InputText, Language: models.Language, Mode: models.ModeNormal, Warnings: []string{}},
		Scores:  models.Scores{FakeProbability: 80, VerifiableTruth: 10, BiasFraming: 50, ManipulationRisk: 70},
		Summary: models.Summary{Headline: "Vacina com chip", OneParagraph: "Sem evidência.", Verdict: models.VerdictFake},
		Claims:  []models.Claim{{Claim: "Vacinas têm chip", Assessment: "Falso", Confidence: 90}},
	}
	result.ReportMarkdown = report.Render(result)
	return result
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeType = string(models.InputText)
		analyzeFormat = formatMarkdown
		renderFormat = formatMarkdown
		trendsLimit = 10
		trendsJSON = false
	}()
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func setup(t *testing.T, a Analyzer, ts storage.TrendStore) {
	t.Helper()
	Configure(a, ts)
	t.Cleanup(func() { Configure(nil, nil) })
}

func TestAnalyzePrintsMarkdown(t *testing.T) {
	stub := &stubAnalyzer{result: sampleResult()}
	setup(t, stub, nil)

	out, err := run(t, "analyze", "Vacina tem chip")
	require.NoError(t, err)
	assert.Contains(t, out, "Vacina com chip")
	require.Len(t, stub.calls, 1)
	assert.Equal(t, models.InputText, stub.calls[0].InputType)
	assert.Equal(t, "Vacina tem chip", stub.calls[0].Content)
}

func TestAnalyzeJSONOutput(t *testing.T) {
	setup(t, &stubAnalyzer{result: sampleResult()}, nil)

	out, err := run(t, "analyze", "--format", "json", "texto")
	require.NoError(t, err)
	var decoded models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "abc", decoded.Meta.ID)
}

func TestAnalyzeImageFromFile(t *testing.T) {
	stub := &stubAnalyzer{result: sampleResult()}
	setup(t, stub, nil)

	path := filepath.Join(t.TempDir(), "print.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	_, err := run(t, "analyze", "-t", "image", "@"+path)
	require.NoError(t, err)
	require.Len(t, stub.calls, 1)
	content := stub.calls[0].Content
	assert.True(t, strings.HasPrefix(content, "data:image/png;base64,"), content)

	media, err := models.ParseDataURL(content)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), media.Data)
}

func TestAnalyzeErrors(t *testing.T) {
	setup(t, &stubAnalyzer{err: models.NewAPIError(models.ErrKindServerMisconfig, models.MsgMisconfigured, nil)}, nil)

	_, err := run(t, "analyze", "texto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_MISCONFIG")

	_, err = run(t, "analyze", "-t", "video", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), models.MsgInputTypeInvalid)

	_, err = run(t, "analyze")
	assert.Error(t, err)
}

func TestRenderRegeneratesReport(t *testing.T) {
	result := sampleResult()
	result.ReportMarkdown = "desatualizado"
	data, err := json.Marshal(result)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := run(t, "render", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "desatualizado")
	assert.Contains(t, out, "Vacina com chip")

	out, err = run(t, "render", "--format", "html", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<h")
}

func TestTrendsCommand(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.InsertTrend(context.Background(), &models.TrendItem{
		ID:                   "t1",
		Title:                "Boato do pix",
		Reason:               "Circulando",
		Fingerprint:          "fp1",
		SampleClaims:         []models.Claim{},
		Occurrences:          3,
		ScoreFakeProbability: 85,
		LastSeen:             time.Now(),
	}))
	setup(t, nil, store)

	out, err := run(t, "trends")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Boato do pix (fake 85%, 3x)")

	out, err = run(t, "trends", "--json", "-n", "5")
	require.NoError(t, err)
	var items []models.TrendItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 1)
}

func TestTrendsWithoutStore(t *testing.T) {
	setup(t, nil, nil)
	_, err := run(t, "trends")
	assert.Error(t, err)
}
