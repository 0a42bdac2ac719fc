package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/captcha"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
	calls  []models.AnalysisRequest
}

func (s *stubAnalyzer) Analyze(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	s.calls = append(s.calls, req)
	return s.result, s.err
}

type stubVerifier struct {
	ok     bool
	tokens []string
}

func (s *stubVerifier) Verify(_ context.Context, token, _ string) captcha.Result {
	s.tokens = append(s.tokens, token)
	return captcha.Result{Success: s.ok}
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	return resp
}

func analyzeEngine(h *AnalyzeHandler) *gin.Engine {
	r := gin.New()
	r.POST("/analyze", h.Analyze)
	return r
}

func TestAnalyzeSuccess(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.AnalysisResult{OK: true, Meta: models.Meta{ID: "abc"}}}
	verifier := &stubVerifier{ok: true}
	r := analyzeEngine(NewAnalyzeHandler(analyzer, verifier, nil, 0))

	rec := perform(r, http.MethodPost, "/analyze", `{"inputType":"text","content":"Vacina tem chip","turnstileToken":"tok"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.OK)
	assert.Equal(t, "abc", result.Meta.ID)
	require.Len(t, analyzer.calls, 1)
	assert.Equal(t, models.InputText, analyzer.calls[0].InputType)
	assert.Equal(t, []string{"tok"}, verifier.tokens)
}

func TestAnalyzeValidationMessages(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"tipo ausente", `{"content":"x"}`, models.MsgInputTypeRequired},
		{"tipo inválido", `{"inputType":"video","content":"x"}`, models.MsgInputTypeInvalid},
		{"conteúdo ausente", `{"inputType":"text"}`, models.MsgContentEmpty},
		{"json inválido", `{"inputType":`, models.MsgInvalidData},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			analyzer := &stubAnalyzer{}
			r := analyzeEngine(NewAnalyzeHandler(analyzer, nil, nil, 0))

			rec := perform(r, http.MethodPost, "/analyze", test.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, models.ErrKindValidation, resp.Error)
			assert.Equal(t, test.message, resp.Message)
			assert.Empty(t, analyzer.calls)
		})
	}
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	analyzer := &stubAnalyzer{}
	r := analyzeEngine(NewAnalyzeHandler(analyzer, nil, nil, 10))

	body := `{"inputType":"text","content":"` + strings.Repeat("a", bodyOverhead+100) + `"}`
	rec := perform(r, http.MethodPost, "/analyze", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, models.ErrKindTooLarge, decodeError(t, rec).Error)
	assert.Empty(t, analyzer.calls)
}

func TestAnalyzeCaptchaFailure(t *testing.T) {
	analyzer := &stubAnalyzer{}
	r := analyzeEngine(NewAnalyzeHandler(analyzer, &stubVerifier{ok: false}, nil, 0))

	rec := perform(r, http.MethodPost, "/analyze", `{"inputType":"text","content":"x"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, models.ErrKindCaptchaFailed, resp.Error)
	assert.Equal(t, models.MsgCaptchaFailed, resp.Message)
	assert.Empty(t, analyzer.calls)
}

func TestAnalyzePipelineErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   models.ErrorKind
	}{
		{models.NewAPIError(models.ErrKindServerMisconfig, models.MsgMisconfigured, nil), http.StatusServiceUnavailable, models.ErrKindServerMisconfig},
		{models.NewAPIError(models.ErrKindExtractionFailed, models.MsgExtractionEmpty, nil), http.StatusUnprocessableEntity, models.ErrKindExtractionFailed},
		{assert.AnError, http.StatusInternalServerError, models.ErrKindAnalyzeFailed},
	}

	for _, test := range tests {
		r := analyzeEngine(NewAnalyzeHandler(&stubAnalyzer{err: test.err}, nil, nil, 0))
		rec := perform(r, http.MethodPost, "/analyze", `{"inputType":"link","content":"https://site.com/a"}`)
		assert.Equal(t, test.status, rec.Code)
		assert.Equal(t, test.kind, decodeError(t, rec).Error)
	}
}

func TestGetResultFormats(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.InsertAnalysis(context.Background(), &models.AnalysisRecord{
		ID:             "abc",
		Headline:       "Manchete",
		ReportMarkdown: "# Relatório\n\nTexto **forte**",
		Claims:         []models.Claim{},
		CreatedAt:      time.Now(),
	}))

	r := gin.New()
	r.GET("/results/:id", NewResultsHandler(store).GetResult)

	rec := perform(r, http.MethodGet, "/results/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var record models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "Manchete", record.Headline)

	rec = perform(r, http.MethodGet, "/results/abc?format=html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<strong>forte</strong>")

	rec = perform(r, http.MethodGet, "/results/abc?format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "forte")
	assert.NotContains(t, rec.Body.String(), "**")

	rec = perform(r, http.MethodGet, "/results/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.ErrKindNotFound, decodeError(t, rec).Error)
}

func trendsEngine(h *TrendsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/trends", h.List)
	r.POST("/alerts/suggest", h.Suggest)
	return r
}

func TestSuggestAndList(t *testing.T) {
	store := storage.NewMemoryStore()
	h := NewTrendsHandler(store, &stubVerifier{ok: true}, nil)
	h.now = func() time.Time { return time.Unix(1700000000, 0) }
	r := trendsEngine(h)

	rec := perform(r, http.MethodPost, "/alerts/suggest", `{"title":"  Boato do pix  ","description":"Circulando no WhatsApp"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var saved SuggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.True(t, saved.OK)
	assert.Equal(t, models.MsgSuggestionSaved, saved.Message)

	rec = perform(r, http.MethodGet, "/trends", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list TrendsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, "Boato do pix", item.Title)
	assert.Equal(t, 1, item.Occurrences)
	assert.Equal(t, 0, item.ScoreFakeProbability)
	assert.True(t, strings.HasPrefix(item.Fingerprint, "suggest:"))
}

func TestSuggestValidation(t *testing.T) {
	r := trendsEngine(NewTrendsHandler(storage.NewMemoryStore(), nil, nil))

	rec := perform(r, http.MethodPost, "/alerts/suggest", `{"title":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.MsgTitleTooShort, decodeError(t, rec).Message)

	rec = perform(r, http.MethodPost, "/alerts/suggest", `{"title":"`+strings.Repeat("t", 501)+`"}`)
	assert.Equal(t, models.MsgTitleTooLong, decodeError(t, rec).Message)

	rec = perform(r, http.MethodPost, "/alerts/suggest", `{"title":"Boato","description":"`+strings.Repeat("d", 2001)+`"}`)
	assert.Equal(t, models.MsgDescriptionLong, decodeError(t, rec).Message)
}

func TestSuggestCaptchaFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	r := trendsEngine(NewTrendsHandler(store, &stubVerifier{ok: false}, nil))

	rec := perform(r, http.MethodPost, "/alerts/suggest", `{"title":"Boato do pix"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	items, err := store.ListTrends(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

type failingTrendStore struct {
	storage.TrendStore
}

func (failingTrendStore) InsertTrend(context.Context, *models.TrendItem) error {
	return assert.AnError
}

func (failingTrendStore) ListTrends(context.Context, int) ([]models.TrendItem, error) {
	return nil, assert.AnError
}

func TestTrendsStoreFailures(t *testing.T) {
	r := trendsEngine(NewTrendsHandler(failingTrendStore{}, nil, nil))

	rec := perform(r, http.MethodPost, "/alerts/suggest", `{"title":"Boato do pix"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, models.MsgSuggestionFailed, decodeError(t, rec).Message)

	rec = perform(r, http.MethodGet, "/trends", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealthEndpoints(t *testing.T) {
	r := gin.New()
	healthy := NewHealthHandler(pinger{}, false)
	broken := NewHealthHandler(pinger{err: assert.AnError}, true)
	r.GET("/liveness", healthy.Liveness)
	r.GET("/readiness", healthy.Readiness)
	r.GET("/health", healthy.Health)
	r.GET("/broken/readiness", broken.Readiness)
	r.GET("/broken/health", broken.Health)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/liveness", "").Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/readiness", "").Code)

	rec := perform(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_configured", resp.Checks["gemini"])

	assert.Equal(t, http.StatusServiceUnavailable, perform(r, http.MethodGet, "/broken/readiness", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, perform(r, http.MethodGet, "/broken/health", "").Code)
}
