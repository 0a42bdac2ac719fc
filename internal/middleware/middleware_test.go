package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/analyze", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestRateLimitBlocksAfterQuota(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	r := newEngine(RateLimit(limiter, "", observability.NewMetrics()))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.Header.Set("X-Forwarded-For", "200.1.1.1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			assert.JSONEq(t, `{"ok":false,"error":"RATE_LIMITED","message":"Muitas requisições. Aguarde um minuto."}`, rec.Body.String())
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

type erroringLimiter struct{}

func (erroringLimiter) Check(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: true}, assert.AnError
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newEngine(RateLimit(erroringLimiter{}, "", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORS([]string{"https://site.com"}))
	r.OPTIONS("/analyze", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://site.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://site.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("Origin", "https://outro.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestMetricsAndTiming(t *testing.T) {
	r := newEngine(RequestTiming(), RequestMetrics(observability.NewMetrics()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestRequestTimingKeepsIncomingRequestID(t *testing.T) {
	r := newEngine(RequestTiming())
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
