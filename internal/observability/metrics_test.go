package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveAnalysis("text", "normal", "Inconclusivo", time.Second)
	m.ObserveAnalysis("text", "normal", "Inconclusivo", time.Second)
	m.ObserveExtraction("web", "extracted")
	m.ModelFallback()
	m.SideEffectFailed("persist")
	m.RateLimited("/api/v1/analyze")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("text", "normal", "Inconclusivo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractionsTotal.WithLabelValues("web", "extracted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sideEffectFailure.WithLabelValues("persist")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("text", "normal", "x", time.Second)
		m.ObserveRequest("GET", "/", 200, time.Millisecond)
		m.ModelFallback()
		m.CaptchaFailed()
	})
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.CaptchaFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "verificaton_captcha_failures_total 1"))
}
