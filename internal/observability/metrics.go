package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "verificaton"

// Metrics agrupa os coletores Prometheus do serviço.
// Um *Metrics nil é válido e não registra nada.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	analysesTotal     *prometheus.CounterVec
	analysisDuration  *prometheus.HistogramVec
	extractionsTotal  *prometheus.CounterVec
	modelFallbacks    prometheus.Counter
	sideEffectFailure *prometheus.CounterVec
	rateLimited       *prometheus.CounterVec
	captchaFailures   prometheus.Counter
}

// NewMetrics cria um registro próprio com os coletores do serviço e do runtime Go
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de requisições HTTP",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		analysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Análises concluídas",
		}, []string{"input_type", "mode", "verdict"}),
		analysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duração do pipeline de análise",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90},
		}, []string{"input_type"}),
		extractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Tentativas de extração por extrator e resultado",
		}, []string{"extractor", "outcome"}),
		modelFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_fallbacks_total",
			Help:      "Respostas do modelo substituídas pelo resultado padrão",
		}),
		sideEffectFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Falhas de persistência, tendências e eventos",
		}, []string{"task"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requisições bloqueadas pelo rate limit",
		}, []string{"route"}),
		captchaFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captcha_failures_total",
			Help:      "Verificações anti-bot recusadas",
		}),
	}
}

// Handler expõe o registro no formato Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry retorna o registro subjacente
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveAnalysis(inputType, mode, verdict string, d time.Duration) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(inputType, mode, verdict).Inc()
	m.analysisDuration.WithLabelValues(inputType).Observe(d.Seconds())
}

func (m *Metrics) ObserveExtraction(extractor, outcome string) {
	if m == nil {
		return
	}
	m.extractionsTotal.WithLabelValues(extractor, outcome).Inc()
}

func (m *Metrics) ModelFallback() {
	if m == nil {
		return
	}
	m.modelFallbacks.Inc()
}

func (m *Metrics) SideEffectFailed(task string) {
	if m == nil {
		return
	}
	m.sideEffectFailure.WithLabelValues(task).Inc()
}

func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

func (m *Metrics) CaptchaFailed() {
	if m == nil {
		return
	}
	m.captchaFailures.Inc()
}
