package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты расчёта карты
const (
	ChartOK         = "ok"
	ChartPartial    = "partial"
	ChartInputError = "input_error"
)

// Результаты обращения к кэшу карт
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics метрики сервиса в собственном registry.
// Методы безопасны для nil-получателя: без метрик вызовы ничего не делают.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	charts        *prometheus.CounterVec
	missingBodies *prometheus.CounterVec
	chartCache    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "natal_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "natal_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"path", "method"}),
		charts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "natal_charts_total",
			Help: "Chart calculations by result.",
		}, []string{"result"}),
		missingBodies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "natal_missing_bodies_total",
			Help: "Bodies omitted from a chart because their position was unavailable.",
		}, []string{"body"}),
		chartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "natal_chart_cache_total",
			Help: "Chart cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.charts,
		m.missingBodies,
		m.chartCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(path, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

// ChartComputed учитывает рассчитанную карту и пропущенные в ней тела
func (m *Metrics) ChartComputed(missing []domain.Body) {
	if m == nil {
		return
	}
	if len(missing) == 0 {
		m.charts.WithLabelValues(ChartOK).Inc()
		return
	}
	m.charts.WithLabelValues(ChartPartial).Inc()
	for _, body := range missing {
		m.missingBodies.WithLabelValues(string(body)).Inc()
	}
}

func (m *Metrics) InputError() {
	if m == nil {
		return
	}
	m.charts.WithLabelValues(ChartInputError).Inc()
}

func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.chartCache.WithLabelValues(result).Inc()
}
