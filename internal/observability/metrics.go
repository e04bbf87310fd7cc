package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/genealogy-backend/internal/platform/envutil"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	apiErrors   *prometheus.CounterVec

	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec

	cacheLookups *prometheus.CounterVec
}

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "genealogy",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "genealogy",
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served.",
		}),
		apiErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Name:      "api_errors_total",
			Help:      "Error responses by route and envelope code.",
		}, []string{"route", "code"}),
		storeOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Name:      "store_operations_total",
			Help:      "Store commands and traversals by operation and outcome.",
		}, []string{"op", "outcome"}),
		storeLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "genealogy",
			Name:      "store_operation_duration_seconds",
			Help:      "Store command and traversal latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Name:      "view_cache_lookups_total",
			Help:      "Read-view cache lookups by view and result.",
		}, []string{"view", "result"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

// ObserveAPIError counts one error envelope, e.g. code "not_found" or "store_failure".
func (m *Metrics) ObserveAPIError(route, code string) {
	if m == nil {
		return
	}
	m.apiErrors.WithLabelValues(route, code).Inc()
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveStore records one store call. outcome is "ok", "not_found", "invalid" or "error".
func (m *Metrics) ObserveStore(op, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, outcome).Inc()
	m.storeLatency.WithLabelValues(op).Observe(dur.Seconds())
}

// ObserveCache records a view cache lookup. result is "hit", "miss" or "error".
func (m *Metrics) ObserveCache(view, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(view, result).Inc()
}
