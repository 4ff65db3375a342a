package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/tagcloud/pkg/observability"
)

// metricNamespace prefixes every exported metric.
const metricNamespace = "tagcloud"

// Stage and status label values.
const (
	stageRead   = "read"
	stageLayout = "layout"
	stageRender = "render"

	statusOK    = "ok"
	statusError = "error"
)

var (
	// latencyBuckets cover sub-millisecond cache hits up to slow raster
	// renders of large clouds.
	latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

	// sizeBuckets count words.
	sizeBuckets = []float64{1, 5, 10, 25, 50, 100, 150, 250, 500, 1000}
)

// Metrics records pipeline, cache, and HTTP metrics in its own Prometheus
// registry. It implements [observability.PipelineHooks] and
// [observability.CacheHooks].
type Metrics struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageTotal    *prometheus.CounterVec
	wordsRead     prometheus.Histogram
	wordsPlaced   prometheus.Histogram
	spiralSteps   prometheus.Histogram

	cacheRequests *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	inFlight     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   latencyBuckets,
		}, []string{"stage", "status"}),
		stageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: "pipeline",
			Name:      "stage_total",
			Help:      "Completed pipeline stages.",
		}, []string{"stage", "status"}),
		wordsRead: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: "pipeline",
			Name:      "words_read",
			Help:      "Raw words read per request, before filtering.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		wordsPlaced: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: "pipeline",
			Name:      "words_placed",
			Help:      "Words placed per computed layout.",
			Buckets:   sizeBuckets,
		}),
		spiralSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: "pipeline",
			Name:      "spiral_steps",
			Help:      "Spiral candidates tried per computed layout.",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache lookups by key type and result.",
		}, []string{"type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   latencyBuckets,
		}, []string{"route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.stageDuration, m.stageTotal,
		m.wordsRead, m.wordsPlaced, m.spiralSteps,
		m.cacheRequests, m.cacheBytes,
		m.httpRequests, m.httpDuration, m.inFlight,
	)
	return m
}

// Registry returns the registry the metrics are registered in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns the bundle to pass to [pipeline.WithHooks].
func (m *Metrics) Hooks() observability.Hooks {
	return observability.Hooks{Pipeline: m, Cache: m}
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (m *Metrics) OnReadStart(context.Context, string) {}

func (m *Metrics) OnReadComplete(_ context.Context, _ string, words int, d time.Duration, err error) {
	m.observeStage(stageRead, d, err)
	if err == nil {
		m.wordsRead.Observe(float64(words))
	}
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, placed, steps int, d time.Duration, err error) {
	m.observeStage(stageLayout, d, err)
	if err == nil {
		m.wordsPlaced.Observe(float64(placed))
		m.spiralSteps.Observe(float64(steps))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.observeStage(stageRender, d, err)
}

func (m *Metrics) observeStage(stage string, d time.Duration, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	m.stageDuration.WithLabelValues(stage, status).Observe(d.Seconds())
	m.stageTotal.WithLabelValues(stage, status).Inc()
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// =============================================================================
// HTTP
// =============================================================================

// observeRequest records one served request. route is the chi route pattern,
// which keeps label cardinality bounded.
func (m *Metrics) observeRequest(route string, code int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)
