// Package metrics implements the observability hooks with Prometheus
// collectors.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/flowter/pkg/observability"
)

// Metrics records pipeline, cache and server events. It implements every
// hook interface of the observability package.
type Metrics struct {
	layouts        *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	layoutNodes    prometheus.Histogram

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		layouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowter_layouts_total",
			Help: "Layout runs by mode and result",
		}, []string{"mode", "result"}),
		layoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowter_layout_duration_seconds",
			Help:    "Layout duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}, []string{"mode"}),
		layoutNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowter_layout_nodes",
			Help:    "Nodes placed per layout",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 1000},
		}),
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowter_renders_total",
			Help: "Renders by output format and result",
		}, []string{"format", "result"}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowter_render_duration_seconds",
			Help:    "Render duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"format"}),
		renderBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowter_render_bytes",
			Help:    "Size of rendered outputs in bytes",
			Buckets: prometheus.ExponentialBuckets(512, 4, 8),
		}, []string{"format"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowter_cache_events_total",
			Help: "Cache hits, misses and writes by key type",
		}, []string{"key_type", "event"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowter_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "flowter_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
	}
}

// Register installs m as the pipeline, cache and server hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetServerHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// =============================================================================
// Pipeline
// =============================================================================

func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, mode string, nodeCount, _ int, d time.Duration, err error) {
	m.layouts.WithLabelValues(mode, result(err)).Inc()
	if err != nil {
		return
	}
	m.layoutDuration.WithLabelValues(mode).Observe(d.Seconds())
	m.layoutNodes.Observe(float64(nodeCount))
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	if err != nil {
		return
	}
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	m.renderBytes.WithLabelValues(format).Observe(float64(size))
}

// =============================================================================
// Cache
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

// =============================================================================
// Server
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) { m.inFlight.Inc() }

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.ServerHooks   = (*Metrics)(nil)
)
