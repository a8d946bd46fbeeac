package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface by recording Prometheus
// metrics. Metrics are registered on the Registerer passed to
// [NewPrometheusHooks], so tests can use a private registry.
type PrometheusHooks struct {
	aggregateTotal    *prometheus.CounterVec
	aggregateDuration prometheus.Histogram
	categories        prometheus.Histogram
	renderTotal       *prometheus.CounterVec
	renderDuration    prometheus.Histogram
	cacheEvents       *prometheus.CounterVec
	cacheBytes        prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	redraws           prometheus.Counter
	lookups           *prometheus.CounterVec
}

// NewPrometheusHooks creates hooks whose metrics are registered on reg.
// Registering twice on the same registry panics, as with promauto.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		aggregateTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linechart_aggregate_total",
				Help: "Total number of dataset aggregations",
			},
			[]string{"status"},
		),
		aggregateDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linechart_aggregate_duration_milliseconds",
				Help:    "Aggregation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),
		categories: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linechart_aggregate_categories",
				Help:    "Number of distinct categories per aggregation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		renderTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linechart_render_total",
				Help: "Total number of chart renders",
			},
			[]string{"formats", "status"},
		),
		renderDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linechart_render_duration_milliseconds",
				Help:    "Render duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
			},
		),
		cacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linechart_cache_events_total",
				Help: "Cache hits, misses and writes by key type",
			},
			[]string{"key_type", "event"},
		),
		cacheBytes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "linechart_cache_written_bytes_total",
				Help: "Total bytes written to the cache",
			},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linechart_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linechart_http_request_duration_milliseconds",
				Help:    "HTTP request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"route"},
		),
		redraws: f.NewCounter(
			prometheus.CounterOpts{
				Name: "linechart_redraws_total",
				Help: "Total number of full chart rebuilds",
			},
		),
		lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linechart_nearest_lookups_total",
				Help: "Nearest-point lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (p *PrometheusHooks) OnAggregateStart(context.Context, int) {}

func (p *PrometheusHooks) OnAggregateComplete(_ context.Context, categories int, d time.Duration, err error) {
	p.aggregateTotal.WithLabelValues(status(err)).Inc()
	p.aggregateDuration.Observe(millis(d))
	if err == nil {
		p.categories.Observe(float64(categories))
	}
}

func (p *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (p *PrometheusHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	p.renderTotal.WithLabelValues(strings.Join(formats, ","), status(err)).Inc()
	p.renderDuration.Observe(millis(d))
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(route).Observe(millis(d))
}

func (p *PrometheusHooks) OnRedraw(int) {
	p.redraws.Inc()
}

func (p *PrometheusHooks) OnLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	p.lookups.WithLabelValues(outcome).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
