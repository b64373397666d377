package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the analytics service.
type Metrics struct {
	IndicatorRequests prometheus.Counter
	IndicatorErrors   prometheus.Counter
	ComputeDur        prometheus.Histogram

	LevelRequests prometheus.Counter
	LevelErrors   prometheus.Counter

	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	ProviderFailures *prometheus.CounterVec // labels: provider
	DemoFallbacks    prometheus.Counter

	SummariesRecorded prometheus.Counter
	RecorderDrops     prometheus.Counter

	StreamClients prometheus.Gauge

	registry *prometheus.Registry
}

// New registers and returns all metrics on a fresh registry, so tests
// can create Metrics repeatedly without duplicate-registration panics.
func New() *Metrics {
	return NewWith(prometheus.NewRegistry())
}

// NewWith registers all metrics on the given registry.
func NewWith(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		IndicatorRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_indicator_requests_total",
			Help: "Indicator bundle computations requested",
		}),
		IndicatorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_indicator_errors_total",
			Help: "Indicator computations rejected (short or malformed input)",
		}),
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "analytics_indicator_compute_duration_seconds",
			Help:    "Indicator engine compute latency per request",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),

		LevelRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_level_requests_total",
			Help: "Level summary pipeline runs requested",
		}),
		LevelErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_level_errors_total",
			Help: "Level summary pipeline failures",
		}),

		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_candle_cache_hits_total",
			Help: "Candle cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_candle_cache_misses_total",
			Help: "Candle cache misses",
		}),
		ProviderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_provider_failures_total",
			Help: "Candle provider failures by provider",
		}, []string{"provider"}),
		DemoFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_demo_fallbacks_total",
			Help: "Requests served from the demo candle generator",
		}),

		SummariesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_summaries_recorded_total",
			Help: "Level summaries persisted to the audit store",
		}),
		RecorderDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analytics_recorder_drops_total",
			Help: "Summaries dropped because the recorder queue was full",
		}),

		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "analytics_stream_clients",
			Help: "Connected level-stream websocket clients",
		}),
	}

	reg.MustRegister(
		m.IndicatorRequests, m.IndicatorErrors, m.ComputeDur,
		m.LevelRequests, m.LevelErrors,
		m.CacheHits, m.CacheMisses, m.ProviderFailures, m.DemoFallbacks,
		m.SummariesRecorded, m.RecorderDrops,
		m.StreamClients,
	)
	m.registry = reg
	return m
}

// Handler returns the /metrics HTTP handler for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
