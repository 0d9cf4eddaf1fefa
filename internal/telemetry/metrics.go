package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine is the global engine metrics instance, initialized once at startup.
// Nil when telemetry is disabled (e.g. in unit tests).
var Engine *EngineMetrics

// EngineMetrics holds Prometheus metrics for the validation engine.
type EngineMetrics struct {
	// Validation funnel
	ValidationsTotal *prometheus.CounterVec // outcome: accepted, accepted_approx, rejected, error
	TierResolutions  *prometheus.CounterVec // tier: primary, zone, fallback

	// Geocode cache
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Provider calls
	ProviderRequests *prometheus.CounterVec // result: ok, empty, timeout, http_error, error
	ProviderLatency  prometheus.Histogram
}

// InitEngine creates and registers the engine metrics, and installs them as
// the global instance.
func InitEngine(namespace string) *EngineMetrics {
	if namespace == "" {
		namespace = "tasty"
	}

	m := &EngineMetrics{
		ValidationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "address_validations_total",
				Help:      "Address validation verdicts by outcome",
			},
			[]string{"outcome"},
		),
		TierResolutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "address_validation_tier_resolutions_total",
				Help:      "Which cascade tier produced the matched coordinate",
			},
			[]string{"tier"},
		),
		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geocode_cache_hits_total",
				Help:      "Geocode cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geocode_cache_misses_total",
				Help:      "Geocode cache misses",
			},
		),
		ProviderRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geocode_provider_requests_total",
				Help:      "Outbound geocoder requests by result",
			},
			[]string{"result"},
		),
		ProviderLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "geocode_provider_duration_seconds",
				Help:      "Geocoder request duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2, 4, 8},
			},
		),
	}

	Engine = m
	return m
}
