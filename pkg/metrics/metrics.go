// Package metrics provides Prometheus metric definitions for the gateway's
// auth boundary: cache occupancy (the one observable side-channel §4.C
// allows), auth outcome counts, and introspection latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Auth holds the Prometheus collectors for the authentication boundary.
// All metrics share the "prgateway" namespace.
type Auth struct {
	CacheSize     prometheus.Gauge
	CacheCapacity prometheus.Gauge

	OutcomesTotal *prometheus.CounterVec

	IntrospectDurationSeconds prometheus.Histogram

	registry *prometheus.Registry
}

// NewAuth builds an Auth metrics set backed by its own registry, so the
// gateway's /metrics endpoint never collides with a host process's
// default registry.
func NewAuth() *Auth {
	reg := prometheus.NewRegistry()

	m := &Auth{
		registry: reg,

		CacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "prgateway",
			Subsystem: "token_cache",
			Name:      "size",
			Help:      "Current number of entries in the token validation cache.",
		}),
		CacheCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "prgateway",
			Subsystem: "token_cache",
			Name:      "capacity",
			Help:      "Configured maximum number of entries in the token validation cache.",
		}),
		OutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prgateway",
			Subsystem: "auth",
			Name:      "outcomes_total",
			Help:      "Total auth-gate outcomes, labeled by outcome kind.",
		}, []string{"outcome"}),
		IntrospectDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prgateway",
			Subsystem: "auth",
			Name:      "introspect_duration_seconds",
			Help:      "Duration of upstream introspection calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.CacheSize, m.CacheCapacity, m.OutcomesTotal, m.IntrospectDurationSeconds)
	return m
}

// Registry exposes the backing registry for mounting a /metrics handler.
func (m *Auth) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome labels for OutcomesTotal. Token values are never attached as
// label values (§3 invariant: a token is never logged or exposed).
const (
	OutcomeCacheHit         = "cache_hit"
	OutcomeIntrospected     = "introspected"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeInvalidToken     = "invalid_token"
	OutcomeTransportFailure = "transport_failure"
)

// ObserveIntrospectDuration records the wall-clock time an introspection
// call took, measured from start.
func (m *Auth) ObserveIntrospectDuration(start time.Time) {
	m.IntrospectDurationSeconds.Observe(time.Since(start).Seconds())
}

// SetCacheStats publishes the cache's size/capacity side-channel (§4.C
// Observable state) as gauges.
func (m *Auth) SetCacheStats(size, capacity int) {
	m.CacheSize.Set(float64(size))
	m.CacheCapacity.Set(float64(capacity))
}
