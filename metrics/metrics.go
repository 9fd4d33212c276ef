// Package metrics owns the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespaceMetrics = "portfolio"

var (
	registerOnce     sync.Once
	cacheRequests    *prometheus.CounterVec
	cacheInvalidated *prometheus.CounterVec
	cacheLoadErrors  *prometheus.CounterVec
	mutations        *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
)

// MustRegister creates the collectors and registers them together with the Go
// runtime collectors. Call it once at startup; later calls are no-ops.
func MustRegister() {
	registerOnce.Do(func() {
		cacheRequests = registerCounterVec(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespaceMetrics,
				Subsystem: "cache",
				Name:      "requests_total",
				Help:      "Cache lookups by entity and result (hit, stale, miss).",
			},
			[]string{"entity", "result"},
		))
		cacheInvalidated = registerCounterVec(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespaceMetrics,
				Subsystem: "cache",
				Name:      "invalidations_total",
				Help:      "Entity key-set invalidations.",
			},
			[]string{"entity"},
		))
		cacheLoadErrors = registerCounterVec(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespaceMetrics,
				Subsystem: "cache",
				Name:      "load_errors_total",
				Help:      "Backend loads that failed, by entity.",
			},
			[]string{"entity"},
		))
		mutations = registerCounterVec(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespaceMetrics,
				Subsystem: "content",
				Name:      "mutations_total",
				Help:      "Admin write operations by entity, action and result.",
			},
			[]string{"entity", "action", "result"},
		))
		httpRequests = registerCounterVec(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespaceMetrics,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route pattern and status code.",
			},
			[]string{"method", "route", "status"},
		))
		httpDuration = registerHistogramVec(prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespaceMetrics,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		))

		registerRuntimeCollectors()
	})
}

// ObserveCacheResult counts one cache lookup.
func ObserveCacheResult(entity, result string) {
	if cacheRequests == nil {
		return
	}
	cacheRequests.WithLabelValues(normalizeLabel(entity, "unknown"), result).Inc()
}

func RecordInvalidation(entity string) {
	if cacheInvalidated == nil {
		return
	}
	cacheInvalidated.WithLabelValues(normalizeLabel(entity, "unknown")).Inc()
}

func RecordLoadError(entity string) {
	if cacheLoadErrors == nil {
		return
	}
	cacheLoadErrors.WithLabelValues(normalizeLabel(entity, "unknown")).Inc()
}

// RecordMutation counts one write; result is "success", "error" or "rejected".
func RecordMutation(entity, action, result string) {
	if mutations == nil {
		return
	}
	mutations.WithLabelValues(normalizeLabel(entity, "unknown"), normalizeLabel(action, "unknown"), result).Inc()
}

// ObserveHTTPRequest records one served request. route is the router pattern,
// not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if httpRequests == nil || httpDuration == nil {
		return
	}
	route = normalizeLabel(route, "unmatched")
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func registerCounterVec(vec *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return vec
}

func registerHistogramVec(vec *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := prometheus.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return vec
}

func registerRuntimeCollectors() {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
