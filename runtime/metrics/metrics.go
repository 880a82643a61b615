// Package metrics exposes the engine's Prometheus instrumentation:
// dispatch/project call counts, normalize step counts, and matcher
// backtrack depth. Grounded on metrics/prometheus.go's
// GlobalMetricsRegistry pattern from
// github.com/open-policy-agent/opa/metrics, generalized from OPA's
// HTTP-server-scoped registry to this embeddable engine's
// dispatch/project/normalize operations.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// GlobalRegistry is the process-wide Prometheus registry singleton.
var GlobalRegistry *prometheus.Registry

var (
	// DispatchTotal counts dispatch(universe, action) calls.
	DispatchTotal prometheus.Counter
	// ProjectTotal counts project(universe, part) calls.
	ProjectTotal prometheus.Counter
	// NormalizeSteps observes the number of rewrite steps a single
	// normalize run took before reaching a fixed point.
	NormalizeSteps prometheus.Histogram
	// BacktrackAttempts observes the number of sequence-variable split
	// trials the matcher spent on a single rewrite step.
	BacktrackAttempts prometheus.Histogram
)

func init() {
	Reset()
}

// Reset rebuilds GlobalRegistry and every metric from scratch. Needed
// by tests that construct multiple runtimes in one process and would
// otherwise hit Prometheus's duplicate-collector panic on re-registration.
func Reset() {
	GlobalRegistry = prometheus.NewRegistry()

	DispatchTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "syma",
		Subsystem: "runtime",
		Name:      "dispatch_total",
		Help:      "Total number of dispatch(universe, action) calls.",
	})
	ProjectTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "syma",
		Subsystem: "runtime",
		Name:      "project_total",
		Help:      "Total number of project(universe, part) calls.",
	})
	NormalizeSteps = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "syma",
		Subsystem: "runtime",
		Name:      "normalize_steps",
		Help:      "Number of rewrite steps a normalize run took to reach a fixed point.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})
	BacktrackAttempts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "syma",
		Subsystem: "runtime",
		Name:      "matcher_backtrack_attempts",
		Help:      "Sequence-variable split trials spent by the matcher on a single rewrite step.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	GlobalRegistry.MustRegister(prometheus.NewGoCollector())
	GlobalRegistry.MustRegister(DispatchTotal, ProjectTotal, NormalizeSteps, BacktrackAttempts)
}

// ObserveTrace records a completed trace's step count and per-step
// backtrack attempts against NormalizeSteps/BacktrackAttempts.
// stepCount is the length of the record slice returned by
// normalize.NormalizeWithTrace and backtrackAttempts holds each
// record's BacktrackAttempts. Dispatch and Project call it only while
// tracing is enabled.
func ObserveTrace(stepCount int, backtrackAttempts []int) {
	NormalizeSteps.Observe(float64(stepCount))
	for _, a := range backtrackAttempts {
		BacktrackAttempts.Observe(float64(a))
	}
}
