package runtime

import "sync"

// traceState is the process-wide flag (spec.md section 9, "Global
// state") that, when set, makes dispatch/project use the
// trace-recording normalizer variant and log a step group. It is not
// the only package-level state dispatch/project touch: they also
// update the Prometheus counters and histograms in runtime/metrics.
// Everything else is a value threaded explicitly through call
// arguments.
var traceState struct {
	mu      sync.RWMutex
	enabled bool
}

// SetTrace enables or disables process-wide trace recording.
func SetTrace(enabled bool) {
	traceState.mu.Lock()
	defer traceState.mu.Unlock()
	traceState.enabled = enabled
}

// GetTrace reports whether trace recording is currently enabled.
func GetTrace() bool {
	traceState.mu.RLock()
	defer traceState.mu.RUnlock()
	return traceState.enabled
}
