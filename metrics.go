package authgate

import "sync/atomic"

// MetricID defines a public type used by authgate APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricSignInSuccess is an exported constant or variable used by the gate engine.
	MetricSignInSuccess MetricID = iota
	// MetricSignInFailure counts rejected submissions: malformed, unknown
	// identifier, and mismatched secret are indistinguishable externally.
	MetricSignInFailure
	// MetricSignInStoreFailure counts transient identity-store failures.
	MetricSignInStoreFailure
	// MetricSessionCreated is an exported constant or variable used by the gate engine.
	MetricSessionCreated
	// MetricSessionDestroyed is an exported constant or variable used by the gate engine.
	MetricSessionDestroyed
	// MetricRedirectToSignIn counts gate denials on protected routes.
	MetricRedirectToSignIn
	// MetricRedirectToHome counts signed-in callers bounced off the auth entry point.
	MetricRedirectToHome

	metricCount
)

// Metrics is a fixed-size set of in-process counters. All methods are safe
// for concurrent use; reading a snapshot never blocks writers.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// MetricsSnapshot defines a public type used by authgate APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
