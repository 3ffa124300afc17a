package authcore

import "sync/atomic"

// MetricID identifies one of the in-process counters kept by the Service.
type MetricID uint16

const (
	// MetricSignupSuccess counts accounts created.
	MetricSignupSuccess MetricID = iota
	// MetricSignupDuplicate counts signups rejected for an existing email.
	MetricSignupDuplicate
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess
	// MetricLoginFailure counts logins rejected as invalid credentials.
	MetricLoginFailure
	// MetricPasswordResetSuccess counts completed password resets.
	MetricPasswordResetSuccess
	// MetricPasswordResetFailure counts rejected password resets.
	MetricPasswordResetFailure
	// MetricTokenAccepted counts tokens that passed authentication.
	MetricTokenAccepted
	// MetricTokenRejected counts tokens that failed signature or expiry.
	MetricTokenRejected
	// MetricLogout counts tokens revoked by logout.
	MetricLogout
	// MetricReplayBlocked counts revoked tokens presented after logout.
	MetricReplayBlocked
	// MetricStoreFailure counts persistence-layer failures.
	MetricStoreFailure

	metricIDCount
)

// Metrics is a fixed set of atomic counters. When disabled, every operation
// is a no-op.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// NewMetrics returns a Metrics instance.
func NewMetrics(enabled bool) *Metrics {
	return &Metrics{enabled: enabled}
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() map[MetricID]uint64 {
	out := make(map[MetricID]uint64, metricIDCount)
	if m == nil {
		return out
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		out[id] = m.counters[id].Load()
	}
	return out
}
