package goalkeeper

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts credential failures.
	MetricLoginFailure
	// MetricLoginRateLimited counts logins denied admission.
	MetricLoginRateLimited
	// MetricValidateSuccess counts requests that passed the full gate.
	MetricValidateSuccess
	// MetricValidateUnauthenticated counts gate rejections for identity reasons.
	MetricValidateUnauthenticated
	// MetricValidateUnauthorized counts gate rejections for missing privilege.
	MetricValidateUnauthorized
	// MetricSessionCreated counts session registrations.
	MetricSessionCreated
	// MetricSessionInvalidated counts explicit session invalidations.
	MetricSessionInvalidated
	// MetricLogout counts logout calls.
	MetricLogout
	// MetricAccountCreationSuccess counts created accounts.
	MetricAccountCreationSuccess
	// MetricAccountCreationDuplicate counts identifier collisions.
	MetricAccountCreationDuplicate
	// MetricLimiterResetFailed counts best-effort limiter resets that failed.
	MetricLimiterResetFailed
	// MetricStoreError counts requests aborted by an unreachable store.
	MetricStoreError
	// MetricValidateLatency is the gate latency histogram.
	MetricValidateLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free counters and an optional gate-latency histogram.
// All methods are safe for concurrent use; a nil or disabled Metrics is a
// no-op everywhere.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance configured by cfg. When Enabled
// is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether collection is active.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a gate latency sample.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricValidateLatency {
		return
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucketIndex(d)], 1)
}

// Value returns the current counter value for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a deep copy of all counters and histogram buckets.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64),
	}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricValidateLatency {
			continue
		}
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := range buckets {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricValidateLatency].buckets[i])
		}
		snap.Histograms[MetricValidateLatency] = buckets
	}
	return snap
}

// bucketIndex maps a latency to one of eight fixed buckets:
// ≤1ms, ≤2ms, ≤5ms, ≤10ms, ≤25ms, ≤50ms, ≤100ms, +Inf.
func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()
	switch {
	case ms <= 1:
		return 0
	case ms <= 2:
		return 1
	case ms <= 5:
		return 2
	case ms <= 10:
		return 3
	case ms <= 25:
		return 4
	case ms <= 50:
		return 5
	case ms <= 100:
		return 6
	default:
		return 7
	}
}

// HistogramBucketBounds are the upper bounds, in milliseconds, of the
// latency buckets in export order; the final bucket is unbounded.
var HistogramBucketBounds = [histBucketCount - 1]int64{1, 2, 5, 10, 25, 50, 100}

// MetricIDCount returns the number of defined metric IDs, for exporters
// that iterate the full range.
func MetricIDCount() MetricID {
	return metricIDCount
}
