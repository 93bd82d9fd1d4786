package goCred

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one toolkit counter.
type MetricID uint16

const (
	// MetricSecretGenerated counts sign secrets and random draws served.
	MetricSecretGenerated MetricID = iota
	// MetricEntropyFailure counts CSPRNG read failures.
	MetricEntropyFailure
	// MetricSignSuccess counts tokens signed.
	MetricSignSuccess
	// MetricSignFailure counts rejected sign requests.
	MetricSignFailure
	// MetricVerifySuccess counts tokens that passed verification.
	MetricVerifySuccess
	// MetricVerifyFailure counts tokens that failed verification for any reason.
	MetricVerifyFailure
	// MetricVerifyExpired counts the subset of verify failures caused by expiry.
	MetricVerifyExpired
	// MetricVerifySecretRejected counts sign or verify calls refused for a malformed secret.
	MetricVerifySecretRejected
	// MetricDecodeFailure counts tokens that could not be decoded.
	MetricDecodeFailure
	// MetricHashSuccess counts passwords hashed.
	MetricHashSuccess
	// MetricHashFailure counts rejected hash requests.
	MetricHashFailure
	// MetricCompareMatch counts password comparisons that matched.
	MetricCompareMatch
	// MetricCompareMismatch counts comparisons that failed, including malformed hashes.
	MetricCompareMismatch
	// MetricDeviceClassified counts device tokens classified.
	MetricDeviceClassified
	// MetricDeviceRejected counts device tokens matching no platform.
	MetricDeviceRejected
	// MetricDeviceIDRejected counts verified tokens without a valid deviceId claim.
	MetricDeviceIDRejected
	// MetricHashLatency is the bcrypt hash/compare latency histogram.
	MetricHashLatency
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

// Metrics holds lock-free counters. A nil *Metrics is a valid no-op.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics returns counters configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters record.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram records.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in the histogram for id. Only MetricHashLatency carries a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricHashLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter, and the histogram when enabled.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricHashLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricHashLatency].buckets[i])
		}
		s.Histograms[MetricHashLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
