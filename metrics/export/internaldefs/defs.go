package internaldefs

import (
	goCred "github.com/MrEthical07/goCred"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// Counter exported for Toolkit.AuditDropped.
const (
	AuditDroppedName = "gocred_audit_dropped_total"
	AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
)

var CounterDefs = []CounterDef{
	{ID: goCred.MetricSecretGenerated, Name: "gocred_secret_generated_total", Help: "Sign secrets and random draws served."},
	{ID: goCred.MetricEntropyFailure, Name: "gocred_entropy_failure_total", Help: "CSPRNG read failures."},
	{ID: goCred.MetricSignSuccess, Name: "gocred_sign_success_total", Help: "Tokens signed."},
	{ID: goCred.MetricSignFailure, Name: "gocred_sign_failure_total", Help: "Rejected sign requests."},
	{ID: goCred.MetricVerifySuccess, Name: "gocred_verify_success_total", Help: "Tokens that passed verification."},
	{ID: goCred.MetricVerifyFailure, Name: "gocred_verify_failure_total", Help: "Tokens that failed verification."},
	{ID: goCred.MetricVerifyExpired, Name: "gocred_verify_expired_total", Help: "Verification failures caused by expiry."},
	{ID: goCred.MetricVerifySecretRejected, Name: "gocred_secret_rejected_total", Help: "Sign or verify calls refused for a malformed secret."},
	{ID: goCred.MetricDecodeFailure, Name: "gocred_decode_failure_total", Help: "Tokens that could not be decoded."},
	{ID: goCred.MetricHashSuccess, Name: "gocred_hash_success_total", Help: "Passwords hashed."},
	{ID: goCred.MetricHashFailure, Name: "gocred_hash_failure_total", Help: "Rejected hash requests."},
	{ID: goCred.MetricCompareMatch, Name: "gocred_compare_match_total", Help: "Password comparisons that matched."},
	{ID: goCred.MetricCompareMismatch, Name: "gocred_compare_mismatch_total", Help: "Password comparisons that failed."},
	{ID: goCred.MetricDeviceClassified, Name: "gocred_device_classified_total", Help: "Device tokens classified."},
	{ID: goCred.MetricDeviceRejected, Name: "gocred_device_rejected_total", Help: "Device tokens matching no platform."},
	{ID: goCred.MetricDeviceIDRejected, Name: "gocred_device_id_rejected_total", Help: "Verified tokens without a valid deviceId claim."},
}

var HistogramDefs = []HistogramDef{
	{ID: goCred.MetricHashLatency, Name: "gocred_hash_latency_seconds", Help: "bcrypt hash and compare latency."},
}

// HistogramBounds are the bucket upper bounds as exposition labels, ending in +Inf.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix spells each bound for instrument names that cannot carry labels.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// HistogramBoundValues are the finite bucket upper bounds in seconds.
var HistogramBoundValues = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// NormalizeBuckets copies raw into a fixed eight-bucket array, zero-filling.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
