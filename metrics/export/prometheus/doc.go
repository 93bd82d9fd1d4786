// Package prometheus exposes goCred metrics to Prometheus.
//
// [Exporter] renders the text exposition format directly for callers that mount its
// Handler, and also implements prometheus.Collector for callers that already run a
// client_golang registry. Counters are named gocred_*_total; the single histogram is
// gocred_hash_latency_seconds.
//
// # What this package must NOT do
//
//   - Register with the global default registry. Callers choose the Registerer.
//   - Mutate toolkit state.
package prometheus
