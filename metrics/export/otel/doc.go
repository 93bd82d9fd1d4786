// Package otel publishes goCred metrics through an OpenTelemetry meter.
//
// Counters become Int64ObservableCounters with the same names as the Prometheus exporter.
// The hash latency histogram is exposed as one cumulative gauge per bucket plus a count
// gauge, because observable instruments cannot report explicit-bucket histograms.
//
// # What this package must NOT do
//
//   - Install a global MeterProvider.
//   - Mutate toolkit state.
package otel
