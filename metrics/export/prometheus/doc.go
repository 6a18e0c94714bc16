// Package prometheus renders engine metrics in Prometheus text exposition
// format without depending on the Prometheus client library.
//
// [NewExporter] accepts an engine and exposes an [net/http.Handler] that
// renders all counters and histograms. Counter names are prefixed
// goalkeeper_*_total; the single histogram is
// goalkeeper_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global registry; callers mount the Handler.
//   - Mutate engine state.
package prometheus
