package internaldefs

import (
	goalkeeper "github.com/obafemio/goalkeeper"
)

// CounterDef names one engine counter for exposition.
type CounterDef struct {
	ID   goalkeeper.MetricID
	Name string
	Help string
}

// HistogramDef names one engine histogram for exposition.
type HistogramDef struct {
	ID   goalkeeper.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in exposition order.
var CounterDefs = []CounterDef{
	{ID: goalkeeper.MetricLoginSuccess, Name: "goalkeeper_login_success_total", Help: "Successful login attempts."},
	{ID: goalkeeper.MetricLoginFailure, Name: "goalkeeper_login_failure_total", Help: "Failed login attempts."},
	{ID: goalkeeper.MetricLoginRateLimited, Name: "goalkeeper_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: goalkeeper.MetricValidateSuccess, Name: "goalkeeper_validate_success_total", Help: "Requests that passed token and session validation."},
	{ID: goalkeeper.MetricValidateUnauthenticated, Name: "goalkeeper_validate_unauthenticated_total", Help: "Requests rejected for invalid or superseded credentials."},
	{ID: goalkeeper.MetricValidateUnauthorized, Name: "goalkeeper_validate_unauthorized_total", Help: "Requests rejected for missing privilege."},
	{ID: goalkeeper.MetricSessionCreated, Name: "goalkeeper_session_created_total", Help: "Created sessions."},
	{ID: goalkeeper.MetricSessionInvalidated, Name: "goalkeeper_session_invalidated_total", Help: "Invalidated sessions."},
	{ID: goalkeeper.MetricLogout, Name: "goalkeeper_logout_total", Help: "Logout operations."},
	{ID: goalkeeper.MetricAccountCreationSuccess, Name: "goalkeeper_account_creation_success_total", Help: "Successful account creations."},
	{ID: goalkeeper.MetricAccountCreationDuplicate, Name: "goalkeeper_account_creation_duplicate_total", Help: "Account creation attempts rejected as duplicate."},
	{ID: goalkeeper.MetricLimiterResetFailed, Name: "goalkeeper_limiter_reset_failed_total", Help: "Best-effort limiter resets that failed."},
	{ID: goalkeeper.MetricStoreError, Name: "goalkeeper_store_error_total", Help: "Operations aborted by an unreachable backing store."},
}

// HistogramDefs lists every exported histogram in exposition order.
var HistogramDefs = []HistogramDef{
	{ID: goalkeeper.MetricValidateLatency, Name: "goalkeeper_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the bucket upper bounds in seconds, as rendered in
// Prometheus `le` labels.
var HistogramBounds = []string{
	"0.001",
	"0.002",
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with characters legal in
// OTel instrument names.
var HistogramBoundSuffix = []string{
	"0_001",
	"0_002",
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed
// eight-bucket layout used by the engine.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms require.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
