// Package rate provides the Redis-backed fixed-window rate limiter guarding
// abuse-prone operations, most importantly login.
//
// # Window semantics
//
// Fixed-window counters keyed ratelimit:<type>_<identifier>. The increment
// and the first-hit TTL are applied by a single Lua script so concurrent
// attempts for the same identifier can never observe a count above the limit
// without the triggering request having been rejected.
//
// A successful guarded operation may call Reset to forgive earlier failures
// in the window. Per-identifier limiting bounds brute force against a single
// identifier only; it does not bound credential stuffing spread across many
// identifiers from one source.
//
// # What this package must NOT do
//
//   - Implement operation-specific policy (the Engine decides when to reset).
//   - Be imported outside the goalkeeper module.
package rate
