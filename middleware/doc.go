// Package middleware adapts the engine's validation pipeline to net/http.
//
// [Guard] reads the Authorization header, calls Engine.ValidateRequest, and
// injects the verified identity into the request context. [WriteError] maps
// engine errors onto HTTP statuses: unauthenticated 401, unauthorized 403,
// rate limited 429, store unavailable 503.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to the Engine).
//   - Access Redis (the Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from validation.
package middleware
