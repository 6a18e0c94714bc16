// Package goalkeeper is the authentication core for API servers that need
// signed bearer tokens, single-active-session semantics, and brute-force
// protection on login, coordinated through Redis.
//
// Three guarantees hold under any interleaving of concurrent requests:
//
//   - A token is accepted only while its embedded session id matches the
//     principal's single current session record. Logging in elsewhere or
//     logging out rejects older tokens immediately, even though they remain
//     cryptographically valid and unexpired.
//   - The login limiter's increment-and-check is one atomic store operation,
//     so a thundering herd on one identifier can never slip past the window
//     budget.
//   - Unknown identifier and wrong password are indistinguishable to clients.
//
// The package is designed for concurrent server workloads: [Engine] methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goalkeeper is the public surface. It exposes [Engine], [Builder], [Config],
// and value types. Rate limiting and audit dispatch live under internal/;
// the token codec and session registry are importable for advanced callers
// but are normally reached through the Engine. Routing, request validation,
// password storage, and domain persistence belong to the embedding server:
// the engine sees them only through [PrincipalStore] and
// [CredentialVerifier].
//
// # What this package must NOT do
//
//   - Expose Redis clients or key layouts in its public API.
//   - Retry authentication failures or failed store calls.
//   - Hold request-scoped locks; Redis is the only cross-request coordinator.
package goalkeeper
