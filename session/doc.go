// Package session tracks the single currently-valid session per principal in
// Redis.
//
// The model is deliberately minimal: one key per principal holding the opaque
// session id, with a TTL equal to the token lifetime. Overwriting the key on a
// fresh login supersedes every previously issued token for that principal,
// even tokens that are still cryptographically valid and unexpired.
//
// # Architecture boundaries
//
// This package owns the [Registry] (Redis operations) only. It does not
// interpret tokens or enforce authentication policy — those responsibilities
// belong to the Engine.
//
// # What this package must NOT do
//
//   - Import goalkeeper or token (no upward imports).
//   - Hold more than one record per principal.
//   - Read-modify-write from the application tier; Redis serializes writers.
package session
