// Package token encodes and verifies the signed, time-limited identity tokens
// presented by clients on every protected request.
//
// Tokens are HS256-signed JWTs carrying the principal id, an admin flag, and
// the session id that ties the token to the principal's single active session.
// Verification is self-contained: signature and expiry are checked against the
// configured secret with no external call.
//
// # Architecture boundaries
//
// This package owns signing and claim validation only. Session cross-checking
// and role enforcement belong to the Engine.
//
// # What this package must NOT do
//
//   - Access Redis or any store.
//   - Accept an unverified payload under any code path.
//   - Import any other goalkeeper package.
package token
