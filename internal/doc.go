// Package internal contains helpers that are intentionally private to
// goalkeeper, including secure session-id generation.
//
// # Sub-packages
//
//   - audit — async event dispatch (Dispatcher + Sink implementations)
//   - rate — Redis-backed fixed-window rate limit primitives
//
// # What this package must NOT do
//
//   - Export types that appear in the public goalkeeper API.
//   - Be imported by any package outside the goalkeeper module.
package internal
