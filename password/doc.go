// Package password implements credential hashing and verification with
// bcrypt.
//
// The engine consumes verification as a black box: plaintext and stored
// hash in, boolean out. Deployments with an existing hash format can swap
// in their own verifier and never touch this package.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other goalkeeper package.
//   - Log plaintext passwords at runtime.
package password
