// Package password implements credential hashing and constant-time
// verification with bcrypt.
//
// # Comparison guarantee
//
// [Hasher.Verify] delegates to bcrypt.CompareHashAndPassword, which re-derives
// the full key from the submitted secret and compares it against the stored
// hash with crypto/subtle.ConstantTimeCompare. Its running time is dominated
// by the fixed-cost key derivation and does not depend on where the first
// differing byte occurs.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Submission policy (minimum
// length, identifier shape) is enforced by the Engine before any hash work.
//
// # What this package must NOT do
//
//   - Store or retrieve secrets: callers supply plaintext and receive hashes.
//   - Import any other authgate package.
//   - Log plaintext secrets or hash parameters at runtime.
package password
