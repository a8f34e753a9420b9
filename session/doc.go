// Package session provides Redis-backed session persistence with a compact
// binary encoding.
//
// # Binary encoding
//
// Session records are stored in Redis as a compact, versioned binary blob.
// The encoder is append-only: a new schema version may add fields but never
// reinterprets old ones, so records written by an older process decode under
// a newer one.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Session] model.
// It does NOT sign or verify cookie tokens, classify routes, or enforce
// authentication policy. Those responsibilities belong to the Engine and
// the token package.
//
// # What this package must NOT do
//
//   - Import authgate or token (no upward imports).
//   - Store plaintext secrets in [Session] fields.
package session
