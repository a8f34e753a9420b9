// Package authgate provides a request-authorization gate for multi-route web
// applications: credential verification against an identity store, signed
// session cookies backed by Redis, and a route-authorization decision that is
// cheap enough to run on every request.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Outcome, SignInResult, Decision, etc.). Storage adapters
// live in subpackages (pgstore, session) behind narrow interfaces; the engine
// never exposes its Redis client or cookie-signing key.
//
// # What this package must NOT do
//
//   - Persist or mutate identity records. Verification is a single read.
//   - Log or surface a submitted secret in any form.
//   - Reveal through its public failure vocabulary whether an identifier
//     exists: unknown identifier and wrong secret produce the same message.
//
// # Performance contract
//
// The route-authorization decision is the hot path. [Engine.Authorize] and
// [Engine.SessionPresent] perform no network or store round-trips: presence
// is proven by the signed session cookie alone. SignIn is allowed one
// identity-store read and one Redis round-trip per call.
package authgate
