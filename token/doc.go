// Package token signs and verifies the compact session-cookie tokens that
// prove session presence on the per-request hot path.
//
// Tokens are HMAC-SHA256 JWTs whose subject is the server-side session ID.
// Verifying one is pure computation: no Redis or database round trip, which
// is what lets the route-authorization gate run on every request.
//
// # Architecture boundaries
//
// This package owns signing and verification only. It does NOT decide what a
// present session is allowed to reach (the Engine's route table does) and it
// does NOT load session records (the session package does).
package token
