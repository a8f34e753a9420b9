// Package middleware exposes the HTTP request-interception gate built on top
// of authgate.Engine route authorization.
//
// [Gate] runs before any protected handler: it skips allowlisted paths,
// derives session presence from the signed session cookie (no store access),
// and applies the engine's route decision table: continue, redirect to the
// sign-in page, or redirect a signed-in caller away from it.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// classify routes or verify tokens itself; all decisions are delegated to
// the Engine.
//
// # What this package must NOT do
//
//   - Access Redis or the identity store (the gate is the hot path).
//   - Make authorization decisions beyond what Engine.Authorize returns.
package middleware
