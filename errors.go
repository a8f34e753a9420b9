package authgate

import "errors"

var (
	// ErrEngineNotReady is returned when an Engine method is called before
	// the engine was fully constructed through [Builder.Build].
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrInvalidCredentials is the internal error for a failed credential
	// check. It is never shown to end users directly; the orchestrator
	// collapses it into the generic sign-in message.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrIdentityNotFound is returned by identity stores when no record
	// exists for the requested identifier.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrStoreUnavailable indicates a transient identity-store failure
	// (connection, timeout). It is never converted to invalid credentials.
	ErrStoreUnavailable = errors.New("identity store unavailable")
	// ErrMalformedSubmission indicates the submission failed shape
	// validation before any store access.
	ErrMalformedSubmission = errors.New("malformed credential submission")
	// ErrSessionCreationFailed is an exported constant or variable used by the gate engine.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrSessionInvalidationFailed is an exported constant or variable used by the gate engine.
	ErrSessionInvalidationFailed = errors.New("session invalidation failed")
	// ErrSessionNotFound is returned when a presented session token does not
	// resolve to a live session record.
	ErrSessionNotFound = errors.New("session not found")
)
