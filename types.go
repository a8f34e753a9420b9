package authgate

import "context"

// Identity is a stored principal record: the natural key (email,
// case-sensitive), the slow-hash of the secret, and display attributes.
// The engine only ever reads identities; it never writes them.
type Identity struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// Credentials is a transient credential submission: claimed identifier plus
// plaintext secret. It exists for the duration of one Verify call and must
// never be persisted or logged.
type Credentials struct {
	Email    string
	Password string
}

// IdentityStore is the contract callers implement to integrate authgate with
// their user database. A store must return [ErrIdentityNotFound] (directly or
// wrapped) when no record exists for the identifier; any other error is
// treated as a transient store failure and surfaced as such, never as
// invalid credentials.
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (*Identity, error)
}
