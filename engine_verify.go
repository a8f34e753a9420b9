package authgate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// Verify validates the submission shape, looks the identifier up in the
// identity store, and compares the secret against the stored hash. The
// comparison is constant-time with respect to the position of the first
// differing byte (see [password.Hasher.Verify]).
//
// Malformed submissions never reach the store. A transient store failure is
// reported as OutcomeStoreUnavailable, never as invalid credentials. The
// returned error is non-nil only when the engine itself is unusable.
func (e *Engine) Verify(ctx context.Context, creds Credentials) (Outcome, error) {
	if e == nil || e.identities == nil || e.hasher == nil {
		return Outcome{}, ErrEngineNotReady
	}

	if fieldErrors := e.validateSubmission(creds); len(fieldErrors) > 0 {
		return Outcome{Kind: OutcomeMalformed, FieldErrors: fieldErrors}, nil
	}

	identity, err := e.identities.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return Outcome{Kind: OutcomeNotFound}, nil
		}
		return Outcome{
			Kind:  OutcomeStoreUnavailable,
			Cause: fmt.Errorf("%w: %w", ErrStoreUnavailable, err),
		}, nil
	}

	ok, err := e.hasher.Verify(creds.Password, identity.PasswordHash)
	if err != nil {
		// A hash that cannot be parsed is a stored-data defect, not a
		// wrong password. Surface it like a store failure so it reaches
		// operators instead of being reported as invalid credentials.
		return Outcome{
			Kind:  OutcomeStoreUnavailable,
			Cause: fmt.Errorf("%w: corrupt password hash: %w", ErrStoreUnavailable, err),
		}, nil
	}
	if !ok {
		return Outcome{Kind: OutcomeMismatch}, nil
	}

	return Outcome{Kind: OutcomeVerified, Identity: identity}, nil
}

func (e *Engine) validateSubmission(creds Credentials) map[string][]string {
	fieldErrors := map[string][]string{}

	if !wellFormedAddress(creds.Email) {
		fieldErrors["email"] = append(fieldErrors["email"], "must be a valid email address")
	}
	if len(creds.Password) < e.config.Password.MinLength {
		fieldErrors["password"] = append(fieldErrors["password"],
			fmt.Sprintf("must be at least %d characters", e.config.Password.MinLength))
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// wellFormedAddress accepts bare RFC 5322 addresses only: no display names,
// no angle brackets, no surrounding whitespace.
func wellFormedAddress(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}
