package authgate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// User-facing sign-in messages. Malformed input, unknown identifier, and a
// mismatched secret all collapse to the same string so that a response never
// reveals whether an identifier exists.
const (
	// MessageInvalidCredentials is an exported constant or variable used by the gate engine.
	MessageInvalidCredentials = "Invalid credentials."
	// MessageOperationalFailure is shown for transient store failures. The
	// underlying cause is recorded on the audit pipeline, not shown here.
	MessageOperationalFailure = "Something went wrong."
)

// SignInResult is returned by [Engine.SignIn]: either a redirect plus a
// session cookie, or a short non-specific message for re-rendering the form.
type SignInResult struct {
	OK         bool
	RedirectTo string
	Cookie     *http.Cookie
	Message    string
}

// SignIn drives one credential verification from an untyped form submission
// and, on success, establishes a session bound to the verified identity.
//
// The form is expected to carry "email" and "password" fields. Every
// anticipated verification outcome maps to a SignInResult; an outcome kind
// this mapping does not anticipate propagates as a non-nil error so that a
// defect in the verifier fails loudly instead of hiding behind the generic
// message.
func (e *Engine) SignIn(ctx context.Context, form url.Values) (*SignInResult, error) {
	if e == nil || e.sessions == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	creds := Credentials{
		Email:    form.Get("email"),
		Password: form.Get("password"),
	}

	outcome, err := e.Verify(ctx, creds)
	if err != nil {
		return nil, err
	}

	return e.resolveSignIn(ctx, outcome)
}

// resolveSignIn maps a verification outcome onto the user-facing sign-in
// vocabulary. The mapping is exhaustive over the known outcome kinds; a kind
// it does not anticipate is a verifier defect and propagates as an error.
func (e *Engine) resolveSignIn(ctx context.Context, outcome Outcome) (*SignInResult, error) {
	switch outcome.Kind {
	case OutcomeVerified:
		cookie, sessionID, err := e.issueSession(ctx, outcome.Identity)
		if err != nil {
			e.metricInc(MetricSignInStoreFailure)
			e.emitAudit(ctx, auditEventSignInStoreFailure, false, outcome.Identity.ID, "", err, nil)
			return &SignInResult{Message: MessageOperationalFailure}, nil
		}
		e.metricInc(MetricSignInSuccess)
		e.emitAudit(ctx, auditEventSignInSuccess, true, outcome.Identity.ID, sessionID, nil, nil)
		return &SignInResult{
			OK:         true,
			RedirectTo: e.config.Routes.SignedInHome,
			Cookie:     cookie,
		}, nil

	case OutcomeMalformed:
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInRejected, false, "", "", ErrMalformedSubmission, func() map[string]string {
			return map[string]string{"reason": "malformed_submission"}
		})
		return &SignInResult{Message: MessageInvalidCredentials}, nil

	case OutcomeNotFound:
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInRejected, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"reason": "unknown_identifier"}
		})
		return &SignInResult{Message: MessageInvalidCredentials}, nil

	case OutcomeMismatch:
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInRejected, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"reason": "secret_mismatch"}
		})
		return &SignInResult{Message: MessageInvalidCredentials}, nil

	case OutcomeStoreUnavailable:
		e.metricInc(MetricSignInStoreFailure)
		e.emitAudit(ctx, auditEventSignInStoreFailure, false, "", "", outcome.Cause, nil)
		return &SignInResult{Message: MessageOperationalFailure}, nil

	default:
		return nil, fmt.Errorf("unhandled verification outcome %q", outcome.String())
	}
}

// SignOut destroys the session named by the raw cookie value and returns an
// expired cookie the caller should set to clear the client. Destroying a
// session that no longer exists is not an error.
func (e *Engine) SignOut(ctx context.Context, rawToken string) (*http.Cookie, error) {
	if e == nil || e.sessions == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	clearing := e.ClearSessionCookie()
	claims, err := e.tokens.Verify(rawToken)
	if err != nil {
		// An unverifiable token carries no live session to destroy.
		return clearing, nil
	}

	if err := e.sessions.Delete(ctx, claims.SessionID); err != nil {
		return clearing, fmt.Errorf("%w: %w", ErrSessionInvalidationFailed, err)
	}

	e.metricInc(MetricSessionDestroyed)
	e.emitAudit(ctx, auditEventSignOut, true, claims.UserID, claims.SessionID, nil, nil)
	return clearing, nil
}
