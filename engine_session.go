package authgate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/finboard/authgate/session"
	"github.com/finboard/authgate/token"
)

// issueSession creates the server-side session record and the signed cookie
// that proves its presence. The cookie value is a compact signed token whose
// subject is the session ID; route authorization verifies the signature only
// and never reads the store.
func (e *Engine) issueSession(ctx context.Context, identity *Identity) (*http.Cookie, string, error) {
	now := time.Now()
	expires := now.Add(e.config.Session.TTL)

	rec := &session.Session{
		ID:        uuid.NewString(),
		UserID:    identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		CreatedAt: now.Unix(),
		ExpiresAt: expires.Unix(),
	}

	if err := e.sessions.Create(ctx, rec); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	signed, err := e.tokens.Sign(token.Claims{
		SessionID: rec.ID,
		UserID:    rec.UserID,
		Email:     rec.Email,
	}, expires)
	if err != nil {
		// Best effort: the record is unreachable without a token.
		_ = e.sessions.Delete(ctx, rec.ID)
		return nil, "", fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	e.metricInc(MetricSessionCreated)

	return e.sessionCookie(signed, expires), rec.ID, nil
}

// SessionPresent reports whether rawToken proves a session: a valid
// signature and an unexpired claim set. It performs no store access and is
// the presence input to [Engine.Authorize] on the per-request hot path.
func (e *Engine) SessionPresent(rawToken string) bool {
	if e == nil || e.tokens == nil || rawToken == "" {
		return false
	}
	_, err := e.tokens.Verify(rawToken)
	return err == nil
}

// VerifySessionToken returns the signed claims carried by rawToken without
// touching the session store. Handlers that only need the caller's identity
// attributes can use this instead of [Engine.ResolveSession].
func (e *Engine) VerifySessionToken(rawToken string) (*token.Claims, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}
	return e.tokens.Verify(rawToken)
}

// ResolveSession verifies rawToken and loads the live server-side session
// record. A valid token whose record was destroyed (signed out elsewhere,
// expired in Redis) resolves to [ErrSessionNotFound].
func (e *Engine) ResolveSession(ctx context.Context, rawToken string) (*session.Session, error) {
	if e == nil || e.tokens == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.Verify(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionNotFound, err)
	}

	rec, err := e.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ClearSessionCookie returns an expired cookie that removes the session
// cookie from the client.
func (e *Engine) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     e.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   e.config.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (e *Engine) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     e.config.Session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   e.config.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionCookieName exposes the configured cookie name so transports can
// locate the session cookie without reaching into Config.
func (e *Engine) SessionCookieName() string {
	return e.config.Session.CookieName
}
