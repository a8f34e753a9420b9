package middleware

import (
	"context"
	"net/http"

	"github.com/finboard/authgate"
	"github.com/finboard/authgate/token"
)

type sessionClaimsContextKey struct{}

// ClaimsFromContext returns the verified session claims the gate attached to
// the request, if the caller had a present session.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(sessionClaimsContextKey{}).(*token.Claims)
	return claims, ok
}

// Gate returns middleware enforcing the engine's route decision table on
// every request whose path is not allowlisted. Session presence is proven by
// the signed cookie alone; the gate performs no store round trips.
func Gate(engine *authgate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			path := r.URL.Path
			if engine.Excluded(path) {
				next.ServeHTTP(w, r)
				return
			}

			claims := sessionClaims(engine, r)
			decision := engine.Authorize(path, claims != nil)
			if !decision.Allow {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}

			if claims != nil {
				ctx := context.WithValue(r.Context(), sessionClaimsContextKey{}, claims)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionClaims extracts and verifies the session cookie. A missing cookie,
// a bad signature, or an expired token all read as session absence.
func sessionClaims(engine *authgate.Engine, r *http.Request) *token.Claims {
	cookie, err := r.Cookie(engine.SessionCookieName())
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := engine.VerifySessionToken(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}
