package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/finboard/authgate"
	"github.com/finboard/authgate/password"
)

type mapIdentityStore map[string]*authgate.Identity

func (m mapIdentityStore) GetByEmail(ctx context.Context, email string) (*authgate.Identity, error) {
	identity, ok := m[email]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", email, authgate.ErrIdentityNotFound)
	}
	return identity, nil
}

func newGateEngine(t *testing.T) *authgate.Engine {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hasher, err := password.NewHasher(password.Config{Cost: 4})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	hash, err := hasher.Hash("correct-horse-123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	cfg := authgate.DefaultConfig()
	cfg.Session.SigningKey = []byte("0123456789abcdef0123456789abcdef")
	cfg.Session.CookieSecure = false
	cfg.Password.BcryptCost = 4

	engine, err := authgate.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithIdentityStore(mapIdentityStore{
			"user@example.com": {
				ID:           "u1",
				Name:         "User",
				Email:        "user@example.com",
				PasswordHash: hash,
			},
		}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func signInCookie(t *testing.T, engine *authgate.Engine) *http.Cookie {
	t.Helper()

	res, err := engine.SignIn(context.Background(), url.Values{
		"email":    {"user@example.com"},
		"password": {"correct-horse-123"},
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if !res.OK || res.Cookie == nil {
		t.Fatalf("expected a session, got %+v", res)
	}
	return res.Cookie
}

func newGatedMux(engine *authgate.Engine) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "home")
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "login form")
	})
	mux.HandleFunc("/dashboard/", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "no claims", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "hello "+claims.Email)
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	return Gate(engine)(mux)
}

func doGet(t *testing.T, handler http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGateRedirectsAnonymousFromProtectedRoute(t *testing.T) {
	engine := newGateEngine(t)
	handler := newGatedMux(engine)

	rec := doGet(t, handler, "/dashboard/invoices", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestGateRedirectsSignedInFromAuthEntry(t *testing.T) {
	engine := newGateEngine(t)
	handler := newGatedMux(engine)
	cookie := signInCookie(t, engine)

	rec := doGet(t, handler, "/login", cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("Location = %q, want /dashboard", loc)
	}
}

func TestGateAllowsSignedInOnProtectedRoute(t *testing.T) {
	engine := newGateEngine(t)
	handler := newGatedMux(engine)
	cookie := signInCookie(t, engine)

	rec := doGet(t, handler, "/dashboard/invoices", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "hello user@example.com" {
		t.Fatalf("body = %q", body)
	}
}

func TestGateAllowsAnonymousOnPublicAndAuthEntry(t *testing.T) {
	engine := newGateEngine(t)
	handler := newGatedMux(engine)

	for _, path := range []string{"/", "/login"} {
		rec := doGet(t, handler, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestGateSkipsExcludedPaths(t *testing.T) {
	engine := newGateEngine(t)
	handler := newGatedMux(engine)

	rec := doGet(t, handler, "/api/health", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("excluded path gated: %d %q", rec.Code, rec.Body.String())
	}
}

func TestGateTreatsTamperedCookieAsAbsent(t *testing.T) {
	engine := newGateEngine(t)
	handler := newGatedMux(engine)
	cookie := signInCookie(t, engine)

	tampered := *cookie
	tampered.Value += "x"

	rec := doGet(t, handler, "/dashboard/invoices", &tampered)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 for tampered cookie", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestGateNilEngineFailsClosed(t *testing.T) {
	handler := Gate(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := doGet(t, handler, "/dashboard", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
