package authgate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func signInTestConfig() Config {
	cfg := defaultConfig()
	cfg.Session.SigningKey = testSigningKey
	cfg.Session.CookieSecure = false
	cfg.Password.BcryptCost = 4
	return cfg
}

func newSignInEngine(t *testing.T, store IdentityStore, sink AuditSink) (*Engine, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)

	builder := New().
		WithConfig(signInTestConfig()).
		WithRedis(rdb).
		WithIdentityStore(store)
	if sink != nil {
		builder = builder.WithAuditSink(sink)
	}

	engine, err := builder.Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return engine, func() {
		engine.Close()
		mr.Close()
	}
}

func seedIdentity(t *testing.T, email, secret string) *stubIdentityStore {
	t.Helper()

	hasher := newTestHasher(t)
	hash, err := hasher.Hash(secret)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	return &stubIdentityStore{identities: map[string]*Identity{
		email: {ID: "u1", Name: "User", Email: email, PasswordHash: hash},
	}}
}

func signInForm(email, password string) url.Values {
	return url.Values{
		"email":    {email},
		"password": {password},
	}
}

func TestSignInSuccessEstablishesSession(t *testing.T) {
	store := seedIdentity(t, "user@example.com", "correct-horse-123")
	engine, done := newSignInEngine(t, store, nil)
	defer done()

	ctx := context.Background()
	res, err := engine.SignIn(ctx, signInForm("user@example.com", "correct-horse-123"))
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected success, got message %q", res.Message)
	}
	if res.RedirectTo != "/dashboard" {
		t.Fatalf("RedirectTo = %q, want /dashboard", res.RedirectTo)
	}
	if res.Cookie == nil || res.Cookie.Value == "" {
		t.Fatal("expected a session cookie")
	}
	if !res.Cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	if !engine.SessionPresent(res.Cookie.Value) {
		t.Fatal("issued token should prove presence")
	}

	rec, err := engine.ResolveSession(ctx, res.Cookie.Value)
	if err != nil {
		t.Fatalf("ResolveSession failed: %v", err)
	}
	if rec.UserID != "u1" || rec.Email != "user@example.com" {
		t.Fatalf("unexpected session record: %+v", rec)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricSignInSuccess] != 1 || snap.Counters[MetricSessionCreated] != 1 {
		t.Fatalf("unexpected counters: %v", snap.Counters)
	}
}

// Wrong secret for a known identifier and an unknown identifier must be
// byte-for-byte indistinguishable to the caller.
func TestSignInEnumerationResistance(t *testing.T) {
	store := seedIdentity(t, "user@example.com", "correct-horse-123")
	engine, done := newSignInEngine(t, store, nil)
	defer done()

	ctx := context.Background()

	wrongSecret, err := engine.SignIn(ctx, signInForm("user@example.com", "wrongpass"))
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	unknownUser, err := engine.SignIn(ctx, signInForm("nobody@example.com", "wrongpass"))
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	malformed, err := engine.SignIn(ctx, signInForm("not-an-address", "wrongpass"))
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	if wrongSecret.OK || unknownUser.OK || malformed.OK {
		t.Fatal("no submission should have succeeded")
	}
	if wrongSecret.Message != MessageInvalidCredentials {
		t.Fatalf("wrong-secret message = %q", wrongSecret.Message)
	}
	if unknownUser.Message != wrongSecret.Message || malformed.Message != wrongSecret.Message {
		t.Fatalf("messages diverge: %q / %q / %q",
			wrongSecret.Message, unknownUser.Message, malformed.Message)
	}
	if wrongSecret.Cookie != nil || unknownUser.Cookie != nil || malformed.Cookie != nil {
		t.Fatal("no session may be created on failure")
	}
}

func TestSignInWrongSecretCreatesNoSession(t *testing.T) {
	store := seedIdentity(t, "user@example.com", "correct-horse-123")
	engine, done := newSignInEngine(t, store, nil)
	defer done()

	res, err := engine.SignIn(context.Background(), signInForm("user@example.com", "wrongpass"))
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if res.OK || res.Message != MessageInvalidCredentials {
		t.Fatalf("unexpected result: %+v", res)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricSessionCreated] != 0 {
		t.Fatal("no session may be created for a rejected submission")
	}
	if snap.Counters[MetricSignInFailure] != 1 {
		t.Fatalf("expected one failure counter, got %v", snap.Counters)
	}
}

func TestSignInStoreOutageIsRecordedWithoutSecret(t *testing.T) {
	const secret = "super-secret-pass"

	sink := NewChannelSink(8)
	store := &stubIdentityStore{err: fmt.Errorf("pg: %w", context.DeadlineExceeded)}
	engine, done := newSignInEngine(t, store, sink)
	defer done()

	res, err := engine.SignIn(context.Background(), signInForm("user@example.com", secret))
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Message != MessageOperationalFailure {
		t.Fatalf("Message = %q, want %q", res.Message, MessageOperationalFailure)
	}

	select {
	case event := <-sink.Events():
		if event.EventType != auditEventSignInStoreFailure {
			t.Fatalf("EventType = %q", event.EventType)
		}
		if event.Success {
			t.Fatal("store failure event must not be marked success")
		}
		if event.Error == "" {
			t.Fatal("expected the cause to be recorded for operators")
		}
		if strings.Contains(event.Error, secret) {
			t.Fatal("raw secret leaked into the audit record")
		}
		for _, v := range event.Metadata {
			if strings.Contains(v, secret) {
				t.Fatal("raw secret leaked into audit metadata")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no audit event dispatched for store outage")
	}
}

func TestSignInUnknownOutcomePropagates(t *testing.T) {
	store := seedIdentity(t, "user@example.com", "correct-horse-123")
	engine, done := newSignInEngine(t, store, nil)
	defer done()

	_, err := engine.resolveSignIn(context.Background(), Outcome{Kind: OutcomeKind(99)})
	if err == nil {
		t.Fatal("unanticipated outcome kinds must propagate, not map to a message")
	}
}

func TestSignOutDestroysSessionAndIsIdempotent(t *testing.T) {
	store := seedIdentity(t, "user@example.com", "correct-horse-123")
	engine, done := newSignInEngine(t, store, nil)
	defer done()

	ctx := context.Background()
	res, err := engine.SignIn(ctx, signInForm("user@example.com", "correct-horse-123"))
	if err != nil || !res.OK {
		t.Fatalf("SignIn failed: %v %+v", err, res)
	}

	clearing, err := engine.SignOut(ctx, res.Cookie.Value)
	if err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if clearing == nil || clearing.MaxAge != -1 {
		t.Fatalf("expected a clearing cookie, got %+v", clearing)
	}

	if _, err := engine.ResolveSession(ctx, res.Cookie.Value); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}

	// Second sign-out of the same token must not error.
	if _, err := engine.SignOut(ctx, res.Cookie.Value); err != nil {
		t.Fatalf("repeated SignOut failed: %v", err)
	}
	// Garbage tokens clear silently too.
	if _, err := engine.SignOut(ctx, "not-a-token"); err != nil {
		t.Fatalf("SignOut with garbage token failed: %v", err)
	}
}
