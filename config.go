package authgate

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Routes   RouteConfig
	Session  SessionConfig
	Password PasswordConfig
	Audit    AuditConfig
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig is the static route-classification surface: the sign-in entry
// path, the protected-area prefix, the post-sign-in home path, and the
// excluded-path allowlist. It is loaded once at process start and never
// consulted dynamically.
type RouteConfig struct {
	// SignInPath is the auth entry point. Default "/login".
	SignInPath string
	// ProtectedPrefix marks the protected area. Every path under it
	// requires a present session. Default "/dashboard".
	ProtectedPrefix string
	// SignedInHome is where signed-in callers are sent away from the auth
	// entry point and after a successful sign-in. Default "/dashboard".
	SignedInHome string
	// ExcludedPatterns are glob patterns (gobwas/glob syntax) for paths the
	// gate skips entirely: static assets, framework-internal paths.
	ExcludedPatterns []string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by authgate APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// CookieName carries the signed session token. Default "authgate_session".
	CookieName string
	// TTL bounds both the cookie and the server-side session record.
	TTL time.Duration
	// SlidingExpiration refreshes the server-side record TTL on resolve.
	SlidingExpiration bool
	// RedisPrefix namespaces session keys. Default "authgate:sess:".
	RedisPrefix string
	// SigningKey is the HMAC key for the session-cookie signature.
	// Required; minimum 32 bytes.
	SigningKey []byte
	// CookieSecure marks issued cookies Secure. Leave on outside tests.
	CookieSecure bool
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by authgate APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	// MinLength is the minimum submitted-secret length accepted before any
	// store access. Default 6.
	MinLength int
	// BcryptCost is used when hashing new secrets. Verification reads the
	// cost from the stored hash. Default bcrypt.DefaultCost.
	BcryptCost int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by authgate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig returns a configuration equivalent to the one the original
// dashboard application shipped with: sign-in at /login, protected area under
// /dashboard, API and static-asset paths excluded from the gate.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Routes: RouteConfig{
			SignInPath:      "/login",
			ProtectedPrefix: "/dashboard",
			SignedInHome:    "/dashboard",
			ExcludedPatterns: []string{
				"/api/*",
				"/static/*",
				"/favicon.ico",
				"*.png",
			},
		},
		Session: SessionConfig{
			CookieName:        "authgate_session",
			TTL:               24 * time.Hour,
			SlidingExpiration: true,
			RedisPrefix:       "authgate:sess:",
			CookieSecure:      true,
		},
		Password: PasswordConfig{
			MinLength:  6,
			BcryptCost: bcrypt.DefaultCost,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.Routes.SignInPath == "" || !strings.HasPrefix(cfg.Routes.SignInPath, "/") {
		return errors.New("routes: sign-in path must be an absolute path")
	}
	if cfg.Routes.ProtectedPrefix == "" || !strings.HasPrefix(cfg.Routes.ProtectedPrefix, "/") {
		return errors.New("routes: protected prefix must be an absolute path")
	}
	if cfg.Routes.SignedInHome == "" || !strings.HasPrefix(cfg.Routes.SignedInHome, "/") {
		return errors.New("routes: signed-in home must be an absolute path")
	}
	if strings.HasPrefix(cfg.Routes.SignInPath, cfg.Routes.ProtectedPrefix) {
		return errors.New("routes: sign-in path must not live under the protected prefix")
	}
	if !strings.HasPrefix(cfg.Routes.SignedInHome, cfg.Routes.ProtectedPrefix) {
		return errors.New("routes: signed-in home must live under the protected prefix")
	}
	if cfg.Session.CookieName == "" {
		return errors.New("session: cookie name required")
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("session: TTL must be positive")
	}
	if len(cfg.Session.SigningKey) < 32 {
		return errors.New("session: signing key must be at least 32 bytes")
	}
	if cfg.Password.MinLength < 1 {
		return errors.New("password: minimum length must be at least 1")
	}
	if cfg.Password.BcryptCost < bcrypt.MinCost || cfg.Password.BcryptCost > bcrypt.MaxCost {
		return errors.New("password: bcrypt cost out of range")
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize < 1 {
		return errors.New("audit: buffer size must be at least 1 when enabled")
	}
	return nil
}

// cloneConfig deep-copies cfg so callers cannot mutate engine state through
// retained slices.
func cloneConfig(cfg Config) Config {
	out := cfg
	out.Routes.ExcludedPatterns = append([]string(nil), cfg.Routes.ExcludedPatterns...)
	out.Session.SigningKey = append([]byte(nil), cfg.Session.SigningKey...)
	return out
}
