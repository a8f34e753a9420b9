package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails signature, shape, or
// expiry checks.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the signed claim set carried by a session cookie. UserID and
// Email let handlers render identity attributes without a store read; the
// authoritative record stays server-side, keyed by SessionID.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	Email     string `json:"email,omitempty"`
}

// Manager defines a public type used by authgate APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	key []byte
}

// NewManager returns a Manager signing with the given HMAC key.
func NewManager(key []byte) (*Manager, error) {
	if len(key) < 32 {
		return nil, errors.New("signing key must be at least 32 bytes")
	}
	return &Manager{key: append([]byte(nil), key...)}, nil
}

// Sign produces a token for claims expiring at expiresAt.
func (m *Manager) Sign(claims Claims, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.SessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses raw and returns its claims. Any failure (wrong signature,
// wrong algorithm, expired, malformed) collapses to [ErrInvalidToken]; the
// caller treats all of them as session absence.
func (m *Manager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !t.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
