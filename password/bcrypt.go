package password

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when the caller does not pick
// one.
const DefaultCost = bcrypt.DefaultCost

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Cost is the bcrypt work factor applied when hashing new secrets.
	// Verification always reads the cost from the stored hash.
	Cost int
}

// Hasher defines a public type used by authgate APIs.
//
// Hasher instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Hasher struct {
	config Config
}

// NewHasher validates cfg and returns a Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cfg.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{config: cfg}, nil
}

// Hash derives a salted bcrypt hash of the secret. Secret bytes are used
// exactly as provided (no Unicode normalization).
func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("empty secret")
	}
	out, err := bcrypt.GenerateFromPassword([]byte(secret), h.config.Cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify compares secret against encodedHash in constant time with respect
// to the secret's content. It returns (false, nil) for a well-formed hash
// that does not match, and a non-nil error only when the stored hash itself
// is unusable.
func (h *Hasher) Verify(secret, encodedHash string) (bool, error) {
	if !looksLikeBcrypt(encodedHash) {
		return false, errors.New("not a bcrypt hash")
	}

	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// looksLikeBcrypt rejects obviously foreign encodings (argon2 PHC strings,
// plaintext) before handing them to the bcrypt parser.
func looksLikeBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}
