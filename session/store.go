package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no live session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// ErrRedisUnavailable is an exported constant or variable used by the session store.
var ErrRedisUnavailable = errors.New("redis unavailable")

const minSlidingTTL = time.Second

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Prefix namespaces session keys, e.g. "authgate:sess:".
	Prefix string
	// TTL is the Redis expiry applied at creation.
	TTL time.Duration
	// SlidingExpiration re-arms the TTL on every successful Get, bounded by
	// the record's own ExpiresAt.
	SlidingExpiration bool
}

// Store defines a public type used by authgate APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	rdb *redis.Client
	cfg Config
}

// NewStore returns a Store over the given Redis client.
func NewStore(rdb *redis.Client, cfg Config) *Store {
	if cfg.Prefix == "" {
		cfg.Prefix = "authgate:sess:"
	}
	return &Store{rdb: rdb, cfg: cfg}
}

func (s *Store) key(id string) string {
	return s.cfg.Prefix + id
}

// Create persists the session record under its ID with the configured TTL.
func (s *Store) Create(ctx context.Context, rec *Session) error {
	if rec == nil || rec.ID == "" {
		return errors.New("session record requires an ID")
	}

	blob, err := Encode(rec)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.key(rec.ID), blob, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}

// Get loads a live session record. With sliding expiration enabled, a
// successful read re-arms the key's TTL up to the record's own expiry.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	blob, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	rec, err := Decode(id, blob)
	if err != nil {
		return nil, err
	}

	if s.cfg.SlidingExpiration {
		remaining := time.Until(time.Unix(rec.ExpiresAt, 0))
		ttl := s.cfg.TTL
		if remaining < ttl {
			ttl = remaining
		}
		if ttl >= minSlidingTTL {
			// TTL refresh is best effort; a failed EXPIRE never fails the read.
			_ = s.rdb.Expire(ctx, s.key(id), ttl).Err()
		}
	}

	return rec, nil
}

// Delete removes the session record. Deleting an absent session is not an
// error; Delete is idempotent.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}
