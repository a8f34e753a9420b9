// Package pgstore implements the authgate identity-store contract over
// PostgreSQL. It is read-only by design: credential verification is a single
// lookup, never a read-modify-write.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finboard/authgate"
)

// DB is the subset of pgxpool.Pool the store needs. Both *pgxpool.Pool and
// pgxmock pools satisfy it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store defines a public type used by authgate APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	db   DB
	pool *pgxpool.Pool
}

// New returns a Store over an existing connection handle.
func New(db DB) *Store {
	return &Store{db: db}
}

// Open connects a pooled store to the database at dsn. The caller owns the
// returned store and must Close it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: pool, pool: pool}, nil
}

// Close releases the connection pool, if this store owns one.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// GetByEmail fetches the identity record keyed by email (case-sensitive
// natural key). Absence maps to authgate.ErrIdentityNotFound; every other
// failure (connection, timeout, cancellation) is returned as-is so the
// verifier surfaces it as a transient store outage rather than as invalid
// credentials.
func (s *Store) GetByEmail(ctx context.Context, email string) (*authgate.Identity, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, name, email, password FROM users WHERE email = $1`,
		email,
	)

	var identity authgate.Identity
	err := row.Scan(&identity.ID, &identity.Name, &identity.Email, &identity.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, authgate.ErrIdentityNotFound)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &identity, nil
}
