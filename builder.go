package authgate

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/finboard/authgate/password"
	"github.com/finboard/authgate/session"
	"github.com/finboard/authgate/token"
)

// Builder defines a public type used by authgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	identities IdentityStore
	auditSink  AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig]. Construction is
// allocation-only; no I/O happens before Build.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder configuration. The config is cloned so the
// caller cannot mutate engine state afterwards.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the session store.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithIdentityStore sets the identity store consulted by the verifier.
func (b *Builder) WithIdentityStore(store IdentityStore) *Builder {
	b.identities = store
	return b
}

// WithAuditSink sets the sink audit events are dispatched to. Without one,
// events go to [NoOpSink] when auditing is enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration, compiles the route table, and wires the
// engine. A builder can build at most one engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.identities == nil {
		return nil, errors.New("identity store required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	routes, err := newRouteTable(b.config.Routes)
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{Cost: b.config.Password.BcryptCost})
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(b.config.Session.SigningKey)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(b.redis, session.Config{
		Prefix:            b.config.Session.RedisPrefix,
		TTL:               b.config.Session.TTL,
		SlidingExpiration: b.config.Session.SlidingExpiration,
	})

	b.built = true

	return &Engine{
		config:     b.config,
		routes:     routes,
		identities: b.identities,
		sessions:   sessions,
		tokens:     tokens,
		hasher:     hasher,
		audit:      newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:    newMetrics(),
	}, nil
}
