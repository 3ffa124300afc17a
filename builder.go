package authcore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/plateful/authcore/internal/logging"
	"github.com/plateful/authcore/password"
	"github.com/plateful/authcore/revoke"
	"github.com/plateful/authcore/token"
)

// Builder assembles a Service. Every collaborator is injected here; the
// package keeps no module-level state, so two Services in one process are
// fully independent.
type Builder struct {
	config   Config
	store    CredentialStore
	registry revoke.Registry
	redis    *redis.Client
	log      logging.Logger
	metrics  bool

	built bool
}

// New returns a Builder with default configuration.
func New() *Builder {
	return &Builder{
		config:  defaultConfig(),
		metrics: true,
	}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCredentialStore sets the credential store. Required.
func (b *Builder) WithCredentialStore(store CredentialStore) *Builder {
	b.store = store
	return b
}

// WithRegistry sets an explicit revocation registry, overriding the
// defaults chosen by Build.
func (b *Builder) WithRegistry(registry revoke.Registry) *Builder {
	b.registry = registry
	return b
}

// WithRedis makes Build use a Redis-backed revocation registry, sharing
// revocations across instances and restarts.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithLogger sets the structured logger. Default: discard.
func (b *Builder) WithLogger(log logging.Logger) *Builder {
	b.log = log
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.metrics = enabled
	return b
}

// Build validates the configuration and returns a running Service with its
// sweep loop started. A missing or short signing secret fails here, before
// the process serves a single request.
func (b *Builder) Build() (*Service, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.store == nil {
		return nil, errors.New("credential store required")
	}

	cfg := cloneConfig(b.config)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := b.log
	if log == nil {
		log = logging.Nop()
	}

	tokens, err := token.NewManager(token.Config{
		Secret: cloneBytes(cfg.Token.Secret),
		TTL:    cfg.Token.TTL,
		Issuer: cfg.Token.Issuer,
		Leeway: cfg.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{Cost: cfg.Password.Cost})
	if err != nil {
		return nil, err
	}

	registry := b.registry
	if registry == nil {
		if b.redis != nil {
			registry = revoke.NewRedis(b.redis, cfg.Revocation.RedisPrefix, token.ExpiryOf)
		} else {
			// Known scaling gap: process-local revocations do not
			// survive restarts or span instances.
			log.Warn(context.Background(), "using in-memory revocation registry")
			registry = revoke.NewMemory(token.ExpiryOf)
		}
	}

	sweeper := revoke.NewSweeper(registry, cfg.Revocation.SweepInterval, log)
	sweeper.Start()

	b.built = true
	return &Service{
		config:   cfg,
		store:    b.store,
		tokens:   tokens,
		hasher:   hasher,
		registry: registry,
		sweeper:  sweeper,
		log:      log,
		metrics:  NewMetrics(b.metrics),
	}, nil
}
