package revoke

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const minRedisTTL = time.Second

// Redis is a Registry backed by a shared Redis instance, for deployments
// where logouts must be visible across server instances and survive
// restarts. Each entry is stored with a TTL equal to the token's remaining
// lifetime, so Redis prunes the set on its own and Sweep has nothing to do.
type Redis struct {
	client   *redis.Client
	prefix   string
	expiryOf ExpiryFunc
	now      func() time.Time
}

// NewRedis returns a Redis-backed registry. prefix namespaces the keys;
// empty means "authcore".
func NewRedis(client *redis.Client, prefix string, expiryOf ExpiryFunc) *Redis {
	if prefix == "" {
		prefix = "authcore"
	}
	return &Redis{
		client:   client,
		prefix:   prefix,
		expiryOf: expiryOf,
		now:      time.Now,
	}
}

func (r *Redis) key(raw string) string {
	return r.prefix + ":revoked:" + raw
}

// Revoke stores the entry until the token's own expiry. Tokens that no
// longer decode or are already expired are skipped: they can never verify
// again, so recording them would only waste memory.
func (r *Redis) Revoke(ctx context.Context, raw string) error {
	exp, err := r.expiryOf(raw)
	if err != nil {
		return nil
	}
	ttl := exp.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if ttl < minRedisTTL {
		ttl = minRedisTTL
	}
	return r.client.Set(ctx, r.key(raw), "1", ttl).Err()
}

func (r *Redis) IsRevoked(ctx context.Context, raw string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(raw)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Sweep is a no-op; key TTLs bound the set to the revocations of one token
// lifetime window.
func (r *Redis) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
