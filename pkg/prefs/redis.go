package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reviewd:prefs:"

// Redis is a Store backed by a shared Redis instance so preferences survive
// restarts and are visible to all replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed preference store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Bool returns the stored value for key, or def when the key was never set.
func (r *Redis) Bool(ctx context.Context, key string, def bool) (bool, error) {
	v, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("could not get preference from redis: %w", err)
	}

	return v == "1", nil
}

// SetBool stores the value for key.
func (r *Redis) SetBool(ctx context.Context, key string, value bool) error {
	v := "0"
	if value {
		v = "1"
	}

	if err := r.client.Set(ctx, keyPrefix+key, v, 0).Err(); err != nil {
		return fmt.Errorf("could not store preference in redis: %w", err)
	}

	return nil
}

// Ensure Redis conforms to the Store interface at compile time.
var _ Store = (*Redis)(nil)
