package adscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reviewd/pkg/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cache entries so the store can be shared with other
// keys (e.g. preferences) on the same Redis instance.
const keyPrefix = "reviewd:ads:"

// Redis is a Cache backed by a shared Redis instance, for deployments where
// several service replicas should reuse each other's ad fetches.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache. Entries expire after ttl; a zero
// ttl keeps them until Redis evicts.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached ads for the product and whether an entry existed.
func (r *Redis) Get(ctx context.Context, id domain.ProductID) ([]domain.Ad, bool, error) {
	b, err := r.client.Get(ctx, keyPrefix+string(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not get ads from redis: %w", err)
	}

	var ads []domain.Ad
	if err := json.Unmarshal(b, &ads); err != nil {
		return nil, false, fmt.Errorf("could not decode cached ads: %w", err)
	}

	return ads, true, nil
}

// Put stores the ads for the product, replacing any existing entry.
func (r *Redis) Put(ctx context.Context, id domain.ProductID, ads []domain.Ad) error {
	b, err := json.Marshal(ads)
	if err != nil {
		return fmt.Errorf("could not encode ads: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+string(id), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("could not store ads in redis: %w", err)
	}

	return nil
}

// Ensure Redis conforms to the Cache interface at compile time.
var _ Cache = (*Redis)(nil)
