// Package adscache provides a keyed pass-through cache for sponsored-ad
// lists. Ads are independent of analysis status, so a session can reuse a
// cached list across refetches instead of hitting the provider every cycle.
//
// The cache makes no exclusivity promise on population: two concurrent
// lookups that both miss may both fetch and both write. The overwrite is
// idempotent, so that race is benign.
//
//go:generate mockgen -package mockadscache -source=adscache.go -destination=mock/mockadscache.go *
package adscache

import (
	"context"
	"reviewd/pkg/domain"
)

// Cache is a keyed store of sponsored-ad lists by product identifier.
// No eviction policy is mandated; implementations may expire entries.
type Cache interface {
	// Get returns the cached ads for the product and whether an entry existed.
	Get(ctx context.Context, id domain.ProductID) ([]domain.Ad, bool, error)
	// Put stores the ads for the product, replacing any existing entry.
	Put(ctx context.Context, id domain.ProductID, ads []domain.Ad) error
}
