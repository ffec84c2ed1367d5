package domain

import (
	"fmt"
	"strings"
)

// maxProductIDLen bounds the length of product identifiers accepted from
// clients. Upstream identifiers are short opaque tokens; anything longer is
// rejected before it reaches the provider.
const maxProductIDLen = 128

// ProductID is the opaque identifier of a product as known by the upstream
// review-analysis provider. It correlates fetch, poll and cache operations
// for a single analysis request.
type ProductID string

// Validate checks that the identifier is non-empty, within length bounds and
// contains only characters the provider accepts in a path segment.
func (id ProductID) Validate() error {
	if id == "" {
		return fmt.Errorf("product id is empty")
	}
	if len(id) > maxProductIDLen {
		return fmt.Errorf("product id exceeds %d characters", maxProductIDLen)
	}
	if strings.ContainsAny(string(id), " /\\?#%") {
		return fmt.Errorf("product id contains invalid characters")
	}

	return nil
}

// Grade is the letter reliability grade assigned to a product's reviews by
// the analysis provider (A best, F worst).
type Grade string

// ProductAnalysis is a snapshot of a product's review-analysis result as
// produced by the upstream provider. It is immutable once produced for a
// given request; a refetch yields a new snapshot.
type ProductAnalysis struct {
	// ProductID identifies the analyzed product.
	ProductID ProductID `json:"productId"`

	// Grade is the reliability grade. Nil when the product has not been
	// analyzed yet or analysis is not applicable.
	Grade *Grade `json:"grade,omitempty"`
	// AdjustedRating is the provider-adjusted star rating after unreliable
	// reviews are discounted. Nil when unavailable.
	AdjustedRating *float64 `json:"adjustedRating,omitempty"`
	// Highlights groups representative review quotes by category
	// (e.g. "price", "quality", "shipping").
	Highlights map[string][]string `json:"highlights,omitempty"`

	// NotSupported reports that the product page cannot be analyzed at all.
	NotSupported bool `json:"notSupported"`
	// NotEnoughReviews reports that the product has too few reviews for a
	// meaningful analysis.
	NotEnoughReviews bool `json:"notEnoughReviews"`
	// NeedsAnalysis reports that the stored analysis is stale or missing and
	// the user may trigger a fresh one.
	NeedsAnalysis bool `json:"needsAnalysis"`
	// NotAnalyzed reports that no analysis has ever been run for the product.
	NotAnalyzed bool `json:"notAnalyzed"`
	// InfoComingSoon reports that analysis for this product category is not
	// available yet but is planned.
	InfoComingSoon bool `json:"infoComingSoon"`
	// ReportInStockVisible reports that the provider believes the product is
	// out of stock and a back-in-stock report may be filed.
	ReportInStockVisible bool `json:"reportInStockVisible"`
}

// RatingOrZero returns the adjusted rating, treating a missing rating as 0.
// Ad selection relies on this default so that unrated products qualify for
// any sponsored placement.
func (p *ProductAnalysis) RatingOrZero() float64 {
	if p == nil || p.AdjustedRating == nil {
		return 0
	}

	return *p.AdjustedRating
}
