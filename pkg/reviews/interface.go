// Package reviews defines the interface and data types used to talk to the
// upstream review-analysis provider: fetching analysis snapshots, polling
// analysis status, triggering fresh analyses, loading sponsored ads and
// filing fire-and-forget reports.
package reviews

import (
	"context"
	"reviewd/pkg/domain"
)

// Client is the abstraction over the review-analysis provider. All methods
// are fallible and transport-agnostic; nil pointer results mean the provider
// had nothing to report for the product rather than an error.
//
//go:generate mockgen -package mockreviews -source=interface.go -destination=mock/mockclient.go *
type Client interface {
	// ProductAnalysis fetches the current analysis snapshot for a product.
	// Returns nil when the provider has no analysis for the product.
	ProductAnalysis(ctx context.Context, id domain.ProductID) (*domain.ProductAnalysis, error)
	// AnalysisStatus queries the progress of an in-flight analysis request.
	// Returns nil when no analysis request exists for the product.
	AnalysisStatus(ctx context.Context, id domain.ProductID) (*domain.AnalysisStatus, error)
	// TriggerAnalysis asks the provider to start a fresh analysis and returns
	// the initial status, or nil when the provider did not accept the request.
	TriggerAnalysis(ctx context.Context, id domain.ProductID) (*domain.AnalysisStatus, error)
	// ProductAds loads the sponsored-product entries for a product page.
	ProductAds(ctx context.Context, id domain.ProductID) ([]domain.Ad, error)
	// ReportBackInStock files a backorder report for an out-of-stock product.
	ReportBackInStock(ctx context.Context, id domain.ProductID) error
	// ReportAdEvent sends an attribution event for the sponsored placement aid.
	ReportAdEvent(ctx context.Context, event, source, aid string) error
}
