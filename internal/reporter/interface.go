package reporter

import (
	"context"
	"reviewd/pkg/domain"
)

// Reporter files fire-and-forget reports and forwards them to the review
// provider. Filing stores a report row and enqueues a forwarding job in one
// transaction; forwarding happens asynchronously and its outcome never
// surfaces to the caller.
//
//go:generate mockgen -package mockreporter -source=interface.go -destination=mock/mockreporter.go *
type Reporter interface {
	// BackInStock files a report that a product listed as deleted is back in
	// stock.
	BackInStock(ctx context.Context, productID domain.ProductID) (*domain.Report, error)
	// AdEvent files an attribution event for a sponsored placement.
	AdEvent(ctx context.Context, productID domain.ProductID, event string, aid string) (*domain.Report, error)
	// ProductReports returns a page of reports filed for the given product,
	// newest first, with cursor-based pagination using RFC3339 timestamps.
	ProductReports(ctx context.Context,
		productID domain.ProductID,
		cursor string,
		limit uint) ([]domain.Report, string, error)
	// Forward delivers a stored report to the provider and settles its status.
	// It is called from the background worker, exactly once per report.
	Forward(ctx context.Context, reportID domain.ReportID) error
}
