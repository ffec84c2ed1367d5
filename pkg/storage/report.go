package storage

import (
	"context"
	"reviewd/pkg/domain"
	"time"
)

// ReportUpdates describes a set of optional fields that can be applied to an
// existing report during an update. Only provided fields are changed.
type ReportUpdates struct {
	// Status is the new forwarding status to set for the report.
	Status domain.ReportStatus
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
}

// ProductReports groups a page of reports for a product together with an
// optional NextCursor used for pagination.
type ProductReports struct {
	// Reports contains the current page of report records.
	Reports []domain.Report
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// ReportStorage defines persistence operations for fire-and-forget reports.
// Reports are append-mostly: rows are inserted when filed and updated exactly
// once when forwarding settles.
type ReportStorage interface {
	// StoreReports inserts one or more reports and returns the stored rows as
	// they exist in the database (including generated fields).
	StoreReports(ctx context.Context, reports ...domain.Report) ([]domain.Report, error)
	// ReportByID fetches a report by its ID. Returns nil when not found.
	ReportByID(ctx context.Context, ID domain.ReportID) (*domain.Report, error)
	// UpdateReportByID updates a single report identified by its ID and returns
	// the updated row, or nil if it was not found. updated_at is set
	// automatically. Only provided fields are changed.
	UpdateReportByID(ctx context.Context, ID domain.ReportID, updates ReportUpdates) (*domain.Report, error)
	// ProductReports returns a page of reports for a product created before the
	// optional cursor time, limited by the given limit, newest first.
	ProductReports(ctx context.Context,
		productID domain.ProductID,
		cursor time.Time,
		limit uint) (ProductReports, error)
}
