// Package reporter implements the durable report pipeline. Reports are
// stored and enqueued transactionally, then forwarded to the provider by a
// background worker.
package reporter

import (
	"context"
	"fmt"
	"reviewd/pkg/domain"
	"reviewd/pkg/metrics"
	"reviewd/pkg/reviews"
	"reviewd/pkg/serrors"
	"reviewd/pkg/storage"
	"time"

	"github.com/google/uuid"
)

// reporter is the concrete implementation of the Reporter interface.
// It coordinates persistence with the storage layer and job enqueueing.
type reporter struct {
	// storage is the persistence layer used to store reports and manage jobs.
	storage storage.Storage
	// client talks to the upstream review provider when forwarding.
	client reviews.Client
	// metrics records forwarding outcomes; may be nil.
	metrics *metrics.Checker
}

// New creates a new Reporter backed by the provided storage and provider
// client. metrics may be nil.
func New(strg storage.Storage, client reviews.Client, m *metrics.Checker) Reporter {
	return &reporter{
		storage: strg,
		client:  client,
		metrics: m,
	}
}

// BackInStock stores a back-in-stock report and enqueues its forwarding job
// in a single transaction.
func (r *reporter) BackInStock(ctx context.Context, productID domain.ProductID) (*domain.Report, error) {
	if err := productID.Validate(); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid product id")
	}

	return r.file(ctx, domain.Report{
		ProductID: productID,
		Kind:      domain.ReportKindBackInStock,
		Status:    domain.ReportStatusPending,
	})
}

// AdEvent stores a sponsored-placement attribution event and enqueues its
// forwarding job in a single transaction. The source is fixed to this
// service's attribution tag.
func (r *reporter) AdEvent(ctx context.Context,
	productID domain.ProductID,
	event string,
	aid string) (*domain.Report, error) {
	if err := productID.Validate(); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid product id")
	}
	if event == "" || aid == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "event and aid are required")
	}

	return r.file(ctx, domain.Report{
		ProductID: productID,
		Kind:      domain.ReportKindAdEvent,
		Event:     event,
		Source:    domain.AdEventSourceFirefox,
		AID:       aid,
		Status:    domain.ReportStatusPending,
	})
}

// file stores the report row and its forwarding job atomically. The job only
// becomes visible to workers once the transaction commits, so a worker can
// never observe a job without its report.
func (r *reporter) file(ctx context.Context, report domain.Report) (*domain.Report, error) {
	var stored *domain.Report
	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreReports(ctx, report)
		if err != nil {
			return fmt.Errorf("could not store report: %w", err)
		}
		stored = &res[0]

		if _, err := tx.AddJob(ctx, JobArgs{ReportID: uuid.UUID(stored.ID)}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not file report: %w", err)
	}

	return stored, nil
}

// ProductReports returns a page of reports for the given product. It supports
// cursor-based pagination using an RFC3339 timestamp string and returns the
// next cursor when more results are available.
func (r *reporter) ProductReports(ctx context.Context,
	productID domain.ProductID,
	cursor string,
	limit uint) ([]domain.Report, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := r.storage.ProductReports(ctx, productID, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get product reports: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Reports, next, nil
}

// Forward loads the stored report, delivers it to the provider, and settles
// the row as sent or failed. Delivery failures are recorded on the row and
// swallowed: the report contract is one attempt, no retries, no caller-visible
// errors.
func (r *reporter) Forward(ctx context.Context, reportID domain.ReportID) error {
	report, err := r.storage.ReportByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("could not load report: %w", err)
	}
	if report == nil {
		return serrors.With(serrors.ErrNotFound, "report not found")
	}
	// already settled, nothing to do
	if report.Status != domain.ReportStatusPending {
		return nil
	}

	sendErr := r.send(ctx, report)

	updates := storage.ReportUpdates{Status: domain.ReportStatusSent}
	outcome := "sent"
	if sendErr != nil {
		msg := sendErr.Error()
		updates = storage.ReportUpdates{
			Status:    domain.ReportStatusFailed,
			LastError: &msg,
		}
		outcome = "failed"
	}
	r.metrics.ReportForwarded(ctx, string(report.Kind), outcome)

	if _, err := r.storage.UpdateReportByID(ctx, reportID, updates); err != nil {
		return fmt.Errorf("could not update report status: %w", err)
	}

	return nil
}

func (r *reporter) send(ctx context.Context, report *domain.Report) error {
	switch report.Kind {
	case domain.ReportKindBackInStock:
		return r.client.ReportBackInStock(ctx, report.ProductID) //nolint: wrapcheck
	case domain.ReportKindAdEvent:
		return r.client.ReportAdEvent(ctx, report.Event, report.Source, report.AID) //nolint: wrapcheck
	default:
		return fmt.Errorf("unknown report kind %q", report.Kind)
	}
}
