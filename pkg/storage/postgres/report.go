package postgres

import (
	"context"
	"fmt"
	"reviewd/pkg/domain"
	"reviewd/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	reportsTable = "reports"
)

func (p *PgSQL) StoreReports(ctx context.Context, reports ...domain.Report) ([]domain.Report, error) {
	if len(reports) == 0 {
		return nil, nil
	}

	var result []PgReport
	if err := p.Builder.Insert(reportsTable).
		Rows(domainReportsToPg(reports)).
		Returning(&PgReport{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store reports into pg: %w", err)
	}

	return pgReportsToDomain(result), nil
}

// ReportByID fetches a report by its ID. Returns nil when not found.
func (p *PgSQL) ReportByID(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	var row PgReport
	found, err := p.Builder.From(reportsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch report by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UpdateReportByID updates a single report identified by its ID and returns the
// updated row, or nil if it was not found. updated_at is set automatically.
func (p *PgSQL) UpdateReportByID(ctx context.Context,
	id domain.ReportID,
	updates storage.ReportUpdates) (*domain.Report, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"status":     updates.Status,
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgReport
	found, err := p.Builder.Update(reportsTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgReport{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update report in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// ProductReports returns a page of reports for a product filtered by optional
// cursor and limited by limit. Results are ordered by created_at DESC, id DESC.
func (p *PgSQL) ProductReports(ctx context.Context,
	productID domain.ProductID,
	cursor time.Time,
	limit uint) (storage.ProductReports, error) {
	w := []goqu.Expression{
		goqu.I("product_id").Eq(string(productID)),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(reportsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgReport
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.ProductReports{}, fmt.Errorf("could not fetch product reports from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	return storage.ProductReports{
		Reports:    pgReportsToDomain(rows),
		NextCursor: nextCursor,
	}, nil
}
