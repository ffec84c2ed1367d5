package postgres

import (
	"database/sql"
	"reviewd/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgReport struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	ProductID string         `db:"product_id"`
	Kind      string         `db:"kind"`
	Event     sql.NullString `db:"event"`
	Source    sql.NullString `db:"source"`
	Aid       sql.NullString `db:"aid"`

	Status    string         `db:"status"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgReport) ToDomain() *domain.Report {
	return &domain.Report{
		ID:        domain.ReportID(p.ID),
		ProductID: domain.ProductID(p.ProductID),
		Kind:      domain.ReportKind(p.Kind),
		Event:     p.Event.String,
		Source:    p.Source.String,
		AID:       p.Aid.String,
		Status:    domain.ReportStatus(p.Status),
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (p *PgReport) FromDomain(report domain.Report) {
	*p = PgReport{
		ID:        uuid.UUID(report.ID),
		ProductID: string(report.ProductID),
		Kind:      string(report.Kind),
		Event: sql.NullString{
			String: report.Event,
			Valid:  report.Event != "",
		},
		Source: sql.NullString{
			String: report.Source,
			Valid:  report.Source != "",
		},
		Aid: sql.NullString{
			String: report.AID,
			Valid:  report.AID != "",
		},
		Status: string(report.Status),
		LastError: sql.NullString{
			String: report.LastError,
			Valid:  report.LastError != "",
		},
		CreatedAt: report.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  report.UpdatedAt,
			Valid: !report.UpdatedAt.IsZero(),
		},
	}
}

func domainReportsToPg(reports []domain.Report) []PgReport {
	out := make([]PgReport, len(reports))
	for i := range out {
		out[i].FromDomain(reports[i])
	}

	return out
}

func pgReportsToDomain(reports []PgReport) []domain.Report {
	out := make([]domain.Report, 0, len(reports))
	for _, report := range reports {
		out = append(out, *report.ToDomain())
	}

	return out
}
