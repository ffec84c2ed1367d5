package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportID uniquely identifies a fire-and-forget report.
// It wraps uuid.UUID to provide type safety at the domain layer.
type ReportID uuid.UUID

// String renders the ID in canonical UUID form.
func (id ReportID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID in canonical UUID form for JSON and logging.
func (id ReportID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText parses the canonical UUID form.
func (id *ReportID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return fmt.Errorf("could not parse report id: %w", err)
	}
	*id = ReportID(parsed)

	return nil
}

// ReportKind distinguishes the fire-and-forget report types forwarded to the
// provider.
type ReportKind string

const (
	// ReportKindBackInStock is a user-filed backorder report for a product
	// the provider lists as out of stock.
	ReportKindBackInStock ReportKind = "BACK_IN_STOCK"
	// ReportKindAdEvent is an attribution event for a sponsored placement.
	ReportKindAdEvent ReportKind = "AD_EVENT"
)

// ReportStatus represents the forwarding lifecycle of a report.
type ReportStatus string

const (
	// ReportStatusPending indicates the report is stored but not forwarded yet.
	ReportStatusPending ReportStatus = "PENDING"
	// ReportStatusSent indicates the report reached the provider.
	ReportStatusSent ReportStatus = "SENT"
	// ReportStatusFailed indicates forwarding failed. Reports are never
	// retried; the row is kept for audit only.
	ReportStatusFailed ReportStatus = "FAILED"
)

// Report is a durable record of a fire-and-forget event. Failures to forward
// a report are recorded here and nowhere else; they never surface to session
// state.
type Report struct {
	// ID is the unique identifier of the report.
	ID ReportID `json:"id"`
	// ProductID identifies the product the report is about.
	ProductID ProductID `json:"productId"`

	// Kind selects the provider endpoint the report is forwarded to.
	Kind ReportKind `json:"kind"`
	// Event carries the ad-event name for ReportKindAdEvent; empty otherwise.
	Event string `json:"event,omitempty"`
	// Source identifies the reporting client for attribution.
	Source string `json:"source,omitempty"`
	// AID identifies the sponsored placement for ReportKindAdEvent; empty
	// otherwise.
	AID string `json:"aid,omitempty"`

	// Status is the current forwarding state.
	Status ReportStatus `json:"status"`
	// LastError stores the forwarding error message, if any.
	LastError string `json:"-"`

	// CreatedAt is when the report was filed.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the forwarding state last changed.
	UpdatedAt time.Time `json:"updatedAt"`
}
