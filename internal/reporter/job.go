package reporter

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// JobArgs contains the arguments for a report forwarding job submitted to
// River. The job carries only the report ID; the payload itself lives in the
// reports table and commits atomically with the job insert.
type JobArgs struct {
	// ReportID identifies the stored report to forward.
	ReportID uuid.UUID `json:"report_id"`
}

// Kind returns the River job kind used to register and dispatch the forward worker.
func (args JobArgs) Kind() string { return "ForwardReportJob" }

// InsertOpts returns the River options controlling how the job is enqueued.
// Reports are fire-and-forget: a single attempt, never retried. A failed
// forward is recorded on the report row and goes nowhere else.
func (args JobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: 1,
	}
}
