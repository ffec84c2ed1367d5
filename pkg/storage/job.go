package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs.
// Implementations persist the job into the underlying queue backend. The args
// parameter carries the job payload and opts can be used to customize
// insertion behavior (e.g. queue name, max attempts, uniqueness).
//
// Insertion should be atomic with respect to any surrounding transaction when
// the backend supports it, so that a report row and its forwarding job commit
// or roll back together.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. The boolean result
	// reports whether a job was actually inserted (false when skipped as a
	// duplicate by unique options).
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
