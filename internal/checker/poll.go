package checker

import (
	"context"
	"fmt"
	"reviewd/pkg/domain"
	"reviewd/pkg/reviews"
	"time"
)

// poller queries the analysis status of a product in a loop with a linearly
// decreasing delay: the first sleep lasts Initial, each following one is
// Decrement shorter, and no sleep goes below Floor. The schedule starts
// conservatively because a freshly triggered analysis takes a while, then
// speeds up to detect completion promptly.
type poller struct {
	client reviews.Client

	initial   time.Duration
	decrement time.Duration
	floor     time.Duration

	// sleep is swappable in tests so the schedule can be asserted without
	// waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

func newPoller(client reviews.Client, opts Options) *poller {
	return &poller{
		client:    client,
		initial:   opts.InitialPollInterval,
		decrement: opts.PollDecrement,
		floor:     opts.MinPollInterval,
		sleep:     sleepCtx,
	}
}

// run polls until the provider stops returning a status (completion signal),
// the status is no longer analyzing, or ctx is cancelled. Every received
// status is passed to yield before the loop decides whether to continue, so
// the consumer sees the terminal status and can react with a refetch. A nil
// status is not yielded.
//
// Cancellation interrupts both the sleep and any further provider calls and
// is returned as ctx.Err().
func (p *poller) run(ctx context.Context, id domain.ProductID, yield func(domain.AnalysisStatus)) error {
	delay := p.initial
	for {
		if err := ctx.Err(); err != nil {
			return err //nolint: wrapcheck
		}

		status, err := p.client.AnalysisStatus(ctx, id)
		if err != nil {
			return fmt.Errorf("could not poll analysis status: %w", err)
		}
		if status == nil {
			return nil
		}

		yield(*status)
		if !status.IsAnalyzing() {
			return nil
		}

		if err := p.sleep(ctx, delay); err != nil {
			return err //nolint: wrapcheck
		}

		delay -= p.decrement
		if delay < p.floor {
			delay = p.floor
		}
	}
}

// sleepCtx sleeps for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint: wrapcheck
	case <-t.C:
		return nil
	}
}
