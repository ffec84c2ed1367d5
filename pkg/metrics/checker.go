package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Checker holds the session-level instruments. All methods are safe for
// concurrent use and no-ops on a nil receiver, so wiring metrics stays
// optional in tests.
type Checker struct {
	sessions   metric.Int64UpDownCounter
	fetches    metric.Int64Counter
	pollTicks  metric.Int64Counter
	fetchSecs  metric.Float64Histogram
	reportsFwd metric.Int64Counter
}

// NewChecker creates the session instruments on the given meter provider.
func NewChecker(mp metric.MeterProvider) (*Checker, error) {
	meter := mp.Meter("reviewd/checker")

	sessions, err := meter.Int64UpDownCounter("checker.sessions.active",
		metric.WithDescription("Number of open review-checker sessions."))
	if err != nil {
		return nil, fmt.Errorf("could not create sessions counter: %w", err)
	}

	fetches, err := meter.Int64Counter("checker.fetch.cycles",
		metric.WithDescription("Number of completed fetch cycles by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create fetch counter: %w", err)
	}

	pollTicks, err := meter.Int64Counter("checker.poll.iterations",
		metric.WithDescription("Number of analysis-status poll iterations."))
	if err != nil {
		return nil, fmt.Errorf("could not create poll counter: %w", err)
	}

	fetchSecs, err := meter.Float64Histogram("checker.fetch.duration",
		metric.WithDescription("Fetch cycle duration."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create fetch histogram: %w", err)
	}

	reportsFwd, err := meter.Int64Counter("checker.reports.forwarded",
		metric.WithDescription("Number of reports forwarded to the provider by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create reports counter: %w", err)
	}

	return &Checker{
		sessions:   sessions,
		fetches:    fetches,
		pollTicks:  pollTicks,
		fetchSecs:  fetchSecs,
		reportsFwd: reportsFwd,
	}, nil
}

// SessionOpened increments the active-session gauge.
func (c *Checker) SessionOpened(ctx context.Context) {
	if c == nil {
		return
	}

	c.sessions.Add(ctx, 1)
}

// SessionClosed decrements the active-session gauge.
func (c *Checker) SessionClosed(ctx context.Context) {
	if c == nil {
		return
	}

	c.sessions.Add(ctx, -1)
}

// FetchCycle records one completed fetch cycle with its outcome and duration.
func (c *Checker) FetchCycle(ctx context.Context, outcome string, seconds float64) {
	if c == nil {
		return
	}

	c.fetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	c.fetchSecs.Record(ctx, seconds, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// PollIteration records one analysis-status poll round trip.
func (c *Checker) PollIteration(ctx context.Context) {
	if c == nil {
		return
	}

	c.pollTicks.Add(ctx, 1)
}

// ReportForwarded records one report forwarding attempt by kind and outcome.
func (c *Checker) ReportForwarded(ctx context.Context, kind string, outcome string) {
	if c == nil {
		return
	}

	c.reportsFwd.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}
