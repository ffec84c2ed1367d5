package worker

import (
	"context"
	"errors"
	"fmt"
	"reviewd/internal/reporter"
	"reviewd/pkg/domain"
	"reviewd/pkg/logger"
	"reviewd/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// ForwardReportWorker is a River worker that delivers stored reports to the
// review provider. Each job runs at most once; the reporter records delivery
// failures on the report row, so a returned error here indicates an
// infrastructure problem (e.g. the database), not a provider rejection.
type ForwardReportWorker struct {
	river.WorkerDefaults[reporter.JobArgs]

	reporter reporter.Reporter
}

// NewForwardReportWorker constructs a ForwardReportWorker using the provided reporter.
func NewForwardReportWorker(rep reporter.Reporter) *ForwardReportWorker {
	return &ForwardReportWorker{
		reporter: rep,
	}
}

// Work forwards a single report. A missing report row cancels the job since
// retrying cannot help.
func (w *ForwardReportWorker) Work(ctx context.Context, job *river.Job[reporter.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("reportID", job.Args.ReportID.String()))

	if err := w.reporter.Forward(ctx, domain.ReportID(job.Args.ReportID)); err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error forwarding report", zap.Error(err))

		return fmt.Errorf("could not forward report: %w", err)
	}

	logger.Info(ctx, "report forwarded")

	return nil
}
