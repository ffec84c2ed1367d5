package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"reviewd/internal/reporter"
	mockreporter "reviewd/internal/reporter/mock"
	"reviewd/internal/worker"
	"reviewd/pkg/domain"
	"reviewd/pkg/logger"
	"reviewd/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, reportID uuid.UUID) *river.Job[reporter.JobArgs] {
	return &river.Job[reporter.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   reporter.JobArgs{ReportID: reportID},
	}
}

func TestForwardReportWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockreporter.NewMockReporter(ctrl)
	w := worker.NewForwardReportWorker(mock)

	id := uuid.New()
	mock.EXPECT().Forward(gomock.Any(), domain.ReportID(id)).Return(nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, id)))
}

func TestForwardReportWorker_Work_MissingReportCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockreporter.NewMockReporter(ctrl)
	w := worker.NewForwardReportWorker(mock)

	id := uuid.New()
	mock.EXPECT().Forward(gomock.Any(), domain.ReportID(id)).
		Return(serrors.With(serrors.ErrNotFound, "report not found"))

	err := w.Work(context.Background(), makeJob(2, id))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestForwardReportWorker_Work_InfrastructureErrorWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockreporter.NewMockReporter(ctrl)
	w := worker.NewForwardReportWorker(mock)

	id := uuid.New()
	mock.EXPECT().Forward(gomock.Any(), domain.ReportID(id)).Return(errors.New("db down"))

	err := w.Work(context.Background(), makeJob(3, id))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "did not expect JobCancelError")
	require.Contains(t, err.Error(), "db down")
}
