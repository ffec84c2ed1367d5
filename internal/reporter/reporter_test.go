package reporter_test

import (
	"context"
	"errors"
	"reviewd/internal/reporter"
	"reviewd/pkg/domain"
	"reviewd/pkg/serrors"
	"reviewd/pkg/storage"
	mockstorage "reviewd/pkg/storage/mock"
	"testing"
	"time"

	mockreviews "reviewd/pkg/reviews/mock"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newReporter(t *testing.T) (reporter.Reporter, *mockstorage.MockStorage, *mockreviews.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	strg := mockstorage.NewMockStorage(ctrl)
	client := mockreviews.NewMockClient(ctrl)

	return reporter.New(strg, client, nil), strg, client
}

// expectTx makes WithTx run its callback against a transactional mock.
func expectTx(ctrl *gomock.Controller, strg *mockstorage.MockStorage) *mockstorage.MockAllStorage {
	tx := mockstorage.NewMockAllStorage(ctrl)
	strg.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, cb func(storage.AllStorage) error) error {
			return cb(tx)
		})

	return tx
}

func TestReporter_BackInStock_StoresRowAndJobTogether(t *testing.T) {
	ctrl := gomock.NewController(t)
	strg := mockstorage.NewMockStorage(ctrl)
	client := mockreviews.NewMockClient(ctrl)
	rep := reporter.New(strg, client, nil)

	tx := expectTx(ctrl, strg)

	id := domain.ReportID(uuid.New())
	tx.EXPECT().StoreReports(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, reports ...domain.Report) ([]domain.Report, error) {
			require.Len(t, reports, 1)
			require.Equal(t, domain.ReportKindBackInStock, reports[0].Kind)
			require.Equal(t, domain.ReportStatusPending, reports[0].Status)
			stored := reports[0]
			stored.ID = id

			return []domain.Report{stored}, nil
		})
	tx.EXPECT().AddJob(gomock.Any(), reporter.JobArgs{ReportID: uuid.UUID(id)}, nil).Return(true, nil)

	got, err := rep.BackInStock(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
}

func TestReporter_BackInStock_InvalidProductID(t *testing.T) {
	rep, _, _ := newReporter(t)

	_, err := rep.BackInStock(context.Background(), "has spaces")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestReporter_AdEvent_RequiresEventAndAid(t *testing.T) {
	rep, _, _ := newReporter(t)

	_, err := rep.AdEvent(context.Background(), "prod-1", "", "ad-1")
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = rep.AdEvent(context.Background(), "prod-1", domain.AdEventImpression, "")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestReporter_AdEvent_SetsSourceAttribution(t *testing.T) {
	ctrl := gomock.NewController(t)
	strg := mockstorage.NewMockStorage(ctrl)
	client := mockreviews.NewMockClient(ctrl)
	rep := reporter.New(strg, client, nil)

	tx := expectTx(ctrl, strg)
	tx.EXPECT().StoreReports(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, reports ...domain.Report) ([]domain.Report, error) {
			require.Equal(t, domain.AdEventSourceFirefox, reports[0].Source)
			require.Equal(t, "ad-1", reports[0].AID)

			return reports, nil
		})
	tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), nil).Return(true, nil)

	_, err := rep.AdEvent(context.Background(), "prod-1", domain.AdEventImpression, "ad-1")
	require.NoError(t, err)
}

func TestReporter_File_RollsBackOnJobFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	strg := mockstorage.NewMockStorage(ctrl)
	client := mockreviews.NewMockClient(ctrl)
	rep := reporter.New(strg, client, nil)

	tx := expectTx(ctrl, strg)
	tx.EXPECT().StoreReports(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, reports ...domain.Report) ([]domain.Report, error) {
			return reports, nil
		})
	tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), nil).Return(false, errors.New("queue down"))

	_, err := rep.BackInStock(context.Background(), "prod-1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "queue down")
}

func TestReporter_Forward_SendsAndMarksSent(t *testing.T) {
	rep, strg, client := newReporter(t)

	id := domain.ReportID(uuid.New())
	strg.EXPECT().ReportByID(gomock.Any(), id).Return(&domain.Report{
		ID:        id,
		ProductID: "prod-1",
		Kind:      domain.ReportKindBackInStock,
		Status:    domain.ReportStatusPending,
	}, nil)
	client.EXPECT().ReportBackInStock(gomock.Any(), domain.ProductID("prod-1")).Return(nil)
	strg.EXPECT().UpdateReportByID(gomock.Any(), id, storage.ReportUpdates{
		Status: domain.ReportStatusSent,
	}).Return(&domain.Report{}, nil)

	require.NoError(t, rep.Forward(context.Background(), id))
}

func TestReporter_Forward_RecordsFailureWithoutError(t *testing.T) {
	rep, strg, client := newReporter(t)

	id := domain.ReportID(uuid.New())
	strg.EXPECT().ReportByID(gomock.Any(), id).Return(&domain.Report{
		ID:     id,
		Kind:   domain.ReportKindAdEvent,
		Event:  domain.AdEventImpression,
		Source: domain.AdEventSourceFirefox,
		AID:    "ad-1",
		Status: domain.ReportStatusPending,
	}, nil)
	client.EXPECT().
		ReportAdEvent(gomock.Any(), domain.AdEventImpression, domain.AdEventSourceFirefox, "ad-1").
		Return(errors.New("provider is down"))
	strg.EXPECT().UpdateReportByID(gomock.Any(), id, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.ReportID, updates storage.ReportUpdates) (*domain.Report, error) {
			require.Equal(t, domain.ReportStatusFailed, updates.Status)
			require.NotNil(t, updates.LastError)
			require.Contains(t, *updates.LastError, "provider is down")

			return &domain.Report{}, nil
		})

	// a failed forward settles the row but is not an error for the worker
	require.NoError(t, rep.Forward(context.Background(), id))
}

func TestReporter_Forward_AlreadySettledIsNoop(t *testing.T) {
	rep, strg, _ := newReporter(t)

	id := domain.ReportID(uuid.New())
	strg.EXPECT().ReportByID(gomock.Any(), id).Return(&domain.Report{
		ID:     id,
		Status: domain.ReportStatusSent,
	}, nil)

	require.NoError(t, rep.Forward(context.Background(), id))
}

func TestReporter_Forward_MissingReport(t *testing.T) {
	rep, strg, _ := newReporter(t)

	id := domain.ReportID(uuid.New())
	strg.EXPECT().ReportByID(gomock.Any(), id).Return(nil, nil)

	err := rep.Forward(context.Background(), id)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestReporter_ProductReports_CursorHandling(t *testing.T) {
	rep, strg, _ := newReporter(t)

	_, _, err := rep.ProductReports(context.Background(), "prod-1", "not-a-time", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	next := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	strg.EXPECT().
		ProductReports(gomock.Any(), domain.ProductID("prod-1"), time.Time{}, uint(10)).
		Return(storage.ProductReports{
			Reports:    []domain.Report{{ProductID: "prod-1"}},
			NextCursor: &next,
		}, nil)

	reports, cursor, err := rep.ProductReports(context.Background(), "prod-1", "", 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, next.Format(time.RFC3339), cursor)
}

func TestJobArgs_FireAndForget(t *testing.T) {
	args := reporter.JobArgs{ReportID: uuid.New()}
	require.Equal(t, "ForwardReportJob", args.Kind())

	opts := args.InsertOpts()
	require.Equal(t, 1, opts.MaxAttempts)
	require.Equal(t, river.UniqueOpts{}, opts.UniqueOpts)
}
