package postgres_test

import (
	"context"
	"reviewd/pkg/domain"
	"reviewd/pkg/storage"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreReports(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	t.Run("store single report", func(t *testing.T) {
		t.Parallel()

		r := domain.Report{
			ProductID: "prod-1",
			Kind:      domain.ReportKindBackInStock,
			Status:    domain.ReportStatusPending,
		}

		res, err := pgSQL.StoreReports(ctx, r)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, domain.ProductID("prod-1"), res[0].ProductID)
		require.Equal(t, domain.ReportStatusPending, res[0].Status)
		require.False(t, res[0].CreatedAt.IsZero())
	})

	t.Run("store ad event report", func(t *testing.T) {
		t.Parallel()

		r := domain.Report{
			ProductID: "prod-2",
			Kind:      domain.ReportKindAdEvent,
			Event:     domain.AdEventImpression,
			Source:    domain.AdEventSourceFirefox,
			AID:       "ad-1",
			Status:    domain.ReportStatusPending,
		}

		res, err := pgSQL.StoreReports(ctx, r)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, domain.AdEventImpression, res[0].Event)
		require.Equal(t, "ad-1", res[0].AID)
	})

	t.Run("store empty reports", func(t *testing.T) {
		t.Parallel()

		res, err := pgSQL.StoreReports(ctx)
		require.NoError(t, err)
		require.Nil(t, res)
	})
}

func TestPgSQL_ReportByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	stored, err := pgSQL.StoreReports(ctx, domain.Report{
		ProductID: "prod-3",
		Kind:      domain.ReportKindBackInStock,
		Status:    domain.ReportStatusPending,
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got, err := pgSQL.ReportByID(ctx, stored[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, stored[0].ID, got.ID)

	missing, err := pgSQL.ReportByID(ctx, domain.ReportID{})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_UpdateReportByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	stored, err := pgSQL.StoreReports(ctx, domain.Report{
		ProductID: "prod-4",
		Kind:      domain.ReportKindBackInStock,
		Status:    domain.ReportStatusPending,
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	t.Run("mark failed with error", func(t *testing.T) {
		msg := "provider returned 502"
		got, err := pgSQL.UpdateReportByID(ctx, stored[0].ID, storage.ReportUpdates{
			Status:    domain.ReportStatusFailed,
			LastError: &msg,
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, domain.ReportStatusFailed, got.Status)
		require.Equal(t, msg, got.LastError)
		require.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("clear error on success", func(t *testing.T) {
		empty := ""
		got, err := pgSQL.UpdateReportByID(ctx, stored[0].ID, storage.ReportUpdates{
			Status:    domain.ReportStatusSent,
			LastError: &empty,
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, domain.ReportStatusSent, got.Status)
		require.Empty(t, got.LastError)
	})

	t.Run("missing report returns nil", func(t *testing.T) {
		got, err := pgSQL.UpdateReportByID(ctx, domain.ReportID{}, storage.ReportUpdates{
			Status: domain.ReportStatusSent,
		})
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestPgSQL_ProductReports_Pagination(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	for range 5 {
		_, err := pgSQL.StoreReports(ctx, domain.Report{
			ProductID: "prod-5",
			Kind:      domain.ReportKindBackInStock,
			Status:    domain.ReportStatusPending,
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	page1, err := pgSQL.ProductReports(ctx, "prod-5", time.Time{}, 3)
	require.NoError(t, err)
	require.Len(t, page1.Reports, 3)
	require.NotNil(t, page1.NextCursor)

	page2, err := pgSQL.ProductReports(ctx, "prod-5", *page1.NextCursor, 3)
	require.NoError(t, err)
	require.Len(t, page2.Reports, 2)
	require.Nil(t, page2.NextCursor)

	// newest first
	require.True(t, page1.Reports[0].CreatedAt.After(page2.Reports[len(page2.Reports)-1].CreatedAt))

	// other products are not included
	other, err := pgSQL.ProductReports(ctx, "prod-unknown", time.Time{}, 3)
	require.NoError(t, err)
	require.Empty(t, other.Reports)
	require.Nil(t, other.NextCursor)
}
