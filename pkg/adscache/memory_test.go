package adscache_test

import (
	"context"
	"reviewd/pkg/adscache"
	"reviewd/pkg/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_GetMiss(t *testing.T) {
	c := adscache.NewMemory()

	ads, ok, err := c.Get(context.Background(), "p-1")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, ads)
}

func TestMemory_PutGet(t *testing.T) {
	c := adscache.NewMemory()
	in := []domain.Ad{{AID: "ad-1", AdjustedRating: 4.5}}

	require.NoError(t, c.Put(context.Background(), "p-1", in))

	ads, ok, err := c.Get(context.Background(), "p-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, ads)

	// mutating the returned slice must not affect the cache
	ads[0].AID = "mutated"
	again, _, err := c.Get(context.Background(), "p-1")
	require.NoError(t, err)
	require.Equal(t, "ad-1", again[0].AID)
}

func TestMemory_EmptyListIsAHit(t *testing.T) {
	c := adscache.NewMemory()
	require.NoError(t, c.Put(context.Background(), "p-1", nil))

	ads, ok, err := c.Get(context.Background(), "p-1")
	require.NoError(t, err)
	require.True(t, ok, "an empty ads list is still a cached answer")
	require.Empty(t, ads)
}

func TestMemory_ConcurrentPopulate(t *testing.T) {
	c := adscache.NewMemory()
	in := []domain.Ad{{AID: "ad-1"}}

	// the benign double-populate race: both writers win, last overwrite is
	// idempotent
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Put(context.Background(), "p-1", in)
			_, _, _ = c.Get(context.Background(), "p-1")
		}()
	}
	wg.Wait()

	ads, ok, err := c.Get(context.Background(), "p-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, ads)
}
