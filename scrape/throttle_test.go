package scrape_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/civicdata/clean/mock"
	"github.com/civicdata/clean/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_ZeroDelayNeverBlocks(t *testing.T) {
	t.Parallel()

	th := scrape.NewThrottle(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, th.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestThrottle_EnforcesDelayBetweenRequests(t *testing.T) {
	t.Parallel()

	th := scrape.NewThrottle(50 * time.Millisecond)

	// First request passes immediately, the second waits for the delay.
	start := time.Now()
	require.NoError(t, th.Wait(context.Background()))
	require.NoError(t, th.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestThrottle_ContextCancellation(t *testing.T) {
	t.Parallel()

	th := scrape.NewThrottle(time.Hour)
	require.NoError(t, th.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, th.Wait(ctx))
}

func TestThrottledFetcher_WaitsBeforeEveryRequest(t *testing.T) {
	t.Parallel()

	var waits, fetches int
	limiter := &mock.Limiter{
		WaitFn: func(_ context.Context) error {
			waits++
			return nil
		},
	}
	next := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetches++
			return "<html/>", nil
		},
		FetchAssetFn: func(_ context.Context, url string) (io.ReadCloser, error) {
			fetches++
			return io.NopCloser(nil), nil
		},
	}

	f := scrape.NewThrottledFetcher(next, limiter)

	_, err := f.Fetch(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	_, err = f.FetchAsset(context.Background(), "https://example.com/b")
	require.NoError(t, err)

	// Page and asset requests share the same limiter.
	assert.Equal(t, 2, waits)
	assert.Equal(t, 2, fetches)
}

func TestThrottledFetcher_CanceledWaitSkipsFetch(t *testing.T) {
	t.Parallel()

	limiter := &mock.Limiter{
		WaitFn: func(ctx context.Context) error {
			return context.Canceled
		},
	}
	next := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			t.Fatal("fetch should not run when the limiter rejects")
			return "", nil
		},
	}

	f := scrape.NewThrottledFetcher(next, limiter)

	_, err := f.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
