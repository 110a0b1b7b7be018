package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerDefaults(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(1), c.MaxWorkers())
}

func TestWorkerSlots(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxWorkers: 2})

	require.NoError(t, c.AcquireWorker(ctx))
	require.NoError(t, c.AcquireWorker(ctx))
	assert.Equal(t, int64(2), c.ActiveWorkers())

	assert.False(t, c.TryAcquireWorker(), "all slots busy")

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	c.ReleaseWorker()
	assert.Equal(t, int64(0), c.ActiveWorkers())
}

func TestAcquireWorkerHonorsContext(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	require.NoError(t, c.AcquireWorker(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireWorker(ctx))
}

func TestRateLimiterApplied(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxWorkers: 4, QueriesPerSec: 1000})

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, c.AcquireWorker(ctx))
		c.ReleaseWorker()
	}
	// Three acquisitions at 1000 qps need roughly two refill intervals.
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
