// Package resource bounds how aggressively the evaluation driver uses the
// machine: worker slots for concurrent queries and an optional query rate
// limit.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds evaluation resource limits.
type Config struct {
	// MaxWorkers is the maximum number of queries evaluated concurrently.
	// If 0, defaults to 1.
	MaxWorkers int64

	// QueriesPerSec throttles how many queries may start per second.
	// If 0, unlimited.
	QueriesPerSec float64
}

// Controller gates query evaluation against the configured limits.
type Controller struct {
	cfg Config

	workers *semaphore.Weighted
	active  atomic.Int64

	limiter *rate.Limiter
}

// NewController creates a controller for the given limits.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.QueriesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSec), 1)
	}

	return c
}

// MaxWorkers reports the configured worker limit.
func (c *Controller) MaxWorkers() int64 {
	return c.cfg.MaxWorkers
}

// AcquireWorker reserves a worker slot, blocking while all slots are busy
// and waiting out the rate limit if one is configured.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if err := c.workers.Acquire(ctx, 1); err != nil {
		return err
	}

	c.active.Add(1)
	return nil
}

// TryAcquireWorker reserves a worker slot without blocking. The rate limit
// is not consulted.
func (c *Controller) TryAcquireWorker() bool {
	if !c.workers.TryAcquire(1) {
		return false
	}
	c.active.Add(1)
	return true
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	c.active.Add(-1)
	c.workers.Release(1)
}

// ActiveWorkers returns the number of slots currently held.
func (c *Controller) ActiveWorkers() int64 {
	return c.active.Load()
}
