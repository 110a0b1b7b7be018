package lexgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each artifact load.
	// size is the artifact size in bytes, err is nil if successful.
	RecordLoad(size int, duration time.Duration, err error)

	// RecordEvaluate is called after each query evaluation.
	// k is the requested result count, scored is the number of postings the
	// evaluation actually scored, err is nil if successful.
	RecordEvaluate(k int, scored uint64, duration time.Duration, err error)

	// RecordRun is called after each batch run.
	RecordRun(queries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)             {}
func (NoopMetricsCollector) RecordEvaluate(int, uint64, time.Duration, error) {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
	LoadBytes          atomic.Int64
	EvaluateCount      atomic.Int64
	EvaluateErrors     atomic.Int64
	EvaluateTotalNanos atomic.Int64
	ScoredPostings     atomic.Int64
	RunCount           atomic.Int64
	RunErrors          atomic.Int64
	RunQueries         atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(size int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadBytes.Add(int64(size))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(k int, scored uint64, duration time.Duration, err error) {
	b.EvaluateCount.Add(1)
	b.EvaluateTotalNanos.Add(duration.Nanoseconds())
	b.ScoredPostings.Add(int64(scored))
	if err != nil {
		b.EvaluateErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(queries int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunQueries.Add(int64(queries))
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:        b.LoadCount.Load(),
		LoadErrors:       b.LoadErrors.Load(),
		LoadBytes:        b.LoadBytes.Load(),
		EvaluateCount:    b.EvaluateCount.Load(),
		EvaluateErrors:   b.EvaluateErrors.Load(),
		EvaluateAvgNanos: b.getAvgEvaluateNanos(),
		ScoredPostings:   b.ScoredPostings.Load(),
		RunCount:         b.RunCount.Load(),
		RunErrors:        b.RunErrors.Load(),
		RunQueries:       b.RunQueries.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEvaluateNanos() int64 {
	count := b.EvaluateCount.Load()
	if count == 0 {
		return 0
	}
	return b.EvaluateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount        int64
	LoadErrors       int64
	LoadBytes        int64
	EvaluateCount    int64
	EvaluateErrors   int64
	EvaluateAvgNanos int64
	ScoredPostings   int64
	RunCount         int64
	RunErrors        int64
	RunQueries       int64
}
