package hpgeom

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational measurements from region queries and
// batch conversions. See package prommetrics for a Prometheus implementation.
type MetricsCollector interface {
	// RecordQuery is called after each region query. kind is one of "disc",
	// "polygon" or "strip", pixels the number of pixels returned.
	RecordQuery(kind string, pixels int, duration time.Duration, err error)

	// RecordBatch is called after each batch operation. failed counts the
	// elements replaced by sentinels, or 1 when the batch was aborted.
	RecordBatch(op string, count, failed int, duration time.Duration)
}

type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(string, int, int, time.Duration)  {}

// BasicMetricsCollector keeps in-memory counters. Useful in tests and for
// debugging without an external metrics system.
type BasicMetricsCollector struct {
	QueryCount     atomic.Int64
	QueryErrors    atomic.Int64
	QueryPixels    atomic.Int64
	BatchCount     atomic.Int64
	BatchElements  atomic.Int64
	BatchFailures  atomic.Int64
	TotalQueryTime atomic.Int64
}

func (b *BasicMetricsCollector) RecordQuery(_ string, pixels int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryPixels.Add(int64(pixels))
	b.TotalQueryTime.Add(int64(duration))
}

func (b *BasicMetricsCollector) RecordBatch(_ string, count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchElements.Add(int64(count))
	b.BatchFailures.Add(int64(failed))
}
