package streamkm

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBatchUpdate is called after each batch update.
	// size is the number of vectors in the batch, duration is the total time
	// taken, err is nil if successful.
	RecordBatchUpdate(size int, duration time.Duration, err error)

	// RecordPredict is called after each predict operation.
	RecordPredict(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatchUpdate(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPredict(time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchUpdateCount      atomic.Int64
	BatchUpdateErrors     atomic.Int64
	BatchUpdateVectors    atomic.Int64
	BatchUpdateTotalNanos atomic.Int64
	PredictCount          atomic.Int64
	PredictErrors         atomic.Int64
	PredictTotalNanos     atomic.Int64
}

// RecordBatchUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchUpdate(size int, duration time.Duration, err error) {
	b.BatchUpdateCount.Add(1)
	b.BatchUpdateVectors.Add(int64(size))
	b.BatchUpdateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchUpdateErrors.Add(1)
	}
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(duration time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PredictErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BatchUpdateCount:    b.BatchUpdateCount.Load(),
		BatchUpdateErrors:   b.BatchUpdateErrors.Load(),
		BatchUpdateVectors:  b.BatchUpdateVectors.Load(),
		BatchUpdateAvgNanos: b.getAvgBatchUpdateNanos(),
		PredictCount:        b.PredictCount.Load(),
		PredictErrors:       b.PredictErrors.Load(),
		PredictAvgNanos:     b.getAvgPredictNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgBatchUpdateNanos() int64 {
	count := b.BatchUpdateCount.Load()
	if count == 0 {
		return 0
	}
	return b.BatchUpdateTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgPredictNanos() int64 {
	count := b.PredictCount.Load()
	if count == 0 {
		return 0
	}
	return b.PredictTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BatchUpdateCount    int64
	BatchUpdateErrors   int64
	BatchUpdateVectors  int64
	BatchUpdateAvgNanos int64
	PredictCount        int64
	PredictErrors       int64
	PredictAvgNanos     int64
}
