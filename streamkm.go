// Package streamkm provides incremental (streaming) k-means clustering for Go.
//
// A StreamingKMeans holds a single authoritative cluster model that is carried
// across successive batches of fixed-dimension vectors. Every batch is merged
// into the model and immediately labeled against the updated centers, so each
// vector receives an online cluster label as it arrives.
//
// Two weighting regimes are supported, selected by alpha:
//
//   - mini-batch (alpha == 1, default): centers are the exact running mean of
//     every point ever assigned to them; counts grow without bound.
//   - forgetful (alpha != 1): centers follow a per-batch exponential moving
//     average, discounting old batches at batch granularity.
//
// # Quick Start
//
//	ctx := context.Background()
//	skm, err := streamkm.New(8, 128,
//	    streamkm.WithAlpha(0.5),
//	    streamkm.WithMaxIterations(2),
//	    streamkm.WithInitMode(streamkm.InitUniformPositive),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for batch := range source {
//	    labels, err := skm.Update(ctx, batch)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    sink(labels)
//	}
//
// Batches are processed strictly one at a time; within a batch the assignment
// reduction runs across parallel partitions. Labeling reads a lock-free model
// snapshot, so Predict never blocks behind an in-flight update.
package streamkm

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/streamkm/internal/model"
	"github.com/hupe1980/streamkm/internal/update"
)

// State describes the lifecycle of a StreamingKMeans. The transition from
// StateUninitialized to StateRunning happens on the first batch and is
// irreversible; there is no terminal state while the stream is alive.
type State int32

const (
	StateUninitialized State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// StreamingKMeans clusters an unbounded sequence of vectors into k groups.
//
// The authoritative model lives behind an atomic pointer and is replaced, not
// mutated, once per batch: readers always observe either the state before a
// batch or after it, never a partial multi-round merge. Update callers are
// serialized by a write mutex; all other methods are safe for concurrent use
// without blocking updates.
type StreamingKMeans struct {
	k       int
	dim     int
	opts    options
	updater update.Updater

	writeMu sync.Mutex // Serializes batch updates only
	current atomic.Pointer[model.Model]
	state   atomic.Int32
	stats   *streamStats
}

// New creates a StreamingKMeans for k clusters of dimensionality dim.
//
// Configuration is validated eagerly: an invalid k, dim, maxIterations or
// initialization mode errors here, before any batch is accepted. The initial
// random centers are drawn immediately, single-threaded, so no concurrency
// hazard exists around initialization.
func New(k, dim int, optFns ...Option) (*StreamingKMeans, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}

	opts := applyOptions(optFns)

	if opts.maxIterations < 1 {
		return nil, ErrInvalidMaxIterations
	}

	var initMode model.InitMode
	switch opts.initMode {
	case InitGaussian:
		initMode = model.InitGaussian
	case InitUniformPositive:
		initMode = model.InitUniformPositive
	default:
		return nil, &ErrInvalidInitMode{Mode: opts.initMode}
	}

	m, err := model.NewRandom(k, dim, initMode, opts.rng)
	if err != nil {
		return nil, err
	}

	skm := &StreamingKMeans{
		k:    k,
		dim:  dim,
		opts: opts,
		updater: update.Updater{
			Alpha:         opts.alpha,
			MaxIterations: opts.maxIterations,
			Partitions:    opts.partitions,
		},
		stats: newStreamStats(),
	}
	skm.current.Store(m)

	skm.opts.logger.WithK(k).WithDimension(dim).WithAlpha(opts.alpha).Debug("model initialized",
		"init_mode", opts.initMode.String(),
	)

	return skm, nil
}

// Update merges one batch into the model and returns one label per batch
// vector, in the batch's original order, computed against the just-updated
// centers.
//
// The batch is the atomic unit of update: either the full multi-round merge
// commits and the model is replaced, or the previous model remains
// authoritative. In particular:
//
//   - A vector of the wrong dimensionality aborts the whole batch before any
//     model change; the error identifies the offending length.
//   - Cancellation via ctx aborts the batch; the previous model stays in
//     place and the same batch may be redelivered later.
//
// Update is safe for concurrent use; concurrent callers are serialized so the
// next batch never begins before the prior replacement has committed.
func (skm *StreamingKMeans) Update(ctx context.Context, batch [][]float64) ([]int, error) {
	start := time.Now()

	labels, err := skm.update(ctx, batch)

	skm.opts.metricsCollector.RecordBatchUpdate(len(batch), time.Since(start), err)
	skm.opts.logger.LogBatchUpdate(ctx, len(batch), skm.opts.maxIterations, err)

	return labels, err
}

func (skm *StreamingKMeans) update(ctx context.Context, batch [][]float64) ([]int, error) {
	skm.writeMu.Lock()
	defer skm.writeMu.Unlock()

	// Reject the whole batch up front on any dimension mismatch, so the
	// multi-round merge below never sees a malformed vector.
	for _, vec := range batch {
		if len(vec) != skm.dim {
			return nil, &ErrDimensionMismatch{Expected: skm.dim, Actual: len(vec)}
		}
	}

	next, err := skm.updater.Apply(ctx, skm.current.Load(), batch)
	if err != nil {
		return nil, translateError(err)
	}

	skm.current.Store(next)
	skm.state.Store(int32(StateRunning))

	labels := make([]int, len(batch))
	for i, vec := range batch {
		label, err := next.Predict(vec)
		if err != nil {
			return nil, translateError(err)
		}
		labels[i] = label
	}

	skm.stats.observe(labels)
	skm.logCenters(ctx, next)

	return labels, nil
}

// logCenters emits the final center values after a committed batch update.
func (skm *StreamingKMeans) logCenters(ctx context.Context, m *model.Model) {
	if !skm.opts.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for i := 0; i < m.K(); i++ {
		skm.opts.logger.LogCenter(ctx, i, m.CenterAt(i), m.CountAt(i))
	}
}

// Predict returns the index of the center closest to vec under squared
// Euclidean distance. Exact distance ties resolve to the lowest index. It
// reads a lock-free snapshot of the model and never blocks behind Update.
func (skm *StreamingKMeans) Predict(vec []float64) (int, error) {
	start := time.Now()

	label, err := skm.current.Load().Predict(vec)
	err = translateError(err)

	skm.opts.metricsCollector.RecordPredict(time.Since(start), err)

	return label, err
}

// Centers returns a deep copy of the current cluster centers.
func (skm *StreamingKMeans) Centers() [][]float64 {
	return skm.current.Load().Centers()
}

// Counts returns a copy of the current per-cluster point counts.
// Counts are only maintained in mini-batch mode (alpha == 1).
func (skm *StreamingKMeans) Counts() []int64 {
	return skm.current.Load().Counts()
}

// K returns the number of clusters.
func (skm *StreamingKMeans) K() int { return skm.k }

// Dimension returns the configured vector dimensionality.
func (skm *StreamingKMeans) Dimension() int { return skm.dim }

// State reports whether the stream has processed a batch yet.
func (skm *StreamingKMeans) State() State {
	return State(skm.state.Load())
}

// Stats returns a snapshot of stream-level statistics, including which
// clusters are live and which are dead (frozen).
func (skm *StreamingKMeans) Stats() StreamStats {
	return skm.stats.snapshot(skm.k)
}
