// Package update implements the per-batch model update for streaming k-means.
//
// A batch is merged into the model over a fixed number of sequential
// refinement rounds. Each round reassigns the batch against the centers
// produced by the previous round, then folds the resulting aggregate into the
// model under one of two weighting regimes:
//
//   - mini-batch (alpha == 1): exact running mean over every point ever
//     assigned to a cluster; counts grow without bound by design.
//   - forgetful (alpha != 1): per-batch exponential moving average; counts are
//     neither read nor written.
//
// Clusters that receive no points in a round keep their center and count
// unchanged. A cluster that stops attracting points freezes indefinitely;
// there is no reseeding.
package update

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/streamkm/internal/model"
	"github.com/hupe1980/streamkm/internal/reduce"
)

// ErrZeroAggregateCount reports a (sum, count) partial with a non-positive
// count. The reducer only emits partials with count >= 1, so observing this
// means the aggregate invariant was broken somewhere upstream.
var ErrZeroAggregateCount = errors.New("aggregate contains a cluster with non-positive count")

// Updater applies batches to a model under fixed parameters.
type Updater struct {
	// Alpha selects the weighting regime: 1 is exact mini-batch, any other
	// value is forgetful exponential decay at batch granularity.
	Alpha float64

	// MaxIterations is the number of refinement rounds per batch, >= 1.
	MaxIterations int

	// Partitions bounds reducer parallelism; <= 0 defaults to GOMAXPROCS.
	Partitions int
}

// Apply merges batch into m over MaxIterations rounds and returns the
// resulting model. m itself is never modified; on error the returned model is
// nil and m remains the authoritative state. Rounds are strictly sequential:
// round i+1 reassigns against round i's centers.
func (u Updater) Apply(ctx context.Context, m *model.Model, batch [][]float64) (*model.Model, error) {
	next := m.Clone()

	for iter := 0; iter < u.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		agg, err := reduce.Reduce(ctx, next, batch, u.Partitions)
		if err != nil {
			return nil, err
		}
		if len(agg) == 0 {
			break
		}

		if err := u.merge(next, agg); err != nil {
			return nil, err
		}
	}

	return next, nil
}

// merge folds one round's aggregate into m in place. Clusters absent from the
// aggregate are left untouched.
func (u Updater) merge(m *model.Model, agg reduce.Aggregate) error {
	for cluster, partial := range agg {
		if partial.Count <= 0 {
			return ErrZeroAggregateCount
		}

		center := make([]float64, len(partial.Sum))

		if u.Alpha == 1 {
			// newCenter = (oldCenter*oldCount + sum) / (oldCount + count)
			oldCount := m.CountAt(cluster)
			newCount := oldCount + partial.Count
			if newCount <= 0 {
				return ErrZeroAggregateCount
			}

			copy(center, m.CenterAt(cluster))
			floats.Scale(float64(oldCount), center)
			floats.Add(center, partial.Sum)
			floats.Scale(1/float64(newCount), center)

			m.SetCenter(cluster, center)
			m.SetCount(cluster, newCount)
		} else {
			// newCenter = (1-alpha)*oldCenter + alpha*batchMean
			mean := make([]float64, len(partial.Sum))
			copy(mean, partial.Sum)
			floats.Scale(1/float64(partial.Count), mean)

			copy(center, m.CenterAt(cluster))
			floats.Scale(1-u.Alpha, center)
			floats.AddScaled(center, u.Alpha, mean)

			m.SetCenter(cluster, center)
		}
	}

	return nil
}
