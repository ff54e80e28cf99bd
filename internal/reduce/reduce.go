// Package reduce implements the per-batch assignment reduction for streaming
// k-means: every vector is assigned to its nearest center and folded into a
// sparse per-cluster (sum, count) aggregate.
//
// The fold is associative and commutative, so a batch may be split into
// arbitrary partitions, reduced in parallel, and merged in any order without
// changing the result.
package reduce

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/streamkm/internal/model"
)

// Partial is the running (sum, count) contribution of one cluster.
type Partial struct {
	Sum   []float64
	Count int64
}

// Aggregate maps cluster index to its (sum, count) partial. Only clusters that
// received at least one point are present.
type Aggregate map[int]*Partial

// Add folds one vector into the aggregate for the given cluster.
func (a Aggregate) Add(cluster int, vec []float64) {
	p, ok := a[cluster]
	if !ok {
		p = &Partial{Sum: make([]float64, len(vec))}
		a[cluster] = p
	}
	floats.Add(p.Sum, vec)
	p.Count++
}

// Merge folds other into a. Merging is associative and commutative.
func (a Aggregate) Merge(other Aggregate) {
	for cluster, op := range other {
		p, ok := a[cluster]
		if !ok {
			p = &Partial{Sum: make([]float64, len(op.Sum))}
			a[cluster] = p
		}
		floats.Add(p.Sum, op.Sum)
		p.Count += op.Count
	}
}

// Reduce assigns every vector of batch to its nearest center in m and returns
// the per-cluster aggregate. The batch is split into at most partitions
// contiguous chunks reduced in parallel; partitions <= 0 defaults to
// GOMAXPROCS. m is only read, never written.
func Reduce(ctx context.Context, m *model.Model, batch [][]float64, partitions int) (Aggregate, error) {
	if len(batch) == 0 {
		return Aggregate{}, nil
	}

	if partitions <= 0 {
		partitions = runtime.GOMAXPROCS(0)
	}
	if partitions > len(batch) {
		partitions = len(batch)
	}

	partials := make([]Aggregate, partitions)
	chunk := (len(batch) + partitions - 1) / partitions

	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < partitions; p++ {
		p := p
		start := p * chunk
		end := start + chunk
		if end > len(batch) {
			end = len(batch)
		}
		if start >= end {
			partials[p] = Aggregate{}
			continue
		}

		g.Go(func() error {
			local := Aggregate{}
			for i, vec := range batch[start:end] {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				cluster, err := m.Predict(vec)
				if err != nil {
					return err
				}
				local.Add(cluster, vec)
			}
			partials[p] = local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := Aggregate{}
	for _, partial := range partials {
		agg.Merge(partial)
	}
	return agg, nil
}
