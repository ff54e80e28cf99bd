// Package model implements the cluster model for streaming k-means.
//
// A Model holds k centers and k counts and answers nearest-center queries.
// It is a plain value with no internal synchronization; callers that share a
// Model across goroutines must treat it as read-only.
package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/streamkm/distance"
)

// ErrInvalidShape is returned when centers and counts disagree on k, or
// centers disagree on dimensionality.
var ErrInvalidShape = errors.New("centers and counts must describe the same k clusters of equal dimension")

// ErrDimensionMismatch is a named error type for dimension mismatch
// between a vector and the model's configured dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Model holds k cluster centers and their point counts.
type Model struct {
	centers [][]float64
	counts  []int64
	dim     int
}

// New creates a Model from the given centers and counts.
// It deep-copies both inputs so the caller cannot alias internal state.
func New(centers [][]float64, counts []int64) (*Model, error) {
	if len(centers) == 0 || len(centers) != len(counts) {
		return nil, ErrInvalidShape
	}

	dim := len(centers[0])
	if dim == 0 {
		return nil, ErrInvalidShape
	}

	m := &Model{
		centers: make([][]float64, len(centers)),
		counts:  make([]int64, len(counts)),
		dim:     dim,
	}

	for i, c := range centers {
		if len(c) != dim {
			return nil, ErrInvalidShape
		}
		m.centers[i] = make([]float64, dim)
		copy(m.centers[i], c)
	}
	copy(m.counts, counts)

	return m, nil
}

// K returns the number of clusters.
func (m *Model) K() int { return len(m.centers) }

// Dim returns the vector dimensionality.
func (m *Model) Dim() int { return m.dim }

// Predict returns the index of the center closest to vec under squared
// Euclidean distance. Exact distance ties resolve to the lowest index, so the
// result is deterministic for identical inputs.
func (m *Model) Predict(vec []float64) (int, error) {
	if len(vec) != m.dim {
		return -1, &ErrDimensionMismatch{Expected: m.dim, Actual: len(vec)}
	}

	best := 0
	minDist := math.Inf(1)

	for i, center := range m.centers {
		if d := distance.SquaredL2(vec, center); d < minDist {
			minDist = d
			best = i
		}
	}

	return best, nil
}

// CenterAt returns the live center slice for cluster i.
// Callers must not modify or retain it; use Centers for an owned copy.
func (m *Model) CenterAt(i int) []float64 { return m.centers[i] }

// CountAt returns the point count for cluster i.
func (m *Model) CountAt(i int) int64 { return m.counts[i] }

// SetCenter replaces the center of cluster i. The slice is copied.
func (m *Model) SetCenter(i int, center []float64) {
	copy(m.centers[i], center)
}

// SetCount replaces the point count of cluster i.
func (m *Model) SetCount(i int, count int64) {
	m.counts[i] = count
}

// Centers returns a deep copy of all centers.
func (m *Model) Centers() [][]float64 {
	out := make([][]float64, len(m.centers))
	for i, c := range m.centers {
		out[i] = make([]float64, len(c))
		copy(out[i], c)
	}
	return out
}

// Counts returns a copy of all counts.
func (m *Model) Counts() []int64 {
	out := make([]int64, len(m.counts))
	copy(out, m.counts)
	return out
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	return &Model{
		centers: m.Centers(),
		counts:  m.Counts(),
		dim:     m.dim,
	}
}

// InitMode selects the random center seeding strategy.
type InitMode int

const (
	// InitGaussian draws every coordinate i.i.d. from a standard normal.
	InitGaussian InitMode = iota
	// InitUniformPositive draws every coordinate i.i.d. uniformly from [0,1).
	InitUniformPositive
)

func (im InitMode) String() string {
	switch im {
	case InitGaussian:
		return "gaussian"
	case InitUniformPositive:
		return "uniform-positive"
	default:
		return fmt.Sprintf("Unknown(%d)", im)
	}
}

// NewRandom creates a Model with k random centers of dimension dim and all
// counts zero. If rng is nil the process-wide unseeded source is used; passing
// an explicit rng makes initialization deterministic for tests.
func NewRandom(k, dim int, mode InitMode, rng *rand.Rand) (*Model, error) {
	var draw func() float64

	switch mode {
	case InitGaussian:
		if rng != nil {
			draw = rng.NormFloat64
		} else {
			draw = rand.NormFloat64
		}
	case InitUniformPositive:
		if rng != nil {
			draw = rng.Float64
		} else {
			draw = rand.Float64
		}
	default:
		return nil, fmt.Errorf("unknown initialization mode: %v", mode)
	}

	m := &Model{
		centers: make([][]float64, k),
		counts:  make([]int64, k),
		dim:     dim,
	}

	for i := range m.centers {
		center := make([]float64, dim)
		for j := range center {
			center[j] = draw()
		}
		m.centers[i] = center
	}

	return m, nil
}
