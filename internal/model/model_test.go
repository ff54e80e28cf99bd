package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New([][]float64{{0}, {10}}, []int64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, m.K())
	assert.Equal(t, 1, m.Dim())
}

func TestNew_InvalidShape(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = New([][]float64{{0}, {10}}, []int64{0})
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = New([][]float64{{0, 1}, {10}}, []int64{0, 0})
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = New([][]float64{{}}, []int64{0})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNew_CopiesInput(t *testing.T) {
	centers := [][]float64{{1, 2}, {3, 4}}
	counts := []int64{5, 6}

	m, err := New(centers, counts)
	require.NoError(t, err)

	centers[0][0] = 99
	counts[0] = 99

	assert.Equal(t, 1.0, m.CenterAt(0)[0])
	assert.Equal(t, int64(5), m.CountAt(0))
}

func TestPredict(t *testing.T) {
	m, err := New([][]float64{{0, 0}, {10, 10}}, []int64{0, 0})
	require.NoError(t, err)

	idx, err := m.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = m.Predict([]float64{9, 9})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestPredict_TieBreaksToLowestIndex(t *testing.T) {
	m, err := New([][]float64{{0}, {2}, {2}}, []int64{0, 0, 0})
	require.NoError(t, err)

	// Equidistant from centers 0 and 1; center 2 duplicates center 1.
	idx, err := m.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = m.Predict([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestPredict_Deterministic(t *testing.T) {
	m, err := New([][]float64{{0, 0}, {1, 1}, {2, 2}}, []int64{0, 0, 0})
	require.NoError(t, err)

	first, err := m.Predict([]float64{1.5, 1.5})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		idx, err := m.Predict([]float64{1.5, 1.5})
		require.NoError(t, err)
		assert.Equal(t, first, idx)
	}
}

func TestPredict_DimensionMismatch(t *testing.T) {
	m, err := New([][]float64{{0, 0}}, []int64{0})
	require.NoError(t, err)

	_, err = m.Predict([]float64{1})

	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 1, dm.Actual)
}

func TestClone(t *testing.T) {
	m, err := New([][]float64{{1, 2}}, []int64{3})
	require.NoError(t, err)

	c := m.Clone()
	c.SetCenter(0, []float64{9, 9})
	c.SetCount(0, 9)

	assert.Equal(t, []float64{1, 2}, m.CenterAt(0))
	assert.Equal(t, int64(3), m.CountAt(0))
	assert.Equal(t, []float64{9, 9}, c.CenterAt(0))
	assert.Equal(t, int64(9), c.CountAt(0))
}

func TestNewRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	m, err := NewRandom(3, 4, InitGaussian, rng)
	require.NoError(t, err)
	assert.Equal(t, 3, m.K())
	assert.Equal(t, 4, m.Dim())
	assert.Equal(t, []int64{0, 0, 0}, m.Counts())
}

func TestNewRandom_UniformPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	m, err := NewRandom(2, 8, InitUniformPositive, rng)
	require.NoError(t, err)

	for _, center := range m.Centers() {
		for _, v := range center {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestNewRandom_DeterministicWithSeed(t *testing.T) {
	a, err := NewRandom(2, 3, InitGaussian, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	b, err := NewRandom(2, 3, InitGaussian, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a.Centers(), b.Centers())
}

func TestNewRandom_UnknownMode(t *testing.T) {
	_, err := NewRandom(2, 3, InitMode(999), nil)
	assert.Error(t, err)
}

func TestInitModeString(t *testing.T) {
	assert.Equal(t, "gaussian", InitGaussian.String())
	assert.Equal(t, "uniform-positive", InitUniformPositive.String())
	assert.Equal(t, "Unknown(999)", InitMode(999).String())
}
