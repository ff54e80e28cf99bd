package streamkm

import (
	"errors"
	"fmt"

	"github.com/hupe1980/streamkm/internal/model"
	"github.com/hupe1980/streamkm/internal/update"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidDimension is returned when the dimensionality is not positive.
	ErrInvalidDimension = errors.New("dimension must be positive")

	// ErrInvalidMaxIterations is returned when maxIterations is less than 1.
	ErrInvalidMaxIterations = errors.New("maxIterations must be at least 1")

	// ErrInvariantViolation is returned when an internal invariant is broken,
	// such as a per-cluster aggregate with a non-positive count. It indicates
	// a bug, not bad input.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// ErrDimensionMismatch indicates a vector whose length differs from the
// configured dimensionality. A batch containing such a vector is rejected as
// a whole, before any model change.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidInitMode indicates an unsupported initialization mode.
type ErrInvalidInitMode struct {
	Mode InitMode
}

func (e *ErrInvalidInitMode) Error() string {
	return fmt.Sprintf("invalid initialization mode: %d", e.Mode)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *model.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	if errors.Is(err, update.ErrZeroAggregateCount) {
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}

	return err
}
