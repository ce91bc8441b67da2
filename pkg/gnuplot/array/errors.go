package array

import (
	"errors"
	"fmt"
)

// ErrShape indicates an array whose shape cannot be handed to gnuplot.
var ErrShape = errors.New("invalid data shape")

// ShapeError represents a rank, axis-length or row-width problem.
type ShapeError struct {
	Op     string // "new", "rows", "columns", "matrix", "write", "grid"
	Shape  []int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("data shape error in %s %v: %s", e.Op, e.Shape, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

func newShapeError(op string, shape []int, format string, args ...any) *ShapeError {
	return &ShapeError{
		Op:     op,
		Shape:  append([]int(nil), shape...),
		Reason: fmt.Sprintf(format, args...),
	}
}
