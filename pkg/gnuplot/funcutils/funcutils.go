// Package funcutils tabulates Go functions into arrays gnuplot can plot.
//
// A function may come with a bulk implementation working on whole slices and
// a scalar one. Tabulation tries the bulk path first and evaluates the scalar
// function point by point when the bulk path is missing or fails. Both paths
// produce the same array; the path taken is reported to the caller.
package funcutils

import (
	"errors"
	"fmt"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
)

// Path tells which evaluation strategy produced a table.
type Path int

const (
	// PathVectorized means the bulk function produced every value.
	PathVectorized Path = iota
	// PathElementwise means the scalar function was evaluated at every point.
	PathElementwise
)

func (p Path) String() string {
	switch p {
	case PathVectorized:
		return "vectorized"
	case PathElementwise:
		return "elementwise"
	}
	return fmt.Sprintf("Path(%d)", int(p))
}

// ErrNoImplementation is returned when a function has neither a usable bulk
// nor a scalar implementation.
var ErrNoImplementation = errors.New("function has no usable implementation")

// Func1 is a function of one variable.
type Func1 struct {
	// Vector evaluates the function at every element of x.
	Vector func(x []float64) ([]float64, error)
	// Scalar evaluates the function at a single point.
	Scalar func(x float64) float64
}

// Func2 is a function of two variables.
type Func2 struct {
	// Vector evaluates the function elementwise over two equally long
	// slices, as produced by flattening the x × y meshgrid.
	Vector func(x, y []float64) ([]float64, error)
	// Scalar evaluates the function at a single (x, y) pair.
	Scalar func(x, y float64) float64
}

// Tabulate evaluates f at every x and returns the rank-2 array of
// (x, f(x)) points.
func Tabulate(x []float64, f Func1) (*array.Array, Path, error) {
	if len(x) == 0 {
		return nil, PathVectorized, fmt.Errorf("tabulate: %w", array.ErrShape)
	}
	path := PathVectorized
	y, err := tryVector1(x, f)
	if err != nil {
		if f.Scalar == nil {
			return nil, path, fmt.Errorf("tabulate: %w (%v)", ErrNoImplementation, err)
		}
		path = PathElementwise
		y = make([]float64, len(x))
		for i, xv := range x {
			y[i] = f.Scalar(xv)
		}
	}
	a, err := array.FromColumns(x, y)
	return a, path, err
}

// TabulateGrid evaluates f on the outer product x × y and returns the
// (len(x), len(y)) matrix of values.
func TabulateGrid(x, y []float64, f Func2) (*array.Array, Path, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, PathVectorized, fmt.Errorf("tabulate grid: %w", array.ErrShape)
	}
	path := PathVectorized
	z, err := tryVector2(x, y, f)
	if err != nil {
		if f.Scalar == nil {
			return nil, path, fmt.Errorf("tabulate grid: %w (%v)", ErrNoImplementation, err)
		}
		path = PathElementwise
		z = make([]float64, 0, len(x)*len(y))
		for _, xv := range x {
			for _, yv := range y {
				z = append(z, f.Scalar(xv, yv))
			}
		}
	}
	a, err := array.New([]int{len(x), len(y)}, z)
	return a, path, err
}

func tryVector1(x []float64, f Func1) ([]float64, error) {
	if f.Vector == nil {
		return nil, ErrNoImplementation
	}
	y, err := f.Vector(append([]float64(nil), x...))
	if err != nil {
		return nil, err
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf("bulk evaluation returned %d values for %d points", len(y), len(x))
	}
	return y, nil
}

func tryVector2(x, y []float64, f Func2) ([]float64, error) {
	if f.Vector == nil {
		return nil, ErrNoImplementation
	}
	xm, ym := Meshgrid(x, y)
	z, err := f.Vector(xm, ym)
	if err != nil {
		return nil, err
	}
	if len(z) != len(xm) {
		return nil, fmt.Errorf("bulk evaluation returned %d values for %d points", len(z), len(xm))
	}
	return z, nil
}

// Meshgrid flattens the outer product x × y in row-major order: element
// i*len(y)+j of the results holds (x[i], y[j]).
func Meshgrid(x, y []float64) (xm, ym []float64) {
	xm = make([]float64, 0, len(x)*len(y))
	ym = make([]float64, 0, len(x)*len(y))
	for _, xv := range x {
		for _, yv := range y {
			xm = append(xm, xv)
			ym = append(ym, yv)
		}
	}
	return xm, ym
}
