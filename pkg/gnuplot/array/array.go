// Package array provides the numeric arrays handed to gnuplot and their
// serialization into gnuplot's text and binary data layouts.
package array

import (
	"gonum.org/v1/gonum/mat"
)

// Array is an immutable, row-major n-dimensional array of float64 samples.
type Array struct {
	shape []int
	data  []float64
}

// New creates an array of the given shape backed by a copy of data.
func New(shape []int, data []float64) (*Array, error) {
	if len(shape) == 0 {
		return nil, newShapeError("new", shape, "rank 0 is not supported")
	}
	size := 1
	for _, n := range shape {
		if n <= 0 {
			return nil, newShapeError("new", shape, "zero-length axis")
		}
		size *= n
	}
	if size != len(data) {
		return nil, newShapeError("new", shape, "shape does not match %d values", len(data))
	}
	return &Array{
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}, nil
}

// Vector creates a rank-1 array. An empty vector is accepted here and
// rejected when it is serialized.
func Vector(v []float64) *Array {
	return &Array{
		shape: []int{len(v)},
		data:  append([]float64(nil), v...),
	}
}

// FromRows creates a rank-2 array (points × fields) from rows of equal width.
func FromRows(rows [][]float64) (*Array, error) {
	if len(rows) == 0 {
		return nil, newShapeError("rows", []int{0}, "no points")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, newShapeError("rows", []int{len(rows), 0}, "no columns")
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, newShapeError("rows", []int{len(rows), cols},
				"row %d has %d fields, expected %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Array{shape: []int{len(rows), cols}, data: data}, nil
}

// FromColumns creates a rank-2 array whose fields are the given column
// vectors, e.g. FromColumns(x, y) yields one (x, y) point per row.
func FromColumns(cols ...[]float64) (*Array, error) {
	if len(cols) == 0 {
		return nil, newShapeError("columns", []int{0}, "no columns")
	}
	points := len(cols[0])
	if points == 0 {
		return nil, newShapeError("columns", []int{0, len(cols)}, "no points")
	}
	data := make([]float64, points*len(cols))
	for j, col := range cols {
		if len(col) != points {
			return nil, newShapeError("columns", []int{points, len(cols)},
				"column %d has %d values, expected %d", j, len(col), points)
		}
		for i, v := range col {
			data[i*len(cols)+j] = v
		}
	}
	return &Array{shape: []int{points, len(cols)}, data: data}, nil
}

// FromMatrix copies a gonum matrix into a rank-2 array.
func FromMatrix(m mat.Matrix) (*Array, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, newShapeError("matrix", []int{r, c}, "zero-length axis")
	}
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return &Array{shape: []int{r, c}, data: data}, nil
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Len returns the length of the leading axis.
func (a *Array) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// Values returns a copy of the flat, row-major sample data.
func (a *Array) Values() []float64 {
	return append([]float64(nil), a.data...)
}

// At returns the sample at the given index. It panics if the index does not
// address a single sample, like slice indexing does.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic("array: index rank mismatch")
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			panic("array: index out of range")
		}
		off = off*a.shape[k] + i
	}
	return a.data[off]
}

// Sub returns the i-th slice along the leading axis. The result shares the
// receiver's storage; neither is ever mutated.
func (a *Array) Sub(i int) *Array {
	if len(a.shape) < 2 {
		panic("array: Sub on rank-1 array")
	}
	stride := len(a.data) / a.shape[0]
	return &Array{
		shape: a.shape[1:],
		data:  a.data[i*stride : (i+1)*stride : (i+1)*stride],
	}
}

// Columns returns a rank-2 array holding only the given 0-based columns, in
// the given order.
func (a *Array) Columns(cols []int) (*Array, error) {
	if len(a.shape) != 2 {
		return nil, newShapeError("columns", a.shape, "column selection needs a rank-2 array")
	}
	if len(cols) == 0 {
		return nil, newShapeError("columns", a.shape, "empty column selection")
	}
	points, width := a.shape[0], a.shape[1]
	for _, c := range cols {
		if c < 0 || c >= width {
			return nil, newShapeError("columns", a.shape, "column %d out of range", c)
		}
	}
	data := make([]float64, 0, points*len(cols))
	for i := 0; i < points; i++ {
		row := a.data[i*width : (i+1)*width]
		for _, c := range cols {
			data = append(data, row[c])
		}
	}
	return &Array{shape: []int{points, len(cols)}, data: data}, nil
}
