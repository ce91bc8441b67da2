package array

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMarshalDefaultFormat(t *testing.T) {
	a, err := FromRows([][]float64{{0, 1}, {1, 4}, {2, 9}})
	require.NoError(t, err)

	out, err := Marshal(a, DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, "0 1\n1 4\n2 9\n\n", string(out))
}

func TestMarshalRank1(t *testing.T) {
	out, err := Marshal(Vector([]float64{1.5, -2, 3e-9}), DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, "1.5 -2 3e-09\n", string(out))
}

func TestMarshalRank3Blocks(t *testing.T) {
	a, err := New([]int{2, 2, 2}, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	out, err := Marshal(a, DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3 4\n\n5 6\n7 8\n\n\n", string(out))
}

func TestMarshalCustomFormat(t *testing.T) {
	a, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	f := Format{ItemSep: ",", NestPrefix: "[", NestSuffix: "]", NestSep: ";", Precision: -1}
	out, err := Marshal(a, f)
	require.NoError(t, err)
	assert.Equal(t, "[[1,2];[3,4]]", string(out))
}

func TestMarshalRoundTrip(t *testing.T) {
	rows := [][]float64{
		{0.1, 1.0 / 3.0, math.Pi},
		{-1e-300, 6.02214076e23, math.SmallestNonzeroFloat64},
		{math.MaxFloat64, 2, -0.5},
		{1e21, 123456789.123456789, -7},
	}
	a, err := FromRows(rows)
	require.NoError(t, err)

	out, err := Marshal(a, DefaultFormat())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n\n"), "\n")
	require.Len(t, lines, len(rows))
	for i, line := range lines {
		fields := strings.Split(line, " ")
		require.Len(t, fields, len(rows[i]))
		for j, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			require.NoError(t, err)
			assert.Equal(t, rows[i][j], v, "row %d field %d", i, j)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	a, err := FromColumns([]float64{1, 2, 3}, []float64{0.25, 0.5, 0.75})
	require.NoError(t, err)

	first, err := Marshal(a, DefaultFormat())
	require.NoError(t, err)
	second, err := Marshal(a, DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "1 0.25\n2 0.5\n3 0.75\n\n", string(first))
}

func TestMarshalNonFinite(t *testing.T) {
	out, err := Marshal(Vector([]float64{math.NaN(), math.Inf(1), math.Inf(-1)}), DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, "NaN Inf -Inf\n", string(out))
}

func TestShapeErrors(t *testing.T) {
	_, err := Marshal(Vector(nil), DefaultFormat())
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromRows([][]float64{{}, {}})
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromRows([][]float64{{1, 2}, {3}})
	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rows", se.Op)

	_, err = New([]int{3, 0}, nil)
	assert.ErrorIs(t, err, ErrShape)

	_, err = New([]int{2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromColumns([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrShape)
}

func TestColumns(t *testing.T) {
	a, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	c, err := a.Columns([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, c.Shape())
	assert.Equal(t, []float64{3, 1, 6, 4}, c.Values())

	_, err = a.Columns([]int{3})
	assert.ErrorIs(t, err, ErrShape)
	_, err = a.Columns(nil)
	assert.ErrorIs(t, err, ErrShape)
}

func TestAtAndSub(t *testing.T) {
	a, err := New([]int{2, 3, 2}, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	require.NoError(t, err)
	assert.Equal(t, 9.0, a.At(1, 1, 1))
	s := a.Sub(1)
	assert.Equal(t, []int{3, 2}, s.Shape())
	assert.Equal(t, 6.0, s.At(0, 0))
	assert.Panics(t, func() { a.At(2, 0, 0) })
}

func TestFromMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	a, err := FromMatrix(m)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 6.0, a.At(1, 2))

	out, err := Marshal(a, DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n4 5 6\n\n", string(out))
}

func TestMarshalGrid(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{10, 20}
	m, err := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6.1}})
	require.NoError(t, err)

	b, err := MarshalGrid(m, x, y)
	require.NoError(t, err)
	require.Len(t, b, 4*(len(x)+1)*(len(y)+1))

	cell := func(i, j int) float32 {
		off := 4 * (i*(len(y)+1) + j)
		return math.Float32frombits(binary.NativeEndian.Uint32(b[off:]))
	}
	assert.Equal(t, float32(2), cell(0, 0))
	assert.Equal(t, float32(10), cell(0, 1))
	assert.Equal(t, float32(20), cell(0, 2))
	assert.Equal(t, float32(2), cell(3, 0))
	assert.Equal(t, float32(4), cell(2, 2))
	assert.Equal(t, float32(6.1), cell(3, 2))
}

func TestMarshalGridShapeMismatch(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = MarshalGrid(m, []float64{0, 1, 2}, []float64{0, 1})
	assert.ErrorIs(t, err, ErrShape)
	_, err = MarshalGrid(Vector([]float64{1, 2}), []float64{0, 1}, []float64{0})
	assert.ErrorIs(t, err, ErrShape)
	_, err = Grid3(m, []float64{0, 1}, nil)
	assert.ErrorIs(t, err, ErrShape)
}

func TestGrid3(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	g, err := Grid3(m, []float64{0, 1}, []float64{5, 6})
	require.NoError(t, err)
	out, err := Marshal(g, DefaultFormat())
	require.NoError(t, err)
	assert.Equal(t, "0 5 1\n0 6 2\n\n1 5 3\n1 6 4\n\n\n", string(out))
}
