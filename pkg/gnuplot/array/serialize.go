package array

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strconv"
)

// Format describes how an array is flattened into text.
type Format struct {
	// ItemSep is placed between the fields of one point.
	ItemSep string
	// NestPrefix and NestSuffix bracket one row or block.
	NestPrefix string
	NestSuffix string
	// NestSep is placed between rows and blocks.
	NestSep string
	// Precision is passed to strconv.FormatFloat; -1 selects the shortest
	// representation that parses back to the same float64.
	Precision int
}

// DefaultFormat returns gnuplot's native layout: space separated fields, one
// point per line, blank line between blocks.
func DefaultFormat() Format {
	return Format{
		ItemSep:    " ",
		NestPrefix: "",
		NestSuffix: "\n",
		NestSep:    "",
		Precision:  -1,
	}
}

// Marshal serializes a into text using f.
func Marshal(a *Array, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, a, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes a into w using f. The array is validated before anything
// is written, so a shape error never leaves a partial block behind.
func Write(w io.Writer, a *Array, f Format) error {
	if err := validate(a); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	writeNested(bw, a.shape, a.data, f)
	return bw.Flush()
}

func validate(a *Array) error {
	if a == nil || len(a.shape) == 0 {
		return newShapeError("write", nil, "rank 0 is not supported")
	}
	for _, n := range a.shape {
		if n <= 0 {
			return newShapeError("write", a.shape, "zero-length axis")
		}
	}
	return nil
}

func writeNested(w *bufio.Writer, shape []int, data []float64, f Format) {
	switch len(shape) {
	case 1:
		w.WriteString(f.NestPrefix)
		writePoint(w, data, f)
		w.WriteString(f.NestSuffix)
	case 2:
		points, cols := shape[0], shape[1]
		w.WriteString(f.NestPrefix)
		w.WriteString(f.NestPrefix)
		writePoint(w, data[:cols], f)
		w.WriteString(f.NestSuffix)
		for i := 1; i < points; i++ {
			w.WriteString(f.NestSep)
			w.WriteString(f.NestPrefix)
			writePoint(w, data[i*cols:(i+1)*cols], f)
			w.WriteString(f.NestSuffix)
		}
		w.WriteString(f.NestSuffix)
	default:
		stride := len(data) / shape[0]
		w.WriteString(f.NestPrefix)
		for i := 0; i < shape[0]; i++ {
			if i > 0 {
				w.WriteString(f.NestSep)
			}
			writeNested(w, shape[1:], data[i*stride:(i+1)*stride], f)
		}
		w.WriteString(f.NestSuffix)
	}
}

func writePoint(w *bufio.Writer, fields []float64, f Format) {
	var scratch [32]byte
	for i, v := range fields {
		if i > 0 {
			w.WriteString(f.ItemSep)
		}
		w.Write(appendFloat(scratch[:0], v, f.Precision))
	}
}

// appendFloat formats v the way gnuplot parses it back.
func appendFloat(dst []byte, v float64, prec int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "NaN"...)
	case math.IsInf(v, 1):
		return append(dst, "Inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-Inf"...)
	}
	return strconv.AppendFloat(dst, v, 'g', prec, 64)
}

// MarshalGrid encodes the binary grid layout read by `splot ... binary`:
// a (numx+1)×(numy+1) matrix of float32 in native byte order, where cell
// (0,0) holds numy, row 0 holds y, column 0 holds x and the interior holds m.
// Values are always narrowed to float32; that is what gnuplot reads.
func MarshalGrid(m *Array, x, y []float64) ([]byte, error) {
	if err := checkGrid(m, x, y); err != nil {
		return nil, err
	}
	numx, numy := len(x), len(y)
	cells := make([]float32, (numx+1)*(numy+1))
	cells[0] = float32(numy)
	for j, v := range y {
		cells[1+j] = float32(v)
	}
	for i, v := range x {
		row := cells[(i+1)*(numy+1) : (i+2)*(numy+1)]
		row[0] = float32(v)
		for j := 0; j < numy; j++ {
			row[1+j] = float32(m.data[i*numy+j])
		}
	}
	buf := make([]byte, 0, 4*len(cells))
	for _, c := range cells {
		buf = binary.NativeEndian.AppendUint32(buf, math.Float32bits(c))
	}
	return buf, nil
}

// Grid3 returns the (numx, numy, 3) array of (x, y, m[x,y]) points used to
// send grid data as text: one block per x value.
func Grid3(m *Array, x, y []float64) (*Array, error) {
	if err := checkGrid(m, x, y); err != nil {
		return nil, err
	}
	numx, numy := len(x), len(y)
	data := make([]float64, 0, numx*numy*3)
	for i, xv := range x {
		for j, yv := range y {
			data = append(data, xv, yv, m.data[i*numy+j])
		}
	}
	return &Array{shape: []int{numx, numy, 3}, data: data}, nil
}

func checkGrid(m *Array, x, y []float64) error {
	if m == nil || len(m.shape) != 2 {
		var shape []int
		if m != nil {
			shape = m.shape
		}
		return newShapeError("grid", shape, "grid data must be a rank-2 array")
	}
	if len(x) == 0 || len(y) == 0 {
		return newShapeError("grid", m.shape, "empty axis")
	}
	if m.shape[0] != len(x) || m.shape[1] != len(y) {
		return newShapeError("grid", m.shape, "axes have lengths (%d, %d)", len(x), len(y))
	}
	return nil
}
