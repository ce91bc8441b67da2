package gnuplot

import (
	"github.com/mgalka/gnuplot-go/pkg/gnuplot/funcutils"
)

// ComputeData tabulates f at every x and wraps the (x, f(x)) points in a
// Data item. The returned path tells how f was evaluated.
func ComputeData(x []float64, f funcutils.Func1, opts ...Opt) (*Data, funcutils.Path, error) {
	a, path, err := funcutils.Tabulate(x, f)
	if err != nil {
		return nil, path, err
	}
	d, err := NewData(a, opts...)
	return d, path, err
}

// ComputeGridData tabulates f on x × y and wraps the result in a GridData
// item. The returned path tells how f was evaluated.
func ComputeGridData(x, y []float64, f funcutils.Func2, opts ...Opt) (*GridData, funcutils.Path, error) {
	m, path, err := funcutils.TabulateGrid(x, y, f)
	if err != nil {
		return nil, path, err
	}
	tracer().Debugf("tabulated %d×%d grid (%s)", len(x), len(y), path)
	g, err := NewGridData(m, x, y, opts...)
	return g, path, err
}
