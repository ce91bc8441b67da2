package gnuplot

import (
	"fmt"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
)

// Kind tells the variant of a plot item.
type Kind int

const (
	// KindFunc is an expression evaluated by gnuplot.
	KindFunc Kind = iota
	// KindFile is an existing data file.
	KindFile
	// KindData is an in-memory array.
	KindData
	// KindGrid is data tabulated on an x × y grid.
	KindGrid
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindFile:
		return "file"
	case KindData:
		return "data"
	case KindGrid:
		return "grid"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Item is one entry of a plot or splot command. The set of implementations
// is closed: *Func, *File, *Data and *GridData.
type Item interface {
	// Kind returns the item's variant.
	Kind() Kind
	// Render returns the command fragment describing the item and, for
	// inline data, the data block to write after the command.
	Render() (fragment string, body []byte, err error)
	// SetOption sets a rendered option such as "title" or "with".
	SetOption(name string, value any) error
	// ClearOption returns an option to gnuplot's default.
	ClearOption(name string) error
	// Option returns the rendered fragment of an option, if set.
	Option(name string) (string, bool)
	// Close releases the item's temporary data.
	Close() error

	item()
}

var (
	_ Item = (*Func)(nil)
	_ Item = (*File)(nil)
	_ Item = (*Data)(nil)
	_ Item = (*GridData)(nil)
)

// plotItem carries what all variants share.
type plotItem struct {
	kind Kind
	opts optionSet
}

func newPlotItem(kind Kind, allowed, construction []string) plotItem {
	return plotItem{
		kind: kind,
		opts: newOptionSet(kind.String(), allowed, construction),
	}
}

func (p *plotItem) Kind() Kind { return p.kind }

func (p *plotItem) SetOption(name string, value any) error {
	return p.opts.set(name, value)
}

func (p *plotItem) ClearOption(name string) error {
	return p.opts.clear(name)
}

func (p *plotItem) Option(name string) (string, bool) {
	frag, ok := p.opts.fragments[name]
	return frag, ok
}

func (p *plotItem) item() {}

// apply routes construction options to take and all others to SetOption.
func (p *plotItem) apply(opts []Opt, take func(Opt) error) error {
	for _, o := range opts {
		if p.opts.construction[o.Name] {
			if err := take(o); err != nil {
				return err
			}
			continue
		}
		if err := p.opts.set(o.Name, o.Value); err != nil {
			return err
		}
	}
	return nil
}

var renderedOptions = []string{OptUsing, OptAxes, OptTitle, OptWith}

// --- Func ------------------------------------------------------------------

// Func is a function expression evaluated by gnuplot, e.g. "sin(x)".
type Func struct {
	plotItem
	expr string
}

// NewFunc creates a Func item. The expression is passed through verbatim.
func NewFunc(expr string, opts ...Opt) (*Func, error) {
	if expr == "" || hasNewline(expr) {
		return nil, invalidOption(KindFunc.String(), "expression", expr, "empty or multi-line expression")
	}
	f := &Func{
		plotItem: newPlotItem(KindFunc, []string{OptAxes, OptTitle, OptWith}, nil),
		expr:     expr,
	}
	if err := f.apply(opts, nil); err != nil {
		return nil, err
	}
	return f, nil
}

// Expression returns the function expression.
func (f *Func) Expression() string { return f.expr }

func (f *Func) Render() (string, []byte, error) {
	return f.opts.render(f.expr), nil, nil
}

// Close is a no-op; a Func holds no data.
func (f *Func) Close() error { return nil }

// --- File ------------------------------------------------------------------

// File is an existing data file read by gnuplot. The file is never
// modified or removed.
type File struct {
	plotItem
	path string
}

// NewFile creates a File item for path.
func NewFile(path string, opts ...Opt) (*File, error) {
	if path == "" || hasNewline(path) {
		return nil, invalidOption(KindFile.String(), "path", path, "empty or multi-line file name")
	}
	f := &File{
		plotItem: newPlotItem(KindFile, renderedOptions, nil),
		path:     path,
	}
	if err := f.apply(opts, nil); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file name.
func (f *File) Path() string { return f.path }

func (f *File) Render() (string, []byte, error) {
	return f.opts.render(Quote(f.path)), nil, nil
}

// Close is a no-op; the referenced file is not owned by the item.
func (f *File) Close() error { return nil }

// --- array data ------------------------------------------------------------

// dataConfig collects construction options of array-backed items.
type dataConfig struct {
	inline  bool
	binary  bool
	cols    []int
	format  array.Format
	tempDir string
}

func (c *dataConfig) take(item string) func(Opt) error {
	return func(o Opt) error {
		switch o.Name {
		case OptInline, OptBinary:
			b, ok := o.Value.(bool)
			if !ok {
				return invalidOption(item, o.Name, o.Value, "want bool, got %T", o.Value)
			}
			if o.Name == OptInline {
				c.inline = b
			} else {
				c.binary = b
			}
		case OptCols:
			switch v := o.Value.(type) {
			case int:
				c.cols = []int{v}
			case []int:
				if len(v) == 0 {
					return invalidOption(item, o.Name, o.Value, "no columns")
				}
				c.cols = v
			default:
				return invalidOption(item, o.Name, o.Value, "want int or []int, got %T", o.Value)
			}
		case OptFormat:
			f, ok := o.Value.(array.Format)
			if !ok {
				return invalidOption(item, o.Name, o.Value, "want array.Format, got %T", o.Value)
			}
			c.format = f
		case OptTempDir:
			dir, ok := o.Value.(string)
			if !ok {
				return invalidOption(item, o.Name, o.Value, "want string, got %T", o.Value)
			}
			c.tempDir = dir
		}
		return nil
	}
}

// dataSource holds exactly one representation of an item's data: an inline
// text block or a temporary file.
type dataSource struct {
	inline bool
	arr    *array.Array
	format array.Format
	body   []byte
	tmp    *TempFile
	closed bool
}

// prepare stages a as text. File-backed data is serialized right away;
// inline data is serialized on first render.
func (d *dataSource) prepare(a *array.Array, cfg dataConfig) error {
	d.inline = cfg.inline
	d.format = cfg.format
	if d.inline {
		d.arr = a
		return nil
	}
	body, err := array.Marshal(a, cfg.format)
	if err != nil {
		return err
	}
	return d.stage(cfg.tempDir, body)
}

func (d *dataSource) stage(dir string, body []byte) error {
	tmp, err := NewTempFile(dir, body)
	if err != nil {
		return err
	}
	d.tmp = tmp
	return nil
}

func (d *dataSource) base() (string, []byte, error) {
	if d.closed {
		return "", nil, ErrItemClosed
	}
	if !d.inline {
		return Quote(d.tmp.Name()), nil, nil
	}
	if d.body == nil {
		body, err := array.Marshal(d.arr, d.format)
		if err != nil {
			return "", nil, err
		}
		d.body = body
	}
	return StdinPlaceholder, d.body, nil
}

// IsInline reports whether the data travels through the command pipe.
func (d *dataSource) IsInline() bool { return d.inline }

// TempPath returns the temporary file holding the data, or "" for inline data.
func (d *dataSource) TempPath() string {
	if d.tmp == nil {
		return ""
	}
	return d.tmp.Name()
}

// Close removes the temporary file, if any. Closing twice is harmless.
func (d *dataSource) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.arr, d.body = nil, nil
	if d.tmp != nil {
		return d.tmp.Close()
	}
	return nil
}

// --- Data ------------------------------------------------------------------

// Data is an in-memory array, one point per row.
type Data struct {
	plotItem
	dataSource
}

// NewData creates a Data item. Unless Inline(true) is given, the array is
// written to a temporary file owned by the item; Close removes it.
func NewData(a *array.Array, opts ...Opt) (*Data, error) {
	d := &Data{
		plotItem: newPlotItem(KindData, renderedOptions,
			[]string{OptInline, OptCols, OptFormat, OptTempDir}),
	}
	cfg := dataConfig{format: array.DefaultFormat()}
	if err := d.apply(opts, cfg.take(KindData.String())); err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("data item: %w", array.ErrShape)
	}
	if cfg.cols != nil {
		var err error
		if a, err = a.Columns(cfg.cols); err != nil {
			return nil, err
		}
	}
	if err := d.prepare(a, cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Data) Render() (string, []byte, error) {
	base, body, err := d.base()
	if err != nil {
		return "", nil, err
	}
	return d.opts.render(base), body, nil
}

// --- GridData --------------------------------------------------------------

// GridData is a matrix m tabulated at x × y, m having shape
// (len(x), len(y)). It is meant for splot.
type GridData struct {
	plotItem
	dataSource
	binary bool
}

// NewGridData creates a GridData item. Binary(true), the default, stages the
// grid in gnuplot's binary matrix format, which can only go through a file;
// otherwise the (x, y, z) points are sent as text, one block per x value.
func NewGridData(m *array.Array, x, y []float64, opts ...Opt) (*GridData, error) {
	g := &GridData{
		plotItem: newPlotItem(KindGrid, renderedOptions,
			[]string{OptInline, OptBinary, OptFormat, OptTempDir}),
	}
	cfg := dataConfig{binary: true, format: array.DefaultFormat()}
	if err := g.apply(opts, cfg.take(KindGrid.String())); err != nil {
		return nil, err
	}
	if cfg.binary && cfg.inline {
		return nil, invalidOption(KindGrid.String(), OptInline, true, "binary grid data cannot be sent inline")
	}
	g.binary = cfg.binary
	if cfg.binary {
		body, err := array.MarshalGrid(m, x, y)
		if err != nil {
			return nil, err
		}
		if err := g.stage(cfg.tempDir, body); err != nil {
			return nil, err
		}
		g.opts.fragments[OptBinary] = "binary"
		return g, nil
	}
	points, err := array.Grid3(m, x, y)
	if err != nil {
		return nil, err
	}
	if err := g.prepare(points, cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// IsBinary reports whether the grid is staged in binary format.
func (g *GridData) IsBinary() bool { return g.binary }

func (g *GridData) Render() (string, []byte, error) {
	base, body, err := g.base()
	if err != nil {
		return "", nil, err
	}
	return g.opts.render(base), body, nil
}
