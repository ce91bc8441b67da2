package gnuplot

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
)

// Option names.
const (
	OptBinary  = "binary"
	OptUsing   = "using"
	OptAxes    = "axes"
	OptTitle   = "title"
	OptWith    = "with"
	OptInline  = "inline"
	OptCols    = "cols"
	OptFormat  = "format"
	OptTempDir = "tempdir"
)

// renderOrder is the order gnuplot expects options in on the command line.
var renderOrder = []string{OptBinary, OptUsing, OptAxes, OptTitle, OptWith}

// Opt is one named option passed to an item constructor.
type Opt struct {
	Name  string
	Value any
}

// Title names the item in the legend.
func Title(s string) Opt { return Opt{Name: OptTitle, Value: s} }

// NoTitle keeps the item out of the legend.
func NoTitle() Opt { return Opt{Name: OptTitle, Value: nil} }

// With sets the curve style, e.g. "linespoints".
func With(style string) Opt { return Opt{Name: OptWith, Value: style} }

// Axes selects the axes pair, one of x1y1, x1y2, x2y1 or x2y2.
func Axes(axes string) Opt { return Opt{Name: OptAxes, Value: axes} }

// Using selects data columns by 1-based index.
func Using(cols ...int) Opt {
	if len(cols) == 1 {
		return Opt{Name: OptUsing, Value: cols[0]}
	}
	return Opt{Name: OptUsing, Value: cols}
}

// UsingExpr passes a raw gnuplot using specification, e.g. "1:($2*2)".
func UsingExpr(spec string) Opt { return Opt{Name: OptUsing, Value: spec} }

// Inline sends array data through the command pipe instead of a temporary file.
func Inline(b bool) Opt { return Opt{Name: OptInline, Value: b} }

// Binary sends grid data in gnuplot's binary matrix format.
func Binary(b bool) Opt { return Opt{Name: OptBinary, Value: b} }

// Cols keeps only the given 0-based array columns.
func Cols(cols ...int) Opt { return Opt{Name: OptCols, Value: cols} }

// WithFormat overrides the text layout of array data.
func WithFormat(f array.Format) Opt { return Opt{Name: OptFormat, Value: f} }

// TempDir places the item's temporary data file in dir.
func TempDir(dir string) Opt { return Opt{Name: OptTempDir, Value: dir} }

// StdinPlaceholder is the file name telling gnuplot to read data inline.
var StdinPlaceholder = Quote("-")

// Quote quotes s as a gnuplot string. Windows paths are single quoted so
// backslashes are taken literally.
func Quote(s string) string {
	if runtime.GOOS == "windows" {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func hasNewline(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

type renderFunc func(item string, v any) (string, error)

var renderers = map[string]renderFunc{
	OptUsing: renderUsing,
	OptAxes:  renderAxes,
	OptTitle: renderTitle,
	OptWith:  renderWith,
}

func renderUsing(item string, v any) (string, error) {
	switch u := v.(type) {
	case int:
		if u < 0 {
			return "", invalidOption(item, OptUsing, v, "negative column")
		}
		return "using " + strconv.Itoa(u), nil
	case []int:
		if len(u) == 0 {
			return "", invalidOption(item, OptUsing, v, "empty column list")
		}
		parts := make([]string, len(u))
		for i, c := range u {
			if c < 0 {
				return "", invalidOption(item, OptUsing, v, "negative column")
			}
			parts[i] = strconv.Itoa(c)
		}
		return "using " + strings.Join(parts, ":"), nil
	case string:
		if u == "" || hasNewline(u) {
			return "", invalidOption(item, OptUsing, v, "empty or multi-line specification")
		}
		return "using " + u, nil
	}
	return "", invalidOption(item, OptUsing, v, "want int, []int or string, got %T", v)
}

func renderAxes(item string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidOption(item, OptAxes, v, "want string, got %T", v)
	}
	switch s {
	case "x1y1", "x1y2", "x2y1", "x2y2":
		return "axes " + s, nil
	}
	return "", invalidOption(item, OptAxes, v, "unknown axes pair")
}

func renderTitle(item string, v any) (string, error) {
	if v == nil {
		return "notitle", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidOption(item, OptTitle, v, "want string or nil, got %T", v)
	}
	if hasNewline(s) {
		return "", invalidOption(item, OptTitle, v, "title spans lines")
	}
	return "title " + Quote(s), nil
}

func renderWith(item string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidOption(item, OptWith, v, "want string, got %T", v)
	}
	if s == "" || hasNewline(s) {
		return "", invalidOption(item, OptWith, v, "empty or multi-line style")
	}
	return "with " + s, nil
}

// optionSet holds the rendered option fragments of one item.
type optionSet struct {
	item         string
	allowed      map[string]bool
	construction map[string]bool
	fragments    map[string]string
}

func newOptionSet(item string, allowed, construction []string) optionSet {
	o := optionSet{
		item:         item,
		allowed:      make(map[string]bool, len(allowed)),
		construction: make(map[string]bool, len(construction)),
		fragments:    make(map[string]string),
	}
	for _, name := range allowed {
		o.allowed[name] = true
	}
	for _, name := range construction {
		o.construction[name] = true
	}
	return o
}

func (o *optionSet) set(name string, v any) error {
	if !o.allowed[name] {
		return o.reject(name, v)
	}
	frag, err := renderers[name](o.item, v)
	if err != nil {
		return err
	}
	o.fragments[name] = frag
	return nil
}

func (o *optionSet) clear(name string) error {
	if !o.allowed[name] {
		return o.reject(name, nil)
	}
	delete(o.fragments, name)
	return nil
}

func (o *optionSet) reject(name string, v any) error {
	if o.construction[name] {
		return invalidOption(o.item, name, v, "can only be given at construction")
	}
	return NewOptionError(o.item, name, v, ErrUnknownOption)
}

// render joins base and the present option fragments in gnuplot's order.
func (o *optionSet) render(base string) string {
	parts := []string{base}
	for _, name := range renderOrder {
		if frag, ok := o.fragments[name]; ok {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, " ")
}
