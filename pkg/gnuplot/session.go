package gnuplot

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
)

// Session composes gnuplot commands and writes them to a gnuplot process or
// to any other writer. A Session is meant to be used from one goroutine.
type Session struct {
	opts   Options
	w      io.Writer
	closer io.Closer
	verb   string
	items  []Item // current plot list, re-issued by Replot
	owned  []Item // items created by the session from shortcuts
	closed bool
}

// New starts gnuplot and returns a session writing to it. Capability flags
// left open in opts are resolved here, once.
func New(ctx context.Context, opts Options) (*Session, error) {
	opts = opts.Resolve(ctx)
	if opts.Persist && !opts.ShouldPersist() {
		return nil, invalidOption("session", "persist", true, "%s does not recognize -persist", opts.Command)
	}
	p, err := StartProcess(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Session{opts: opts, w: p, closer: p, verb: "plot"}, nil
}

// NewWithWriter returns a session writing its command stream to w, e.g. a
// command file to be run later with gnuplot's load command. Temporary data
// files only live as long as their items, so such a file should be loaded
// before the session is closed.
func NewWithWriter(w io.Writer, opts Options) *Session {
	s := &Session{opts: opts, w: w, verb: "plot"}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Options returns the resolved session options.
func (s *Session) Options() Options {
	return s.opts
}

// Items returns the current plot list.
func (s *Session) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Command sends a single command line to gnuplot.
func (s *Session) Command(cmd string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.opts.Debug {
		tracer().Infof("gnuplot> %s", cmd)
	} else {
		tracer().Debugf("gnuplot> %s", cmd)
	}
	_, err := io.WriteString(s.w, cmd+"\n")
	return err
}

// NewData creates a Data item using the session's inline preference and
// temporary directory. Explicit opts take precedence.
func (s *Session) NewData(a *array.Array, opts ...Opt) (*Data, error) {
	defaults := []Opt{Inline(s.opts.ShouldInline()), TempDir(s.opts.TempDir)}
	return NewData(a, append(defaults, opts...)...)
}

// NewGridData creates a GridData item using the session's binary splot
// capability and temporary directory. Explicit opts take precedence.
func (s *Session) NewGridData(m *array.Array, x, y []float64, opts ...Opt) (*GridData, error) {
	defaults := []Opt{Binary(s.opts.ShouldUseBinarySplot()), TempDir(s.opts.TempDir)}
	return NewGridData(m, x, y, append(defaults, opts...)...)
}

// Plot replaces the plot list with items and draws it. An item may be an
// Item, a string (a Func expression) or an *array.Array (a Data item owned by
// the session).
func (s *Session) Plot(items ...any) error {
	return s.plot("plot", items)
}

// Splot is like Plot but draws in three dimensions.
func (s *Session) Splot(items ...any) error {
	return s.plot("splot", items)
}

func (s *Session) plot(verb string, args []any) error {
	if s.closed {
		return ErrSessionClosed
	}
	if len(args) == 0 {
		return fmt.Errorf("%s: %w", verb, ErrNoItems)
	}
	items, owned, err := s.toItems(args)
	if err != nil {
		return err
	}
	if err := s.render(verb, items); err != nil {
		closeItems(owned)
		return err
	}
	// previously owned items plotted again stay owned
	var released []Item
	for _, it := range s.owned {
		if containsItem(items, it) {
			owned = append(owned, it)
		} else {
			released = append(released, it)
		}
	}
	closeItems(released)
	s.verb, s.items, s.owned = verb, items, owned
	return nil
}

// Replot adds items to the current plot list and redraws it. Without items
// and without a plot list it sends gnuplot's own replot command.
func (s *Session) Replot(items ...any) error {
	if s.closed {
		return ErrSessionClosed
	}
	if len(items) == 0 && len(s.items) == 0 {
		return s.Command("replot")
	}
	added, owned, err := s.toItems(items)
	if err != nil {
		return err
	}
	list := append(append([]Item(nil), s.items...), added...)
	if err := s.render(s.verb, list); err != nil {
		closeItems(owned)
		return err
	}
	s.items = list
	s.owned = append(s.owned, owned...)
	return nil
}

func containsItem(items []Item, it Item) bool {
	for _, x := range items {
		if x == it {
			return true
		}
	}
	return false
}

func (s *Session) toItems(args []any) (items, owned []Item, err error) {
	for _, arg := range args {
		var it Item
		switch v := arg.(type) {
		case Item:
			items = append(items, v)
			continue
		case string:
			it, err = NewFunc(v)
		case *array.Array:
			it, err = s.NewData(v)
		default:
			err = NewOptionError("session", "item", arg, fmt.Errorf("%w: cannot plot %T", ErrInvalidOption, arg))
		}
		if err != nil {
			closeItems(owned)
			return nil, nil, err
		}
		items = append(items, it)
		owned = append(owned, it)
	}
	return items, owned, nil
}

// refresh issues the plot command for the current list.
func (s *Session) refresh() error {
	return s.render(s.verb, s.items)
}

// render issues the plot command for items, followed by the inline data
// blocks in item order. Nothing is written when an item fails to render.
func (s *Session) render(verb string, items []Item) error {
	fragments := make([]string, 0, len(items))
	var bodies [][]byte
	for _, it := range items {
		frag, body, err := it.Render()
		if err != nil {
			return fmt.Errorf("rendering %s item: %w", it.Kind(), err)
		}
		fragments = append(fragments, frag)
		if body != nil {
			bodies = append(bodies, body)
		}
	}
	if err := s.Command(verb + " " + strings.Join(fragments, ", ")); err != nil {
		return err
	}
	for _, body := range bodies {
		if _, err := s.w.Write(body); err != nil {
			return err
		}
		if _, err := io.WriteString(s.w, "e\n"); err != nil {
			return err
		}
	}
	return nil
}

// Clear clears the plot window and forgets the plot list.
func (s *Session) Clear() error {
	return s.forget("clear")
}

// Reset restores gnuplot's default settings and forgets the plot list.
func (s *Session) Reset() error {
	return s.forget("reset")
}

func (s *Session) forget(cmd string) error {
	if err := s.Command(cmd); err != nil {
		return err
	}
	s.releaseOwned()
	s.items = nil
	return nil
}

// SetString sets a string valued gnuplot option, e.g. SetString("title", "T").
func (s *Session) SetString(option, value string) error {
	if hasNewline(option) || hasNewline(value) {
		return invalidOption("session", option, value, "multi-line setting")
	}
	return s.Command(fmt.Sprintf("set %s %s", option, Quote(value)))
}

// Title sets the plot title.
func (s *Session) Title(title string) error { return s.SetString("title", title) }

// XLabel sets the x axis label.
func (s *Session) XLabel(label string) error { return s.SetString("xlabel", label) }

// YLabel sets the y axis label.
func (s *Session) YLabel(label string) error { return s.SetString("ylabel", label) }

// SetRange sets the range of an axis such as "x", "y", "z" or "cb". An
// infinite bound is left to gnuplot's autoscaling.
func (s *Session) SetRange(axis string, min, max float64) error {
	if axis == "" || strings.ContainsAny(axis, " \r\n") {
		return invalidOption("session", "range", axis, "bad axis name")
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		return invalidOption("session", "range", [2]float64{min, max}, "NaN bound")
	}
	return s.Command(fmt.Sprintf("set %srange [%s:%s]", axis, rangeBound(min), rangeBound(max)))
}

func rangeBound(v float64) string {
	if math.IsInf(v, 0) {
		return "*"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Load makes gnuplot execute a command file.
func (s *Session) Load(path string) error {
	if hasNewline(path) {
		return invalidOption("session", "load", path, "multi-line file name")
	}
	return s.Command("load " + Quote(path))
}

// Save makes gnuplot save its settings and current plot command to path.
func (s *Session) Save(path string) error {
	if hasNewline(path) {
		return invalidOption("session", "save", path, "multi-line file name")
	}
	return s.Command("save " + Quote(path))
}

// Close releases the items the session created and ends the gnuplot
// process or closes the underlying writer. Items passed in by the caller
// remain the caller's to close.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.closer != nil {
		// gnuplot exits before the data files it may still read are removed
		err = s.closer.Close()
	}
	s.releaseOwned()
	s.items = nil
	return err
}

func (s *Session) releaseOwned() {
	closeItems(s.owned)
	s.owned = nil
}

func closeItems(items []Item) {
	for _, it := range items {
		if err := it.Close(); err != nil {
			tracer().Debugf("closing %s item: %v", it.Kind(), err)
		}
	}
}
