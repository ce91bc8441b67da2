package gnuplot

import (
	"errors"
	"fmt"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
)

// ErrUnknownOption indicates an option name a plot item does not accept.
var ErrUnknownOption = errors.New("unknown option")

// ErrInvalidOption indicates a known option given a value of the wrong type or shape.
var ErrInvalidOption = errors.New("invalid option value")

// ErrDataShape indicates array data with an unsupported shape.
var ErrDataShape = array.ErrShape

// ErrItemClosed is returned when rendering an item whose data has been released.
var ErrItemClosed = errors.New("plot item closed")

// ErrSessionClosed is returned by session operations after Close.
var ErrSessionClosed = errors.New("gnuplot session closed")

// ErrNoItems is returned when a plot command is issued without items.
var ErrNoItems = errors.New("no plot items")

// OptionError represents a rejected option.
type OptionError struct {
	Item   string // "func", "file", "data", "grid", "session", "hardcopy", "options"
	Option string
	Value  any
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option error in %s (%s=%#v): %v", e.Item, e.Option, e.Value, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// NewOptionError creates a new OptionError.
func NewOptionError(item, option string, value any, err error) *OptionError {
	return &OptionError{
		Item:   item,
		Option: option,
		Value:  value,
		Err:    err,
	}
}

func invalidOption(item, option string, value any, format string, args ...any) *OptionError {
	return NewOptionError(item, option, value,
		fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...)))
}
