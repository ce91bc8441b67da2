package gnuplot

import (
	"strconv"
	"strings"
)

// HardcopyOptions configures the postscript terminal used by Hardcopy.
// Nil flags leave gnuplot's current setting alone.
type HardcopyOptions struct {
	// Mode is one of "landscape", "portrait", "eps" or "default".
	Mode string
	// EPS selects encapsulated postscript; it conflicts with any Mode but "eps".
	EPS *bool
	// Enhanced selects enhanced or noenhanced text.
	Enhanced *bool
	// Color selects color or monochrome.
	Color *bool
	// Solid selects solid or dashed lines.
	Solid *bool
	// Duplexing is one of "defaultplex", "simplex" or "duplex".
	Duplexing string
	// FontName and FontSize select the postscript font.
	FontName string
	FontSize int
}

// Terminal renders the set terminal command for o.
func (o HardcopyOptions) Terminal() (string, error) {
	parts := []string{"set", "terminal", "postscript"}
	if o.EPS != nil && *o.EPS {
		if o.Mode != "" && o.Mode != "eps" {
			return "", invalidOption("hardcopy", "mode", o.Mode, "conflicts with eps")
		}
		parts = append(parts, "eps")
	} else if o.Mode != "" {
		switch o.Mode {
		case "landscape", "portrait", "eps", "default":
		default:
			return "", invalidOption("hardcopy", "mode", o.Mode, "unknown mode")
		}
		parts = append(parts, o.Mode)
	}
	parts = appendFlag(parts, o.Enhanced, "enhanced", "noenhanced")
	parts = appendFlag(parts, o.Color, "color", "monochrome")
	parts = appendFlag(parts, o.Solid, "solid", "dashed")
	if o.Duplexing != "" {
		switch o.Duplexing {
		case "defaultplex", "simplex", "duplex":
		default:
			return "", invalidOption("hardcopy", "duplexing", o.Duplexing, "unknown duplexing")
		}
		parts = append(parts, o.Duplexing)
	}
	if o.FontName != "" {
		if hasNewline(o.FontName) {
			return "", invalidOption("hardcopy", "fontname", o.FontName, "multi-line font name")
		}
		parts = append(parts, Quote(o.FontName))
	}
	if o.FontSize < 0 {
		return "", invalidOption("hardcopy", "fontsize", o.FontSize, "negative font size")
	} else if o.FontSize > 0 {
		parts = append(parts, strconv.Itoa(o.FontSize))
	}
	return strings.Join(parts, " "), nil
}

func appendFlag(parts []string, flag *bool, on, off string) []string {
	if flag == nil {
		return parts
	}
	if *flag {
		return append(parts, on)
	}
	return append(parts, off)
}

// Hardcopy redraws the current plot as postscript into filename, or to the
// DefaultLpr printer when filename is empty, then switches back to the
// default terminal.
func (s *Session) Hardcopy(filename string, o HardcopyOptions) error {
	term, err := o.Terminal()
	if err != nil {
		return err
	}
	if filename == "" {
		filename = s.opts.DefaultLpr
	}
	if err := s.Command(term); err != nil {
		return err
	}
	if err := s.SetString("output", filename); err != nil {
		return err
	}
	if len(s.items) > 0 {
		err = s.refresh()
	} else {
		err = s.Command("replot")
	}
	if err != nil {
		return err
	}
	if err := s.Command("set terminal " + s.opts.DefaultTerm); err != nil {
		return err
	}
	return s.Command("set output")
}
