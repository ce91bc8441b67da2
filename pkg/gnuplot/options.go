package gnuplot

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys read by LoadOptions.
const (
	EnvCommand           = "GNUPLOT_COMMAND"
	EnvPersist           = "GNUPLOT_PERSIST"
	EnvRecognizesPersist = "GNUPLOT_RECOGNIZES_PERSIST"
	EnvBinarySplot       = "GNUPLOT_BINARY_SPLOT"
	EnvInline            = "GNUPLOT_INLINE"
	EnvTerm              = "GNUPLOT_TERM"
	EnvLpr               = "GNUPLOT_LPR"
	EnvTempDir           = "GNUPLOT_TMPDIR"
	EnvDebug             = "GNUPLOT_DEBUG"
)

// Options configures a gnuplot session. Capability flags are resolved once,
// when the session starts, and passed down from there.
type Options struct {
	// Command starts the gnuplot program.
	Command string
	// Persist asks gnuplot to keep plot windows open after it exits.
	Persist bool
	// RecognizesPersist tells whether Command understands -persist.
	// If nil, it is probed once at session start.
	RecognizesPersist *bool
	// RecognizesBinarySplot tells whether grid data may be sent in binary.
	// If nil, defaults to true.
	RecognizesBinarySplot *bool
	// PreferInlineData sends array data through the command pipe instead of
	// temporary files. If nil, defaults to false.
	PreferInlineData *bool
	// DefaultTerm is the terminal restored after a hardcopy.
	DefaultTerm string
	// DefaultLpr is the hardcopy output used when no file name is given.
	DefaultLpr string
	// TempDir holds temporary data files; empty selects the OS default.
	TempDir string
	// Debug traces every command at Info level instead of Debug.
	Debug bool
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{
		Command:     "gnuplot",
		DefaultTerm: "x11",
		DefaultLpr:  "| lpr",
	}
}

// ShouldPersist returns whether -persist is passed to gnuplot.
func (o Options) ShouldPersist() bool {
	return o.Persist && o.RecognizesPersist != nil && *o.RecognizesPersist
}

// ShouldUseBinarySplot returns whether grid data defaults to binary.
func (o Options) ShouldUseBinarySplot() bool {
	if o.RecognizesBinarySplot != nil {
		return *o.RecognizesBinarySplot
	}
	return true
}

// ShouldInline returns whether array data defaults to inline transfer.
func (o Options) ShouldInline() bool {
	if o.PreferInlineData != nil {
		return *o.PreferInlineData
	}
	return false
}

// Resolve fills in capability flags left open, probing the gnuplot program
// at most once.
func (o Options) Resolve(ctx context.Context) Options {
	if o.RecognizesPersist == nil && o.Persist {
		ok := ProbePersist(ctx, o.Command)
		o.RecognizesPersist = &ok
	}
	return o
}

// LoadOptions returns DefaultOptions overridden by the given .env files and
// then by the process environment.
func LoadOptions(envfiles ...string) (Options, error) {
	opts := DefaultOptions()
	env := map[string]string{}
	if len(envfiles) > 0 {
		m, err := godotenv.Read(envfiles...)
		if err != nil {
			return opts, fmt.Errorf("failed to read env files: %w", err)
		}
		env = m
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}
	flag := func(key string) (*bool, error) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, invalidOption("options", key, v, "not a boolean")
		}
		return &b, nil
	}

	if v, ok := lookup(EnvCommand); ok && v != "" {
		opts.Command = v
	}
	if v, ok := lookup(EnvTerm); ok && v != "" {
		opts.DefaultTerm = v
	}
	if v, ok := lookup(EnvLpr); ok && v != "" {
		opts.DefaultLpr = v
	}
	if v, ok := lookup(EnvTempDir); ok {
		opts.TempDir = v
	}

	var err error
	var b *bool
	if b, err = flag(EnvPersist); err != nil {
		return opts, err
	} else if b != nil {
		opts.Persist = *b
	}
	if b, err = flag(EnvDebug); err != nil {
		return opts, err
	} else if b != nil {
		opts.Debug = *b
	}
	if opts.RecognizesPersist, err = flag(EnvRecognizesPersist); err != nil {
		return opts, err
	}
	if opts.RecognizesBinarySplot, err = flag(EnvBinarySplot); err != nil {
		return opts, err
	}
	if opts.PreferInlineData, err = flag(EnvInline); err != nil {
		return opts, err
	}
	return opts, nil
}
