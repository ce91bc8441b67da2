package gnuplot

import (
	"fmt"
	"os"
)

// TempFile is a temporary data file owned by exactly one plot item. It is
// removed when its owner is closed.
type TempFile struct {
	name   string
	closed bool
}

// NewTempFile writes data to a new, uniquely named file in dir. An empty dir
// selects the OS default temporary directory.
func NewTempFile(dir string, data []byte) (*TempFile, error) {
	f, err := os.CreateTemp(dir, "gnuplot-*.dat")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary data file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("unable to write temporary data file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("unable to close temporary data file: %w", err)
	}
	tracer().Debugf("staged %d bytes in %s", len(data), f.Name())
	return &TempFile{name: f.Name()}, nil
}

// Name returns the file's path.
func (t *TempFile) Name() string {
	return t.name
}

// Close removes the file. Removal failures only mean the file is gone
// already and are not reported.
func (t *TempFile) Close() error {
	if t == nil || t.closed {
		return nil
	}
	t.closed = true
	if err := os.Remove(t.name); err != nil {
		tracer().Debugf("could not remove temporary file: %v", err)
	}
	return nil
}
