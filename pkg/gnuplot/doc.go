/*
Package gnuplot drives an external gnuplot program through a one-way command
pipe.

Plot items describe what to draw: gnuplot expressions ([Func]), existing data
files ([File]), in-memory arrays ([Data]) and data tabulated on a rectangular
grid ([GridData]). Each item renders a fragment of a plot command and, when
its data travels inline, a data block written right after the command.
Array data is otherwise staged through a temporary file that belongs to the
item and is removed when the item is closed.

A [Session] owns the gnuplot process (or any writer receiving the command
stream), composes plot commands out of items and offers the usual settings
such as titles, labels, ranges and postscript hardcopies. gnuplot's own
diagnostics are never read back.
*/
package gnuplot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gnuplot'.
func tracer() tracing.Trace {
	return tracing.Select("gnuplot")
}
