package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// WriterLogger implements core.Logger on top of any io.Writer
type WriterLogger struct {
	w io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger writing to w. io.Discard silences it.
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}
