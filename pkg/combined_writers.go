package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter tees log output, e.g. to stdout and to the rotated log file.
type CombinedWriter struct {
	Writers []io.Writer
	Err     error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write writes p to every writer; a failing writer does not stop the others.
// n is the total number of bytes written across all writers.
func (cw CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		n += written
		err = multierr.Append(err, werr)
	}
	return n, err
}
