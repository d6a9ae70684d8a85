// Package logio routes console output into a line oriented logging function,
// like testing.T.Logf, so that program output interleaves with trace logs.
package logio

import (
	"bytes"
	"sync"
)

// Writer buffers written bytes, passing each completed line to Logf without
// its line feed. Any partial line is held until Flush.
//
// Writer is a flushio.WriteFlusher, and is safe to use from multiple
// goroutines.
type Writer struct {
	Logf func(string, ...interface{})

	// Prefix, if set, is logged before every line.
	Prefix string

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write logs any lines completed by p.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.logLines(false)
	return len(p), nil
}

// WriteByte logs the current line if b ends it.
func (lw *Writer) WriteByte(b byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.WriteByte(b)
	if b == '\n' {
		lw.logLines(false)
	}
	return nil
}

// Flush logs any partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.logLines(true)
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error {
	return lw.Flush()
}

func (lw *Writer) logLines(all bool) {
	for lw.buf.Len() > 0 {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			if !all {
				return
			}
			i = lw.buf.Len()
		}
		lw.Logf("%s%s", lw.Prefix, lw.buf.Next(i))
		if lw.buf.Len() > 0 {
			lw.buf.Next(1)
		}
	}
}
