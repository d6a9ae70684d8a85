// Package flushio buffers console output, which is produced a byte or a
// few bytes at a time and so must be both buffered and explicitly flushed.
package flushio

import (
	"bufio"
	"io"

	"github.com/jcorbin/libb/internal/byteio"
)

// WriteFlusher is a flush-able writer that takes single bytes as readily as
// byte slices.
type WriteFlusher interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// NewWriteFlusher returns w if it is already a WriteFlusher. In-memory buffers
// and io.Discard get a no-op Flush; anything else is wrapped in a
// bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case memBuffer:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// memBuffer matches types like bytes.Buffer and strings.Builder.
type memBuffer interface {
	io.Writer
	Cap() int
	Len() int
	Grow(n int)
	Reset()
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) WriteByte(b byte) error { return byteio.WriteByte(nf.Writer, b) }
func (nf nopFlusher) Flush() error           { return nil }
