package flushio_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/libb/internal/flushio"
)

type countingWriter struct {
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.n += len(p)
	return len(p), nil
}

type failingFlusher struct{ io.Writer }

func (failingFlusher) WriteByte(byte) error { return nil }
func (failingFlusher) Flush() error         { return errors.New("nope") }

func TestNewWriteFlusher(t *testing.T) {
	var buf bytes.Buffer
	wf := flushio.NewWriteFlusher(&buf)
	_, err := wf.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", buf.String(), "buffers must not be buffered again")

	bw := bufio.NewWriter(&buf)
	assert.Equal(t, flushio.WriteFlusher(bw), flushio.NewWriteFlusher(bw))

	var cw countingWriter
	wf = flushio.NewWriteFlusher(&cw)
	_, err = wf.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 0, cw.n, "plain writers must be buffered")
	require.NoError(t, wf.Flush())
	assert.Equal(t, 3, cw.n)

	wf = flushio.NewWriteFlusher(io.Discard)
	require.NoError(t, wf.WriteByte('x'))
	require.NoError(t, wf.Flush())
}

func TestWriteFlusher_bytes(t *testing.T) {
	var cw countingWriter
	wf := flushio.NewWriteFlusher(flushio.NewWriteFlusher(&cw))
	for _, b := range []byte("hello") {
		require.NoError(t, wf.WriteByte(b))
	}
	assert.Equal(t, 0, cw.n)
	require.NoError(t, wf.Flush())
	assert.Equal(t, 5, cw.n)

	var sb strings.Builder
	wf = flushio.NewWriteFlusher(&sb)
	require.NoError(t, wf.WriteByte('!'))
	assert.Equal(t, "!", sb.String(), "builders take bytes directly")
}

func TestWriteFlushers(t *testing.T) {
	assert.Nil(t, flushio.WriteFlushers())

	var a, b bytes.Buffer
	wfa := flushio.NewWriteFlusher(&a)
	assert.Equal(t, wfa, flushio.WriteFlushers(wfa, nil))

	wf := flushio.WriteFlushers(wfa, flushio.NewWriteFlusher(&b))
	_, err := wf.Write([]byte("tee"))
	require.NoError(t, err)
	require.NoError(t, wf.WriteByte('!'))
	assert.Equal(t, "tee!", a.String())
	assert.Equal(t, "tee!", b.String())

	var c bytes.Buffer
	wf = flushio.WriteFlushers(wf, flushio.NewWriteFlusher(&c))
	_, err = wf.Write([]byte("3"))
	require.NoError(t, err)
	assert.Equal(t, "tee!3", a.String(), "nested tees are flattened")
	assert.Equal(t, "3", c.String())

	wf = flushio.WriteFlushers(wf, failingFlusher{io.Discard})
	assert.EqualError(t, wf.Flush(), "nope")
}
