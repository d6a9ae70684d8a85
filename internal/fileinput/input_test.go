package fileinput_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/libb/internal/fileinput"
)

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func TestInput(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{
		namedReader{strings.NewReader("ab\ncd"), "first"},
		namedReader{strings.NewReader(""), "empty"},
		namedReader{strings.NewReader("e\n"), "second"},
	}}

	var got []byte
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, b)

		switch len(got) {
		case 2:
			assert.Equal(t, "first:1:2", in.Pos.String())
		case 3:
			assert.Equal(t, `first:1 "ab"`, in.Last.String())
			assert.Equal(t, "first:1:3", in.Pos.String(), "line feeds end their line")
		case 4:
			assert.Equal(t, "first:2:1", in.Pos.String())
		case 6:
			assert.Equal(t, `first:2 "cd"`, in.Last.String(), "unterminated last line must roll over")
			assert.Equal(t, "second:1:1", in.Pos.String())
		}
	}
	assert.Equal(t, "ab\ncde\n", string(got))
	assert.Equal(t, `second:1 "e"`, in.Last.String())

	_, err := in.ReadByte()
	assert.Equal(t, io.EOF, err, "must stay at EOF")
}

type failReader struct{ err error }

func (fr failReader) Read([]byte) (int, error) { return 0, fr.err }

func TestInput_error(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{failReader{io.ErrUnexpectedEOF}}}
	_, err := in.ReadByte()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestInput_unnamed(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{strings.NewReader("x")}}
	b, err := in.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('x'), b)
	assert.Equal(t, "<unnamed *strings.Reader>:1:1", in.Pos.String())
}
