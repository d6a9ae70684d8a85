package byteio_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/libb/internal/byteio"
)

func TestQuote(t *testing.T) {
	for _, tc := range []struct {
		b      byte
		expect string
	}{
		{0, "<NUL>"},
		{4, "<EOT>"},
		{'\n', "<NL>"},
		{' ', "<SP>"},
		{0x7f, "<DEL>"},
		{'a', "'a'"},
		{0xe9, "<0xe9>"},
	} {
		assert.Equal(t, tc.expect, byteio.Quote(tc.b), "quote %#02x", tc.b)
	}
	assert.Equal(t, "'h' 'i' <NL>", byteio.QuoteBytes([]byte("hi\n")))
}

func TestUnquoteControl(t *testing.T) {
	for token, expect := range map[string]byte{
		"<EOT>": 4,
		"<eot>": 4,
		"^D":    4,
		"<NL>":  '\n',
		"^J":    '\n',
		"^[":    0x1b,
		"^?":    0x7f,
		"<SP>":  ' ',
	} {
		b, err := byteio.UnquoteControl(token)
		require.NoError(t, err, "unquote %q", token)
		assert.Equal(t, expect, b, "unquote %q", token)
	}
	_, err := byteio.UnquoteControl("<NOPE>")
	assert.Error(t, err)
}

func TestNewReader(t *testing.T) {
	already := bytes.NewReader([]byte("x"))
	assert.Equal(t, byteio.Reader(already), byteio.NewReader(already), "byte readers pass through")

	name := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(name, []byte("ab"), 0o644))
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	r := byteio.NewReader(f)
	named, ok := r.(interface{ Name() string })
	require.True(t, ok, "file names must survive wrapping")
	assert.Equal(t, name, named.Name())

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "b", string(rest), "reads must share one buffer")
}

func TestWriteByte(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, byteio.WriteByte(&buf, 'x'))
	assert.Equal(t, "x", buf.String())

	var pw struct{ io.Writer }
	var sink bytes.Buffer
	pw.Writer = &sink
	require.NoError(t, byteio.WriteByte(pw, 'y'))
	assert.Equal(t, "y", sink.String())
}
