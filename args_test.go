package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/libb/internal/bstr"
	"github.com/jcorbin/libb/internal/word"
)

func TestLiterals(t *testing.T) {
	for _, tc := range []struct {
		arg  string
		want word.Word
	}{
		{"42", 42},
		{"-1", -1},
		{"017", 15},
		{"0x1f", 31},
		{"'a'", 'a'},
		{"'hi'", 'h'<<8 | 'i'},
		{"'*n'", '\n'},
		{"'*e'", word.Word(word.Sentinel)},
		{"<NL>", '\n'},
		{"<nul>", 0},
		{"^D", 4},
	} {
		t.Run(tc.arg, func(t *testing.T) {
			w, err := newLiterals(New()).parse(tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, w)
		})
	}
}

func TestLiterals_strings(t *testing.T) {
	rt := New()
	lits := newLiterals(rt)
	words, err := lits.parseAll([]string{`"hello*n"`, `""`, "3", `"bye"`})
	require.NoError(t, err)
	require.Len(t, words, 4)

	base := rt.DataBase()
	assert.Equal(t, base, words[0], "strings start past the entry points")
	assert.Equal(t, base+bstr.Words(len("hello\n")), words[1])
	assert.Equal(t, word.Word(3), words[2])
	assert.Equal(t, words[1]+bstr.Words(0), words[3])

	for _, tc := range []struct {
		s    word.Word
		text string
	}{
		{words[0], "hello\n"},
		{words[1], ""},
		{words[3], "bye"},
	} {
		var sb strings.Builder
		require.NoError(t, bstr.Scan(rt.Memory(), tc.s, func(b byte) error {
			return sb.WriteByte(b)
		}))
		assert.Equal(t, tc.text, sb.String())
	}
}

func TestLiterals_errors(t *testing.T) {
	lits := newLiterals(New())
	for _, arg := range []string{
		"nope",
		"12x",
		"'" + strings.Repeat("a", word.Size+1) + "'",
		`"*z"`,
		"'*'",
		"<NOPE>",
	} {
		_, err := lits.parse(arg)
		assert.Error(t, err, "%q", arg)
	}

	_, err := lits.parse(`"a*qb"`)
	assert.Equal(t, bstr.EscapeError{Seq: "*q", Offset: 1}, err)
}
