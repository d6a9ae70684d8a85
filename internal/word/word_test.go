package word_test

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/libb/internal/word"
)

func TestSize(t *testing.T) {
	assert.Equal(t, bits.UintSize/8, word.Size, "word must be pointer width")
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, uint(0), word.Translate(0), "word address 0 is byte offset 0")
	for _, k := range []word.Word{1, 2, 3, 17, 1024} {
		assert.Equal(t, uint(k)*word.Size, word.Translate(k), "translate %v", k)
		back, ok := word.Untranslate(word.Translate(k))
		require.True(t, ok, "translated address must be aligned")
		assert.Equal(t, k, back, "round trip %v", k)
	}
	_, ok := word.Untranslate(word.Size + 1)
	assert.False(t, ok, "misaligned byte address must not untranslate")
}

func TestAlign(t *testing.T) {
	assert.Equal(t, uint(0), word.Align(0))
	assert.Equal(t, uint(word.Size), word.Align(1))
	assert.Equal(t, uint(word.Size), word.Align(word.Size))
	assert.Equal(t, uint(2*word.Size), word.Align(word.Size+1))
	assert.True(t, word.Aligned(3*word.Size))
	assert.False(t, word.Aligned(3*word.Size-1))
}

func TestAppendUnpacked(t *testing.T) {
	for _, tc := range []struct {
		name   string
		c      word.Word
		expect string
	}{
		{"zero", 0, ""},
		{"one char", 'a', "a"},
		{"two chars", 'a'<<8 | 'b', "ab"},
		{"interior zero", 'a'<<16 | 'b', "ab"},
		{"newline", '\n', "\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := word.AppendUnpacked(nil, tc.c)
			assert.Equal(t, tc.expect, string(out))
			again := word.AppendUnpacked(out, tc.c)
			assert.Equal(t, tc.expect+tc.expect, string(again), "unpacking must be repeatable")
		})
	}
}

func TestAppendUnpacked_fullWord(t *testing.T) {
	chars := []byte("abcdefgh")[:word.Size]
	c := word.Pack(chars)
	assert.Equal(t, string(chars), string(word.AppendUnpacked(nil, c)))

	// the high byte ends up in the sign bit, it must still come out first
	if word.Size == 8 {
		c = word.Pack([]byte{0xff, 0, 0, 0, 0, 0, 'a', 'b'})
		assert.True(t, c < 0, "expected a negative word")
		assert.Equal(t, []byte{0xff, 'a', 'b'}, word.AppendUnpacked(nil, c))
	}
}

func TestPack(t *testing.T) {
	assert.Equal(t, word.Word(0), word.Pack(nil))
	assert.Equal(t, word.Word('x'), word.Pack([]byte("x")))
	assert.Equal(t, word.Word('h'<<8|'i'), word.Pack([]byte("hi")))

	long := make([]byte, word.Size+2)
	for i := range long {
		long[i] = byte('a' + i)
	}
	assert.Equal(t, word.Pack(long[2:]), word.Pack(long), "only the last Size chars survive")
}
