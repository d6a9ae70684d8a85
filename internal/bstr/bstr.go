// Package bstr implements access to B strings: runs of bytes starting at a
// word address and ending at word.Sentinel.
//
// None of these operations bounds check anything. Indices past the sentinel
// and strings with no sentinel at all are the caller's problem; the only
// errors returned come from the underlying memory faulting.
package bstr

import (
	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/word"
)

// CharAt returns the n-th byte of the string at s, zero extended.
func CharAt(m mem.Memory, s, n word.Word) (word.Word, error) {
	b, err := m.Load(word.Translate(s) + uint(n))
	return word.Word(b), err
}

// SetCharAt replaces the n-th byte of the string at s with the low byte of c,
// returning c unchanged.
func SetCharAt(m mem.Memory, s, n, c word.Word) (word.Word, error) {
	return c, m.Stor(word.Translate(s)+uint(n), byte(c))
}

// Scan calls emit with every byte of the string at s, up to but not
// including the sentinel. Scanning stops early if emit returns an error.
func Scan(m mem.Memory, s word.Word, emit func(b byte) error) error {
	for addr := word.Translate(s); ; addr++ {
		b, err := m.Load(addr)
		if err != nil {
			return err
		}
		if b == word.Sentinel {
			return nil
		}
		if err := emit(b); err != nil {
			return err
		}
	}
}

// Store lays text out at s followed by the sentinel, the way a B string
// constant is laid out in memory.
func Store(m mem.Memory, s word.Word, text []byte) error {
	buf := make([]byte, 0, len(text)+1)
	buf = append(buf, text...)
	buf = append(buf, word.Sentinel)
	return m.Stor(word.Translate(s), buf...)
}

// Words returns how many words a string of n bytes occupies once its
// sentinel is added.
func Words(n int) word.Word {
	return word.Word((n + word.Size) / word.Size)
}
