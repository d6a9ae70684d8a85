// Package word implements B's word-oriented view of memory: a single signed
// scalar type as wide as a host address, the translation from word addresses
// to byte addresses, and the packing of characters into words.
//
// Nothing here is checked. A word address that translates outside of mapped
// memory, or that overflows while translating, is simply a bad address; it is
// up to whatever memory gets accessed with it to fault or not.
package word

import "strconv"

// Word is the sole B value type: an integer, an address, a truth value, or a
// few packed characters, depending on how it is used.
type Word int

// Size is the number of bytes in a Word.
const Size = strconv.IntSize / 8

// Sentinel terminates B strings; it is written *e in B source.
const Sentinel byte = 4

// EOF is returned by character input once no more input remains. It is not
// representable as a byte, so it can never be confused with one.
const EOF Word = -1

// Translate converts a word address into a byte address.
func Translate(w Word) uint { return uint(w) * Size }

// Untranslate converts a byte address back into a word address, returning
// false if addr is not word aligned.
func Untranslate(addr uint) (Word, bool) {
	if !Aligned(addr) {
		return 0, false
	}
	return Word(addr / Size), true
}

// Aligned returns true if addr falls on a word boundary.
func Aligned(addr uint) bool { return addr%Size == 0 }

// Align rounds addr up to the next word boundary.
func Align(addr uint) uint { return (addr + Size - 1) / Size * Size }
