package mem

import (
	"encoding/binary"

	"github.com/jcorbin/libb/internal/word"
)

// LoadWord reads one word of Size bytes at addr, decoded in the given order.
func LoadWord(m Memory, order binary.ByteOrder, addr uint) (word.Word, error) {
	var buf [8]byte
	b := buf[:word.Size]
	if bm, ok := m.(*Bytes); ok {
		if err := bm.LoadInto(addr, b); err != nil {
			return 0, err
		}
	} else {
		for i := range b {
			v, err := m.Load(addr + uint(i))
			if err != nil {
				return 0, err
			}
			b[i] = v
		}
	}
	if word.Size == 4 {
		return word.Word(int32(order.Uint32(b))), nil
	}
	return word.Word(order.Uint64(b)), nil
}

// StorWord writes w as Size bytes at addr, encoded in the given order.
func StorWord(m Memory, order binary.ByteOrder, addr uint, w word.Word) error {
	var buf [8]byte
	b := buf[:word.Size]
	if word.Size == 4 {
		order.PutUint32(b, uint32(w))
	} else {
		order.PutUint64(b, uint64(w))
	}
	return m.Stor(addr, b...)
}
