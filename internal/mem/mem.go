// Package mem provides the byte-addressed memory that B's word addresses are
// translated into.
package mem

import "fmt"

// Memory is a byte-addressed store. Addresses are host byte addresses, as
// produced by word.Translate.
type Memory interface {
	Load(addr uint) (byte, error)
	Stor(addr uint, values ...byte) error
}

// LimitError indicates that a memory operation, like load or store, exceeded a limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%#x", lim.Op, lim.Addr)
}

// FaultError indicates an address that the backing store cannot map at all.
type FaultError struct {
	Addr uint
	Op   string
}

func (f FaultError) Error() string {
	return fmt.Sprintf("memory fault during %v @%#x", f.Op, f.Addr)
}
