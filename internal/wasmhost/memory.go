package wasmhost

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/jcorbin/libb/internal/mem"
)

// Memory adapts a guest's linear memory for use as B memory. Addresses past
// the end of linear memory fault with mem.FaultError.
type Memory struct{ api.Memory }

var _ mem.Memory = Memory{}

// Load reads one byte.
func (m Memory) Load(addr uint) (byte, error) {
	if m.Memory == nil || addr > math.MaxUint32 {
		return 0, mem.FaultError{Addr: addr, Op: "load"}
	}
	b, ok := m.Memory.ReadByte(uint32(addr))
	if !ok {
		return 0, mem.FaultError{Addr: addr, Op: "load"}
	}
	return b, nil
}

// Stor writes values starting at addr; nothing is written if any of them
// would fall out of bounds.
func (m Memory) Stor(addr uint, values ...byte) error {
	if len(values) == 0 {
		return nil
	}
	if end := addr + uint(len(values)) - 1; m.Memory == nil || end > math.MaxUint32 || end < addr {
		return mem.FaultError{Addr: addr, Op: "stor"}
	}
	if !m.Memory.Write(uint32(addr), values) {
		return mem.FaultError{Addr: addr, Op: "stor"}
	}
	return nil
}
