package mem

import (
	"math"
	"slices"
	"sort"
)

// DefaultBytesPageSize provides a default for Bytes.PageSize.
const DefaultBytesPageSize = 4096

// Bytes implements a sparse paged memory. Pages start out PageSize aligned,
// but are clipped wherever they would overlap a neighbor, so sizes vary once
// memory is filled in out of order.
//
// Bytes never faults on its own: any address may be loaded or stored unless
// Limit is set, in which case addresses past the limit fail with LimitError.
// Accesses that run off the top of the address space wrap around to 0, as
// address arithmetic does. Unallocated memory reads as zero.
type Bytes struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit, if non-zero, is the highest addressable byte.
	Limit uint

	pages []page // sorted by base, never overlapping
}

type page struct {
	base uint
	data []byte
}

// last is the page's highest address; unlike one past it, this cannot
// overflow for the page at the top of memory.
func (pg page) last() uint { return pg.base + uint(len(pg.data)) - 1 }

var _ Memory = (*Bytes)(nil)

// Size returns one past the highest allocated address, or math.MaxUint once
// the top of memory is allocated.
func (m *Bytes) Size() uint {
	i := len(m.pages) - 1
	if i < 0 {
		return 0
	}
	if last := m.pages[i].last(); last < math.MaxUint {
		return last + 1
	}
	return math.MaxUint
}

// Extents calls f with the first and last address of every run of allocated
// memory, in address order, until f returns false. Adjacent pages form one
// run.
func (m *Bytes) Extents(f func(first, last uint) bool) {
	for i := 0; i < len(m.pages); {
		first, last := m.pages[i].base, m.pages[i].last()
		for i++; i < len(m.pages) && last < math.MaxUint && m.pages[i].base == last+1; i++ {
			last = m.pages[i].last()
		}
		if !f(first, last) {
			return
		}
	}
}

// Load returns a single byte.
func (m *Bytes) Load(addr uint) (byte, error) {
	if err := m.checkLimit(addr, 1, "load"); err != nil {
		return 0, err
	}
	if i := m.find(addr); i < len(m.pages) && m.pages[i].base <= addr {
		pg := m.pages[i]
		return pg.data[addr-pg.base], nil
	}
	return 0, nil
}

// LoadInto fills buf from memory starting at addr. Nothing is loaded if any
// of it would exceed Limit.
func (m *Bytes) LoadInto(addr uint, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := m.checkLimit(addr, uint(len(buf)), "load"); err != nil {
		return err
	}
	if n, wraps := untilWrap(addr, len(buf)); wraps {
		m.loadInto(addr, buf[:n])
		m.loadInto(0, buf[n:])
	} else {
		m.loadInto(addr, buf)
	}
	return nil
}

// Stor stores values starting at addr, allocating pages as needed. Nothing
// is stored if any of it would exceed Limit.
func (m *Bytes) Stor(addr uint, values ...byte) error {
	if len(values) == 0 {
		return nil
	}
	if err := m.checkLimit(addr, uint(len(values)), "stor"); err != nil {
		return err
	}
	if m.PageSize == 0 {
		m.PageSize = DefaultBytesPageSize
	}
	if n, wraps := untilWrap(addr, len(values)); wraps {
		m.stor(addr, values[:n])
		m.stor(0, values[n:])
	} else {
		m.stor(addr, values)
	}
	return nil
}

// untilWrap returns how many of n bytes starting at addr fit below the top
// of memory, and whether that is fewer than n.
func untilWrap(addr uint, n int) (int, bool) {
	if room := math.MaxUint - addr; room < uint(n-1) {
		return int(room) + 1, true
	}
	return n, false
}

// loadInto and stor require that addr+len-1 does not wrap.

func (m *Bytes) loadInto(addr uint, buf []byte) {
	for i := m.find(addr); len(buf) > 0; i++ {
		if i >= len(m.pages) || m.pages[i].base > addr+uint(len(buf)-1) {
			clear(buf)
			return
		}
		pg := m.pages[i]
		if pg.base > addr {
			gap := pg.base - addr
			clear(buf[:gap])
			buf, addr = buf[gap:], pg.base
		}
		n := copy(buf, pg.data[addr-pg.base:])
		buf, addr = buf[n:], addr+uint(n)
	}
}

func (m *Bytes) stor(addr uint, values []byte) {
	for i := m.find(addr); len(values) > 0; i++ {
		if i == len(m.pages) || m.pages[i].base > addr {
			m.insertPage(i, addr)
		}
		pg := m.pages[i]
		n := copy(pg.data[addr-pg.base:], values)
		values, addr = values[n:], addr+uint(n)
	}
}

// find returns the index of the first page whose last address is at or past
// addr, which is the page holding addr if there is one.
func (m *Bytes) find(addr uint) int {
	return sort.Search(len(m.pages), func(i int) bool {
		return m.pages[i].last() >= addr
	})
}

// insertPage allocates a page holding addr at index i.
func (m *Bytes) insertPage(i int, addr uint) {
	base := addr / m.PageSize * m.PageSize
	last := base + (m.PageSize - 1)
	if last < base {
		last = math.MaxUint
	}
	if i > 0 {
		if prior := m.pages[i-1].last(); base <= prior {
			base = prior + 1
		}
	}
	if i < len(m.pages) {
		if next := m.pages[i].base; last >= next {
			last = next - 1
		}
	}
	m.pages = slices.Insert(m.pages, i, page{base, make([]byte, last-base+1)})
}

// checkLimit checks the n bytes starting at addr, reporting the first
// address past Limit.
func (m *Bytes) checkLimit(addr, n uint, op string) error {
	if m.Limit == 0 {
		return nil
	}
	if addr > m.Limit {
		return LimitError{addr, op}
	}
	last := addr + (n - 1)
	if last < addr {
		return LimitError{math.MaxUint, op}
	}
	if last > m.Limit {
		return LimitError{m.Limit + 1, op}
	}
	return nil
}
