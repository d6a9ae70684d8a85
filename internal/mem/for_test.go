package mem

// BytesDump exposes page layout to tests.
type BytesDump struct {
	Bases []uint
	Sizes []uint
	Pages [][]byte
}

// Dump returns the current page layout.
func (m *Bytes) Dump() (d BytesDump) {
	for _, pg := range m.pages {
		d.Bases = append(d.Bases, pg.base)
		d.Sizes = append(d.Sizes, uint(len(pg.data)))
		d.Pages = append(d.Pages, pg.data)
	}
	return d
}
