// Package wasmtest assembles small WebAssembly guests for tests: a memory,
// some imported functions taking and returning i64, data segments, and a
// single exported entry function.
package wasmtest

const (
	valI64 = 0x7e

	opCall     = 0x10
	opDrop     = 0x1a
	opI32Const = 0x41
	opI64Const = 0x42
	opEnd      = 0x0b
)

type importedFunc struct {
	module, name string
	arity        int
}

type dataSegment struct {
	offset uint32
	data   []byte
}

// Module builds one guest module.
type Module struct {
	imports []importedFunc
	data    []dataSegment
	entry   string
	code    Code
	pages   uint32
}

// Import adds an imported function, returning its function index.
func (m *Module) Import(module, name string, arity int) uint32 {
	m.imports = append(m.imports, importedFunc{module, name, arity})
	return uint32(len(m.imports) - 1)
}

// Data adds an active data segment at offset in memory 0.
func (m *Module) Data(offset uint32, data []byte) {
	m.data = append(m.data, dataSegment{offset, data})
}

// Entry sets the exported entry function, which takes nothing and returns
// the i64 left on the stack by code.
func (m *Module) Entry(name string, code Code) {
	m.entry = name
	m.code = code
}

// Pages sets the initial memory size; the default is one page.
func (m *Module) Pages(n uint32) { m.pages = n }

// Build encodes the module.
func (m *Module) Build() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	// types: one per import, then the entry
	var types []byte
	types = appendULEB(types, uint32(len(m.imports)+1))
	for _, imp := range m.imports {
		types = append(types, 0x60)
		types = appendULEB(types, uint32(imp.arity))
		for i := 0; i < imp.arity; i++ {
			types = append(types, valI64)
		}
		types = append(types, 1, valI64)
	}
	types = append(types, 0x60, 0, 1, valI64)
	out = appendSection(out, 1, types)

	if len(m.imports) > 0 {
		var imports []byte
		imports = appendULEB(imports, uint32(len(m.imports)))
		for i, imp := range m.imports {
			imports = appendName(imports, imp.module)
			imports = appendName(imports, imp.name)
			imports = append(imports, 0x00)
			imports = appendULEB(imports, uint32(i))
		}
		out = appendSection(out, 2, imports)
	}

	// the entry's type follows the import types, as its index follows the imports
	entryType := uint32(len(m.imports))
	out = appendSection(out, 3, appendULEB([]byte{1}, entryType))

	pages := m.pages
	if pages == 0 {
		pages = 1
	}
	out = appendSection(out, 5, appendULEB([]byte{1, 0x00}, pages))

	var exports []byte
	exports = appendULEB(exports, 2)
	exports = appendName(exports, m.entry)
	exports = append(exports, 0x00)
	exports = appendULEB(exports, entryType)
	exports = appendName(exports, "memory")
	exports = append(exports, 0x02, 0x00)
	out = appendSection(out, 7, exports)

	var body []byte
	body = append(body, 0) // no locals
	body = append(body, m.code.b...)
	body = append(body, opEnd)
	var code []byte
	code = appendULEB(code, 1)
	code = appendULEB(code, uint32(len(body)))
	code = append(code, body...)
	out = appendSection(out, 10, code)

	if len(m.data) > 0 {
		var data []byte
		data = appendULEB(data, uint32(len(m.data)))
		for _, seg := range m.data {
			data = append(data, 0x00, opI32Const)
			data = appendSLEB(data, int64(int32(seg.offset)))
			data = append(data, opEnd)
			data = appendULEB(data, uint32(len(seg.data)))
			data = append(data, seg.data...)
		}
		out = appendSection(out, 11, data)
	}

	return out
}

// Code accumulates the instructions of the entry function.
type Code struct{ b []byte }

// I64 pushes a constant.
func (c Code) I64(v int64) Code {
	c.b = appendSLEB(append(c.b, opI64Const), v)
	return c
}

// Call calls the function with the given index.
func (c Code) Call(fn uint32) Code {
	c.b = appendULEB(append(c.b, opCall), fn)
	return c
}

// Drop discards the top of the stack.
func (c Code) Drop() Code {
	c.b = append(c.b, opDrop)
	return c
}

func appendSection(out []byte, id byte, payload []byte) []byte {
	out = append(out, id)
	out = appendULEB(out, uint32(len(payload)))
	return append(out, payload...)
}

func appendName(out []byte, name string) []byte {
	out = appendULEB(out, uint32(len(name)))
	return append(out, name...)
}

func appendULEB(out []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func appendSLEB(out []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}
