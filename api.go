package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/libb/internal/bstr"
	"github.com/jcorbin/libb/internal/linkage"
	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/panicerr"
	"github.com/jcorbin/libb/internal/word"
)

// EntryPoint names the function that Run calls.
const EntryPoint = "main"

// New creates a Runtime with every primitive linked.
func New(opts ...Option) *Runtime {
	var rt Runtime
	rt.apply(opts...)
	if rt.mem == nil {
		rt.mem = &rt.core
	}
	rt.link = linkage.NewTable(rt.scheme, rt.textBase)
	rt.linkBuiltins()
	return &rt
}

// Link defines a new entry point, returning its word address. Calling code
// uses this to provide its own functions, the entry point above all.
func (rt *Runtime) Link(name string, arity int, fn linkage.Func) (word.Word, error) {
	sym := rt.link.Mangle(name)
	ent, err := rt.link.Define(name, arity, func(args ...word.Word) word.Word {
		rt.checkContext()
		rt.enter(sym, args)
		r := fn(args...)
		rt.leave(sym, r)
		return r
	})
	return ent.Addr, err
}

// Symbol returns the word address of a mangled symbol.
func (rt *Runtime) Symbol(sym string) (word.Word, error) {
	ent, ok := rt.link.Lookup(sym)
	if !ok {
		return 0, undefinedError(sym)
	}
	return ent.Addr, nil
}

// Resolve finds an entry point by its symbol or, failing that, by its B
// name. References that are already mangled never fall back to names.
func (rt *Runtime) Resolve(ref string) (linkage.Entry, error) {
	if ent, ok := rt.link.Lookup(ref); ok {
		return ent, nil
	}
	if _, mangled := rt.link.Demangle(ref); mangled {
		return linkage.Entry{}, undefinedError(ref)
	}
	if ent, ok := rt.link.Resolve(ref); ok {
		return ent, nil
	}
	return linkage.Entry{}, undefinedError(rt.link.Mangle(ref))
}

// Mangle returns the symbol for a B name under the runtime's scheme.
func (rt *Runtime) Mangle(name string) string { return rt.link.Mangle(name) }

// Entries lists every entry point in address order.
func (rt *Runtime) Entries() []linkage.Entry { return rt.link.Entries() }

// DataBase returns the first word address past the entry points.
func (rt *Runtime) DataBase() word.Word { return rt.link.End() }

// Call calls through a function address, as B code does with any word it
// applies as a function. Addresses that are not entry points halt the
// runtime.
func (rt *Runtime) Call(fn word.Word, args ...word.Word) word.Word {
	ent, ok := rt.link.At(fn)
	if !ok {
		rt.halt(callError{fn})
	}
	return ent.Call(args...)
}

// StoreString lays out a B string at s, sentinel included.
func (rt *Runtime) StoreString(s word.Word, text []byte) error {
	return bstr.Store(rt.mem, s, text)
}

// Run calls the entry point once. Both returning from it and calling exit
// count as success; the entry's own return value is not an exit status.
func (rt *Runtime) Run(ctx context.Context) error {
	r, err := rt.Invoke(ctx, rt.link.Mangle(EntryPoint))
	if err == nil {
		rt.logf("#", "%v returned %v", EntryPoint, r)
	}
	return err
}

// Invoke calls one entry point by symbol, returning its result. A call
// that exits returns 0 and no error.
func (rt *Runtime) Invoke(ctx context.Context, sym string, args ...word.Word) (word.Word, error) {
	ent, ok := rt.link.Lookup(sym)
	if !ok {
		return 0, undefinedError(sym)
	}
	return rt.invoke(ctx, sym, func() word.Word {
		return ent.Call(args...)
	})
}

func (rt *Runtime) invoke(ctx context.Context, name string, f func() word.Word) (word.Word, error) {
	result, err := panicerr.Call(name, func() (word.Word, error) {
		rt.ctx, rt.depth = ctx, 0
		defer func() { rt.ctx = nil }()
		r := f()
		return r, rt.flush()
	})
	if err == nil {
		return result, nil
	}
	var halt haltError
	if errors.As(err, &halt) {
		return 0, halt.err
	}
	return 0, err
}

// Dump writes the entry points and all non-zero memory to w.
func (rt *Runtime) Dump(w io.Writer) {
	rtDumper{rt: rt, out: w}.dump()
}

func WithInput(r io.Reader) Option        { return withInputs(r) }
func WithInputs(rs ...io.Reader) Option   { return withInputs(rs...) }
func WithOutput(w io.Writer) Option       { return withOutput(w) }
func WithTee(w io.Writer) Option          { return withTee(w) }
func WithMemLimit(limit uint) Option      { return withMemLimit(limit) }
func WithPageSize(size uint) Option       { return withPageSize(size) }
func WithTextBase(addr uint) Option       { return withTextBase(addr) }
func WithScheme(sc linkage.Scheme) Option { return withScheme(sc) }
func WithInteractive(on bool) Option      { return interactiveOption(on) }
func WithMemory(m mem.Memory) Option      { return memoryOption{m} }
func WithCloser(c io.Closer) Option       { return closerOption{c} }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
