package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jcorbin/libb/internal/fileinput"
	"github.com/jcorbin/libb/internal/flushio"
	"github.com/jcorbin/libb/internal/linkage"
	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/word"
)

// wordOrder is the byte order of words stored in memory; it matches both
// WebAssembly and the hosts B is likely to run on.
var wordOrder binary.ByteOrder = binary.LittleEndian

// Runtime provides the primitives that translated B programs call, over a
// byte-addressed memory and a pair of console streams.
//
// A Runtime is not safe for concurrent use: B has one thread of control, and
// so does everything here.
type Runtime struct {
	tracer

	input   fileinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer

	// mem is where word addresses point; core backs it unless some other
	// memory, like a wasm guest's, has been bound.
	mem  mem.Memory
	core mem.Bytes

	scheme   linkage.Scheme
	textBase uint
	link     *linkage.Table

	interactive bool
	ctx         context.Context
	scratch     [32]byte
}

// Close flushes output and closes any inputs that were handed over to the
// runtime.
func (rt *Runtime) Close() error {
	err := rt.flush()
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if cerr := rt.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	rt.closers = nil
	return err
}

// halt stops the runtime by panicking with a haltError, which invoke
// recovers. A nil err is a successful stop, as after exit. Output is flushed
// first; a flush failure becomes the cause if there was none.
func (rt *Runtime) halt(err error) {
	if ferr := rt.quietly(rt.flush); err == nil {
		err = ferr
	}
	rt.quietly(func() error {
		if err == nil {
			rt.logf("#", "halt")
		} else {
			rt.logf("#", "halt error: %v", err)
		}
		return nil
	})
	panic(haltError{err})
}

// quietly runs f, discarding any panic out of it, as a halt already under
// way must not be replaced by a second failure.
func (rt *Runtime) quietly(f func() error) (err error) {
	defer func() { recover() }()
	return f()
}

func (rt *Runtime) flush() error {
	if rt.out == nil {
		return nil
	}
	return rt.out.Flush()
}

func (rt *Runtime) haltif(err error) {
	if err != nil {
		rt.halt(err)
	}
}

func (rt *Runtime) checkContext() {
	if rt.ctx != nil {
		rt.haltif(rt.ctx.Err())
	}
}

// Load returns the word stored at a word address, as B's unary * does.
func (rt *Runtime) Load(addr word.Word) word.Word {
	w, err := mem.LoadWord(rt.mem, wordOrder, word.Translate(addr))
	rt.haltif(err)
	return w
}

// Store writes a word at a word address, returning it, as B's = does.
func (rt *Runtime) Store(addr, w word.Word) word.Word {
	rt.haltif(mem.StorWord(rt.mem, wordOrder, word.Translate(addr), w))
	return w
}

// Memory returns the memory that word addresses are currently translated into.
func (rt *Runtime) Memory() mem.Memory { return rt.mem }

// haltError carries a halt out through any number of primitive calls.
type haltError struct{ err error }

func (he haltError) Error() string {
	if he.err == nil {
		return "halted"
	}
	return fmt.Sprintf("halted: %v", he.err)
}

func (he haltError) Unwrap() error { return he.err }

type callError struct{ addr word.Word }

func (err callError) Error() string {
	return fmt.Sprintf("call to @%v, which is not an entry point", err.addr)
}

type undefinedError string

func (sym undefinedError) Error() string {
	return fmt.Sprintf("undefined symbol %q", string(sym))
}
