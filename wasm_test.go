package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/libb/internal/linkage"
	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/wasmhost"
	"github.com/jcorbin/libb/internal/wasmtest"
	"github.com/jcorbin/libb/internal/word"
)

// bGuest builds guests that import primitives the way a B compiler
// targeting wasm would.
type bGuest struct {
	wasmtest.Module
	funcs map[string]uint32
}

func (g *bGuest) fn(name string) uint32 {
	if idx, ok := g.funcs[name]; ok {
		return idx
	}
	if g.funcs == nil {
		g.funcs = make(map[string]uint32)
	}
	var arity int
	for _, bi := range builtins {
		if bi.name == name {
			arity = bi.arity
		}
	}
	idx := g.Import(wasmhost.DefaultModule, linkage.WasmScheme().Mangle(name), arity)
	g.funcs[name] = idx
	return idx
}

func (g *bGuest) str(s word.Word, text string) {
	g.Data(uint32(word.Translate(s)), append([]byte(text), word.Sentinel))
}

func runWasmTest(t *testing.T, input string, build func(g *bGuest)) (string, error) {
	var g bGuest
	build(&g)

	var out bytes.Buffer
	rt := New(
		WithScheme(linkage.WasmScheme()),
		WithInput(strings.NewReader(input)),
		WithOutput(&out),
		WithLogf(t.Logf),
	)
	defer rt.Close()

	err := rt.RunWasm(context.Background(), g.Build())
	require.NoError(t, rt.Close())
	assert.Equal(t, mem.Memory(&rt.core), rt.Memory(), "guest memory must be unbound after running")
	return out.String(), err
}

func TestRunWasm(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		exit  bool
		out   string
	}{
		{name: "exit", exit: true, out: "hiHi105!\n"},
		{name: "return", out: "hiHi105!\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runWasmTest(t, tc.input, func(g *bGuest) {
				g.str(2, "hi")
				code := wasmtest.Code{}.
					I64(2).Call(g.fn("putstr")).Drop().
					I64(2).I64(0).I64('H').Call(g.fn("lchar")).Drop().
					I64(2).Call(g.fn("putstr")).Drop().
					I64(2).I64(1).Call(g.fn("char")).Call(g.fn("putnumb")).Drop().
					I64('!'<<8 | '\n').Call(g.fn("putchar")).Drop()
				if tc.exit {
					code = code.Call(g.fn("exit")).Drop().
						I64('x').Call(g.fn("putchar")).Drop()
				}
				g.Entry(linkage.WasmScheme().Mangle(EntryPoint), code.I64(7))
			})
			require.NoError(t, err)
			assert.Equal(t, tc.out, out)
		})
	}
}

func TestRunWasm_getchar(t *testing.T) {
	out, err := runWasmTest(t, "ok", func(g *bGuest) {
		getchar, putchar := g.fn("getchar"), g.fn("putchar")
		g.Entry(linkage.WasmScheme().Mangle(EntryPoint), wasmtest.Code{}.
			Call(getchar).Call(putchar).Drop().
			Call(getchar).Call(putchar).Drop().
			Call(getchar).Call(g.fn("putnumb")))
	})
	require.NoError(t, err)
	assert.Equal(t, "ok-1", out)
}

func TestRunWasm_fault(t *testing.T) {
	out, err := runWasmTest(t, "", func(g *bGuest) {
		g.Data(0xfff8, []byte("abcdefgh"))
		g.Entry(linkage.WasmScheme().Mangle(EntryPoint), wasmtest.Code{}.
			I64(int64(0xfff8/word.Size)).Call(g.fn("putstr")))
	})
	var fault mem.FaultError
	require.True(t, errors.As(err, &fault), "expected a memory fault, got %v", err)
	assert.Equal(t, uint(1<<16), fault.Addr)
	assert.Equal(t, "abcdefgh", out, "output before the fault must be flushed")
}

func TestRunWasm_missingEntry(t *testing.T) {
	_, err := runWasmTest(t, "", func(g *bGuest) {
		g.Entry(EntryPoint, wasmtest.Code{}.I64(0))
	})
	assert.Equal(t, wasmhost.MissingEntryError{Symbol: linkage.WasmScheme().Mangle(EntryPoint)}, err)
}

func TestRunWasm_invalid(t *testing.T) {
	_, err := runWasmTest(t, "", func(g *bGuest) {})
	assert.Error(t, err, "a guest with no entry function does not even validate")

	var out bytes.Buffer
	rt := New(WithScheme(linkage.WasmScheme()), WithOutput(&out))
	defer rt.Close()
	assert.Error(t, rt.RunWasm(context.Background(), []byte("not wasm")))
}
