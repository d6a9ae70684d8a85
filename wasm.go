package main

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/sys"

	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/wasmhost"
	"github.com/jcorbin/libb/internal/word"
)

// RunWasm runs a B program compiled to WebAssembly. The guest imports
// primitives from the "env" module under their mangled symbols, exports its
// entry point under its mangled symbol, and words are i64. While the guest
// runs, word addresses translate into its linear memory.
func (rt *Runtime) RunWasm(ctx context.Context, code []byte) error {
	defer rt.withLogPrefix("wasm ")()

	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	defer r.Close(ctx)

	prior := rt.mem
	defer func() { rt.mem = prior }()

	host := wasmhost.Host{
		Table:  rt.link,
		Bind:   func(m mem.Memory) { rt.mem = m },
		IsExit: isExitPanic,
	}
	entry := rt.link.Mangle(EntryPoint)
	res, err := rt.invoke(ctx, entry, func() word.Word {
		res, err := host.Run(ctx, r, code, entry)
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
			rt.halt(nil)
		}
		rt.haltif(err)
		return res
	})
	if err == nil {
		rt.logf("#", "%v returned %v", EntryPoint, res)
	}
	return err
}

// isExitPanic recognizes the halt raised by the exit primitive.
func isExitPanic(recovered interface{}) (uint32, bool) {
	if he, ok := recovered.(haltError); ok && he.err == nil {
		return 0, true
	}
	return 0, false
}
