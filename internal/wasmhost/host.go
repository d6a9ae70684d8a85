// Package wasmhost runs WebAssembly guests against a linkage table: every
// entry becomes a host function the guest may import, taking and returning
// i64 words, and the guest's linear memory serves as B memory.
package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/jcorbin/libb/internal/linkage"
	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/word"
)

// DefaultModule is the import module that C-family toolchains put undefined
// symbols in.
const DefaultModule = "env"

// Host exports a linkage table to guests.
type Host struct {
	// Module names the host module; DefaultModule if empty.
	Module string

	Table *linkage.Table

	// Bind, if set, is called with the calling guest's memory before every
	// entry call.
	Bind func(m mem.Memory)

	// IsExit, if set, classifies panics out of entry calls; a panic that it
	// accepts closes the guest with the returned exit code, just like WASI
	// proc_exit does.
	IsExit func(recovered interface{}) (code uint32, ok bool)
}

// MissingEntryError reports a guest that does not export the entry point.
type MissingEntryError struct{ Symbol string }

func (me MissingEntryError) Error() string {
	return fmt.Sprintf("guest does not export entry point %q", me.Symbol)
}

func (h Host) moduleName() string {
	if h.Module == "" {
		return DefaultModule
	}
	return h.Module
}

// Instantiate defines the host module in r.
func (h Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	name := h.moduleName()
	b := r.NewHostModuleBuilder(name)
	ents := h.Table.Entries()
	for _, ent := range ents {
		params := make([]api.ValueType, ent.Arity)
		for i := range params {
			params[i] = api.ValueTypeI64
		}
		b.NewFunctionBuilder().
			WithGoModuleFunction(h.entryFunc(ent), params, []api.ValueType{api.ValueTypeI64}).
			WithName(ent.Symbol).
			Export(ent.Symbol)
	}
	mod, err := b.Instantiate(ctx)
	if err != nil {
		Logger().Error("host module instantiation failed",
			zap.String("module", name),
			zap.Error(err))
		return nil, err
	}
	Logger().Debug("host module instantiated",
		zap.String("module", name),
		zap.Int("exports", len(ents)))
	return mod, nil
}

// Run instantiates the host module and the guest, then calls the guest's
// exported entry point once with no arguments.
func (h Host) Run(ctx context.Context, r wazero.Runtime, code []byte, entry string) (word.Word, error) {
	if _, err := h.Instantiate(ctx, r); err != nil {
		return 0, err
	}

	compiled, err := r.CompileModule(ctx, code)
	if err != nil {
		return 0, err
	}
	guest, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := guest.Close(ctx); cerr != nil {
			Logger().Debug("guest close", zap.Error(cerr))
		}
	}()

	fn := guest.ExportedFunction(entry)
	if fn == nil {
		return 0, MissingEntryError{entry}
	}
	Logger().Debug("calling guest entry", zap.String("entry", entry))
	res, err := fn.Call(ctx)
	if err != nil {
		return 0, err
	}
	if len(res) == 0 {
		return 0, nil
	}
	return word.Word(int64(res[0])), nil
}

func (h Host) entryFunc(ent linkage.Entry) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		if h.IsExit != nil {
			defer h.recoverExit(ctx, mod)
		}
		if h.Bind != nil {
			h.Bind(Memory{mod.Memory()})
		}
		args := make([]word.Word, ent.Arity)
		for i := range args {
			args[i] = word.Word(int64(stack[i]))
		}
		stack[0] = uint64(int64(ent.Fn(args...)))
	}
}

func (h Host) recoverExit(ctx context.Context, mod api.Module) {
	if e := recover(); e != nil {
		code, ok := h.IsExit(e)
		if !ok {
			panic(e)
		}
		Logger().Debug("guest exit", zap.Uint32("code", code))
		_ = mod.CloseWithExitCode(ctx, code)
		panic(sys.NewExitError(code))
	}
}
