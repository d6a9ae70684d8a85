// Package linkage names and places the entry points that translated B code
// calls into.
//
// B identifiers are not host identifiers: a B program may well define a
// function called char. Every B symbol is therefore mangled with a prefix that
// no host identifier can carry, and every entry point gets a word address so
// that B code can hold functions in ordinary words.
package linkage

import (
	"runtime"
	"strings"
)

// DefaultPrefix is prepended to every B symbol; the '.' keeps the result out
// of the C identifier namespace.
const DefaultPrefix = "b."

// Scheme describes how B names become linker-visible symbols.
type Scheme struct {
	// LabelPrefix is whatever the platform's linker puts in front of every
	// user symbol, like the leading underscore on darwin or 32-bit windows.
	LabelPrefix string

	// Prefix marks the symbol as belonging to B.
	Prefix string
}

// HostScheme returns the scheme for native objects on the current platform.
func HostScheme() Scheme { return SchemeFor(runtime.GOOS, runtime.GOARCH) }

// WasmScheme returns the scheme used for WebAssembly imports and exports,
// which have no platform label prefix.
func WasmScheme() Scheme { return Scheme{Prefix: DefaultPrefix} }

// SchemeFor returns the scheme for native objects on the given GOOS and
// GOARCH. Mach-O prefixes every C symbol with an underscore, as does the
// 32-bit x86 windows ABI; other windows targets do not.
func SchemeFor(goos, goarch string) Scheme {
	switch {
	case goos == "darwin", goos == "ios":
		return Scheme{LabelPrefix: "_", Prefix: DefaultPrefix}
	case goos == "windows" && goarch == "386":
		return Scheme{LabelPrefix: "_", Prefix: DefaultPrefix}
	default:
		return Scheme{Prefix: DefaultPrefix}
	}
}

// Mangle returns the symbol for a B name.
func (sc Scheme) Mangle(name string) string {
	return sc.LabelPrefix + sc.Prefix + name
}

// Demangle returns the B name for a symbol, or false if the symbol does not
// follow this scheme.
func (sc Scheme) Demangle(sym string) (string, bool) {
	if !strings.HasPrefix(sym, sc.LabelPrefix) {
		return "", false
	}
	sym = sym[len(sc.LabelPrefix):]
	if !strings.HasPrefix(sym, sc.Prefix) {
		return "", false
	}
	name := sym[len(sc.Prefix):]
	return name, name != ""
}
