package linkage

import (
	"fmt"

	"github.com/jcorbin/libb/internal/word"
)

// Func implements an entry point.
type Func func(args ...word.Word) word.Word

// Entry is one callable entry point.
type Entry struct {
	Name   string
	Symbol string
	Arity  int
	Addr   word.Word
	Fn     Func
}

// Call calls the entry with exactly Arity arguments: missing ones are zero
// and extra ones are dropped.
func (ent Entry) Call(args ...word.Word) word.Word {
	if len(args) != ent.Arity {
		var buf [4]word.Word
		fixed := buf[:0]
		if ent.Arity > len(buf) {
			fixed = make([]word.Word, 0, ent.Arity)
		}
		for i := 0; i < ent.Arity; i++ {
			if i < len(args) {
				fixed = append(fixed, args[i])
			} else {
				fixed = append(fixed, 0)
			}
		}
		args = fixed
	}
	return ent.Fn(args...)
}

func (ent Entry) String() string {
	return fmt.Sprintf("%v/%v @%v", ent.Symbol, ent.Arity, ent.Addr)
}

// DefineError reports an entry point that could not be defined.
type DefineError struct {
	Name   string
	Reason string
}

func (de DefineError) Error() string {
	return fmt.Sprintf("cannot define %q: %v", de.Name, de.Reason)
}

// Table places entry points in a text segment of one word per entry, so that
// every entry address is a word address. The stubs themselves hold nothing;
// calls through an address are resolved by At.
type Table struct {
	Scheme

	base    word.Word
	entries []Entry
	byName  map[string]int
	bySym   map[string]int
}

// NewTable creates an empty table whose text segment starts at the first
// word boundary at or after the byte address textBase.
func NewTable(scheme Scheme, textBase uint) *Table {
	base, _ := word.Untranslate(word.Align(textBase))
	return &Table{
		Scheme: scheme,
		base:   base,
		byName: make(map[string]int),
		bySym:  make(map[string]int),
	}
}

// Base returns the word address of the first entry.
func (tab *Table) Base() word.Word { return tab.base }

// End returns the word address just past the last entry.
func (tab *Table) End() word.Word { return tab.base + word.Word(len(tab.entries)) }

// Define adds a new entry point at the next free word of the text segment.
func (tab *Table) Define(name string, arity int, fn Func) (Entry, error) {
	if name == "" {
		return Entry{}, DefineError{name, "empty name"}
	}
	if _, defined := tab.byName[name]; defined {
		return Entry{}, DefineError{name, "already defined"}
	}
	if arity < 0 {
		return Entry{}, DefineError{name, "negative arity"}
	}
	if fn == nil {
		return Entry{}, DefineError{name, "nil function"}
	}

	ent := Entry{
		Name:   name,
		Symbol: tab.Mangle(name),
		Arity:  arity,
		Addr:   tab.End(),
		Fn:     fn,
	}
	i := len(tab.entries)
	tab.entries = append(tab.entries, ent)
	tab.byName[ent.Name] = i
	tab.bySym[ent.Symbol] = i
	return ent, nil
}

// Lookup finds an entry by its mangled symbol.
func (tab *Table) Lookup(sym string) (Entry, bool) {
	if i, ok := tab.bySym[sym]; ok {
		return tab.entries[i], true
	}
	return Entry{}, false
}

// Resolve finds an entry by its B name.
func (tab *Table) Resolve(name string) (Entry, bool) {
	if i, ok := tab.byName[name]; ok {
		return tab.entries[i], true
	}
	return Entry{}, false
}

// At finds the entry whose stub lives at the given word address.
func (tab *Table) At(addr word.Word) (Entry, bool) {
	if i := addr - tab.base; addr >= tab.base && i < word.Word(len(tab.entries)) {
		return tab.entries[i], true
	}
	return Entry{}, false
}

// Entries returns all entries in address order.
func (tab *Table) Entries() []Entry {
	return append([]Entry(nil), tab.entries...)
}
