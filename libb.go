package main

import (
	"io"
	"strconv"

	"github.com/jcorbin/libb/internal/bstr"
	"github.com/jcorbin/libb/internal/byteio"
	"github.com/jcorbin/libb/internal/word"
)

//// Primitives

// Every primitive takes zero or more words and returns exactly one word, even
// those that are only called for their effect. Arguments are never checked:
// a bad address or an unterminated string is the caller's problem, and the
// only failures that surface here are memory faults and console errors, both
// of which halt the runtime.

// Name     Function
// putchar  write the characters packed into c, returning c
func (rt *Runtime) putchar(c word.Word) word.Word {
	buf := word.AppendUnpacked(rt.scratch[:0], c)
	rt.write(buf)
	rt.logf(".", "putchar %v", byteio.QuoteBytes(buf))
	return c
}

// Name     Function
// putnumb  write n in signed decimal, returning n
func (rt *Runtime) putnumb(n word.Word) word.Word {
	buf := strconv.AppendInt(rt.scratch[:0], int64(n), 10)
	rt.write(buf)
	rt.logf(".", "putnumb %v", byteio.QuoteBytes(buf))
	return n
}

// Name     Function
// getchar  read one character, returning EOF (-1) once input runs out
func (rt *Runtime) getchar() word.Word {
	// anything written so far may be a prompt
	rt.haltif(rt.out.Flush())

	b, err := rt.input.ReadByte()
	if err == io.EOF {
		rt.logf(".", "getchar EOF")
		return word.EOF
	}
	rt.haltif(err)
	rt.logf(".", "getchar %v @%v", byteio.Quote(b), rt.input.Pos)
	if b == '\n' {
		rt.logf(".", "read %v", rt.input.Last)
	}
	return word.Word(b)
}

// Name     Function
// putstr   write the string at s up to its sentinel, returning 0
func (rt *Runtime) putstr(s word.Word) word.Word {
	var text []byte
	tracing := rt.logfn != nil
	err := bstr.Scan(rt.mem, s, func(b byte) error {
		if tracing {
			text = append(text, b)
		}
		return rt.out.WriteByte(b)
	})
	if tracing {
		rt.logf(".", "putstr %v", byteio.QuoteBytes(text))
	}
	rt.haltif(err)
	rt.flushInteractive()
	return 0
}

// Name     Function
// exit     stop the program with success; never returns
func (rt *Runtime) exit() word.Word {
	rt.halt(nil)
	return 0
}

// Name     Function
// char     return the n-th character of the string s, counting from 0
func (rt *Runtime) char(s, n word.Word) word.Word {
	c, err := bstr.CharAt(rt.mem, s, n)
	rt.haltif(err)
	return c
}

// Name     Function
// lchar    replace the n-th character of the string s with the low byte of
//          c, returning c
func (rt *Runtime) lchar(s, n, c word.Word) word.Word {
	r, err := bstr.SetCharAt(rt.mem, s, n, c)
	rt.haltif(err)
	return r
}

func (rt *Runtime) write(p []byte) {
	if len(p) == 0 {
		return
	}
	_, err := rt.out.Write(p)
	rt.haltif(err)
	rt.flushInteractive()
}

func (rt *Runtime) flushInteractive() {
	if rt.interactive {
		rt.haltif(rt.out.Flush())
	}
}

//// Linkage

type builtin struct {
	name  string
	arity int
	fn    func(rt *Runtime, args []word.Word) word.Word
}

var builtins [7]builtin

func init() {
	builtins = [...]builtin{
		{"putchar", 1, func(rt *Runtime, args []word.Word) word.Word { return rt.putchar(args[0]) }},
		{"putnumb", 1, func(rt *Runtime, args []word.Word) word.Word { return rt.putnumb(args[0]) }},
		{"getchar", 0, func(rt *Runtime, args []word.Word) word.Word { return rt.getchar() }},
		{"putstr", 1, func(rt *Runtime, args []word.Word) word.Word { return rt.putstr(args[0]) }},
		{"exit", 0, func(rt *Runtime, args []word.Word) word.Word { return rt.exit() }},
		{"char", 2, func(rt *Runtime, args []word.Word) word.Word { return rt.char(args[0], args[1]) }},
		{"lchar", 3, func(rt *Runtime, args []word.Word) word.Word { return rt.lchar(args[0], args[1], args[2]) }},
	}
}

func (rt *Runtime) linkBuiltins() {
	for _, bi := range builtins {
		bi := bi
		if _, err := rt.Link(bi.name, bi.arity, func(args ...word.Word) word.Word {
			return bi.fn(rt, args)
		}); err != nil {
			panic(err)
		}
	}
}
