package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/libb/internal/bstr"
	"github.com/jcorbin/libb/internal/byteio"
	"github.com/jcorbin/libb/internal/mem"
	"github.com/jcorbin/libb/internal/word"
)

type fmtBuf interface {
	Len() int
	Write(p []byte) (n int, err error)
	WriteByte(c byte) error
	WriteString(s string) (n int, err error)
}

// lineBuffer accumulates one line of a dump at a time.
type lineBuffer struct{ bytes.Buffer }

func (buf *lineBuffer) WriteTo(w io.Writer) (n int64, err error) {
	buf.WriteByte('\n')
	return buf.Buffer.WriteTo(w)
}

// rtDumper writes a human readable dump of the runtime: its entry points,
// then every non-zero word of allocated memory, any that look like the start
// of a string shown as one.
type rtDumper struct {
	rt  *Runtime
	out io.Writer

	addrWidth int
}

func (dump rtDumper) dump() {
	fmt.Fprintf(dump.out, "# Runtime Dump\n")
	fmt.Fprintf(dump.out, "  text: @%v\n", dump.rt.link.Base())
	fmt.Fprintf(dump.out, "  data: @%v\n", dump.rt.DataBase())

	if dump.addrWidth == 0 {
		dump.addrWidth = addrWidth(dump.rt.DataBase())
		dump.rt.core.Extents(func(first, last uint) bool {
			for _, at := range [2]uint{first, last} {
				dump.addrWidth = max(dump.addrWidth, addrWidth(word.Word(at/word.Size)))
			}
			return true
		})
	}
	dump.dumpText()
	dump.dumpMem()
}

func addrWidth(addr word.Word) int { return len(strconv.Itoa(int(addr))) + 1 }

func (dump *rtDumper) dumpText() {
	var buf lineBuffer
	fmt.Fprintf(&buf, "# Text @%v", dump.rt.link.Base())
	buf.WriteTo(dump.out)
	for _, ent := range dump.rt.Entries() {
		fmt.Fprintf(&buf, "  @% *v : %v/%v", dump.addrWidth, ent.Addr, ent.Symbol, ent.Arity)
		buf.WriteTo(dump.out)
	}
}

// dumpMem walks word by word through each allocated extent of core memory.
// Word indices stay unsigned so that an extent ending at the top of memory
// does not overflow.
func (dump *rtDumper) dumpMem() {
	var buf lineBuffer
	fmt.Fprintf(&buf, "# Memory")
	buf.WriteTo(dump.out)

	m := &dump.rt.core
	m.Extents(func(first, last uint) bool {
		for at, end := first/word.Size, last/word.Size; ; {
			addr := word.Word(at)
			fmt.Fprintf(&buf, "  @% *v ", dump.addrWidth, addr)
			n := buf.Len()

			words, err := dump.formatMem(&buf, m, addr, last)
			if err != nil {
				buf.WriteString(err.Error())
				buf.WriteTo(dump.out)
				return false
			}
			if buf.Len() == n {
				buf.Reset()
			} else {
				buf.WriteTo(dump.out)
			}
			if end-at < words {
				return true
			}
			at += words
		}
	})
}

// formatMem formats the word at addr, or the string starting there, returning
// how many words it covered. Strings must end by last.
func (dump *rtDumper) formatMem(buf fmtBuf, m mem.Memory, addr word.Word, last uint) (uint, error) {
	val, err := mem.LoadWord(m, wordOrder, word.Translate(addr))
	if err != nil || val == 0 {
		return 1, err
	}

	if text, ok := stringAt(m, word.Translate(addr), last); ok {
		buf.WriteString(strconv.Quote(string(text)))
		return uint(bstr.Words(len(text))), nil
	}

	buf.WriteString(strconv.Itoa(int(val)))
	if ent, ok := dump.rt.link.At(val); ok {
		buf.WriteString(" -> ")
		buf.WriteString(ent.Symbol)
	} else if chars := word.AppendUnpacked(nil, val); len(chars) > 0 && printable(chars) {
		buf.WriteString(" '")
		buf.Write(chars)
		buf.WriteByte('\'')
	}
	return 1, nil
}

// stringAt returns the text starting at byte address at if it is a non-empty
// run of printable bytes terminated by the sentinel at or before last.
func stringAt(m mem.Memory, at, last uint) ([]byte, bool) {
	var text []byte
	for ; ; at++ {
		b, err := m.Load(at)
		switch {
		case err != nil:
			return nil, false
		case b == word.Sentinel:
			return text, len(text) > 0
		case !printable([]byte{b}):
			return nil, false
		case at == last:
			return nil, false
		}
		text = append(text, b)
	}
}

func printable(p []byte) bool {
	for _, b := range p {
		switch {
		case b == ' ', b == '\t', b == '\n':
		case b >= 0x80, byteio.Name(b) != "":
			return false
		}
	}
	return true
}
