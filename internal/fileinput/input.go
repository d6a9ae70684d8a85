// Package fileinput reads console input a byte at a time from a queue of
// streams, tracking where each byte came from.
package fileinput

import (
	"fmt"
	"io"

	"github.com/jcorbin/libb/internal/byteio"
)

// Pos is a position within a named input stream; lines and columns count
// from 1.
type Pos struct {
	Name string
	Line int
	Col  int
}

func (pos Pos) String() string { return fmt.Sprintf("%v:%v:%v", pos.Name, pos.Line, pos.Col) }

// Line is one line of input, without its line feed.
type Line struct {
	Name string
	Num  int
	Text []byte
}

func (ln Line) String() string { return fmt.Sprintf("%v:%v %q", ln.Name, ln.Num, ln.Text) }

// Input reads through each stream in Queue in turn.
type Input struct {
	Queue []io.Reader

	// Pos is the position of the last byte read.
	Pos Pos

	// Last is the last complete line read. The final line of a stream is
	// complete even without a line feed.
	Last Line

	cur  io.ByteReader
	eol  bool
	line []byte
}

// ReadByte reads the next byte, moving on to the next stream at the end of
// each one; io.EOF is only returned once the Queue is exhausted.
func (in *Input) ReadByte() (byte, error) {
	for {
		if in.cur == nil && !in.nextStream() {
			return 0, io.EOF
		}
		b, err := in.cur.ReadByte()
		if err == io.EOF {
			in.endStream()
			continue
		} else if err != nil {
			return 0, err
		}
		in.advance(b)
		return b, nil
	}
}

func (in *Input) advance(b byte) {
	if in.eol {
		in.Pos.Line++
		in.Pos.Col = 0
		in.eol = false
	}
	in.Pos.Col++
	if b == '\n' {
		in.endLine()
		in.eol = true
	} else {
		in.line = append(in.line, b)
	}
}

func (in *Input) endLine() {
	in.Last = Line{
		Name: in.Pos.Name,
		Num:  in.Pos.Line,
		Text: append([]byte(nil), in.line...),
	}
	in.line = in.line[:0]
}

func (in *Input) endStream() {
	if len(in.line) > 0 {
		in.endLine()
	}
	in.cur = nil
}

func (in *Input) nextStream() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.cur = byteio.NewReader(r)
	in.Pos = Pos{Name: nameOf(r), Line: 1}
	in.eol = false
	return true
}

func nameOf(r io.Reader) string {
	if nom, ok := r.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", r)
}
