package main

import (
	"fmt"

	"github.com/jcorbin/libb/internal/word"
)

// tracer formats trace lines for a logfn hook. Each line carries a mark
// naming its kind: ">" and "<" for entering and leaving an entry point, "."
// for console I/O, "#" for the runtime itself. Lines are indented by call
// depth.
type tracer struct {
	logfn  func(mess string, args ...interface{})
	prefix string
	depth  int
}

func (tr *tracer) withLogPrefix(prefix string) func() {
	prior := tr.prefix
	tr.prefix += prefix
	return func() { tr.prefix = prior }
}

func (tr *tracer) logf(mark, mess string, args ...interface{}) {
	if tr.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	tr.logfn("%s%*s%s %s", tr.prefix, 2*tr.depth, "", mark, mess)
}

func (tr *tracer) enter(sym string, args []word.Word) {
	tr.logf(">", "%v%v", sym, args)
	tr.depth++
}

func (tr *tracer) leave(sym string, r word.Word) {
	if tr.depth > 0 {
		tr.depth--
	}
	tr.logf("<", "%v = %v", sym, r)
}
