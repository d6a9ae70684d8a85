package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/libb/internal/bstr"
	"github.com/jcorbin/libb/internal/byteio"
	"github.com/jcorbin/libb/internal/word"
)

// literals turns B literals given on the command line into words. String
// literals are laid out one after another, each starting on its own word,
// from the first word past the entry points; their words are their addresses.
type literals struct {
	rt   *Runtime
	next word.Word
}

func newLiterals(rt *Runtime) *literals {
	return &literals{rt: rt, next: rt.DataBase()}
}

// parse accepts:
//   - integers; a leading 0 means octal, as in B, and 0x means hex
//   - character constants like 'a' or 'hi*n', packed into one word
//   - strings like "hello*n", which yield their address
//   - control mnemonics like <NL> or caret forms like ^D
func (lits *literals) parse(arg string) (word.Word, error) {
	switch {
	case len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"':
		text, err := bstr.Expand(arg[1 : len(arg)-1])
		if err != nil {
			return 0, err
		}
		s := lits.next
		if err := lits.rt.StoreString(s, text); err != nil {
			return 0, err
		}
		lits.next += bstr.Words(len(text))
		return s, nil

	case len(arg) >= 2 && arg[0] == '\'' && arg[len(arg)-1] == '\'':
		chars, err := bstr.Expand(arg[1 : len(arg)-1])
		if err != nil {
			return 0, err
		}
		if len(chars) > word.Size {
			return 0, fmt.Errorf("character constant %v does not fit in a word", arg)
		}
		return word.Pack(chars), nil

	case strings.HasPrefix(arg, "<") || strings.HasPrefix(arg, "^"):
		b, err := byteio.UnquoteControl(arg)
		return word.Word(b), err
	}

	n, err := strconv.ParseInt(arg, 0, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid literal %q", arg)
	}
	return word.Word(n), nil
}

func (lits *literals) parseAll(args []string) ([]word.Word, error) {
	words := make([]word.Word, 0, len(args))
	for _, arg := range args {
		w, err := lits.parse(arg)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}
