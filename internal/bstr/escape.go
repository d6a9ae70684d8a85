package bstr

import "fmt"

// escapes maps the character following a '*' in B source to the byte it denotes.
var escapes = [...]struct {
	c rune
	b byte
}{
	{'0', 0},
	{'e', 4},
	{'(', '{'},
	{')', '}'},
	{'t', '\t'},
	{'*', '*'},
	{'\'', '\''},
	{'"', '"'},
	{'n', '\n'},
}

// EscapeError reports an unknown escape sequence.
type EscapeError struct {
	Seq    string
	Offset int
}

func (ee EscapeError) Error() string {
	return fmt.Sprintf("unknown escape sequence %q at offset %v", ee.Seq, ee.Offset)
}

// Expand resolves B escape sequences like *n and *e in the body of a
// character or string literal, returning its bytes.
func Expand(lit string) ([]byte, error) {
	out := make([]byte, 0, len(lit))
	for i := 0; i < len(lit); i++ {
		if lit[i] != '*' {
			out = append(out, lit[i])
			continue
		}
		if i+1 >= len(lit) {
			return nil, EscapeError{lit[i:], i}
		}
		b, ok := unescape(rune(lit[i+1]))
		if !ok {
			return nil, EscapeError{lit[i : i+2], i}
		}
		out = append(out, b)
		i++
	}
	return out, nil
}

func unescape(c rune) (byte, bool) {
	for _, esc := range escapes {
		if esc.c == c {
			return esc.b, true
		}
	}
	return 0, false
}
