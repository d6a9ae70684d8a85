// Package byteio handles console bytes: reading them one at a time, writing
// them one at a time, and naming the control bytes among them for logs and
// command lines.
package byteio

import (
	"errors"
	"fmt"
	"strings"
)

// c0Names are the ASCII mnemonics of the control bytes 0x00 through 0x1f.
var c0Names = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "NL", "VT", "NP", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// controlWords maps "<NAME>", "<name>", and caret forms like "^D" to bytes.
var controlWords = make(map[string]byte, 3*(len(c0Names)+2))

func init() {
	for b := 0; b < 0x80; b++ {
		if name := Name(byte(b)); name != "" {
			controlWords[name] = byte(b)
			controlWords[strings.ToLower(name)] = byte(b)
		}
		if caret := CaretForm(byte(b)); caret != "" {
			controlWords[caret] = byte(b)
		}
	}
}

// CaretForm returns the ^-escaped form of a control byte, like ^D for 0x04,
// or "" for any other byte.
func CaretForm(b byte) string {
	if b < 0x20 || b == 0x7f {
		return "^" + string(rune(b^0x40))
	}
	return ""
}

// Name returns the mnemonic for a control byte, space, or delete, like
// <EOT>; it is "" for any other byte.
func Name(b byte) string {
	switch {
	case b < 0x20:
		return "<" + c0Names[b] + ">"
	case b == ' ':
		return "<SP>"
	case b == 0x7f:
		return "<DEL>"
	}
	return ""
}

// Quote formats a byte for logs: control bytes by mnemonic, others quoted.
func Quote(b byte) string {
	if name := Name(b); name != "" {
		return name
	}
	if b >= 0x80 {
		return fmt.Sprintf("<%#02x>", b)
	}
	return "'" + string(rune(b)) + "'"
}

// QuoteBytes formats a byte string with Quote.
func QuoteBytes(p []byte) string {
	var sb strings.Builder
	for i, b := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Quote(b))
	}
	return sb.String()
}

var errUnknownControl = errors.New(`control byte must be "^X" or "<NAME>"`)

// UnquoteControl parses a control mnemonic like <EOT> or a caret form like ^D.
func UnquoteControl(token string) (byte, error) {
	if b, defined := controlWords[token]; defined {
		return b, nil
	}
	return 0, errUnknownControl
}
