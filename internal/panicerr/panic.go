package panicerr

import (
	"errors"
	"fmt"
)

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

// Format adds the panic's stack under %+v.
func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "panic: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v panic: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack: %s", pe.stack)
	}
}

// Unwrap returns the panic value if it was an error, so that errors.Is and
// errors.As see through recovered panics.
func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsPanic returns true if err came from a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack trace of a recovered panic, or "" if err did
// not come from one.
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
