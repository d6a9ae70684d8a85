// Package panicerr runs functions on a goroutine of their own, turning any
// panic or runtime.Goexit out of them into an ordinary error.
package panicerr

import "runtime/debug"

// Recover runs f in a new goroutine, returning its error, or an error
// describing how it exited abnormally.
func Recover(name string, f func() error) error {
	_, err := Call(name, func() (struct{}, error) {
		return struct{}{}, f()
	})
	return err
}

// Call is Recover for functions that also return a value; after an abnormal
// exit the returned value is the zero value.
func Call[T any](name string, f func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		normal := false
		defer func() {
			if normal {
				return
			}
			var res result
			if e := recover(); e != nil {
				res.err = panicError{name: name, e: e, stack: debug.Stack()}
			} else {
				res.err = exitError(name)
			}
			done <- res
		}()
		val, err := f()
		normal = true
		done <- result{val, err}
	}()
	res := <-done
	return res.val, res.err
}
