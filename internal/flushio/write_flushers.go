package flushio

import "io"

// WriteFlushers tees any number of WriteFlushers: every write goes to each
// of them in turn, as does every flush. Nils are skipped and nested tees are
// flattened.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			all = append(all, impl...)
		default:
			all = append(all, wf)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (int, error) {
	for _, wf := range t {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (t tee) WriteByte(b byte) error {
	for _, wf := range t {
		if err := wf.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every member, even after one fails, returning the first
// error.
func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
