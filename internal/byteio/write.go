package byteio

import "io"

// WriteByte writes a single byte, using io.ByteWriter when w has it.
func WriteByte(w io.Writer, b byte) error {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw.WriteByte(b)
	}
	_, err := w.Write([]byte{b})
	return err
}
