package omnifile

import (
	"encoding/binary"
	"io"
)

// ReadValue reads the in-memory bytes of a fixed-size value from r in
// native byte order. T must be a fixed-size type in the encoding/binary
// sense: an integer, float, complex number, or an array or struct of them.
//
// Example:
//
//	n, err := omnifile.ReadValue[uint32](h)
func ReadValue[T any](r io.Reader) (T, error) {
	var v T
	err := binary.Read(r, binary.NativeEndian, &v)
	return v, err
}

// WriteValue writes the in-memory bytes of a fixed-size value to w in
// native byte order, not a textual representation. Use WriteString or
// fmt.Fprintf for text.
func WriteValue[T any](w io.Writer, v T) error {
	return binary.Write(w, binary.NativeEndian, v)
}
