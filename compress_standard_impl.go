//go:build standard_gzip

package omnifile

import (
	"compress/gzip"
	"io"
)

// compressMagic is the gzip magic bytes (RFC 1952, section 2.3.1).
const compressMagic = "\x1f\x8b"

func newCompressWriterLevel(w io.Writer, level int) (compressWriter, error) {
	return gzip.NewWriterLevel(w, level)
}

func newCompressReader(r io.Reader) (compressReader, error) {
	return gzip.NewReader(r)
}
