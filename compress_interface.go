package omnifile

import "io"

// The compressed backend reaches its codec through these two interfaces so
// the provider can be swapped at build time:
//
//   - default: github.com/klauspost/compress/gzip
//   - standard_gzip tag: compress/gzip from the standard library
//   - zstd_compression tag: github.com/klauspost/compress/zstd, replacing
//     the stream format wholesale while the Handle API stays the same
//
// The tags are mutually exclusive; each provider file also carries the magic
// bytes DetectKind and Open sniff for.

// compressWriter is the writer side of the provider.
type compressWriter interface {
	io.WriteCloser
	Flush() error
}

// compressReader is the reader side of the provider. Reset rebinds the
// decompressor to a new source, which is how backward seeks rewind the
// stream.
type compressReader interface {
	io.ReadCloser
	Reset(r io.Reader) error
}
