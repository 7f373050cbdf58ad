package omnifile

import (
	"io"
	"log/slog"

	"github.com/valyala/bytebufferpool"
)

// SizeUnknown is the sentinel returned by FileSize when the file cannot be
// opened.
const SizeUnknown = ^uint64(0)

// probeChunkSize is the read granularity of the gzip size probe.
const probeChunkSize = 32 * 1024

// FileSize returns the logical size in bytes of the file at path: the byte
// count on disk for KindPlain, the uncompressed stream length for KindGzip.
// The file is opened read-only, measured and closed again.
//
// The plain probe stats the descriptor, O(1). The gzip probe decompresses
// the whole stream in 32 KiB chunks, O(n); when a read fails mid-stream it
// logs a warning and returns the bytes counted so far, a usable lower
// bound rather than a hard failure.
//
// When the file cannot be opened, FileSize returns SizeUnknown for either
// kind; callers must test for the sentinel. Probe diagnostics go to
// slog.Default() unless WithLogger overrides it.
func FileSize(path string, kind Kind, opts ...Option) uint64 {
	switch kind {
	case KindPlain:
		h, err := OpenPlain(path, "rb", opts...)
		if err != nil {
			return SizeUnknown
		}
		defer h.Close()
		st, err := h.Stat()
		if err != nil {
			return SizeUnknown
		}
		return uint64(st.Size())

	case KindGzip:
		h, err := OpenGzip(path, "rb", opts...)
		if err != nil {
			return SizeUnknown
		}
		defer h.Close()

		bb := bytebufferpool.Get()
		defer bytebufferpool.Put(bb)
		if cap(bb.B) < probeChunkSize {
			bb.B = make([]byte, probeChunkSize)
		}
		buf := bb.B[:probeChunkSize]

		var total uint64
		for {
			n, err := h.Read(buf)
			total += uint64(n)
			if err == io.EOF {
				return total
			}
			if err != nil {
				probeLogger(opts...).Warn("size probe stopped early",
					"path", path, "bytes", total, "error", err)
				return total
			}
		}
	}
	return SizeUnknown
}

// probeLogger resolves the probe's logger. Unlike handles, which stay
// silent by default, the probe falls back to slog.Default() so truncation
// warnings surface.
func probeLogger(opts ...Option) *slog.Logger {
	c := applyOptions(opts...)
	if c.log != nil {
		return c.log
	}
	return slog.Default()
}
