// Package omnifile provides a uniform stream-handle abstraction over plain
// and gzip-compressed files.
//
// It exposes one Handle interface with two concrete backends: PlainFile, a
// buffered uncompressed file, and GzipFile, a gzip stream. Callers write
// read/write/seek/probe code once and pick the backend at construction,
// without branching on which backend is active.
//
// Basic usage:
//
//	h, _ := omnifile.Open(omnifile.KindGzip, "data.gz", "wb9")
//	h.Write([]byte("hello"))
//	h.Close()
//
//	n := omnifile.FileSize("data.gz", omnifile.KindGzip) // 5, the logical length
package omnifile

import "io"

// Handle is the uniform interface over the two file backends.
//
// A Handle owns at most one open file at a time, together with the I/O
// buffer attached to it. Positions, sizes and offsets are always logical:
// for GzipFile they refer to the uncompressed stream, never to the bytes
// on disk.
//
// A Handle is not safe for concurrent use. Every operation is a direct
// blocking call into the backend with no internal locking; callers needing
// concurrent access must open separate handles or synchronize externally.
type Handle interface {
	io.Reader
	io.ByteReader
	io.Writer
	io.StringWriter
	io.Seeker
	io.Closer

	// Open opens path with a C-style mode string ("r", "wb", "a", "wb9").
	// If the handle is already open, the current file is closed first, so
	// a handle never holds two files. On failure the handle stays closed
	// and the error is an *OpenError carrying the path and mode.
	Open(path, mode string) error

	// BulkRead reads into p bypassing the handle's read buffer, for
	// callers that manage their own buffering. Any bytes already buffered
	// are drained first so no data is skipped. On the gzip backend there
	// is no unbuffered layer to bypass and BulkRead behaves like Read.
	BulkRead(p []byte) (int, error)

	// Flush pushes buffered writes down to the file. On the gzip backend
	// this also flushes the compressor so the bytes written so far form a
	// decodable stream. No-op on read-only handles.
	Flush() error

	// Tell returns the current logical byte offset from the start of the
	// stream.
	Tell() (int64, error)

	// EOF reports whether a read has hit the end of the stream. It turns
	// true only once a read observes the end, not when the position merely
	// equals the length, and a successful Seek clears it.
	EOF() bool

	// Seekable reports whether Seek is supported for caller planning
	// purposes: true for an open plain file that is not a FIFO, always
	// false for gzip streams.
	Seekable() bool

	// ResizeBuffer resizes the I/O buffer attached to the file. On a plain
	// handle the new buffer takes effect immediately; buffered writes are
	// flushed and buffered unread bytes are preserved by realigning the
	// descriptor, which fails with ErrBufferPinned on a non-seekable file.
	// On a gzip handle the size is recorded and applied at the next Open.
	// Sizes <= 0 select DefaultBufferSize.
	ResizeBuffer(size int) error

	// IsOpen reports whether the handle currently owns an open file.
	IsOpen() bool

	// Path returns the path the handle was opened with, or "" when closed.
	Path() string

	// Kind returns the backend kind, fixed per concrete type.
	Kind() Kind
}
