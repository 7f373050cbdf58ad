package omnifile

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common errors returned by omnifile handles and utilities.
var (
	// ErrClosed is returned when operating on a handle that is not open.
	ErrClosed = errors.New("omnifile: handle not open")

	// ErrNotReadable is returned when reading from a handle opened write-only.
	ErrNotReadable = errors.New("omnifile: handle not open for reading")

	// ErrNotWritable is returned when writing to a handle opened read-only.
	ErrNotWritable = errors.New("omnifile: handle not open for writing")

	// ErrNotSeekable is returned when a seek is outside what the backend
	// supports (any gzip io.SeekEnd, backward seeks on a gzip writer).
	ErrNotSeekable = errors.New("omnifile: stream not seekable")

	// ErrInvalidMode is returned when a mode string cannot be parsed, or
	// combines flags the backend rejects (e.g. "+" on the gzip backend).
	ErrInvalidMode = errors.New("omnifile: invalid mode string")

	// ErrBufferPinned is returned by ResizeBuffer when buffered unread data
	// cannot be preserved across the rebind (non-seekable source).
	ErrBufferPinned = errors.New("omnifile: buffered data cannot be preserved")

	// ErrNotCompressed is returned when opening a compressed handle for
	// reading on data that does not start with the provider's magic bytes.
	ErrNotCompressed = errors.New("omnifile: data is not a compressed stream")

	// ErrUnknownKind is returned when a Kind is neither KindPlain nor
	// KindGzip. The backend choice is a closed two-way set.
	ErrUnknownKind = errors.New("omnifile: unknown backend kind")
)

// OpenError is returned when the backend open primitive fails. It carries the
// path and mode of the failed attempt; the handle is left closed.
type OpenError struct {
	Path string
	Mode string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("omnifile: open %s (mode %q): %v", e.Path, e.Mode, e.Err)
}

// Unwrap returns the underlying cause, so errors.Is(err, fs.ErrNotExist)
// and friends keep working through an OpenError.
func (e *OpenError) Unwrap() error { return e.Err }

// IsNotExist returns true if the error indicates the path did not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsClosed returns true if the error indicates the handle was not open.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
