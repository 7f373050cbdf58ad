// Package multi provides fan-out writing to several handles at once.
//
// Writing through a multi.Writer lands the same bytes in every underlying
// stream, useful for keeping a compressed archive in step with a live
// plain file:
//
//	live, _ := omnifile.Open(omnifile.KindPlain, "app.log", "wb")
//	archive, _ := omnifile.Open(omnifile.KindGzip, "app.log.gz", "wb")
//	w, _ := multi.NewWriter(live, archive)
//	fmt.Fprintln(w, "request served")
//	w.Close()
package multi

import (
	"errors"
	"io"

	"github.com/grokify/omnifile"
)

// Writer fans writes out to a fixed set of handles. Like the handles it
// wraps, a Writer is not safe for concurrent use.
type Writer struct {
	handles []omnifile.Handle
	closed  bool
}

// NewWriter returns a writer over the given handles. Nil handles are
// dropped; at least one real handle is required.
func NewWriter(handles ...omnifile.Handle) (*Writer, error) {
	var valid []omnifile.Handle
	for _, h := range handles {
		if h != nil {
			valid = append(valid, h)
		}
	}
	if len(valid) == 0 {
		return nil, errors.New("multi: at least one handle is required")
	}
	return &Writer{handles: valid}, nil
}

// Write writes p to every handle, stopping at the first failure. A handle
// accepting fewer than len(p) bytes fails the write with io.ErrShortWrite.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, omnifile.ErrClosed
	}
	for _, h := range w.handles {
		n, err := h.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// WriteString writes s to every handle, stopping at the first failure.
func (w *Writer) WriteString(s string) (int, error) {
	if w.closed {
		return 0, omnifile.ErrClosed
	}
	for _, h := range w.handles {
		n, err := h.WriteString(s)
		if err != nil {
			return n, err
		}
		if n != len(s) {
			return n, io.ErrShortWrite
		}
	}
	return len(s), nil
}

// Flush flushes every handle, stopping at the first failure.
func (w *Writer) Flush() error {
	if w.closed {
		return omnifile.ErrClosed
	}
	for _, h := range w.handles {
		if err := h.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every handle, continuing past failures so no stream is left
// open. It is idempotent; a second Close returns nil.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, h := range w.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &CloseError{Errors: errs}
	}
	return nil
}

// Handles returns the number of underlying handles.
func (w *Writer) Handles() int {
	return len(w.handles)
}

// CloseError collects the close failures of the underlying handles.
type CloseError struct {
	Errors []error
}

// Error implements the error interface.
func (e *CloseError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return e.Errors[0].Error() + " (and more errors)"
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *CloseError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

// Ensure Writer implements io.WriteCloser
var _ io.WriteCloser = (*Writer)(nil)

// Ensure Writer implements io.StringWriter
var _ io.StringWriter = (*Writer)(nil)
