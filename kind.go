package omnifile

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Kind selects which of the two backends a handle uses. It is fixed per
// concrete type and never changes during a handle's lifetime.
type Kind int

const (
	// KindPlain is the uncompressed buffered file backend.
	KindPlain Kind = iota
	// KindGzip is the gzip-compressed stream backend.
	KindGzip
)

// String returns the kind name ("plain" or "gzip").
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindGzip:
		return "gzip"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a kind name. It accepts "plain" and "file" for KindPlain,
// "gzip" and "gz" for KindGzip, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "file":
		return KindPlain, nil
	case "gzip", "gz":
		return KindGzip, nil
	}
	return KindPlain, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New returns a closed handle of the given kind; open it later with
// Handle.Open. The choice is a closed two-way switch, there is no way to
// register further kinds.
//
// Example:
//
//	h, err := omnifile.New(omnifile.KindGzip, omnifile.WithLevel(omnifile.BestSpeed))
func New(kind Kind, opts ...Option) (Handle, error) {
	switch kind {
	case KindPlain:
		return NewPlain(opts...), nil
	case KindGzip:
		return NewGzip(opts...), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
}

// Open opens path with the given kind and C-style mode string.
//
// Example:
//
//	h, err := omnifile.Open(omnifile.KindGzip, "data.gz", "rb")
func Open(kind Kind, path, mode string, opts ...Option) (Handle, error) {
	h, err := New(kind, opts...)
	if err != nil {
		return nil, err
	}
	if err := h.Open(path, mode); err != nil {
		return nil, err
	}
	return h, nil
}

// DetectKind sniffs the first bytes of path and returns KindGzip when they
// carry the compressed provider's magic, KindPlain otherwise. Files shorter
// than the magic are plain.
func DetectKind(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindPlain, err
	}
	defer f.Close()

	magic := make([]byte, len(compressMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return KindPlain, nil
		}
		return KindPlain, err
	}
	if string(magic) == compressMagic {
		return KindGzip, nil
	}
	return KindPlain, nil
}
