package omnifile

import (
	"fmt"
	"os"
)

// modeInfo is the parsed form of a C-style mode string ("r", "wb", "a+",
// "wb9", ...). Both backends open through it; the gzip backend additionally
// consumes the level digit and rejects update ("+") modes.
type modeInfo struct {
	flag   int // os.OpenFile flag bits
	read   bool
	write  bool
	append bool
	update bool // "+"

	level    int // compression level digit, meaningful when hasLevel
	hasLevel bool

	huffmanOnly bool // "h" strategy letter
}

// parseMode parses a C-style mode string.
//
// The first character selects the base mode: "r" (read), "w" (write,
// create, truncate) or "a" (append, create). Later characters may add:
//
//	+        read and write
//	b, t     accepted and ignored (no text-mode translation)
//	x        exclusive create (with "w" only)
//	e        accepted and ignored (descriptors are close-on-exec already)
//	0-9      gzip compression level (plain backend ignores it)
//	f, R, F  gzip strategy hints, accepted and ignored
//	h        gzip Huffman-only strategy
//
// Anything else fails with ErrInvalidMode.
func parseMode(mode string) (modeInfo, error) {
	if mode == "" {
		return modeInfo{}, fmt.Errorf("%w: empty", ErrInvalidMode)
	}

	var m modeInfo
	base := mode[0]
	switch base {
	case 'r':
		m.read = true
	case 'w':
		m.write = true
	case 'a':
		m.write = true
		m.append = true
	default:
		return modeInfo{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	exclusive := false
	for _, c := range mode[1:] {
		switch {
		case c == '+':
			m.update = true
			m.read = true
			m.write = true
		case c == 'b' || c == 't' || c == 'e':
			// No text/binary distinction, and descriptors are opened
			// close-on-exec by the runtime.
		case c == 'x':
			exclusive = true
		case c >= '0' && c <= '9':
			m.level = int(c - '0')
			m.hasLevel = true
		case c == 'h':
			m.huffmanOnly = true
		case c == 'f' || c == 'R' || c == 'F':
			// Deflate strategy hints the providers do not expose.
		default:
			return modeInfo{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
		}
	}

	if exclusive && base != 'w' {
		return modeInfo{}, fmt.Errorf("%w: %q (\"x\" requires \"w\")", ErrInvalidMode, mode)
	}

	if m.update {
		m.flag = os.O_RDWR
	} else if m.write {
		m.flag = os.O_WRONLY
	} else {
		m.flag = os.O_RDONLY
	}
	switch base {
	case 'w':
		m.flag |= os.O_CREATE
		if exclusive {
			m.flag |= os.O_EXCL
		} else {
			m.flag |= os.O_TRUNC
		}
	case 'a':
		m.flag |= os.O_CREATE | os.O_APPEND
	}
	return m, nil
}

// gzipLevel resolves the effective compression level for the gzip backend:
// a mode digit wins, then "h", then the configured default.
func (m modeInfo) gzipLevel(fallback int) int {
	if m.hasLevel {
		return m.level
	}
	if m.huffmanOnly {
		return HuffmanOnly
	}
	return fallback
}
