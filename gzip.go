package omnifile

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grokify/mogo/log/slogutil"
)

// Compression levels accepted by WithLevel and by mode-string digits.
// Both gzip providers share these values.
const (
	// NoCompression stores data uncompressed.
	NoCompression = 0
	// BestSpeed provides the fastest compression.
	BestSpeed = 1
	// BestCompression provides the best compression ratio.
	BestCompression = 9
	// DefaultCompression balances speed and ratio.
	DefaultCompression = -1
	// HuffmanOnly uses Huffman encoding without Lempel-Ziv matching.
	HuffmanOnly = -2
)

// zeroFill is the gap filler for forward seeks on a gzip writer.
var zeroFill [8 * 1024]byte

// GzipFile implements Handle for gzip streams. A stream is opened for
// reading or for writing, never both; offsets and sizes always refer to
// the uncompressed data.
//
// The zero value is a closed handle ready for Open. GzipFile is not safe
// for concurrent use.
type GzipFile struct {
	f       *os.File
	br      *bufio.Reader
	bw      *bufio.Writer
	zr      compressReader
	zw      compressWriter
	path    string
	off     int64 // logical (uncompressed) position
	eof     bool
	reading bool

	bufferSize int
	level      int
	levelSet   bool
	log        *slog.Logger
}

// NewGzip returns a closed gzip handle.
func NewGzip(opts ...Option) *GzipFile {
	c := applyOptions(opts...)
	return &GzipFile{
		bufferSize: c.bufferSize,
		level:      c.level,
		levelSet:   true,
		log:        c.logger(),
	}
}

// OpenGzip opens path as a gzip stream with a C-style mode string. Mode
// digits select the compression level ("wb9"); "a" starts a new gzip
// member at the end of the file.
func OpenGzip(path, mode string, opts ...Option) (*GzipFile, error) {
	g := NewGzip(opts...)
	if err := g.Open(path, mode); err != nil {
		return nil, err
	}
	return g, nil
}

// Open opens path with the given mode. An already open handle is closed
// first. Update modes ("r+", "w+", "a+") are rejected, and a read open
// fails with ErrNotCompressed when the file does not start with the
// provider's magic bytes. On failure the handle stays closed and the error
// is an *OpenError.
func (g *GzipFile) Open(path, mode string) error {
	if g.f != nil {
		_ = g.Close()
	}

	m, err := parseMode(mode)
	if err != nil {
		return &OpenError{Path: path, Mode: mode, Err: err}
	}
	if m.update {
		err := fmt.Errorf("%w: %q (gzip streams are read or write, not both)", ErrInvalidMode, mode)
		return &OpenError{Path: path, Mode: mode, Err: err}
	}

	f, err := os.OpenFile(path, m.flag, 0644)
	if err != nil {
		return &OpenError{Path: path, Mode: mode, Err: err}
	}

	size := g.bufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	if m.read {
		br := bufio.NewReaderSize(f, size)
		if magic, err := br.Peek(len(compressMagic)); err != nil || string(magic) != compressMagic {
			_ = f.Close()
			if err == nil || err == io.EOF {
				err = ErrNotCompressed
			}
			return &OpenError{Path: path, Mode: mode, Err: err}
		}
		zr, err := newCompressReader(br)
		if err != nil {
			_ = f.Close()
			return &OpenError{Path: path, Mode: mode, Err: err}
		}
		g.br = br
		g.zr = zr
		g.reading = true
	} else {
		bw := bufio.NewWriterSize(f, size)
		zw, err := newCompressWriterLevel(bw, m.gzipLevel(g.defaultLevel()))
		if err != nil {
			_ = f.Close()
			return &OpenError{Path: path, Mode: mode, Err: err}
		}
		g.bw = bw
		g.zw = zw
		g.reading = false
	}

	g.f = f
	g.path = path
	g.off = 0
	g.eof = false
	g.logger().Debug("opened file", "path", path, "mode", mode)
	return nil
}

// Read reads up to len(b) bytes of uncompressed data. A short read is a
// normal outcome, not an error; io.EOF is returned at end of stream.
func (g *GzipFile) Read(b []byte) (int, error) {
	if g.f == nil {
		return 0, ErrClosed
	}
	if !g.reading {
		return 0, ErrNotReadable
	}
	n, err := g.zr.Read(b)
	g.off += int64(n)
	if err == io.EOF {
		g.eof = true
	}
	return n, err
}

// ReadByte reads a single uncompressed byte.
func (g *GzipFile) ReadByte() (byte, error) {
	var b [1]byte
	n, err := g.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

// BulkRead behaves exactly like Read; the gzip backend has no unbuffered
// descriptor layer to bypass.
func (g *GzipFile) BulkRead(b []byte) (int, error) {
	return g.Read(b)
}

// Write compresses and writes the raw bytes of b.
func (g *GzipFile) Write(b []byte) (int, error) {
	if g.f == nil {
		return 0, ErrClosed
	}
	if g.reading {
		return 0, ErrNotWritable
	}
	n, err := g.zw.Write(b)
	g.off += int64(n)
	return n, err
}

// WriteString compresses and writes the bytes of s.
func (g *GzipFile) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

// Seek repositions the uncompressed stream. Reading handles emulate seeks
// by decompressing: forward seeks discard data, backward seeks rewind the
// file and decompress again from the start; seeking past the end returns
// io.EOF with the offset clamped to the stream length. Writing handles
// support forward seeks only, filling the gap with zero bytes. io.SeekEnd
// is not supported in either direction and fails with ErrNotSeekable.
func (g *GzipFile) Seek(offset int64, whence int) (int64, error) {
	if g.f == nil {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = g.off + offset
	case io.SeekEnd:
		return g.off, fmt.Errorf("%w: io.SeekEnd on a gzip stream", ErrNotSeekable)
	default:
		return g.off, fmt.Errorf("omnifile: invalid whence %d", whence)
	}
	if abs < 0 {
		return g.off, fmt.Errorf("omnifile: negative seek position %d", abs)
	}

	if !g.reading {
		if abs < g.off {
			return g.off, fmt.Errorf("%w: backward seek on a gzip writer", ErrNotSeekable)
		}
		for g.off < abs {
			chunk := abs - g.off
			if chunk > int64(len(zeroFill)) {
				chunk = int64(len(zeroFill))
			}
			n, err := g.zw.Write(zeroFill[:chunk])
			g.off += int64(n)
			if err != nil {
				return g.off, err
			}
		}
		return g.off, nil
	}

	if abs < g.off {
		if _, err := g.f.Seek(0, io.SeekStart); err != nil {
			return g.off, err
		}
		g.br.Reset(g.f)
		if err := g.zr.Reset(g.br); err != nil {
			return g.off, err
		}
		g.off = 0
	}
	if abs > g.off {
		n, err := io.CopyN(io.Discard, g.zr, abs-g.off)
		g.off += n
		if err != nil {
			if err == io.EOF {
				g.eof = true
			}
			return g.off, err
		}
	}
	g.eof = false
	return g.off, nil
}

// Tell returns the current logical byte offset in the uncompressed stream.
func (g *GzipFile) Tell() (int64, error) {
	if g.f == nil {
		return 0, ErrClosed
	}
	return g.off, nil
}

// EOF reports whether a read has observed the end of the stream.
func (g *GzipFile) EOF() bool {
	return g.eof
}

// Seekable returns false; gzip streams are never seekable for caller
// planning purposes, even though Seek emulates limited repositioning.
func (g *GzipFile) Seekable() bool {
	return false
}

// Flush compresses pending data with a sync flush and pushes it down to
// the descriptor, so the bytes written so far form a decodable stream.
// No-op on reading handles.
func (g *GzipFile) Flush() error {
	if g.f == nil {
		return ErrClosed
	}
	if g.reading {
		return nil
	}
	if err := g.zw.Flush(); err != nil {
		return err
	}
	return g.bw.Flush()
}

// ResizeBuffer records a new descriptor-side buffer size. An open stream
// keeps its current buffer (it cannot be rebound under an active
// compressor or decompressor); the size takes effect at the next Open.
// Sizes <= 0 select DefaultBufferSize.
func (g *GzipFile) ResizeBuffer(size int) error {
	if size <= 0 {
		size = DefaultBufferSize
	}
	g.bufferSize = size
	return nil
}

// Close finishes the gzip stream, flushes pending data and releases the
// file. It is idempotent; a second Close returns nil. The handle state is
// cleared even when an underlying close reports an error.
func (g *GzipFile) Close() error {
	if g.f == nil {
		return nil
	}

	var firstErr error
	if g.zw != nil {
		// Closing the compressor writes the stream trailer into bw.
		firstErr = g.zw.Close()
		if err := g.bw.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if g.zr != nil {
		if err := g.zr.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := g.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	g.logger().Debug("closed file", "path", g.path)

	g.f = nil
	g.br = nil
	g.bw = nil
	g.zr = nil
	g.zw = nil
	g.path = ""
	g.off = 0
	g.eof = false
	g.reading = false
	return firstErr
}

// IsOpen reports whether the handle owns an open stream.
func (g *GzipFile) IsOpen() bool {
	return g.f != nil
}

// Path returns the path the handle was opened with, or "" when closed.
func (g *GzipFile) Path() string {
	return g.path
}

// Kind returns KindGzip.
func (g *GzipFile) Kind() Kind {
	return KindGzip
}

// defaultLevel resolves the construction-time compression level; the zero
// value compresses at DefaultCompression.
func (g *GzipFile) defaultLevel() int {
	if g.levelSet {
		return g.level
	}
	return DefaultCompression
}

func (g *GzipFile) logger() *slog.Logger {
	if g.log != nil {
		return g.log
	}
	return slogutil.Null()
}

// Ensure GzipFile implements Handle
var _ Handle = (*GzipFile)(nil)
