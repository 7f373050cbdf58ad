package omnifile

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/grokify/mogo/log/slogutil"
)

// Last-operation marker used to keep the read and write buffers in step
// with the descriptor.
const (
	opNone = iota
	opRead
	opWrite
)

// PlainFile implements Handle for uncompressed files. Reads and writes go
// through descriptor-side buffers sized by WithBufferSize or ResizeBuffer;
// BulkRead bypasses them.
//
// The zero value is a closed handle ready for Open. PlainFile is not safe
// for concurrent use.
type PlainFile struct {
	f    *os.File
	br   *bufio.Reader
	bw   *bufio.Writer
	path string
	off  int64 // logical position; the descriptor may be ahead (read-ahead) or behind (pending writes)
	eof  bool
	fifo bool

	canRead    bool
	canWrite   bool
	appendMode bool
	lastOp     int

	bufferSize int
	log        *slog.Logger
}

// NewPlain returns a closed plain handle.
func NewPlain(opts ...Option) *PlainFile {
	c := applyOptions(opts...)
	return &PlainFile{
		bufferSize: c.bufferSize,
		log:        c.logger(),
	}
}

// OpenPlain opens path as an uncompressed file with a C-style mode string.
func OpenPlain(path, mode string, opts ...Option) (*PlainFile, error) {
	p := NewPlain(opts...)
	if err := p.Open(path, mode); err != nil {
		return nil, err
	}
	return p, nil
}

// Open opens path with the given mode. An already open handle is closed
// first. On failure the handle stays closed and the error is an *OpenError.
func (p *PlainFile) Open(path, mode string) error {
	if p.f != nil {
		_ = p.Close()
	}

	m, err := parseMode(mode)
	if err != nil {
		return &OpenError{Path: path, Mode: mode, Err: err}
	}

	f, err := os.OpenFile(path, m.flag, 0644)
	if err != nil {
		return &OpenError{Path: path, Mode: mode, Err: err}
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return &OpenError{Path: path, Mode: mode, Err: err}
	}

	p.f = f
	p.path = path
	p.canRead = m.read
	p.canWrite = m.write
	p.appendMode = m.append
	p.fifo = st.Mode()&os.ModeNamedPipe != 0
	p.off = 0
	p.eof = false
	p.lastOp = opNone
	p.bindBuffers()
	p.logger().Debug("opened file", "path", path, "mode", mode)
	return nil
}

// Read reads up to len(b) bytes through the read buffer. A short read is a
// normal outcome, not an error; io.EOF is returned at end of file.
func (p *PlainFile) Read(b []byte) (int, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	if !p.canRead {
		return 0, ErrNotReadable
	}
	if err := p.startRead(); err != nil {
		return 0, err
	}
	n, err := p.br.Read(b)
	p.off += int64(n)
	if err == io.EOF {
		p.eof = true
	}
	return n, err
}

// ReadByte reads a single byte.
func (p *PlainFile) ReadByte() (byte, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	if !p.canRead {
		return 0, ErrNotReadable
	}
	if err := p.startRead(); err != nil {
		return 0, err
	}
	b, err := p.br.ReadByte()
	if err == nil {
		p.off++
	} else if err == io.EOF {
		p.eof = true
	}
	return b, err
}

// BulkRead reads into b directly from the descriptor. Bytes already sitting
// in the read buffer are drained first so no data is skipped.
func (p *PlainFile) BulkRead(b []byte) (int, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	if !p.canRead {
		return 0, ErrNotReadable
	}
	if err := p.startRead(); err != nil {
		return 0, err
	}

	var n int
	if p.br.Buffered() > 0 {
		// Serves only buffered bytes, no refill.
		n, _ = p.br.Read(b)
		p.off += int64(n)
		if n == len(b) {
			return n, nil
		}
	}
	m, err := p.f.Read(b[n:])
	p.off += int64(m)
	n += m
	if err == io.EOF {
		p.eof = true
		if n > 0 {
			err = nil
		}
	}
	return n, err
}

// Write writes the raw bytes of b through the write buffer. Partial writes
// are not retried at this layer.
func (p *PlainFile) Write(b []byte) (int, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	if !p.canWrite {
		return 0, ErrNotWritable
	}
	if err := p.startWrite(); err != nil {
		return 0, err
	}
	n, err := p.bw.Write(b)
	p.off += int64(n)
	return n, err
}

// WriteString writes the bytes of s.
func (p *PlainFile) WriteString(s string) (int, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	if !p.canWrite {
		return 0, ErrNotWritable
	}
	if err := p.startWrite(); err != nil {
		return 0, err
	}
	n, err := p.bw.WriteString(s)
	p.off += int64(n)
	return n, err
}

// Seek repositions the stream and returns the new offset from the start.
// Pending writes are flushed and buffered read-ahead is discarded first.
// A successful seek clears the EOF flag.
func (p *PlainFile) Seek(offset int64, whence int) (int64, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	if p.bw != nil {
		if err := p.bw.Flush(); err != nil {
			return 0, err
		}
	}

	var pos int64
	var err error
	switch whence {
	case io.SeekStart, io.SeekEnd:
		pos, err = p.f.Seek(offset, whence)
	case io.SeekCurrent:
		// The descriptor position includes read-ahead; seek relative to the
		// logical position instead.
		pos, err = p.f.Seek(p.off+offset, io.SeekStart)
	default:
		return 0, fmt.Errorf("omnifile: invalid whence %d", whence)
	}
	if err != nil {
		return 0, err
	}

	if p.br != nil {
		p.br.Reset(p.f)
	}
	p.off = pos
	p.eof = false
	p.lastOp = opNone
	return pos, nil
}

// Tell returns the current logical byte offset from the start of the file.
func (p *PlainFile) Tell() (int64, error) {
	if p.f == nil {
		return 0, ErrClosed
	}
	return p.off, nil
}

// EOF reports whether a read has observed the end of the file.
func (p *PlainFile) EOF() bool {
	return p.eof
}

// Seekable reports whether the open file supports Seek; false for FIFOs
// and when closed.
func (p *PlainFile) Seekable() bool {
	return p.f != nil && !p.fifo
}

// Flush pushes buffered writes down to the descriptor.
func (p *PlainFile) Flush() error {
	if p.f == nil {
		return ErrClosed
	}
	if p.bw == nil {
		return nil
	}
	return p.bw.Flush()
}

// ResizeBuffer rebuilds the descriptor-side buffers at the given size.
// Pending writes are flushed and unread buffered bytes are preserved by
// realigning the descriptor; on a non-seekable file with unread buffered
// data it fails with ErrBufferPinned. Sizes <= 0 select DefaultBufferSize.
// On a closed handle the size takes effect at the next Open.
func (p *PlainFile) ResizeBuffer(size int) error {
	if size <= 0 {
		size = DefaultBufferSize
	}
	p.bufferSize = size
	if p.f == nil {
		return nil
	}

	if p.bw != nil {
		if err := p.bw.Flush(); err != nil {
			return err
		}
	}
	if p.br != nil && p.br.Buffered() > 0 {
		if p.fifo {
			return ErrBufferPinned
		}
		if _, err := p.f.Seek(p.off, io.SeekStart); err != nil {
			return err
		}
	}
	p.bindBuffers()
	p.lastOp = opNone
	return nil
}

// Stat returns the FileInfo of the open file.
func (p *PlainFile) Stat() (fs.FileInfo, error) {
	if p.f == nil {
		return nil, ErrClosed
	}
	return p.f.Stat()
}

// Close flushes pending writes and releases the file. It is idempotent; a
// second Close returns nil. The handle state is cleared even when the
// underlying close reports an error.
func (p *PlainFile) Close() error {
	if p.f == nil {
		return nil
	}

	var firstErr error
	if p.bw != nil {
		firstErr = p.bw.Flush()
	}
	if err := p.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	p.logger().Debug("closed file", "path", p.path)

	p.f = nil
	p.br = nil
	p.bw = nil
	p.path = ""
	p.off = 0
	p.eof = false
	p.fifo = false
	p.lastOp = opNone
	return firstErr
}

// IsOpen reports whether the handle owns an open file.
func (p *PlainFile) IsOpen() bool {
	return p.f != nil
}

// Path returns the path the handle was opened with, or "" when closed.
func (p *PlainFile) Path() string {
	return p.path
}

// Kind returns KindPlain.
func (p *PlainFile) Kind() Kind {
	return KindPlain
}

// startRead flushes pending writes and realigns the read buffer before a
// read run.
func (p *PlainFile) startRead() error {
	if p.lastOp == opWrite {
		if err := p.bw.Flush(); err != nil {
			return err
		}
		p.br.Reset(p.f)
	}
	p.lastOp = opRead
	return nil
}

// startWrite realigns the descriptor before a write run: unread read-ahead
// is pushed back, and append handles move to the end of the file.
func (p *PlainFile) startWrite() error {
	if p.lastOp == opWrite {
		return nil
	}
	if p.lastOp == opRead {
		if p.br.Buffered() > 0 && !p.appendMode {
			if _, err := p.f.Seek(p.off, io.SeekStart); err != nil {
				return err
			}
		}
		p.br.Reset(p.f)
	}
	if p.appendMode && !p.fifo {
		pos, err := p.f.Seek(0, io.SeekEnd)
		if err != nil {
			return err
		}
		p.off = pos
	}
	p.lastOp = opWrite
	return nil
}

// bindBuffers builds the descriptor-side buffers for the directions the
// mode allows.
func (p *PlainFile) bindBuffers() {
	size := p.bufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	if p.canRead {
		p.br = bufio.NewReaderSize(p.f, size)
	} else {
		p.br = nil
	}
	if p.canWrite {
		p.bw = bufio.NewWriterSize(p.f, size)
	} else {
		p.bw = nil
	}
}

func (p *PlainFile) logger() *slog.Logger {
	if p.log != nil {
		return p.log
	}
	return slogutil.Null()
}

// Ensure PlainFile implements Handle
var _ Handle = (*PlainFile)(nil)
