package omnifile

import (
	"log/slog"

	"github.com/grokify/mogo/log/slogutil"
)

// DefaultBufferSize is the default size of the descriptor-side I/O buffer
// owned by a handle.
const DefaultBufferSize = 64 * 1024 // 64KB

// Option configures a handle at construction time.
type Option func(*config)

// config holds construction-time settings shared by both backends.
type config struct {
	// bufferSize is the descriptor-side buffer size in bytes.
	// <= 0 means DefaultBufferSize.
	bufferSize int

	// level is the gzip compression level used when the mode string carries
	// no level digit. Ignored by the plain backend.
	level int

	// log receives debug lines on open/close and probe diagnostics.
	log *slog.Logger
}

// WithBufferSize sets the descriptor-side buffer size for the handle.
// Sizes <= 0 select DefaultBufferSize.
func WithBufferSize(size int) Option {
	return func(c *config) {
		c.bufferSize = size
	}
}

// WithLevel sets the default gzip compression level (NoCompression through
// BestCompression). A level digit in the mode string ("wb9") takes
// precedence. The plain backend ignores it.
func WithLevel(level int) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithLogger sets the logger used for open/close debug lines and probe
// diagnostics. Handles default to a null logger when none is set.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

// applyOptions builds a config from options.
func applyOptions(opts ...Option) config {
	c := config{level: DefaultCompression}
	for _, opt := range opts {
		opt(&c)
	}
	if c.bufferSize <= 0 {
		c.bufferSize = DefaultBufferSize
	}
	return c
}

// logger returns the configured logger or a null logger if none is set.
func (c config) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return slogutil.Null()
}
