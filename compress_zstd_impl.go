//go:build zstd_compression

package omnifile

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// compressMagic is the zstd frame magic bytes (RFC 8878, section 3.1.1).
const compressMagic = "\x28\xb5\x2f\xfd"

// zstdEmptyFrame is a complete frame holding zero content bytes: four magic
// bytes followed by a single-segment header with content size 0 and one
// empty raw last block (RFC 8878, section 3.1.1).
var zstdEmptyFrame = []byte{0x28, 0xb5, 0x2f, 0xfd, 0x20, 0x00, 0x01, 0x00, 0x00}

func newCompressWriterLevel(w io.Writer, level int) (compressWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstdEncoderLevel(level)))
	if err != nil {
		return nil, err
	}
	return &zstdWriter{Encoder: enc, w: w}, nil
}

func newCompressReader(r io.Reader) (compressReader, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zstdReader{d}, nil
}

// zstdEncoderLevel maps the gzip-scale level onto the encoder's speed
// presets. zstd has no stored mode, so NoCompression lands on the fastest
// preset.
func zstdEncoderLevel(level int) zstd.EncoderLevel {
	switch {
	case level < 0:
		return zstd.SpeedDefault
	case level <= 3:
		return zstd.SpeedFastest
	case level <= 6:
		return zstd.SpeedDefault
	case level <= 8:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// zstdWriter tracks whether any content reached the encoder. The streaming
// encoder emits no frame at all for a stream that was never written, so
// Close falls back to writing zstdEmptyFrame; a zero-byte file would fail
// the header check at the next read-open.
type zstdWriter struct {
	*zstd.Encoder
	w     io.Writer
	wrote bool
}

func (zw *zstdWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		zw.wrote = true
	}
	return zw.Encoder.Write(p)
}

func (zw *zstdWriter) Close() error {
	if !zw.wrote {
		zw.wrote = true
		if _, err := zw.w.Write(zstdEmptyFrame); err != nil {
			_ = zw.Encoder.Close()
			return err
		}
	}
	return zw.Encoder.Close()
}

// zstdReader adapts the decoder's bare Close to the provider interface.
type zstdReader struct {
	*zstd.Decoder
}

func (r zstdReader) Close() error {
	r.Decoder.Close()
	return nil
}
