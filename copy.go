package omnifile

import "io"

// Copy streams the file at src onto dst, decoding through the source
// backend and encoding through the destination backend, so a plain file can
// be compressed and a compressed file expanded in one pass. It returns the
// number of logical bytes copied.
//
// Options apply to both handles; WithLevel sets the destination compression
// level when dstKind is KindGzip.
func Copy(srcKind Kind, src string, dstKind Kind, dst string, opts ...Option) (int64, error) {
	// Open source for reading
	r, err := Open(srcKind, src, "rb", opts...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()

	// Open destination for writing
	w, err := Open(dstKind, dst, "wb", opts...)
	if err != nil {
		return 0, err
	}

	// Copy data
	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return n, err
	}

	return n, w.Close()
}
