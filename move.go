package omnifile

import "os"

// Move copies the file at src onto dst and removes src after a successful
// copy, like gzip(1) replacing the original with the compressed file. It
// returns the number of logical bytes copied. When the copy fails the
// source is left in place.
func Move(srcKind Kind, src string, dstKind Kind, dst string, opts ...Option) (int64, error) {
	// Copy first
	n, err := Copy(srcKind, src, dstKind, dst, opts...)
	if err != nil {
		return n, err
	}

	// Delete source after successful copy
	return n, os.Remove(src)
}
