// Package digest tracks what an encoder has handed to its sink: the byte count
// and the xxHash64 of the uncompressed serialized stream.
package digest

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Writer forwards writes to an underlying writer while counting and hashing
// every byte the underlying writer accepted.
type Writer struct {
	w      io.Writer
	digest *xxhash.Digest
	n      int64
}

var _ io.Writer = (*Writer)(nil)

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, digest: xxhash.New()}
}

// Write implements io.Writer. Short writes are hashed up to the accepted length.
func (d *Writer) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if n > 0 {
		_, _ = d.digest.Write(p[:n])
		d.n += int64(n)
	}

	return n, err
}

// Count returns the number of bytes written so far.
func (d *Writer) Count() int64 {
	return d.n
}

// Sum64 returns the xxHash64 of the bytes written so far.
func (d *Writer) Sum64() uint64 {
	return d.digest.Sum64()
}
