//go:build gozstd && cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

type gozstdWriter struct {
	*gozstd.Writer
}

// Close flushes the frame and releases the native encoder.
func (w gozstdWriter) Close() error {
	err := w.Writer.Close()
	w.Release()

	return err
}

type gozstdReader struct {
	*gozstd.Reader
}

func (r gozstdReader) Close() error {
	r.Release()
	return nil
}

// NewWriter implements StreamCodec.
func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gozstdWriter{gozstd.NewWriterLevel(w, gozstd.DefaultCompressionLevel)}, nil
}

// NewReader implements StreamCodec.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gozstdReader{gozstd.NewReader(r)}, nil
}
