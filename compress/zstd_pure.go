//go:build !gozstd || !cgo

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewWriter implements StreamCodec. The encoder runs single-threaded.
func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
}

// NewReader implements StreamCodec.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return decoder.IOReadCloser(), nil
}
