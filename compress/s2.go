package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/rdagrid/format"
)

// S2Codec provides S2 stream compression. Like ZstdCodec, its output must be
// decompressed before R can read it.
type S2Codec struct{}

var _ StreamCodec = S2Codec{}

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type implements StreamCodec.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// NewWriter implements StreamCodec. Blocks are compressed on the calling goroutine.
func (S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}

// NewReader implements StreamCodec. It also accepts Snappy framed streams.
func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
