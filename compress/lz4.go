package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/rdagrid/format"
)

// LZ4Codec provides LZ4 frame compression.
type LZ4Codec struct{}

var _ StreamCodec = LZ4Codec{}

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Type implements StreamCodec.
func (LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// NewWriter implements StreamCodec.
func (LZ4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.ConcurrencyOption(1)); err != nil {
		return nil, err
	}

	return zw, nil
}

// NewReader implements StreamCodec.
func (LZ4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
