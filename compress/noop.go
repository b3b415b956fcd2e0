package compress

import (
	"io"

	"github.com/arloliu/rdagrid/format"
)

// NoOpCodec passes bytes through unchanged.
type NoOpCodec struct{}

var _ StreamCodec = NoOpCodec{}

// NewNoOpCodec creates a new pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type implements StreamCodec.
func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// NewWriter returns w behind a Close that does nothing.
func (NoOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// NewReader returns r behind a Close that does nothing.
func (NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
