package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/rdagrid/format"
)

// GzipCodec produces the gzip stream R's load() and readRDS() decompress
// transparently. It is the default when compression is enabled.
type GzipCodec struct {
	level int
}

var _ StreamCodec = GzipCodec{}

// NewGzipCodec creates a gzip codec at the default compression level.
func NewGzipCodec() GzipCodec {
	return GzipCodec{level: gzip.DefaultCompression}
}

// NewGzipCodecLevel creates a gzip codec at the given level (gzip.HuffmanOnly..gzip.BestCompression).
func NewGzipCodecLevel(level int) GzipCodec {
	return GzipCodec{level: level}
}

// Type implements StreamCodec.
func (GzipCodec) Type() format.CompressionType {
	return format.CompressionGzip
}

// NewWriter implements StreamCodec.
func (c GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, c.level)
}

// NewReader implements StreamCodec.
func (GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
