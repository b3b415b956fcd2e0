package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/rdagrid/format"
)

// StreamCodec wraps a sequential byte sink or source in a compression stream.
//
// Writers returned by NewWriter never close the underlying writer: Close only
// flushes the compressed stream trailer. The caller keeps ownership of the
// destination and closes it separately.
type StreamCodec interface {
	// Type reports the compression algorithm.
	Type() format.CompressionType

	// NewWriter returns a writer that compresses everything written to it into w.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader returns a reader that decompresses r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// CreateCodec is a factory function that creates a StreamCodec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zstd, S2 or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - StreamCodec: codec for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (StreamCodec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]StreamCodec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in StreamCodec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (StreamCodec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// DetectSize is the number of leading bytes Detect needs to recognize every
// supported stream.
const DetectSize = 10

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// Detect identifies the compression stream that starts with header.
// Anything unrecognized, including a plain R object header, is CompressionNone.
func Detect(header []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return format.CompressionGzip
	case bytes.HasPrefix(header, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(header, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(header, s2Magic), bytes.HasPrefix(header, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}
