package compress

import "github.com/arloliu/rdagrid/format"

// ZstdCodec provides Zstandard stream compression.
//
// Files compressed this way are not readable by R itself; the codec exists for
// pipelines that archive or ship the serialized grids and decompress them
// before handing them to R.
//
// The pure-Go implementation is used by default. Building with the gozstd tag
// (and cgo) switches to the libzstd binding.
type ZstdCodec struct{}

var _ StreamCodec = ZstdCodec{}

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type implements StreamCodec.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
