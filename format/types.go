// Package format defines the wire-level constants of the R serialized-object
// container produced by rdagrid: encoding modes, structural tags, magic headers
// and the compression types a file may be wrapped in.
package format

import "strings"

type (
	Mode            uint8
	Tag             int32
	CompressionType uint8
)

const (
	ModeBinary  Mode = 0x1 // ModeBinary writes XDR (big-endian) integers and doubles.
	ModeTextual Mode = 0x2 // ModeTextual writes one decimal token per line.
)

// Structural tags. Each tag precedes the value whose role it declares.
const (
	TagIntVector          Tag = 13   // integer vector of fixed length follows
	TagTerminator         Tag = 254  // closes one pairlist or attribute scope
	TagRealVectorWithAttr Tag = 526  // double vector carrying attributes, length follows
	TagPairList           Tag = 1026 // pairlist with a tagged entry follows
	TagString             Tag = 4105 // CHARSXP in UTF-8, byte length follows
)

// Serialization format version triple: format version, writer version
// (R 2.9.1) and minimal reader version (R 2.3.0).
const (
	FormatVersion    int32 = 2
	WriterVersion    int32 = 133377
	MinReaderVersion int32 = 131840
)

const (
	ObjectName = "gg"  // protocol key of the single top-level object
	DimName    = "dim" // name of the shape attribute
	ShapeRank  = 3     // the shape attribute is always (width, height, bandCount)
)

var (
	TextualMagic = []byte("RDA2\nA\n")
	BinaryMagic  = []byte("RDX2\nX\n")
)

// MagicSize is the length of both magic headers.
const MagicSize = 7

const (
	CompressionNone CompressionType = 0x1 // CompressionNone writes the stream as is.
	CompressionGzip CompressionType = 0x2 // CompressionGzip is what R's load() reads natively.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 stream compression.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 frame compression.
)

// Magic returns the two-line magic header for the mode.
func (m Mode) Magic() []byte {
	if m == ModeTextual {
		return TextualMagic
	}

	return BinaryMagic
}

func (m Mode) String() string {
	switch m {
	case ModeBinary:
		return "Binary"
	case ModeTextual:
		return "Textual"
	default:
		return "Unknown"
	}
}

// ModeFromMagic reports the mode announced by a magic header.
func ModeFromMagic(header []byte) (Mode, bool) {
	if len(header) < MagicSize {
		return 0, false
	}

	switch string(header[:MagicSize]) {
	case string(BinaryMagic):
		return ModeBinary, true
	case string(TextualMagic):
		return ModeTextual, true
	default:
		return 0, false
	}
}

func (t Tag) String() string {
	switch t {
	case TagIntVector:
		return "IntVector"
	case TagTerminator:
		return "Terminator"
	case TagRealVectorWithAttr:
		return "RealVectorWithAttr"
	case TagPairList:
		return "PairList"
	case TagString:
		return "String"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType resolves a case-insensitive codec name.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE":
		return CompressionNone, true
	case "GZIP", "GZ":
		return CompressionGzip, true
	case "ZSTD":
		return CompressionZstd, true
	case "S2":
		return CompressionS2, true
	case "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
