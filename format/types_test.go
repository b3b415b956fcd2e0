package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModeMagic(t *testing.T) {
	require.Equal(t, []byte("RDX2\nX\n"), ModeBinary.Magic())
	require.Equal(t, []byte("RDA2\nA\n"), ModeTextual.Magic())
	require.Len(t, ModeBinary.Magic(), MagicSize)
	require.Len(t, ModeTextual.Magic(), MagicSize)
}

func TestModeFromMagic(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		mode   Mode
		ok     bool
	}{
		{"binary", []byte("RDX2\nX\nrest"), ModeBinary, true},
		{"textual", []byte("RDA2\nA\n2\n"), ModeTextual, true},
		{"short", []byte("RDX2"), 0, false},
		{"version 3", []byte("RDX3\nX\n"), 0, false},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0, 0, 0, 0, 0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := ModeFromMagic(tt.header)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.mode, mode)
		})
	}
}

func TestStringers(t *testing.T) {
	require.Equal(t, "Binary", ModeBinary.String())
	require.Equal(t, "Textual", ModeTextual.String())
	require.Equal(t, "Unknown", Mode(0).String())

	require.Equal(t, "String", TagString.String())
	require.Equal(t, "PairList", TagPairList.String())
	require.Equal(t, "RealVectorWithAttr", TagRealVectorWithAttr.String())
	require.Equal(t, "IntVector", TagIntVector.String())
	require.Equal(t, "Terminator", TagTerminator.String())
	require.Equal(t, "Unknown", Tag(1).String())

	require.Equal(t, "Gzip", CompressionGzip.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}

func TestTagValues(t *testing.T) {
	require.Equal(t, Tag(4105), TagString)
	require.Equal(t, Tag(1026), TagPairList)
	require.Equal(t, Tag(526), TagRealVectorWithAttr)
	require.Equal(t, Tag(13), TagIntVector)
	require.Equal(t, Tag(254), TagTerminator)
}

func TestParseCompressionType(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"none": CompressionNone,
		"GZIP": CompressionGzip,
		"gz":   CompressionGzip,
		"Zstd": CompressionZstd,
		" s2 ": CompressionS2,
		"lz4":  CompressionLZ4,
	} {
		got, ok := ParseCompressionType(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}

	_, ok := ParseCompressionType("bzip2")
	require.False(t, ok)
}
