package rdata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/rdagrid/compress"
	"github.com/arloliu/rdagrid/format"
	"github.com/arloliu/rdagrid/raster"
)

// decoded is the full content of a written object, samples included.
type decoded struct {
	mode    format.Mode
	name    string
	samples []float64
	dims    []int32
}

// objectCursor reads tokens of either encoding from an uncompressed stream.
type objectCursor struct {
	t     *testing.T
	mode  format.Mode
	lines []string
	data  []byte
	pos   int
}

func (c *objectCursor) readInt() int32 {
	c.t.Helper()
	if c.mode == format.ModeTextual {
		v, err := strconv.ParseInt(c.readLine(), 10, 32)
		require.NoError(c.t, err)
		return int32(v)
	}
	require.LessOrEqual(c.t, c.pos+4, len(c.data), "truncated integer")
	v := int32(binary.BigEndian.Uint32(c.data[c.pos:]))
	c.pos += 4

	return v
}

func (c *objectCursor) readString() string {
	c.t.Helper()
	require.Equal(c.t, int32(format.TagString), c.readInt())
	n := int(c.readInt())
	if c.mode == format.ModeTextual {
		s := c.readLine()
		require.Len(c.t, s, n)
		return s
	}
	s := string(c.data[c.pos : c.pos+n])
	c.pos += n

	return s
}

func (c *objectCursor) readFloat() float64 {
	c.t.Helper()
	if c.mode == format.ModeTextual {
		switch s := c.readLine(); s {
		case "NaN":
			return math.NaN()
		case "Inf":
			return math.Inf(1)
		case "-Inf":
			return math.Inf(-1)
		default:
			v, err := strconv.ParseFloat(s, 64)
			require.NoError(c.t, err)
			return v
		}
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(c.data[c.pos:]))
	c.pos += 8

	return v
}

func (c *objectCursor) readLine() string {
	c.t.Helper()
	require.Less(c.t, c.pos, len(c.lines), "truncated text stream")
	s := c.lines[c.pos]
	c.pos++

	return s
}

func (c *objectCursor) done() bool {
	if c.mode == format.ModeTextual {
		// Split leaves one empty element after the final newline.
		return c.pos == len(c.lines)-1 && c.lines[c.pos] == ""
	}

	return c.pos == len(c.data)
}

// decodeObject fully decodes an uncompressed stream, failing t on any
// deviation from the expected object graph.
func decodeObject(t *testing.T, raw []byte) decoded {
	t.Helper()

	mode, ok := format.ModeFromMagic(raw)
	require.True(t, ok, "missing magic")

	c := &objectCursor{t: t, mode: mode}
	if mode == format.ModeTextual {
		c.lines = strings.Split(string(raw[format.MagicSize:]), "\n")
	} else {
		c.data = raw[format.MagicSize:]
	}

	require.Equal(t, format.FormatVersion, c.readInt())
	require.Equal(t, format.WriterVersion, c.readInt())
	require.Equal(t, format.MinReaderVersion, c.readInt())
	require.Equal(t, int32(format.TagPairList), c.readInt())
	require.Equal(t, int32(1), c.readInt())

	out := decoded{mode: mode, name: c.readString()}
	require.Equal(t, int32(format.TagRealVectorWithAttr), c.readInt())
	n := int(c.readInt())
	out.samples = make([]float64, n)
	for i := range out.samples {
		out.samples[i] = c.readFloat()
	}

	require.Equal(t, int32(format.TagPairList), c.readInt())
	require.Equal(t, int32(1), c.readInt())
	require.Equal(t, format.DimName, c.readString())
	require.Equal(t, int32(format.TagIntVector), c.readInt())
	rank := int(c.readInt())
	for range rank {
		out.dims = append(out.dims, c.readInt())
	}
	require.Equal(t, int32(format.TagTerminator), c.readInt())
	require.Equal(t, int32(format.TagTerminator), c.readInt())
	require.True(t, c.done(), "trailing data after object")

	return out
}

// readStream returns the decompressed content of the file at path.
func readStream(t *testing.T, fs afero.Fs, path string) []byte {
	t.Helper()

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	codec, err := compress.GetCodec(compress.Detect(raw))
	require.NoError(t, err)
	r, err := codec.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)

	return data
}

func mustGrid(t *testing.T, bands [][][]float64) *raster.Grid {
	t.Helper()

	g, err := raster.GridFromBands(bands)
	require.NoError(t, err)

	return g
}

// fillGrid builds a grid whose samples are a deterministic function of their
// position, including fractions that do not fit in 16 digits.
func fillGrid(t *testing.T, width, height, bands int) *raster.Grid {
	t.Helper()

	g, err := raster.NewGrid(width, height, bands)
	require.NoError(t, err)
	for b := range bands {
		for y := range height {
			for x := range width {
				g.Set(b, y, x, float64(b*1000000+y*1000+x)/3.0-1e5)
			}
		}
	}

	return g
}

// failingSource fails to read one row.
type failingSource struct {
	raster.Source
	band, row int
}

var errSourceBroken = errors.New("source broken")

func (s failingSource) ReadRow(band, row int, dst []float64) error {
	if band == s.band && row == s.row {
		return errSourceBroken
	}

	return s.Source.ReadRow(band, row, dst)
}

// limitFs creates files that accept at most limit bytes in total.
type limitFs struct {
	afero.Fs
	limit int
}

func (l limitFs) Create(name string) (afero.File, error) {
	f, err := l.Fs.Create(name)
	if err != nil {
		return nil, err
	}

	return &limitFile{File: f, left: l.limit}, nil
}

var errDiskFull = errors.New("disk full")

type limitFile struct {
	afero.File
	left int
}

func (f *limitFile) Write(p []byte) (int, error) {
	if len(p) > f.left {
		n, _ := f.File.Write(p[:f.left])
		f.left = 0
		return n, errDiskFull
	}
	f.left -= len(p)

	return f.File.Write(p)
}

// blindFs writes normally but cannot open files for reading.
type blindFs struct {
	afero.Fs
}

func (blindFs) Open(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

// brokenCodec cannot start a compression stream.
type brokenCodec struct{}

func (brokenCodec) Type() format.CompressionType { return format.CompressionZstd }

func (brokenCodec) NewWriter(io.Writer) (io.WriteCloser, error) {
	return nil, errors.New("encoder init failed")
}

func (brokenCodec) NewReader(io.Reader) (io.ReadCloser, error) {
	return nil, errors.New("decoder init failed")
}

var _ compress.StreamCodec = brokenCodec{}
