package rdata

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/rdagrid/compress"
	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/format"
	"github.com/arloliu/rdagrid/internal/digest"
	"github.com/arloliu/rdagrid/raster"
)

// Extension is the file extension of R data files.
const Extension = "rda"

// auxSuffix names the YAML side-car holding auxiliary metadata.
const auxSuffix = ".aux.yaml"

// AuxPath returns the side-car path for the file at path.
func AuxPath(path string) string {
	return path + auxSuffix
}

// Dataset is a read-only view of a written R data file. It reports the shape
// and layout of the stored object; the samples themselves are never loaded.
type Dataset struct {
	fs          afero.Fs
	path        string
	width       int
	height      int
	bands       int
	elements    int64
	mode        format.Mode
	compression format.CompressionType
	objectName  string
	checksum    uint64
	size        int64
	meta        raster.Metadata
}

var _ driver.Dataset = (*Dataset)(nil)

// Identify reports whether a file with the given path and leading bytes is an
// R data file: either an uncompressed textual or binary object, or a
// compressed stream in a file with the .rda extension.
func Identify(path string, header []byte) bool {
	if _, ok := format.ModeFromMagic(header); ok {
		return true
	}
	if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), Extension) {
		return false
	}

	return compress.Detect(header) != format.CompressionNone
}

// Open opens and validates the R data file at path.
//
// The compression stream is detected from its magic bytes. The whole object is
// walked to check its structure and compute the stream checksum, then the
// side-car metadata is loaded when present.
func Open(fs afero.Fs, path string) (*Dataset, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ds := &Dataset{fs: fs, path: path}
	if fi, err := f.Stat(); err == nil {
		ds.size = fi.Size()
	}

	br := bufio.NewReader(f)
	head, _ := br.Peek(compress.DetectSize)
	ds.compression = compress.Detect(head)

	codec, err := compress.GetCodec(ds.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupported, err)
	}
	rc, err := codec.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %s stream: %v", errs.ErrMalformed, ds.compression, err)
	}
	defer func() { _ = rc.Close() }()

	sum := digest.NewWriter(io.Discard)
	body := bufio.NewReader(io.TeeReader(rc, sum))

	magic := make([]byte, format.MagicSize)
	if _, err := io.ReadFull(body, magic); err != nil {
		return nil, fmt.Errorf("%w: %s: short header", errs.ErrNotRData, path)
	}
	mode, ok := format.ModeFromMagic(magic)
	if !ok {
		return nil, fmt.Errorf("%w: %s: bad magic %q", errs.ErrNotRData, path, magic)
	}
	ds.mode = mode

	if err := ds.parse(newTokenReader(body, mode)); err != nil {
		return nil, err
	}

	switch _, err := body.ReadByte(); {
	case err == nil:
		return nil, fmt.Errorf("%w: trailing data after object", errs.ErrMalformed)
	case !errors.Is(err, io.EOF):
		return nil, truncated(err)
	}
	ds.checksum = sum.Sum64()

	if err := ds.loadAux(); err != nil {
		return nil, err
	}

	return ds, nil
}

// parse walks the object grammar written by objectWriter.
func (d *Dataset) parse(tr tokenReader) error {
	version, err := tr.readInt()
	if err != nil {
		return err
	}
	if version != format.FormatVersion {
		return fmt.Errorf("%w: format version %d", errs.ErrUnsupported, version)
	}
	// writer and minimal reader versions
	for range 2 {
		if _, err := tr.readInt(); err != nil {
			return err
		}
	}

	name, err := readPairTag(tr)
	if err != nil {
		return err
	}
	d.objectName = name

	if err := expectInt(tr, int32(format.TagRealVectorWithAttr), errs.ErrUnsupported, "numeric vector with attributes"); err != nil {
		return err
	}
	n, err := tr.readInt()
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: vector length %d", errs.ErrUnsupported, n)
	}
	d.elements = int64(n)
	if err := tr.skipSamples(d.elements); err != nil {
		return err
	}

	if err := d.parseShape(tr); err != nil {
		return err
	}

	if err := expectInt(tr, int32(format.TagTerminator), errs.ErrUnsupported, "end of attributes"); err != nil {
		return err
	}
	end, err := tr.readInt()
	if err != nil {
		return err
	}
	switch format.Tag(end) {
	case format.TagTerminator:
		return nil
	case format.TagPairList:
		return fmt.Errorf("%w: more than one object", errs.ErrUnsupported)
	default:
		return fmt.Errorf("%w: unexpected flags %d after object", errs.ErrMalformed, end)
	}
}

// parseShape reads the dim attribute. A rank-2 shape is a single band matrix.
func (d *Dataset) parseShape(tr tokenReader) error {
	attr, err := readPairTag(tr)
	if err != nil {
		return err
	}
	if attr != format.DimName {
		return fmt.Errorf("%w: attribute %q", errs.ErrUnsupported, attr)
	}

	if err := expectInt(tr, int32(format.TagIntVector), errs.ErrUnsupported, "integer dim vector"); err != nil {
		return err
	}
	rank, err := tr.readInt()
	if err != nil {
		return err
	}
	if rank != 2 && rank != format.ShapeRank {
		return fmt.Errorf("%w: dim of rank %d", errs.ErrUnsupported, rank)
	}

	dims := []int{1, 1, 1}
	for i := range int(rank) {
		v, err := tr.readInt()
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("%w: dim[%d] = %d", errs.ErrMalformed, i, v)
		}
		dims[i] = int(v)
	}
	d.width, d.height, d.bands = dims[0], dims[1], dims[2]

	if int64(d.width)*int64(d.height)*int64(d.bands) != d.elements {
		return fmt.Errorf("%w: dim %dx%dx%d does not match %d samples", errs.ErrMalformed, d.width, d.height, d.bands, d.elements)
	}

	return nil
}

// readPairTag reads a pairlist flag word and its tagging symbol.
func readPairTag(tr tokenReader) (string, error) {
	if err := expectInt(tr, int32(format.TagPairList), errs.ErrUnsupported, "tagged pairlist"); err != nil {
		return "", err
	}
	if err := expectInt(tr, symbolFlag, errs.ErrUnsupported, "symbol"); err != nil {
		return "", err
	}

	return tr.readString()
}

func expectInt(tr tokenReader, want int32, sentinel error, what string) error {
	v, err := tr.readInt()
	if err != nil {
		return err
	}
	if v != want {
		return fmt.Errorf("%w: expected %s (%d), got %d", sentinel, what, want, v)
	}

	return nil
}

func (d *Dataset) loadAux() error {
	data, err := afero.ReadFile(d.fs, AuxPath(d.path))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", AuxPath(d.path), err)
	}

	var meta raster.Metadata
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&meta); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", errs.ErrMalformed, AuxPath(d.path), err)
	}
	d.meta = meta

	return nil
}

// CloneInfo copies the auxiliary metadata of src, when it has any, into the
// side-car file and attaches it to d.
func (d *Dataset) CloneInfo(src raster.Source) error {
	ms, ok := src.(raster.MetadataSource)
	if !ok {
		return nil
	}
	meta := ms.Metadata()
	if meta.IsEmpty() {
		return nil
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := afero.WriteFile(d.fs, AuxPath(d.path), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", AuxPath(d.path), err)
	}
	d.meta = meta

	return nil
}

// Path implements driver.Dataset.
func (d *Dataset) Path() string { return d.path }

// Width implements driver.Dataset.
func (d *Dataset) Width() int { return d.width }

// Height implements driver.Dataset.
func (d *Dataset) Height() int { return d.height }

// BandCount implements driver.Dataset.
func (d *Dataset) BandCount() int { return d.bands }

// Metadata implements driver.Dataset.
func (d *Dataset) Metadata() raster.Metadata { return d.meta }

// ElementCount returns the length of the stored vector.
func (d *Dataset) ElementCount() int64 { return d.elements }

// Mode returns the encoding of the object.
func (d *Dataset) Mode() format.Mode { return d.mode }

// Compression returns the stream compression the file is wrapped in.
func (d *Dataset) Compression() format.CompressionType { return d.compression }

// ObjectName returns the name the object is stored under.
func (d *Dataset) ObjectName() string { return d.objectName }

// Checksum returns the xxHash64 of the uncompressed serialized stream.
func (d *Dataset) Checksum() uint64 { return d.checksum }

// Size returns the size of the file on disk.
func (d *Dataset) Size() int64 { return d.size }

// Close implements driver.Dataset. The file is not held open, so Close only
// exists to satisfy the driver contract.
func (d *Dataset) Close() error { return nil }
