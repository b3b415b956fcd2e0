package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/rdagrid/format"
	"github.com/arloliu/rdagrid/rdata"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(3, 2, color.Gray{Y: 200})

	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	return path
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	lvl := "error"
	e := &env{logLevel: &lvl}
	require.NoError(t, e.setup(nil))
	t.Cleanup(e.close)

	return e
}

func TestOpenImage(t *testing.T) {
	src, err := openImage(writePNG(t, t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, 4, src.Width())
	require.Equal(t, 1, src.BandCount())

	v, ok := src.Metadata().Item("", "SOURCE_FORMAT")
	require.True(t, ok)
	require.Equal(t, "PNG", v)
}

func TestConvertAndInfo(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnv(t)

	src := writePNG(t, dir)
	dst := filepath.Join(dir, "out.rda")
	ascii, quiet := true, true
	compress := "auto"

	cmd := &convertCommand{env: e, src: &src, dst: &dst, ascii: &ascii, compress: &compress, quiet: &quiet}
	require.NoError(t, cmd.run(nil))

	ds, err := rdata.Open(afero.NewOsFs(), dst)
	require.NoError(t, err)
	require.Equal(t, 4, ds.Width())
	require.Equal(t, 3, ds.Height())
	require.Equal(t, format.CompressionNone, ds.Compression())

	v, ok := ds.Metadata().Item("", "SOURCE_FORMAT")
	require.True(t, ok)
	require.Equal(t, "PNG", v)

	header, err := readHeader(dst)
	require.NoError(t, err)
	require.True(t, rdata.Identify(dst, header))
	mode, ok := format.ModeFromMagic(header)
	require.True(t, ok)
	require.Equal(t, format.ModeTextual, mode)

	info := &infoCommand{env: e, files: &[]string{dst}}
	require.NoError(t, info.run(nil))
}

func TestConvert_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnv(t)

	src := writePNG(t, dir)
	dst := filepath.Join(dir, "out.tif")
	ascii, quiet := false, true
	compress := "none"

	cmd := &convertCommand{env: e, src: &src, dst: &dst, ascii: &ascii, compress: &compress, quiet: &quiet}
	require.Error(t, cmd.run(nil))
}

func TestInfo_NotRData(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnv(t)

	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	info := &infoCommand{env: e, files: &[]string{path}}
	require.Error(t, info.run(nil))
}

func TestLogMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := rdata.NewMetrics(reg)
	src, err := openImage(writePNG(t, t.TempDir()))
	require.NoError(t, err)
	_, err = rdata.CreateCopy(context.Background(), "m.rda", src,
		rdata.WithFs(afero.NewMemMapFs()), rdata.WithMetrics(m))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowDebug())
	require.NoError(t, logMetrics(logger, reg))

	out := buf.String()
	require.Contains(t, out, "name=rdagrid_rdata_copies_total result=success value=1")
	require.Contains(t, out, "name=rdagrid_rdata_written_samples_total value=12")
	require.Contains(t, out, "name=rdagrid_rdata_copy_duration_seconds count=1")

	buf.Reset()
	quiet := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowInfo())
	require.NoError(t, logMetrics(quiet, reg))
	require.Empty(t, buf.String())
}
