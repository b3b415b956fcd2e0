package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	progressbar "github.com/schollz/progressbar/v3"

	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/raster"
	"github.com/arloliu/rdagrid/rdata"
)

// convertCommand writes an image as an R data file.
type convertCommand struct {
	env      *env
	src      *string
	dst      *string
	ascii    *bool
	compress *string
	quiet    *bool
}

func addConvertCommand(app *kingpin.Application, e *env) {
	cmd := &convertCommand{env: e}
	c := app.Command("convert", "Convert a PNG, JPEG or GIF image to an R data file.").Action(cmd.run)
	cmd.ascii = c.Flag("ascii", "Write the textual encoding instead of XDR binary.").Bool()
	cmd.compress = c.Flag("compress", "Stream compression; auto gzips binary output only.").
		Default("auto").Enum("auto", "gzip", "zstd", "s2", "lz4", "none")
	cmd.quiet = c.Flag("quiet", "Do not show a progress bar.").Short('q').Bool()
	cmd.src = c.Arg("src", "Source image.").Required().ExistingFile()
	cmd.dst = c.Arg("dst", "Destination file.").Required().String()
}

func (cmd *convertCommand) run(*kingpin.ParseContext) error {
	src, err := openImage(*cmd.src)
	if err != nil {
		return err
	}

	d, err := cmd.env.drivers.ByExtension(*cmd.dst)
	if err != nil {
		return err
	}
	copier, ok := d.(driver.Copier)
	if !ok {
		return fmt.Errorf("%w: %s cannot create copies", errs.ErrNotSupported, d.Name())
	}

	opts := map[string]string{}
	if *cmd.ascii {
		opts[rdata.OptionASCII] = "YES"
	}
	if *cmd.compress != "auto" {
		opts[rdata.OptionCompress] = strings.ToUpper(*cmd.compress)
	}

	var progress driver.ProgressFunc
	var bar *progressbar.ProgressBar
	if !*cmd.quiet {
		bar = progressbar.NewOptions(src.Height()*src.BandCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Rows written"),
			progressbar.OptionShowCount(),
		)
		progress = func(float64, string) bool {
			bar.Add(1) //nolint:errcheck
			return true
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ds, err := copier.CreateCopy(ctx, *cmd.dst, src, opts, progress)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	defer func() { _ = ds.Close() }()

	fi, err := os.Stat(ds.Path())
	if err != nil {
		return err
	}
	level.Info(cmd.env.logger).Log( //nolint:errcheck
		"msg", "wrote R data file",
		"path", ds.Path(),
		"width", ds.Width(),
		"height", ds.Height(),
		"bands", ds.BandCount(),
		"size", humanize.Bytes(uint64(fi.Size())), //nolint:gosec
	)

	return nil
}

// imageRaster adds the decoded format to the metadata of an image source.
type imageRaster struct {
	*raster.ImageSource
	meta raster.Metadata
}

func (r imageRaster) Metadata() raster.Metadata {
	return r.meta
}

func openImage(path string) (imageRaster, error) {
	f, err := os.Open(path)
	if err != nil {
		return imageRaster{}, err
	}
	defer func() { _ = f.Close() }()

	img, kind, err := image.Decode(f)
	if err != nil {
		return imageRaster{}, fmt.Errorf("decode %s: %w", path, err)
	}

	src := raster.NewImageSource(img)
	meta := src.Metadata()
	meta.SetItem("", "SOURCE_FORMAT", strings.ToUpper(kind))

	return imageRaster{ImageSource: src, meta: meta}, nil
}
