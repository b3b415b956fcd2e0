package rdata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/arloliu/rdagrid/compress"
	"github.com/arloliu/rdagrid/encoding"
	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/internal/digest"
	"github.com/arloliu/rdagrid/internal/options"
	"github.com/arloliu/rdagrid/raster"
)

// writeStats describes the serialized stream handed to the compressor.
type writeStats struct {
	bytes    int64
	samples  int64
	checksum uint64
}

// CreateCopy serializes src to path as a single R object and returns the
// written file reopened read-only.
//
// The shape is validated before the file is created, so an oversized or empty
// source leaves no file behind. Once writing has started, a read failure, a
// write failure or a cancellation leaves the truncated file on disk without
// its closing shape attribute. The output is closed on every path.
//
// Every returned error wraps one of the errs sentinels and is also logged at
// error level.
func CreateCopy(ctx context.Context, path string, src raster.Source, opts ...CopyOption) (*Dataset, error) {
	start := time.Now()

	cfg := newCopyConfig()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		level.Error(cfg.logger).Log("msg", "invalid creation options", "path", path, "err", err) //nolint:errcheck
		return nil, err
	}

	ds, stats, err := createCopy(ctx, cfg, path, src)
	cfg.metrics.observeCopy(err, stats, time.Since(start))
	if err != nil {
		level.Error(cfg.logger).Log("msg", "create copy failed", "path", path, "err", err) //nolint:errcheck
		return nil, err
	}

	level.Debug(cfg.logger).Log( //nolint:errcheck
		"msg", "create copy done",
		"path", path,
		"mode", cfg.Mode(),
		"compression", ds.Compression(),
		"width", ds.Width(),
		"height", ds.Height(),
		"bands", ds.BandCount(),
		"bytes", stats.bytes,
		"duration", time.Since(start),
	)

	return ds, nil
}

func createCopy(ctx context.Context, cfg *CopyConfig, path string, src raster.Source) (*Dataset, writeStats, error) {
	n, err := checkSize(src.Width(), src.Height(), src.BandCount())
	if err != nil {
		return nil, writeStats{}, err
	}

	codec, err := compress.GetCodec(cfg.Compression())
	if err != nil {
		return nil, writeStats{}, fmt.Errorf("%w: %v", errs.ErrInvalidOption, err)
	}

	f, err := cfg.fs.Create(path)
	if err != nil {
		return nil, writeStats{}, fmt.Errorf("%w: %s: %w", errs.ErrOpenFailed, path, err)
	}

	// A side-car left by an earlier file at this path must not be attached
	// to the new one.
	if err := cfg.fs.Remove(AuxPath(path)); err != nil && !errors.Is(err, os.ErrNotExist) {
		level.Warn(cfg.logger).Log("msg", "failed to remove stale metadata", "path", AuxPath(path), "err", err) //nolint:errcheck
	}

	stats, err := writeObject(ctx, cfg, f, codec, src, n)
	if err != nil {
		return nil, stats, err
	}

	ds, err := finalize(cfg, path, src, stats)

	return ds, stats, err
}

// writeObject streams the whole object into f and closes f. If the
// compression stream cannot be started, the empty file is removed.
func writeObject(ctx context.Context, cfg *CopyConfig, f afero.File, codec compress.StreamCodec, src raster.Source, n int32) (stats writeStats, err error) {
	zw, err := codec.NewWriter(f)
	if err != nil {
		return stats, multierr.Combine(
			fmt.Errorf("%w: %s: %w", errs.ErrOpenFailed, f.Name(), err),
			f.Close(),
			cfg.fs.Remove(f.Name()),
		)
	}

	sink := digest.NewWriter(zw)
	enc := encoding.NewEncoder(sink, cfg.Mode())
	defer enc.Finish()

	defer func() {
		if err != nil {
			// keep whatever was produced before the failure
			_ = enc.Flush()
		}
		stats.bytes = sink.Count()
		stats.samples = enc.Samples()

		closeErr := multierr.Combine(zw.Close(), f.Close())
		switch {
		case closeErr == nil:
		case err == nil:
			err = fmt.Errorf("%w: close %s: %w", errs.ErrWriteFailed, f.Name(), closeErr)
		default:
			level.Warn(cfg.logger).Log("msg", "failed to close partial output", "path", f.Name(), "err", closeErr) //nolint:errcheck
		}
	}()

	ow := newObjectWriter(enc)
	ow.writeHeader(n)
	if werr := enc.Err(); werr != nil {
		return stats, fmt.Errorf("%w: header: %w", errs.ErrWriteFailed, werr)
	}

	if err := streamRaster(ctx, enc, src, cfg.progress); err != nil {
		return stats, err
	}

	ow.writeShape(src.Width(), src.Height(), src.BandCount())
	if werr := enc.Flush(); werr != nil {
		return stats, fmt.Errorf("%w: trailer: %w", errs.ErrWriteFailed, werr)
	}
	stats.checksum = sink.Sum64()

	return stats, nil
}
