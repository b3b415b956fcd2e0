package rdata

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/raster"
)

// finalize reopens the closed file read-only, checks that it holds exactly
// the stream that was written and clones the source's auxiliary metadata.
func finalize(cfg *CopyConfig, path string, src raster.Source, stats writeStats) (*Dataset, error) {
	ds, err := Open(cfg.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrReopenFailed, path, err)
	}

	if ds.Checksum() != stats.checksum {
		return nil, fmt.Errorf("%w: %s: checksum %016x, wrote %016x", errs.ErrReopenFailed, path, ds.Checksum(), stats.checksum)
	}

	if err := ds.CloneInfo(src); err != nil {
		level.Warn(cfg.logger).Log("msg", "failed to persist auxiliary metadata", "path", path, "err", err) //nolint:errcheck
	}

	return ds, nil
}
