package rdata

import (
	"context"
	"fmt"

	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/encoding"
	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/internal/pool"
	"github.com/arloliu/rdagrid/raster"
)

// ProgressFunc receives the completed fraction of the current band after each
// row. Returning false cancels the copy.
type ProgressFunc = driver.ProgressFunc

// streamRaster writes every sample of src, band by band and row by row.
//
// The first failure ends the whole copy: a failed row read, a sink failure, a
// cancelled context or a progress callback returning false. Nothing is
// written for the row that failed to read.
func streamRaster(ctx context.Context, enc *encoding.Encoder, src raster.Source, progress ProgressFunc) error {
	width, height, bands := src.Width(), src.Height(), src.BandCount()

	row, release := pool.GetFloat64Slice(width)
	defer release()

	for band := range bands {
		for y := range height {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", errs.ErrUserInterrupted, err)
			}

			if err := src.ReadRow(band, y, row); err != nil {
				return fmt.Errorf("%w: band %d row %d: %w", errs.ErrReadFailed, band+1, y, err)
			}

			enc.WriteSampleRow(row)
			if err := enc.Err(); err != nil {
				return fmt.Errorf("%w: band %d row %d: %w", errs.ErrWriteFailed, band+1, y, err)
			}

			if progress != nil && !progress(float64(y+1)/float64(height), "") {
				return errs.ErrUserInterrupted
			}
		}
	}

	return nil
}
