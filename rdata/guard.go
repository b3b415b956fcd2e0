package rdata

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/rdagrid/errs"
)

// checkSize validates the raster shape and returns its element count.
//
// The R vector length field is a signed 32-bit integer, so the product of the
// three dimensions must not exceed math.MaxInt32. The product is computed in
// 64 bits with explicit overflow detection.
func checkSize(width, height, bands int) (int32, error) {
	if width <= 0 || height <= 0 || bands <= 0 {
		return 0, fmt.Errorf("%w: %dx%dx%d", errs.ErrInvalidDimensions, width, height, bands)
	}

	hi, n := bits.Mul64(uint64(width), uint64(height))
	if hi == 0 {
		hi, n = bits.Mul64(n, uint64(bands))
	}
	if hi != 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %dx%dx%d", errs.ErrRasterTooBig, width, height, bands)
	}

	return int32(n), nil
}
