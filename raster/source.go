// Package raster defines the read-only grid abstraction consumed by the
// encoder, together with in-memory and image-backed implementations.
package raster

import (
	"fmt"
)

// Source is a read-only multi-band grid.
//
// Bands and rows are zero-based. ReadRow fills dst, whose length is Width(),
// with the samples of one row converted to float64. Implementations must not
// retain dst.
type Source interface {
	Width() int
	Height() int
	BandCount() int
	ReadRow(band, row int, dst []float64) error
}

// MetadataSource is implemented by sources that carry auxiliary metadata.
type MetadataSource interface {
	Metadata() Metadata
}

// CheckRowArgs validates the arguments of a ReadRow call against src.
func CheckRowArgs(src Source, band, row int, dst []float64) error {
	if band < 0 || band >= src.BandCount() {
		return fmt.Errorf("band %d out of range [0,%d)", band, src.BandCount())
	}
	if row < 0 || row >= src.Height() {
		return fmt.Errorf("row %d out of range [0,%d)", row, src.Height())
	}
	if len(dst) != src.Width() {
		return fmt.Errorf("row buffer holds %d samples, want %d", len(dst), src.Width())
	}

	return nil
}
