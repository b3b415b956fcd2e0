// Package rdagrid writes multi-band numeric rasters as R serialized objects,
// the format R's save() produces and load() reads.
//
// A raster of width × height samples in bandCount bands becomes one numeric
// vector named "gg" whose "dim" attribute is (width, height, bandCount), so
// that in R:
//
//	load("dem.rda")
//	dim(gg)         # width height bandCount
//	gg[x, y, band]  # one sample
//
// # Core Features
//
//   - Textual ("RDA2") or XDR binary ("RDX2") encoding
//   - gzip compression by default for binary output, readable by load() as is
//   - Optional zstd, S2 and LZ4 stream compression for non-R consumers
//   - Constant memory: samples are streamed row by row from the source
//   - Structural reader used to verify every written file
//   - Auxiliary metadata kept in a YAML side-car next to the file
//
// # Basic Usage
//
//	grid, _ := rdagrid.NewGrid([][][]float64{
//	    {{1, 2}, {3, 4}}, // band 1
//	    {{5, 6}, {7, 8}}, // band 2
//	})
//
//	ds, err := rdagrid.WriteFile(ctx, "grid.rda", grid)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ds.Close()
//
// Writing text without compression:
//
//	ds, err := rdagrid.WriteFile(ctx, "grid.rda", grid, rdata.WithASCII(true))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the rdata,
// raster and driver packages. For filesystems other than the local one,
// metrics or logging, use rdata directly with its options.
package rdagrid

import (
	"context"

	"github.com/spf13/afero"

	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/raster"
	"github.com/arloliu/rdagrid/rdata"
)

// NewGrid creates an in-memory raster from bands[band][row][col].
//
// Every band must have the same number of rows and every row the same number
// of columns.
func NewGrid(bands [][][]float64) (*raster.Grid, error) {
	return raster.GridFromBands(bands)
}

// WriteFile serializes src to path on the local filesystem.
//
// Without options the file is binary and gzip-compressed. Options are
// applied after the local filesystem is selected, so rdata.WithFs overrides
// it.
//
// Example:
//
//	ds, err := rdagrid.WriteFile(ctx, "out.rda", src,
//	    rdata.WithASCII(true),
//	    rdata.WithProgress(func(done float64, _ string) bool {
//	        fmt.Printf("\r%3.0f%%", done*100)
//	        return true
//	    }),
//	)
func WriteFile(ctx context.Context, path string, src raster.Source, opts ...rdata.CopyOption) (*rdata.Dataset, error) {
	return rdata.CreateCopy(ctx, path, src, append([]rdata.CopyOption{rdata.WithFs(afero.NewOsFs())}, opts...)...)
}

// OpenFile opens an R data file on the local filesystem and validates its
// structure.
func OpenFile(path string) (*rdata.Dataset, error) {
	return rdata.Open(afero.NewOsFs(), path)
}

// NewRegistry returns a driver registry holding the R data driver, configured
// with opts.
//
// The caller owns the registry and should Close it when done.
func NewRegistry(opts ...rdata.CopyOption) (*driver.Registry, error) {
	d, err := rdata.NewDriver(opts...)
	if err != nil {
		return nil, err
	}

	reg := driver.NewRegistry()
	if err := reg.Register(d); err != nil {
		return nil, err
	}

	return reg, nil
}
