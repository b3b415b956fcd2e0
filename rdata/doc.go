// Package rdata writes multi-band rasters as R serialized objects and reads
// back their structure.
//
// A file holds one numeric vector named "gg" whose "dim" attribute is
// (width, height, bandCount). Samples are stored band by band, row by row,
// either as text lines (the "RDA2" textual form) or as XDR doubles (the
// "RDX2" binary form). The stream may be wrapped in gzip, which is what R's
// load() expects, or in one of the other codecs of the compress package.
//
// Basic usage:
//
//	grid, _ := raster.GridFromBands(bands)
//	ds, err := rdata.CreateCopy(ctx, "out.rda", grid,
//		rdata.WithFs(afero.NewOsFs()),
//		rdata.WithASCII(true),
//	)
//	if err != nil {
//		return err
//	}
//	defer ds.Close()
//
// Open and Identify implement the read side used to verify a written file.
// They walk the object grammar and validate the shape but never load samples.
package rdata
