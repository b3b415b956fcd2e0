package raster

import "fmt"

// Grid is an in-memory raster holding band-major, row-major float64 samples.
type Grid struct {
	width  int
	height int
	bands  int
	data   []float64
	meta   Metadata
}

var (
	_ Source         = (*Grid)(nil)
	_ MetadataSource = (*Grid)(nil)
)

// NewGrid allocates a zero-filled grid.
func NewGrid(width, height, bands int) (*Grid, error) {
	if width <= 0 || height <= 0 || bands <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%dx%d", width, height, bands)
	}

	return &Grid{
		width:  width,
		height: height,
		bands:  bands,
		data:   make([]float64, width*height*bands),
	}, nil
}

// GridFromBands builds a grid from bands[band][row][col]. Every band must have
// the same number of rows and every row the same number of columns.
func GridFromBands(bands [][][]float64) (*Grid, error) {
	if len(bands) == 0 || len(bands[0]) == 0 || len(bands[0][0]) == 0 {
		return nil, fmt.Errorf("empty grid")
	}

	g, err := NewGrid(len(bands[0][0]), len(bands[0]), len(bands))
	if err != nil {
		return nil, err
	}

	for b, rows := range bands {
		if len(rows) != g.height {
			return nil, fmt.Errorf("band %d has %d rows, want %d", b, len(rows), g.height)
		}
		for r, row := range rows {
			if len(row) != g.width {
				return nil, fmt.Errorf("band %d row %d has %d columns, want %d", b, r, len(row), g.width)
			}
			copy(g.data[g.offset(b, r):], row)
		}
	}

	return g, nil
}

// Width implements Source.
func (g *Grid) Width() int { return g.width }

// Height implements Source.
func (g *Grid) Height() int { return g.height }

// BandCount implements Source.
func (g *Grid) BandCount() int { return g.bands }

// Set stores one sample.
func (g *Grid) Set(band, row, col int, v float64) {
	g.data[g.offset(band, row)+col] = v
}

// At returns one sample.
func (g *Grid) At(band, row, col int) float64 {
	return g.data[g.offset(band, row)+col]
}

// ReadRow implements Source.
func (g *Grid) ReadRow(band, row int, dst []float64) error {
	if err := CheckRowArgs(g, band, row, dst); err != nil {
		return err
	}
	copy(dst, g.data[g.offset(band, row):g.offset(band, row)+g.width])

	return nil
}

// SetMetadata attaches auxiliary metadata to the grid.
func (g *Grid) SetMetadata(m Metadata) {
	g.meta = m
}

// Metadata implements MetadataSource.
func (g *Grid) Metadata() Metadata {
	return g.meta
}

func (g *Grid) offset(band, row int) int {
	return (band*g.height + row) * g.width
}
