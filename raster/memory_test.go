package raster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(3, 2, 4)
	require.NoError(t, err)
	require.Equal(t, 3, g.Width())
	require.Equal(t, 2, g.Height())
	require.Equal(t, 4, g.BandCount())

	for _, dims := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-1, 2, 2}} {
		_, err := NewGrid(dims[0], dims[1], dims[2])
		require.Error(t, err, "dims %v", dims)
	}
}

func TestGridFromBands(t *testing.T) {
	g, err := GridFromBands([][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, g.Width())
	require.Equal(t, 2, g.Height())
	require.Equal(t, 2, g.BandCount())
	require.Equal(t, 7.0, g.At(1, 1, 0))

	row := make([]float64, 2)
	require.NoError(t, g.ReadRow(1, 0, row))
	require.Equal(t, []float64{5, 6}, row)
	require.NoError(t, g.ReadRow(0, 1, row))
	require.Equal(t, []float64{3, 4}, row)
}

func TestGridFromBands_Ragged(t *testing.T) {
	_, err := GridFromBands(nil)
	require.Error(t, err)

	_, err = GridFromBands([][][]float64{{{1, 2}, {3}}})
	require.ErrorContains(t, err, "row 1 has 1 columns")

	_, err = GridFromBands([][][]float64{{{1}, {2}}, {{3}}})
	require.ErrorContains(t, err, "band 1 has 1 rows")
}

func TestGrid_SetAt(t *testing.T) {
	g, err := NewGrid(4, 3, 2)
	require.NoError(t, err)

	g.Set(1, 2, 3, 42)
	require.Equal(t, 42.0, g.At(1, 2, 3))
	require.Equal(t, 0.0, g.At(0, 2, 3))
}

func TestGrid_ReadRowBounds(t *testing.T) {
	g, err := NewGrid(2, 2, 1)
	require.NoError(t, err)

	require.ErrorContains(t, g.ReadRow(1, 0, make([]float64, 2)), "band 1 out of range")
	require.ErrorContains(t, g.ReadRow(0, 2, make([]float64, 2)), "row 2 out of range")
	require.ErrorContains(t, g.ReadRow(0, -1, make([]float64, 2)), "row -1 out of range")
	require.ErrorContains(t, g.ReadRow(0, 0, make([]float64, 3)), "holds 3 samples")
}

func TestGrid_Metadata(t *testing.T) {
	g, err := NewGrid(1, 1, 1)
	require.NoError(t, err)
	require.True(t, g.Metadata().IsEmpty())

	nodata := -9999.0
	g.SetMetadata(Metadata{Bands: []BandMetadata{{NoData: &nodata}}})
	require.False(t, g.Metadata().IsEmpty())
	require.Equal(t, -9999.0, *g.Metadata().Bands[0].NoData)
}
