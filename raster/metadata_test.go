package raster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadata_IsEmpty(t *testing.T) {
	require.True(t, Metadata{}.IsEmpty())
	require.True(t, Metadata{Domains: map[string]map[string]string{"": {}}}.IsEmpty())
	require.True(t, Metadata{Bands: []BandMetadata{{}, {}}}.IsEmpty())

	require.False(t, Metadata{Description: "dem"}.IsEmpty())
	require.False(t, Metadata{Bands: []BandMetadata{{}, {Unit: "m"}}}.IsEmpty())

	scale := 0.5
	require.False(t, Metadata{Bands: []BandMetadata{{Scale: &scale}}}.IsEmpty())
}

func TestMetadata_Items(t *testing.T) {
	var m Metadata

	_, ok := m.Item("", "AREA_OR_POINT")
	require.False(t, ok)

	m.SetItem("", "AREA_OR_POINT", "Area")
	m.SetItem("IMAGE_STRUCTURE", "NBITS", "8")

	v, ok := m.Item("", "AREA_OR_POINT")
	require.True(t, ok)
	require.Equal(t, "Area", v)

	v, ok = m.Item("IMAGE_STRUCTURE", "NBITS")
	require.True(t, ok)
	require.Equal(t, "8", v)
	require.False(t, m.IsEmpty())
}
