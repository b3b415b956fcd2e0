package raster

import (
	"image"
	"image/color"
)

// ImageSource exposes a decoded image as a raster.
//
// Gray images yield one band. Opaque color images yield red, green and blue;
// images with transparency add an alpha band. Samples are the image's native
// depth: 0..255 for 8-bit images, 0..65535 for 16-bit ones. Colors are read
// non-premultiplied.
type ImageSource struct {
	img     image.Image
	bounds  image.Rectangle
	bands   int
	sixteen bool
}

var (
	_ Source         = (*ImageSource)(nil)
	_ MetadataSource = (*ImageSource)(nil)
)

var bandNames = map[int][]string{
	1: {"Gray"},
	3: {"Red", "Green", "Blue"},
	4: {"Red", "Green", "Blue", "Alpha"},
}

// NewImageSource wraps img.
func NewImageSource(img image.Image) *ImageSource {
	s := &ImageSource{img: img, bounds: img.Bounds()}

	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		s.sixteen = true
	}

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		s.bands = 1
	default:
		s.bands = 4
		if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
			s.bands = 3
		}
	}

	return s
}

// Width implements Source.
func (s *ImageSource) Width() int { return s.bounds.Dx() }

// Height implements Source.
func (s *ImageSource) Height() int { return s.bounds.Dy() }

// BandCount implements Source.
func (s *ImageSource) BandCount() int { return s.bands }

// ReadRow implements Source.
func (s *ImageSource) ReadRow(band, row int, dst []float64) error {
	if err := CheckRowArgs(s, band, row, dst); err != nil {
		return err
	}

	y := s.bounds.Min.Y + row
	for i := range dst {
		px := s.img.At(s.bounds.Min.X+i, y)
		if s.bands == 1 {
			dst[i] = s.scale(color.Gray16Model.Convert(px).(color.Gray16).Y)
			continue
		}

		c := color.NRGBA64Model.Convert(px).(color.NRGBA64)
		switch band {
		case 0:
			dst[i] = s.scale(c.R)
		case 1:
			dst[i] = s.scale(c.G)
		case 2:
			dst[i] = s.scale(c.B)
		default:
			dst[i] = s.scale(c.A)
		}
	}

	return nil
}

// Metadata implements MetadataSource. Bands are named after their channel.
func (s *ImageSource) Metadata() Metadata {
	names := bandNames[s.bands]
	m := Metadata{Bands: make([]BandMetadata, len(names))}
	for i, name := range names {
		m.Bands[i].Description = name
	}

	bits := "8"
	if s.sixteen {
		bits = "16"
	}
	m.SetItem("IMAGE_STRUCTURE", "NBITS", bits)

	return m
}

func (s *ImageSource) scale(v uint16) float64 {
	if s.sixteen {
		return float64(v)
	}

	return float64(v >> 8)
}
