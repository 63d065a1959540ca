package baseline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// ColorSpace identifies the layout of the samples a PixelSource delivers.
type ColorSpace int

const (
	// ColorSpaceGrayscale is one sample per pixel
	ColorSpaceGrayscale ColorSpace = iota + 1
	// ColorSpaceRGB is three interleaved samples per pixel (R, G, B)
	ColorSpaceRGB
)

// Components returns the number of samples per pixel
func (cs ColorSpace) Components() int {
	switch cs {
	case ColorSpaceGrayscale:
		return 1
	case ColorSpaceRGB:
		return 3
	default:
		return 0
	}
}

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceGrayscale:
		return "grayscale"
	case ColorSpaceRGB:
		return "rgb"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
}

// colorSpaceFor maps a component count to its color space
func colorSpaceFor(components int) (ColorSpace, error) {
	switch components {
	case 1:
		return ColorSpaceGrayscale, nil
	case 3:
		return ColorSpaceRGB, nil
	default:
		return 0, fmt.Errorf("%w: %d components (want 1 or 3)", common.ErrConfig, components)
	}
}

// PixelSource supplies image rows to the encoder.
//
// Row returns the interleaved 8-bit samples of row y (0 <= y < Height),
// Width*Components bytes long. The slice only needs to stay valid until the
// next call to Row.
type PixelSource interface {
	Width() int
	Height() int
	ColorSpace() ColorSpace
	Row(y int) []byte
}

type rawSource struct {
	pix           []byte
	width, height int
	cs            ColorSpace
	stride        int
}

// NewRawSource wraps interleaved row-major samples.
func NewRawSource(pix []byte, width, height, components int) (PixelSource, error) {
	cs, err := colorSpaceFor(components)
	if err != nil {
		return nil, err
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) < width*height*components {
		return nil, fmt.Errorf("%w: %w: have %d bytes, need %d",
			common.ErrConfig, common.ErrBufferTooSmall, len(pix), width*height*components)
	}
	return &rawSource{
		pix:    pix,
		width:  width,
		height: height,
		cs:     cs,
		stride: width * components,
	}, nil
}

func (s *rawSource) Width() int             { return s.width }
func (s *rawSource) Height() int            { return s.height }
func (s *rawSource) ColorSpace() ColorSpace { return s.cs }

func (s *rawSource) Row(y int) []byte {
	off := y * s.stride
	return s.pix[off : off+s.stride]
}

type planarSource struct {
	rawSource
	row []byte
}

// NewPlanarSource wraps planar samples (all of plane 0, then plane 1, ...),
// the layout of DICOM PlanarConfiguration 1. Rows are interleaved on demand.
func NewPlanarSource(pix []byte, width, height, components int) (PixelSource, error) {
	src, err := NewRawSource(pix, width, height, components)
	if err != nil {
		return nil, err
	}
	return &planarSource{
		rawSource: *src.(*rawSource),
		row:       make([]byte, width*components),
	}, nil
}

func (s *planarSource) Row(y int) []byte {
	comps := s.cs.Components()
	plane := s.width * s.height
	for c := 0; c < comps; c++ {
		in := s.pix[c*plane+y*s.width : c*plane+(y+1)*s.width]
		for x, v := range in {
			s.row[x*comps+c] = v
		}
	}
	return s.row
}

type imageSource struct {
	img    image.Image
	bounds image.Rectangle
	cs     ColorSpace
	row    []byte
}

// NewImageSource adapts an image.Image. Gray images are encoded as a single
// component, everything else as RGB; alpha is dropped.
func NewImageSource(img image.Image) PixelSource {
	b := img.Bounds()
	cs := ColorSpaceRGB
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		cs = ColorSpaceGrayscale
	}
	return &imageSource{
		img:    img,
		bounds: b,
		cs:     cs,
		row:    make([]byte, b.Dx()*cs.Components()),
	}
}

func (s *imageSource) Width() int             { return s.bounds.Dx() }
func (s *imageSource) Height() int            { return s.bounds.Dy() }
func (s *imageSource) ColorSpace() ColorSpace { return s.cs }

func (s *imageSource) Row(y int) []byte {
	w := s.bounds.Dx()
	sy := s.bounds.Min.Y + y

	switch m := s.img.(type) {
	case *image.Gray:
		off := m.PixOffset(s.bounds.Min.X, sy)
		return m.Pix[off : off+w]
	case *image.RGBA:
		off := m.PixOffset(s.bounds.Min.X, sy)
		stripAlpha(s.row, m.Pix[off:off+4*w])
		return s.row
	case *image.NRGBA:
		off := m.PixOffset(s.bounds.Min.X, sy)
		stripAlpha(s.row, m.Pix[off:off+4*w])
		return s.row
	}

	if s.cs == ColorSpaceGrayscale {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(s.img.At(s.bounds.Min.X+x, sy)).(color.Gray)
			s.row[x] = g.Y
		}
		return s.row
	}
	for x := 0; x < w; x++ {
		r, g, b, _ := s.img.At(s.bounds.Min.X+x, sy).RGBA()
		s.row[3*x] = uint8(r >> 8)
		s.row[3*x+1] = uint8(g >> 8)
		s.row[3*x+2] = uint8(b >> 8)
	}
	return s.row
}

func stripAlpha(dst, rgba []byte) {
	for i, j := 0, 0; j+3 < len(rgba); i, j = i+3, j+4 {
		dst[i] = rgba[j]
		dst[i+1] = rgba[j+1]
		dst[i+2] = rgba[j+2]
	}
}

// checkDimensions rejects frame sizes SOF0 cannot describe.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("%w: %w: %dx%d", common.ErrGeometry, common.ErrInvalidDimensions, width, height)
	}
	return nil
}
