package baseline

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubsampling(t *testing.T) {
	tests := []struct {
		in   string
		want Subsampling
	}{
		{"420", Subsampling420},
		{"4:2:0", Subsampling420},
		{"444", Subsampling444},
		{"4:2:2", Subsampling422},
		{"440", Subsampling440},
		{"411", Subsampling411},
	}
	for _, tt := range tests {
		got, err := ParseSubsampling(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.NotEmpty(t, got.String())
	}

	_, err := ParseSubsampling("4:1:0")
	assert.ErrorIs(t, err, common.ErrConfig)
	assert.Equal(t, "Subsampling(42)", Subsampling(42).String())
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"quality below range", func(o *Options) { o.Quality = -1 }},
		{"quality above range", func(o *Options) { o.Quality = 101 }},
		{"unknown subsampling", func(o *Options) { o.Subsampling = Subsampling(9) }},
		{"density units", func(o *Options) { o.DensityUnits = 3 }},
		{"zero density", func(o *Options) { o.XDensity = 0 }},
		{"oversized comment", func(o *Options) { o.Comment = strings.Repeat("x", common.MaxSegmentPayload+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(opts)
			assert.ErrorIs(t, opts.Validate(), common.ErrConfig)
		})
	}

	opts := DefaultOptions()
	opts.WriteJFIF = false
	opts.XDensity = 0
	assert.NoError(t, opts.Validate(), "density is unused without JFIF")
}

func TestSamplingFactorErrors(t *testing.T) {
	tests := []struct {
		name    string
		factors []SamplingFactor
		kind    error
	}{
		{"wrong count", []SamplingFactor{{2, 2}, {1, 1}}, common.ErrConfig},
		{"zero factor", []SamplingFactor{{0, 1}, {1, 1}, {1, 1}}, common.ErrGeometry},
		{"factor above 4", []SamplingFactor{{5, 1}, {1, 1}, {1, 1}}, common.ErrGeometry},
		{"too many blocks", []SamplingFactor{{4, 2}, {1, 2}, {1, 1}}, common.ErrGeometry},
		{"non integral ratio", []SamplingFactor{{3, 1}, {2, 1}, {1, 1}}, common.ErrGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.SamplingFactors = tt.factors
			_, err := samplingFactors(3, opts)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	opts := DefaultOptions()
	opts.SamplingFactors = []SamplingFactor{{4, 2}, {1, 1}, {1, 1}}
	factors, err := samplingFactors(3, opts)
	require.NoError(t, err, "ten blocks is the limit")
	assert.Len(t, factors, 3)
}

func TestNewRawSource(t *testing.T) {
	_, err := NewRawSource(make([]byte, 12), 2, 2, 3)
	require.NoError(t, err)

	_, err = NewRawSource(make([]byte, 11), 2, 2, 3)
	assert.ErrorIs(t, err, common.ErrConfig)

	_, err = NewRawSource(make([]byte, 16), 2, 2, 4)
	assert.ErrorIs(t, err, common.ErrConfig)

	_, err = NewRawSource(nil, 0, 2, 1)
	assert.ErrorIs(t, err, common.ErrGeometry)

	_, err = NewRawSource(make([]byte, 70000), 70000, 1, 1)
	assert.True(t, errors.Is(err, common.ErrGeometry))
}

func TestPlanarSourceInterleaves(t *testing.T) {
	// 2x2 RGB: R plane, G plane, B plane
	pix := []byte{
		1, 2, 3, 4,
		11, 12, 13, 14,
		21, 22, 23, 24,
	}
	src, err := NewPlanarSource(pix, 2, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, ColorSpaceRGB, src.ColorSpace())
	assert.Equal(t, []byte{1, 11, 21, 2, 12, 22}, src.Row(0))
	assert.Equal(t, []byte{3, 13, 23, 4, 14, 24}, src.Row(1))
}

func TestImageSource(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(2, 1, color.Gray{Y: 77})
	src := NewImageSource(gray)
	assert.Equal(t, ColorSpaceGrayscale, src.ColorSpace())
	assert.Equal(t, 3, src.Width())
	assert.Equal(t, 2, src.Height())
	assert.Equal(t, []byte{0, 0, 77}, src.Row(1))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{10, 20, 30, 255})
	rgba.Set(1, 0, color.RGBA{40, 50, 60, 255})
	src = NewImageSource(rgba)
	assert.Equal(t, ColorSpaceRGB, src.ColorSpace())
	assert.Equal(t, []byte{10, 20, 30, 40, 50, 60}, src.Row(0))

	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 0, 255, 255},
	})
	pal.SetColorIndex(1, 0, 1)
	src = NewImageSource(pal)
	assert.Equal(t, ColorSpaceRGB, src.ColorSpace())
	assert.Equal(t, []byte{255, 0, 0, 0, 0, 255}, src.Row(0))

	// Sub-image rows start at the bounds origin
	sub := gray.SubImage(image.Rect(1, 1, 3, 2)).(*image.Gray)
	src = NewImageSource(sub)
	assert.Equal(t, []byte{0, 77}, src.Row(0))
}

func TestBaselineParameters(t *testing.T) {
	p := NewBaselineParameters()
	assert.Equal(t, DefaultQuality, p.GetParameter("quality"))
	assert.Equal(t, "420", p.GetParameter("subsampling"))
	assert.Equal(t, false, p.GetParameter("optimizeHuffman"))

	p.SetParameter("quality", 60)
	p.SetParameter("subsampling", "4:4:4")
	p.SetParameter("optimizeHuffman", true)
	p.SetParameter("custom", "value")
	assert.Equal(t, 60, p.Quality)
	assert.Equal(t, Subsampling444, p.Subsampling)
	assert.True(t, p.OptimizeHuffman)
	assert.Equal(t, "value", p.GetParameter("custom"))

	// Wrong types leave the value alone
	p.SetParameter("quality", "high")
	p.SetParameter("subsampling", "bogus")
	assert.Equal(t, 60, p.Quality)
	assert.Equal(t, Subsampling444, p.Subsampling)

	require.NoError(t, p.Validate())
	assert.ErrorIs(t, p.WithQuality(150).Validate(), common.ErrConfig)

	opts := NewBaselineParameters().WithQuality(40).WithSubsampling(Subsampling422).WithOptimizeHuffman(true).options()
	assert.Equal(t, 40, opts.Quality)
	assert.Equal(t, Subsampling422, opts.Subsampling)
	assert.True(t, opts.OptimizeHuffman)
	assert.True(t, opts.WriteJFIF)
}
