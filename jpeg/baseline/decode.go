package baseline

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
)

// Decode decodes a JPEG Baseline stream into interleaved 8-bit samples:
// one per pixel for grayscale, R, G, B otherwise.
func Decode(data []byte) (pixelData []byte, width, height, components int, err error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("decode JPEG: %w", err)
	}

	b := img.Bounds()
	width, height = b.Dx(), b.Dy()

	switch m := img.(type) {
	case *image.Gray:
		pixelData = make([]byte, width*height)
		for y := 0; y < height; y++ {
			off := m.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pixelData[y*width:(y+1)*width], m.Pix[off:off+width])
		}
		return pixelData, width, height, 1, nil
	case *image.YCbCr:
		pixelData = make([]byte, width*height*3)
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				yi := m.YOffset(x, y)
				ci := m.COffset(x, y)
				r, g, bb := color.YCbCrToRGB(m.Y[yi], m.Cb[ci], m.Cr[ci])
				pixelData[i], pixelData[i+1], pixelData[i+2] = r, g, bb
				i += 3
			}
		}
		return pixelData, width, height, 3, nil
	default:
		return nil, 0, 0, 0, fmt.Errorf("decode JPEG: unsupported color model %T", img)
	}
}
