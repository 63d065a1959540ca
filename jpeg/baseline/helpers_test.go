package baseline

import (
	"errors"
	"math"
	"math/rand/v2"
)

// testImage returns smooth, deterministic content with some texture:
// per-pixel interleaved samples, components 1 or 3.
func testImage(width, height, components int, noise int) []byte {
	rng := rand.New(rand.NewPCG(uint64(width), uint64(height)))
	pix := make([]byte, width*height*components)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < components; c++ {
				v := 128 + 70*math.Sin(float64(x+13*c)/9)*math.Cos(float64(y+7*c)/11)
				if noise > 0 {
					v += float64(rng.IntN(2*noise+1) - noise)
				}
				pix[(y*width+x)*components+c] = clampByte(v)
			}
		}
	}
	return pix
}

func clampByte(v float64) byte {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return byte(v + 0.5)
	}
}

// psnr returns the peak signal-to-noise ratio of b against a in dB
func psnr(a, b []byte) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	if sum == 0 {
		return math.Inf(1)
	}
	mse := sum / float64(len(a))
	return 10 * math.Log10(255*255/mse)
}

func maxAbsDiff(a, b []byte) int {
	m := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		m = max(m, d)
	}
	return m
}

// limitWriter accepts limit bytes, then fails
type limitWriter struct {
	data  []byte
	limit int
}

var errDiskFull = errors.New("disk full")

func (w *limitWriter) Write(p []byte) (int, error) {
	room := w.limit - len(w.data)
	if room >= len(p) {
		w.data = append(w.data, p...)
		return len(p), nil
	}
	if room > 0 {
		w.data = append(w.data, p[:room]...)
	} else {
		room = 0
	}
	return room, errDiskFull
}
