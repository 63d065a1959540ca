package baseline

// Fixed-point RGB to YCbCr conversion with 16 fractional bits.
const (
	scaleBits  = 16
	cbcrOffset = 128 << scaleBits
	oneHalf    = 1 << (scaleBits - 1)
)

func fix(x float64) int32 {
	return int32(x*(1<<scaleBits) + 0.5)
}

// colorTables holds the per-channel products of the conversion matrix.
// Rounding and the chroma offset are folded into the B column (bCb doubles
// as the R column of Cr), so every sum stays non-negative and a plain shift
// finishes the conversion.
type colorTables struct {
	rY, gY, bY    [256]int32
	rCb, gCb, bCb [256]int32
	gCr, bCr      [256]int32
}

func newColorTables() *colorTables {
	t := &colorTables{}
	for i := int32(0); i < 256; i++ {
		t.rY[i] = fix(0.29900) * i
		t.gY[i] = fix(0.58700) * i
		t.bY[i] = fix(0.11400)*i + oneHalf
		t.rCb[i] = -fix(0.16874) * i
		t.gCb[i] = -fix(0.33126) * i
		t.bCb[i] = fix(0.50000)*i + cbcrOffset + oneHalf - 1
		t.gCr[i] = -fix(0.41869) * i
		t.bCr[i] = -fix(0.08131) * i
	}
	return t
}

// convertRow splits one row of interleaved input into per-component rows.
// Grayscale samples are copied unchanged.
func convertRow(t *colorTables, src []byte, cs ColorSpace, dst [][]byte) {
	if cs == ColorSpaceGrayscale {
		copy(dst[0], src)
		return
	}

	y, cb, cr := dst[0], dst[1], dst[2]
	for x, i := 0, 0; i+2 < len(src); x, i = x+1, i+3 {
		r, g, b := src[i], src[i+1], src[i+2]
		y[x] = byte((t.rY[r] + t.gY[g] + t.bY[b]) >> scaleBits)
		cb[x] = byte((t.rCb[r] + t.gCb[g] + t.bCb[b]) >> scaleBits)
		cr[x] = byte((t.bCb[r] + t.gCr[g] + t.bCr[b]) >> scaleBits)
	}
}
