package baseline

// sampler turns the image rows of one MCU row into per-component sample
// buffers: color conversion, edge expansion to the MCU grid, then
// down-sampling to each component's resolution.
type sampler struct {
	ctx *EncodeContext

	// full-resolution rows per component, FullWidth wide, RowsInMCU tall
	full [][][]byte

	// Per component, PaddedWidth x VSampFactor*8 samples of the current MCU row
	bufs [][]byte

	rowDst [][]byte
}

func newSampler(ctx *EncodeContext) *sampler {
	s := &sampler{
		ctx:    ctx,
		full:   make([][][]byte, len(ctx.Components)),
		bufs:   make([][]byte, len(ctx.Components)),
		rowDst: make([][]byte, len(ctx.Components)),
	}
	for c := range ctx.Components {
		comp := &ctx.Components[c]
		rows := make([][]byte, ctx.RowsInMCU)
		backing := make([]byte, ctx.RowsInMCU*ctx.FullWidth)
		for r := range rows {
			rows[r] = backing[r*ctx.FullWidth : (r+1)*ctx.FullWidth]
		}
		s.full[c] = rows
		s.bufs[c] = make([]byte, comp.PaddedWidth*comp.VSampFactor*blockSize)
	}
	return s
}

// load fills the component buffers for MCU row mcuRow. Rows past the bottom
// of the image repeat the last image row.
func (s *sampler) load(src PixelSource, mcuRow int) [][]byte {
	ctx := s.ctx
	dst := s.rowDst
	y0 := mcuRow * ctx.RowsInMCU

	for r := 0; r < ctx.RowsInMCU; r++ {
		for c := range dst {
			dst[c] = s.full[c][r]
		}
		y := y0 + r
		if y >= ctx.Height {
			for c := range dst {
				copy(dst[c], s.full[c][r-1])
			}
			continue
		}
		convertRow(ctx.colors, src.Row(y), ctx.ColorSpace, dst)
		for c := range dst {
			expandRight(dst[c], ctx.Width)
		}
	}

	for c := range ctx.Components {
		comp := &ctx.Components[c]
		hRatio := ctx.MaxHSampFactor / comp.HSampFactor
		vRatio := ctx.MaxVSampFactor / comp.VSampFactor
		downsample(s.full[c], s.bufs[c], comp.PaddedWidth, hRatio, vRatio)
	}
	return s.bufs
}

// expandRight replicates the last real sample across the padding
func expandRight(row []byte, width int) {
	edge := row[width-1]
	for x := width; x < len(row); x++ {
		row[x] = edge
	}
}

// downsample averages hRatio x vRatio boxes of in into out (stride wide),
// rounding to nearest. A 1x1 ratio is a plain copy.
func downsample(in [][]byte, out []byte, stride, hRatio, vRatio int) {
	outRows := len(in) / vRatio
	if hRatio == 1 && vRatio == 1 {
		for y := 0; y < outRows; y++ {
			copy(out[y*stride:(y+1)*stride], in[y])
		}
		return
	}

	n := hRatio * vRatio
	bias := n / 2
	for y := 0; y < outRows; y++ {
		rows := in[y*vRatio : (y+1)*vRatio]
		line := out[y*stride : (y+1)*stride]
		for x := range line {
			sum := 0
			x0 := x * hRatio
			for _, row := range rows {
				for _, v := range row[x0 : x0+hRatio] {
					sum += int(v)
				}
			}
			line[x] = byte((sum + bias) / n)
		}
	}
}
