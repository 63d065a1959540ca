package baseline

// blockSink consumes quantized blocks in scan order.
type blockSink interface {
	encodeBlock(comp int, block *[64]int32) error
}

// mcuAssembler walks one MCU row in interleaved order: MCUs left to right,
// components in frame order, each component's blocks row-major.
type mcuAssembler struct {
	ctx   *EncodeContext
	work  [64]int32
	block [64]int32
}

func newMCUAssembler(ctx *EncodeContext) *mcuAssembler {
	return &mcuAssembler{ctx: ctx}
}

// encodeRow transforms the blocks of the buffered MCU row into sink.
func (a *mcuAssembler) encodeRow(bufs [][]byte, sink blockSink) error {
	ctx := a.ctx
	for mcuCol := 0; mcuCol < ctx.MCUsPerRow; mcuCol++ {
		for c := range ctx.Components {
			comp := &ctx.Components[c]
			divisors := ctx.DivisorTables[comp.QuantTable]
			for y := 0; y < comp.MCUHeight; y++ {
				for x := 0; x < comp.MCUWidth; x++ {
					col := (mcuCol*comp.MCUWidth + x) * blockSize
					transformBlock(bufs[c], comp.PaddedWidth, y*blockSize, col, divisors, &a.work, &a.block)
					if err := sink.encodeBlock(c, &a.block); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// replayRow feeds blocks retained by a statsGatherer back in the same order.
// It returns the unread rest of coefs.
func (a *mcuAssembler) replayRow(coefs []int16, sink blockSink) ([]int16, error) {
	ctx := a.ctx
	for mcuCol := 0; mcuCol < ctx.MCUsPerRow; mcuCol++ {
		for c := range ctx.Components {
			comp := &ctx.Components[c]
			for n := comp.MCUWidth * comp.MCUHeight; n > 0; n-- {
				for k, v := range coefs[:64] {
					a.block[k] = int32(v)
				}
				coefs = coefs[64:]
				if err := sink.encodeBlock(c, &a.block); err != nil {
					return coefs, err
				}
			}
		}
	}
	return coefs, nil
}
