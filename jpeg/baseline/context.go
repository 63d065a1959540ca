package baseline

import (
	"fmt"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

const (
	maxSampFactor  = 4
	maxBlocksInMCU = 10
	numTableSlots  = 4
	blockSize      = 8
)

// ComponentInfo describes one color component of the frame.
type ComponentInfo struct {
	ID          int // Component identifier written to SOF0/SOS
	HSampFactor int
	VSampFactor int
	QuantTable  int
	DCTable     int
	ACTable     int

	// Samples actually covered by the image: ceil(dim * factor / max)
	TrueCompWidth  int
	TrueCompHeight int

	// Blocks of this component in one MCU
	MCUWidth  int
	MCUHeight int

	// Blocks covering the true samples
	WidthInBlocks  int
	HeightInBlocks int

	// True size rounded up to a whole block
	DownsampledWidth  int
	DownsampledHeight int

	// Size of the whole MCU grid in samples, the buffer geometry
	PaddedWidth  int
	PaddedHeight int
}

// EncodeContext is the immutable per-image setup shared by the pipeline
// stages. It is built once by Encoder.Init.
type EncodeContext struct {
	Width      int
	Height     int
	ColorSpace ColorSpace
	Quality    int

	Components     []ComponentInfo
	MaxHSampFactor int
	MaxVSampFactor int

	FullWidth  int // Width padded to whole MCUs
	RowsInMCU  int // Image rows consumed per MCU row
	MCUsPerRow int
	MCURows    int

	QuantTables   [numTableSlots]*[64]int32 // Natural order
	DivisorTables [numTableSlots]*[64]int32
	DCTables      [numTableSlots]*common.HuffmanSpec
	ACTables      [numTableSlots]*common.HuffmanSpec

	dcCodes [numTableSlots]*[256]common.HuffmanCode
	acCodes [numTableSlots]*[256]common.HuffmanCode
	colors  *colorTables
}

func newEncodeContext(src PixelSource, opts *Options) (*EncodeContext, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	cs := src.ColorSpace()
	numComponents := cs.Components()
	if numComponents == 0 {
		return nil, fmt.Errorf("%w: %w: color space %v", common.ErrConfig, common.ErrInvalidComponents, cs)
	}

	factors, err := samplingFactors(numComponents, opts)
	if err != nil {
		return nil, err
	}

	ctx := &EncodeContext{
		Width:      width,
		Height:     height,
		ColorSpace: cs,
		Quality:    opts.Quality,
		Components: make([]ComponentInfo, numComponents),
	}

	for _, f := range factors {
		ctx.MaxHSampFactor = max(ctx.MaxHSampFactor, f.H)
		ctx.MaxVSampFactor = max(ctx.MaxVSampFactor, f.V)
	}
	ctx.FullWidth = roundUp(width, blockSize*ctx.MaxHSampFactor)
	ctx.RowsInMCU = blockSize * ctx.MaxVSampFactor
	ctx.MCUsPerRow = ceilDiv(width, blockSize*ctx.MaxHSampFactor)
	ctx.MCURows = ceilDiv(height, ctx.RowsInMCU)

	for i, f := range factors {
		tbl := 0
		if i > 0 {
			tbl = 1
		}
		comp := &ctx.Components[i]
		comp.ID = i + 1
		comp.HSampFactor = f.H
		comp.VSampFactor = f.V
		comp.QuantTable = tbl
		comp.DCTable = tbl
		comp.ACTable = tbl
		comp.TrueCompWidth = ceilDiv(width*f.H, ctx.MaxHSampFactor)
		comp.TrueCompHeight = ceilDiv(height*f.V, ctx.MaxVSampFactor)
		comp.MCUWidth = f.H
		comp.MCUHeight = f.V
		comp.WidthInBlocks = ceilDiv(comp.TrueCompWidth, blockSize)
		comp.HeightInBlocks = ceilDiv(comp.TrueCompHeight, blockSize)
		comp.DownsampledWidth = comp.WidthInBlocks * blockSize
		comp.DownsampledHeight = comp.HeightInBlocks * blockSize
		comp.PaddedWidth = ctx.MCUsPerRow * f.H * blockSize
		comp.PaddedHeight = ctx.MCURows * f.V * blockSize
	}

	bases := [2]*[64]int32{&common.DefaultLuminanceQuantTable, &common.DefaultChrominanceQuantTable}
	dcStd := [2]*common.HuffmanSpec{&common.StandardDCLuminance, &common.StandardDCChrominance}
	acStd := [2]*common.HuffmanSpec{&common.StandardACLuminance, &common.StandardACChrominance}
	for tbl := 0; tbl < ctx.numTables(); tbl++ {
		q := common.ScaleQuantTable(*bases[tbl], opts.Quality)
		d := common.DivisorTable(&q)
		ctx.QuantTables[tbl] = &q
		ctx.DivisorTables[tbl] = &d
		ctx.setHuffmanTables(tbl, dcStd[tbl], acStd[tbl])
	}

	if cs == ColorSpaceRGB {
		ctx.colors = newColorTables()
	}
	return ctx, nil
}

// numTables returns how many quantization/Huffman table pairs the frame uses
func (ctx *EncodeContext) numTables() int {
	if len(ctx.Components) > 1 {
		return 2
	}
	return 1
}

// setHuffmanTables installs the DC/AC table pair for slot tbl
func (ctx *EncodeContext) setHuffmanTables(tbl int, dc, ac *common.HuffmanSpec) {
	dcCodes := common.BuildHuffmanCodes(dc)
	acCodes := common.BuildHuffmanCodes(ac)
	ctx.DCTables[tbl] = dc
	ctx.ACTables[tbl] = ac
	ctx.dcCodes[tbl] = &dcCodes
	ctx.acCodes[tbl] = &acCodes
}

// blocksInMCU returns the number of blocks in one MCU over all components
func (ctx *EncodeContext) blocksInMCU() int {
	n := 0
	for i := range ctx.Components {
		n += ctx.Components[i].MCUWidth * ctx.Components[i].MCUHeight
	}
	return n
}

// samplingFactors resolves and checks the per-component sampling factors.
// A single component is always sent as one block per MCU, so its factors
// collapse to 1x1 once they pass the range check.
func samplingFactors(numComponents int, opts *Options) ([]SamplingFactor, error) {
	var factors []SamplingFactor
	switch {
	case len(opts.SamplingFactors) > 0:
		if len(opts.SamplingFactors) != numComponents {
			return nil, fmt.Errorf("%w: %d sampling factors for %d components",
				common.ErrConfig, len(opts.SamplingFactors), numComponents)
		}
		factors = append(factors, opts.SamplingFactors...)
	case numComponents == 1:
		factors = []SamplingFactor{{1, 1}}
	default:
		h, v := opts.Subsampling.lumaFactors()
		factors = []SamplingFactor{{h, v}, {1, 1}, {1, 1}}
	}

	maxH, maxV, blocks := 0, 0, 0
	for i, f := range factors {
		if f.H < 1 || f.H > maxSampFactor || f.V < 1 || f.V > maxSampFactor {
			return nil, fmt.Errorf("%w: component %d sampling factors %dx%d out of range 1-%d",
				common.ErrGeometry, i, f.H, f.V, maxSampFactor)
		}
		maxH = max(maxH, f.H)
		maxV = max(maxV, f.V)
		blocks += f.H * f.V
	}
	if numComponents == 1 {
		return []SamplingFactor{{1, 1}}, nil
	}
	if blocks > maxBlocksInMCU {
		return nil, fmt.Errorf("%w: %d blocks per MCU (max %d)", common.ErrGeometry, blocks, maxBlocksInMCU)
	}
	for i, f := range factors {
		if maxH%f.H != 0 || maxV%f.V != 0 {
			return nil, fmt.Errorf("%w: component %d sampling %dx%d does not divide %dx%d",
				common.ErrGeometry, i, f.H, f.V, maxH, maxV)
		}
	}
	return factors, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func roundUp(a, b int) int {
	return ceilDiv(a, b) * b
}
