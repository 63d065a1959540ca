package baseline

import (
	"io"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

const (
	symbolEOB = 0x00
	symbolZRL = 0xF0
)

// entropyCoder Huffman-codes quantized blocks into the scan.
type entropyCoder struct {
	bw     *common.BitWriter
	dc     []*[256]common.HuffmanCode // Per component
	ac     []*[256]common.HuffmanCode
	prevDC []int32
	done   bool
}

func newEntropyCoder(ctx *EncodeContext, w io.Writer) *entropyCoder {
	e := &entropyCoder{
		bw:     common.NewBitWriter(w),
		dc:     make([]*[256]common.HuffmanCode, len(ctx.Components)),
		ac:     make([]*[256]common.HuffmanCode, len(ctx.Components)),
		prevDC: make([]int32, len(ctx.Components)),
	}
	for c := range ctx.Components {
		e.dc[c] = ctx.dcCodes[ctx.Components[c].DCTable]
		e.ac[c] = ctx.acCodes[ctx.Components[c].ACTable]
	}
	return e
}

// encodeBlock codes one zigzag-ordered block of component comp
func (e *entropyCoder) encodeBlock(comp int, block *[64]int32) error {
	// DC difference
	diff := block[0] - e.prevDC[comp]
	e.prevDC[comp] = block[0]

	cat, bits := common.Category(diff)
	if err := e.bw.WriteCode(e.dc[comp][cat]); err != nil {
		return err
	}
	if err := e.bw.WriteBits(bits, cat); err != nil {
		return err
	}

	// AC run/size pairs
	acCode := e.ac[comp]
	run := 0
	for k := 1; k < 64; k++ {
		v := block[k]
		if v == 0 {
			run++
			continue
		}
		for run > 15 {
			if err := e.bw.WriteCode(acCode[symbolZRL]); err != nil {
				return err
			}
			run -= 16
		}
		cat, bits := common.Category(v)
		if err := e.bw.WriteCode(acCode[run<<4|cat]); err != nil {
			return err
		}
		if err := e.bw.WriteBits(bits, cat); err != nil {
			return err
		}
		run = 0
	}
	if run > 0 {
		return e.bw.WriteCode(acCode[symbolEOB])
	}
	return nil
}

// terminate pads the final byte with 1 bits and flushes the scan.
// Only the first call does any work.
func (e *entropyCoder) terminate() error {
	if e.done {
		return e.bw.Err()
	}
	e.done = true
	return e.bw.Flush()
}

// statsGatherer is the first pass of Huffman optimization: it counts the
// symbols the scan will need and keeps the blocks for the second pass.
type statsGatherer struct {
	dcHist [numTableSlots]common.Histogram
	acHist [numTableSlots]common.Histogram
	dcTbl  []int
	acTbl  []int
	prevDC []int32
	coefs  []int16
}

func newStatsGatherer(ctx *EncodeContext) *statsGatherer {
	g := &statsGatherer{
		dcTbl:  make([]int, len(ctx.Components)),
		acTbl:  make([]int, len(ctx.Components)),
		prevDC: make([]int32, len(ctx.Components)),
		coefs:  make([]int16, 0, ctx.MCURows*ctx.MCUsPerRow*ctx.blocksInMCU()*64),
	}
	for c := range ctx.Components {
		g.dcTbl[c] = ctx.Components[c].DCTable
		g.acTbl[c] = ctx.Components[c].ACTable
	}
	return g
}

func (g *statsGatherer) encodeBlock(comp int, block *[64]int32) error {
	for _, v := range block {
		g.coefs = append(g.coefs, int16(v))
	}

	diff := block[0] - g.prevDC[comp]
	g.prevDC[comp] = block[0]
	cat, _ := common.Category(diff)
	g.dcHist[g.dcTbl[comp]].Add(byte(cat))

	ac := &g.acHist[g.acTbl[comp]]
	run := 0
	for k := 1; k < 64; k++ {
		if block[k] == 0 {
			run++
			continue
		}
		for run > 15 {
			ac.Add(symbolZRL)
			run -= 16
		}
		cat, _ := common.Category(block[k])
		ac.Add(byte(run<<4 | cat))
		run = 0
	}
	if run > 0 {
		ac.Add(symbolEOB)
	}
	return nil
}

// tables returns the optimal DC and AC tables for slot tbl
func (g *statsGatherer) tables(tbl int) (dc, ac *common.HuffmanSpec) {
	dcSpec := common.OptimalHuffmanSpec(&g.dcHist[tbl])
	acSpec := common.OptimalHuffmanSpec(&g.acHist[tbl])
	return &dcSpec, &acSpec
}
