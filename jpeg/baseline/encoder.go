package baseline

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/cocosip/go-jpeg-baseline/codec"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

var _ codec.Encoder = (*Encoder)(nil)

type encoderState int

const (
	stateInit encoderState = iota
	stateHeadersWritten
	stateScanning
	stateFlushing
	stateDone
	stateFailed
)

var stateNames = [...]string{"init", "headers-written", "scanning", "flushing", "done", "failed"}

func (s encoderState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("encoderState(%d)", int(s))
}

// Encoder is an incremental JPEG Baseline encoder for one image.
//
// Init validates the setup and writes the headers, each Drive call encodes
// one MCU row, and Finish terminates the scan and writes EOI. The first
// error is final: every later call returns it and no EOI is written.
type Encoder struct {
	w    io.Writer
	src  PixelSource
	opts *Options
	log  *slog.Logger

	ctx     *EncodeContext
	out     *common.Writer
	sampler *sampler
	mcu     *mcuAssembler
	coder   *entropyCoder

	// Blocks kept by the optimization pass, nil with standard tables
	retained []int16

	mcuRow int
	state  encoderState
	err    error
}

// NewEncoder creates an encoder writing src to w. A nil opts means
// DefaultOptions.
func NewEncoder(w io.Writer, src PixelSource, opts *Options) *Encoder {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Encoder{
		w:    w,
		src:  src,
		opts: opts,
		log:  opts.logger(),
	}
}

// Context returns the encode context, nil before a successful Init
func (e *Encoder) Context() *EncodeContext {
	return e.ctx
}

// Init validates the configuration, builds the tables and writes every
// segment up to and including SOS.
func (e *Encoder) Init() error {
	if err := e.expect(stateInit); err != nil {
		return err
	}
	if e.src == nil || e.w == nil {
		return e.fail(fmt.Errorf("%w: nil source or writer", common.ErrConfig))
	}

	ctx, err := newEncodeContext(e.src, e.opts)
	if err != nil {
		return e.fail(err)
	}
	e.ctx = ctx
	e.sampler = newSampler(ctx)
	e.mcu = newMCUAssembler(ctx)

	if e.opts.OptimizeHuffman {
		if err := e.gatherStatistics(); err != nil {
			return e.fail(err)
		}
	}

	e.out = common.NewWriter(e.w)
	if err := writeHeaders(e.out, ctx, e.opts); err != nil {
		return e.fail(err)
	}
	e.coder = newEntropyCoder(ctx, e.out)

	e.log.Debug("jpeg baseline headers written",
		slog.Int("width", ctx.Width),
		slog.Int("height", ctx.Height),
		slog.String("colorSpace", ctx.ColorSpace.String()),
		slog.Int("quality", ctx.Quality),
		slog.Int("components", len(ctx.Components)),
		slog.Int("maxH", ctx.MaxHSampFactor),
		slog.Int("maxV", ctx.MaxVSampFactor),
		slog.Int("mcusPerRow", ctx.MCUsPerRow),
		slog.Int("mcuRows", ctx.MCURows),
		slog.Bool("optimizeHuffman", e.opts.OptimizeHuffman),
		slog.Int64("headerBytes", e.out.Written()))

	e.state = stateHeadersWritten
	return nil
}

// gatherStatistics runs the whole image through the transform once to
// build image-specific Huffman tables.
func (e *Encoder) gatherStatistics() error {
	ctx := e.ctx
	g := newStatsGatherer(ctx)
	for row := 0; row < ctx.MCURows; row++ {
		if err := e.mcu.encodeRow(e.sampler.load(e.src, row), g); err != nil {
			return err
		}
	}
	for tbl := 0; tbl < ctx.numTables(); tbl++ {
		dc, ac := g.tables(tbl)
		if err := dc.Validate(); err != nil {
			return err
		}
		if err := ac.Validate(); err != nil {
			return err
		}
		ctx.setHuffmanTables(tbl, dc, ac)
	}
	e.retained = g.coefs
	e.log.Debug("jpeg baseline huffman tables optimized",
		slog.Int("tables", ctx.numTables()),
		slog.Int("blocks", len(g.coefs)/64))
	return nil
}

// Drive encodes the next MCU row. It returns codec.StepDone after the last
// row, after which Finish must be called.
func (e *Encoder) Drive() (codec.Step, error) {
	if err := e.expect(stateHeadersWritten, stateScanning); err != nil {
		return codec.StepContinue, err
	}
	e.state = stateScanning

	var err error
	if e.retained != nil {
		e.retained, err = e.mcu.replayRow(e.retained, e.coder)
	} else {
		err = e.mcu.encodeRow(e.sampler.load(e.src, e.mcuRow), e.coder)
	}
	if err != nil {
		return codec.StepContinue, e.fail(err)
	}

	e.mcuRow++
	if e.mcuRow < e.ctx.MCURows {
		return codec.StepContinue, nil
	}
	e.state = stateFlushing
	return codec.StepDone, nil
}

// Finish flushes the entropy coder and writes EOI.
func (e *Encoder) Finish() error {
	if err := e.expect(stateFlushing); err != nil {
		return err
	}
	if err := e.coder.terminate(); err != nil {
		return e.fail(err)
	}
	if err := e.out.WriteMarker(common.MarkerEOI); err != nil {
		return e.fail(err)
	}

	e.state = stateDone
	e.log.Debug("jpeg baseline encode finished",
		slog.Int("mcuRows", e.mcuRow),
		slog.Int64("bytes", e.out.Written()))
	return nil
}

// expect checks that the encoder is in one of the given states. A failed
// encoder keeps returning its original error.
func (e *Encoder) expect(states ...encoderState) error {
	if e.state == stateFailed {
		return e.err
	}
	for _, s := range states {
		if e.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: encoder is in state %v", common.ErrState, e.state)
}

func (e *Encoder) fail(err error) error {
	e.log.Debug("jpeg baseline encode failed",
		slog.String("state", e.state.String()),
		slog.Int("mcuRow", e.mcuRow),
		slog.Any("error", err))
	e.state = stateFailed
	e.err = err
	e.retained = nil
	return err
}

// EncodeTo encodes src to w. A nil opts means DefaultOptions.
func EncodeTo(w io.Writer, src PixelSource, opts *Options) error {
	return codec.Run(NewEncoder(w, src, opts))
}

// Encode encodes src with the default options at the given quality and
// returns the complete JFIF file.
func Encode(src PixelSource, quality int) ([]byte, error) {
	opts := DefaultOptions()
	opts.Quality = quality

	var buf bytes.Buffer
	if err := EncodeTo(&buf, src, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeImage encodes an image.Image to w
func EncodeImage(w io.Writer, img image.Image, opts *Options) error {
	return EncodeTo(w, NewImageSource(img), opts)
}

// EncodePixels encodes interleaved 8-bit pixel data to JPEG Baseline format
// components: 1 for grayscale, 3 for RGB
// quality: 0-100, where 100 is best quality
func EncodePixels(pixelData []byte, width, height, components, quality int) ([]byte, error) {
	src, err := NewRawSource(pixelData, width, height, components)
	if err != nil {
		return nil, err
	}
	return Encode(src, quality)
}
