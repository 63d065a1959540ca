package baseline

import (
	"fmt"
	"log/slog"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// DefaultQuality is the quality used when none is given
const DefaultQuality = 85

// Subsampling selects the chroma sampling of RGB input.
// The zero value is 4:2:0.
type Subsampling int

const (
	Subsampling420 Subsampling = iota // Y 2x2, chroma 1x1
	Subsampling444                    // no subsampling
	Subsampling422                    // Y 2x1
	Subsampling440                    // Y 1x2
	Subsampling411                    // Y 4x1
)

var subsamplingNames = map[Subsampling]string{
	Subsampling420: "420",
	Subsampling444: "444",
	Subsampling422: "422",
	Subsampling440: "440",
	Subsampling411: "411",
}

func (s Subsampling) String() string {
	if name, ok := subsamplingNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Subsampling(%d)", int(s))
}

// ParseSubsampling parses "444", "422", "420", "440" or "411"
// (an optional "4:2:0" style with colons is accepted too).
func ParseSubsampling(text string) (Subsampling, error) {
	compact := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != ':' {
			compact = append(compact, text[i])
		}
	}
	for s, name := range subsamplingNames {
		if name == string(compact) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown subsampling %q", common.ErrConfig, text)
}

// lumaFactors returns the Y sampling factors; chroma is always 1x1.
func (s Subsampling) lumaFactors() (h, v int) {
	switch s {
	case Subsampling444:
		return 1, 1
	case Subsampling422:
		return 2, 1
	case Subsampling440:
		return 1, 2
	case Subsampling411:
		return 4, 1
	default:
		return 2, 2
	}
}

// SamplingFactor is a horizontal/vertical sampling factor pair (1-4 each)
type SamplingFactor struct {
	H, V int
}

// Options contains encoding options for JPEG Baseline
type Options struct {
	// Quality is the IJG quality factor, 0-100. 0 behaves like 1.
	Quality int

	// Subsampling selects chroma subsampling for RGB input
	Subsampling Subsampling

	// SamplingFactors overrides Subsampling with explicit per-component
	// factors, one entry per component in frame order.
	SamplingFactors []SamplingFactor

	// OptimizeHuffman builds image-specific Huffman tables in a first pass
	// instead of using the standard tables.
	OptimizeHuffman bool

	// WriteJFIF emits the JFIF APP0 segment
	WriteJFIF bool

	// DensityUnits, XDensity and YDensity go into the JFIF segment
	DensityUnits byte
	XDensity     uint16
	YDensity     uint16

	// Comment is written as a COM segment when not empty
	Comment string

	// Logger receives debug records; nil discards them
	Logger *slog.Logger
}

// DefaultOptions returns options with quality 85, 4:2:0, standard tables
// and a JFIF header with 1:1 aspect ratio.
func DefaultOptions() *Options {
	return &Options{
		Quality:      DefaultQuality,
		Subsampling:  Subsampling420,
		WriteJFIF:    true,
		DensityUnits: common.DensityUnitsNone,
		XDensity:     1,
		YDensity:     1,
	}
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("%w: %w: %d", common.ErrConfig, common.ErrInvalidQuality, o.Quality)
	}
	if _, ok := subsamplingNames[o.Subsampling]; !ok {
		return fmt.Errorf("%w: unknown subsampling %d", common.ErrConfig, int(o.Subsampling))
	}
	if o.DensityUnits > common.DensityUnitsPerCentimeter {
		return fmt.Errorf("%w: density units %d", common.ErrConfig, o.DensityUnits)
	}
	if o.WriteJFIF && (o.XDensity == 0 || o.YDensity == 0) {
		return fmt.Errorf("%w: JFIF density must be non-zero", common.ErrConfig)
	}
	if len(o.Comment) > common.MaxSegmentPayload {
		return fmt.Errorf("%w: comment of %d bytes", common.ErrConfig, len(o.Comment))
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.DiscardHandler)
