package baseline

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// Ensure JPEGBaselineParameters implements codec.Parameters
var _ codec.Parameters = (*JPEGBaselineParameters)(nil)

// JPEGBaselineParameters contains parameters for JPEG Baseline compression
type JPEGBaselineParameters struct {
	// Quality controls the JPEG compression quality (0-100)
	// - 100: Best quality, minimal compression
	// - 85:  High quality (default)
	// - 75:  Medium quality, good balance
	// - 50:  Lower quality, higher compression
	// - 0:   Lowest quality, same tables as 1
	Quality int

	// Subsampling applies to RGB frames; grayscale ignores it
	Subsampling Subsampling

	// OptimizeHuffman enables per-frame optimal Huffman tables
	OptimizeHuffman bool

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewBaselineParameters creates a new JPEGBaselineParameters with default values
func NewBaselineParameters() *JPEGBaselineParameters {
	return &JPEGBaselineParameters{
		Quality:     DefaultQuality,
		Subsampling: Subsampling420,
		params:      make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *JPEGBaselineParameters) GetParameter(name string) interface{} {
	switch name {
	case "quality":
		return p.Quality
	case "subsampling":
		return p.Subsampling.String()
	case "optimizeHuffman":
		return p.OptimizeHuffman
	default:
		// Check custom parameters
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters).
// Values of the wrong type are ignored.
func (p *JPEGBaselineParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "quality":
		if v, ok := value.(int); ok {
			p.Quality = v
		}
	case "subsampling":
		switch v := value.(type) {
		case Subsampling:
			p.Subsampling = v
		case string:
			if s, err := ParseSubsampling(v); err == nil {
				p.Subsampling = s
			}
		}
	case "optimizeHuffman":
		if v, ok := value.(bool); ok {
			p.OptimizeHuffman = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *JPEGBaselineParameters) Validate() error {
	if p.Quality < 0 || p.Quality > 100 {
		return fmt.Errorf("%w: %w: %d", common.ErrConfig, common.ErrInvalidQuality, p.Quality)
	}
	if _, ok := subsamplingNames[p.Subsampling]; !ok {
		return fmt.Errorf("%w: unknown subsampling %d", common.ErrConfig, int(p.Subsampling))
	}
	return nil
}

// WithQuality sets the quality and returns the parameters for chaining
func (p *JPEGBaselineParameters) WithQuality(quality int) *JPEGBaselineParameters {
	p.Quality = quality
	return p
}

// WithSubsampling sets the chroma subsampling and returns the parameters for chaining
func (p *JPEGBaselineParameters) WithSubsampling(s Subsampling) *JPEGBaselineParameters {
	p.Subsampling = s
	return p
}

// WithOptimizeHuffman enables or disables optimal Huffman tables
func (p *JPEGBaselineParameters) WithOptimizeHuffman(on bool) *JPEGBaselineParameters {
	p.OptimizeHuffman = on
	return p
}

// options maps the parameters to encoder options
func (p *JPEGBaselineParameters) options() *Options {
	opts := DefaultOptions()
	opts.Quality = p.Quality
	opts.Subsampling = p.Subsampling
	opts.OptimizeHuffman = p.OptimizeHuffman
	return opts
}
