package baseline

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-jpeg-baseline/codec"
)

const (
	codecName = "jpeg-baseline"
	codecUID  = "1.2.840.10008.1.2.4.50"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements the codec.Codec interface for JPEG Baseline
type Codec struct {
	defaults *Options
}

// NewCodec creates a new JPEG Baseline codec using DefaultOptions
func NewCodec() *Codec {
	return &Codec{defaults: DefaultOptions()}
}

// Encode compresses frame. opts may be *Options, *codec.QualityOptions or
// nil for the codec defaults.
func (c *Codec) Encode(frame codec.Frame, opts codec.Options) ([]byte, error) {
	if frame.Bits() != 8 {
		return nil, fmt.Errorf("%w: %d-bit samples (baseline is 8-bit)", codec.ErrUnsupportedFormat, frame.BitDepth)
	}

	encOpts := *c.defaults
	switch o := opts.(type) {
	case nil:
	case *Options:
		if o != nil {
			encOpts = *o
		}
	case *codec.QualityOptions:
		if err := o.Validate(); err != nil {
			return nil, err
		}
		encOpts.Quality = o.Quality
	default:
		return nil, fmt.Errorf("%w: options of type %T", codec.ErrInvalidParameter, opts)
	}

	src, err := NewRawSource(frame.Pixels, frame.Width, frame.Height, frame.Components)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodeTo(&buf, src, &encOpts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes a JPEG Baseline frame into interleaved samples
func (c *Codec) Decode(data []byte) (codec.Frame, error) {
	pixels, width, height, components, err := Decode(data)
	if err != nil {
		return codec.Frame{}, err
	}
	return codec.Frame{
		Pixels:     pixels,
		Width:      width,
		Height:     height,
		Components: components,
		BitDepth:   8,
	}, nil
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline
func (c *Codec) UID() string {
	return codecUID
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return codecName
}

func init() {
	if err := codec.Register(NewCodec()); err != nil {
		panic(err)
	}
}
