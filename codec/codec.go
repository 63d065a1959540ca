// Package codec defines the codec and incremental encoder contracts shared
// by the image codecs in this module, plus a name/UID keyed registry.
package codec

import "fmt"

// Codec compresses whole frames in one call
type Codec interface {
	Name() string

	// UID is the DICOM Transfer Syntax UID the output conforms to
	UID() string

	// Encode compresses frame. opts may be nil for the codec defaults.
	Encode(frame Frame, opts Options) ([]byte, error)

	Decode(data []byte) (Frame, error)
}

// Frame is an uncompressed image with interleaved samples, row-major
type Frame struct {
	Pixels     []byte
	Width      int
	Height     int
	Components int // 1 for grayscale, 3 for RGB
	BitDepth   int // 0 is read as 8
}

// Bits returns the sample precision, defaulting to 8
func (f Frame) Bits() int {
	if f.BitDepth == 0 {
		return 8
	}
	return f.BitDepth
}

// Options are codec specific settings
type Options interface {
	Validate() error
}

// QualityOptions is the setting every lossy codec understands
type QualityOptions struct {
	Quality int // 0-100, higher keeps more detail
}

// Validate checks the quality range
func (o *QualityOptions) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, o.Quality)
	}
	return nil
}
