package common

import "errors"

// Error kinds returned by the encoder. Callers match them with errors.Is;
// the returned errors carry the details.
var (
	// ErrConfig reports an invalid quality, component count or option.
	ErrConfig = errors.New("invalid encoder configuration")

	// ErrGeometry reports invalid dimensions or sampling factors.
	ErrGeometry = errors.New("invalid image geometry")

	// ErrIO reports a failed write to the output sink.
	ErrIO = errors.New("output write failed")

	// ErrState reports an encoder operation called out of order.
	ErrState = errors.New("encoder used out of order")
)

// Common errors
var (
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrInvalidComponents = errors.New("invalid number of components")
	ErrInvalidQuality    = errors.New("invalid quality factor")
	ErrInvalidDHT        = errors.New("invalid Huffman table")
	ErrSegmentTooLarge   = errors.New("segment payload too large")
	ErrBufferTooSmall    = errors.New("buffer too small")
)
