package mjpeg

import "errors"

var (
	// ErrUnsupportedFrame reports a JPEG frame RFC 2435 cannot carry
	ErrUnsupportedFrame = errors.New("frame cannot be sent as RTP/M-JPEG")

	// ErrClosed reports a write to a closed publisher
	ErrClosed = errors.New("publisher is closed")
)
