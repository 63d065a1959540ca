package codec

import "errors"

// Sentinel errors, matched with errors.Is
var (
	ErrCodecNotFound     = errors.New("codec not registered")
	ErrInvalidParameter  = errors.New("invalid codec parameter")
	ErrInvalidQuality    = errors.New("quality outside 0-100")
	ErrUnsupportedFormat = errors.New("sample format not supported by codec")
)
