package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ imagetypes.PixelData = (*FrameBuffer)(nil)

// FrameBuffer is an in-memory imagetypes.PixelData holding one byte slice
// per frame. It is the source and destination type used when driving the
// DICOM codec adapters outside of a dataset.
type FrameBuffer struct {
	frames       [][]byte
	frameInfo    *imagetypes.FrameInfo
	encapsulated bool
}

// NewFrameBuffer creates an empty native (uncompressed) frame buffer
func NewFrameBuffer(frameInfo *imagetypes.FrameInfo) *FrameBuffer {
	return &FrameBuffer{frameInfo: frameInfo}
}

// NewEncapsulatedFrameBuffer creates an empty buffer for compressed frames
func NewEncapsulatedFrameBuffer(frameInfo *imagetypes.FrameInfo) *FrameBuffer {
	return &FrameBuffer{frameInfo: frameInfo, encapsulated: true}
}

// GetFrame returns the data of frame frameIndex (0-indexed)
func (p *FrameBuffer) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrInvalidParameter, frameIndex, len(p.frames))
	}
	return p.frames[frameIndex], nil
}

// AddFrame appends a frame
func (p *FrameBuffer) AddFrame(frameData []byte) error {
	p.frames = append(p.frames, frameData)
	return nil
}

// FrameCount returns the number of frames
func (p *FrameBuffer) FrameCount() int {
	return len(p.frames)
}

// GetFrameInfo returns frame metadata for codec operations
func (p *FrameBuffer) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

// IsEncapsulated reports whether the frames hold compressed data
func (p *FrameBuffer) IsEncapsulated() bool {
	return p.encapsulated
}
