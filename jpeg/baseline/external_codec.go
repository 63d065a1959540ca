package baseline

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

var _ codec.Codec = (*BaselineCodec)(nil)

// BaselineCodec implements the go-dicom codec.Codec interface for
// JPEG Baseline (Process 1), Transfer Syntax UID 1.2.840.10008.1.2.4.50.
type BaselineCodec struct {
	transferSyntax *transfer.Syntax
	quality        int
}

// NewBaselineCodec creates a new JPEG Baseline codec with a default quality
func NewBaselineCodec(quality int) *BaselineCodec {
	return &BaselineCodec{
		transferSyntax: transfer.JPEGBaseline8Bit,
		quality:        quality,
	}
}

// Name returns the codec name
func (c *BaselineCodec) Name() string {
	return fmt.Sprintf("JPEG Baseline (Quality %d)", c.quality)
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *BaselineCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *BaselineCodec) GetDefaultParameters() codec.Parameters {
	return NewBaselineParameters().WithQuality(c.quality)
}

// Encode encodes every frame of oldPixelData into newPixelData
func (c *BaselineCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	frameInfo, err := validateFrames(oldPixelData, newPixelData)
	if err != nil {
		return err
	}
	if frameInfo.BitsAllocated != 8 || frameInfo.BitsStored == 0 || frameInfo.BitsStored > 8 {
		return fmt.Errorf("%w: JPEG Baseline needs 8-bit samples, got BitsAllocated=%d BitsStored=%d",
			common.ErrConfig, frameInfo.BitsAllocated, frameInfo.BitsStored)
	}

	baselineParams := c.extractParameters(parameters)
	if err := baselineParams.Validate(); err != nil {
		return fmt.Errorf("invalid JPEG Baseline parameters: %w", err)
	}
	opts := baselineParams.options()

	width := int(frameInfo.Width)
	height := int(frameInfo.Height)
	components := int(frameInfo.SamplesPerPixel)
	signed := frameInfo.PixelRepresentation != 0

	for frameIndex := 0; frameIndex < oldPixelData.FrameCount(); frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		// JPEG samples are unsigned; shift signed data up by half the range
		if signed {
			shifted := make([]byte, len(frameData))
			copy(shifted, frameData)
			common.ConvertSignedToUnsigned8(shifted, int(frameInfo.BitsStored))
			frameData = shifted
		}

		var src PixelSource
		if frameInfo.PlanarConfiguration == 1 && components > 1 {
			src, err = NewPlanarSource(frameData, width, height, components)
		} else {
			src, err = NewRawSource(frameData, width, height, components)
		}
		if err != nil {
			return fmt.Errorf("JPEG Baseline encode failed for frame %d: %w", frameIndex, err)
		}

		var buf bytes.Buffer
		if err := EncodeTo(&buf, src, opts); err != nil {
			return fmt.Errorf("JPEG Baseline encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

func (c *BaselineCodec) extractParameters(parameters codec.Parameters) *JPEGBaselineParameters {
	if parameters == nil {
		return NewBaselineParameters().WithQuality(c.quality)
	}
	if bp, ok := parameters.(*JPEGBaselineParameters); ok {
		return bp
	}

	// Fallback: read known names from generic parameters
	bp := NewBaselineParameters().WithQuality(c.quality)
	for _, name := range []string{"quality", "subsampling", "optimizeHuffman"} {
		if v := parameters.GetParameter(name); v != nil {
			bp.SetParameter(name, v)
		}
	}
	return bp
}

// Decode decodes every JPEG Baseline frame of oldPixelData into
// interleaved native samples in newPixelData.
func (c *BaselineCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, _ codec.Parameters) error {
	frameInfo, err := validateFrames(oldPixelData, newPixelData)
	if err != nil {
		return err
	}

	for frameIndex := 0; frameIndex < oldPixelData.FrameCount(); frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		pixelData, width, height, components, err := Decode(frameData)
		if err != nil {
			return fmt.Errorf("JPEG Baseline decode failed for frame %d: %w", frameIndex, err)
		}

		// Verify dimensions match
		if width != int(frameInfo.Width) || height != int(frameInfo.Height) {
			return fmt.Errorf("decoded dimensions (%dx%d) don't match expected (%dx%d)",
				width, height, frameInfo.Width, frameInfo.Height)
		}
		if components != int(frameInfo.SamplesPerPixel) {
			return fmt.Errorf("decoded components (%d) don't match expected (%d)",
				components, frameInfo.SamplesPerPixel)
		}

		if frameInfo.PixelRepresentation != 0 {
			common.ConvertUnsignedToSigned8(pixelData, int(frameInfo.BitsStored))
		}

		if err := newPixelData.AddFrame(pixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

func validateFrames(oldPixelData, newPixelData imagetypes.PixelData) (*imagetypes.FrameInfo, error) {
	if oldPixelData == nil || newPixelData == nil {
		return nil, fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return nil, fmt.Errorf("failed to get frame info from source pixel data")
	}
	if oldPixelData.FrameCount() == 0 {
		return nil, fmt.Errorf("source pixel data is empty (no frames)")
	}
	return frameInfo, nil
}

// RegisterBaselineCodec registers the JPEG Baseline codec with the global registry
func RegisterBaselineCodec(quality int) {
	registry := codec.GetGlobalRegistry()
	baselineCodec := NewBaselineCodec(quality)
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, baselineCodec)
}

func init() {
	RegisterBaselineCodec(DefaultQuality)
}
