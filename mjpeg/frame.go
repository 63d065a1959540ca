// Package mjpeg streams baseline JPEG frames as RTP/M-JPEG (RFC 2435),
// either as packets or published to an RTSP server.
package mjpeg

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/cocosip/go-jpeg-baseline/jpeg/baseline"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/garyhouston/jpegsegs"
)

// maxDimension is the largest width or height the RTP/JPEG header can
// describe (255 blocks of 8 pixels).
const maxDimension = 2040

// FrameOptions returns encoder options whose output can be packetized:
// 4:2:0 sampling with the standard Huffman tables the receiver assumes.
func FrameOptions(quality int) *baseline.Options {
	opts := baseline.DefaultOptions()
	opts.Quality = quality
	opts.Subsampling = baseline.Subsampling420
	opts.OptimizeHuffman = false
	return opts
}

// CheckFrame reports whether frame can be carried by RFC 2435. The payload
// header only describes YCbCr 4:2:2 or 4:2:0 baseline frames with sizes in
// multiples of 8, and receivers rebuild the Huffman tables from Annex K.
func CheckFrame(frame []byte) error {
	scanner, err := jpegsegs.NewScanner(bytes.NewReader(frame))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFrame, err)
	}
	segments, err := jpegsegs.ReadSegments(scanner)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFrame, err)
	}

	var sof []byte
	for _, s := range segments {
		switch s.Marker {
		case jpegsegs.SOF0:
			sof = s.Data
		case jpegsegs.DHT:
			if !isStandardDHT(s.Data) {
				return fmt.Errorf("%w: non-standard Huffman table", ErrUnsupportedFrame)
			}
		}
	}
	if sof == nil {
		return fmt.Errorf("%w: no baseline frame header", ErrUnsupportedFrame)
	}
	return checkFrameHeader(sof)
}

// checkFrameHeader validates an SOF0 payload (without its length field)
func checkFrameHeader(sof []byte) error {
	if len(sof) < 6 {
		return fmt.Errorf("%w: short frame header", ErrUnsupportedFrame)
	}
	height := int(sof[1])<<8 | int(sof[2])
	width := int(sof[3])<<8 | int(sof[4])
	components := int(sof[5])

	if components != 3 || len(sof) < 6+3*components {
		return fmt.Errorf("%w: %d components, need YCbCr", ErrUnsupportedFrame, components)
	}
	if width%8 != 0 || height%8 != 0 {
		return fmt.Errorf("%w: %dx%d is not a multiple of 8", ErrUnsupportedFrame, width, height)
	}
	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrUnsupportedFrame, width, height, maxDimension)
	}

	luma := sof[7]
	if luma != 0x21 && luma != 0x22 {
		return fmt.Errorf("%w: luma sampling %dx%d", ErrUnsupportedFrame, luma>>4, luma&0x0F)
	}
	for c := 1; c < 3; c++ {
		if sof[6+3*c+1] != 0x11 {
			return fmt.Errorf("%w: chroma component %d is subsampled", ErrUnsupportedFrame, c)
		}
	}
	return nil
}

var standardDHT = sync.OnceValue(func() [][]byte {
	var tables [][]byte
	for _, t := range []struct {
		class, id byte
		spec      *common.HuffmanSpec
	}{
		{common.TableClassDC, 0, &common.StandardDCLuminance},
		{common.TableClassAC, 0, &common.StandardACLuminance},
		{common.TableClassDC, 1, &common.StandardDCChrominance},
		{common.TableClassAC, 1, &common.StandardACChrominance},
	} {
		var buf bytes.Buffer
		_ = common.WriteHuffmanTable(common.NewWriter(&buf), t.class, t.id, t.spec)
		// Drop marker and length
		tables = append(tables, buf.Bytes()[4:])
	}
	return tables
})

// isStandardDHT reports whether every table in a DHT payload is one of the
// Annex K.3 tables under its usual identifier.
func isStandardDHT(data []byte) bool {
	std := standardDHT()
	for len(data) > 0 {
		matched := false
		for _, table := range std {
			if bytes.HasPrefix(data, table) {
				data = data[len(table):]
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
