package mjpeg

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/bluenviron/gortsplib/v5/pkg/format"
	"github.com/bluenviron/gortsplib/v5/pkg/format/rtpmjpeg"
	"github.com/pion/rtp"
)

// PacketizerConfig fixes the random parts of an RTP stream. Zero values
// are replaced with random ones.
type PacketizerConfig struct {
	SSRC                  *uint32
	InitialSequenceNumber *uint16
	InitialTimestamp      *uint32

	// PayloadMaxSize bounds each packet payload, 1460 when zero
	PayloadMaxSize int
}

// Packetizer splits JPEG frames into RTP/M-JPEG packets.
type Packetizer struct {
	format    *format.MJPEG
	enc       *rtpmjpeg.Encoder
	timestamp uint32
}

// NewPacketizer creates a packetizer for one RTP stream.
func NewPacketizer(cfg PacketizerConfig) (*Packetizer, error) {
	enc := &rtpmjpeg.Encoder{
		SSRC:                  cfg.SSRC,
		InitialSequenceNumber: cfg.InitialSequenceNumber,
		PayloadMaxSize:        cfg.PayloadMaxSize,
	}
	if err := enc.Init(); err != nil {
		return nil, err
	}

	p := &Packetizer{format: &format.MJPEG{}, enc: enc}
	if cfg.InitialTimestamp != nil {
		p.timestamp = *cfg.InitialTimestamp
	} else {
		var b [4]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, err
		}
		p.timestamp = binary.BigEndian.Uint32(b[:])
	}
	return p, nil
}

// Format returns the RTSP format of the stream
func (p *Packetizer) Format() *format.MJPEG {
	return p.format
}

// Packetize checks frame and splits it into packets stamped with the
// presentation time pts, relative to the start of the stream.
func (p *Packetizer) Packetize(frame []byte, pts time.Duration) ([]*rtp.Packet, error) {
	if err := CheckFrame(frame); err != nil {
		return nil, err
	}

	pkts, err := p.enc.Encode(frame)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFrame, err)
	}

	ts := p.timestamp + uint32(multiplyAndDivide(int64(pts), int64(p.format.ClockRate()), int64(time.Second)))
	for _, pkt := range pkts {
		pkt.Timestamp = ts
	}
	return pkts, nil
}

// multiplyAndDivide computes v*m/d without overflowing for long streams
func multiplyAndDivide(v, m, d int64) int64 {
	secs := v / d
	dec := v % d
	return secs*m + dec*m/d
}
