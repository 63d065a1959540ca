package mjpeg

import (
	"bytes"
	"testing"
	"time"

	"github.com/garyhouston/jpegsegs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedConfig() PacketizerConfig {
	ssrc := uint32(0x1234ABCD)
	seq := uint16(65530)
	ts := uint32(1000)
	return PacketizerConfig{
		SSRC:                  &ssrc,
		InitialSequenceNumber: &seq,
		InitialTimestamp:      &ts,
		PayloadMaxSize:        400,
	}
}

func TestPacketize(t *testing.T) {
	frame := encodeFrame(t, 128, 96, 3, FrameOptions(90))

	p, err := NewPacketizer(fixedConfig())
	require.NoError(t, err)
	assert.Equal(t, 90000, p.Format().ClockRate())

	pkts, err := p.Packetize(frame, 500*time.Millisecond)
	require.NoError(t, err)
	require.Greater(t, len(pkts), 1)

	// Entropy-coded data after the SOS header, EOI included
	reader := bytes.NewReader(frame)
	scanner, err := jpegsegs.NewScanner(reader)
	require.NoError(t, err)
	_, err = jpegsegs.ReadSegments(scanner)
	require.NoError(t, err)
	scanLen := reader.Len()

	offset := 0
	for i, pkt := range pkts {
		assert.Equal(t, uint8(26), pkt.PayloadType)
		assert.Equal(t, uint32(0x1234ABCD), pkt.SSRC)
		assert.Equal(t, uint16(65530)+uint16(i), pkt.SequenceNumber, "sequence wraps")
		assert.Equal(t, uint32(1000+45000), pkt.Timestamp)
		assert.Equal(t, i == len(pkts)-1, pkt.Marker)
		assert.LessOrEqual(t, len(pkt.Payload), 400)

		payload := pkt.Payload
		fragOffset := int(payload[1])<<16 | int(payload[2])<<8 | int(payload[3])
		assert.Equal(t, offset, fragOffset)
		assert.Equal(t, byte(1), payload[4], "type 1 is 4:2:0")
		assert.Equal(t, byte(128/8), payload[6])
		assert.Equal(t, byte(96/8), payload[7])

		header := 8
		if i == 0 {
			// Quantization table header with two 64-byte tables
			assert.Equal(t, byte(255), payload[5])
			header += 4 + 128
		}
		offset += len(payload) - header
	}
	assert.Equal(t, scanLen, offset)
}

func TestPacketizeSequenceContinues(t *testing.T) {
	frame := encodeFrame(t, 32, 16, 3, FrameOptions(75))

	p, err := NewPacketizer(fixedConfig())
	require.NoError(t, err)

	first, err := p.Packetize(frame, 0)
	require.NoError(t, err)
	second, err := p.Packetize(frame, time.Second)
	require.NoError(t, err)

	last := first[len(first)-1]
	assert.Equal(t, last.SequenceNumber+1, second[0].SequenceNumber)
	assert.Equal(t, uint32(1000), first[0].Timestamp)
	assert.Equal(t, uint32(91000), second[0].Timestamp)
}

func TestPacketizeRejects(t *testing.T) {
	p, err := NewPacketizer(PacketizerConfig{})
	require.NoError(t, err)

	gray := encodeFrame(t, 32, 32, 1, FrameOptions(75))
	_, err = p.Packetize(gray, 0)
	require.ErrorIs(t, err, ErrUnsupportedFrame)
}

func TestMultiplyAndDivide(t *testing.T) {
	assert.Equal(t, int64(90000), multiplyAndDivide(int64(time.Second), 90000, int64(time.Second)))
	assert.Equal(t, int64(9000), multiplyAndDivide(int64(time.Second/10), 90000, int64(time.Second)))
	assert.Equal(t, int64(2999), multiplyAndDivide(int64(time.Second/30), 90000, int64(time.Second)), "truncates")

	// Ten days of nanoseconds times the clock rate overflows int64
	tenDays := int64(240 * time.Hour)
	assert.Equal(t, int64(240*3600*90000), multiplyAndDivide(tenDays, 90000, int64(time.Second)))
}
