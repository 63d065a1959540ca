package mjpeg

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/bluenviron/gortsplib/v5/pkg/description"
	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	medias []*description.Media
	pkts   []*rtp.Packet
	err    error
}

func (r *fakeRecorder) WritePacketRTP(medi *description.Media, pkt *rtp.Packet) error {
	if r.err != nil {
		return r.err
	}
	r.medias = append(r.medias, medi)
	r.pkts = append(r.pkts, pkt)
	return nil
}

func newTestPublisher(t *testing.T, rec *fakeRecorder, logger *slog.Logger) *Publisher {
	t.Helper()
	packetizer, err := NewPacketizer(fixedConfig())
	require.NoError(t, err)
	return newPublisher(rec, sessionFor(packetizer.Format()), packetizer, logger)
}

func TestPublisherWritesFrames(t *testing.T) {
	rec := &fakeRecorder{}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := newTestPublisher(t, rec, logger)

	frame := encodeFrame(t, 64, 64, 3, FrameOptions(80))
	require.NoError(t, p.WriteFrameAt(frame, 0))
	n := len(rec.pkts)
	require.NoError(t, p.WriteFrameAt(frame, 100*time.Millisecond))

	assert.Equal(t, 2, p.Frames())
	require.Len(t, rec.pkts, 2*n)
	for _, m := range rec.medias {
		assert.Same(t, p.desc.Medias[0], m)
	}
	assert.Equal(t, rec.pkts[0].Timestamp+9000, rec.pkts[n].Timestamp)
	assert.Equal(t, description.MediaTypeVideo, p.desc.Medias[0].Type)

	assert.Contains(t, logs.String(), "mjpeg frame published")
	assert.Contains(t, logs.String(), "frame=2")
}

func TestPublisherWriteFrameClock(t *testing.T) {
	rec := &fakeRecorder{}
	p := newTestPublisher(t, rec, nil)

	frame := encodeFrame(t, 32, 32, 3, FrameOptions(80))
	require.NoError(t, p.WriteFrame(frame))
	assert.Equal(t, uint32(1000), rec.pkts[0].Timestamp, "first frame is at zero")
	require.NoError(t, p.WriteFrame(frame))
	assert.GreaterOrEqual(t, rec.pkts[len(rec.pkts)-1].Timestamp, uint32(1000))
}

func TestPublisherErrors(t *testing.T) {
	rec := &fakeRecorder{}
	p := newTestPublisher(t, rec, nil)

	gray := encodeFrame(t, 32, 32, 1, FrameOptions(80))
	require.ErrorIs(t, p.WriteFrameAt(gray, 0), ErrUnsupportedFrame)
	assert.Empty(t, rec.pkts)
	assert.Zero(t, p.Frames())

	errBroken := errors.New("broken pipe")
	rec.err = errBroken
	frame := encodeFrame(t, 32, 32, 3, FrameOptions(80))
	require.ErrorIs(t, p.WriteFrameAt(frame, 0), errBroken)
	assert.Zero(t, p.Frames())

	closed := 0
	p.closeFn = func() { closed++ }
	p.Close()
	p.Close()
	assert.Equal(t, 1, closed)
	require.ErrorIs(t, p.WriteFrame(frame), ErrClosed)
	require.ErrorIs(t, p.WriteFrameAt(frame, 0), ErrClosed)
}

func TestPublishUnreachable(t *testing.T) {
	_, err := Publish("rtsp://127.0.0.1:1/stream", nil)
	require.Error(t, err)
}
