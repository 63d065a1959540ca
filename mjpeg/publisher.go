package mjpeg

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bluenviron/gortsplib/v5"
	"github.com/bluenviron/gortsplib/v5/pkg/description"
	"github.com/bluenviron/gortsplib/v5/pkg/format"
	"github.com/pion/rtp"
)

// recorder is the part of gortsplib.Client a Publisher writes to
type recorder interface {
	WritePacketRTP(medi *description.Media, pkt *rtp.Packet) error
}

// Publisher announces an M-JPEG stream to an RTSP server and records
// frames to it.
type Publisher struct {
	client     recorder
	closeFn    func()
	desc       *description.Session
	packetizer *Packetizer
	logger     *slog.Logger

	mu     sync.Mutex
	start  time.Time
	frames int
	closed bool
}

// Publish connects to the RTSP server at url, announces an M-JPEG video
// media and starts recording. A nil logger discards debug records.
func Publish(url string, logger *slog.Logger) (*Publisher, error) {
	packetizer, err := NewPacketizer(PacketizerConfig{})
	if err != nil {
		return nil, err
	}
	desc := sessionFor(packetizer.Format())

	c := &gortsplib.Client{}
	if err := c.StartRecording(url, desc); err != nil {
		return nil, err
	}
	p := newPublisher(c, desc, packetizer, logger)
	p.closeFn = func() { c.Close() }
	return p, nil
}

func sessionFor(forma *format.MJPEG) *description.Session {
	return &description.Session{
		Medias: []*description.Media{{
			Type:    description.MediaTypeVideo,
			Formats: []format.Format{forma},
		}},
	}
}

func newPublisher(c recorder, desc *description.Session, packetizer *Packetizer, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{
		client:     c,
		desc:       desc,
		packetizer: packetizer,
		logger:     logger,
	}
}

// WriteFrame sends one JPEG frame. The presentation time is the wall-clock
// time since the first frame.
func (p *Publisher) WriteFrame(frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	now := time.Now()
	if p.frames == 0 {
		p.start = now
	}
	return p.writeLocked(frame, now.Sub(p.start))
}

// WriteFrameAt sends one JPEG frame with an explicit presentation time
func (p *Publisher) WriteFrameAt(frame []byte, pts time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	return p.writeLocked(frame, pts)
}

func (p *Publisher) writeLocked(frame []byte, pts time.Duration) error {
	pkts, err := p.packetizer.Packetize(frame, pts)
	if err != nil {
		return err
	}
	for _, pkt := range pkts {
		if err := p.client.WritePacketRTP(p.desc.Medias[0], pkt); err != nil {
			return err
		}
	}
	p.frames++
	p.logger.Debug("mjpeg frame published",
		slog.Int("frame", p.frames),
		slog.Int("bytes", len(frame)),
		slog.Int("packets", len(pkts)),
		slog.Duration("pts", pts))
	return nil
}

// Frames returns the number of frames sent so far
func (p *Publisher) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Close disconnects from the server. Further writes return ErrClosed.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.closeFn != nil {
		p.closeFn()
	}
}
