// Command jpegenc encodes an image file as a baseline JPEG. The encoded
// frame can also be published to an RTSP server as an M-JPEG stream.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cocosip/go-jpeg-baseline/jpeg/baseline"
	"github.com/cocosip/go-jpeg-baseline/mjpeg"
)

// frameInterval paces frames sent to an RTSP server
const frameInterval = 200 * time.Millisecond

type config struct {
	in          string
	out         string
	quality     int
	subsampling string
	optimize    bool
	comment     string
	rtspURL     string
	frames      int
	verbose     bool
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "jpegenc: %s\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	var cfg config
	fs := flag.NewFlagSet("jpegenc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.in, "i", "", "Input image file path (png, gif or jpeg)")
	fs.StringVar(&cfg.out, "o", "", "Output JPEG file path")
	fs.IntVar(&cfg.quality, "q", baseline.DefaultQuality, "Quality 0-100")
	fs.StringVar(&cfg.subsampling, "subsampling", "420", "Chroma subsampling: 444, 422, 420, 440 or 411")
	fs.BoolVar(&cfg.optimize, "optimize", false, "Compute optimal Huffman tables")
	fs.StringVar(&cfg.comment, "comment", "", "Text for a COM segment")
	fs.StringVar(&cfg.rtspURL, "rtsp", "", "Publish the frame to this RTSP URL as M-JPEG")
	fs.IntVar(&cfg.frames, "frames", 25, "Number of frames to publish with -rtsp")
	fs.BoolVar(&cfg.verbose, "v", false, "Debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.in == "" || (cfg.out == "" && cfg.rtspURL == "") {
		fs.Usage()
		return nil, errors.New("an input and an output file or RTSP URL must be specified")
	}
	if cfg.frames < 1 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.frames)
	}
	return &cfg, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := baseline.DefaultOptions()
	opts.Quality = cfg.quality
	opts.OptimizeHuffman = cfg.optimize
	opts.Comment = cfg.comment
	opts.Logger = logger
	if opts.Subsampling, err = baseline.ParseSubsampling(cfg.subsampling); err != nil {
		return err
	}

	img, err := readImage(cfg.in)
	if err != nil {
		return err
	}

	var frame bytes.Buffer
	if err := baseline.EncodeImage(&frame, img, opts); err != nil {
		return fmt.Errorf("encode %s: %w", cfg.in, err)
	}
	logger.Info("encoded",
		slog.String("input", cfg.in),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()),
		slog.Int("bytes", frame.Len()))

	if cfg.out != "" {
		if err := os.WriteFile(cfg.out, frame.Bytes(), 0o644); err != nil {
			return err
		}
	}
	if cfg.rtspURL != "" {
		return publish(cfg, frame.Bytes(), logger)
	}
	return nil
}

func readImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// publish sends the same frame cfg.frames times at a fixed rate
func publish(cfg *config, frame []byte, logger *slog.Logger) error {
	if err := mjpeg.CheckFrame(frame); err != nil {
		return fmt.Errorf("%w (use an RGB image with -subsampling 420 or 422 and no -optimize)", err)
	}

	p, err := mjpeg.Publish(cfg.rtspURL, logger)
	if err != nil {
		return fmt.Errorf("connect %s: %w", cfg.rtspURL, err)
	}
	defer p.Close()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for i := 0; i < cfg.frames; i++ {
		if err := p.WriteFrameAt(frame, time.Duration(i)*frameInterval); err != nil {
			return err
		}
		<-ticker.C
	}
	logger.Info("published", slog.String("url", cfg.rtspURL), slog.Int("frames", p.Frames()))
	return nil
}
