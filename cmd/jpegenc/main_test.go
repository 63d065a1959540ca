package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 6), uint8(y * 10), 90, 255})
		}
	}
	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRunEncodesFile(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir)
	out := filepath.Join(dir, "out.jpg")

	var stderr bytes.Buffer
	err := run([]string{"-i", in, "-o", out, "-q", "90", "-subsampling", "4:2:2", "-comment", "test", "-optimize", "-v"}, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 24), img.Bounds())
	assert.Contains(t, stderr.String(), "msg=encoded")
	assert.Contains(t, stderr.String(), "jpeg baseline encode finished")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir)
	out := filepath.Join(dir, "out.jpg")

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"-o", out}},
		{"no output", []string{"-i", in}},
		{"bad subsampling", []string{"-i", in, "-o", out, "-subsampling", "321"}},
		{"bad quality", []string{"-i", in, "-o", out, "-q", "101"}},
		{"missing file", []string{"-i", filepath.Join(dir, "nope.png"), "-o", out}},
		{"zero frames", []string{"-i", in, "-rtsp", "rtsp://127.0.0.1:1/x", "-frames", "0"}},
		{"frame not streamable", []string{"-i", in, "-rtsp", "rtsp://127.0.0.1:1/x", "-subsampling", "444"}},
		{"unknown flag", []string{"-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Error(t, run(tt.args, &stderr))
		})
	}
}
