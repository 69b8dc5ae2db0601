package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/bingpot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 0x80, A: 0xff})
		}
	}
	return img
}

func TestImageService_DecodeSniffsFormat(t *testing.T) {
	src := testImage(16, 9)

	encoders := map[string]func(*bytes.Buffer) error{
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}

	svc := NewImageService(90)
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))

			img, err := svc.Decode(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, 16, img.Bounds().Dx())
			assert.Equal(t, 9, img.Bounds().Dy())
		})
	}
}

func TestImageService_DecodeRejectsNonImage(t *testing.T) {
	svc := NewImageService(90)

	tests := []struct {
		name string
		data []byte
	}{
		{"html", []byte("<html><body>nope</body></html>")},
		{"empty", nil},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Decode(tt.data)
			assert.ErrorIs(t, err, model.ErrDecode)
		})
	}
}

func TestImageService_SaveJPEGOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "8.jpg")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	svc := NewImageService(75)
	require.NoError(t, svc.SaveJPEG(context.Background(), testImage(32, 32), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestImageService_SaveJPEGFilesystemError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "0.jpg")

	err := NewImageService(90).SaveJPEG(context.Background(), testImage(4, 4), path)
	assert.ErrorIs(t, err, model.ErrFilesystem)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewImageService_QualityBounds(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultJPEGQuality},
		{-5, DefaultJPEGQuality},
		{101, DefaultJPEGQuality},
		{1, 1},
		{100, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewImageService(tt.in).Quality(), "quality %d", tt.in)
	}
}
