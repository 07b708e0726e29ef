package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// Helper functions to create test data for different formats
func getJPEGBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, getTestImage(), nil)
	require.NoError(t, err)
	return buf.Bytes()
}

func getPNGBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := png.Encode(&buf, getTestImage())
	require.NoError(t, err)
	return buf.Bytes()
}

func getWebPBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := webp.Encode(&buf, getTestImage(), &webp.Options{Lossless: true})
	require.NoError(t, err)
	return buf.Bytes()
}

func getBMPBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := bmp.Encode(&buf, getTestImage())
	require.NoError(t, err)
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format ImageFormat
		data   func(*testing.T) []byte
	}{
		{name: "JPEG", format: FormatJPEG, data: getJPEGBytes},
		{name: "PNG", format: FormatPNG, data: getPNGBytes},
		{name: "WebP", format: FormatWebP, data: getWebPBytes},
		{name: "BMP", format: FormatBMP, data: getBMPBytes},
		{name: "detected", format: FormatUnknown, data: getPNGBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(Encoded{Format: tt.format, Data: tt.data(t)})
			require.NoError(t, err)
			assert.Equal(t, 100, img.Bounds().Dx())
			assert.Equal(t, 100, img.Bounds().Dy())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(Encoded{Format: FormatJPEG})
	assert.Error(t, err, "empty data")

	_, err = Decode(Encoded{Format: FormatPNG, Data: []byte("not a png")})
	assert.Error(t, err, "corrupt data")

	_, err = Decode(Encoded{Path: "notes.txt", Data: []byte("plain text")})
	assert.Error(t, err, "unknown format")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		data func(*testing.T) []byte
	}{
		{name: "JPEG", file: "cat.jpg", data: getJPEGBytes},
		{name: "PNG", file: "cat.png", data: getPNGBytes},
		{name: "WebP", file: "cat.webp", data: getWebPBytes},
		{name: "BMP", file: "cat.bmp", data: getBMPBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.data(t))

			img, err := Load(path, image.Pt(220, 300))
			require.NoError(t, err)
			assert.Equal(t, []int{300, 220, Channels}, img.Shape())

			// The fixture is pure red; lossy codecs stay close.
			c := img.RGBAt(110, 150)
			assert.InDelta(t, 255, int(c.R), 8)
			assert.InDelta(t, 0, int(c.G), 8)
			assert.InDelta(t, 0, int(c.B), 8)
		})
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(*testing.T) string
		size image.Point
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.jpg") },
			size: image.Pt(10, 10),
		},
		{
			name: "corrupt file",
			path: func(t *testing.T) string { return writeTemp(t, "broken.jpg", []byte("not a jpeg")) },
			size: image.Pt(10, 10),
		},
		{
			name: "unsupported extension",
			path: func(t *testing.T) string { return writeTemp(t, "clip.mp4", []byte{0, 1, 2}) },
			size: image.Pt(10, 10),
		},
		{
			name: "invalid size",
			path: func(t *testing.T) string { return writeTemp(t, "cat.png", getPNGBytes(t)) },
			size: image.Pt(0, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			img, err := Load(path, tt.size)
			require.Error(t, err)
			assert.Nil(t, img)
			assert.True(t, errors.Is(err, ErrLoad), "error should match ErrLoad: %v", err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestFileLoader(t *testing.T) {
	path := writeTemp(t, "cat.png", getPNGBytes(t))

	img, err := FileLoader{}.Load(path, image.Pt(20, 10))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Width)
	assert.Equal(t, 10, img.Height)
}
