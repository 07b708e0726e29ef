package images

import (
	"bytes"
	"path/filepath"
	"strings"
)

// ImageFormat represents supported image formats
type ImageFormat string

// ImageFormat constants
const (
	// FormatUnknown is returned when neither the header nor the extension match.
	FormatUnknown ImageFormat = ""
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
	// FormatBMP is the Windows bitmap format.
	FormatBMP ImageFormat = "bmp"
)

var (
	magicJPEG = []byte{0xff, 0xd8, 0xff}
	magicPNG  = []byte("\x89PNG\r\n\x1a\n")
	magicBMP  = []byte("BM")
	magicRIFF = []byte("RIFF")
	magicWEBP = []byte("WEBP")
)

// Encoded is an undecoded image file held in memory.
type Encoded struct {
	// Path the bytes were read from, used for error messages only.
	Path string
	// The format of the image.
	Format ImageFormat
	// The data of the image.
	Data []byte
}

// DetectFormat identifies the image format from the leading bytes of data,
// falling back to the extension of path when the header is not recognised.
func DetectFormat(data []byte, path string) ImageFormat {
	switch {
	case bytes.HasPrefix(data, magicJPEG):
		return FormatJPEG
	case bytes.HasPrefix(data, magicPNG):
		return FormatPNG
	case len(data) >= 12 && bytes.Equal(data[0:4], magicRIFF) && bytes.Equal(data[8:12], magicWEBP):
		return FormatWebP
	case bytes.HasPrefix(data, magicBMP):
		return FormatBMP
	}
	return FormatFromExtension(path)
}

// FormatFromExtension maps a file extension to an ImageFormat.
func FormatFromExtension(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".png":
		return FormatPNG
	case ".webp":
		return FormatWebP
	case ".bmp":
		return FormatBMP
	default:
		return FormatUnknown
	}
}
