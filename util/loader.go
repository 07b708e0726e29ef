package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// SupportedImageExtensions lists the file extensions the decoders handle.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".webp"}

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// IsSupportedImage reports whether path carries one of the supported image
// extensions. The comparison is case-insensitive.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadImageFile reads a single image file into memory.
//
// Arguments:
// - path: Path to the image file.
//
// Returns:
// - ImageFile: The path and raw bytes of the file.
// - error: Error if the extension is unsupported, the path is a directory,
// the file cannot be read or is empty.
func ReadImageFile(path string) (ImageFile, error) {
	if !IsSupportedImage(path) {
		return ImageFile{}, errors.Errorf("unsupported image extension %q", filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return ImageFile{}, errors.Wrap(err, "stat image file")
	}
	if info.IsDir() {
		return ImageFile{}, errors.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, errors.Wrap(err, "read image file")
	}
	if len(data) == 0 {
		return ImageFile{}, errors.Errorf("%s is empty", path)
	}

	return ImageFile{Path: path, Data: data}, nil
}
