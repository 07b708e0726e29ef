package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/nvr-ai/posterize/util"
)

// ErrLoad is returned when an image cannot be read, decoded or resized.
var ErrLoad = errors.New("could not read image")

// Decode decodes an encoded image according to its format. An unknown format
// is detected from the data before giving up.
func Decode(enc Encoded) (image.Image, error) {
	if len(enc.Data) == 0 {
		return nil, errors.New("image data is empty")
	}

	format := enc.Format
	if format == FormatUnknown {
		format = DetectFormat(enc.Data, enc.Path)
	}

	r := bytes.NewReader(enc.Data)
	switch format {
	case FormatJPEG:
		img, err := jpeg.Decode(r)
		return img, errors.Wrap(err, "failed to decode JPEG")
	case FormatPNG:
		img, err := png.Decode(r)
		return img, errors.Wrap(err, "failed to decode PNG")
	case FormatWebP:
		img, err := webp.Decode(r)
		return img, errors.Wrap(err, "failed to decode WebP")
	case FormatBMP:
		img, err := bmp.Decode(r)
		return img, errors.Wrap(err, "failed to decode BMP")
	default:
		return nil, errors.Errorf("unsupported image format for %q", enc.Path)
	}
}

// Load reads the image at path, decodes it and resizes it to size.
// Every failure is reported as ErrLoad wrapped with the cause.
//
// Arguments:
//   - path: Path to a .jpg, .jpeg, .png, .bmp or .webp file.
//   - size: Target width (X) and height (Y).
//
// Returns:
//   - *Image: The resized RGB image.
//   - error: ErrLoad wrapped with the underlying cause.
func Load(path string, size image.Point) (*Image, error) {
	file, err := util.ReadImageFile(path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	decoded, err := Decode(Encoded{
		Path:   file.Path,
		Format: DetectFormat(file.Data, file.Path),
		Data:   file.Data,
	})
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	resized, err := ResizeToImage(decoded, size.X, size.Y)
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	return FromImage(resized), nil
}

// FileLoader loads images with the pure-Go decoders.
type FileLoader struct{}

// Load implements the pipeline loader contract using Load.
func (FileLoader) Load(path string, size image.Point) (*Image, error) {
	return Load(path, size)
}

type loadErr struct {
	path  string
	cause error
}

func (e *loadErr) Error() string {
	return ErrLoad.Error() + " '" + e.path + "': " + e.cause.Error()
}

func (e *loadErr) Unwrap() []error { return []error{ErrLoad, e.cause} }

// Cause lets errors.Cause reach the underlying decoder error.
func (e *loadErr) Cause() error { return e.cause }

// NewLoadError wraps cause so that errors.Is(err, ErrLoad) holds.
func NewLoadError(path string, cause error) error {
	return &loadErr{path: path, cause: cause}
}
