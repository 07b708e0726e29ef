package images

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ResizeToImage resizes img to exactly width x height using bilinear
// interpolation, ignoring the source aspect ratio.
//
// Arguments:
//   - img: The decoded source image.
//   - width: The width to resize the image to.
//   - height: The height to resize the image to.
//
// Returns:
//   - image.Image: The resized image.
//   - error: An error if the dimensions are invalid.
func ResizeToImage(img image.Image, width, height int) (image.Image, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}

	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img, nil
	}

	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}

// Resize resizes an RGB Image to width x height.
func Resize(img *Image, width, height int) (*Image, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if img.Width == width && img.Height == height {
		return img.Clone(), nil
	}
	resized, err := ResizeToImage(img.ToRGBA(), width, height)
	if err != nil {
		return nil, err
	}
	return FromImage(resized), nil
}
