package cv

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/posterize/images"
)

// Loader reads images with OpenCV's codecs.
type Loader struct{}

// Load reads path as a BGR colour image, resizes it to size with bilinear
// interpolation and converts it to RGB.
//
// Arguments:
//   - path: Any file OpenCV's imread can decode.
//   - size: Target width (X) and height (Y).
//
// Returns:
//   - *images.Image: The RGB image.
//   - error: images.ErrLoad wrapped with the cause.
func (Loader) Load(path string, size image.Point) (*images.Image, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, images.NewLoadError(path, errors.Errorf("invalid dimensions: width=%d, height=%d", size.X, size.Y))
	}

	bgr := gocv.IMRead(path, gocv.IMReadColor)
	defer bgr.Close()
	if bgr.Empty() {
		return nil, images.NewLoadError(path, errors.New("imread returned an empty image"))
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(bgr, &resized, size, 0, 0, gocv.InterpolationLinear)

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(resized, &rgb, gocv.ColorBGRToRGB)

	img, err := MatToImage(rgb)
	if err != nil {
		return nil, images.NewLoadError(path, err)
	}
	return img, nil
}
