package cv

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/posterize/images"
)

// MedianSmoother blurs images with OpenCV's medianBlur.
type MedianSmoother struct{}

// Smooth applies a ksize x ksize median blur. Even sizes are bumped to the
// next odd size, sizes below 3 return a copy.
func (MedianSmoother) Smooth(img *images.Image, ksize int) (*images.Image, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if ksize%2 == 0 {
		ksize++
	}
	if ksize < 3 {
		return img.Clone(), nil
	}

	src, err := ImageToMat(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.MedianBlur(src, &dst, ksize)

	out, err := MatToImage(dst)
	if err != nil {
		return nil, errors.Wrap(err, "median blur failed")
	}
	return out, nil
}
