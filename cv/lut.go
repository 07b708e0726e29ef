package cv

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/posterize/images"
	"github.com/nvr-ai/posterize/posterize"
)

// TableToMat returns the table as a 1x256 CV_8UC1 Mat suitable for gocv.LUT.
// The caller must Close the returned Mat.
func TableToMat(t *posterize.Table) (gocv.Mat, error) {
	if t == nil {
		return gocv.NewMat(), errors.New("table is nil")
	}
	lut := t.LUT()
	mat, err := gocv.NewMatFromBytes(1, 256, gocv.MatTypeCV8UC1, lut[:])
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to create lut mat")
	}
	return mat, nil
}

// ApplyLUT maps every channel of an 8-bit Mat through t using OpenCV's LUT.
// The result matches posterize.Table.Apply byte for byte. The caller must
// Close the returned Mat.
func ApplyLUT(src gocv.Mat, t *posterize.Table) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), errors.New("mat is empty")
	}
	lut, err := TableToMat(t)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer lut.Close()

	dst := gocv.NewMat()
	gocv.LUT(src, lut, &dst)
	if dst.Empty() {
		dst.Close()
		return gocv.NewMat(), errors.New("lut produced an empty mat")
	}
	return dst, nil
}

// LUTMapper applies tables to images through ApplyLUT.
type LUTMapper struct{}

// Map returns a copy of img with every channel mapped through t.
func (LUTMapper) Map(img *images.Image, t *posterize.Table) (*images.Image, error) {
	src, err := ImageToMat(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := ApplyLUT(src, t)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	return MatToImage(dst)
}
