// Package cv - OpenCV (gocv) implementations of the pipeline collaborators:
// loading, median smoothing, lookup-table mapping and display.
//
// Every Mat created here is closed by the function that created it, except
// those returned to the caller, who must Close them.
package cv

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/posterize/images"
)

// MatToImage copies an 8-bit, 3-channel Mat into an Image. Channel order is
// preserved; convert BGR Mats with gocv.CvtColor first.
//
// Arguments:
//   - mat: A CV_8UC3 Mat.
//
// Returns:
//   - *images.Image: A copy of the Mat data.
//   - error: An error if the Mat is empty or of another type.
func MatToImage(mat gocv.Mat) (*images.Image, error) {
	if mat.Empty() {
		return nil, errors.New("mat is empty")
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, errors.Errorf("unsupported mat type %v, want CV_8UC3", mat.Type())
	}
	return images.FromBytes(mat.Cols(), mat.Rows(), mat.ToBytes())
}

// ImageToMat copies an Image into a new CV_8UC3 Mat with the same channel
// order. The caller must Close the returned Mat.
func ImageToMat(img *images.Image) (gocv.Mat, error) {
	if img == nil || len(img.Pix) == 0 {
		return gocv.NewMat(), errors.New("image is empty")
	}
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC3, pix)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to create mat")
	}
	return mat, nil
}

// ComputeMatChecksum generates a deterministic checksum for a Mat to verify idempotency.
//
// Arguments:
// - mat: The Mat to compute checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
func ComputeMatChecksum(mat gocv.Mat) string {
	if mat.Empty() {
		return "empty"
	}

	data, _ := mat.DataPtrUint8()
	hash := md5.New()
	hash.Write(data)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
