package posterize

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/posterize/images"
)

// ApplyBytes maps every byte of src through the table into dst. Channels are
// not distinguished: the same table applies to all of them.
func (t *Table) ApplyBytes(dst, src []uint8) error {
	if len(dst) < len(src) {
		return errors.Errorf("destination holds %d bytes, source has %d", len(dst), len(src))
	}
	for i, v := range src {
		dst[i] = t.lut[v]
	}
	return nil
}

// Apply returns a new image of the same shape with every channel value v
// replaced by the table entry for v. The source image is not modified.
//
// Arguments:
//   - src: The image to posterize.
//
// Returns:
//   - *images.Image: The posterized image.
//   - error: An error if src is nil.
func (t *Table) Apply(src *images.Image) (*images.Image, error) {
	if src == nil {
		return nil, errors.New("image is nil")
	}
	dst := images.New(src.Width, src.Height)
	if err := t.ApplyBytes(dst.Pix, src.Pix); err != nil {
		return nil, err
	}
	return dst, nil
}
