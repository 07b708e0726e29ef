// Package images - Image definition and conversion utilities for the
// posterization pipeline.
package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Channels is the number of interleaved channels held by an Image (R, G, B).
const Channels = 3

// Image represents a decoded RGB image stored as a height x width x 3 array
// of 8-bit values in row-major (HWC) order.
type Image struct {
	// The width of the image.
	Width int `json:"width" yaml:"width"`
	// The height of the image.
	Height int `json:"height" yaml:"height"`
	// The interleaved R, G, B samples, len(Pix) == Width*Height*Channels.
	Pix []uint8 `json:"-" yaml:"-"`
}

// New allocates a zeroed image of the given dimensions.
//
// Arguments:
//   - width: The width of the image in pixels.
//   - height: The height of the image in pixels.
//
// Returns:
//   - *Image: The allocated image.
func New(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// FromBytes wraps an existing HWC RGB buffer without copying it.
//
// Arguments:
//   - width: The width of the image in pixels.
//   - height: The height of the image in pixels.
//   - pix: The interleaved RGB samples.
//
// Returns:
//   - *Image: The image backed by pix.
//   - error: An error if the buffer length does not match the dimensions.
func FromBytes(width, height int, pix []uint8) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}
	if want := width * height * Channels; len(pix) != want {
		return nil, errors.Errorf("buffer holds %d bytes, %dx%dx%d needs %d", len(pix), width, height, Channels, want)
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any image.Image into an RGB Image, dropping alpha.
// The result always starts at the origin regardless of src.Bounds().Min.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy())

	// Fast paths for the layouts the decoders produce most often. RGBA is
	// premultiplied, so only an opaque one can be copied as is.
	switch s := src.(type) {
	case *image.RGBA:
		if !s.Opaque() {
			break
		}
		for y := 0; y < dst.Height; y++ {
			row := s.Pix[y*s.Stride:]
			for x := 0; x < dst.Width; x++ {
				o := dst.Offset(x, y)
				copy(dst.Pix[o:o+Channels], row[x*4:x*4+Channels])
			}
		}
		return dst
	case *image.NRGBA:
		for y := 0; y < dst.Height; y++ {
			row := s.Pix[y*s.Stride:]
			for x := 0; x < dst.Width; x++ {
				o := dst.Offset(x, y)
				copy(dst.Pix[o:o+Channels], row[x*4:x*4+Channels])
			}
		}
		return dst
	}

	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			o := dst.Offset(x, y)
			dst.Pix[o+0] = c.R
			dst.Pix[o+1] = c.G
			dst.Pix[o+2] = c.B
		}
	}
	return dst
}

// Offset returns the index of the first channel of pixel (x, y) in Pix.
func (m *Image) Offset(x, y int) int {
	return (y*m.Width + x) * Channels
}

// RGBAt returns the pixel at (x, y).
func (m *Image) RGBAt(x, y int) color.RGBA {
	o := m.Offset(x, y)
	return color.RGBA{R: m.Pix[o], G: m.Pix[o+1], B: m.Pix[o+2], A: 0xff}
}

// SetRGB sets the pixel at (x, y).
func (m *Image) SetRGB(x, y int, c color.RGBA) {
	o := m.Offset(x, y)
	m.Pix[o+0] = c.R
	m.Pix[o+1] = c.G
	m.Pix[o+2] = c.B
}

// Bounds returns the image rectangle anchored at the origin.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// Shape returns the array shape as [height, width, channels].
func (m *Image) Shape() []int {
	return []int{m.Height, m.Width, Channels}
}

// SameShape reports whether m and other have identical dimensions.
func (m *Image) SameShape(other *Image) bool {
	return other != nil && m.Width == other.Width && m.Height == other.Height && len(m.Pix) == len(other.Pix)
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// ToRGBA renders the image into an opaque *image.RGBA.
func (m *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(m.Bounds())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			o := m.Offset(x, y)
			d := dst.PixOffset(x, y)
			dst.Pix[d+0] = m.Pix[o+0]
			dst.Pix[d+1] = m.Pix[o+1]
			dst.Pix[d+2] = m.Pix[o+2]
			dst.Pix[d+3] = 0xff
		}
	}
	return dst
}

// Tensor returns a [height, width, channels] uint8 tensor view sharing Pix.
// Writes through the tensor are visible in the image and vice versa.
func (m *Image) Tensor() *tensor.Dense {
	return tensor.New(
		tensor.WithShape(m.Height, m.Width, Channels),
		tensor.WithBacking(m.Pix),
	)
}
