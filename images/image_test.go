package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(width, height int) *Image {
	img := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestNew(t *testing.T) {
	img := New(4, 3)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Len(t, img.Pix, 4*3*Channels)
	assert.Equal(t, []int{3, 4, 3}, img.Shape())

	empty := New(-1, 5)
	assert.Equal(t, 0, empty.Width)
	assert.Empty(t, empty.Pix)
}

func TestFromBytes(t *testing.T) {
	pix := make([]uint8, 2*2*Channels)
	img, err := FromBytes(2, 2, pix)
	require.NoError(t, err)

	img.Pix[0] = 7
	assert.Equal(t, uint8(7), pix[0], "FromBytes should not copy")

	_, err = FromBytes(2, 3, pix)
	assert.Error(t, err)

	_, err = FromBytes(0, 2, nil)
	assert.Error(t, err)
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.SetNRGBA(10, 20, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetNRGBA(12, 21, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	img := FromImage(src)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, img.RGBAt(0, 0))
	assert.Equal(t, color.RGBA{R: 4, G: 5, B: 6, A: 255}, img.RGBAt(2, 1))
}

func TestFromImageGenericPath(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(1, 0, color.Gray{Y: 200})

	img := FromImage(src)
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAt(0, 0))
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, img.RGBAt(1, 0))
}

func TestFromImageTranslucentRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	// Half-transparent red, premultiplied.
	src.SetRGBA(0, 0, color.RGBA{R: 64, A: 128})
	src.SetRGBA(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img := FromImage(src)
	assert.Equal(t, color.RGBA{R: 127, A: 255}, img.RGBAt(0, 0))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.RGBAt(1, 0))
}

func TestFromImageOpaqueRGBA(t *testing.T) {
	want := gradient(5, 4)
	assert.Equal(t, want.Pix, FromImage(want.ToRGBA()).Pix)
}

func TestToRGBARoundTrip(t *testing.T) {
	src := gradient(16, 9)
	back := FromImage(src.ToRGBA())
	assert.Equal(t, src.Pix, back.Pix)
}

func TestCloneIsDeep(t *testing.T) {
	src := gradient(3, 3)
	dup := src.Clone()
	require.True(t, src.SameShape(dup))

	dup.Pix[0] = 99
	assert.NotEqual(t, src.Pix[0], dup.Pix[0])
}

func TestSameShape(t *testing.T) {
	assert.True(t, New(3, 2).SameShape(New(3, 2)))
	assert.False(t, New(3, 2).SameShape(New(2, 3)))
	assert.False(t, New(3, 2).SameShape(nil))
}

func TestTensorSharesBuffer(t *testing.T) {
	img := gradient(5, 4)
	tt := img.Tensor()

	assert.Equal(t, []int{4, 5, 3}, []int(tt.Shape()))

	v, err := tt.At(2, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), v, "G channel holds the row index")

	require.NoError(t, tt.SetAt(uint8(42), 0, 0, 0))
	assert.Equal(t, uint8(42), img.Pix[0])
}

func TestComputeChecksum(t *testing.T) {
	a := gradient(8, 8)
	b := a.Clone()
	assert.Equal(t, ComputeChecksum(a), ComputeChecksum(b))

	b.Pix[10]++
	assert.NotEqual(t, ComputeChecksum(a), ComputeChecksum(b))

	assert.Equal(t, "empty", ComputeChecksum(nil))
	assert.Equal(t, "empty", ComputeChecksum(New(0, 0)))
}
