package pipeline

import (
	"image"

	"github.com/nvr-ai/posterize/images"
	"github.com/nvr-ai/posterize/posterize"
)

// MockLoader returns a fixed image or error and records its calls.
type MockLoader struct {
	Image *images.Image
	Err   error

	Calls []string
	Sizes []image.Point
}

func (m *MockLoader) Load(path string, size image.Point) (*images.Image, error) {
	m.Calls = append(m.Calls, path)
	m.Sizes = append(m.Sizes, size)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Image, nil
}

// MockSmoother returns a copy of its input, or a configured result.
type MockSmoother struct {
	Result *images.Image
	Err    error

	Kernels []int
}

func (m *MockSmoother) Smooth(img *images.Image, ksize int) (*images.Image, error) {
	m.Kernels = append(m.Kernels, ksize)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return img.Clone(), nil
}

// MockMapper applies the table itself and counts calls, or returns Result/Err.
type MockMapper struct {
	Result *images.Image
	Err    error

	Tables []*posterize.Table
}

func (m *MockMapper) Map(img *images.Image, t *posterize.Table) (*images.Image, error) {
	m.Tables = append(m.Tables, t)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return t.Apply(img)
}

// MockRenderer records what it was asked to show.
type MockRenderer struct {
	Err error

	Originals   []*images.Image
	Posterizeds []*images.Image
}

func (m *MockRenderer) Render(original, posterized *images.Image) error {
	m.Originals = append(m.Originals, original)
	m.Posterizeds = append(m.Posterizeds, posterized)
	return m.Err
}

func testImage(width, height int) *images.Image {
	img := images.New(width, height)
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}
	return img
}
