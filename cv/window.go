package cv

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/posterize/images"
)

// Window shows the original and posterized images side by side in a native
// OpenCV window and blocks until a key is pressed.
type Window struct {
	// Title of the native window.
	Title string
	// Options controls the composed canvas.
	Options images.ComposeOptions
}

// NewWindow creates a renderer with the default two-panel layout.
func NewWindow(title string) *Window {
	return &Window{Title: title, Options: images.DefaultComposeOptions()}
}

// Canvas composes the two titled panels without opening a window.
func (w *Window) Canvas(original, posterized *images.Image) (*image.RGBA, error) {
	return images.Compose([]images.Panel{
		{Title: "Original", Image: original},
		{Title: "Posterized", Image: posterized},
	}, w.Options)
}

// Render displays the canvas and waits for a key press before closing the window.
func (w *Window) Render(original, posterized *images.Image) error {
	canvas, err := w.Canvas(original, posterized)
	if err != nil {
		return errors.Wrap(err, "failed to compose results")
	}

	// ImageToMatRGB produces the BGR layout imshow expects.
	mat, err := gocv.ImageToMatRGB(canvas)
	if err != nil {
		return errors.Wrap(err, "failed to convert canvas")
	}
	defer mat.Close()

	window := gocv.NewWindow(w.Title)
	defer window.Close()

	window.IMShow(mat)
	window.WaitKey(0)
	return nil
}
