package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/gift"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Panel is one titled image of a side-by-side composition.
type Panel struct {
	Title string
	Image *Image
}

// ComposeOptions controls the layout produced by Compose.
type ComposeOptions struct {
	// Scale is the integer magnification applied to every panel image.
	Scale int
	// Gap is the horizontal space between panels, in canvas pixels.
	Gap int
	// Margin is the space around the whole canvas. It also holds the tick marks.
	Margin int
	// TickStep is the distance between ticks in source pixels. Zero disables ticks.
	TickStep int
	// TickLength is the length of a tick mark in canvas pixels.
	TickLength int
	// Background fills the canvas.
	Background color.Color
	// Foreground is used for titles and ticks.
	Foreground color.Color
}

// DefaultComposeOptions returns a two-times magnified layout with ticks every
// 50 source pixels.
func DefaultComposeOptions() ComposeOptions {
	return ComposeOptions{
		Scale:      2,
		Gap:        32,
		Margin:     16,
		TickStep:   50,
		TickLength: 4,
		Background: color.White,
		Foreground: color.Black,
	}
}

// Compose lays out panels left to right on a single canvas, each with a
// centred title above it and tick marks along its left and bottom edges.
//
// Arguments:
//   - panels: The titled images to place, in order.
//   - opt: Layout options. Zero values fall back to DefaultComposeOptions.
//
// Returns:
//   - *image.RGBA: The composed canvas.
//   - error: An error if there are no panels or a panel has no image.
func Compose(panels []Panel, opt ComposeOptions) (*image.RGBA, error) {
	if len(panels) == 0 {
		return nil, errors.New("nothing to compose")
	}
	opt = opt.withDefaults()

	face := basicfont.Face7x13
	metrics := face.Metrics()
	titleHeight := metrics.Height.Ceil() + 6

	width := 2*opt.Margin + opt.Gap*(len(panels)-1)
	maxHeight := 0
	for i, p := range panels {
		if p.Image == nil || p.Image.Width == 0 || p.Image.Height == 0 {
			return nil, errors.Errorf("panel %d (%q) has no image", i, p.Title)
		}
		width += p.Image.Width * opt.Scale
		if h := p.Image.Height * opt.Scale; h > maxHeight {
			maxHeight = h
		}
	}
	height := 2*opt.Margin + titleHeight + maxHeight

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)
	ink := image.NewUniform(opt.Foreground)

	x0 := opt.Margin
	y0 := opt.Margin + titleHeight
	for _, p := range panels {
		scaled := scale(p.Image.ToRGBA(), opt.Scale)
		pw, ph := scaled.Bounds().Dx(), scaled.Bounds().Dy()
		draw.Draw(canvas, image.Rect(x0, y0, x0+pw, y0+ph), scaled, scaled.Bounds().Min, draw.Src)

		d := &font.Drawer{Dst: canvas, Src: ink, Face: face}
		tw := d.MeasureString(p.Title).Ceil()
		d.Dot = fixed.P(x0+(pw-tw)/2, opt.Margin+metrics.Ascent.Ceil())
		d.DrawString(p.Title)

		if opt.TickStep > 0 {
			drawTicks(canvas, ink, image.Rect(x0, y0, x0+pw, y0+ph), p.Image.Width, p.Image.Height, opt)
		}
		x0 += pw + opt.Gap
	}

	return canvas, nil
}

func (o ComposeOptions) withDefaults() ComposeOptions {
	def := DefaultComposeOptions()
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.TickLength <= 0 {
		o.TickLength = def.TickLength
	}
	if o.Margin < o.TickLength {
		o.Margin = o.TickLength
	}
	if o.Background == nil {
		o.Background = def.Background
	}
	if o.Foreground == nil {
		o.Foreground = def.Foreground
	}
	return o
}

// scale magnifies src by an integer factor with nearest-neighbour sampling so
// individual posterized pixels stay crisp.
func scale(src *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	g := gift.New(gift.Resize(b.Dx()*factor, b.Dy()*factor, gift.NearestNeighborResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, src)
	return dst
}

// drawTicks marks every opt.TickStep source pixels outside the left and
// bottom edges of r. Ticks at the far edge land on the last pixel row/column.
func drawTicks(dst draw.Image, ink image.Image, r image.Rectangle, srcW, srcH int, opt ComposeOptions) {
	for v := 0; v <= srcW; v += opt.TickStep {
		x := r.Min.X + v*opt.Scale
		if x >= r.Max.X {
			x = r.Max.X - 1
		}
		draw.Draw(dst, image.Rect(x, r.Max.Y, x+1, r.Max.Y+opt.TickLength), ink, image.Point{}, draw.Src)
	}
	for v := 0; v <= srcH; v += opt.TickStep {
		y := r.Min.Y + v*opt.Scale
		if y >= r.Max.Y {
			y = r.Max.Y - 1
		}
		draw.Draw(dst, image.Rect(r.Min.X-opt.TickLength, y, r.Min.X, y+1), ink, image.Point{}, draw.Src)
	}
}
