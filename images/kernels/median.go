// Package kernels provides neighbourhood filters over interleaved 8-bit
// image buffers.
package kernels

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/posterize/images"
)

// EdgeMode defines how sampling behaves outside the image bounds.
// - Clamp: repeats edge pixels (OpenCV's replicate border for median blur).
// - Mirror: reflects coordinates.
// - Wrap: tiles the image (for periodic patterns).
type EdgeMode int

const (
	EdgeClamp EdgeMode = iota
	EdgeMirror
	EdgeWrap
)

// Options configures the median call.
type Options struct {
	Radius int      // Window size = 2*Radius + 1. Must be >= 0.
	Edge   EdgeMode // Edge sampling mode.
}

// RadiusForKernel converts an aperture size into a radius, bumping even sizes
// to the next odd one. Sizes below 1 yield radius 0.
func RadiusForKernel(ksize int) int {
	if ksize < 1 {
		return 0
	}
	if ksize%2 == 0 {
		ksize++
	}
	return ksize / 2
}

// Median applies a square median filter to an interleaved buffer, channel by
// channel, writing the result to dst.
//
// It uses a per-channel 256-bin histogram that slides along each row: moving
// one pixel right removes the column leaving on the left and adds the column
// entering on the right, so the per-pixel cost is O(window + 256) instead of
// a full sort of the window.
//
// Arguments:
//   - dst: Destination buffer, at least width*height*channels long. Must not alias src.
//   - src: Source buffer in row-major interleaved order.
//   - width, height: Image dimensions.
//   - channels: Samples per pixel.
//   - opt: Radius and edge mode.
//
// Returns:
//   - error: An error if the dimensions or buffers are inconsistent.
func Median(dst, src []uint8, width, height, channels int, opt Options) error {
	if width <= 0 || height <= 0 || channels <= 0 {
		return errors.Errorf("invalid dimensions: %dx%dx%d", width, height, channels)
	}
	n := width * height * channels
	if len(src) < n || len(dst) < n {
		return errors.Errorf("buffers hold src=%d dst=%d bytes, need %d", len(src), len(dst), n)
	}
	if opt.Radius < 0 {
		return errors.Errorf("negative radius %d", opt.Radius)
	}

	r := opt.Radius
	if r == 0 {
		copy(dst[:n], src[:n])
		return nil
	}

	window := 2*r + 1
	// The median is the first value whose cumulative count exceeds half.
	half := window * window / 2

	// Precompute mapped column indices for x in [-r, width+r].
	cols := make([]int, width+2*r+1)
	for i := range cols {
		cols[i] = mapCoord(i-r, width, opt.Edge)
	}
	col := func(x int) int { return cols[x+r] }

	rows := make([]int, window)
	var hist [256]int

	for y := 0; y < height; y++ {
		for dy := -r; dy <= r; dy++ {
			rows[dy+r] = mapCoord(y+dy, height, opt.Edge) * width
		}

		for c := 0; c < channels; c++ {
			hist = [256]int{}
			for _, row := range rows {
				for dx := -r; dx <= r; dx++ {
					hist[src[(row+col(dx))*channels+c]]++
				}
			}

			for x := 0; x < width; x++ {
				dst[(y*width+x)*channels+c] = medianOf(&hist, half)

				if x+1 == width {
					break
				}
				// Next window: remove left column, add right column.
				left, right := col(x-r), col(x+r+1)
				for _, row := range rows {
					hist[src[(row+left)*channels+c]]--
					hist[src[(row+right)*channels+c]]++
				}
			}
		}
	}

	return nil
}

func medianOf(hist *[256]int, half int) uint8 {
	sum := 0
	for v := 0; v < 256; v++ {
		sum += hist[v]
		if sum > half {
			return uint8(v)
		}
	}
	return 255
}

// MedianImage returns a median-filtered copy of img.
func MedianImage(img *images.Image, opt Options) (*images.Image, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	out := images.New(img.Width, img.Height)
	if err := Median(out.Pix, img.Pix, img.Width, img.Height, images.Channels, opt); err != nil {
		return nil, err
	}
	return out, nil
}

// MedianSmoother smooths images with Median using a configurable edge mode.
type MedianSmoother struct {
	Edge EdgeMode
}

// Smooth applies a ksize x ksize median blur. Even sizes are bumped to the
// next odd size.
func (s MedianSmoother) Smooth(img *images.Image, ksize int) (*images.Image, error) {
	out, err := MedianImage(img, Options{Radius: RadiusForKernel(ksize), Edge: s.Edge})
	if err != nil {
		return nil, errors.Wrap(err, "median blur failed")
	}
	return out, nil
}

// mapCoord maps an index i to [0, n) according to edge mode.
// For Clamp: clamp to [0, n-1].
// For Mirror: reflect indices ... -2,-1,0,1,2, ... -> 1,0,0,1,2, ...
// For Wrap: modulo wrap to [0, n).
func mapCoord(i, n int, mode EdgeMode) int {
	switch mode {
	case EdgeMirror:
		if n == 1 {
			return 0
		}
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			} else {
				i = 2*n - i - 1
			}
		}
		return i
	case EdgeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	default:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}
