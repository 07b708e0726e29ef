package pipeline

import (
	"image"

	"github.com/pkg/errors"

	"github.com/nvr-ai/posterize/images/kernels"
	"github.com/nvr-ai/posterize/posterize"
)

// Backend selects which collaborators load and smooth the image.
type Backend string

const (
	// BackendOpenCV loads, resizes and blurs with OpenCV via gocv.
	BackendOpenCV Backend = "opencv"
	// BackendGo uses the pure-Go decoders, nfnt/resize and kernels.Median.
	BackendGo Backend = "go"
)

// Defaults used when no flags are given.
const (
	DefaultImagePath  = "assets/input/cat.jpg"
	DefaultLevels     = 5
	DefaultWidth      = 220
	DefaultHeight     = 300
	DefaultKernelSize = 7
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the parameters of a single posterization run.
type Config struct {
	// ImagePath is the file to load.
	ImagePath string
	// Levels is the number of quantization levels, 1..256.
	Levels int
	// Width and Height are the dimensions the image is resized to.
	Width  int
	Height int
	// KernelSize is the median blur aperture. Even sizes are bumped by one.
	KernelSize int
	// Backend selects the loader and smoother implementation.
	Backend Backend
	// Debug enables [DEBUG] output and the timing report.
	Debug bool
}

// DefaultConfig returns the configuration of the reference run: a 220x300
// cat photo, five levels and a 7x7 median blur.
func DefaultConfig() Config {
	return Config{
		ImagePath:  DefaultImagePath,
		Levels:     DefaultLevels,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		KernelSize: DefaultKernelSize,
		Backend:    BackendOpenCV,
	}
}

// Validate checks every field and returns ErrInvalidConfig wrapped with the
// first problem found.
func (c Config) Validate() error {
	if c.ImagePath == "" {
		return errors.Wrap(ErrInvalidConfig, "image path is empty")
	}
	if err := posterize.ValidateLevels(c.Levels); err != nil {
		return &configErr{cause: err}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "invalid dimensions: width=%d, height=%d", c.Width, c.Height)
	}
	if c.KernelSize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "kernel size %d, want >= 1", c.KernelSize)
	}
	switch c.Backend {
	case BackendOpenCV, BackendGo:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown backend %q", c.Backend)
	}
	return nil
}

// configErr reports an invalid field whose check already produced a sentinel
// error. errors.Is matches both ErrInvalidConfig and the cause.
type configErr struct {
	cause error
}

func (e *configErr) Error() string {
	return ErrInvalidConfig.Error() + ": " + e.cause.Error()
}

func (e *configErr) Unwrap() []error { return []error{ErrInvalidConfig, e.cause} }

// Cause lets errors.Cause reach the field error.
func (e *configErr) Cause() error { return e.cause }

// Size returns the resize target as a point (X = width, Y = height).
func (c Config) Size() image.Point {
	return image.Pt(c.Width, c.Height)
}

// Kernel returns the odd median aperture actually used for smoothing.
func (c Config) Kernel() int {
	return 2*kernels.RadiusForKernel(c.KernelSize) + 1
}
