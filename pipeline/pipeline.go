// Package pipeline - runs the single-pass posterization pipeline:
//
// ┌──────────────────────────────┐
// │ Load (decode, resize, → RGB) │
// └──────┬───────────────────────┘
// ┌──────────────────────────────┐
// │ Median blur                  │
// └──────┬───────────────────────┘
// ┌──────────────────────────────┐
// │ Build quantization table     │
// └──────┬───────────────────────┘
// ┌──────────────────────────────┐
// │ Apply table per channel      │
// └──────┬───────────────────────┘
// ┌──────────────────────────────┐
// │ Render original | posterized │
// └──────────────────────────────┘
//
// Loading, smoothing, table mapping and rendering are collaborators behind
// small interfaces so the OpenCV and pure-Go implementations are
// interchangeable.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/posterize/images"
	"github.com/nvr-ai/posterize/posterize"
	"github.com/nvr-ai/posterize/profiler"
)

// ErrLoad is returned when the input image cannot be read.
var ErrLoad = images.ErrLoad

// Loader reads an image from disk, resizes it to size and returns it as RGB.
type Loader interface {
	Load(path string, size image.Point) (*images.Image, error)
}

// Smoother applies a ksize x ksize median blur.
type Smoother interface {
	Smooth(img *images.Image, ksize int) (*images.Image, error)
}

// Mapper maps every channel of img through t.
type Mapper interface {
	Map(img *images.Image, t *posterize.Table) (*images.Image, error)
}

// Renderer presents the original and posterized images side by side.
type Renderer interface {
	Render(original, posterized *images.Image) error
}

// Result holds every intermediate image of a run.
type Result struct {
	Original   *images.Image
	Smoothed   *images.Image
	Posterized *images.Image
	Table      *posterize.Table
	Stages     []profiler.Stage
}

// Pipeline wires the collaborators together.
type Pipeline struct {
	Loader   Loader
	Smoother Smoother
	Renderer Renderer
	// Mapper applies the table. Nil uses posterize.Table.Apply.
	Mapper Mapper
	// Out receives progress messages. Defaults to os.Stdout.
	Out io.Writer
}

// New creates a pipeline printing progress to stdout.
func New(loader Loader, smoother Smoother, renderer Renderer) *Pipeline {
	return &Pipeline{
		Loader:   loader,
		Smoother: smoother,
		Renderer: renderer,
		Out:      os.Stdout,
	}
}

// Run executes one pass with cfg.
//
// Arguments:
//   - cfg: The run parameters; validated before anything is loaded.
//
// Returns:
//   - *Result: The intermediate images, the table and stage timings.
//   - error: ErrInvalidConfig, ErrLoad, or a wrapped smoothing/rendering error.
//
// @example
//
//	p := pipeline.New(cv.Loader{}, cv.MedianSmoother{}, cv.NewWindow("Posterize"))
//	if _, err := p.Run(pipeline.DefaultConfig()); err != nil {
//	    log.Fatal(err)
//	}
func (p *Pipeline) Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.Loader == nil || p.Smoother == nil || p.Renderer == nil {
		return nil, errors.New("pipeline is missing a loader, smoother or renderer")
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	timer := profiler.NewStageTimer()
	debugf := func(format string, args ...interface{}) {
		if cfg.Debug {
			fmt.Fprintf(out, "[DEBUG] "+format+"\n", args...)
		}
	}

	fmt.Fprintf(out, "Starting posterization process on '%s' with n=%d...\n", cfg.ImagePath, cfg.Levels)

	// 1. Load, resize, BGR -> RGB.
	done := timer.StartOperation("load")
	original, err := p.Loader.Load(cfg.ImagePath, cfg.Size())
	done()
	if err != nil {
		if !errors.Is(err, ErrLoad) {
			err = images.NewLoadError(cfg.ImagePath, err)
		}
		return nil, err
	}
	if original == nil {
		return nil, images.NewLoadError(cfg.ImagePath, errors.New("loader returned no image"))
	}
	debugf("Loaded image: %dx%d, checksum %s", original.Width, original.Height, images.ComputeChecksum(original))

	// 2. Median blur.
	ksize := cfg.Kernel()
	done = timer.StartOperation("blur")
	smoothed, err := p.Smoother.Smooth(original, ksize)
	done()
	if err != nil {
		return nil, errors.Wrap(err, "smoothing failed")
	}
	if !original.SameShape(smoothed) {
		return nil, errors.Errorf("smoother changed shape from %v to %v", original.Shape(), shapeOf(smoothed))
	}
	fmt.Fprintf(out, "- Image loaded and converted to RGB.\n")
	fmt.Fprintf(out, "- Median blur applied (kernel size: %d).\n", ksize)

	// 3. Lookup table.
	done = timer.StartOperation("table")
	table, err := posterize.BuildTable(cfg.Levels)
	done()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "- Look-Up Table created for %d levels.\n", cfg.Levels)
	debugf("%s", table)

	// 4. Map every channel through the table.
	done = timer.StartOperation("lut")
	posterized, err := p.mapTable(smoothed, table)
	done()
	if err != nil {
		return nil, errors.Wrap(err, "lut mapping failed")
	}
	if !smoothed.SameShape(posterized) {
		return nil, errors.Errorf("lut mapping changed shape from %v to %v", smoothed.Shape(), shapeOf(posterized))
	}
	fmt.Fprintf(out, "- LUT mapping applied successfully.\n")
	debugf("Posterized tensor shape: %v", posterized.Tensor().Shape())

	// 5. Show original and posterized side by side.
	fmt.Fprintf(out, "Displaying results... check popup window.\n")
	done = timer.StartOperation("render")
	err = p.Renderer.Render(original, posterized)
	done()
	if err != nil {
		return nil, errors.Wrap(err, "rendering failed")
	}

	if cfg.Debug {
		timer.Report(out)
	}

	return &Result{
		Original:   original,
		Smoothed:   smoothed,
		Posterized: posterized,
		Table:      table,
		Stages:     timer.Stages(),
	}, nil
}

func (p *Pipeline) mapTable(img *images.Image, t *posterize.Table) (*images.Image, error) {
	if p.Mapper == nil {
		return t.Apply(img)
	}
	return p.Mapper.Map(img, t)
}

func shapeOf(img *images.Image) []int {
	if img == nil {
		return nil
	}
	return img.Shape()
}
