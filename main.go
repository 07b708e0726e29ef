package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/posterize/cv"
	"github.com/nvr-ai/posterize/images"
	"github.com/nvr-ai/posterize/images/kernels"
	"github.com/nvr-ai/posterize/pipeline"
)

const (
	// windowTitle is the title of the results window.
	windowTitle = "Posterize"
	// Exit codes.
	exitLoadFailure    = 1
	exitInvalidConfig  = 2
	exitPipelineFailed = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, runs the pipeline and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalidConfig
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalidConfig
	}

	if cfg.Debug {
		printConfig(stdout, cfg)
	}

	return execute(newPipeline(cfg), cfg, stdout, stderr)
}

// execute runs p with cfg and maps its error to an exit code: load failures
// get the fixed user message, anything else is printed as is.
func execute(p *pipeline.Pipeline, cfg pipeline.Config, stdout, stderr io.Writer) int {
	p.Out = stdout

	_, err := p.Run(cfg)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pipeline.ErrLoad):
		fmt.Fprintf(stdout, "Error: Could not read image '%s'. Check file path.\n", cfg.ImagePath)
		if cfg.Debug {
			fmt.Fprintf(stdout, "[DEBUG] %v\n", err)
		}
		return exitLoadFailure
	case errors.Is(err, pipeline.ErrInvalidConfig):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalidConfig
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitPipelineFailed
	}
}

// parseFlags builds a Config from command line arguments. Defaults are the
// reference run: a 220x300 cat photo, five levels and a 7x7 median blur.
func parseFlags(args []string, output io.Writer) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	backend := string(cfg.Backend)

	fs := flag.NewFlagSet("posterize", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.ImagePath, "image", cfg.ImagePath, "Path to image file (.jpg, .jpeg, .png, .bmp, .webp)")
	fs.IntVar(&cfg.Levels, "levels", cfg.Levels, "Number of color levels per channel (1-256)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Resize width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Resize height in pixels")
	fs.IntVar(&cfg.KernelSize, "kernel", cfg.KernelSize, "Median blur kernel size (even sizes are bumped by one)")
	fs.StringVar(&backend, "backend", backend, "Image backend: opencv or go")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Print table values and stage timings")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg.Backend = pipeline.Backend(backend)
	return cfg, nil
}

// newPipeline wires the collaborators for the configured backend. Both
// backends display the result in an OpenCV window.
func newPipeline(cfg pipeline.Config) *pipeline.Pipeline {
	renderer := cv.NewWindow(windowTitle)

	switch cfg.Backend {
	case pipeline.BackendGo:
		return pipeline.New(images.FileLoader{}, kernels.MedianSmoother{Edge: kernels.EdgeClamp}, renderer)
	default:
		p := pipeline.New(cv.Loader{}, cv.MedianSmoother{}, renderer)
		p.Mapper = cv.LUTMapper{}
		return p
	}
}

func printConfig(w io.Writer, cfg pipeline.Config) {
	fmt.Fprintf(w, "⚙️  Configuration:\n")
	fmt.Fprintf(w, "   🖼️  Image: %s\n", cfg.ImagePath)
	fmt.Fprintf(w, "   🎨 Levels: %d\n", cfg.Levels)
	fmt.Fprintf(w, "   📏 Size: %dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(w, "   🔲 Kernel: %d (requested %d)\n", cfg.Kernel(), cfg.KernelSize)
	fmt.Fprintf(w, "   🧰 Backend: %s\n", cfg.Backend)
}
