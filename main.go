package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// scenesDir holds the XML scenes listed by -help
const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	sceneType string
	outFile   string
	format    string
	width     int
	samples   int
	depth     int
	seed      int64
	seedSet   bool // -seed given explicitly, possibly as 0
	workers   int
	bvh       bool
	quiet     bool
	help      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sceneType, "scene", "default", "Built-in scene name or path to an .xml scene file")
	fs.StringVar(&opts.outFile, "out", "", "Output file (default: the scene's film filename)")
	fs.StringVar(&opts.format, "format", "", "Output format: 'ppm' or 'png' (default: from the file extension)")
	fs.IntVar(&opts.width, "width", 0, "Image width; height follows the camera aspect ratio (default 1200)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (default 500)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth (default 50)")
	fs.Int64Var(&opts.seed, "seed", renderer.DefaultSamplingConfig().Seed, "Random seed; the same seed reproduces the same image")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.BoolVar(&opts.bvh, "bvh", false, "Build a bounding volume hierarchy before rendering")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	if fs.NArg() > 0 {
		return opts, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.width < 0 || opts.samples < 0 || opts.depth < 0 || opts.workers < 0 {
		return opts, fs, fmt.Errorf("-width, -samples, -depth and -workers must not be negative")
	}
	return opts, fs, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.help {
		showHelp(stdout, fs)
		return nil
	}

	var logger core.Logger = renderer.NewWriterLogger(stderr)
	if opts.quiet {
		logger = renderer.NewWriterLogger(io.Discard)
	}

	fmt.Fprintln(stdout, "Starting Sphere Path Tracer...")

	selectedScene, err := createScene(opts.sceneType, opts.seed, logger)
	if err != nil {
		return err
	}
	applyOverrides(selectedScene, opts)

	outFile := selectedScene.OutputName
	if opts.outFile != "" {
		outFile = opts.outFile
	}
	format := output.FormatForFilename(outFile)
	if opts.format != "" {
		if format, err = output.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	raytracer := selectedScene.NewRaytracer()
	r := renderer.NewRenderer(raytracer, renderer.RenderConfig{NumWorkers: opts.workers}, logger)

	img, stats, err := r.Render(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render completed in %v (%d samples, %.0f samples/s)\n",
		stats.Duration, stats.TotalSamples, stats.SamplesPerSecond())

	if err := output.SaveImage(outFile, format, img); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render saved as %s\n", outFile)
	return nil
}

// createScene builds a built-in scene or loads an XML scene file
func createScene(sceneType string, seed int64, logger core.Logger) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if loaders.IsSceneFile(sceneType) {
		s, err := loaders.LoadXMLScene(sceneType, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		logger.Printf("Loaded %s\n", loaders.Summary(s))
		return s, nil
	}

	s, err := scene.NewBuiltinScene(sceneType, seed)
	if err != nil {
		return nil, fmt.Errorf("%w (run with -help to list scenes)", err)
	}
	return s, nil
}

// applyOverrides applies the command line sampling and acceleration settings
func applyOverrides(s *scene.Scene, opts options) {
	if opts.width > 0 {
		s.SetImageWidth(opts.width)
	}
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
	})
	// Zero is a valid seed, so only an explicit flag replaces the scene's
	if opts.seedSet {
		s.SamplingConfig.Seed = opts.seed
	}
	if opts.bvh && !s.World.HasBVH() {
		s.World.BuildBVH()
	}
}

func showHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}

	xmlScenes, err := scene.ListXMLScenes(scenesDir)
	if err != nil {
		fmt.Fprintf(w, "Warning: failed to list scene files: %v\n", err)
	}
	if len(xmlScenes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Scene files:")
		for _, info := range xmlScenes {
			fmt.Fprintf(w, "  %-28s %s\n", info.FilePath, info.Name)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output is written to the scene's film filename unless -out is given.")
}
