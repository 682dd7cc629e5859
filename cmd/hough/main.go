package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/hough-lines-mcp/internal/edges"
	"github.com/ironsheep/hough-lines-mcp/internal/pipeline"
	"github.com/ironsheep/hough-lines-mcp/internal/render"
)

type options struct {
	outDir     string
	color      string
	labels     bool
	view       bool
	heatWidth  int
	heatHeight int
}

func main() {
	defaults, err := pipeline.FromEnv(pipeline.DefaultConfig())
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	var cfg pipeline.Config
	flag.Float64Var(&cfg.EdgeThresholdLow, "low", defaults.EdgeThresholdLow, "Canny low hysteresis threshold")
	flag.Float64Var(&cfg.EdgeThresholdHigh, "high", defaults.EdgeThresholdHigh, "Canny high hysteresis threshold")
	flag.Float64Var(&cfg.BlurSigma, "blur", defaults.BlurSigma, "Gaussian blur sigma before edge detection (0 disables)")
	flag.Float64Var(&cfg.RhoResolution, "rho", defaults.RhoResolution, "Distance resolution in pixels")
	flag.Float64Var(&cfg.ThetaResolution, "theta", defaults.ThetaResolution, "Angle resolution in degrees")
	flag.IntVar(&cfg.VoteThreshold, "threshold", defaults.VoteThreshold, "Votes a bin must exceed to become a line")
	flag.IntVar(&cfg.SuppressRadius, "suppress", defaults.SuppressRadius, "Keep only local maxima within this many bins (0 disables)")
	flag.IntVar(&cfg.MaxLines, "max", defaults.MaxLines, "Keep only the strongest lines (0 keeps all)")
	flag.IntVar(&cfg.MaskLevel, "mask", defaults.MaskLevel, "Treat inputs as edge masks: luminance at or above this level is an edge (0 runs Canny)")
	flag.IntVar(&cfg.Workers, "workers", defaults.Workers, "Worker goroutines (0 uses one per CPU)")

	var opts options
	flag.StringVar(&opts.outDir, "out", ".", "Directory for output images")
	flag.StringVar(&opts.color, "color", render.DefaultLineColor, "Hex color used to draw lines")
	flag.BoolVar(&opts.labels, "labels", false, "Label lines with rho, theta and votes")
	flag.BoolVar(&opts.view, "view", false, "Show the accumulator in the terminal after each image")
	flag.IntVar(&opts.heatWidth, "heat-width", 0, "Accumulator image width (0 uses one pixel per bin)")
	flag.IntVar(&opts.heatHeight, "heat-height", 0, "Accumulator image height (0 uses one pixel per bin)")
	quiet := flag.Bool("q", false, "Do not print per-image diagnostics")

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("usage: hough [options] image-file...")
		flag.PrintDefaults()
		return
	}

	log.SetFlags(0)

	d, err := pipeline.New(cfg)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	d.Debug = !*quiet

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := process(d, path, opts); err != nil {
			log.Printf("%s: %v", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// process detects lines in one image and writes its edge map, accumulator
// and annotated images.
func process(d *pipeline.Detector, path string, opts options) error {
	img, err := imgio.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	log.Printf("%s: %dx%d", path, img.Bounds().Dx(), img.Bounds().Dy())

	res, err := d.Detect(img)
	if err != nil {
		return err
	}

	annotated, err := render.Annotate(img, res.Lines, res.Segments, res.Offset,
		render.Style{Color: opts.color, Labels: opts.labels})
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outputs := []struct {
		suffix string
		img    image.Image
	}{
		{"_edges.png", edges.ToGray(res.Edges)},
		{"_accumulator.png", render.HeatMap(res.Accumulator, opts.heatWidth, opts.heatHeight)},
		{"_lines.png", annotated},
	}
	for _, o := range outputs {
		name := filepath.Join(opts.outDir, base+o.suffix)
		if err := imgio.Save(name, o.img, imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
	}

	if opts.view {
		title := render.PreviewTitle(filepath.Base(path), res.Accumulator, len(res.Lines))
		if err := render.Preview(res.Accumulator, title); err != nil {
			return fmt.Errorf("failed to show preview: %w", err)
		}
	}
	return nil
}
