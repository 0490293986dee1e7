// Command affine applies geometric transforms to 24-bit raster images.
//
// Usage:
//
//	affine -in input.bmp -out output.bmp -angle 30 -sx 1.5 -sy 1.5
//	affine -op rotate -angle 90 -in input.bmp -out rotated.bmp
//
// Files ending in .png are read and written as PNG; every other path goes
// through the raster codec.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gogpu/affine"
)

// config holds the parsed command line.
type config struct {
	in, out string
	op      string
	params  affine.Params
	exact   bool
	edge    bool
	workers int
	verbose bool
}

func parseFlags(args []string) (config, error) {
	fs := flag.NewFlagSet("affine", flag.ContinueOnError)
	d := affine.DefaultParams()

	var c config
	fs.StringVar(&c.in, "in", "input.bmp", "input image")
	fs.StringVar(&c.out, "out", "output.bmp", "output image")
	fs.StringVar(&c.op, "op", "transform", "operation: transform, scale, rotate, shear, translate")
	fs.Float64Var(&c.params.SX, "sx", d.SX, "horizontal scale factor")
	fs.Float64Var(&c.params.SY, "sy", d.SY, "vertical scale factor")
	fs.Float64Var(&c.params.Angle, "angle", d.Angle, "rotation in degrees, counter-clockwise")
	fs.Float64Var(&c.params.TX, "tx", d.TX, "horizontal translation in pixels")
	fs.Float64Var(&c.params.TY, "ty", d.TY, "vertical translation in pixels")
	fs.Float64Var(&c.params.ShX, "shx", d.ShX, "horizontal shear factor")
	fs.Float64Var(&c.params.ShY, "shy", d.ShY, "vertical shear factor")
	fs.BoolVar(&c.exact, "exact", false, "use the exact 3x3 inverse instead of the per-factor inverse")
	fs.BoolVar(&c.edge, "edge", false, "size the transform canvas from the outer image edges instead of the corner pixels")
	fs.IntVar(&c.workers, "workers", 1, "goroutines for the sampling loop")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return c, nil
}

func main() {
	c, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	log := newLogger(c.verbose)
	defer func() { _ = log.Sync() }()

	if err := run(c, log); err != nil {
		log.Error("transform failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func run(c config, log *zap.Logger) error {
	if c.verbose {
		affine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer affine.SetLogger(nil)
	}

	src, err := load(c.in)
	if err != nil {
		return err
	}
	log.Info("loaded image", zap.String("path", c.in), zap.Int("width", src.Width()), zap.Int("height", src.Height()))

	opts := []affine.Option{affine.WithWorkers(c.workers)}
	if c.exact {
		opts = append(opts, affine.WithInverse(affine.InverseExact))
	}
	if c.edge {
		opts = append(opts, affine.WithCorners(affine.CornersEdge))
	}

	out, err := apply(src, c, log, opts)
	if err != nil {
		return err
	}

	if err := save(c.out, out); err != nil {
		return err
	}
	log.Info("saved image", zap.String("path", c.out), zap.Int("width", out.Width()), zap.Int("height", out.Height()))
	return nil
}

func apply(src *affine.Image, c config, log *zap.Logger, opts []affine.Option) (*affine.Image, error) {
	p := c.params
	switch c.op {
	case "transform":
		if c.verbose {
			log.Debug("scaling matrix\n" + affine.Scaling(p.SX, p.SY).String())
			log.Debug("rotation matrix\n" + affine.Rotation(p.Angle).String())
			log.Debug("shear matrix\n" + affine.Shear(p.ShX, p.ShY).String())
			log.Debug("combined matrix\n" + p.Matrix().String())
		}
		return affine.Transform(src, p, opts...), nil
	case "scale":
		return affine.ScaleImage(src, p.SX, p.SY, opts...), nil
	case "rotate":
		return affine.RotateImage(src, p.Angle, opts...), nil
	case "shear":
		return affine.ShearImage(src, p.ShX, p.ShY, opts...), nil
	case "translate":
		return affine.TranslateImage(src, p.TX, p.TY), nil
	default:
		return nil, fmt.Errorf("affine: unknown operation %q", c.op)
	}
}

func isPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

func load(path string) (*affine.Image, error) {
	if !isPNG(path) {
		return affine.Load(path)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("affine: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("affine: decode PNG: %w", err)
	}
	return affine.FromStdImage(img), nil
}

func save(path string, img *affine.Image) error {
	if !isPNG(path) {
		return img.Save(path)
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("affine: create file: %w", err)
	}
	if err := png.Encode(f, img.ToStdImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("affine: encode PNG: %w", err)
	}
	return f.Close()
}
