// Package sheet renders one preview swatch per blend mode.
//
// Porter-Duff operators are drawn as the classic diagram: a source disc
// composited onto a destination square. Blend modes mix a vertical source
// gradient into a striped backdrop built from the palette.
package sheet

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/colorblend/assets"
	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/composite"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/imageio"
	"github.com/MeKo-Tech/colorblend/internal/pattern"
	"github.com/MeKo-Tech/colorblend/internal/worker"
)

// DefaultSize is the swatch edge length in pixels.
const DefaultSize = 128

// SwatchWriter stores encoded swatches, e.g. an archive.Writer.
type SwatchWriter interface {
	WriteSwatch(mode blend.Mode, size int, pngData []byte) error
}

// Config configures a Generator.
type Config struct {
	Size int
	// OutputDir receives <mode>.png files when Writer is nil.
	OutputDir string
	Writer    SwatchWriter
	Palette   assets.Palette
	Gamma     gamma.Curve
	// Workers is the number of bands per swatch; zero uses GOMAXPROCS.
	Workers     int
	Compression png.CompressionLevel
	Logger      *slog.Logger
}

// Generator renders and stores swatches.
type Generator struct {
	cfg    Config
	bounds image.Rectangle
}

// NewGenerator validates cfg and prepares a generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("swatch size must be positive")
	}
	if cfg.Writer == nil && cfg.OutputDir == "" {
		return nil, fmt.Errorf("either an output dir or a swatch writer is required")
	}
	if len(cfg.Palette.Backdrop) == 0 {
		cfg.Palette = assets.DefaultPalette()
	}

	return &Generator{
		cfg:    cfg,
		bounds: image.Rect(0, 0, cfg.Size, cfg.Size),
	}, nil
}

// Size returns the swatch edge length.
func (g *Generator) Size() int {
	return g.cfg.Size
}

// Render draws the swatch for mode.
func (g *Generator) Render(ctx context.Context, mode blend.Mode) (*image.NRGBA, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid mode %d", mode)
	}

	opts := composite.Options{
		Workers: g.cfg.Workers,
		Gamma:   g.cfg.Gamma,
		Logger:  g.cfg.Logger,
	}

	var (
		base   image.Image
		layers []composite.Layer
	)
	if mode.IsCompositing() {
		base, layers = g.diagram(mode)
	} else {
		base, layers = g.gradient(mode)
	}

	img, err := composite.Stack(ctx, base, layers, g.bounds, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", mode, err)
	}
	return img, nil
}

// diagram places the destination square in the upper left and the source
// disc in the lower right so that all four regions are visible.
func (g *Generator) diagram(op blend.Mode) (image.Image, []composite.Layer) {
	s := float32(g.cfg.Size)
	p := g.cfg.Palette

	square := pattern.Rect(g.bounds, s*0.1, s*0.1, s*0.65, s*0.65, p.Square.Color())
	disc := composite.NewLayer("disc", pattern.Disc(g.bounds, s*0.62, s*0.62, s*0.3, p.Disc.Color()))
	disc.Op = op
	return square, []composite.Layer{disc}
}

func (g *Generator) gradient(mode blend.Mode) (image.Image, []composite.Layer) {
	p := g.cfg.Palette

	base := pattern.Solid(g.bounds, p.Paper.Color())
	stripes := make([]composite.Layer, 0, len(p.Backdrop)+1)
	n := len(p.Backdrop)
	for i, c := range p.Backdrop {
		x0 := float32(g.cfg.Size * i / n)
		x1 := float32(g.cfg.Size * (i + 1) / n)
		stripes = append(stripes, composite.NewLayer(
			fmt.Sprintf("stripe-%d", i),
			pattern.Rect(g.bounds, x0, 0, x1, float32(g.cfg.Size), c.Color()),
		))
	}

	src := composite.NewLayer("source", pattern.LinearGradient(g.bounds, p.Source.From.Color(), p.Source.To.Color(), false))
	src.Mode = mode
	return base, append(stripes, src)
}

// Path returns the file a swatch for mode is written to in OutputDir.
func (g *Generator) Path(mode blend.Mode) string {
	return filepath.Join(g.cfg.OutputDir, mode.String()+".png")
}

// Generate renders mode and stores it. With an output dir, existing files are
// kept unless force is set. It returns the file path, or the mode name when
// the swatch went to the writer.
func (g *Generator) Generate(ctx context.Context, mode blend.Mode, force bool) (string, error) {
	if g.cfg.Writer == nil && !force {
		path := g.Path(mode)
		if _, err := os.Stat(path); err == nil {
			g.log().Info("Swatch already exists; skipping", "mode", mode.String(), "path", path)
			return path, nil
		}
	}

	img, err := g.Render(ctx, mode)
	if err != nil {
		return "", err
	}

	if g.cfg.Writer != nil {
		data, err := imageio.EncodePNG(img, g.cfg.Compression)
		if err != nil {
			return "", fmt.Errorf("failed to encode swatch %s: %w", mode, err)
		}
		if err := g.cfg.Writer.WriteSwatch(mode, g.cfg.Size, data); err != nil {
			return "", fmt.Errorf("failed to store swatch %s: %w", mode, err)
		}
		g.log().Debug("Stored swatch", "mode", mode.String(), "bytes", len(data))
		return mode.String(), nil
	}

	path := g.Path(mode)
	if err := imageio.Save(path, img, g.cfg.Compression); err != nil {
		return "", fmt.Errorf("failed to write swatch %s: %w", mode, err)
	}
	g.log().Debug("Wrote swatch", "mode", mode.String(), "path", path)
	return path, nil
}

// GenerateAll renders modes in parallel.
func (g *Generator) GenerateAll(ctx context.Context, modes []blend.Mode, workers int, force bool, onProgress worker.ProgressFunc) []worker.Result[blend.Mode] {
	pool := worker.New(worker.Config[blend.Mode]{
		Workers: workers,
		Processor: worker.ProcessorFunc[blend.Mode](func(ctx context.Context, mode blend.Mode) (string, error) {
			return g.Generate(ctx, mode, force)
		}),
		OnProgress: onProgress,
	})
	return pool.Run(ctx, modes)
}

func (g *Generator) log() *slog.Logger {
	if g.cfg.Logger != nil {
		return g.cfg.Logger
	}
	return slog.Default()
}
