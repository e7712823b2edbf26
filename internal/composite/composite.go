// Package composite blends whole layer images onto a backdrop, pixel by pixel,
// with a blend mode and a Porter-Duff operator per layer.
package composite

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"runtime"

	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/mask"
	"github.com/MeKo-Tech/colorblend/internal/rgba"
	"github.com/MeKo-Tech/colorblend/internal/worker"
)

// Layer is one image blended over the current backdrop.
type Layer struct {
	Name  string
	Image image.Image
	// Mode mixes layer colors with the backdrop before compositing.
	Mode blend.Mode
	// Op is the Porter-Duff operator; anything else composites with SrcOver.
	Op blend.Mode
	// Opacity scales the layer alpha, in [0, 1].
	Opacity float32
	// Mask, when set, scales the layer alpha per pixel.
	Mask *image.Gray
}

// NewLayer returns a fully opaque Normal/SrcOver layer for img.
func NewLayer(name string, img image.Image) Layer {
	return Layer{Name: name, Image: img, Mode: blend.Normal, Op: blend.SrcOver, Opacity: 1}
}

// Options tune how layers are applied.
type Options struct {
	// Workers is the number of parallel bands; zero uses GOMAXPROCS.
	Workers int
	// Gamma is expanded before and encoded after blending. Linear blends the
	// stored values directly.
	Gamma  gamma.Curve
	Logger *slog.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Stack copies base into a new image of the given bounds and applies each
// layer in order. base may be nil for a transparent start. Every image and
// mask must have exactly the given bounds.
func Stack(ctx context.Context, base image.Image, layers []Layer, bounds image.Rectangle, opts Options) (*image.NRGBA, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("bounds %v are empty", bounds)
	}

	dst := image.NewNRGBA(bounds)
	if base != nil {
		if base.Bounds() != bounds {
			return nil, fmt.Errorf("base bounds %v do not match expected %v", base.Bounds(), bounds)
		}
		draw.Draw(dst, bounds, base, bounds.Min, draw.Src)
	}

	for _, layer := range layers {
		if err := Apply(ctx, dst, layer, opts); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Apply blends layer into dst in place.
func Apply(ctx context.Context, dst *image.NRGBA, layer Layer, opts Options) error {
	bounds := dst.Bounds()
	if layer.Image == nil {
		return fmt.Errorf("layer %q has no image", layer.Name)
	}
	if layer.Image.Bounds() != bounds {
		return fmt.Errorf("layer %q bounds %v do not match expected %v", layer.Name, layer.Image.Bounds(), bounds)
	}
	if layer.Mask != nil && layer.Mask.Bounds() != bounds {
		return fmt.Errorf("layer %q mask bounds %v do not match expected %v", layer.Name, layer.Mask.Bounds(), bounds)
	}

	opts.log().Debug("Applying layer",
		"layer", layer.Name,
		"mode", layer.Mode.String(),
		"op", layer.Op.String(),
		"opacity", layer.Opacity,
		"gamma", opts.Gamma.String())

	bands := worker.Bands(bounds, opts.workers())
	pool := worker.New(worker.Config[image.Rectangle]{
		Workers: len(bands),
		Processor: worker.ProcessorFunc[image.Rectangle](func(_ context.Context, band image.Rectangle) (string, error) {
			applyBand(dst, layer, band, opts.Gamma)
			return "", nil
		}),
	})

	if err := worker.FirstError(pool.Run(ctx, bands)); err != nil {
		return fmt.Errorf("layer %q: %w", layer.Name, err)
	}
	return nil
}

func applyBand(dst *image.NRGBA, layer Layer, band image.Rectangle, curve gamma.Curve) {
	opacity := min(max(layer.Opacity, 0), 1)

	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			s := rgba.Normalize8(pixelAt(layer.Image, x, y))
			s.A *= opacity * mask.At(layer.Mask, x, y)
			d := rgba.Normalize8(rgba.FromNRGBA(dst.NRGBAAt(x, y)))

			out := blend.Compose(layer.Op, layer.Mode, curve.ExpandColor(s), curve.ExpandColor(d))
			out = curve.EncodeColor(rgba.Unpremultiply(out))
			dst.SetNRGBA(x, y, rgba.ToNRGBA(rgba.Quantize8(out)))
		}
	}
}

func pixelAt(img image.Image, x, y int) rgba.RGBA8 {
	if n, ok := img.(*image.NRGBA); ok {
		return rgba.FromNRGBA(n.NRGBAAt(x, y))
	}
	return rgba.FromNRGBA(color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
}
