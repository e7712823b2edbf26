// Package pattern renders procedural source and backdrop layers: flat fills,
// gradients, checkerboards, Perlin noise and anti-aliased shapes.
package pattern

import (
	"image"
	"math"

	"github.com/aquilax/go-perlin"
	"golang.org/x/image/vector"

	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

// Solid fills bounds with c.
func Solid(bounds image.Rectangle, c rgba.RGBA8) *image.NRGBA {
	dst := image.NewNRGBA(bounds)
	px := rgba.ToNRGBA(c)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetNRGBA(x, y, px)
		}
	}
	return dst
}

// LinearGradient interpolates from one color to another across bounds, left
// to right when horizontal and top to bottom otherwise. All four channels are
// interpolated in straight alpha.
func LinearGradient(bounds image.Rectangle, from, to rgba.RGBA8, horizontal bool) *image.NRGBA {
	dst := image.NewNRGBA(bounds)
	a, b := rgba.Normalize8(from), rgba.Normalize8(to)

	steps := bounds.Dy()
	if horizontal {
		steps = bounds.Dx()
	}
	denom := float32(max(steps-1, 1))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := y - bounds.Min.Y
			if horizontal {
				i = x - bounds.Min.X
			}
			t := float32(i) / denom
			dst.SetNRGBA(x, y, rgba.ToNRGBA(rgba.Quantize8(lerp(a, b, t))))
		}
	}
	return dst
}

// Checker alternates two colors in square cells of the given size.
func Checker(bounds image.Rectangle, cell int, even, odd rgba.RGBA8) *image.NRGBA {
	if cell <= 0 {
		cell = 1
	}
	dst := image.NewNRGBA(bounds)
	e, o := rgba.ToNRGBA(even), rgba.ToNRGBA(odd)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if ((x-bounds.Min.X)/cell+(y-bounds.Min.Y)/cell)%2 == 0 {
				dst.SetNRGBA(x, y, e)
			} else {
				dst.SetNRGBA(x, y, o)
			}
		}
	}
	return dst
}

// Noise renders Perlin noise tinted with c: the noise value scales the color
// channels and alpha is taken from c. scale is the feature size in pixels.
func Noise(bounds image.Rectangle, scale float64, seed int64, c rgba.RGBA8) *image.NRGBA {
	if scale <= 0 {
		scale = 1
	}
	p := perlin.NewPerlin(2, 2, 3, seed)
	tint := rgba.Normalize8(c)
	dst := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := float32((p.Noise2D(float64(x)/scale, float64(y)/scale) + 1) / 2)
			px := rgba.RGBAF{R: tint.R * v, G: tint.G * v, B: tint.B * v, A: tint.A}
			dst.SetNRGBA(x, y, rgba.ToNRGBA(rgba.Quantize8(px)))
		}
	}
	return dst
}

// Disc draws an anti-aliased filled circle of color c on a transparent layer.
// The center is given relative to bounds.Min.
func Disc(bounds image.Rectangle, cx, cy, radius float32, c rgba.RGBA8) *image.NRGBA {
	const segments = 96

	ras := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		x := cx + radius*float32(math.Cos(theta))
		y := cy + radius*float32(math.Sin(theta))
		if i == 0 {
			ras.MoveTo(x, y)
		} else {
			ras.LineTo(x, y)
		}
	}
	ras.ClosePath()
	return fill(ras, bounds, c)
}

// Rect draws an anti-aliased filled rectangle with corners (x0, y0) and
// (x1, y1) relative to bounds.Min. Fractional edges get partial coverage.
func Rect(bounds image.Rectangle, x0, y0, x1, y1 float32, c rgba.RGBA8) *image.NRGBA {
	ras := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ras.MoveTo(x0, y0)
	ras.LineTo(x1, y0)
	ras.LineTo(x1, y1)
	ras.LineTo(x0, y1)
	ras.ClosePath()
	return fill(ras, bounds, c)
}

func fill(ras *vector.Rasterizer, bounds image.Rectangle, c rgba.RGBA8) *image.NRGBA {
	dst := image.NewNRGBA(bounds)
	ras.Draw(dst, bounds, image.NewUniform(rgba.ToNRGBA(c)), image.Point{})
	return dst
}

// Tile repeats src across bounds. offset shifts the sampling grid so that
// adjacent tiles rendered with matching offsets line up without seams.
func Tile(src image.Image, bounds image.Rectangle, offset image.Point) *image.NRGBA {
	dst := image.NewNRGBA(bounds)
	sb := src.Bounds()
	if sb.Empty() {
		return dst
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		sy := sb.Min.Y + mod(offset.Y+y-bounds.Min.Y, sb.Dy())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sx := sb.Min.X + mod(offset.X+x-bounds.Min.X, sb.Dx())
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

// Tint moves the color channels of img toward tint by strength in [0, 1],
// keeping the original alpha.
func Tint(img image.Image, tint rgba.RGBA8, strength float32) *image.NRGBA {
	strength = min(max(strength, 0), 1)
	t := rgba.Normalize8(tint)
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := rgba.Normalize8(rgba.FromColor(img.At(x, y)))
			out := lerp(s, t, strength)
			out.A = s.A
			dst.SetNRGBA(x, y, rgba.ToNRGBA(rgba.Quantize8(out)))
		}
	}
	return dst
}

func lerp(a, b rgba.RGBAF, t float32) rgba.RGBAF {
	return rgba.RGBAF{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
