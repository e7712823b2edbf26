// Package filter prepares layer images before they are blended: resizing to
// the backdrop, softening and fading.
package filter

import (
	"image"

	"github.com/disintegration/gift"
)

// Fit resizes img to the size of bounds and places it at bounds.Min. Images
// that already match are copied unchanged.
func Fit(img image.Image, bounds image.Rectangle) *image.NRGBA {
	var filters []gift.Filter
	if img.Bounds().Size() != bounds.Size() {
		filters = append(filters, gift.Resize(bounds.Dx(), bounds.Dy(), gift.LinearResampling))
	}
	return apply(img, bounds, filters...)
}

// Blur applies a Gaussian blur. A non-positive sigma only copies img.
func Blur(img image.Image, sigma float32) *image.NRGBA {
	var filters []gift.Filter
	if sigma > 0 {
		filters = append(filters, gift.GaussianBlur(sigma))
	}
	return apply(img, img.Bounds(), filters...)
}

// Opacity scales the alpha channel by factor, clamped to [0, 1].
func Opacity(img image.Image, factor float32) *image.NRGBA {
	factor = min(max(factor, 0), 1)
	return apply(img, img.Bounds(), gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
		return r, g, b, a * factor
	}))
}

// Grayscale desaturates img, for use as a luminance mask source.
func Grayscale(img image.Image) *image.NRGBA {
	return apply(img, img.Bounds(), gift.Grayscale())
}

func apply(img image.Image, bounds image.Rectangle, filters ...gift.Filter) *image.NRGBA {
	g := gift.New(filters...)
	out := g.Bounds(img.Bounds())
	dst := image.NewNRGBA(out.Sub(out.Min).Add(bounds.Min))
	g.Draw(dst, img)
	return dst
}
