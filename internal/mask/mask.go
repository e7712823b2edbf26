// Package mask builds grayscale coverage masks for blend layers. A mask value
// of 255 keeps a layer pixel at full strength and 0 hides it; values in
// between scale the layer's source alpha.
package mask

import (
	"image"
	"image/color"

	"github.com/aquilax/go-perlin"
	"github.com/disintegration/gift"
)

// Perlin parameters shared by every noise mask: persistence, lacunarity and
// octave count.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// Binary marks every pixel of img with any coverage as 255 and the rest as 0.
func Binary(img image.Image) *image.Gray {
	bounds := img.Bounds()
	m := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

// Blur softens mask edges with a Gaussian of the given sigma.
func Blur(m *image.Gray, sigma float32) *image.Gray {
	if sigma <= 0 {
		return clone(m)
	}
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewGray(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

// Noise renders a width x height Perlin noise mask. scale is the feature size
// in pixels; the same seed always yields the same mask.
func Noise(width, height int, scale float64, seed int64) *image.Gray {
	if scale <= 0 {
		scale = 1
	}
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	m := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := p.Noise2D(float64(x)/scale, float64(y)/scale)
			m.SetGray(x, y, color.Gray{Y: clamp255((v + 1) / 2 * 255)})
		}
	}
	return m
}

// ApplyNoise perturbs m by noise centered on 128, weighted by strength in
// [0, 1]. The noise is tiled when it is smaller than m.
func ApplyNoise(m, noise *image.Gray, strength float64) *image.Gray {
	bounds := m.Bounds()
	nb := noise.Bounds()
	dst := image.NewGray(bounds)
	if nb.Empty() {
		return clone(m)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		ny := nb.Min.Y + (y-bounds.Min.Y)%nb.Dy()
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nx := nb.Min.X + (x-bounds.Min.X)%nb.Dx()
			delta := (float64(noise.GrayAt(nx, ny).Y) - 128) * strength
			dst.SetGray(x, y, color.Gray{Y: clamp255(float64(m.GrayAt(x, y).Y) + delta)})
		}
	}
	return dst
}

// Threshold maps values at or above t to 255 and the rest to 0.
func Threshold(m *image.Gray, t uint8) *image.Gray {
	return mapValues(m, func(v uint8) uint8 {
		if v >= t {
			return 255
		}
		return 0
	})
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clone(m *image.Gray) *image.Gray {
	return mapValues(m, func(v uint8) uint8 { return v })
}
