package mask

import (
	"image"
	"image/color"
)

// FromAlpha copies the alpha channel of img into a mask.
func FromAlpha(img image.Image) *image.Gray {
	bounds := img.Bounds()
	m := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := color.AlphaModel.Convert(img.At(x, y)).(color.Alpha).A
			m.SetGray(x, y, color.Gray{Y: a})
		}
	}
	return m
}

// FromLuma converts img to a mask using its gray level.
func FromLuma(img image.Image) *image.Gray {
	bounds := img.Bounds()
	m := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			m.Set(x, y, img.At(x, y))
		}
	}
	return m
}

// Invert returns 255 - v for every value.
func Invert(m *image.Gray) *image.Gray {
	return mapValues(m, func(v uint8) uint8 { return 255 - v })
}

func mapValues(m *image.Gray, f func(uint8) uint8) *image.Gray {
	bounds := m.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetGray(x, y, color.Gray{Y: f(m.GrayAt(x, y).Y)})
		}
	}
	return dst
}

// Max is the union of two masks with equal bounds; nil operands are ignored.
func Max(a, b *image.Gray) *image.Gray {
	return combine(a, b, func(x, y uint8) uint8 { return max(x, y) })
}

// Min is the intersection of two masks with equal bounds; nil operands are
// ignored.
func Min(a, b *image.Gray) *image.Gray {
	return combine(a, b, func(x, y uint8) uint8 { return min(x, y) })
}

func combine(a, b *image.Gray, f func(x, y uint8) uint8) *image.Gray {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return clone(b)
	case b == nil:
		return clone(a)
	}

	bounds := a.Bounds().Intersect(b.Bounds())
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetGray(x, y, color.Gray{Y: f(a.GrayAt(x, y).Y, b.GrayAt(x, y).Y)})
		}
	}
	return dst
}

// At returns the coverage of m at (x, y) in [0, 1]. A nil mask or a point
// outside it is fully covered.
func At(m *image.Gray, x, y int) float32 {
	if m == nil || !(image.Point{X: x, Y: y}).In(m.Rect) {
		return 1
	}
	return float32(m.GrayAt(x, y).Y) / 255
}
