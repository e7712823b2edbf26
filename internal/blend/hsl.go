package blend

import "github.com/MeKo-Tech/colorblend/internal/rgba"

// HSLFunc computes a whole-color mix B(Cb, Cs) of a backdrop and a source.
type HSLFunc func(cb, cs rgba.RGBAF) rgba.RGBAF

// Lum is the perceptual luma 0.299·r + 0.587·g + 0.114·b.
func Lum(c rgba.RGBAF) float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Sat is the channel spread max(r, g, b) - min(r, g, b).
func Sat(c rgba.RGBAF) float32 {
	return max(c.R, c.G, c.B) - min(c.R, c.G, c.B)
}

// SetSat rescales the color channels of c so their spread equals sat. The
// smallest channel becomes 0 and the largest becomes sat. Ties are resolved by
// comparing red with green first and then placing blue. When no channel lies
// strictly between the others the color collapses to black. Alpha is kept.
func SetSat(c rgba.RGBAF, sat float32) rgba.RGBAF {
	cmin, cmax := &c.R, &c.G
	if !(c.R < c.G) {
		cmin, cmax = &c.G, &c.R
	}

	cmid := &c.B
	if *cmid < *cmin {
		cmid, cmin = cmin, &c.B
	} else if *cmax < *cmid {
		cmid, cmax = cmax, &c.B
	}

	if *cmid < *cmax {
		*cmid = (*cmid - *cmin) * sat / (*cmax - *cmin)
		*cmax = sat
	} else {
		*cmid, *cmax = 0, 0
	}
	*cmin = 0
	return c
}

// SetLum shifts c so that Lum(c) == lum, then pulls any channel that left
// [0, 1] back toward the luma while keeping it. Alpha is kept.
func SetLum(c rgba.RGBAF, lum float32) rgba.RGBAF {
	d := lum - Lum(c)
	c.R += d
	c.G += d
	c.B += d
	return clipColor(c, lum)
}

func clipColor(c rgba.RGBAF, lum float32) rgba.RGBAF {
	n := min(c.R, c.G, c.B)
	x := max(c.R, c.G, c.B)

	if n < 0 && lum != n {
		s := lum / (lum - n)
		c.R = lum + (c.R-lum)*s
		c.G = lum + (c.G-lum)*s
		c.B = lum + (c.B-lum)*s
	}
	if x > 1 && x != lum {
		s := (1 - lum) / (x - lum)
		c.R = lum + (c.R-lum)*s
		c.G = lum + (c.G-lum)*s
		c.B = lum + (c.B-lum)*s
	}
	return c
}

// HueMix takes the hue of cs with the saturation and luma of cb.
func HueMix(cb, cs rgba.RGBAF) rgba.RGBAF {
	return SetLum(SetSat(cs, Sat(cb)), Lum(cb))
}

// SaturationMix takes the saturation of cs with the hue and luma of cb.
func SaturationMix(cb, cs rgba.RGBAF) rgba.RGBAF {
	return SetLum(SetSat(cb, Sat(cs)), Lum(cb))
}

// ColorMix takes the hue and saturation of cs with the luma of cb.
func ColorMix(cb, cs rgba.RGBAF) rgba.RGBAF {
	return SetLum(cs, Lum(cb))
}

// LuminosityMix takes the luma of cs with the hue and saturation of cb.
func LuminosityMix(cb, cs rgba.RGBAF) rgba.RGBAF {
	return SetLum(cb, Lum(cs))
}

// HSLFunc returns the whole-color mix of a non-separable mode.
func (m Mode) HSLFunc() (HSLFunc, bool) {
	switch m {
	case Hue:
		return HueMix, true
	case Saturation:
		return SaturationMix, true
	case Color:
		return ColorMix, true
	case Luminosity:
		return LuminosityMix, true
	}
	return nil, false
}

// MixHSL wraps a whole-color mix in the same backdrop-alpha interpolation Mix
// uses: C = (1 - αb)·Cs + αb·B(Cb, Cs). The result keeps the source alpha.
func MixHSL(src, dst rgba.RGBAF, f HSLFunc) rgba.RGBAF {
	b := f(dst, src)
	ia := 1 - dst.A
	return rgba.RGBAF{
		R: ia*src.R + dst.A*b.R,
		G: ia*src.G + dst.A*b.G,
		B: ia*src.B + dst.A*b.B,
		A: src.A,
	}
}
