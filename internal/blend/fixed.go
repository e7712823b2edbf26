package blend

import "github.com/MeKo-Tech/colorblend/internal/rgba"

// 8-bit fixed-point versions of the compositing operators and of the blend
// modes that need no division. Results agree with the float path followed by
// rgba.Quantize8 to within 2 units.

// Func8 is a separable mixing function on 8-bit channels.
type Func8 func(cb, cs uint8) uint8

// mul255 returns round(a*b/255).
func mul255(a, b uint32) uint32 {
	return (a*b + 127) / 255
}

func clamp255(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// factors8 is Factors with alphas in [0, 255].
func (m Mode) factors8(sa, da uint32) (fa, fb uint32, ok bool) {
	switch m {
	case Clear:
		return 0, 0, true
	case Copy:
		return 255, 0, true
	case Dest:
		return 0, 255, true
	case SrcOver:
		return 255, 255 - sa, true
	case DstOver:
		return 255 - da, 255, true
	case SrcIn:
		return da, 0, true
	case DstIn:
		return 0, sa, true
	case SrcOut:
		return 255 - da, 0, true
	case DstOut:
		return 0, 255 - sa, true
	case SrcAtop:
		return da, 255 - sa, true
	case DstAtop:
		return 255 - da, sa, true
	case Xor:
		return 255 - da, 255 - sa, true
	case Lighter:
		return 255, 255, true
	}
	return 0, 0, false
}

// Composite8 is CompositeOp on straight 8-bit colors. The result is
// premultiplied and saturates at 255.
func Composite8(op Mode, src, dst rgba.RGBA8) rgba.RGBA8 {
	sa, da := uint32(src.A), uint32(dst.A)
	fa, fb, ok := op.factors8(sa, da)
	if !ok {
		fa, fb, _ = SrcOver.factors8(sa, da)
	}

	wa := mul255(fa, sa)
	wb := mul255(fb, da)
	return rgba.RGBA8{
		R: clamp255(mul255(wa, uint32(src.R)) + mul255(wb, uint32(dst.R))),
		G: clamp255(mul255(wa, uint32(src.G)) + mul255(wb, uint32(dst.G))),
		B: clamp255(mul255(wa, uint32(src.B)) + mul255(wb, uint32(dst.B))),
		A: clamp255(wa + wb),
	}
}

var funcs8 = [modeCount]Func8{
	Multiply:    func(cb, cs uint8) uint8 { return uint8(mul255(uint32(cb), uint32(cs))) },
	Screen:      func(cb, cs uint8) uint8 { return 255 - uint8(mul255(255-uint32(cb), 255-uint32(cs))) },
	Darken:      func(cb, cs uint8) uint8 { return min(cb, cs) },
	Lighten:     func(cb, cs uint8) uint8 { return max(cb, cs) },
	Difference:  func(cb, cs uint8) uint8 { return max(cb, cs) - min(cb, cs) },
	Exclusion:   exclusion8,
	Subtract:    func(cb, cs uint8) uint8 { return cb - min(cb, cs) },
	LinearBurn:  func(cb, cs uint8) uint8 { return uint8(max(uint32(cb)+uint32(cs), 255) - 255) },
	LinearDodge: func(cb, cs uint8) uint8 { return clamp255(uint32(cb) + uint32(cs)) },
	Overwrite:   func(cb, _ uint8) uint8 { return cb },
}

func exclusion8(cb, cs uint8) uint8 {
	b, s := uint32(cb), uint32(cs)
	return uint8(b + s - (2*b*s+127)/255)
}

// Func8 returns the 8-bit mixing function of m, if it has one.
func (m Mode) Func8() (Func8, bool) {
	if m >= modeCount {
		return nil, false
	}
	f := funcs8[m]
	return f, f != nil
}

// Mix8 blends straight 8-bit colors with a mode that has an 8-bit mixing
// function. ok is false for every other mode except Normal, which returns
// src.
func Mix8(mode Mode, src, dst rgba.RGBA8) (c rgba.RGBA8, ok bool) {
	if mode == Normal {
		return src, true
	}
	f, ok := mode.Func8()
	if !ok {
		return rgba.RGBA8{}, false
	}

	da := uint32(dst.A)
	ia := 255 - da
	mix := func(cb, cs uint8) uint8 {
		return uint8((ia*uint32(cs) + da*uint32(f(cb, cs)) + 127) / 255)
	}
	return rgba.RGBA8{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: src.A,
	}, true
}
