package blend

import (
	"math"

	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

// Func is a separable mixing function B(cb, cs) of a backdrop channel and a
// source channel, both in [0, 1].
type Func func(cb, cs float32) float32

// Mix blends src into dst one channel at a time:
//
//	C = (1 - αb)·Cs + αb·B(Cb, Cs)
//
// The result is straight and keeps the source alpha.
func Mix(src, dst rgba.RGBAF, f Func) rgba.RGBAF {
	ia := 1 - dst.A
	return rgba.RGBAF{
		R: ia*src.R + dst.A*f(dst.R, src.R),
		G: ia*src.G + dst.A*f(dst.G, src.G),
		B: ia*src.B + dst.A*f(dst.B, src.B),
		A: src.A,
	}
}

var separableFuncs = [modeCount]Func{
	Multiply:    multiply,
	Screen:      screen,
	Overlay:     overlay,
	Darken:      darken,
	Lighten:     lighten,
	ColorDodge:  colorDodge,
	ColorBurn:   colorBurn,
	HardLight:   hardLight,
	SoftLight:   softLight,
	Difference:  difference,
	Exclusion:   exclusion,
	Divide:      divide,
	Subtract:    subtract,
	LinearBurn:  linearBurn,
	LinearDodge: linearDodge,
	LinearLight: linearLight,
	VividLight:  vividLight,
	HardMix:     hardMix,
	PinLight:    pinLight,
	Overwrite:   overwrite,
}

// Func returns the mixing function of a separable blend mode. Normal has none
// since it leaves the source untouched.
func (m Mode) Func() (Func, bool) {
	if m >= modeCount {
		return nil, false
	}
	f := separableFuncs[m]
	return f, f != nil
}

func multiply(cb, cs float32) float32 { return cb * cs }

func screen(cb, cs float32) float32 { return cb + cs - cb*cs }

func overlay(cb, cs float32) float32 { return hardLight(cs, cb) }

func darken(cb, cs float32) float32 { return min(cb, cs) }

func lighten(cb, cs float32) float32 { return max(cb, cs) }

func colorDodge(cb, cs float32) float32 {
	if cs == 1 {
		return 1
	}
	return min(1, cb/(1-cs))
}

func colorBurn(cb, cs float32) float32 {
	if cs == 0 {
		return 0
	}
	return 1 - min(1, (1-cb)/cs)
}

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb * cs * 2
	}
	return 1 - (1-cb)*(1-cs)*2
}

func softLight(cb, cs float32) float32 {
	var d float32
	switch {
	case cs <= 0.5:
		d = cb * (1 - cb)
	case cb <= 0.25:
		d = ((16*cb-12)*cb+4)*cb - cb
	default:
		d = float32(math.Sqrt(float64(cb))) - cb
	}
	return d*(2*cs-1) + cb
}

func difference(cb, cs float32) float32 {
	if cb > cs {
		return cb - cs
	}
	return cs - cb
}

func exclusion(cb, cs float32) float32 { return cb + cs - 2*cb*cs }

func divide(cb, cs float32) float32 {
	if cs == 0 {
		return 1
	}
	return min(1, cb/cs)
}

func subtract(cb, cs float32) float32 { return max(0, cb-cs) }

func linearBurn(cb, cs float32) float32 { return max(0, cb+cs-1) }

func linearDodge(cb, cs float32) float32 { return min(1, cb+cs) }

func linearLight(cb, cs float32) float32 {
	if cb >= 0.5 {
		return min(1, cs+2*(cb-0.5))
	}
	return max(0, cs+2*cb-1)
}

func vividLight(cb, cs float32) float32 {
	if cs >= 0.5 {
		if cs == 1 {
			return 1
		}
		return min(1, cb/(1-cs)/2)
	}
	if cs == 0 {
		return 0
	}
	return 1 - min(1, (1-cb)/cs/2)
}

func hardMix(cb, cs float32) float32 {
	if 1-cs < cb {
		return 1
	}
	return 0
}

func pinLight(cb, cs float32) float32 {
	if cs >= 0.5 {
		return max(cb, 2*(cs-0.5))
	}
	return min(cb, 2*cs)
}

func overwrite(cb, _ float32) float32 { return cb }
