package blend

import "github.com/MeKo-Tech/colorblend/internal/rgba"

// Composite weights the straight colors src and dst by fa and fb and returns
// the premultiplied sum:
//
//	αa = fa·αs, αb = fb·αb
//	C  = αa·Cs + αb·Cb
//	α  = min(1, αa + αb)
//
// The color channels are not divided by the resulting alpha.
func Composite(src, dst rgba.RGBAF, fa, fb float32) rgba.RGBAF {
	wa := fa * src.A
	wb := fb * dst.A
	return rgba.RGBAF{
		R: wa*src.R + wb*dst.R,
		G: wa*src.G + wb*dst.G,
		B: wa*src.B + wb*dst.B,
		A: min(1, wa+wb),
	}
}

// Factors returns the Porter-Duff weights (Fa, Fb) of a compositing operator
// for the given source and backdrop alphas. ok is false for blend modes.
func (m Mode) Factors(srcA, dstA float32) (fa, fb float32, ok bool) {
	switch m {
	case Clear:
		return 0, 0, true
	case Copy:
		return 1, 0, true
	case Dest:
		return 0, 1, true
	case SrcOver:
		return 1, 1 - srcA, true
	case DstOver:
		return 1 - dstA, 1, true
	case SrcIn:
		return dstA, 0, true
	case DstIn:
		return 0, srcA, true
	case SrcOut:
		return 1 - dstA, 0, true
	case DstOut:
		return 0, 1 - srcA, true
	case SrcAtop:
		return dstA, 1 - srcA, true
	case DstAtop:
		return 1 - dstA, srcA, true
	case Xor:
		return 1 - dstA, 1 - srcA, true
	case Lighter:
		return 1, 1, true
	}
	return 0, 0, false
}

// CompositeOp composites src over dst with operator op. Blend modes fall back
// to SrcOver.
func CompositeOp(op Mode, src, dst rgba.RGBAF) rgba.RGBAF {
	fa, fb, ok := op.Factors(src.A, dst.A)
	if !ok {
		fa, fb, _ = SrcOver.Factors(src.A, dst.A)
	}
	return Composite(src, dst, fa, fb)
}
