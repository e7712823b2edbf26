package blend

import "github.com/MeKo-Tech/colorblend/internal/rgba"

// Apply runs a single mode on straight colors src and dst.
//
// Compositing operators return a premultiplied color. Blend modes return a
// straight color with the source alpha; Normal returns src unchanged. Modes
// outside the enumeration also return src.
func (m Mode) Apply(src, dst rgba.RGBAF) rgba.RGBAF {
	if fa, fb, ok := m.Factors(src.A, dst.A); ok {
		return Composite(src, dst, fa, fb)
	}
	if f, ok := m.Func(); ok {
		return Mix(src, dst, f)
	}
	if f, ok := m.HSLFunc(); ok {
		return MixHSL(src, dst, f)
	}
	return src
}

// Compose evaluates the general compositing formula: the source is first
// mixed with the backdrop using mix, then composited with op.
//
//	Cs' = (1 - αb)·Cs + αb·B(Cb, Cs)
//	Co  = αs·Fa·Cs' + αb·Fb·Cb
//
// The result is premultiplied. A mix that is not a blend mode behaves as
// Normal and an op that is not a compositing operator behaves as SrcOver.
func Compose(op, mix Mode, src, dst rgba.RGBAF) rgba.RGBAF {
	if mix.IsBlending() {
		src = mix.Apply(src, dst)
	}
	return CompositeOp(op, src, dst)
}
