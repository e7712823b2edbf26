package rgba

import "image/color"

// quantize maps a normalized value onto [0, max] rounding half up.
// Values outside [0, 1] saturate instead of relying on float-to-int overflow.
func quantize(v float32, max float32) float32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return max
	}
	return v*max + 0.5
}

// Quantize8 converts a float color to 8-bit channels: round(v * 255).
func Quantize8(c RGBAF) RGBA8 {
	return RGBA8{
		R: uint8(quantize(c.R, MaxU8)),
		G: uint8(quantize(c.G, MaxU8)),
		B: uint8(quantize(c.B, MaxU8)),
		A: uint8(quantize(c.A, MaxU8)),
	}
}

// Quantize16 converts a float color to 16-bit channels: round(v * 65535).
func Quantize16(c RGBAF) RGBA16 {
	return RGBA16{
		R: uint16(quantize(c.R, MaxU16)),
		G: uint16(quantize(c.G, MaxU16)),
		B: uint16(quantize(c.B, MaxU16)),
		A: uint16(quantize(c.A, MaxU16)),
	}
}

// Normalize8 maps 8-bit channels onto [0, 1].
func Normalize8(c RGBA8) RGBAF {
	return RGBAF{
		R: float32(c.R) / MaxU8,
		G: float32(c.G) / MaxU8,
		B: float32(c.B) / MaxU8,
		A: float32(c.A) / MaxU8,
	}
}

// Normalize16 maps 16-bit channels onto [0, 1].
func Normalize16(c RGBA16) RGBAF {
	return RGBAF{
		R: float32(c.R) / MaxU16,
		G: float32(c.G) / MaxU16,
		B: float32(c.B) / MaxU16,
		A: float32(c.A) / MaxU16,
	}
}

// Widen promotes 8-bit channels to 16 bits by shifting left 8 places.
// The low byte is left zero, so 0xFF becomes 0xFF00 rather than 0xFFFF.
func Widen(c RGBA8) RGBA16 {
	return RGBA16{
		R: uint16(c.R) << 8,
		G: uint16(c.G) << 8,
		B: uint16(c.B) << 8,
		A: uint16(c.A) << 8,
	}
}

// Narrow truncates 16-bit channels to 8 bits by dropping the low byte.
// No rounding is applied; Narrow(Widen(c)) == c for every c.
func Narrow(c RGBA16) RGBA8 {
	return RGBA8{
		R: uint8(c.R >> 8),
		G: uint8(c.G >> 8),
		B: uint8(c.B >> 8),
		A: uint8(c.A >> 8),
	}
}

// Premultiply scales the color channels of c by its alpha. Integer kinds use a
// rounded fixed-point product, (v*a + max/2) / max; alpha is unchanged.
func Premultiply[T Channel](c RGBA[T]) RGBA[T] {
	switch p := any(&c).(type) {
	case *RGBA8:
		*p = premultiply8(*p)
	case *RGBA16:
		*p = premultiply16(*p)
	case *RGBAF:
		*p = premultiplyF(*p)
	}
	return c
}

func premultiply8(c RGBA8) RGBA8 {
	const half = MaxU8 / 2
	a := uint32(c.A)
	return RGBA8{
		R: uint8((uint32(c.R)*a + half) / MaxU8),
		G: uint8((uint32(c.G)*a + half) / MaxU8),
		B: uint8((uint32(c.B)*a + half) / MaxU8),
		A: c.A,
	}
}

func premultiply16(c RGBA16) RGBA16 {
	const half = MaxU16 / 2
	a := uint64(c.A)
	return RGBA16{
		R: uint16((uint64(c.R)*a + half) / MaxU16),
		G: uint16((uint64(c.G)*a + half) / MaxU16),
		B: uint16((uint64(c.B)*a + half) / MaxU16),
		A: c.A,
	}
}

func premultiplyF(c RGBAF) RGBAF {
	return RGBAF{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply divides the color channels of a premultiplied float color by
// its alpha. A zero alpha yields transparent black.
func Unpremultiply(c RGBAF) RGBAF {
	if c.A == 0 {
		return RGBAF{}
	}
	return RGBAF{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// FromNRGBA converts a straight-alpha standard library color.
func FromNRGBA(c color.NRGBA) RGBA8 {
	return RGBA8{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color to straight 8-bit channels.
func FromColor(c color.Color) RGBA8 {
	return FromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// ToNRGBA converts c to the standard library straight-alpha color.
func ToNRGBA(c RGBA8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
