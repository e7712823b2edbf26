package rgba

import "fmt"

// Concrete color kinds. RGBAF is the authoritative kind for blending math.
type (
	RGBA8  = RGBA[uint8]
	RGBA16 = RGBA[uint16]
	RGBAF  = RGBA[float32]
)

// New returns the color (r, g, b, a).
func New[T Channel](r, g, b, a T) RGBA[T] {
	return RGBA[T]{R: r, G: g, B: b, A: a}
}

// Opaque returns (r, g, b) with alpha at the channel maximum.
func Opaque[T Channel](r, g, b T) RGBA[T] {
	return RGBA[T]{R: r, G: g, B: b, A: Max[T]()}
}

// FromArray builds a color from [r, g, b, a].
func FromArray[T Channel](v [4]T) RGBA[T] {
	return RGBA[T]{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// FromRGB builds an opaque color from [r, g, b].
func FromRGB[T Channel](v [3]T) RGBA[T] {
	return Opaque(v[0], v[1], v[2])
}

// FromSlice builds a color from an r, g, b[, a] slice. A three element slice
// yields an opaque color.
func FromSlice[T Channel](v []T) (RGBA[T], error) {
	switch len(v) {
	case 3:
		return Opaque(v[0], v[1], v[2]), nil
	case 4:
		return New(v[0], v[1], v[2], v[3]), nil
	default:
		return RGBA[T]{}, fmt.Errorf("color needs 3 or 4 channels, got %d", len(v))
	}
}

// Array returns the channels as [r, g, b, a].
func (c RGBA[T]) Array() [4]T {
	return [4]T{c.R, c.G, c.B, c.A}
}

// RGB returns the color channels as [r, g, b].
func (c RGBA[T]) RGB() [3]T {
	return [3]T{c.R, c.G, c.B}
}

// Default is the value of an unset color: opaque black.
func Default[T Channel]() RGBA[T] { return Black[T]() }

// Named colors. Zero is fully transparent; the rest are opaque.

func Zero[T Channel]() RGBA[T] { return RGBA[T]{} }

func White[T Channel]() RGBA[T] {
	m := Max[T]()
	return RGBA[T]{R: m, G: m, B: m, A: m}
}

func Black[T Channel]() RGBA[T] { return RGBA[T]{A: Max[T]()} }

func Red[T Channel]() RGBA[T] { return Opaque(Max[T](), 0, 0) }

func Green[T Channel]() RGBA[T] { return Opaque(0, Max[T](), 0) }

func Blue[T Channel]() RGBA[T] { return Opaque(0, 0, Max[T]()) }

func Cyan[T Channel]() RGBA[T] { return Opaque(0, Max[T](), Max[T]()) }

func Yellow[T Channel]() RGBA[T] { return Opaque(Max[T](), Max[T](), 0) }

func Purple[T Channel]() RGBA[T] { return Opaque(Max[T](), 0, Max[T]()) }

// String formats the channels in r, g, b, a order.
func (c RGBA[T]) String() string {
	return fmt.Sprintf("rgba(%v, %v, %v, %v)", c.R, c.G, c.B, c.A)
}
