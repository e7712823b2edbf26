package blend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

func TestSeparableFuncs(t *testing.T) {
	// cb = 0.25, cs = 0.75 unless noted.
	tests := []struct {
		mode Mode
		cb   float32
		cs   float32
		want float32
	}{
		{Multiply, 0.25, 0.75, 0.1875},
		{Screen, 0.25, 0.75, 0.8125},
		{Overlay, 0.25, 0.75, 0.375},
		{Darken, 0.25, 0.75, 0.25},
		{Lighten, 0.25, 0.75, 0.75},
		{ColorDodge, 0.25, 0.75, 1},
		{ColorDodge, 0.5, 1, 1},
		{ColorDodge, 0.25, 0.5, 0.5},
		{ColorBurn, 0.25, 0.75, 0},
		{ColorBurn, 0.5, 0, 0},
		{ColorBurn, 0.75, 0.5, 0.5},
		{HardLight, 0.25, 0.75, 0.625},
		{HardLight, 0.5, 0.25, 0.25},
		{SoftLight, 0.25, 0.75, 0.375},
		{SoftLight, 0.64, 0.75, 0.72},
		{SoftLight, 0.5, 0.25, 0.375},
		{Difference, 0.25, 0.75, 0.5},
		{Difference, 0.75, 0.25, 0.5},
		{Exclusion, 0.25, 0.75, 0.625},
		{Divide, 0.25, 0.75, 1.0 / 3},
		{Divide, 0.5, 0, 1},
		{Divide, 0.75, 0.25, 1},
		{Subtract, 0.25, 0.75, 0},
		{Subtract, 0.75, 0.25, 0.5},
		{LinearBurn, 0.25, 0.75, 0},
		{LinearBurn, 0.75, 0.75, 0.5},
		{LinearDodge, 0.25, 0.75, 1},
		{LinearDodge, 0.25, 0.5, 0.75},
		{LinearLight, 0.25, 0.75, 0.25},
		{LinearLight, 0.75, 0.25, 0.75},
		{VividLight, 0.25, 0.75, 0.5},
		{VividLight, 0.3, 1, 1},
		{VividLight, 0.3, 0, 0},
		{VividLight, 0.75, 0.25, 0.5},
		{HardMix, 0.25, 0.75, 0},
		{HardMix, 0.5, 0.75, 1},
		{PinLight, 0.25, 0.75, 0.5},
		{PinLight, 0.75, 0.25, 0.5},
		{Overwrite, 0.25, 0.75, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f, ok := tt.mode.Func()
			require.True(t, ok)
			assert.InDelta(t, tt.want, f(tt.cb, tt.cs), eps, "B(%v, %v)", tt.cb, tt.cs)
		})
	}
}

func TestEveryBlendModeHasAFunc(t *testing.T) {
	for _, m := range Modes() {
		_, sep := m.Func()
		_, hsl := m.HSLFunc()
		switch {
		case m == Normal, m.IsCompositing():
			assert.False(t, sep || hsl, m.String())
		case m.IsNonSeparable():
			assert.True(t, hsl, m.String())
			assert.False(t, sep, m.String())
		default:
			assert.True(t, sep, m.String())
			assert.False(t, hsl, m.String())
		}
	}
}

func TestSeparableGuardsStayInRange(t *testing.T) {
	edges := []float32{0, 0.25, 0.5, 0.75, 1}
	for _, m := range Modes() {
		f, ok := m.Func()
		if !ok {
			continue
		}
		for _, cb := range edges {
			for _, cs := range edges {
				v := f(cb, cs)
				if v < 0 || v > 1 || v != v {
					t.Errorf("%s(%v, %v) = %v out of range", m, cb, cs, v)
				}
			}
		}
	}
}

func TestBlendProperties(t *testing.T) {
	white := rgba.White[float32]()
	black := rgba.Black[float32]()
	xs := []rgba.RGBAF{
		warm,
		cool,
		rgba.New[float32](1, 0, 0.5, 1),
		rgba.Opaque[float32](0.01, 0.99, 0.5),
	}

	for _, x := range xs {
		assert.Equal(t, x, Normal.Apply(x, cool))

		assertColor(t, x, Multiply.Apply(white, x), eps)
		assertColor(t, black, Multiply.Apply(black, x), eps)
		assertColor(t, white, Screen.Apply(white, x), eps)
		assertColor(t, x, Screen.Apply(black, x), eps)

		d := Darken.Apply(x, cool)
		assert.InDelta(t, min(x.R, cool.R), d.R, eps)
		assert.InDelta(t, min(x.G, cool.G), d.G, eps)
		assert.InDelta(t, min(x.B, cool.B), d.B, eps)
	}
}

func TestMixWeightsByBackdropAlpha(t *testing.T) {
	src := rgba.New[float32](0.8, 0.4, 0.2, 0.6)

	// Without a backdrop the source passes through.
	assertColor(t, src, Multiply.Apply(src, rgba.New[float32](0.5, 0.5, 0.5, 0)), eps)

	// Half backdrop: halfway between source and B(cb, cs).
	got := Multiply.Apply(src, rgba.New[float32](0.5, 0.5, 0.5, 0.5))
	assertColor(t, rgba.New[float32](0.6, 0.3, 0.15, 0.6), got, eps)
}
