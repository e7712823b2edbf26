package composite

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
)

const size = 4

var bounds = image.Rect(0, 0, size, size)

func fillRect(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func filled(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(bounds)
	fillRect(img, bounds, c)
	return img
}

// alphaOver is the textbook straight-alpha source-over.
func alphaOver(top, bottom color.NRGBA) color.NRGBA {
	sa := float64(top.A) / 255.0
	ba := float64(bottom.A) / 255.0

	outA := sa + ba*(1.0-sa)
	if outA == 0 {
		return color.NRGBA{}
	}

	mix := func(s, b uint8) uint8 {
		return uint8(math.Round((float64(s)*sa + float64(b)*ba*(1.0-sa)) / outA))
	}

	return color.NRGBA{
		R: mix(top.R, bottom.R),
		G: mix(top.G, bottom.G),
		B: mix(top.B, bottom.B),
		A: uint8(math.Round(outA * 255.0)),
	}
}

func assertNear(t *testing.T, want, got color.NRGBA, msg string) {
	t.Helper()
	for _, p := range [][2]uint8{{want.R, got.R}, {want.G, got.G}, {want.B, got.B}, {want.A, got.A}} {
		assert.InDelta(t, int(p[0]), int(p[1]), 1, "%s: want %+v, got %+v", msg, want, got)
	}
}

func TestStackUsesOrderAndTransparency(t *testing.T) {
	water := filled(color.NRGBA{B: 255, A: 255})

	land := image.NewNRGBA(bounds)
	fillRect(land, image.Rect(0, 0, size/2, size/2), color.NRGBA{G: 255, A: 255})

	roads := image.NewNRGBA(bounds)
	for y := 0; y < size; y++ {
		roads.SetNRGBA(1, y, color.NRGBA{R: 255, A: 128})
	}

	out, err := Stack(context.Background(), nil, []Layer{
		NewLayer("water", water),
		NewLayer("land", land),
		NewLayer("roads", roads),
	}, bounds, Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{G: 255, A: 255}, out.NRGBAAt(0, 0), "land should sit above water")
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, out.NRGBAAt(3, 3), "water should show where land is transparent")
	assertNear(t, alphaOver(color.NRGBA{R: 255, A: 128}, color.NRGBA{G: 255, A: 255}), out.NRGBAAt(1, 1), "road over land")
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, out.NRGBAAt(0, 1))
}

func TestSrcOverMatchesAlphaOver(t *testing.T) {
	top := color.NRGBA{R: 200, G: 40, B: 90, A: 100}
	bottom := color.NRGBA{R: 10, G: 250, B: 128, A: 170}

	out, err := Stack(context.Background(), filled(bottom), []Layer{NewLayer("top", filled(top))}, bounds, Options{})
	require.NoError(t, err)
	assertNear(t, alphaOver(top, bottom), out.NRGBAAt(2, 2), "src-over")
}

func TestBlendModes(t *testing.T) {
	backdrop := filled(color.NRGBA{R: 128, G: 255, B: 64, A: 255})
	src := filled(color.NRGBA{R: 255, G: 128, B: 0, A: 255})

	tests := []struct {
		mode blend.Mode
		want color.NRGBA
	}{
		{blend.Multiply, color.NRGBA{R: 128, G: 128, B: 0, A: 255}},
		{blend.Screen, color.NRGBA{R: 255, G: 255, B: 64, A: 255}},
		{blend.Darken, color.NRGBA{R: 128, G: 128, B: 0, A: 255}},
		{blend.Overwrite, color.NRGBA{R: 128, G: 255, B: 64, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			layer := NewLayer("src", src)
			layer.Mode = tt.mode

			out, err := Stack(context.Background(), backdrop, []Layer{layer}, bounds, Options{Workers: 3})
			require.NoError(t, err)
			assertNear(t, tt.want, out.NRGBAAt(1, 2), tt.mode.String())
		})
	}
}

func TestOperators(t *testing.T) {
	backdrop := filled(color.NRGBA{B: 255, A: 255})
	src := filled(color.NRGBA{R: 255, A: 255})

	layer := NewLayer("src", src)
	layer.Op = blend.DstOver
	out, err := Stack(context.Background(), backdrop, []Layer{layer}, bounds, Options{})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, out.NRGBAAt(0, 0))

	layer.Op = blend.DstOut
	out, err = Stack(context.Background(), backdrop, []Layer{layer}, bounds, Options{})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(0, 0))

	layer.Op = blend.Xor
	out, err = Stack(context.Background(), nil, []Layer{layer}, bounds, Options{})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(0, 0))
}

func TestOpacityAndMask(t *testing.T) {
	backdrop := filled(color.NRGBA{B: 255, A: 255})
	src := filled(color.NRGBA{R: 255, A: 255})

	layer := NewLayer("src", src)
	layer.Opacity = 0
	out, err := Stack(context.Background(), backdrop, []Layer{layer}, bounds, Options{})
	require.NoError(t, err)
	assert.Equal(t, backdrop.Pix, out.Pix)

	m := image.NewGray(bounds)
	m.SetGray(0, 0, color.Gray{Y: 255})
	m.SetGray(1, 0, color.Gray{Y: 128})

	layer = NewLayer("src", src)
	layer.Mask = m
	out, err = Stack(context.Background(), backdrop, []Layer{layer}, bounds, Options{})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(0, 0))
	assertNear(t, color.NRGBA{R: 128, B: 127, A: 255}, out.NRGBAAt(1, 0), "half mask")
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, out.NRGBAAt(2, 0))
}

func TestGammaChangesMidtones(t *testing.T) {
	backdrop := filled(color.NRGBA{A: 255})
	src := filled(color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	linear, err := Stack(context.Background(), backdrop, []Layer{NewLayer("white", src)}, bounds, Options{})
	require.NoError(t, err)
	srgb, err := Stack(context.Background(), backdrop, []Layer{NewLayer("white", src)}, bounds, Options{Gamma: gamma.SRGB})
	require.NoError(t, err)

	assert.InDelta(t, 128, int(linear.NRGBAAt(0, 0).R), 1)
	// Half coverage in linear light encodes brighter.
	assert.InDelta(t, 188, int(srgb.NRGBAAt(0, 0).R), 1)
}

func TestValidatesBounds(t *testing.T) {
	bad := image.NewNRGBA(image.Rect(1, 1, 3, 3))
	ctx := context.Background()

	_, err := Stack(ctx, nil, []Layer{NewLayer("bad", bad)}, bounds, Options{})
	assert.Error(t, err)

	_, err = Stack(ctx, bad, nil, bounds, Options{})
	assert.Error(t, err)

	layer := NewLayer("masked", filled(color.NRGBA{A: 255}))
	layer.Mask = image.NewGray(image.Rect(0, 0, 2, 2))
	_, err = Stack(ctx, nil, []Layer{layer}, bounds, Options{})
	assert.Error(t, err)

	_, err = Stack(ctx, nil, []Layer{{Name: "empty"}}, bounds, Options{})
	assert.Error(t, err)

	_, err = Stack(ctx, nil, nil, image.Rectangle{}, Options{})
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Stack(ctx, nil, []Layer{NewLayer("src", filled(color.NRGBA{A: 255}))}, bounds, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
