package mask

import (
	"image"
	"image/color"
	"testing"
)

func square(size, from, to int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := from; y < to; y++ {
		for x := from; x < to; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	return img
}

func TestBinary(t *testing.T) {
	img := square(10, 3, 7)
	img.SetNRGBA(0, 9, color.NRGBA{R: 10, A: 1})

	m := Binary(img)

	if m.Bounds() != img.Bounds() {
		t.Errorf("mask bounds %v != image bounds %v", m.Bounds(), img.Bounds())
	}
	if got := m.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("background should be 0, got %d", got)
	}
	if got := m.GrayAt(5, 5).Y; got != 255 {
		t.Errorf("feature should be 255, got %d", got)
	}
	if got := m.GrayAt(0, 9).Y; got != 255 {
		t.Errorf("faint pixel should count as covered, got %d", got)
	}
}

func TestBlur(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	blurred := Blur(m, 1.0)

	if blurred.Bounds() != m.Bounds() {
		t.Errorf("blurred bounds %v != mask bounds %v", blurred.Bounds(), m.Bounds())
	}
	if v := blurred.GrayAt(0, 5).Y; v > 50 {
		t.Errorf("far left should stay dark, got %d", v)
	}
	if v := blurred.GrayAt(9, 5).Y; v < 200 {
		t.Errorf("far right should stay bright, got %d", v)
	}
	if v := blurred.GrayAt(5, 5).Y; v == 0 || v == 255 {
		t.Errorf("edge should be softened, got %d", v)
	}

	if got := Blur(m, 0); got.GrayAt(5, 5).Y != 255 || got == m {
		t.Error("zero sigma should return an unchanged copy")
	}
}

func TestNoise(t *testing.T) {
	a := Noise(64, 64, 8, 42)
	b := Noise(64, 64, 8, 42)
	c := Noise(64, 64, 8, 7)

	if a.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("unexpected bounds %v", a.Bounds())
	}

	varied, same, differs := false, true, 0
	first := a.GrayAt(0, 0).Y
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if a.GrayAt(x, y).Y != first {
				varied = true
			}
			if a.GrayAt(x, y).Y != b.GrayAt(x, y).Y {
				same = false
			}
			if a.GrayAt(x, y).Y != c.GrayAt(x, y).Y {
				differs++
			}
		}
	}

	if !varied {
		t.Error("noise should vary across the mask")
	}
	if !same {
		t.Error("same seed should produce the same noise")
	}
	if differs == 0 {
		t.Error("different seeds should produce different noise")
	}
}

func TestApplyNoise(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range m.Pix {
		m.Pix[i] = 100
	}

	noise := image.NewGray(image.Rect(0, 0, 2, 2))
	noise.SetGray(0, 0, color.Gray{Y: 228})
	noise.SetGray(1, 0, color.Gray{Y: 28})
	noise.SetGray(0, 1, color.Gray{Y: 128})
	noise.SetGray(1, 1, color.Gray{Y: 255})

	got := ApplyNoise(m, noise, 0.5)

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 150},
		{1, 0, 50},
		{0, 1, 100},
		{2, 2, 150}, // tiled
		{3, 2, 50},
	}
	for _, tt := range tests {
		if v := got.GrayAt(tt.x, tt.y).Y; v != tt.want {
			t.Errorf("(%d,%d) = %d, want %d", tt.x, tt.y, v, tt.want)
		}
	}

	if v := ApplyNoise(m, noise, 0).GrayAt(1, 1).Y; v != 100 {
		t.Errorf("zero strength should keep the mask, got %d", v)
	}
}

func TestThreshold(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 3, 1))
	m.SetGray(0, 0, color.Gray{Y: 127})
	m.SetGray(1, 0, color.Gray{Y: 128})
	m.SetGray(2, 0, color.Gray{Y: 255})

	got := Threshold(m, 128)
	want := []uint8{0, 255, 255}
	for x, w := range want {
		if v := got.GrayAt(x, 0).Y; v != w {
			t.Errorf("x=%d: got %d, want %d", x, v, w)
		}
	}
}

func TestFromAlphaAndLuma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 200})

	a := FromAlpha(img)
	if got := a.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("alpha at (0,0) = %d, want 0", got)
	}
	if got := a.GrayAt(1, 0).Y; got != 200 {
		t.Errorf("alpha at (1,0) = %d, want 200", got)
	}

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 77})
	if got := FromLuma(gray).GrayAt(0, 0).Y; got != 77 {
		t.Errorf("luma = %d, want 77", got)
	}
}

func TestInvertMaxMin(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 2, 1))
	b := image.NewGray(image.Rect(0, 0, 2, 1))
	a.SetGray(0, 0, color.Gray{Y: 10})
	a.SetGray(1, 0, color.Gray{Y: 200})
	b.SetGray(0, 0, color.Gray{Y: 50})
	b.SetGray(1, 0, color.Gray{Y: 150})

	if got := Invert(a).GrayAt(0, 0).Y; got != 245 {
		t.Errorf("Invert = %d, want 245", got)
	}

	hi, lo := Max(a, b), Min(a, b)
	if hi.GrayAt(0, 0).Y != 50 || hi.GrayAt(1, 0).Y != 200 {
		t.Errorf("Max = %v", hi.Pix)
	}
	if lo.GrayAt(0, 0).Y != 10 || lo.GrayAt(1, 0).Y != 150 {
		t.Errorf("Min = %v", lo.Pix)
	}

	if Max(nil, nil) != nil {
		t.Error("Max(nil, nil) should be nil")
	}
	if got := Min(nil, b); got.GrayAt(1, 0).Y != 150 {
		t.Errorf("Min(nil, b) should copy b, got %v", got.Pix)
	}
}

func TestAt(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 2, 2))
	m.SetGray(1, 1, color.Gray{Y: 51})

	if v := At(m, 1, 1); v != 0.2 {
		t.Errorf("At(1,1) = %v, want 0.2", v)
	}
	if v := At(m, 5, 5); v != 1 {
		t.Errorf("outside the mask should be covered, got %v", v)
	}
	if v := At(nil, 0, 0); v != 1 {
		t.Errorf("nil mask should be covered, got %v", v)
	}
}
