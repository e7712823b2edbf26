package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(80 * x), G: uint8(100 * y), B: 7, A: 255})
		}
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	img := testImage()

	require.NoError(t, Save(path, img, png.BestSpeed))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, NRGBA(got).Pix)
}

func TestLoadOtherFormats(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, img))
	bmpPath := filepath.Join(dir, "layer.bmp")
	require.NoError(t, os.WriteFile(bmpPath, bmpBuf.Bytes(), 0o644))

	got, err := Load(bmpPath)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
	assert.Equal(t, img.Pix, NRGBA(got).Pix)

	var jpgBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpgBuf, img, nil))
	jpg, err := Decode(&jpgBuf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), jpg.Bounds())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestNRGBAMovesToOrigin(t *testing.T) {
	img := testImage()
	assert.Same(t, img, NRGBA(img))

	sub := img.SubImage(image.Rect(1, 1, 3, 2))
	got := NRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
	assert.Equal(t, img.NRGBAAt(1, 1), got.NRGBAAt(0, 0))
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    png.CompressionLevel
		wantErr bool
	}{
		{in: "", want: png.DefaultCompression},
		{in: "default", want: png.DefaultCompression},
		{in: "speed", want: png.BestSpeed},
		{in: "FAST", want: png.BestSpeed},
		{in: "best", want: png.BestCompression},
		{in: "none", want: png.NoCompression},
		{in: "zstd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
