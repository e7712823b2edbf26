package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	require.Len(t, p.Backdrop, 6)
	assert.Equal(t, rgba.Opaque[uint8](0x1b, 0x3a, 0x5c), p.Backdrop[0].Color())
	assert.Equal(t, rgba.White[uint8](), p.Source.From.Color())
	assert.Equal(t, uint8(0xcc), p.Disc.A)
}

func TestParsePalette(t *testing.T) {
	_, err := ParsePalette([]byte(`{"backdrop": []}`))
	assert.Error(t, err)

	_, err = ParsePalette([]byte(`{"backdrop": ["#zz0000"]}`))
	assert.Error(t, err)

	p, err := ParsePalette([]byte(`{"backdrop": ["#000000"], "disc": "#ff000080"}`))
	require.NoError(t, err)
	assert.Equal(t, rgba.New[uint8](255, 0, 0, 128), p.Disc.Color())
}
