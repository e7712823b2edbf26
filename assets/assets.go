// Package assets embeds the default swatch palette.
package assets

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

//go:embed palette.json
var paletteJSON []byte

// Gradient is a two-stop linear gradient.
type Gradient struct {
	From rgba.HexColor `json:"from"`
	To   rgba.HexColor `json:"to"`
}

// Palette holds the colors used to draw mode swatches.
type Palette struct {
	// Backdrop colors are drawn as vertical stripes behind blend-mode swatches.
	Backdrop []rgba.HexColor `json:"backdrop"`
	Source   Gradient        `json:"source"`
	// Square and Disc are the destination and source shapes of the
	// Porter-Duff diagrams.
	Square rgba.HexColor `json:"square"`
	Disc   rgba.HexColor `json:"disc"`
	Paper  rgba.HexColor `json:"paper"`
}

// ParsePalette decodes a palette from JSON.
func ParsePalette(data []byte) (Palette, error) {
	var p Palette
	if err := json.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("failed to parse palette: %w", err)
	}
	if len(p.Backdrop) == 0 {
		return Palette{}, fmt.Errorf("palette has no backdrop colors")
	}
	return p, nil
}

// DefaultPalette returns the embedded palette.
func DefaultPalette() Palette {
	p, err := ParsePalette(paletteJSON)
	if err != nil {
		panic(err)
	}
	return p
}
