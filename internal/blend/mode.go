// Package blend implements Porter-Duff compositing and the separable and
// non-separable (HSL) blend modes on normalized float colors.
//
// Inputs are always straight (non-premultiplied) colors with channels in
// [0, 1]. Compositing operators return premultiplied colors; blend modes
// return straight colors carrying the source alpha. Use rgba.Unpremultiply to
// feed a composite result back into a blend.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"fmt"
	"strings"
)

// Mode is a compositing operator or a blend mode.
type Mode uint8

// Porter-Duff compositing operators.
const (
	Clear   Mode = iota // 0, 0
	Copy                // S
	Dest                // D
	SrcOver             // S + D*(1-Sa)
	DstOver             // S*(1-Da) + D
	SrcIn               // S*Da
	DstIn               // D*Sa
	SrcOut              // S*(1-Da)
	DstOut              // D*(1-Sa)
	SrcAtop             // S*Da + D*(1-Sa)
	DstAtop             // S*(1-Da) + D*Sa
	Xor                 // S*(1-Da) + D*(1-Sa)
	Lighter             // S + D
)

// Blend modes.
const (
	Normal Mode = iota + Lighter + 1
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
	Divide
	Subtract
	LinearBurn
	LinearDodge
	LinearLight
	VividLight
	HardMix
	PinLight
	Overwrite

	modeCount
)

var modeNames = [modeCount]string{
	Clear:   "clear",
	Copy:    "copy",
	Dest:    "dest",
	SrcOver: "src-over",
	DstOver: "dst-over",
	SrcIn:   "src-in",
	DstIn:   "dst-in",
	SrcOut:  "src-out",
	DstOut:  "dst-out",
	SrcAtop: "src-atop",
	DstAtop: "dst-atop",
	Xor:     "xor",
	Lighter: "lighter",

	Normal:      "normal",
	Multiply:    "multiply",
	Screen:      "screen",
	Overlay:     "overlay",
	Darken:      "darken",
	Lighten:     "lighten",
	ColorDodge:  "color-dodge",
	ColorBurn:   "color-burn",
	HardLight:   "hard-light",
	SoftLight:   "soft-light",
	Difference:  "difference",
	Exclusion:   "exclusion",
	Hue:         "hue",
	Saturation:  "saturation",
	Color:       "color",
	Luminosity:  "luminosity",
	Divide:      "divide",
	Subtract:    "subtract",
	LinearBurn:  "linear-burn",
	LinearDodge: "linear-dodge",
	LinearLight: "linear-light",
	VividLight:  "vivid-light",
	HardMix:     "hard-mix",
	PinLight:    "pin-light",
	Overwrite:   "overwrite",
}

// Alternative spellings accepted by ParseMode.
var modeAliases = map[string]Mode{
	"src":         Copy,
	"source":      Copy,
	"dst":         Dest,
	"destination": Dest,
	"plus":        Lighter,
	"add":         LinearDodge,

	"source-over":      SrcOver,
	"source-in":        SrcIn,
	"source-out":       SrcOut,
	"source-atop":      SrcAtop,
	"destination-over": DstOver,
	"destination-in":   DstIn,
	"destination-out":  DstOut,
	"destination-atop": DstAtop,
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// IsValid reports whether m names a known mode.
func (m Mode) IsValid() bool { return m < modeCount }

// IsCompositing reports whether m is a Porter-Duff operator.
func (m Mode) IsCompositing() bool { return m <= Lighter }

// IsBlending reports whether m is a blend mode.
func (m Mode) IsBlending() bool { return m >= Normal && m < modeCount }

// IsSeparable reports whether m is a blend mode applied per channel.
func (m Mode) IsSeparable() bool {
	return m.IsBlending() && !m.IsNonSeparable()
}

// IsNonSeparable reports whether m is one of the HSL modes.
func (m Mode) IsNonSeparable() bool {
	return m >= Hue && m <= Luminosity
}

// Family names the group m belongs to: "compositing", "separable" or
// "non-separable".
func (m Mode) Family() string {
	switch {
	case m.IsCompositing():
		return "compositing"
	case m.IsNonSeparable():
		return "non-separable"
	default:
		return "separable"
	}
}

// Modes returns every mode, compositing operators first.
func Modes() []Mode {
	modes := make([]Mode, 0, modeCount)
	for m := Mode(0); m < modeCount; m++ {
		modes = append(modes, m)
	}
	return modes
}

// ParseMode parses a mode name. Matching ignores case, and underscores or
// spaces are treated as hyphens, so "SrcOver" style names without separators
// are accepted as well.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)

	if m, ok := modeAliases[name]; ok {
		return m, nil
	}

	compact := strings.ReplaceAll(name, "-", "")
	for m, n := range modeNames {
		if n == name || strings.ReplaceAll(n, "-", "") == compact {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid blend mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
