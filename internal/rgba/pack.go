package rgba

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Pack8 packs c into a 0xAARRGGBB word.
func Pack8(c RGBA8) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack8 is the inverse of Pack8.
func Unpack8(v uint32) RGBA8 {
	return RGBA8{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Pack16 packs c into a 0xAAAARRRRGGGGBBBB word.
func Pack16(c RGBA16) uint64 {
	return uint64(c.A)<<48 | uint64(c.R)<<32 | uint64(c.G)<<16 | uint64(c.B)
}

// Unpack16 is the inverse of Pack16.
func Unpack16(v uint64) RGBA16 {
	return RGBA16{
		A: uint16(v >> 48),
		R: uint16(v >> 32),
		G: uint16(v >> 16),
		B: uint16(v),
	}
}

// PutNative8 stores c in buf[:4] using the host byte order, which matches the
// in-memory layout of RGBA8 (B, G, R, A on little-endian hosts).
func PutNative8(buf []byte, c RGBA8) {
	binary.NativeEndian.PutUint32(buf, Pack8(c))
}

// ReadNative8 reads a color stored by PutNative8.
func ReadNative8(buf []byte) RGBA8 {
	return Unpack8(binary.NativeEndian.Uint32(buf))
}

// PutNative16 stores c in buf[:8] using the host byte order.
func PutNative16(buf []byte, c RGBA16) {
	binary.NativeEndian.PutUint64(buf, Pack16(c))
}

// ReadNative16 reads a color stored by PutNative16.
func ReadNative16(buf []byte) RGBA16 {
	return Unpack16(binary.NativeEndian.Uint64(buf))
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
// Six digit forms are opaque.
func ParseHex(s string) (RGBA8, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return RGBA8{}, fmt.Errorf("invalid hex color %q: want 6 or 8 digits", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA8{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	if len(h) == 6 {
		return Unpack8(uint32(v) | 0xFF000000), nil
	}
	// RRGGBBAA -> AARRGGBB
	return Unpack8(uint32(v)>>8 | uint32(v)<<24), nil
}

// Hex formats c as "#RRGGBBAA".
func Hex(c RGBA8) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// HexColor is an 8-bit color that reads and writes its "#RRGGBBAA" text form,
// for use in config files, flags and JSON documents.
type HexColor RGBA8

// Color returns the underlying 8-bit color.
func (h HexColor) Color() RGBA8 { return RGBA8(h) }

func (h HexColor) String() string { return Hex(RGBA8(h)) }

func (h HexColor) MarshalText() ([]byte, error) {
	return []byte(Hex(RGBA8(h))), nil
}

func (h *HexColor) UnmarshalText(text []byte) error {
	c, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*h = HexColor(c)
	return nil
}
