//go:build armbe || arm64be || m68k || mips || mips64 || mips64p32 || ppc || ppc64 || s390 || s390x || shbe || sparc || sparc64

package rgba

// RGBA is a straight or premultiplied color with three color channels and
// alpha. Fields are declared alpha first so that on big-endian hosts the
// memory image of an RGBA8 equals the packed 0xAARRGGBB word.
type RGBA[T Channel] struct {
	A T `json:"a"`
	R T `json:"r"`
	G T `json:"g"`
	B T `json:"b"`
}
