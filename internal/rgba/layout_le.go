//go:build 386 || amd64 || amd64p32 || alpha || arm || arm64 || loong64 || mips64le || mips64p32le || mipsle || nios2 || ppc64le || riscv || riscv64 || sh || wasm

package rgba

// RGBA is a straight or premultiplied color with three color channels and
// alpha. Fields are declared blue first so that on little-endian hosts the
// memory image of an RGBA8 equals the packed 0xAARRGGBB word.
type RGBA[T Channel] struct {
	B T `json:"b"`
	G T `json:"g"`
	R T `json:"r"`
	A T `json:"a"`
}
