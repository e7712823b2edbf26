// Package rgba defines the four-channel pixel value shared by the blending and
// compositing engines. A color is generic over its channel representation:
// 8-bit and 16-bit integers span [0, type max], float32 spans [0, 1].
package rgba

import "math"

// Channel is the closed set of numeric kinds a color component is stored as.
type Channel interface {
	uint8 | uint16 | float32
}

// Representable channel bounds per kind.
const (
	MaxU8  = math.MaxUint8
	MaxU16 = math.MaxUint16
	MaxF   = 1.0
)

// Min returns the smallest valid channel value of T. It is zero for every kind.
func Min[T Channel]() T {
	var v T
	return v
}

// Max returns the largest valid channel value of T.
func Max[T Channel]() T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = MaxU8
	case *uint16:
		*p = MaxU16
	case *float32:
		*p = MaxF
	}
	return v
}
