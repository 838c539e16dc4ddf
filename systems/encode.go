package systems

import "math"

// Fixed-point channel encoding.
//
// Every float written into an RGBA8 texture goes through one of these
// helpers: clamp to the value's domain, round half away from zero, narrow.
// A centered signed value (0) encodes to 128.

// EncodeSigned maps v in [-1, 1] to a channel value in [0, 255].
func EncodeSigned(v float32) uint8 {
	v = clampFloat(v, -1, 1)
	return uint8(math.Round(float64((v + 1) * 0.5 * 255)))
}

// EncodeUnit maps v in [0, 1] to a channel value in [0, 255].
func EncodeUnit(v float32) uint8 {
	v = clamp01(v)
	return uint8(math.Round(float64(v * 255)))
}

// DecodeSigned is the inverse of EncodeSigned (up to quantization).
func DecodeSigned(c uint8) float32 {
	return float32(c)/255*2 - 1
}

// DecodeUnit is the inverse of EncodeUnit (up to quantization).
func DecodeUnit(c uint8) float32 {
	return float32(c) / 255
}

// decayChannel divides an 8-bit magnitude by amt and truncates toward zero.
func decayChannel(c uint8, amt float32) uint8 {
	v := float32(c) / amt
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
