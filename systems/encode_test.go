package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSigned(t *testing.T) {
	cases := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 128},
		{1, 255},
		{0.2, 153},
		{0.05, 134},
		{-3, 0},
		{2, 255},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EncodeSigned(tc.in), "EncodeSigned(%v)", tc.in)
	}
}

func TestEncodeUnit(t *testing.T) {
	cases := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{0.5, 128},
		{1, 255},
		{0.125, 32},
		{-0.5, 0},
		{1.5, 255},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EncodeUnit(tc.in), "EncodeUnit(%v)", tc.in)
	}
}

func TestDecodeRoundTripWithinQuantization(t *testing.T) {
	for _, v := range []float32{-1, -0.5, 0, 0.33, 1} {
		assert.InDelta(t, v, DecodeSigned(EncodeSigned(v)), 1.0/255+1e-6)
	}
	for _, v := range []float32{0, 0.25, 0.7, 1} {
		assert.InDelta(t, v, DecodeUnit(EncodeUnit(v)), 0.5/255+1e-6)
	}
}

func TestDecayChannel(t *testing.T) {
	assert.Equal(t, uint8(100), decayChannel(200, 2))
	assert.Equal(t, uint8(90), decayChannel(100, 1.1))
	assert.Equal(t, uint8(0), decayChannel(0, 1.1))
	assert.Equal(t, uint8(255), decayChannel(200, 0.5), "amplification saturates")
}
