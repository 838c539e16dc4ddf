package noise

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/meadow/systems"
)

// goldenRatioConjugate is 1/φ.
const goldenRatioConjugate = 0.618033988749895

// Normalize01 rescales samples in place so min maps to 0 and max to 1.
// A constant buffer becomes all zeros.
func Normalize01(samples []float32) {
	if len(samples) == 0 {
		return
	}
	wide := make([]float64, len(samples))
	for i, v := range samples {
		wide[i] = float64(v)
	}
	lo, hi := floats.Min(wide), floats.Max(wide)
	span := hi - lo
	if span == 0 {
		clear(samples)
		return
	}
	for i, v := range wide {
		samples[i] = float32((v - lo) / span)
	}
}

// Quantize encodes normalized samples as 8-bit channel values.
func Quantize(samples []float32) []uint8 {
	out := make([]uint8, len(samples))
	for i, v := range samples {
		out[i] = systems.EncodeUnit(v)
	}
	return out
}

// GoldenRatioCursors seeds cursors with a low-discrepancy sequence over
// [0, numSamples-1], so neighbouring pixels start far apart in the buffer.
func GoldenRatioCursors(cursors []int32, numSamples int, seed float64) {
	value := seed - math.Floor(seed)
	span := float64(numSamples - 1)
	for i := range cursors {
		value += goldenRatioConjugate
		value -= math.Floor(value)
		cursors[i] = int32(math.Floor(span * value))
	}
}
