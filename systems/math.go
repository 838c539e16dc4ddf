package systems

import "math"

// TwoPi is the upper bound of a wrapped rotation component.
const TwoPi = float32(2 * math.Pi)

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrapRotation hard-resets a rotation component that left [0, 2*Pi].
// Overshoot is not carried over: above the range snaps to 0, below snaps to 2*Pi.
func wrapRotation(r float32) float32 {
	if r > TwoPi {
		return 0
	}
	if r < 0 {
		return TwoPi
	}
	return r
}
