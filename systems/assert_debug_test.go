//go:build meadowdebug

package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreconditionsPanicInDebugBuilds(t *testing.T) {
	wind, vel := newTestTextures(2)

	assert.Panics(t, func() {
		UpdateWind(wind, vel, nil, make([]int32, 4), WindParams{Decay: 1})
	}, "empty sample buffer")

	assert.Panics(t, func() {
		UpdateWind(wind, vel, []uint8{1}, make([]int32, 4), WindParams{Decay: 0})
	}, "zero decay")

	assert.Panics(t, func() {
		UpdateWind(wind, vel, []uint8{1}, make([]int32, 5), WindParams{Decay: 1})
	}, "more cursors than pixels")

	assert.Panics(t, func() {
		PaintDisplacement(vel, DisplacementParams{MaxDim: 0})
	}, "zero max dim")

	assert.Panics(t, func() {
		f := newTestField(2)
		f.Offsets = f.Offsets[:1]
		UpdateParticles(f, []float32{0.5}, ParticleParams{DtFactor: 1})
	}, "short offsets")
}
