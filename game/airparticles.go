package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/meadow/buffers"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/systems"
)

// Spawn band above the player's feet.
const (
	spawnMinY   = 2
	spawnRangeY = 4
)

// AirParticles is the host side of the airborne particle effect.
type AirParticles struct {
	Field systems.ParticleField

	samples   []float32
	direction mgl32.Vec3
	gridScale float32
	scale     float32
	paused    bool
}

// NewAirParticles allocates n particles from arena and scatters them in a
// gridScale-wide band in front of the origin. samples must already be
// normalized to [0, 1].
func NewAirParticles(arena *buffers.Arena, n int, gridScale, particleScale float32, samples []float32, rng *rand.Rand) *AirParticles {
	ap := &AirParticles{
		Field: systems.ParticleField{
			Translations: arena.Vec3(n),
			Offsets:      arena.Vec3(n),
			Rotations:    arena.Vec3(n),
			Alphas:       arena.Float32(n),
			AlphaSigns:   arena.Float32(n),
			Cursors:      arena.Int32(n),
		},
		samples:   arena.Float32(len(samples)),
		direction: mgl32.Vec3{0, 0, 1},
		gridScale: gridScale,
		scale:     particleScale,
	}

	copy(ap.samples, samples)
	noise.GoldenRatioCursors(ap.Field.Cursors, len(samples), rng.Float64())

	f := &ap.Field
	for i := 0; i < n; i++ {
		off := mgl32.Vec3{
			rng.Float32()*gridScale - gridScale/2,
			rng.Float32()*spawnRangeY + spawnMinY,
			rng.Float32()*gridScale - gridScale,
		}
		f.Offsets[i] = off
		f.Translations[i] = off
		f.Rotations[i] = mgl32.Vec3{rng.Float32() * systems.TwoPi, rng.Float32() * systems.TwoPi, 0}
		f.Alphas[i] = 1
		f.AlphaSigns[i] = -1
	}

	return ap
}

// SetDirection sets the drift direction. Only the XZ components of the
// normalized vector are used; a zero vector stops the drift.
func (ap *AirParticles) SetDirection(v mgl32.Vec3) {
	if v.Len() == 0 {
		ap.direction = mgl32.Vec3{}
		return
	}
	ap.direction = v.Normalize()
}

// Direction returns the normalized drift direction.
func (ap *AirParticles) Direction() mgl32.Vec3 {
	return ap.direction
}

// TogglePlaying pauses or resumes the particles and reports the new state.
func (ap *AirParticles) TogglePlaying() bool {
	ap.paused = !ap.paused
	return !ap.paused
}

// SetPaused pauses or resumes the particles.
func (ap *AirParticles) SetPaused(paused bool) {
	ap.paused = paused
}

// Paused reports whether updates are suspended.
func (ap *AirParticles) Paused() bool {
	return ap.paused
}

// Scale returns the rendered particle size.
func (ap *AirParticles) Scale() float32 {
	return ap.scale
}

// Update advances the particles by one frame of dt seconds and returns the
// number that respawned around the player. Paused particles do not move.
func (ap *AirParticles) Update(dt float32, player components.AABB) int {
	if ap.paused || ap.Field.Len() == 0 {
		return 0
	}
	return systems.UpdateParticles(&ap.Field, ap.samples, systems.ParticleParams{
		NormX:    ap.direction.X(),
		NormZ:    ap.direction.Z(),
		DtFactor: DtFactor(dt),
		Player:   mgl32.Vec3{player.MidX(), player.MinY, player.MidZ()},
	})
}
