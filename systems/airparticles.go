package systems

import "github.com/go-gl/mathgl/mgl32"

// Particle drift and spin constants.
const (
	driftTurbulence = 0.05
	driftBias       = 0.02
	liftTurbulence  = 0.01
	alphaRate       = 0.01
	spinRateX       = 0.02
	spinTurbulenceY = 0.005
)

// ParticleField is the structure-of-arrays state of the airborne particles.
// Every slice has one slot per particle.
type ParticleField struct {
	Translations []mgl32.Vec3 // world position
	Offsets      []mgl32.Vec3 // anchor relative to the player, used on respawn
	Rotations    []mgl32.Vec3 // per-axis angles in [0, 2*Pi]
	Alphas       []float32    // opacity in [0, 1]
	AlphaSigns   []float32    // -1 fading out, +1 fading in
	Cursors      []int32      // noise sample cursor
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.Alphas)
}

// ParticleParams holds the scalar inputs of UpdateParticles.
type ParticleParams struct {
	NormX, NormZ float32 // normalized drift direction on the XZ plane
	DtFactor     float32 // frame time relative to a 60 Hz frame, >= 1
	Player       mgl32.Vec3
}

// UpdateParticles advances every particle by one frame and returns the
// number of particles that faded out and respawned next to the player.
//
// samples must hold values in [0, 1]. Alpha oscillates between 0 and 1;
// crossing below 0 flips the sign and teleports the particle to its offset
// from the player, crossing above 1 only flips the sign. Rotation X and Y
// spin with the noise, Z is only ever wrapped.
func UpdateParticles(f *ParticleField, samples []float32, p ParticleParams) int {
	n := len(f.Alphas)
	numSamples := int32(len(samples))

	if debugChecks {
		assertf(numSamples > 0, "particles: no noise samples")
		assertf(len(f.Translations) >= n, "particles: %d translations for %d particles", len(f.Translations), n)
		assertf(len(f.Offsets) >= n, "particles: %d offsets for %d particles", len(f.Offsets), n)
		assertf(len(f.Rotations) >= n, "particles: %d rotations for %d particles", len(f.Rotations), n)
		assertf(len(f.AlphaSigns) >= n, "particles: %d alpha signs for %d particles", len(f.AlphaSigns), n)
		assertf(len(f.Cursors) >= n, "particles: %d cursors for %d particles", len(f.Cursors), n)
	}

	translations := f.Translations[:n]
	offsets := f.Offsets[:n]
	rotations := f.Rotations[:n]
	alphaSigns := f.AlphaSigns[:n]
	cursors := f.Cursors[:n]
	dt := p.DtFactor

	respawned := 0
	for i := range f.Alphas {
		idx := (cursors[i] + 1) % numSamples
		cursors[i] = idx

		sample := samples[idx]
		half := sample - 0.5

		// Directional drift with a constant bias, vertical jitter
		drift := half*driftTurbulence + driftBias
		t := &translations[i]
		t[0] += drift * p.NormX * dt
		t[1] += half * liftTurbulence * dt
		t[2] += drift * p.NormZ * dt

		alpha := f.Alphas[i] + alphaSigns[i]*alphaRate*sample*dt
		if alpha < 0 {
			alpha = 0
			alphaSigns[i] = 1
			*t = offsets[i].Add(p.Player)
			respawned++
		} else if alpha > 1 {
			alpha = 1
			alphaSigns[i] = -1
		}
		f.Alphas[i] = alpha

		r := &rotations[i]
		r[0] += spinRateX * sample * dt
		r[1] += spinTurbulenceY * half * dt
		r[0] = wrapRotation(r[0])
		r[1] = wrapRotation(r[1])
		r[2] = wrapRotation(r[2])
	}

	return respawned
}
