package game

import (
	"github.com/pthm-cable/meadow/buffers"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/systems"
)

// GrassField owns the wind and velocity textures sampled by the grass
// shader, plus the noise state that animates them.
type GrassField struct {
	Wind     systems.Texture
	Velocity systems.Texture

	samples []uint8
	cursors []int32

	wind   systems.WindParams
	offset [3]float32
	scaleX float32
	scaleZ float32
	maxDim float32
	height float32
}

// NewGrassField allocates both textures from arena and seeds one noise
// cursor per pixel. samples must already be normalized to [0, 1].
func NewGrassField(arena *buffers.Arena, cfg *config.Config, samples []float32, cursorSeed float64) *GrassField {
	g := cfg.Grass
	size := g.TextureSize
	numPixels := cfg.Derived.NumPixels

	gf := &GrassField{
		Wind:     systems.NewTexture(arena.Uint8(numPixels*systems.BytesPerPixel), size),
		Velocity: systems.NewTexture(arena.Uint8(numPixels*systems.BytesPerPixel), size),
		samples:  arena.Uint8(len(samples)),
		cursors:  arena.Int32(numPixels),
		wind: systems.WindParams{
			WindVX: float32(g.WindVX),
			WindVZ: float32(g.WindVZ),
			Decay:  float32(g.DecayAmount),
		},
		offset: [3]float32{float32(g.Offset[0]), float32(g.Offset[1]), float32(g.Offset[2])},
		scaleX: float32(g.ScaleX),
		scaleZ: float32(g.ScaleZ),
		maxDim: cfg.Derived.MaxDim,
		height: float32(g.BladeHeight),
	}

	copy(gf.samples, noise.Quantize(samples))
	noise.GoldenRatioCursors(gf.cursors, len(samples), cursorSeed)

	return gf
}

// UpdateWind advances the wind texture and decays player pushes.
func (gf *GrassField) UpdateWind() {
	systems.UpdateWind(gf.Wind, gf.Velocity, gf.samples, gf.cursors, gf.wind)
}

// Displace paints the player's footprint into the velocity texture.
func (gf *GrassField) Displace(player components.AABB) systems.Footprint {
	return systems.PaintDisplacement(gf.Velocity, gf.displacementParams(player))
}

// Update runs one grass frame: wind first, then the player push.
func (gf *GrassField) Update(player components.AABB) systems.Footprint {
	gf.UpdateWind()
	return gf.Displace(player)
}

func (gf *GrassField) displacementParams(player components.AABB) systems.DisplacementParams {
	return systems.DisplacementParams{
		PlayerX:     player.MidX() - gf.offset[0],
		PlayerY:     player.MinY - gf.offset[1],
		PlayerZ:     player.MidZ() - gf.offset[2],
		PlayerWidth: player.Width(),
		PlayerDepth: player.Depth(),
		ScaleX:      gf.scaleX,
		ScaleZ:      gf.scaleZ,
		MaxDim:      gf.maxDim,
		BladeHeight: gf.height,
	}
}

// SetWind changes the wind direction; components are clamped by the encoder.
func (gf *GrassField) SetWind(vx, vz float32) {
	gf.wind.WindVX = vx
	gf.wind.WindVZ = vz
}

// Cursors exposes the per-pixel noise cursors.
func (gf *GrassField) Cursors() []int32 {
	return gf.cursors
}

// MaxDim returns the world extent covered by the textures.
func (gf *GrassField) MaxDim() float32 {
	return gf.maxDim
}

// Offset returns the tile origin in world space.
func (gf *GrassField) Offset() [3]float32 {
	return gf.offset
}

// BladeHeight returns the height above the tile below which the player
// pushes grass.
func (gf *GrassField) BladeHeight() float32 {
	return gf.height
}

// WindDirection returns the current wind components.
func (gf *GrassField) WindDirection() (vx, vz float32) {
	return gf.wind.WindVX, gf.wind.WindVZ
}
