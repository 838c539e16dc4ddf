package systems

import "math"

// PushMagnitude is the velocity magnitude written under a fresh footprint.
// UpdateWind decays it on subsequent frames.
const PushMagnitude = 100

// DisplacementParams holds the scalar inputs of PaintDisplacement.
// Player coordinates are relative to the grass tile origin.
type DisplacementParams struct {
	PlayerX, PlayerY, PlayerZ float32
	PlayerWidth, PlayerDepth  float32
	ScaleX, ScaleZ            float32
	MaxDim                    float32 // world extent covered by the texture, > 0
	BladeHeight               float32
}

// Footprint is the pixel rectangle painted by PaintDisplacement.
type Footprint struct {
	StartX, StartZ int
	Width, Depth   int
}

// Empty reports whether nothing was painted.
func (f Footprint) Empty() bool {
	return f.Width <= 0 || f.Depth <= 0
}

// Pixels returns the number of painted pixels.
func (f Footprint) Pixels() int {
	if f.Empty() {
		return 0
	}
	return f.Width * f.Depth
}

// PaintDisplacement stamps the player's footprint into the velocity texture.
//
// The footprint rectangle is recomputed from scratch every call and
// overwrites R (X push), B (Z push) and A (PushMagnitude) of every covered
// pixel. Nothing is painted when the player's XZ position lies outside the
// tile or its height lies outside [0, BladeHeight]. The rectangle is
// clipped to the texture and never wraps.
//
// Push direction runs from -1 at the near edge to +1 at the far edge of the
// rectangle. X is flipped before encoding and Z is not. A painted rectangle
// is at least one pixel wide on each axis, so its midpoint lies at least
// half a pixel past the start pixel and the direction divisor is never zero.
func PaintDisplacement(velocity Texture, p DisplacementParams) Footprint {
	size := velocity.Size

	if debugChecks {
		assertf(size > 0, "displacement: texture size must be positive, got %d", size)
		assertf(p.MaxDim > 0, "displacement: max dim must be positive, got %f", p.MaxDim)
		assertf(len(velocity.Pix) >= size*size*BytesPerPixel, "displacement: velocity texture holds %d bytes, need %d", len(velocity.Pix), size*size*BytesPerPixel)
	}

	fracLocX := p.PlayerX / p.MaxDim
	fracLocZ := p.PlayerZ / p.MaxDim

	// Out of bounds is a gate, not a clamp
	outOfBoundsXZ := fracLocX > 1 || fracLocX < 0 || fracLocZ > 1 || fracLocZ < 0
	outOfBoundsY := p.PlayerY < 0 || p.PlayerY > p.BladeHeight
	if outOfBoundsXZ || outOfBoundsY {
		return Footprint{}
	}

	fracWidth := clamp01(p.PlayerWidth * p.ScaleX / p.MaxDim)
	fracDepth := clamp01(p.PlayerDepth * p.ScaleZ / p.MaxDim)

	minX := clamp01(fracLocX - fracWidth/2)
	minZ := clamp01(fracLocZ - fracDepth/2)

	fsize := float32(size)
	numPixelsX := floorInt(fsize * fracWidth)
	numPixelsZ := floorInt(fsize * fracDepth)
	startX := floorInt(fsize * minX)
	startZ := floorInt(fsize * minZ)

	midX := (minX + fracWidth/2) * fsize
	midZ := (minZ + fracDepth/2) * fsize

	// Shrink against the far edges
	if startX+numPixelsX > size {
		numPixelsX = size - startX
	}
	if startZ+numPixelsZ > size {
		numPixelsZ = size - startZ
	}
	if numPixelsX <= 0 || numPixelsZ <= 0 {
		return Footprint{}
	}

	halfX := midX - float32(startX)
	halfZ := midZ - float32(startZ)
	if debugChecks {
		assertf(halfX > 0 && halfZ > 0, "displacement: non-positive half extent (%f, %f)", halfX, halfZ)
	}

	pix := velocity.Pix
	for j := 0; j < numPixelsZ; j++ {
		z := startZ + j

		dirZ := (float32(z) - midZ) / halfZ
		encZ := EncodeUnit((dirZ + 1) * 0.5)

		row := z * size
		for i := 0; i < numPixelsX; i++ {
			x := startX + i

			dirX := (float32(x) - midX) / halfX
			o := (row + x) * BytesPerPixel
			pix[o+ChannelX] = EncodeUnit((-dirX + 1) * 0.5)
			pix[o+ChannelZ] = encZ
			pix[o+ChannelMagnitude] = PushMagnitude
		}
	}

	return Footprint{
		StartX: startX,
		StartZ: startZ,
		Width:  numPixelsX,
		Depth:  numPixelsZ,
	}
}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}
