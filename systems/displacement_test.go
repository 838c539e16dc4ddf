package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullTileParams centers a player whose footprint covers the whole tile.
func fullTileParams() DisplacementParams {
	return DisplacementParams{
		PlayerX: 5, PlayerY: 0.5, PlayerZ: 5,
		PlayerWidth: 10, PlayerDepth: 10,
		ScaleX: 1, ScaleZ: 1,
		MaxDim:      10,
		BladeHeight: 1,
	}
}

func TestPaintDisplacement_OutOfBoundsLeavesTextureUntouched(t *testing.T) {
	cases := []struct {
		name string
		mod  func(p *DisplacementParams)
	}{
		{"left of tile", func(p *DisplacementParams) { p.PlayerX = -0.1 }},
		{"right of tile", func(p *DisplacementParams) { p.PlayerX = 10.5 }},
		{"behind tile", func(p *DisplacementParams) { p.PlayerZ = -3 }},
		{"beyond tile", func(p *DisplacementParams) { p.PlayerZ = 11 }},
		{"fully outside", func(p *DisplacementParams) { p.PlayerX, p.PlayerZ = -20, 40 }},
		{"below ground", func(p *DisplacementParams) { p.PlayerY = -0.01 }},
		{"above blades", func(p *DisplacementParams) { p.PlayerY = 1.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, vel := newTestTextures(8)
			for i := range vel.Pix {
				vel.Pix[i] = uint8(i)
			}
			before := append([]uint8(nil), vel.Pix...)

			p := fullTileParams()
			tc.mod(&p)
			fp := PaintDisplacement(vel, p)

			assert.True(t, fp.Empty())
			assert.Equal(t, 0, fp.Pixels())
			assert.Equal(t, before, vel.Pix)
		})
	}
}

func TestPaintDisplacement_FullFootprintCoversTexture(t *testing.T) {
	_, vel := newTestTextures(8)

	fp := PaintDisplacement(vel, fullTileParams())

	assert.Equal(t, Footprint{StartX: 0, StartZ: 0, Width: 8, Depth: 8}, fp)
	for z := 0; z < vel.Size; z++ {
		for x := 0; x < vel.Size; x++ {
			px := vel.At(x, z)
			require.Equal(t, uint8(PushMagnitude), px[ChannelMagnitude], "pixel (%d,%d)", x, z)
			require.Equal(t, uint8(0), px[ChannelUnused], "pixel (%d,%d) G", x, z)
		}
	}
}

func TestPaintDisplacement_DirectionEncoding(t *testing.T) {
	_, vel := newTestTextures(8)
	PaintDisplacement(vel, fullTileParams())

	// Near edge: X is flipped (255), Z is not (0)
	near := vel.At(0, 0)
	assert.Equal(t, uint8(255), near[ChannelX])
	assert.Equal(t, uint8(0), near[ChannelZ])

	// Midpoint encodes zero direction
	mid := vel.At(4, 4)
	assert.Equal(t, uint8(128), mid[ChannelX])
	assert.Equal(t, uint8(128), mid[ChannelZ])

	// Far edge: direction (7-4)/4 = 0.75
	far := vel.At(7, 7)
	assert.Equal(t, EncodeUnit((-0.75+1)*0.5), far[ChannelX])
	assert.Equal(t, EncodeUnit((0.75+1)*0.5), far[ChannelZ])
}

func TestPaintDisplacement_OverwritesPreviousContent(t *testing.T) {
	_, vel := newTestTextures(8)
	for i := range vel.Pix {
		vel.Pix[i] = 3
	}

	PaintDisplacement(vel, fullTileParams())
	first := append([]uint8(nil), vel.Pix...)

	PaintDisplacement(vel, fullTileParams())
	assert.Equal(t, first, vel.Pix, "repainting the same footprint is not cumulative")
}

func TestPaintDisplacement_ClipsAtFarEdge(t *testing.T) {
	_, vel := newTestTextures(8)

	// Player on the far X edge with a half-tile footprint
	p := DisplacementParams{
		PlayerX: 8, PlayerY: 0, PlayerZ: 4,
		PlayerWidth: 4, PlayerDepth: 4,
		ScaleX: 1, ScaleZ: 1,
		MaxDim:      8,
		BladeHeight: 1,
	}
	fp := PaintDisplacement(vel, p)

	assert.Equal(t, 6, fp.StartX)
	assert.Equal(t, 2, fp.Width, "rectangle shrinks against the edge")
	assert.Equal(t, 4, fp.Depth)

	// Nothing wraps into the first column of the next row
	for z := 0; z < vel.Size; z++ {
		assert.Equal(t, [4]uint8{}, vel.At(0, z), "column 0 row %d", z)
	}
}

func TestPaintDisplacement_ClampsAtNearEdge(t *testing.T) {
	_, vel := newTestTextures(8)

	p := DisplacementParams{
		PlayerX: 0, PlayerY: 0, PlayerZ: 0,
		PlayerWidth: 4, PlayerDepth: 4,
		ScaleX: 1, ScaleZ: 1,
		MaxDim:      8,
		BladeHeight: 1,
	}
	fp := PaintDisplacement(vel, p)

	assert.Equal(t, Footprint{StartX: 0, StartZ: 0, Width: 4, Depth: 4}, fp)
	assert.Equal(t, uint8(PushMagnitude), vel.At(3, 3)[ChannelMagnitude])
	assert.Equal(t, uint8(0), vel.At(4, 0)[ChannelMagnitude])
}

func TestPaintDisplacement_SinglePixelFootprint(t *testing.T) {
	_, vel := newTestTextures(8)

	p := DisplacementParams{
		PlayerX: 4, PlayerY: 0, PlayerZ: 4,
		PlayerWidth: 1, PlayerDepth: 1,
		ScaleX: 1, ScaleZ: 1,
		MaxDim:      8,
		BladeHeight: 1,
	}
	fp := PaintDisplacement(vel, p)

	require.Equal(t, 1, fp.Pixels())
	px := vel.At(fp.StartX, fp.StartZ)
	assert.Equal(t, uint8(PushMagnitude), px[ChannelMagnitude])
	// Start pixel sits one pixel before the midpoint: direction -1 on both axes
	assert.Equal(t, uint8(255), px[ChannelX])
	assert.Equal(t, uint8(0), px[ChannelZ])
}

func TestPaintDisplacement_StartPixelIsNearEdge(t *testing.T) {
	// Smallest footprints at every position, including ones clamped at the
	// near edge and clipped at the far edge: the start pixel always sits
	// exactly half the rectangle before its midpoint.
	for _, width := range []float32{1, 1.3, 1.9} {
		for x := float32(0); x <= 8; x += 0.37 {
			_, vel := newTestTextures(8)
			p := DisplacementParams{
				PlayerX: x, PlayerY: 0, PlayerZ: 8 - x,
				PlayerWidth: width, PlayerDepth: width,
				ScaleX: 1, ScaleZ: 1,
				MaxDim:      8,
				BladeHeight: 1,
			}
			fp := PaintDisplacement(vel, p)
			require.False(t, fp.Empty(), "width %v at %v", width, x)

			px := vel.At(fp.StartX, fp.StartZ)
			assert.Equal(t, uint8(PushMagnitude), px[ChannelMagnitude], "width %v at %v", width, x)
			assert.Equal(t, uint8(255), px[ChannelX], "width %v at %v", width, x)
			assert.Equal(t, uint8(0), px[ChannelZ], "width %v at %v", width, x)
		}
	}
}

func TestPaintDisplacement_ZeroWidthPaintsNothing(t *testing.T) {
	_, vel := newTestTextures(8)
	p := fullTileParams()
	p.PlayerWidth = 0

	fp := PaintDisplacement(vel, p)

	assert.True(t, fp.Empty())
	assert.Equal(t, make([]uint8, len(vel.Pix)), vel.Pix)
}

func TestPaintThenDecay(t *testing.T) {
	wind, vel := newTestTextures(8)
	cursors := make([]int32, vel.NumPixels())
	samples := []uint8{1, 2, 3}

	// Frame 1: wind runs first, then the footprint is painted
	UpdateWind(wind, vel, samples, cursors, WindParams{Decay: 2})
	PaintDisplacement(vel, fullTileParams())
	assert.Equal(t, uint8(PushMagnitude), vel.At(2, 2)[ChannelMagnitude])

	// Frame 2: the player has left; wind decays last frame's push
	UpdateWind(wind, vel, samples, cursors, WindParams{Decay: 2})
	p := fullTileParams()
	p.PlayerY = 5
	PaintDisplacement(vel, p)
	assert.Equal(t, uint8(PushMagnitude/2), vel.At(2, 2)[ChannelMagnitude])
}
