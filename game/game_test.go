package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/meadow/buffers"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// Small world: 32x32 textures over a 20x20 tile, player centered on the ground.
const testConfig = `
grass:
  texture_size: 32
  tile_dimension: 20
  tile_density: 1
  scale_x: 2
  scale_z: 2
particles:
  count: 64
  grid_scale: 10
noise:
  kind: simplex
  num_samples: 512
player:
  start: [9.5, 0, 9.5]
  size: [1, 2, 1]
telemetry:
  stats_window: 0.5
`

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	config.MustInit(path)

	if opts.Seed == 0 {
		opts.Seed = 7
	}
	g, err := NewGameWithOptions(opts)
	require.NoError(t, err)
	return g
}

func TestDtFactor(t *testing.T) {
	assert.Equal(t, float32(1), DtFactor(float32(1.0/60)))
	assert.Equal(t, float32(1), DtFactor(0.001), "never below 1")
	assert.InDelta(t, 2, DtFactor(float32(1.0/30)), 1e-5)
}

func TestNewGame_AllocatesAndCloseReleases(t *testing.T) {
	g := newTestGame(t, Options{})

	usage := g.BufferUsage()
	assert.Greater(t, usage.Buffers, 0)
	assert.GreaterOrEqual(t, usage.Bytes, 2*32*32*systems.BytesPerPixel)

	require.NoError(t, g.Close())
	assert.Equal(t, buffers.Usage{}, g.BufferUsage())
}

func TestParticlesInitialState(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	f := &g.Particles.Field
	require.Equal(t, 64, f.Len())
	for i := 0; i < f.Len(); i++ {
		off := f.Offsets[i]
		assert.GreaterOrEqual(t, off.X(), float32(-5))
		assert.Less(t, off.X(), float32(5))
		assert.GreaterOrEqual(t, off.Y(), float32(2))
		assert.Less(t, off.Y(), float32(6))
		assert.GreaterOrEqual(t, off.Z(), float32(-10))
		assert.Less(t, off.Z(), float32(0))

		assert.Equal(t, off, f.Translations[i])
		assert.Equal(t, float32(0), f.Rotations[i].Z())
		assert.Equal(t, float32(1), f.Alphas[i])
		assert.Equal(t, float32(-1), f.AlphaSigns[i])
	}
}

func TestStep_PlayerPushesGrass(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	res := g.UpdateHeadless()

	// Footprint is 10% of the tile: 3x3 pixels starting at 14.
	assert.Equal(t, 9, res.PaintedPixels)
	assert.Equal(t, uint8(systems.PushMagnitude), g.Grass.Velocity.At(15, 15)[systems.ChannelMagnitude])
	assert.Equal(t, uint8(0), g.Grass.Velocity.At(20, 20)[systems.ChannelMagnitude])
	assert.Equal(t, int32(1), g.Frame())
}

func TestStep_NoPushWhenAirborneOrOffTile(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	g.SetPlayerPosition(9.5, 1.5, 9.5) // blade height is 1
	assert.Equal(t, 0, g.UpdateHeadless().PaintedPixels)

	g.SetPlayerPosition(30, 0, 9.5)
	assert.Equal(t, 0, g.UpdateHeadless().PaintedPixels)
}

func TestStep_PushDecaysAfterPlayerLeaves(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	g.UpdateHeadless()
	g.MovePlayer(20, 0, 0)
	g.UpdateHeadless()

	assert.Equal(t, uint8(90), g.Grass.Velocity.At(15, 15)[systems.ChannelMagnitude])
}

func TestStep_WindFollowsNoise(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	g.UpdateHeadless()

	px := g.Grass.Wind.At(3, 4)
	assert.Equal(t, systems.EncodeSigned(0.2), px[systems.ChannelX])
	assert.Equal(t, systems.EncodeSigned(0.05), px[systems.ChannelZ])

	g.Grass.SetWind(-1, 1)
	g.UpdateHeadless()
	px = g.Grass.Wind.At(3, 4)
	assert.Equal(t, uint8(0), px[systems.ChannelX])
	assert.Equal(t, uint8(255), px[systems.ChannelZ])
}

func TestGrassSamplesAreQuantizedNoise(t *testing.T) {
	g := newTestGame(t, Options{Seed: 7})
	defer g.Close()

	cfg := config.Cfg().Noise
	cfg.Seed = 7
	samples, err := noise.Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, noise.Quantize(samples), g.Grass.samples)

	g.UpdateHeadless()
	cursors := g.Grass.Cursors()
	for _, i := range []int{0, 17, len(cursors) - 1} {
		x, z := i%g.Grass.Wind.Size, i/g.Grass.Wind.Size
		assert.Equal(t, g.Grass.samples[cursors[i]], g.Grass.Wind.At(x, z)[systems.ChannelMagnitude], "pixel %d", i)
	}
}

func TestAirParticles_PauseAndDirection(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	g.Particles.SetDirection(mgl32.Vec3{3, 0, 4})
	dir := g.Particles.Direction()
	assert.InDelta(t, 0.6, dir.X(), 1e-6)
	assert.InDelta(t, 0.8, dir.Z(), 1e-6)

	assert.False(t, g.Particles.TogglePlaying())
	before := append([]mgl32.Vec3(nil), g.Particles.Field.Translations...)
	assert.Equal(t, 0, g.UpdateHeadless().Respawns)
	assert.Equal(t, before, g.Particles.Field.Translations)

	assert.True(t, g.Particles.TogglePlaying())
	g.UpdateHeadless()
	assert.NotEqual(t, before, g.Particles.Field.Translations)

	g.Particles.SetDirection(mgl32.Vec3{})
	assert.Equal(t, mgl32.Vec3{}, g.Particles.Direction())
}

func TestAirParticles_RespawnAroundPlayer(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	g.SetPlayerPosition(100, 3, -50)
	respawns := 0
	for i := 0; i < 2000 && respawns == 0; i++ {
		respawns += g.UpdateHeadless().Respawns
	}
	require.Greater(t, respawns, 0)

	// A respawned particle sits at offset + (midX, minY, midZ) of the player.
	f := &g.Particles.Field
	found := false
	for i := 0; i < f.Len(); i++ {
		if f.Alphas[i] == 0 && f.AlphaSigns[i] == 1 {
			want := f.Offsets[i].Add(mgl32.Vec3{100.5, 3, -49.5})
			assert.InDelta(t, want.X(), f.Translations[i].X(), 1e-4)
			assert.InDelta(t, want.Y(), f.Translations[i].Y(), 1e-4)
			assert.InDelta(t, want.Z(), f.Translations[i].Z(), 1e-4)
			found = true
		}
	}
	assert.True(t, found)
}

func TestSnapshotRestore_Deterministic(t *testing.T) {
	a := newTestGame(t, Options{})
	defer a.Close()
	for i := 0; i < 30; i++ {
		a.UpdateHeadless()
	}
	snap := a.Snapshot()

	b := newTestGame(t, Options{})
	defer b.Close()
	require.NoError(t, b.Restore(snap))
	assert.Equal(t, a.Frame(), b.Frame())

	for i := 0; i < 10; i++ {
		a.UpdateHeadless()
		b.UpdateHeadless()
	}

	assert.Equal(t, a.Particles.Field.Translations, b.Particles.Field.Translations)
	assert.Equal(t, a.Particles.Field.Alphas, b.Particles.Field.Alphas)
	assert.Equal(t, a.Grass.Wind.Pix, b.Grass.Wind.Pix)
	assert.Equal(t, a.Grass.Velocity.Pix, b.Grass.Velocity.Pix)
}

func TestRestore_RejectsMismatch(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	snap := g.Snapshot()
	snap.Alphas = snap.Alphas[:3]
	assert.Error(t, g.Restore(snap))

	snap = g.Snapshot()
	snap.TextureSize = 64
	assert.Error(t, g.Restore(snap))
}

func TestRestore_RejectsOtherSeed(t *testing.T) {
	a := newTestGame(t, Options{Seed: 7})
	defer a.Close()
	a.UpdateHeadless()

	b := newTestGame(t, Options{Seed: 8})
	defer b.Close()

	assert.Error(t, b.Restore(a.Snapshot()), "noise differs between seeds")
	assert.Equal(t, int32(0), b.Frame(), "rejected snapshot leaves the game untouched")
}

func TestRestore_BringsBackWind(t *testing.T) {
	a := newTestGame(t, Options{})
	defer a.Close()
	a.Grass.SetWind(-1, 1)
	a.UpdateHeadless()

	b := newTestGame(t, Options{})
	defer b.Close()
	require.NoError(t, b.Restore(a.Snapshot()))

	vx, vz := b.Grass.WindDirection()
	assert.Equal(t, float32(-1), vx)
	assert.Equal(t, float32(1), vz)

	a.UpdateHeadless()
	b.UpdateHeadless()
	px := b.Grass.Wind.At(3, 5)
	assert.Equal(t, uint8(0), px[systems.ChannelX])
	assert.Equal(t, uint8(255), px[systems.ChannelZ])
	assert.Equal(t, a.Grass.Wind.Pix, b.Grass.Wind.Pix)
}

func TestWalkScript_StaysOnTile(t *testing.T) {
	g := newTestGame(t, Options{Walk: true})
	defer g.Close()

	start := g.PlayerPosition()
	painted := 0
	for i := 0; i < 600; i++ {
		painted += g.UpdateHeadless().PaintedPixels
		b := g.PlayerBounds()
		require.True(t, b.MidX() >= 0 && b.MidX() <= 20 && b.MidZ() >= 0 && b.MidZ() <= 20,
			"player left the tile at frame %d: %+v", i, b)
	}

	assert.NotEqual(t, start, g.PlayerPosition())
	assert.Greater(t, painted, 0)
}

func TestOutputAndMetrics(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	metrics := telemetry.NewMetrics()
	g := newTestGame(t, Options{OutputDir: dir, Metrics: metrics, RunID: "test-run"})

	for i := 0; i < 90; i++ {
		g.UpdateHeadless()
	}
	path, err := g.SaveSnapshot()
	require.NoError(t, err)
	require.NoError(t, g.Close())

	for _, name := range []string{"frames.csv", "perf.csv", "config.yaml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	snap, err := telemetry.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "test-run", snap.RunID)
	assert.Equal(t, int32(90), snap.Frame)
}

func TestPlayerComponents(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	comps := g.PlayerComponents()
	require.Len(t, comps, 4)
	assert.Equal(t, float32(3), g.WalkSpeed())
	assert.True(t, g.Grounded())

	g.SetPlayerPosition(9.5, 1.5, 9.5)
	assert.False(t, g.Grounded())
	g.SetPlayerPosition(9.5, -0.5, 9.5)
	assert.False(t, g.Grounded())

	vx, vz := g.Grass.WindDirection()
	assert.InDelta(t, 0.2, vx, 1e-6)
	assert.InDelta(t, 0.05, vz, 1e-6)
}

func TestLatestStats(t *testing.T) {
	g := newTestGame(t, Options{})
	defer g.Close()

	_, n := g.LatestStats()
	assert.Equal(t, 0, n)

	// 0.5s window at 60 Hz
	for n == 0 && g.Frame() < 60 {
		g.UpdateHeadless()
		_, n = g.LatestStats()
	}
	stats, n := g.LatestStats()
	assert.Equal(t, 1, n)
	assert.Equal(t, g.Frame(), stats.WindowEndFrame)
	assert.InDelta(t, 30, stats.WindowEndFrame, 1)
	assert.Greater(t, stats.PaintedPixels, 0)
}
