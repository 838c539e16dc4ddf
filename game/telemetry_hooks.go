package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/meadow/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	pos := g.PlayerPosition()
	stats := g.collector.Flush(g.frame, telemetry.Sample{
		Alphas:      g.Particles.Field.Alphas,
		VelocityPix: g.Grass.Velocity.Pix,
		PlayerX:     pos.X,
		PlayerY:     pos.Y,
		PlayerZ:     pos.Z,
	})
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats
	g.flushes++

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteFrameStats(stats); err != nil {
			slog.Error("failed to write frame stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Snapshot captures the full effect state.
func (g *Game) Snapshot() *telemetry.Snapshot {
	f := &g.Particles.Field
	pos := g.PlayerPosition()

	return &telemetry.Snapshot{
		Version:         telemetry.SnapshotVersion,
		RunID:           g.runID,
		Seed:            g.seed,
		Frame:           g.frame,
		Player:          [3]float32{pos.X, pos.Y, pos.Z},
		WindVX:          g.Grass.wind.WindVX,
		WindVZ:          g.Grass.wind.WindVZ,
		TextureSize:     g.Grass.Wind.Size,
		WindPix:         clone(g.Grass.Wind.Pix),
		VelocityPix:     clone(g.Grass.Velocity.Pix),
		GrassCursors:    clone(g.Grass.cursors),
		Direction:       g.Particles.direction,
		Paused:          g.Particles.paused,
		Translations:    vecs(f.Translations),
		Offsets:         vecs(f.Offsets),
		Rotations:       vecs(f.Rotations),
		Alphas:          clone(f.Alphas),
		AlphaSigns:      clone(f.AlphaSigns),
		ParticleCursors: clone(f.Cursors),
	}
}

// Restore loads state captured by Snapshot into a game built from the same
// configuration and seed. The noise buffer is not stored; it is rebuilt from
// the seed.
func (g *Game) Restore(s *telemetry.Snapshot) error {
	f := &g.Particles.Field
	switch {
	case s.Seed != g.seed:
		return fmt.Errorf("snapshot seed %d, game has %d", s.Seed, g.seed)
	case s.TextureSize != g.Grass.Wind.Size:
		return fmt.Errorf("snapshot texture size %d, game has %d", s.TextureSize, g.Grass.Wind.Size)
	case len(s.WindPix) != len(g.Grass.Wind.Pix) || len(s.VelocityPix) != len(g.Grass.Velocity.Pix):
		return fmt.Errorf("snapshot texture data does not match texture size %d", s.TextureSize)
	case len(s.GrassCursors) != len(g.Grass.cursors):
		return fmt.Errorf("snapshot has %d grass cursors, game has %d", len(s.GrassCursors), len(g.Grass.cursors))
	case len(s.Alphas) != f.Len():
		return fmt.Errorf("snapshot has %d particles, game has %d", len(s.Alphas), f.Len())
	case len(s.Translations) != f.Len() || len(s.Offsets) != f.Len() || len(s.Rotations) != f.Len() ||
		len(s.AlphaSigns) != f.Len() || len(s.ParticleCursors) != f.Len():
		return fmt.Errorf("snapshot particle arrays are inconsistent")
	}

	copy(g.Grass.Wind.Pix, s.WindPix)
	copy(g.Grass.Velocity.Pix, s.VelocityPix)
	copy(g.Grass.cursors, s.GrassCursors)

	for i := range f.Translations {
		f.Translations[i] = s.Translations[i]
		f.Offsets[i] = s.Offsets[i]
		f.Rotations[i] = s.Rotations[i]
	}
	copy(f.Alphas, s.Alphas)
	copy(f.AlphaSigns, s.AlphaSigns)
	copy(f.Cursors, s.ParticleCursors)

	g.Grass.SetWind(s.WindVX, s.WindVZ)
	g.Particles.direction = mgl32.Vec3(s.Direction)
	g.Particles.paused = s.Paused
	g.SetPlayerPosition(s.Player[0], s.Player[1], s.Player[2])
	g.frame = s.Frame
	return nil
}

// SaveSnapshot writes the current state under the output directory.
func (g *Game) SaveSnapshot() (string, error) {
	return g.outputManager.SaveSnapshot(g.Snapshot())
}

func clone[T any](s []T) []T {
	return append([]T(nil), s...)
}

func vecs(v []mgl32.Vec3) [][3]float32 {
	out := make([][3]float32, len(v))
	for i := range v {
		out[i] = v[i]
	}
	return out
}
