package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/buffers"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	RunID          string
	Metrics        *telemetry.Metrics
	Walk           bool // drive the player along a scripted path
}

// FrameResult summarizes one frame.
type FrameResult struct {
	Respawns      int
	PaintedPixels int
}

// Game holds the complete effect state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	arena *buffers.Arena

	// Player entity
	player     ecs.Entity
	playerMap  *ecs.Map4[components.Position, components.Velocity, components.Body, components.Player]
	posMap     *ecs.Map1[components.Position]
	velMap     *ecs.Map1[components.Velocity]
	bodyMap    *ecs.Map1[components.Body]
	tagMap     *ecs.Map1[components.Player]
	moveFilter *ecs.Filter2[components.Position, components.Velocity]

	Grass     *GrassField
	Particles *AirParticles

	walk *walkScript

	// Telemetry
	runID         string
	logStats      bool
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	last          FrameResult
	lastStats     telemetry.FrameStats
	flushes       int

	// State
	frame int32
	seed  int64
}

// NewGameWithOptions builds the world, loads noise and allocates every
// effect buffer. config.Init must have been called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	noiseCfg := cfg.Noise
	if opts.Seed != 0 {
		noiseCfg.Seed = opts.Seed
	}
	samples, err := noise.Load(noiseCfg)
	if err != nil {
		return nil, fmt.Errorf("loading noise: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:           cfg,
		world:         world,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		arena:         buffers.NewArena(),
		playerMap:     ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Player](world),
		posMap:        ecs.NewMap1[components.Position](world),
		velMap:        ecs.NewMap1[components.Velocity](world),
		bodyMap:       ecs.NewMap1[components.Body](world),
		tagMap:        ecs.NewMap1[components.Player](world),
		moveFilter:    ecs.NewFilter2[components.Position, components.Velocity](world),
		runID:         opts.RunID,
		logStats:      opts.LogStats,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		metrics:       opts.Metrics,
		seed:          opts.Seed,
	}
	if g.runID == "" {
		g.runID = telemetry.NewRunID()
	}

	g.spawnPlayer()

	g.Grass = NewGrassField(g.arena, cfg, samples, g.rng.Float64())
	g.Particles = NewAirParticles(
		g.arena,
		cfg.Particles.Count,
		float32(cfg.Particles.GridScale),
		float32(cfg.Particles.ParticleScale),
		samples,
		g.rng,
	)
	d := cfg.Particles.Direction
	g.Particles.SetDirection(mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])})

	if opts.Walk {
		g.walk = newWalkScript(g.Grass, g.tagMap.Get(g.player).WalkSpeed)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(g.runID, statsWindow, cfg.Derived.DT32)

	om, err := telemetry.NewOutputManager(opts.OutputDir, g.runID)
	if err != nil {
		g.arena.ReleaseAll()
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("game created",
		"run_id", g.runID,
		"seed", opts.Seed,
		"noise_kind", noiseCfg.Kind,
		"noise_samples", len(samples),
		"texture_size", cfg.Grass.TextureSize,
		"particles", cfg.Particles.Count,
		"buffer_bytes", g.arena.Live().Bytes,
	)

	return g, nil
}

// Step runs one frame of dt seconds: player movement, wind, displacement,
// particles, then telemetry.
func (g *Game) Step(dt float32) FrameResult {
	g.perfCollector.BeginFrame()

	if g.walk != nil {
		g.walk.steer(g)
	}
	g.integrateMovement(dt)
	bounds := g.PlayerBounds()

	g.perfCollector.Enter(telemetry.PhaseWind)
	g.Grass.UpdateWind()

	g.perfCollector.Enter(telemetry.PhaseDisplacement)
	footprint := g.Grass.Displace(bounds)

	g.perfCollector.Enter(telemetry.PhaseParticles)
	respawns := g.Particles.Update(dt, bounds)

	g.perfCollector.Enter(telemetry.PhaseTelemetry)
	res := FrameResult{Respawns: respawns, PaintedPixels: footprint.Pixels()}
	g.collector.RecordFrame(res.Respawns, res.PaintedPixels)
	g.frame++
	g.flushTelemetry()

	g.perfCollector.EndFrame()

	if sample, ok := g.perfCollector.LastSample(); ok {
		g.metrics.Observe(res.Respawns, res.PaintedPixels, sample)
	}

	g.last = res
	return res
}

// UpdateHeadless steps one frame at the configured fixed dt.
func (g *Game) UpdateHeadless() FrameResult {
	return g.Step(g.cfg.Derived.DT32)
}

// Frame returns the number of frames stepped so far.
func (g *Game) Frame() int32 {
	return g.frame
}

// RunID returns the identifier stamped on telemetry records.
func (g *Game) RunID() string {
	return g.runID
}

// Seed returns the seed the noise and spawns were built from.
func (g *Game) Seed() int64 {
	return g.seed
}

// LastFrame returns the result of the most recent Step.
func (g *Game) LastFrame() FrameResult {
	return g.last
}

// LatestStats returns the most recently flushed stats window and the
// number of windows flushed so far.
func (g *Game) LatestStats() (telemetry.FrameStats, int) {
	return g.lastStats, g.flushes
}

// Perf returns the rolling performance collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perfCollector
}

// BufferUsage reports outstanding arena allocations.
func (g *Game) BufferUsage() buffers.Usage {
	return g.arena.Live()
}

// Close releases every effect buffer and closes output files.
func (g *Game) Close() error {
	g.Grass = nil
	g.Particles = nil
	g.arena.ReleaseAll()
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
