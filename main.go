package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("meadow failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	walk := flag.Bool("walk", false, "Drive the player along a scripted path")
	restore := flag.String("restore", "", "Load a snapshot file before the first frame (uses its seed unless -seed is set)")
	snapshot := flag.Bool("snapshot", false, "Write a snapshot to the output directory on exit")
	exportNoise := flag.String("export-noise", "", "Write the configured noise source to a WAV file and exit")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if *exportNoise != "" {
		return writeNoise(cfg, *exportNoise)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *telemetry.Metrics
	if *metricsAddr != "" {
		metrics = telemetry.NewMetrics()
		go func() {
			slog.Info("serving metrics", "addr", *metricsAddr)
			if err := metrics.Serve(ctx, *metricsAddr); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Metrics:        metrics,
		Walk:           *walk,
	}

	if *headless {
		return runHeadless(ctx, opts, *frames, *restore, *seed != 0, *snapshot)
	}
	return runPreview(ctx, cfg, opts, *frames, *restore, *seed != 0)
}

// runHeadless steps at the configured fixed dt until the frame limit or
// an interrupt.
func runHeadless(ctx context.Context, opts game.Options, frames int, restore string, seedSet, snapshot bool) (err error) {
	g, err := newGame(opts, restore, seedSet)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, g.Close())
	}()

	slog.Info("starting headless run",
		"run_id", g.RunID(),
		"seed", g.Seed(),
		"frames", frames,
		"walk", opts.Walk,
	)

	start := time.Now()
	for ctx.Err() == nil {
		g.UpdateHeadless()

		if frames > 0 && int(g.Frame()) >= frames {
			break
		}
	}

	slog.Info("headless run finished",
		"frames", g.Frame(),
		"elapsed", time.Since(start),
		"perf", g.Perf().Stats(),
	)

	if snapshot {
		path, err := g.SaveSnapshot()
		if err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		if path == "" {
			slog.Warn("snapshot skipped, no output directory")
		} else {
			slog.Info("snapshot saved", "path", path)
		}
	}
	return nil
}

// runPreview opens a raylib window and steps once per rendered frame.
func runPreview(ctx context.Context, cfg *config.Config, opts game.Options, frames int, restore string, seedSet bool) (err error) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Meadow")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := newGame(opts, restore, seedSet)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, g.Close())
	}()

	p := newPreview(g, cfg)
	defer p.Unload()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		p.Update(rl.GetFrameTime())
		p.Draw()

		if frames > 0 && int(g.Frame()) >= frames {
			break
		}
	}
	return nil
}

// newGame builds a game and optionally restores a snapshot into it. A
// restored game takes the snapshot's seed unless seedSet is true.
func newGame(opts game.Options, restore string, seedSet bool) (*game.Game, error) {
	var snap *telemetry.Snapshot
	if restore != "" {
		var err error
		if snap, err = telemetry.LoadSnapshot(restore); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", restore, err)
		}
		if !seedSet {
			opts.Seed = snap.Seed
		}
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	if snap == nil {
		return g, nil
	}

	if err := g.Restore(snap); err != nil {
		return nil, errors.Join(fmt.Errorf("restoring %s: %w", restore, err), g.Close())
	}
	slog.Info("snapshot restored", "path", restore, "frame", snap.Frame, "seed", snap.Seed, "source_run_id", snap.RunID)
	return g, nil
}

// writeNoise exports the configured noise source as a 16-bit mono WAV.
func writeNoise(cfg *config.Config, path string) error {
	samples, err := noise.Load(cfg.Noise)
	if err != nil {
		return fmt.Errorf("loading noise: %w", err)
	}
	// Loaded samples are in [0, 1]; WAV wants [-1, 1]
	for i, v := range samples {
		samples[i] = v*2 - 1
	}
	if err := noise.WriteWAV(path, samples, noise.DefaultSampleRate); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("noise exported", "path", path, "samples", len(samples), "kind", cfg.Noise.Kind)
	return nil
}
