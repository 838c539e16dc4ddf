// Package telemetry provides frame timing, per-window effect statistics,
// CSV/YAML output, state snapshots and Prometheus metrics.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FrameStats holds aggregated statistics for a window of frames.
type FrameStats struct {
	RunID            string  `csv:"run_id"`
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`
	Frames           int     `csv:"frames"`

	// Events during window
	Respawns      int `csv:"respawns"`
	PaintedPixels int `csv:"painted_pixels"`
	PaintFrames   int `csv:"paint_frames"` // frames in which the player touched the grass

	// Particle alpha distribution (sampled at window end)
	AlphaMean float64 `csv:"alpha_mean"`
	AlphaP10  float64 `csv:"alpha_p10"`
	AlphaP50  float64 `csv:"alpha_p50"`
	AlphaP90  float64 `csv:"alpha_p90"`

	// Velocity texture magnitude channel (sampled at window end)
	VelocityMean   float64 `csv:"velocity_mean"`
	VelocityActive int     `csv:"velocity_active"` // pixels with non-zero magnitude

	// Player position at window end
	PlayerX float64 `csv:"player_x"`
	PlayerY float64 `csv:"player_y"`
	PlayerZ float64 `csv:"player_z"`
}

// Percentile returns the p-th quantile of a sorted slice, linearly
// interpolating the empirical distribution. p is clamped to [0, 1].
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float32) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// MagnitudeStats returns the mean of the magnitude channel of an RGBA8
// buffer and the number of pixels where it is non-zero.
func MagnitudeStats(pix []uint8) (mean float64, active int) {
	n := len(pix) / 4
	if n == 0 {
		return 0, 0
	}
	var sum int
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			active++
			sum += int(pix[i])
		}
	}
	return float64(sum) / float64(n), active
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("respawns", s.Respawns),
		slog.Int("painted_pixels", s.PaintedPixels),
		slog.Int("paint_frames", s.PaintFrames),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Float64("alpha_p10", s.AlphaP10),
		slog.Float64("alpha_p50", s.AlphaP50),
		slog.Float64("alpha_p90", s.AlphaP90),
		slog.Float64("velocity_mean", s.VelocityMean),
		slog.Int("velocity_active", s.VelocityActive),
	)
}

// LogStats logs the window stats using slog.
func (s FrameStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"respawns", s.Respawns,
		"painted_pixels", s.PaintedPixels,
		"paint_frames", s.PaintFrames,
		"alpha_mean", s.AlphaMean,
		"alpha_p50", s.AlphaP50,
		"velocity_mean", s.VelocityMean,
		"velocity_active", s.VelocityActive,
		"player_x", s.PlayerX,
		"player_z", s.PlayerZ,
	)
}
