package telemetry

// Collector accumulates events within windows of frames and produces FrameStats.
type Collector struct {
	runID                string
	windowDurationSec    float64
	windowDurationFrames int32
	dt                   float32

	// Current window tracking
	windowStartFrame int32

	// Event counters for current window
	frames        int
	respawns      int
	paintedPixels int
	paintFrames   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds
// dt: seconds per frame (used for frame-to-time conversion)
func NewCollector(runID string, windowDurationSec float64, dt float32) *Collector {
	framesPerWindow := int32(windowDurationSec / float64(dt))
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}

	return &Collector{
		runID:                runID,
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: framesPerWindow,
		dt:                   dt,
	}
}

// RecordFrame records the events of one completed frame.
func (c *Collector) RecordFrame(respawns, paintedPixels int) {
	c.frames++
	c.respawns += respawns
	c.paintedPixels += paintedPixels
	if paintedPixels > 0 {
		c.paintFrames++
	}
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int32) bool {
	return currentFrame-c.windowStartFrame >= c.windowDurationFrames
}

// Sample is the effect state read at the end of a window.
type Sample struct {
	Alphas      []float32
	VelocityPix []uint8
	PlayerX     float32
	PlayerY     float32
	PlayerZ     float32
}

// Flush produces a FrameStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int32, s Sample) FrameStats {
	alphaMean, alphaP10, alphaP50, alphaP90 := ComputeDistribution(s.Alphas)
	velMean, velActive := MagnitudeStats(s.VelocityPix)

	stats := FrameStats{
		RunID:            c.runID,
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		SimTimeSec:       float64(currentFrame) * float64(c.dt),
		Frames:           c.frames,

		Respawns:      c.respawns,
		PaintedPixels: c.paintedPixels,
		PaintFrames:   c.paintFrames,

		AlphaMean: alphaMean,
		AlphaP10:  alphaP10,
		AlphaP50:  alphaP50,
		AlphaP90:  alphaP90,

		VelocityMean:   velMean,
		VelocityActive: velActive,

		PlayerX: float64(s.PlayerX),
		PlayerY: float64(s.PlayerY),
		PlayerZ: float64(s.PlayerZ),
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.frames = 0
	c.respawns = 0
	c.paintedPixels = 0
	c.paintFrames = 0

	return stats
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int32 {
	return c.windowDurationFrames
}
