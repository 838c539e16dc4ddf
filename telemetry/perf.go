package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies a timed section of a frame.
type Phase int

// Frame phases in execution order.
const (
	PhaseWind Phase = iota
	PhaseDisplacement
	PhaseParticles
	PhaseTelemetry

	NumPhases
)

var phaseNames = [NumPhases]string{"wind", "displacement", "particles", "telemetry"}

// Phases lists every frame phase in execution order.
var Phases = []Phase{PhaseWind, PhaseDisplacement, PhaseParticles, PhaseTelemetry}

// String returns the phase's label as used in logs, CSV and metrics.
func (ph Phase) String() string {
	if ph < 0 || ph >= NumPhases {
		return "unknown"
	}
	return phaseNames[ph]
}

// PhaseTimes holds one duration per phase.
type PhaseTimes [NumPhases]time.Duration

// PerfSample is the timing of one frame.
type PerfSample struct {
	Total  time.Duration
	Phases PhaseTimes
}

// PerfCollector keeps the last windowSize frame timings in a ring.
// Recording a frame does not allocate.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int

	current    PerfSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Interval between presented preview frames
	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames
// (60 when windowSize < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]PerfSample, windowSize)}
}

// BeginFrame starts timing a frame.
func (p *PerfCollector) BeginFrame() {
	p.frameStart = time.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// Enter closes the running phase, if any, and starts ph.
func (p *PerfCollector) Enter(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < NumPhases {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndFrame closes the running phase and stores the frame in the ring.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.current.Total = now.Sub(p.frameStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// MarkPresent records that the preview presented a frame.
func (p *PerfCollector) MarkPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// LastSample returns the most recently recorded frame, if any.
func (p *PerfCollector) LastSample() (PerfSample, bool) {
	if p.count == 0 {
		return PerfSample{}, false
	}
	return p.ring[(p.next-1+len(p.ring))%len(p.ring)], true
}

// PerfStats aggregates the frames in the window.
type PerfStats struct {
	Frames   int
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P95Frame time.Duration

	PhaseAvg PhaseTimes
	PhasePct [NumPhases]float64 // share of AvgFrame

	FramesPerSecond float64 // kernel throughput at AvgFrame

	PresentInterval time.Duration
	FPS             float64 // preview frames presented per second
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Frames: p.count, PresentInterval: p.presentInterval}
	if p.presentInterval > 0 {
		s.FPS = float64(time.Second) / float64(p.presentInterval)
	}
	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	var phaseSum PhaseTimes
	for i, sample := range p.ring[:p.count] {
		totals[i] = float64(sample.Total)
		for ph, d := range sample.Phases {
			phaseSum[ph] += d
		}
	}
	sort.Float64s(totals)

	s.AvgFrame = time.Duration(stat.Mean(totals, nil))
	s.MinFrame = time.Duration(totals[0])
	s.MaxFrame = time.Duration(totals[len(totals)-1])
	s.P95Frame = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))

	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / time.Duration(p.count)
		if s.AvgFrame > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases {
		if s.PhasePct[ph] > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	RunID           string  `csv:"run_id"`
	WindowEnd       int32   `csv:"window_end"`
	AvgFrameUS      int64   `csv:"avg_frame_us"`
	MinFrameUS      int64   `csv:"min_frame_us"`
	MaxFrameUS      int64   `csv:"max_frame_us"`
	P95FrameUS      int64   `csv:"p95_frame_us"`
	FramesPerSec    float64 `csv:"frames_per_sec"`
	FPS             float64 `csv:"fps"`
	WindPct         float64 `csv:"wind_pct"`
	DisplacementPct float64 `csv:"displacement_pct"`
	ParticlesPct    float64 `csv:"particles_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(runID string, windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:           runID,
		WindowEnd:       windowEnd,
		AvgFrameUS:      s.AvgFrame.Microseconds(),
		MinFrameUS:      s.MinFrame.Microseconds(),
		MaxFrameUS:      s.MaxFrame.Microseconds(),
		P95FrameUS:      s.P95Frame.Microseconds(),
		FramesPerSec:    s.FramesPerSecond,
		FPS:             s.FPS,
		WindPct:         s.PhasePct[PhaseWind],
		DisplacementPct: s.PhasePct[PhaseDisplacement],
		ParticlesPct:    s.PhasePct[PhaseParticles],
		TelemetryPct:    s.PhasePct[PhaseTelemetry],
	}
}
