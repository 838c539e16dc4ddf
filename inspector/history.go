package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/telemetry"
)

const (
	// History buffer size (number of stats windows to keep)
	historySize = 120

	// Line series indices
	seriesRespawns       = 0
	seriesPainted        = 1
	seriesAlphaMean      = 2
	seriesVelocityMean   = 3
	seriesVelocityActive = 4
	numSeries            = 5
)

// Ring is a fixed-capacity ring buffer of samples.
type Ring struct {
	values []float64
	next   int
	count  int
}

// NewRing creates a ring holding up to capacity samples.
func NewRing(capacity int) *Ring {
	return &Ring{values: make([]float64, capacity)}
}

// Push appends v, overwriting the oldest sample when full.
func (r *Ring) Push(v float64) {
	r.values[r.next] = v
	r.next = (r.next + 1) % len(r.values)
	if r.count < len(r.values) {
		r.count++
	}
}

// Len returns the number of stored samples.
func (r *Ring) Len() int {
	return r.count
}

// At returns the i-th stored sample, oldest first.
func (r *Ring) At(i int) float64 {
	n := len(r.values)
	return r.values[(r.next-r.count+i+n)%n]
}

// Range returns the min and max stored sample, padded by 10%.
// An empty or flat ring yields a range that still has non-zero width.
func (r *Ring) Range() (lo, hi float64) {
	if r.count == 0 {
		return 0, 1
	}
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < r.count; i++ {
		v := r.At(i)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	padding := (hi - lo) * 0.1
	if padding < 0.001 {
		padding = 0.001
	}
	return lo - padding, hi + padding
}

// History panel colors
var (
	colorHistoryTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorHistoryPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg        = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid      = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder    = rl.Color{R: 60, G: 60, B: 70, A: 255}
)

// HistoryPanel plots frame statistics over the last stats windows. Each
// series is scaled to its own range.
type HistoryPanel struct {
	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32
	visible     bool

	latest        telemetry.FrameStats
	history       [numSeries]*Ring
	seriesVisible [numSeries]bool
	seriesNames   [numSeries]string
	seriesColors  [numSeries]rl.Color
}

// NewHistoryPanel creates a panel spanning the bottom of the screen.
func NewHistoryPanel(screenWidth, screenHeight int32) *HistoryPanel {
	p := &HistoryPanel{panelHeight: 180}
	p.Resize(screenWidth, screenHeight)

	for i := range p.history {
		p.history[i] = NewRing(historySize)
	}
	p.seriesVisible = [numSeries]bool{true, true, true, true, false}
	p.seriesNames = [numSeries]string{"Respawns", "Painted", "Alpha", "Push", "Pushed px"}
	p.seriesColors = [numSeries]rl.Color{
		{R: 255, G: 200, B: 100, A: 255},
		{R: 230, G: 120, B: 60, A: 255},
		{R: 220, G: 220, B: 255, A: 255},
		{R: 100, G: 200, B: 100, A: 255},
		{R: 100, G: 149, B: 237, A: 255},
	}
	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *HistoryPanel) Resize(screenWidth, screenHeight int32) {
	p.panelWidth = screenWidth - 20
	if p.panelWidth > 900 {
		p.panelWidth = 900
	}
	p.panelX = 10
	p.panelY = screenHeight - p.panelHeight - 40
}

// Toggle switches panel visibility.
func (p *HistoryPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible reports whether the panel is shown.
func (p *HistoryPanel) Visible() bool {
	return p.visible
}

// Update records one flushed stats window.
func (p *HistoryPanel) Update(s telemetry.FrameStats) {
	p.latest = s
	p.history[seriesRespawns].Push(float64(s.Respawns))
	p.history[seriesPainted].Push(float64(s.PaintedPixels))
	p.history[seriesAlphaMean].Push(s.AlphaMean)
	p.history[seriesVelocityMean].Push(s.VelocityMean)
	p.history[seriesVelocityActive].Push(float64(s.VelocityActive))
}

// HandleInput processes mouse clicks for legend toggling.
func (p *HistoryPanel) HandleInput() {
	if !p.visible || !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()
	legendX, legendY := p.legendOrigin()

	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*legendItemWidth
		if mx >= itemX && mx < itemX+legendItemWidth-4 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return
		}
	}
}

const legendItemWidth = 100

func (p *HistoryPanel) legendOrigin() (int32, int32) {
	return p.panelX + 10, p.panelY + p.panelHeight - 24
}

// Draw renders the panel with graphs.
func (p *HistoryPanel) Draw() {
	if !p.visible {
		return
	}

	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorHistoryPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	rl.DrawText(fmt.Sprintf("WINDOWS (frame %d)", p.latest.WindowEndFrame), p.panelX+10, p.panelY+6, 14, colorHistoryTitle)

	if p.history[0].Len() == 0 {
		rl.DrawText("Waiting for data...", p.panelX+100, p.panelY+80, 14, ColorTextDim)
		return
	}

	p.drawGraph(p.panelX+10, p.panelY+26, p.panelWidth-20, p.panelHeight-56)
	p.drawLegend()
}

// drawGraph renders the line graph.
func (p *HistoryPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	for s := 0; s < numSeries; s++ {
		if p.seriesVisible[s] {
			p.drawSeriesLine(x, y, w, h, s)
		}
	}
}

// drawSeriesLine draws one data series as a line.
func (p *HistoryPanel) drawSeriesLine(x, y, w, h int32, series int) {
	ring := p.history[series]
	if ring.Len() < 2 {
		return
	}

	lo, hi := ring.Range()
	color := p.seriesColors[series]

	var prevX, prevY int32
	for i := 0; i < ring.Len(); i++ {
		px := x + int32(float64(i)*float64(w)/float64(ring.Len()-1))
		py := y + h - int32((ring.At(i)-lo)/(hi-lo)*float64(h))
		py = max(y, min(py, y+h))

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the interactive legend.
func (p *HistoryPanel) drawLegend() {
	x, y := p.legendOrigin()
	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*legendItemWidth
		color := p.seriesColors[i]
		textColor := ColorText
		if !p.seriesVisible[i] {
			color.A = 80
			textColor = ColorTextDim
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}
	rl.DrawText("(click to toggle)", x+numSeries*legendItemWidth+10, y, 10, ColorTextDim)
}
