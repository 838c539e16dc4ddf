package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Frame         int32
	FPS           int32
	Respawns      int
	PaintedPixels int
	Particles     int
	Playing       bool
	ViewMode      string
	WindX, WindZ  float32
	DirX, DirZ    float32
	PlayerX       float32
	PlayerY       float32
	PlayerZ       float32
	Grounded      bool
}

// StatusPanel is the layout of the HUD status panel.
var StatusPanel = PanelDescriptor{
	ID:    "status",
	Width: 260,
	Sections: []SectionDescriptor{
		{
			ID:    "frame",
			Title: "Frame",
			Fields: []FieldDescriptor{
				{ID: "frame", Label: "Frame", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(*HUDData).Frame)
				}},
				{ID: "fps", Label: "FPS", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(*HUDData).FPS)
				}},
				{ID: "view", Label: "View", Widget: WidgetText, TextGetter: func(d any) string {
					return d.(*HUDData).ViewMode
				}},
			},
		},
		{
			ID:    "grass",
			Title: "Grass",
			Fields: []FieldDescriptor{
				{ID: "wind_x", Label: "Wind X", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d any) float32 {
					return d.(*HUDData).WindX
				}},
				{ID: "wind_z", Label: "Wind Z", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d any) float32 {
					return d.(*HUDData).WindZ
				}},
				{ID: "painted", Label: "Painted", Widget: WidgetText, Format: "%.0f px", Getter: func(d any) float32 {
					return float32(d.(*HUDData).PaintedPixels)
				}},
			},
		},
		{
			ID:    "particles",
			Title: "Particles",
			Fields: []FieldDescriptor{
				{ID: "state", Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
					if d.(*HUDData).Playing {
						return fmt.Sprintf("%d drifting", d.(*HUDData).Particles)
					}
					return "PAUSED"
				}},
				{ID: "dir_x", Label: "Dir X", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d any) float32 {
					return d.(*HUDData).DirX
				}},
				{ID: "dir_z", Label: "Dir Z", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d any) float32 {
					return d.(*HUDData).DirZ
				}},
				{ID: "respawns", Label: "Respawns", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(d.(*HUDData).Respawns)
				}},
			},
		},
		{
			ID:    "player",
			Title: "Player",
			Fields: []FieldDescriptor{
				{ID: "pos", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
					h := d.(*HUDData)
					return fmt.Sprintf("(%.1f, %.1f, %.1f)", h.PlayerX, h.PlayerY, h.PlayerZ)
				}},
				{ID: "grounded", Label: "In grass", Widget: WidgetText, TextGetter: func(d any) string {
					if d.(*HUDData).Grounded {
						return "yes"
					}
					return "no"
				}},
			},
		},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the title and status panel.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	h.renderer.DrawDescriptor(10, 38, StatusPanel, &data)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes telemetry.PhaseTimes
	Total      time.Duration // average frame
	P95        time.Duration
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  p95: %s", data.Total.Round(time.Microsecond), data.P95.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, ph := range telemetry.Phases {
		avg := data.PhaseTimes[ph]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", ph, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
