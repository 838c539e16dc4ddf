package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlValues are the live parameters edited by the sliders.
type ControlValues struct {
	WindX, WindZ float32 // grass wind direction components in [-1, 1]
	DirAngle     float32 // particle drift heading on the XZ plane, degrees
	DirLift      float32 // particle drift Y component before normalization
}

// ControlActions reports buttons pressed during a frame.
type ControlActions struct {
	TogglePlaying bool
	Snapshot      bool
	CycleView     bool
	ResetCamera   bool
}

// ControlsPanel renders the left-side controls panel with sliders and
// overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel, applies slider edits to v and returns the
// buttons pressed.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, v *ControlValues, playing bool) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	toggles := 0
	for _, cat := range categories {
		toggles += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(toggles)*lineHeight + 4*sliderHeight + 2*buttonRowHeight + padding*4 + lineHeight*2

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := c.y + padding
	width := float32(c.width - 2*padding)

	rl.DrawText("Controls", int32(x), y, 16, rl.White)
	y += lineHeight + 4

	v.WindX = c.slider(x, &y, width, "Wind X", v.WindX, -1, 1)
	v.WindZ = c.slider(x, &y, width, "Wind Z", v.WindZ, -1, 1)
	v.DirAngle = c.slider(x, &y, width, "Drift heading", v.DirAngle, 0, 360)
	v.DirLift = c.slider(x, &y, width, "Drift lift", v.DirLift, -1, 1)

	half := (width - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 24}, toggleText(playing, "Pause", "Play")) {
		actions.TogglePlaying = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 24}, "Snapshot") {
		actions.Snapshot = true
	}
	y += buttonRowHeight
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 24}, "Cycle View") {
		actions.CycleView = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 24}, "Reset Camera") {
		actions.ResetCamera = true
	}
	y += buttonRowHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(int32(x), y, desc, overlays.IsEnabled(desc.ID), int32(width))
			y += lineHeight
		}
	}

	return actions
}

const (
	sliderHeight    = 38
	buttonRowHeight = 30
)

// slider draws a labelled raygui slider and returns the new value.
func (c *ControlsPanel) slider(x float32, y *int32, width float32, label string, value, lo, hi float32) float32 {
	rl.DrawText(fmt.Sprintf("%s: %.2f", label, value), int32(x), *y, c.renderer.Theme.FontSize, c.renderer.Theme.LabelColor)
	*y += 14
	value = gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: float32(*y), Width: width - 60, Height: 16},
		fmt.Sprintf("%.0f", lo), fmt.Sprintf("%.0f", hi),
		value, lo, hi,
	)
	*y += sliderHeight - 14
	return value
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "textures":
		return "Textures"
	case "scene":
		return "Scene"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
