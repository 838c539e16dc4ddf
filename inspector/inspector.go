// Package inspector renders debug panels for the meadow preview: the
// player's components and a rolling history of frame statistics.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 30
	titleHeight  = 20
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector shows the components of the player entity.
type Inspector struct {
	visible bool
	panelX  int32
	panelY  int32
}

// NewInspector creates a hidden inspector anchored to the top right.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize re-anchors the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Toggle switches panel visibility.
func (ins *Inspector) Toggle() bool {
	ins.visible = !ins.visible
	return ins.visible
}

// Visible reports whether the panel is shown.
func (ins *Inspector) Visible() bool {
	return ins.visible
}

// Draw renders one section per component.
func (ins *Inspector) Draw(comps []any) {
	if !ins.visible {
		return
	}

	sections := make([]Component, 0, len(comps))
	for _, c := range comps {
		if ext := Extract(c); len(ext.Fields) > 0 {
			sections = append(sections, ext)
		}
	}

	height := PanelHeight(sections)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("PLAYER", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, s := range sections {
		drawSectionHeader(x, y, s.Title)
		y += titleHeight
		for _, f := range s.Fields {
			y += DrawField(x, y, f)
		}
		y += 4
	}
}

// PanelHeight computes the panel height for the given sections.
func PanelHeight(sections []Component) int32 {
	height := int32(HeaderHeight + 2*PanelPadding)
	for _, s := range sections {
		height += titleHeight + 4
		for _, f := range s.Fields {
			height += FieldHeight(f)
		}
	}
	return height
}

// drawSectionHeader renders a section title.
func drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}
