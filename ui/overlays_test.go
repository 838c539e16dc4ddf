package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayVelocityTexture) {
		t.Error("velocity texture should be on by default")
	}
	if reg.IsEnabled(OverlayWindTexture) {
		t.Error("wind texture should be off by default")
	}
	if reg.IsEnabled(OverlayInspector) {
		t.Error("inspector should be off by default")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.Toggle(OverlayWindTexture) {
		t.Fatal("toggle should enable wind texture")
	}
	if reg.IsEnabled(OverlayVelocityTexture) {
		t.Error("enabling wind texture should disable velocity texture")
	}

	// Disabling leaves the other one off
	reg.Toggle(OverlayWindTexture)
	if reg.IsEnabled(OverlayWindTexture) || reg.IsEnabled(OverlayVelocityTexture) {
		t.Error("both textures should be off")
	}
}

func TestOverlayKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, state, ok := reg.HandleKeyPress(rl.KeyH)
	if !ok || id != OverlayHistory || !state {
		t.Errorf("expected history enabled, got %q %v %v", id, state, ok)
	}

	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay should not toggle")
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()

	cats := reg.Categories()
	want := []string{"textures", "scene", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("expected %v, got %v", want, cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d: expected %q, got %q", i, want[i], cats[i])
		}
	}
	if n := len(reg.ByCategory("scene")); n != 3 {
		t.Errorf("expected 3 scene overlays, got %d", n)
	}
}

func TestPanelHeight(t *testing.T) {
	r := NewRenderer()
	data := &HUDData{}

	h := r.PanelHeight(StatusPanel, data)
	// 4 section headers, 8 text lines, 4 bars, 4 section gaps
	th := r.Theme
	want := 2*th.Padding + 4*th.LineHeight + 8*th.LineHeight + 4*(th.LineHeight+2) + 4*4
	if h != want {
		t.Errorf("expected height %d, got %d", want, h)
	}

	if got := FieldText(StatusPanel.Sections[1].Fields[2], &HUDData{PaintedPixels: 9}); got != "9 px" {
		t.Errorf("expected %q, got %q", "9 px", got)
	}
}
