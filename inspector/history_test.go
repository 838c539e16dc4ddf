package inspector

import (
	"testing"

	"github.com/pthm-cable/meadow/telemetry"
)

func TestRingOrderAndWrap(t *testing.T) {
	r := NewRing(3)
	for _, v := range []float64{1, 2, 3, 4} {
		r.Push(v)
	}

	if r.Len() != 3 {
		t.Fatalf("expected len 3, got %d", r.Len())
	}
	for i, want := range []float64{2, 3, 4} {
		if got := r.At(i); got != want {
			t.Errorf("At(%d) = %f, want %f", i, got, want)
		}
	}
}

func TestRingRange(t *testing.T) {
	r := NewRing(4)
	if lo, hi := r.Range(); lo != 0 || hi != 1 {
		t.Errorf("empty ring range = (%f, %f), want (0, 1)", lo, hi)
	}

	r.Push(0)
	r.Push(10)
	lo, hi := r.Range()
	if lo != -1 || hi != 11 {
		t.Errorf("range = (%f, %f), want (-1, 11)", lo, hi)
	}

	flat := NewRing(2)
	flat.Push(5)
	flat.Push(5)
	if lo, hi := flat.Range(); hi <= lo {
		t.Errorf("flat range should have width, got (%f, %f)", lo, hi)
	}
}

func TestHistoryPanelUpdate(t *testing.T) {
	p := NewHistoryPanel(1280, 720)
	p.Update(telemetry.FrameStats{Respawns: 3, PaintedPixels: 40, AlphaMean: 0.5, WindowEndFrame: 300})
	p.Update(telemetry.FrameStats{Respawns: 7, PaintedPixels: 0, AlphaMean: 0.4, WindowEndFrame: 600})

	if got := p.history[seriesRespawns].At(1); got != 7 {
		t.Errorf("expected latest respawns 7, got %f", got)
	}
	if got := p.history[seriesPainted].Len(); got != 2 {
		t.Errorf("expected 2 painted samples, got %d", got)
	}
	if p.latest.WindowEndFrame != 600 {
		t.Errorf("expected latest window 600, got %d", p.latest.WindowEndFrame)
	}
}
