package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/meadow/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("", "run")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}

	// nil receivers are safe
	if err := om.WriteFrameStats(FrameStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	runID := NewRunID()

	om, err := NewOutputManager(dir, runID)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	for i := int32(1); i <= 2; i++ {
		if err := om.WriteFrameStats(FrameStats{WindowEndFrame: i * 60, Respawns: int(i)}); err != nil {
			t.Fatalf("WriteFrameStats: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, i*60); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	frames := readLines(t, filepath.Join(dir, "frames.csv"))
	if len(frames) != 3 {
		t.Fatalf("frames.csv has %d lines, want header + 2 rows", len(frames))
	}
	if !strings.HasPrefix(frames[0], "run_id,window_end,") {
		t.Errorf("unexpected header %q", frames[0])
	}
	if !strings.HasPrefix(frames[2], runID+",120,") {
		t.Errorf("row missing run id: %q", frames[2])
	}

	perf := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 3 {
		t.Fatalf("perf.csv has %d lines, want header + 2 rows", len(perf))
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestNewRunID_Unique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Error("expected distinct run ids")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
