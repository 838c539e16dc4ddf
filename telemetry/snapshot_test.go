package telemetry

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:         SnapshotVersion,
		RunID:           "abc",
		Seed:            42,
		Frame:           1000,
		Player:          [3]float32{9.5, 0, 9.5},
		WindVX:          -0.5,
		WindVZ:          1,
		TextureSize:     2,
		WindPix:         []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		VelocityPix:     make([]uint8, 16),
		GrassCursors:    []int32{0, 5, 9, 2},
		Direction:       [3]float32{0, 0, 1},
		Paused:          true,
		Translations:    [][3]float32{{1, 2, 3}},
		Offsets:         [][3]float32{{-1, 2.5, -3}},
		Rotations:       [][3]float32{{0.1, 0.2, 0}},
		Alphas:          []float32{0.75},
		AlphaSigns:      []float32{-1},
		ParticleCursors: []int32{17},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if filepath.Base(path) != "snapshot_1000.json" {
		t.Errorf("unexpected snapshot name %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(snapshot, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, snapshot)
	}
}

func TestLoadSnapshot_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 0}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version mismatch error")
	}
}

func TestLoadSnapshot_Missing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
