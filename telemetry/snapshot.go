package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 2

// Snapshot holds the complete effect state for replay.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Seed    int64  `json:"seed"` // noise and spawn seed; restores require a game built with it
	Frame   int32  `json:"frame"`

	Player [3]float32 `json:"player"` // AABB min corner

	// Grass
	WindVX       float32 `json:"wind_vx"`
	WindVZ       float32 `json:"wind_vz"`
	TextureSize  int     `json:"texture_size"`
	WindPix      []uint8 `json:"wind_pix"`
	VelocityPix  []uint8 `json:"velocity_pix"`
	GrassCursors []int32 `json:"grass_cursors"`

	// Particles
	Direction       [3]float32   `json:"direction"`
	Paused          bool         `json:"paused"`
	Translations    [][3]float32 `json:"translations"`
	Offsets         [][3]float32 `json:"offsets"`
	Rotations       [][3]float32 `json:"rotations"`
	Alphas          []float32    `json:"alphas"`
	AlphaSigns      []float32    `json:"alpha_signs"`
	ParticleCursors []int32      `json:"particle_cursors"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Frame))

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
