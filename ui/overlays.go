package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayWindTexture     OverlayID = "wind_texture"
	OverlayVelocityTexture OverlayID = "velocity_texture"
	OverlayParticles       OverlayID = "particles"
	OverlayPlayer          OverlayID = "player"
	OverlayTileOutline     OverlayID = "tile_outline"
	OverlayInspector       OverlayID = "inspector"
	OverlayHistory         OverlayID = "history"
	OverlayPerf            OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID   // Unique identifier
	Name      string      // Display name
	Key       int32       // Keyboard key to toggle (0 = no key)
	KeyLabel  string      // Key label for display (e.g., "1", "I")
	Category  string      // Grouping (e.g., "textures", "debug")
	Default   bool        // Enabled when registered
	Exclusive []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	// The two textures cover the same tile, so only one is shown at a time
	r.Register(OverlayDescriptor{
		ID:        OverlayWindTexture,
		Name:      "Wind Texture",
		Key:       rl.KeyOne,
		KeyLabel:  "1",
		Category:  "textures",
		Exclusive: []OverlayID{OverlayVelocityTexture},
	})
	r.Register(OverlayDescriptor{
		ID:        OverlayVelocityTexture,
		Name:      "Velocity Texture",
		Key:       rl.KeyTwo,
		KeyLabel:  "2",
		Category:  "textures",
		Default:   true,
		Exclusive: []OverlayID{OverlayWindTexture},
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayParticles,
		Name:     "Particles",
		Key:      rl.KeyThree,
		KeyLabel: "3",
		Category: "scene",
		Default:  true,
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayPlayer,
		Name:     "Player",
		Key:      rl.KeyFour,
		KeyLabel: "4",
		Category: "scene",
		Default:  true,
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayTileOutline,
		Name:     "Tile Outline",
		Key:      rl.KeyFive,
		KeyLabel: "5",
		Category: "scene",
		Default:  true,
	})

	r.Register(OverlayDescriptor{
		ID:       OverlayInspector,
		Name:     "Player Inspector",
		Key:      rl.KeyI,
		KeyLabel: "I",
		Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayHistory,
		Name:     "Stats History",
		Key:      rl.KeyH,
		KeyLabel: "H",
		Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayPerf,
		Name:     "Frame Phases",
		Key:      rl.KeyF3,
		KeyLabel: "F3",
		Category: "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// HandleInput polls raylib for pressed overlay keys.
func (r *OverlayRegistry) HandleInput() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
