// Package components defines ECS components for the host world.
package components

// Position is the min corner of an entity's bounding box in world space.
type Position struct {
	X float32 `inspect:"label,fmt:%.2f"`
	Y float32 `inspect:"label,fmt:%.2f"`
	Z float32 `inspect:"label,fmt:%.2f"`
}

// Velocity is an entity's movement in world units per second.
type Velocity struct {
	X, Y, Z float32
}

// Player tags the entity that pushes grass and anchors particles.
type Player struct {
	WalkSpeed float32 `inspect:"label,fmt:%.1f"`
}
