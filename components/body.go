package components

// Body holds the extent of an entity's axis-aligned bounding box.
type Body struct {
	Width  float32 `inspect:"label,fmt:%.2f"` // X
	Height float32 `inspect:"label,fmt:%.2f"` // Y
	Depth  float32 `inspect:"label,fmt:%.2f"` // Z
}

// AABB is a world-space box.
type AABB struct {
	MinX, MinY, MinZ float32
	MaxX, MaxY, MaxZ float32
}

// Bounds returns the box occupied by a body at pos.
func (b Body) Bounds(pos Position) AABB {
	return AABB{
		MinX: pos.X, MinY: pos.Y, MinZ: pos.Z,
		MaxX: pos.X + b.Width, MaxY: pos.Y + b.Height, MaxZ: pos.Z + b.Depth,
	}
}

func (a AABB) MidX() float32   { return (a.MinX + a.MaxX) * 0.5 }
func (a AABB) MidZ() float32   { return (a.MinZ + a.MaxZ) * 0.5 }
func (a AABB) Width() float32  { return a.MaxX - a.MinX }
func (a AABB) Depth() float32  { return a.MaxZ - a.MinZ }
func (a AABB) Height() float32 { return a.MaxY - a.MinY }
