// Package camera provides a top-down camera over the XZ ground plane.
package camera

// Camera maps world XZ coordinates to screen pixels. Screen X follows
// world X and screen Y follows world Z.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Z float32

	// Zoom is pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// Home position and zoom restored by Reset
	homeX, homeZ, homeZoom float32
}

// New creates a camera centered on (x, z) that fits extent world units in
// the shorter viewport side.
func New(viewportW, viewportH, x, z, extent float32) *Camera {
	zoom := min(viewportW, viewportH) / extent
	return &Camera{
		X:         x,
		Z:         z,
		Zoom:      zoom,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   zoom / 8,
		MaxZoom:   zoom * 16,
		homeX:     x,
		homeZ:     z,
		homeZoom:  zoom,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wz float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wz-c.Z)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wz float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wz = c.Z + (sy-c.ViewportH/2)/c.Zoom
	return wx, wz
}

// IsVisible returns true if a circle at (wx, wz) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wz, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wz-c.Z) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Z += dy / c.Zoom
}

// Follow moves the camera a fraction t of the way toward (wx, wz).
func (c *Camera) Follow(wx, wz, t float32) {
	t = clamp(t, 0, 1)
	c.X += (wx - c.X) * t
	c.Z += (wz - c.Z) * t
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to its initial position and zoom.
func (c *Camera) Reset() {
	c.X = c.homeX
	c.Z = c.homeZ
	c.Zoom = c.homeZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minZ, maxX, maxZ float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minZ = c.Z - halfH
	maxZ = c.Z + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
