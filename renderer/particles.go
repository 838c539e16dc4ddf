package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// ParticleRenderer renders airborne particles and the player box.
type ParticleRenderer struct {
	// Base world-space radius of a particle
	Radius float32
	// Height range mapped from dim to bright
	MinY, MaxY float32
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(radius, minY, maxY float32) *ParticleRenderer {
	return &ParticleRenderer{Radius: radius, MinY: minY, MaxY: maxY}
}

// Draw renders all particles. Alpha fades them in and out, height sets
// brightness and the X rotation flickers the size.
func (r *ParticleRenderer) Draw(cam *camera.Camera, f *systems.ParticleField) {
	for i := 0; i < f.Len(); i++ {
		t := f.Translations[i]
		if !cam.IsVisible(t.X(), t.Z(), r.Radius) {
			continue
		}

		alpha := f.Alphas[i]
		if alpha <= 0 {
			continue
		}

		lift := float32(0.5)
		if r.MaxY > r.MinY {
			lift = (t.Y() - r.MinY) / (r.MaxY - r.MinY)
			lift = float32(math.Max(0, math.Min(1, float64(lift))))
		}

		shade := uint8(170 + lift*85)
		color := rl.Color{
			R: shade,
			G: shade,
			B: uint8(140 + lift*60),
			A: uint8(alpha * 200),
		}

		// Spin on X reads as a flat flake turning edge-on
		spin := float32(math.Abs(math.Cos(float64(f.Rotations[i].X()))))
		size := r.Radius * cam.Zoom * (0.4 + 0.6*spin)
		if size < 0.5 {
			size = 0.5
		}

		sx, sy := cam.WorldToScreen(t.X(), t.Z())
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	}
}

// DrawPlayer renders the player's XZ footprint.
func (r *ParticleRenderer) DrawPlayer(cam *camera.Camera, b components.AABB, grounded bool) {
	sx, sy := cam.WorldToScreen(b.MinX, b.MinZ)
	rect := rl.Rectangle{X: sx, Y: sy, Width: b.Width() * cam.Zoom, Height: b.Depth() * cam.Zoom}

	color := rl.Color{R: 230, G: 120, B: 60, A: 255}
	if !grounded {
		color = rl.Color{R: 120, G: 160, B: 230, A: 255}
	}
	rl.DrawRectangleRec(rect, rl.Color{R: color.R, G: color.G, B: color.B, A: 80})
	rl.DrawRectangleLinesEx(rect, 2, color)
}

// DrawTileOutline renders the border of the grass tile.
func DrawTileOutline(cam *camera.Camera, x0, z0, dim float32) {
	sx, sy := cam.WorldToScreen(x0, z0)
	rect := rl.Rectangle{X: sx, Y: sy, Width: dim * cam.Zoom, Height: dim * cam.Zoom}
	rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 90, G: 140, B: 80, A: 255})
}
