package game

import (
	"math"

	"github.com/pthm-cable/meadow/components"
)

// spawnPlayer creates the single player entity from config.
func (g *Game) spawnPlayer() {
	p := g.cfg.Player
	pos := components.Position{X: float32(p.Start[0]), Y: float32(p.Start[1]), Z: float32(p.Start[2])}
	vel := components.Velocity{}
	body := components.Body{Width: float32(p.Size[0]), Height: float32(p.Size[1]), Depth: float32(p.Size[2])}
	tag := components.Player{WalkSpeed: float32(p.WalkSpeed)}

	g.player = g.playerMap.NewEntity(&pos, &vel, &body, &tag)
}

// PlayerComponents returns pointers to the player's components for
// inspection. The pointers are only valid until the next structural change.
func (g *Game) PlayerComponents() []any {
	return []any{
		g.posMap.Get(g.player),
		g.velMap.Get(g.player),
		g.bodyMap.Get(g.player),
		g.tagMap.Get(g.player),
	}
}

// WalkSpeed returns the player's movement speed in world units per second.
func (g *Game) WalkSpeed() float32 {
	return g.tagMap.Get(g.player).WalkSpeed
}

// Grounded reports whether the player's feet are within the grass blades.
func (g *Game) Grounded() bool {
	y := g.PlayerBounds().MinY - g.Grass.Offset()[1]
	return y >= 0 && y <= g.Grass.BladeHeight()
}

// PlayerPosition returns the min corner of the player's box.
func (g *Game) PlayerPosition() components.Position {
	return *g.posMap.Get(g.player)
}

// PlayerBounds returns the player's world-space box.
func (g *Game) PlayerBounds() components.AABB {
	return g.bodyMap.Get(g.player).Bounds(*g.posMap.Get(g.player))
}

// MovePlayer translates the player immediately.
func (g *Game) MovePlayer(dx, dy, dz float32) {
	pos := g.posMap.Get(g.player)
	pos.X += dx
	pos.Y += dy
	pos.Z += dz
}

// SetPlayerPosition places the player's min corner.
func (g *Game) SetPlayerPosition(x, y, z float32) {
	*g.posMap.Get(g.player) = components.Position{X: x, Y: y, Z: z}
}

// SetPlayerVelocity sets the velocity applied on every Step.
func (g *Game) SetPlayerVelocity(vx, vy, vz float32) {
	*g.velMap.Get(g.player) = components.Velocity{X: vx, Y: vy, Z: vz}
}

// Walking reports whether the scripted walk drives the player.
func (g *Game) Walking() bool {
	return g.walk != nil
}

// integrateMovement applies velocities to positions.
func (g *Game) integrateMovement(dt float32) {
	query := g.moveFilter.Query()
	for query.Next() {
		pos, vel := query.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		pos.Z += vel.Z * dt
	}
}

// walkScript steers the player around a circle inside the grass tile.
type walkScript struct {
	centerX, centerZ float32
	radius           float32
	speed            float32
}

func newWalkScript(gf *GrassField, speed float32) *walkScript {
	off := gf.Offset()
	half := gf.MaxDim() / 2
	return &walkScript{
		centerX: off[0] + half,
		centerZ: off[2] + half,
		radius:  half * 0.6,
		speed:   speed,
	}
}

// steer sets the player's velocity tangent to the circle, with a radial
// correction toward it.
func (w *walkScript) steer(g *Game) {
	b := g.PlayerBounds()
	dx := float64(b.MidX() - w.centerX)
	dz := float64(b.MidZ() - w.centerZ)
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		g.SetPlayerVelocity(w.speed, 0, 0)
		return
	}

	ux, uz := dx/dist, dz/dist
	radial := (float64(w.radius) - dist) / float64(w.radius)
	vx := -uz + ux*radial
	vz := ux + uz*radial
	n := math.Hypot(vx, vz)
	s := float64(w.speed) / n
	g.SetPlayerVelocity(float32(vx*s), 0, float32(vz*s))
}
