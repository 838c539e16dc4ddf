package main

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/inspector"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/ui"
)

const controlsLegend = "WASD move | Q/E down/up | Space particles | V view | Tab controls | wheel zoom | RMB pan | 1-5 I H F3 overlays"

// preview draws a running game with raylib and feeds keyboard input to it.
type preview struct {
	g   *game.Game
	cam *camera.Camera

	textures  *renderer.TextureView
	particles *renderer.ParticleRenderer
	viewMode  renderer.ViewMode

	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	values    ui.ControlValues

	inspector *inspector.Inspector
	history   *inspector.HistoryPanel
	flushes   int

	width, height int32
}

func newPreview(g *game.Game, cfg *config.Config) *preview {
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	off := g.Grass.Offset()
	dim := g.Grass.MaxDim()

	p := &preview{
		g:         g,
		cam:       camera.New(float32(w), float32(h), off[0]+dim/2, off[2]+dim/2, dim*1.1),
		textures:  renderer.NewTextureView(),
		particles: renderer.NewParticleRenderer(float32(cfg.Particles.GridScale)*0.01, off[1], off[1]+6),
		viewMode:  renderer.ViewMagnitude,
		overlays:  ui.NewOverlayRegistry(),
		hud:       ui.NewHUD(),
		perfPanel: ui.NewPerfPanel(w-260, h-110),
		controls:  ui.NewControlsPanel(280, 10, 240),
		inspector: inspector.NewInspector(w),
		history:   inspector.NewHistoryPanel(w, h),
		width:     w,
		height:    h,
	}

	p.values.WindX, p.values.WindZ = g.Grass.WindDirection()
	dir := g.Particles.Direction()
	p.values.DirAngle = float32(math.Mod(math.Atan2(float64(dir.Z()), float64(dir.X()))*180/math.Pi+360, 360))
	p.values.DirLift = dir.Y()
	return p
}

// Update handles input and steps the game by dt seconds.
func (p *preview) Update(dt float32) {
	p.handleResize()
	p.handleInput()

	p.g.Perf().MarkPresent()
	p.g.Step(dt)

	if stats, n := p.g.LatestStats(); n != p.flushes {
		p.flushes = n
		p.history.Update(stats)
	}
}

func (p *preview) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	p.width = int32(rl.GetScreenWidth())
	p.height = int32(rl.GetScreenHeight())
	p.cam.Resize(float32(p.width), float32(p.height))
	p.perfPanel.SetPosition(p.width-260, p.height-110)
	p.inspector.Resize(p.width)
	p.history.Resize(p.width, p.height)
}

func (p *preview) handleInput() {
	// Player movement
	speed := p.g.WalkSpeed()
	var vx, vy, vz float32
	if rl.IsKeyDown(rl.KeyW) {
		vz -= speed
	}
	if rl.IsKeyDown(rl.KeyS) {
		vz += speed
	}
	if rl.IsKeyDown(rl.KeyA) {
		vx -= speed
	}
	if rl.IsKeyDown(rl.KeyD) {
		vx += speed
	}
	if rl.IsKeyDown(rl.KeyQ) {
		vy -= speed
	}
	if rl.IsKeyDown(rl.KeyE) {
		vy += speed
	}
	if vx != 0 || vy != 0 || vz != 0 {
		p.g.SetPlayerVelocity(vx, vy, vz)
	} else if !p.g.Walking() {
		p.g.SetPlayerVelocity(0, 0, 0)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		p.g.Particles.TogglePlaying()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		p.viewMode = p.viewMode.Next()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		p.controls.Toggle()
	}
	p.overlays.HandleInput()
	p.history.HandleInput()

	// Camera
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		p.cam.ZoomBy(float32(math.Pow(1.1, float64(wheel))))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		p.cam.Pan(-d.X, -d.Y)
	}
}

// Draw renders one frame.
func (p *preview) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 24, B: 18, A: 255})

	off := p.g.Grass.Offset()
	dim := p.g.Grass.MaxDim()

	switch {
	case p.overlays.IsEnabled(ui.OverlayWindTexture):
		p.textures.Update(p.g.Grass.Wind, p.viewMode)
		p.textures.Draw(p.cam, off[0], off[2], dim, 255)
	case p.overlays.IsEnabled(ui.OverlayVelocityTexture):
		p.textures.Update(p.g.Grass.Velocity, p.viewMode)
		p.textures.Draw(p.cam, off[0], off[2], dim, 255)
	}

	if p.overlays.IsEnabled(ui.OverlayTileOutline) {
		renderer.DrawTileOutline(p.cam, off[0], off[2], dim)
	}
	if p.overlays.IsEnabled(ui.OverlayPlayer) {
		p.particles.DrawPlayer(p.cam, p.g.PlayerBounds(), p.g.Grounded())
	}
	if p.overlays.IsEnabled(ui.OverlayParticles) {
		p.particles.Draw(p.cam, &p.g.Particles.Field)
	}

	p.drawHUD()

	rl.EndDrawing()
}

func (p *preview) drawHUD() {
	pos := p.g.PlayerPosition()
	dir := p.g.Particles.Direction()
	windX, windZ := p.g.Grass.WindDirection()
	last := p.g.LastFrame()

	p.hud.Draw(ui.HUDData{
		Title:         "Meadow",
		Frame:         p.g.Frame(),
		FPS:           rl.GetFPS(),
		Respawns:      last.Respawns,
		PaintedPixels: last.PaintedPixels,
		Particles:     p.g.Particles.Field.Len(),
		Playing:       !p.g.Particles.Paused(),
		ViewMode:      p.viewMode.String(),
		WindX:         windX,
		WindZ:         windZ,
		DirX:          dir.X(),
		DirZ:          dir.Z(),
		PlayerX:       pos.X,
		PlayerY:       pos.Y,
		PlayerZ:       pos.Z,
		Grounded:      p.g.Grounded(),
	})

	if p.overlays.IsEnabled(ui.OverlayPerf) {
		stats := p.g.Perf().Stats()
		p.perfPanel.Draw(ui.PerfPanelData{
			PhaseTimes: stats.PhaseAvg,
			Total:      stats.AvgFrame,
			P95:        stats.P95Frame,
		})
	}

	if p.overlays.IsEnabled(ui.OverlayInspector) != p.inspector.Visible() {
		p.inspector.Toggle()
	}
	p.inspector.Draw(p.g.PlayerComponents())

	if p.overlays.IsEnabled(ui.OverlayHistory) != p.history.Visible() {
		p.history.Toggle()
	}
	p.history.Draw()

	before := p.values
	actions := p.controls.Draw(p.overlays, &p.values, !p.g.Particles.Paused())
	p.applyControls(before, actions)

	p.hud.DrawControls(p.height, controlsLegend)
}

// applyControls pushes slider edits and button presses into the game.
func (p *preview) applyControls(before ui.ControlValues, actions ui.ControlActions) {
	if p.values.WindX != before.WindX || p.values.WindZ != before.WindZ {
		p.g.Grass.SetWind(p.values.WindX, p.values.WindZ)
	}
	if p.values.DirAngle != before.DirAngle || p.values.DirLift != before.DirLift {
		rad := float64(p.values.DirAngle) * math.Pi / 180
		p.g.Particles.SetDirection(mgl32.Vec3{
			float32(math.Cos(rad)),
			p.values.DirLift,
			float32(math.Sin(rad)),
		})
	}

	if actions.TogglePlaying {
		p.g.Particles.TogglePlaying()
	}
	if actions.CycleView {
		p.viewMode = p.viewMode.Next()
	}
	if actions.ResetCamera {
		p.cam.Reset()
	}
	if actions.Snapshot {
		path, err := p.g.SaveSnapshot()
		switch {
		case err != nil:
			slog.Error("failed to save snapshot", "error", err)
		case path == "":
			slog.Warn("snapshot skipped, no output directory")
		default:
			slog.Info("snapshot saved", "path", path)
		}
	}
}

// Unload frees GPU resources.
func (p *preview) Unload() {
	p.textures.Unload()
}
