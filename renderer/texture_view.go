package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/systems"
)

// ViewMode selects how texture channels are mapped to colors.
type ViewMode int

const (
	// ViewRaw shows R, G, B as stored and forces A opaque.
	ViewRaw ViewMode = iota
	// ViewMagnitude shows the A channel as a heat map.
	ViewMagnitude
	// ViewDirection shows the decoded XZ direction, brightness scaled by A.
	ViewDirection

	numViewModes
)

// String returns the display name of the mode.
func (m ViewMode) String() string {
	switch m {
	case ViewRaw:
		return "raw"
	case ViewMagnitude:
		return "magnitude"
	case ViewDirection:
		return "direction"
	}
	return "unknown"
}

// Next cycles to the following mode.
func (m ViewMode) Next() ViewMode {
	return (m + 1) % numViewModes
}

// TextureView draws an RGBA8 grass texture stretched over the tile.
type TextureView struct {
	tex    rl.Texture2D
	pixels []color.RGBA
	size   int

	initialized bool
}

// NewTextureView creates a view. Init is deferred until the first Update.
func NewTextureView() *TextureView {
	return &TextureView{}
}

// Init allocates the GPU texture (must be called after raylib window is created).
func (v *TextureView) Init(size int) {
	if v.initialized {
		return
	}

	v.size = size
	v.pixels = make([]color.RGBA, size*size)

	img := rl.GenImageColor(size, size, rl.Black)
	v.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(v.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	v.initialized = true
}

// Update uploads tex to the GPU using the given mode.
func (v *TextureView) Update(tex systems.Texture, mode ViewMode) {
	if !v.initialized {
		v.Init(tex.Size)
	}
	if tex.Size != v.size {
		return
	}

	FillPixels(v.pixels, tex, mode)
	rl.UpdateTexture(v.tex, v.pixels)
}

// Draw renders the texture over the world rectangle starting at (x0, z0)
// with side length dim.
func (v *TextureView) Draw(cam *camera.Camera, x0, z0, dim float32, alpha uint8) {
	if !v.initialized {
		return
	}

	sx, sy := cam.WorldToScreen(x0, z0)
	side := dim * cam.Zoom

	src := rl.Rectangle{X: 0, Y: 0, Width: float32(v.size), Height: float32(v.size)}
	dst := rl.Rectangle{X: sx, Y: sy, Width: side, Height: side}
	rl.DrawTexturePro(v.tex, src, dst, rl.Vector2{}, 0, rl.Color{R: 255, G: 255, B: 255, A: alpha})
}

// Unload frees GPU resources.
func (v *TextureView) Unload() {
	if !v.initialized {
		return
	}
	rl.UnloadTexture(v.tex)
	v.initialized = false
}

// FillPixels converts tex into display colors. dst must hold
// tex.NumPixels() entries.
func FillPixels(dst []color.RGBA, tex systems.Texture, mode ViewMode) {
	for i := range dst[:tex.NumPixels()] {
		o := i * systems.BytesPerPixel
		r := tex.Pix[o+systems.ChannelX]
		g := tex.Pix[o+systems.ChannelUnused]
		b := tex.Pix[o+systems.ChannelZ]
		a := tex.Pix[o+systems.ChannelMagnitude]

		switch mode {
		case ViewMagnitude:
			dst[i] = heat(a)
		case ViewDirection:
			k := float32(a) / 255
			dst[i] = color.RGBA{
				R: uint8(float32(r) * k),
				G: uint8(float32(255-r/2-b/2) * k),
				B: uint8(float32(b) * k),
				A: 255,
			}
		default:
			dst[i] = color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
}

// heat maps 0..255 onto black, green, yellow, white.
func heat(a uint8) color.RGBA {
	t := int(a)
	switch {
	case t < 96:
		return color.RGBA{R: 0, G: uint8(t * 2), B: 0, A: 255}
	case t < 192:
		return color.RGBA{R: uint8((t - 96) * 255 / 96), G: uint8(192 + (t-96)*63/96), B: 0, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: uint8((t - 192) * 255 / 63), A: 255}
	}
}
