// Package systems contains the per-frame update kernels for the grass
// wind/velocity textures and the airborne particle field.
//
// Kernels mutate caller-owned buffers in place and never allocate.
// Preconditions are only checked in builds tagged meadowdebug; violating
// them in a release build is undefined behavior (index panics or garbage
// output), not a reported error.
package systems

// Channel offsets within an RGBA8 pixel.
const (
	ChannelX         = 0 // R: encoded X direction
	ChannelUnused    = 1 // G
	ChannelZ         = 2 // B: encoded Z direction
	ChannelMagnitude = 3 // A: noise amplitude (wind) or push magnitude (velocity)

	BytesPerPixel = 4
)

// Texture is a square RGBA8 image stored row-major.
type Texture struct {
	Pix  []uint8
	Size int
}

// NewTexture wraps pix as a size x size texture.
func NewTexture(pix []uint8, size int) Texture {
	assertf(size > 0, "texture size must be positive, got %d", size)
	assertf(len(pix) >= size*size*BytesPerPixel, "texture buffer too short: %d < %d", len(pix), size*size*BytesPerPixel)
	return Texture{Pix: pix, Size: size}
}

// NumPixels returns Size*Size.
func (t Texture) NumPixels() int {
	return t.Size * t.Size
}

// PixelOffset returns the byte offset of pixel (x, z).
func (t Texture) PixelOffset(x, z int) int {
	return (z*t.Size + x) * BytesPerPixel
}

// At returns the four channels of pixel (x, z).
func (t Texture) At(x, z int) [4]uint8 {
	o := t.PixelOffset(x, z)
	return [4]uint8{t.Pix[o], t.Pix[o+1], t.Pix[o+2], t.Pix[o+3]}
}
