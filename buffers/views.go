package buffers

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3View reinterprets a flat xyz buffer as vectors without copying.
// len(flat) must be a multiple of 3; trailing values are ignored.
func Vec3View(flat []float32) []mgl32.Vec3 {
	n := len(flat) / 3
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*mgl32.Vec3)(unsafe.Pointer(unsafe.SliceData(flat))), n)
}

// FlatVec3 is the inverse of Vec3View, used when handing vectors to an
// uploader that expects interleaved floats.
func FlatVec3(v []mgl32.Vec3) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*3)
}

// Vec3 allocates n zeroed vectors backed by a tracked float32 buffer.
// Release the buffer with a.Release(FlatVec3(v)).
func (a *Arena) Vec3(n int) []mgl32.Vec3 {
	return Vec3View(a.Float32(n * 3))
}
