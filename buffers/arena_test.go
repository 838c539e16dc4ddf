package buffers

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AllocationsAreZeroed(t *testing.T) {
	a := NewArena()

	f := a.Float32(16)
	i := a.Int32(8)
	b := a.Uint8(32)

	assert.Equal(t, make([]float32, 16), f)
	assert.Equal(t, make([]int32, 8), i)
	assert.Equal(t, make([]uint8, 32), b)

	u := a.Live()
	assert.Equal(t, 3, u.Buffers)
	assert.Equal(t, 16*4+8*4+32, u.Bytes)
}

func TestArena_Release(t *testing.T) {
	a := NewArena()
	f := a.Float32(4)
	b := a.Uint8(10)

	require.NoError(t, a.Release(f))
	assert.Equal(t, Usage{Buffers: 1, Bytes: 10}, a.Live())

	assert.ErrorIs(t, a.Release(f), ErrUnknownBuffer, "double release")
	assert.ErrorIs(t, a.Release(make([]uint8, 3)), ErrUnknownBuffer, "foreign buffer")
	assert.ErrorIs(t, a.Release([]float64{1}), ErrUnknownBuffer, "unsupported type")

	require.NoError(t, a.Release(b))
	assert.Equal(t, Usage{}, a.Live())
	assert.Equal(t, 26, a.PeakBytes())
}

func TestArena_ReleaseAll(t *testing.T) {
	a := NewArena()
	a.Float32(3)
	a.Int32(3)
	a.Vec3(5)

	a.ReleaseAll()

	assert.Equal(t, Usage{}, a.Live())
}

func TestArena_ZeroLengthIsUntracked(t *testing.T) {
	a := NewArena()
	buf := a.Uint8(0)

	assert.Len(t, buf, 0)
	assert.Equal(t, 0, a.Live().Buffers)
	assert.NoError(t, a.Release(buf))
}

func TestVec3View_SharesStorage(t *testing.T) {
	a := NewArena()
	v := a.Vec3(2)
	require.Len(t, v, 2)

	v[1] = mgl32.Vec3{4, 5, 6}
	flat := FlatVec3(v)

	assert.Equal(t, []float32{0, 0, 0, 4, 5, 6}, flat)

	flat[0] = 9
	assert.Equal(t, float32(9), v[0][0])

	require.NoError(t, a.Release(flat))
	assert.Equal(t, 0, a.Live().Buffers)
}
