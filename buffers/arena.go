// Package buffers provides zero-initialized typed storage for the frame
// kernels, with bulk teardown.
package buffers

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrUnknownBuffer is returned when releasing storage the arena did not hand out.
var ErrUnknownBuffer = errors.New("buffers: unknown buffer")

// Usage reports outstanding allocations.
type Usage struct {
	Buffers int
	Bytes   int
}

// Arena hands out zeroed float32, int32 and uint8 slices and tracks them
// until they are released. Not safe for concurrent use.
type Arena struct {
	live  map[uintptr]allocation // keyed by base address
	bytes int
	peak  int
}

// allocation keeps a handed-out buffer reachable until it is released.
type allocation struct {
	buf  any
	size int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{live: make(map[uintptr]allocation)}
}

// Float32 returns n zeroed float32 values.
func (a *Arena) Float32(n int) []float32 {
	buf := make([]float32, n)
	a.track(unsafe.Pointer(unsafe.SliceData(buf)), buf, n*4)
	return buf
}

// Int32 returns n zeroed int32 values.
func (a *Arena) Int32(n int) []int32 {
	buf := make([]int32, n)
	a.track(unsafe.Pointer(unsafe.SliceData(buf)), buf, n*4)
	return buf
}

// Uint8 returns n zeroed bytes.
func (a *Arena) Uint8(n int) []uint8 {
	buf := make([]uint8, n)
	a.track(unsafe.Pointer(unsafe.SliceData(buf)), buf, n)
	return buf
}

func (a *Arena) track(p unsafe.Pointer, buf any, size int) {
	// Zero-length slices share a base address and are not tracked
	if size == 0 {
		return
	}
	a.live[uintptr(p)] = allocation{buf: buf, size: size}
	a.bytes += size
	if a.bytes > a.peak {
		a.peak = a.bytes
	}
}

// Release forgets a buffer returned by Float32, Int32 or Uint8.
// The caller must not use the buffer afterwards.
func (a *Arena) Release(buf any) error {
	var p unsafe.Pointer
	var n int
	switch b := buf.(type) {
	case []float32:
		p, n = unsafe.Pointer(unsafe.SliceData(b)), len(b)
	case []int32:
		p, n = unsafe.Pointer(unsafe.SliceData(b)), len(b)
	case []uint8:
		p, n = unsafe.Pointer(unsafe.SliceData(b)), len(b)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrUnknownBuffer, buf)
	}
	if n == 0 {
		return nil
	}

	key := uintptr(p)
	alloc, ok := a.live[key]
	if !ok {
		return ErrUnknownBuffer
	}
	delete(a.live, key)
	a.bytes -= alloc.size
	return nil
}

// ReleaseAll forgets every outstanding buffer.
func (a *Arena) ReleaseAll() {
	clear(a.live)
	a.bytes = 0
}

// Live returns the number and total size of outstanding buffers.
func (a *Arena) Live() Usage {
	return Usage{Buffers: len(a.live), Bytes: a.bytes}
}

// PeakBytes returns the largest outstanding byte count seen so far.
func (a *Arena) PeakBytes() int {
	return a.peak
}
