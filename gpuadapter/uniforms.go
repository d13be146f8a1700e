package gpuadapter

import (
	"fmt"
	"sync"

	"github.com/gogpu/cdlod/gpucore"
)

// uniformSlotAlignment is the minimum alignment WebGPU requires for dynamic
// uniform buffer offsets.
const uniformSlotAlignment = 256

// uniformRing is a frame-scoped bump allocator over a single backing
// buffer. It never frees individual allocations; Reset rewinds it at the
// start of each frame once the previous frame's submissions have drained.
type uniformRing struct {
	mu     sync.Mutex
	size   uint64
	cursor uint64
	buffer gpucore.BufferID
	backing []byte
}

func newUniformRing(size uint64) *uniformRing {
	return &uniformRing{
		size:    size,
		backing: make([]byte, size),
	}
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

func (r *uniformRing) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = 0
}

func (r *uniformRing) allocate(size uint64) (gpucore.DynamicUniformAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offset := alignUp(r.cursor, uniformSlotAlignment)
	if offset+size > r.size {
		return gpucore.DynamicUniformAllocation{}, fmt.Errorf("gpuadapter: uniform ring exhausted: need %d bytes at offset %d, capacity %d", size, offset, r.size)
	}
	r.cursor = offset + size

	return gpucore.DynamicUniformAllocation{
		Data:   r.backing[offset : offset+size],
		Buffer: r.buffer,
		Offset: offset,
	}, nil
}

// AllocateUniform reserves size bytes of CPU-writable storage backed by a
// dynamic uniform buffer, valid until the ring is reset for the next frame
// (§6; §4.4's per-draw camera/MVP/lighting block).
func (a *WGPUAdapter) AllocateUniform(size uint64) (gpucore.DynamicUniformAllocation, error) {
	a.mu.RLock()
	ring := a.uniforms
	a.mu.RUnlock()
	if ring == nil {
		return gpucore.DynamicUniformAllocation{}, ErrNotInitialized
	}
	return ring.allocate(size)
}

// ResetUniformRing rewinds the dynamic uniform allocator. Callers invoke
// this once per frame after the previous frame's command buffer has been
// submitted and its GPU reads are known complete.
func (a *WGPUAdapter) ResetUniformRing() {
	a.mu.RLock()
	ring := a.uniforms
	a.mu.RUnlock()
	if ring != nil {
		ring.reset()
	}
}

// FlushUniforms uploads every byte written into the ring's CPU-side
// allocations this frame in a single WriteBuffer call. Callers invoke this
// once per frame after recording all draws and before Submit.
func (a *WGPUAdapter) FlushUniforms() {
	a.mu.RLock()
	ring := a.uniforms
	a.mu.RUnlock()
	if ring == nil {
		return
	}

	ring.mu.Lock()
	used := ring.cursor
	buffer := ring.buffer
	data := ring.backing[:used]
	ring.mu.Unlock()

	if used == 0 {
		return
	}
	a.WriteBuffer(buffer, 0, data)
}
