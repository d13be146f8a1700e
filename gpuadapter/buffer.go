package gpuadapter

import (
	"fmt"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	"github.com/gogpu/cdlod/gpucore"
)

type bufferEntry struct {
	handle core.BufferID
	size   int
	usage  gpucore.BufferUsage
}

func toWGPUBufferUsage(usage gpucore.BufferUsage) types.BufferUsage {
	var out types.BufferUsage
	if usage&gpucore.BufferUsageMapRead != 0 {
		out |= types.BufferUsageMapRead
	}
	if usage&gpucore.BufferUsageMapWrite != 0 {
		out |= types.BufferUsageMapWrite
	}
	if usage&gpucore.BufferUsageCopySrc != 0 {
		out |= types.BufferUsageCopySrc
	}
	if usage&gpucore.BufferUsageCopyDst != 0 {
		out |= types.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageIndex != 0 {
		out |= types.BufferUsageIndex
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		out |= types.BufferUsageVertex
	}
	if usage&gpucore.BufferUsageUniform != 0 {
		out |= types.BufferUsageUniform
	}
	if usage&gpucore.BufferUsageStorage != 0 {
		out |= types.BufferUsageStorage
	}
	if usage&gpucore.BufferUsageIndirect != 0 {
		out |= types.BufferUsageIndirect
	}
	return out
}

// CreateBuffer creates a GPU buffer (§6: consumed interface "create for
// buffers"). Used for the staging ring buffer (§4.2), the full/clipmap
// vertex and index buffers (§4.4), and dynamic uniform storage.
func (a *WGPUAdapter) CreateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return 0, ErrNotInitialized
	}
	if size <= 0 {
		return 0, fmt.Errorf("gpuadapter: buffer size must be positive, got %d", size)
	}

	handle, err := core.CreateBuffer(a.device, &types.BufferDescriptor{
		Size:  uint64(size),
		Usage: toWGPUBufferUsage(usage),
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create buffer: %w", err)
	}

	a.nextID++
	id := gpucore.BufferID(a.nextID)
	a.buffers[id] = &bufferEntry{handle: handle, size: size, usage: usage}
	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (a *WGPUAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.buffers[id]
	if !ok {
		return
	}
	core.DestroyBuffer(entry.handle)
	delete(a.buffers, id)
}

// WriteBuffer uploads bytes to a buffer at the given offset, used by the
// streaming worker to land sample bytes (§4.2) and by the per-frame loop
// to populate the dynamic uniform block (§4.4).
func (a *WGPUAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	a.mu.RLock()
	entry, ok := a.buffers[id]
	a.mu.RUnlock()
	if !ok {
		return
	}
	core.QueueWriteBuffer(a.queue, entry.handle, offset, data)
}

// ReadBuffer reads bytes from a buffer. This may stall on a GPU-CPU sync
// point; the core only calls it from offline/debug paths.
func (a *WGPUAdapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	a.mu.RLock()
	entry, ok := a.buffers[id]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gpuadapter: unknown buffer %d", id)
	}
	return core.ReadBuffer(a.device, entry.handle, offset, size)
}
