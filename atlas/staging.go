package atlas

import (
	"fmt"

	"github.com/gogpu/cdlod/gpucore"
)

// Staging is the host-mapped ring buffer the streaming worker writes
// decoded tile bytes into (§3 "Chunk (runtime streaming unit)": "a fixed-
// size slice of the staging ring buffer exactly one tile big"). It backs
// one real GPU buffer sized to hold every chunk simultaneously (§3
// Lifecycles: "the staging buffer is sized at startup to hold every chunk
// simultaneously") with a CPU-side shadow callers write into directly and
// a single Flush per frame, mirroring the dynamic uniform allocator's
// bump-allocate-then-flush shape.
type Staging struct {
	gpu      gpucore.Adapter
	buffer   gpucore.BufferID
	slabSize int
	backing  []byte
	dirty    bool
}

// NewStaging allocates a GPU buffer sized chunkCapacity*tileBytes and its
// CPU-side shadow.
func NewStaging(gpu gpucore.Adapter, chunkCapacity, tileSize int) (*Staging, error) {
	if chunkCapacity <= 0 || tileSize <= 0 {
		return nil, fmt.Errorf("atlas: invalid staging dimensions capacity=%d tileSize=%d", chunkCapacity, tileSize)
	}
	slabSize := tileSize * tileSize * 2 // 16-bit raw height samples
	total := slabSize * chunkCapacity

	buffer, err := gpu.CreateBuffer(total, gpucore.BufferUsageCopySrc|gpucore.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("atlas: create staging buffer: %w", err)
	}

	return &Staging{gpu: gpu, buffer: buffer, slabSize: slabSize, backing: make([]byte, total)}, nil
}

// Close releases the backing GPU buffer.
func (s *Staging) Close() { s.gpu.DestroyBuffer(s.buffer) }

// Buffer returns the GPU buffer ID the raw-upload blit pass copies from.
func (s *Staging) Buffer() gpucore.BufferID { return s.buffer }

// SlabOffset returns chunkIdx's byte offset within the staging buffer.
func (s *Staging) SlabOffset(chunkIdx int32) uint64 { return uint64(int(chunkIdx) * s.slabSize) }

// Slab returns the byte slice backing chunk index idx, implementing
// streaming.Staging. The worker writes directly into it; Flush must be
// called before the blit pass reads the GPU-side copy.
func (s *Staging) Slab(chunkIdx int32) []byte {
	off := int(chunkIdx) * s.slabSize
	if off < 0 || off+s.slabSize > len(s.backing) {
		return nil
	}
	s.dirty = true
	return s.backing[off : off+s.slabSize]
}

// Flush uploads the whole CPU-side shadow to the GPU buffer if any slab
// was written since the last flush. Uploading the whole region rather
// than tracking per-slab dirty ranges keeps this one WriteBuffer call per
// frame, matching the uniform allocator's single-flush shape.
func (s *Staging) Flush() {
	if !s.dirty {
		return
	}
	s.gpu.WriteBuffer(s.buffer, 0, s.backing)
	s.dirty = false
}
