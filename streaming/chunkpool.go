package streaming

import "sync"

// ChunkPool is a fixed-capacity free list of staging-ring chunk indices
// (§3 "Chunks are allocated once ... and cycle through an explicit free
// list; ownership transfers atomically between tiles and the free list").
type ChunkPool struct {
	mu       sync.Mutex
	free     []int32
	capacity int
	// owner[i] is the tile coordinates that chunk i currently belongs to,
	// valid only while the chunk is not on the free list.
	ownerX, ownerY []int32
	owned          []bool
}

// NewChunkPool creates a pool of capacity chunks, all initially free.
func NewChunkPool(capacity int) *ChunkPool {
	p := &ChunkPool{
		capacity: capacity,
		free:     make([]int32, capacity),
		ownerX:   make([]int32, capacity),
		ownerY:   make([]int32, capacity),
		owned:    make([]bool, capacity),
	}
	for i := range p.free {
		p.free[i] = int32(capacity - 1 - i)
	}
	return p
}

// Capacity returns the total number of chunks the pool manages.
func (p *ChunkPool) Capacity() int { return p.capacity }

// Acquire returns a free chunk for tile (tileX,tileY), or attempts a
// recycle scan if none is immediately free (§4.2 Chunk pool contract).
// activeX/activeY is the current camera tile; a chunk is recyclable only
// if its owning tile is outside prefetchRadius (Chebyshev distance) from
// it and is neither Active nor Queued.
//
// Returns (chunkIdx, true) on success, or (NoChunk, false) if the tile's
// request must be deferred (ErrChunkPoolExhausted at the caller).
func (p *ChunkPool) Acquire(tileX, tileY int32, grid *Grid, activeX, activeY, prefetchRadius int) (int32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if idx, ok := p.popFreeLocked(); ok {
		p.claimLocked(idx, tileX, tileY)
		return idx, true
	}

	if p.recycleLocked(grid, activeX, activeY, prefetchRadius) {
		if idx, ok := p.popFreeLocked(); ok {
			p.claimLocked(idx, tileX, tileY)
			return idx, true
		}
	}

	return NoChunk, false
}

func (p *ChunkPool) popFreeLocked() (int32, bool) {
	if len(p.free) == 0 {
		return NoChunk, false
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return idx, true
}

func (p *ChunkPool) claimLocked(idx int32, tileX, tileY int32) {
	p.owned[idx] = true
	p.ownerX[idx] = tileX
	p.ownerY[idx] = tileY
}

// recycleLocked scans every owned chunk for one whose owning tile is both
// inactive/not-queued and beyond prefetchRadius from the active window,
// releasing at most one chunk back to the free list. Returns whether a
// chunk was recycled.
func (p *ChunkPool) recycleLocked(grid *Grid, activeX, activeY, prefetchRadius int) bool {
	for idx := 0; idx < p.capacity; idx++ {
		if !p.owned[idx] {
			continue
		}
		ox, oy := int(p.ownerX[idx]), int(p.ownerY[idx])
		tile := grid.At(ox, oy)
		if tile == nil {
			continue
		}
		if tile.Has(FlagActive | FlagQueued) {
			continue
		}
		if ChebyshevDistance(ox, oy, activeX, activeY) <= prefetchRadius {
			continue
		}

		tile.Clear(FlagUploaded)
		tile.SetChunkIndex(NoChunk)
		p.owned[idx] = false
		p.free = append(p.free, int32(idx))
		return true
	}
	return false
}

// Release returns chunkIdx to the free list unconditionally, used when a
// tile's owner explicitly relinquishes it (as opposed to the recycle scan
// taking it by force).
func (p *ChunkPool) Release(chunkIdx int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if chunkIdx < 0 || int(chunkIdx) >= p.capacity || !p.owned[chunkIdx] {
		return
	}
	p.owned[chunkIdx] = false
	p.free = append(p.free, chunkIdx)
}

// FreeCount returns the number of chunks currently on the free list.
func (p *ChunkPool) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
