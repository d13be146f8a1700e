package streaming

import "sync/atomic"

// NoChunk is the sentinel chunk index meaning "this tile owns no chunk"
// (§9 "a sentinel (UINT32_MAX in source) denotes 'none'"; this module uses
// -1 over a signed int32 instead, since Go has no natural unsigned-max
// idiom as clean as a negative sentinel).
const NoChunk int32 = -1

// Flags is the per-tile bitset of §3's {Active, Queued, Uploaded, Processed,
// ProcessedIntermediate}. Transitions are non-exclusive — a tile can be
// simultaneously Uploaded, Active, and Processed — so per Design Note §9
// this stays a packed bitset rather than a tagged variant.
type Flags uint32

const (
	FlagActive Flags = 1 << iota
	FlagQueued
	FlagUploaded
	FlagProcessed
	FlagProcessedIntermediate
)

// Tile is one cell of the global world-space grid (§3 "Tile (runtime)").
// flags is accessed via atomic ops because the main thread and the
// background worker both set bits on it (§5 "Shared resource policy").
type Tile struct {
	X, Y int32 // integer tile grid coordinates

	WorldX, WorldY float64 // world-space top-left position

	SourceFile string
	MinHeight  float64
	MaxHeight  float64

	// Empty marks a tile that exists for uniform indexing but contains all
	// zeros and is never read from disk (§3).
	Empty bool

	flags      atomic.Uint32
	chunkIndex atomic.Int32
}

// NewTile constructs a tile with no owned chunk and no flags set.
func NewTile(x, y int32, worldX, worldY float64) *Tile {
	t := &Tile{X: x, Y: y, WorldX: worldX, WorldY: worldY}
	t.chunkIndex.Store(NoChunk)
	return t
}

// Has reports whether every bit in mask is set.
func (t *Tile) Has(mask Flags) bool {
	return Flags(t.flags.Load())&mask == mask
}

// Set atomically ORs mask into the flag set.
func (t *Tile) Set(mask Flags) {
	for {
		old := t.flags.Load()
		next := old | uint32(mask)
		if old == next || t.flags.CompareAndSwap(old, next) {
			return
		}
	}
}

// Clear atomically clears every bit in mask.
func (t *Tile) Clear(mask Flags) {
	for {
		old := t.flags.Load()
		next := old &^ uint32(mask)
		if old == next || t.flags.CompareAndSwap(old, next) {
			return
		}
	}
}

// ChunkIndex returns the chunk currently owning this tile's sample data, or
// NoChunk.
func (t *Tile) ChunkIndex() int32 { return t.chunkIndex.Load() }

// SetChunkIndex assigns the owning chunk. Passing NoChunk detaches it.
func (t *Tile) SetChunkIndex(idx int32) { t.chunkIndex.Store(idx) }

// CanUpload reports the Logic invariant a tile must satisfy before the
// worker is allowed to flip Uploaded (§7 LogicError): it must already own a
// chunk.
func (t *Tile) CanUpload() bool { return t.ChunkIndex() != NoChunk }
