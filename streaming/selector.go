package streaming

// Direction bits for currentDirection (§4.2 "Wrap-offset update").
type Direction uint8

const (
	DirEast Direction = 1 << iota
	DirWest
	DirNorth
	DirSouth
)

// Selector computes the active tile window from camera position each
// frame, pushes newly-entered tiles onto the prefetch queue, and tracks
// the toroidal wrap offset (X0,Y0) (§4.2 Selection / Wrap-offset update).
type Selector struct {
	grid  *Grid
	pool  *ChunkPool
	queue *PrefetchQueue

	windowRadius   int // R, half the window side in tiles: AtlasK/2 (§4.2 "2R = H/tileSize")
	prefetchRadius int // recycle-eligibility radius, independent of R
	atlasK         int // K, atlas side in tiles

	haveCamera bool
	cameraX    int
	cameraY    int
	X0, Y0     int // wrap offsets, each in [0, atlasK)
	currentDir Direction
}

// NewSelector constructs a Selector. The active window radius R is always
// derived from atlasK (R = K/2), since the window must exactly cover the
// atlas (§4.2, confirmed against extensions/pl_terrain_ext.c's
// iRadiusInTiles = (uHeightMapResolution/2)/uTileSize, which is entirely
// separate from the prefetch radius). prefetchRadius only gates
// ChunkPool.Acquire's recycle-eligibility distance; it is not the window
// radius. Select queues only tiles inside the active window: no tile
// beyond it is prefetched, and currentDir is recorded but not used to
// pick tiles.
func NewSelector(grid *Grid, pool *ChunkPool, queue *PrefetchQueue, prefetchRadius, atlasK int) *Selector {
	return &Selector{
		grid:           grid,
		pool:           pool,
		queue:          queue,
		windowRadius:   atlasK / 2,
		prefetchRadius: prefetchRadius,
		atlasK:         atlasK,
	}
}

// WrapOffset returns the current (X0,Y0).
func (s *Selector) WrapOffset() (int, int) { return s.X0, s.Y0 }

// CurrentDirection returns the set of directions the camera moved in
// during the most recent Select call.
func (s *Selector) CurrentDirection() Direction { return s.currentDir }

// Select recomputes the active window for world-space camera position
// (worldX, worldZ), updates the wrap offset, marks tiles Active, and
// enqueues newly-required tiles for the prefetch worker. It returns the
// new camera tile coordinate.
func (s *Selector) Select(worldX, worldZ float64) (int, int) {
	cx, cz := s.grid.TileCoordFor(worldX, worldZ)

	s.currentDir = 0
	if s.haveCamera {
		s.updateWrapOffset(cx-s.cameraX, cz-s.cameraY)
	}
	s.cameraX, s.cameraY = cx, cz
	s.haveCamera = true

	// The window spans exactly 2*windowRadius tiles per axis (§4.2: "2R =
	// H/tileSize"; §8 scenario 3 confirms a 4x4 window for R=2, not the
	// 5x5 a symmetric ±R inclusive range would give), asymmetric around
	// the camera tile: R tiles west/north of cx,cz and R-1 east/south.
	for dz := -s.windowRadius; dz < s.windowRadius; dz++ {
		for dx := -s.windowRadius; dx < s.windowRadius; dx++ {
			x, z := cx+dx, cz+dz
			tile := s.grid.At(x, z)
			if tile == nil {
				continue
			}
			tile.Set(FlagActive)
			s.ensureQueued(tile, x, z, cx, cz)
		}
	}

	return cx, cz
}

func (s *Selector) updateWrapOffset(dx, dz int) {
	if dx > 0 {
		s.currentDir |= DirEast
	} else if dx < 0 {
		s.currentDir |= DirWest
	}
	if dz > 0 {
		s.currentDir |= DirSouth
	} else if dz < 0 {
		s.currentDir |= DirNorth
	}

	s.X0 = mod(s.X0+dx, s.atlasK)
	s.Y0 = mod(s.Y0+dz, s.atlasK)
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// ensureQueued assigns a chunk and pushes the tile onto the prefetch queue
// if it is not already uploaded (§4.2 Selection step b).
func (s *Selector) ensureQueued(tile *Tile, x, z, cx, cz int) {
	if tile.Has(FlagUploaded) {
		return
	}
	if tile.Has(FlagQueued) {
		return
	}
	if tile.ChunkIndex() == NoChunk {
		idx, ok := s.pool.Acquire(int32(x), int32(z), s.grid, cx, cz, s.prefetchRadius)
		if !ok {
			return // ErrChunkPoolExhausted at the caller's level: deferred.
		}
		tile.SetChunkIndex(idx)
	}
	tile.Set(FlagQueued)
	s.queue.Push(TileRef{X: int32(x), Y: int32(z)})
}

// SlotFor computes the atlas slot for tile (x,z) given the window's
// top-left tile coordinate (windowX0,windowZ0) (§4.3 "Tile-to-slot
// formula"): slotX = (X0+i) mod K, slotY = (Y0+j) mod K where (i,j) is the
// tile's column/row offset from the window's top-left.
func (s *Selector) SlotFor(x, z, windowX0, windowZ0 int) (int, int) {
	i := x - windowX0
	j := z - windowZ0
	return mod(s.X0+i, s.atlasK), mod(s.Y0+j, s.atlasK)
}
