package streaming

import "fmt"

// Grid is the global world-space tile grid (§3: "Tiles are created once at
// startup ... and never destroyed; only their flag set mutates").
type Grid struct {
	TilesX, TilesY int
	TileSize       float64 // world-space size of one tile, in meters
	WorldMin       [2]float64

	tiles []*Tile
}

// NewGrid allocates a TilesX*TilesY grid covering [worldMin, worldMin +
// (tilesX,tilesY)*tileSize). Every tile starts Empty with no chunk.
func NewGrid(tilesX, tilesY int, tileSize float64, worldMin [2]float64) *Grid {
	g := &Grid{
		TilesX:   tilesX,
		TilesY:   tilesY,
		TileSize: tileSize,
		WorldMin: worldMin,
		tiles:    make([]*Tile, tilesX*tilesY),
	}
	for y := 0; y < tilesY; y++ {
		for x := 0; x < tilesX; x++ {
			wx := worldMin[0] + float64(x)*tileSize
			wy := worldMin[1] + float64(y)*tileSize
			tile := NewTile(int32(x), int32(y), wx, wy)
			tile.Empty = true
			g.tiles[y*tilesX+x] = tile
		}
	}
	return g
}

// InBounds reports whether (x,y) is a valid tile coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.TilesX && y >= 0 && y < g.TilesY
}

// At returns the tile at (x,y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.tiles[y*g.TilesX+x]
}

// TileCoordFor rounds a world-space XZ position to the nearest tile
// boundary (§4.2 Selection: "compute camera tile (cx,cy) by rounding the XZ
// world position to the nearest tile boundary").
func (g *Grid) TileCoordFor(worldX, worldZ float64) (int, int) {
	cx := int((worldX-g.WorldMin[0])/g.TileSize + 0.5)
	cz := int((worldZ-g.WorldMin[1])/g.TileSize + 0.5)
	return cx, cz
}

// MarkNeighborsDirty clears Processed and ProcessedIntermediate on the four
// orthogonal neighbors of (x,y) (§4.2: "any neighbor of a newly uploaded or
// activated tile has Processed* flags cleared so the normal computation
// re-reads updated neighbors").
func (g *Grid) MarkNeighborsDirty(x, y int) {
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if n := g.At(x+d[0], y+d[1]); n != nil {
			n.Clear(FlagProcessed | FlagProcessedIntermediate)
		}
	}
}

// Index computes the flat slice index for (x,y), panicking if out of range;
// used internally once a caller has already validated bounds via InBounds.
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("streaming: tile coordinate (%d,%d) out of range for %dx%d grid", x, y, g.TilesX, g.TilesY))
	}
	return y*g.TilesX + x
}

// ChebyshevDistance returns max(|dx|, |dy|) between two tile coordinates,
// the metric the chunk pool's recycle scan uses (§4.2 Chunk pool contract).
func ChebyshevDistance(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
