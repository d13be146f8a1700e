package heightfield

// Chunk is one quadtree node's simplified mesh (§3 "Chunk (offline
// output)").
type Chunk struct {
	NodeIndex uint32
	Level     int
	BBoxMin   [3]float32
	BBoxMax   [3]float32
	Vertices  [][3]float32
	Indices   []uint32
}
