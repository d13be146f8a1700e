// Package meshbuilder deduplicates triangle-soup input into an indexed
// vertex/index buffer. It is the "add-triangle + commit" collaborator both
// the offline chunk mesher (heightfield) and the runtime clipmap mesh
// builder (clipmap) feed triangles through; §1 of the terrain core treats
// this tool as an external collaborator rather than something the core
// owns outright, so it lives in its own package with no dependency on
// either caller.
package meshbuilder

// Builder accumulates triangles and welds vertices that fall into the same
// weldRadius-sized cell on every axis into a single shared vertex. Two
// vertices closer than weldRadius but on opposite sides of a cell
// boundary stay distinct.
type Builder struct {
	weldRadius float64
	vertices   []Vertex
	indices    []uint32
	lookup     map[weldKey]uint32
}

// Vertex is a welded output position.
type Vertex [3]float32

type weldKey struct{ x, y, z int64 }

// New creates a Builder whose weld key is each coordinate divided by
// weldRadius and truncated toward zero, per axis.
func New(weldRadius float64) *Builder {
	return &Builder{
		weldRadius: weldRadius,
		lookup:     make(map[weldKey]uint32),
	}
}

// AddTriangle appends one triangle, welding each of its three vertices
// against vertices already committed.
func (b *Builder) AddTriangle(v0, v1, v2 Vertex) {
	b.indices = append(b.indices, b.weld(v0), b.weld(v1), b.weld(v2))
}

func (b *Builder) weld(v Vertex) uint32 {
	key := quantize(v, b.weldRadius)
	if idx, ok := b.lookup[key]; ok {
		return idx
	}
	idx := uint32(len(b.vertices))
	b.vertices = append(b.vertices, v)
	b.lookup[key] = idx
	return idx
}

func quantize(v Vertex, radius float64) weldKey {
	if radius <= 0 {
		radius = 1e-9
	}
	return weldKey{
		x: int64(float64(v[0]) / radius),
		y: int64(float64(v[1]) / radius),
		z: int64(float64(v[2]) / radius),
	}
}

// Commit returns the welded vertex buffer and the triangle index list
// accumulated so far. The Builder remains usable afterward; callers that
// want a fresh builder should call New again.
func (b *Builder) Commit() ([]Vertex, []uint32) {
	return b.vertices, b.indices
}

// Bounds returns the AABB of every vertex committed so far. It returns
// (zero, zero) if no vertex has been added.
func (b *Builder) Bounds() (min, max Vertex) {
	if len(b.vertices) == 0 {
		return Vertex{}, Vertex{}
	}
	min, max = b.vertices[0], b.vertices[0]
	for _, v := range b.vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v[axis] < min[axis] {
				min[axis] = v[axis]
			}
			if v[axis] > max[axis] {
				max[axis] = v[axis]
			}
		}
	}
	return min, max
}
