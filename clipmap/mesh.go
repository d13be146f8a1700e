package clipmap

import (
	"math"

	"github.com/gogpu/cdlod/meshbuilder"
)

// weldRadius dedupes shared corner/edge-midpoint vertices between
// adjacent cells of the same ring.
const weldRadius = 1e-4

// BuildMesh tessellates the nested clipmap rings (§4.4 "Clipmap mesh
// (built once)"): for each level in [0,meshLevels), cells step by
// step=2^level across [-radius,+radius], carving a hole where the next
// finer ring takes over. Each cell is an 8-triangle fan around its
// center. Vertex Y carries the LOD level (the shader reads it as a mip
// index); X/Z are cell-local world-meter offsets from the camera.
func BuildMesh(meshLevels int, baseLodExtent int) ([]meshbuilder.Vertex, []uint32, meshbuilder.Vertex, meshbuilder.Vertex) {
	b := meshbuilder.New(weldRadius)
	g := float64(baseLodExtent) / 2
	const pad = 1.0

	for level := 0; level < meshLevels; level++ {
		step := float64(int(1) << uint(level))
		radius := step * (g + pad)

		var prevStep float64
		if level > 0 {
			prevStep = step / 2
		}

		for z := -radius; z < radius; z += step {
			for x := -radius; x < radius; x += step {
				cx := x + step/2
				cz := z + step/2
				if prevStep > 0 && math.Max(math.Abs(cx), math.Abs(cz)) < g*prevStep {
					continue // inside the hole the next-finer ring fills
				}
				emitCell(b, x, z, step, float32(level))
			}
		}
	}

	vertices, indices := b.Commit()
	min, max := b.Bounds()
	return vertices, indices, min, max
}

// Flatten lays out a welded vertex buffer as interleaved float32 triples
// for upload into a GPU vertex buffer.
func Flatten(vertices []meshbuilder.Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// emitCell tessellates one step x step square as the canonical 8-triangle
// fan around its center: 4 corners, 4 edge midpoints, and the center,
// connected so that two adjacent cells of the same ring share their common
// edge's three vertices once welded. Vertices of different rings carry a
// different Y (their level), so they are never welded together.
func emitCell(b *meshbuilder.Builder, x, z, step float64, level float32) {
	v := func(vx, vz float64) meshbuilder.Vertex {
		return meshbuilder.Vertex{float32(vx), level, float32(vz)}
	}

	c0 := v(x, z)
	c1 := v(x+step, z)
	c2 := v(x+step, z+step)
	c3 := v(x, z+step)
	m0 := v(x+step/2, z)
	m1 := v(x+step, z+step/2)
	m2 := v(x+step/2, z+step)
	m3 := v(x, z+step/2)
	e := v(x+step/2, z+step/2)

	b.AddTriangle(e, c0, m0)
	b.AddTriangle(e, m0, c1)
	b.AddTriangle(e, c1, m1)
	b.AddTriangle(e, m1, c2)
	b.AddTriangle(e, c2, m2)
	b.AddTriangle(e, m2, c3)
	b.AddTriangle(e, c3, m3)
	b.AddTriangle(e, m3, c0)
}
