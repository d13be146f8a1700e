package heightfield

import "testing"

func TestMeshFlatHeightmapProducesOneChunkPerNode(t *testing.T) {
	hm := flatHeightmap(3)
	ComputeErrors(hm, 1)
	NewPropagator(hm).Run()

	chunks := Mesh(hm)
	want := int(NodeCount(3))
	if len(chunks) != want {
		t.Fatalf("len(chunks) = %d, want %d", len(chunks), want)
	}

	for _, c := range chunks {
		if len(c.Indices)%3 != 0 {
			t.Errorf("chunk %d: index count %d is not a multiple of 3", c.NodeIndex, len(c.Indices))
		}
		for _, idx := range c.Indices {
			if int(idx) >= len(c.Vertices) {
				t.Errorf("chunk %d: index %d out of range for %d vertices", c.NodeIndex, idx, len(c.Vertices))
			}
		}
	}
}

func TestMeshRootIsNodeIndexOne(t *testing.T) {
	hm := flatHeightmap(2)
	ComputeErrors(hm, 1)
	NewPropagator(hm).Run()

	chunks := Mesh(hm)
	if chunks[0].NodeIndex != 1 {
		t.Errorf("first chunk NodeIndex = %d, want 1 (root)", chunks[0].NodeIndex)
	}
	if chunks[0].Level != hm.TreeDepth-1 {
		t.Errorf("root Level = %d, want %d", chunks[0].Level, hm.TreeDepth-1)
	}
}

func TestMeshLeavesCoverFullExtent(t *testing.T) {
	hm := flatHeightmap(1)
	ComputeErrors(hm, 1)
	NewPropagator(hm).Run()

	chunks := Mesh(hm)
	root := chunks[0]
	if root.BBoxMin[0] != 0 || root.BBoxMin[2] != 0 {
		t.Errorf("root BBoxMin = %v, want origin at (0,_,0)", root.BBoxMin)
	}
	want := float32(hm.Side-1) * float32(hm.MetersPerPixel)
	if root.BBoxMax[0] != want || root.BBoxMax[2] != want {
		t.Errorf("root BBoxMax = %v, want (%v,_,%v)", root.BBoxMax, want, want)
	}
}

func TestMergeDiamondsRespectsTieBreak(t *testing.T) {
	hm := flatHeightmap(2)
	ComputeErrors(hm, 1)
	NewPropagator(hm).Run()

	nodes := make(map[uint64]triNode)
	present := make(map[uint64]bool)
	splitTriangle(coord{4, 0}, coord{0, 0}, coord{4, 4}, 2, 2, 0, nodes, present)
	splitTriangle(coord{0, 4}, coord{0, 0}, coord{4, 4}, 3, 2, 0, nodes, present)

	before := len(present)
	mergeDiamonds(hm, nodes, present, 2, hm.TreeDepth-1)
	after := len(present)
	if after > before {
		t.Errorf("mergeDiamonds should only ever reduce or hold present count, got %d -> %d", before, after)
	}
	if !present[2] || !present[3] {
		t.Error("flat terrain at root nodeLevel should merge fully down to the two root triangles")
	}
}
