package meshbuilder

import "testing"

func TestWeldsCoincidentVertices(t *testing.T) {
	b := New(0.001)
	a := Vertex{0, 0, 0}
	c := Vertex{1, 0, 0}
	d := Vertex{0, 1, 0}

	b.AddTriangle(a, c, d)
	b.AddTriangle(a, d, c) // shares every vertex with the first triangle

	verts, indices := b.Commit()
	if len(verts) != 3 {
		t.Errorf("expected 3 welded vertices, got %d", len(verts))
	}
	if len(indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(indices))
	}
}

func TestDistinctVerticesBeyondWeldRadius(t *testing.T) {
	b := New(0.001)
	b.AddTriangle(Vertex{0, 0, 0}, Vertex{1, 0, 0}, Vertex{0, 1, 0})
	b.AddTriangle(Vertex{10, 0, 0}, Vertex{11, 0, 0}, Vertex{10, 1, 0})

	verts, _ := b.Commit()
	if len(verts) != 6 {
		t.Errorf("expected 6 distinct vertices, got %d", len(verts))
	}
}

func TestBounds(t *testing.T) {
	b := New(0.001)
	b.AddTriangle(Vertex{-1, 0, 2}, Vertex{3, 5, -4}, Vertex{0, 0, 0})

	min, max := b.Bounds()
	if min != (Vertex{-1, 0, -4}) {
		t.Errorf("min = %v, want {-1,0,-4}", min)
	}
	if max != (Vertex{3, 5, 2}) {
		t.Errorf("max = %v, want {3,5,2}", max)
	}
}

func TestBoundsEmpty(t *testing.T) {
	b := New(0.001)
	min, max := b.Bounds()
	if min != (Vertex{}) || max != (Vertex{}) {
		t.Error("Bounds() on an empty builder should return the zero value")
	}
}
