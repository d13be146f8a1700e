package atlas

import "testing"

func TestNewStagingSizesBuffer(t *testing.T) {
	fa := newFakeAdapter()
	s, err := NewStaging(fa, 4, 256)
	if err != nil {
		t.Fatalf("NewStaging() error: %v", err)
	}
	defer s.Close()

	want := 4 * 256 * 256 * 2
	if len(s.backing) != want {
		t.Errorf("backing size = %d, want %d", len(s.backing), want)
	}
}

func TestSlabReturnsCorrectSlice(t *testing.T) {
	fa := newFakeAdapter()
	s, err := NewStaging(fa, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	slab0 := s.Slab(0)
	slab1 := s.Slab(1)
	if len(slab0) != 8 || len(slab1) != 8 {
		t.Fatalf("slab lengths = %d,%d, want 8,8", len(slab0), len(slab1))
	}
	slab0[0] = 0xAB
	if s.backing[0] != 0xAB {
		t.Error("Slab should return a view into the backing array, not a copy")
	}
	if &s.backing[8] != &slab1[0] {
		t.Error("Slab(1) should start at byte offset 8")
	}
}

func TestSlabOutOfRangeReturnsNil(t *testing.T) {
	fa := newFakeAdapter()
	s, err := NewStaging(fa, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if got := s.Slab(5); got != nil {
		t.Errorf("Slab(5) with capacity 2 should return nil, got %v", got)
	}
	if got := s.Slab(-1); got != nil {
		t.Errorf("Slab(-1) should return nil, got %v", got)
	}
}

func TestFlushOnlyWritesWhenDirty(t *testing.T) {
	fa := newFakeAdapter()
	s, err := NewStaging(fa, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Flush() // no-op, nothing written yet
	if fa.buffers[s.buffer][0] != 0 {
		t.Fatal("unexpected pre-write state")
	}

	slab := s.Slab(0)
	slab[0] = 0x7F
	s.Flush()
	if fa.buffers[s.buffer][0] != 0x7F {
		t.Error("Flush() should have copied the dirty shadow into the GPU buffer")
	}
	if s.dirty {
		t.Error("Flush() should clear the dirty flag")
	}
}
