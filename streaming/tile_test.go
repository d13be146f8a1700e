package streaming

import "testing"

func TestFlagsSetClearHas(t *testing.T) {
	tile := NewTile(0, 0, 0, 0)
	if tile.Has(FlagActive) {
		t.Fatal("new tile should have no flags set")
	}

	tile.Set(FlagActive | FlagQueued)
	if !tile.Has(FlagActive) || !tile.Has(FlagQueued) {
		t.Fatal("Set should raise both bits")
	}
	if tile.Has(FlagUploaded) {
		t.Fatal("Set should not touch unrelated bits")
	}

	tile.Clear(FlagQueued)
	if tile.Has(FlagQueued) {
		t.Fatal("Clear should drop the bit")
	}
	if !tile.Has(FlagActive) {
		t.Fatal("Clear should not touch unrelated bits")
	}
}

func TestNewTileHasNoChunk(t *testing.T) {
	tile := NewTile(1, 2, 10, 20)
	if tile.ChunkIndex() != NoChunk {
		t.Fatalf("ChunkIndex() = %d, want %d", tile.ChunkIndex(), NoChunk)
	}
	if tile.CanUpload() {
		t.Fatal("a tile with no chunk should not be uploadable")
	}
}

func TestSetChunkIndexEnablesUpload(t *testing.T) {
	tile := NewTile(0, 0, 0, 0)
	tile.SetChunkIndex(5)
	if !tile.CanUpload() {
		t.Fatal("a tile with an assigned chunk should be uploadable")
	}
	if tile.ChunkIndex() != 5 {
		t.Fatalf("ChunkIndex() = %d, want 5", tile.ChunkIndex())
	}
}
