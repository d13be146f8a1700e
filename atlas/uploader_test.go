package atlas

import (
	"testing"

	"github.com/gogpu/cdlod/streaming"
)

func TestRunFrameBlitsAndProcessesUploadedTiles(t *testing.T) {
	fa := newFakeAdapter()
	a, err := New(fa, 4, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	staging, err := NewStaging(fa, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer staging.Close()

	pipelines, err := BuildPipelines(fa, ShaderSet{Preprocess: []uint32{1}, MipBuild: []uint32{1}})
	if err != nil {
		t.Fatal(err)
	}

	up, err := NewUploader(a, fa, staging, pipelines)
	if err != nil {
		t.Fatal(err)
	}

	grid := streaming.NewGrid(2, 2, 4, [2]float64{0, 0})
	tile := grid.At(0, 0)
	tile.SetChunkIndex(0)
	tile.Set(streaming.FlagUploaded)

	blitted := up.RunFrame(grid, 0, 0, 0, 0)
	if blitted != 1 {
		t.Fatalf("RunFrame blitted %d tiles, want 1", blitted)
	}
	if !tile.Has(streaming.FlagProcessed) {
		t.Error("tile should be Processed after RunFrame")
	}
	if tile.Has(streaming.FlagProcessedIntermediate) {
		t.Error("tile should not still be ProcessedIntermediate after RunFrame")
	}
	if fa.computeCalls == 0 {
		t.Error("RunFrame should have dispatched at least one compute pass")
	}
	if fa.blitCalls == 0 {
		t.Error("RunFrame should have recorded at least one blit pass")
	}
}

func TestRunFrameSkipsAlreadyProcessedTiles(t *testing.T) {
	fa := newFakeAdapter()
	a, err := New(fa, 4, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	staging, err := NewStaging(fa, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer staging.Close()

	pipelines, err := BuildPipelines(fa, ShaderSet{Preprocess: []uint32{1}, MipBuild: []uint32{1}})
	if err != nil {
		t.Fatal(err)
	}
	up, err := NewUploader(a, fa, staging, pipelines)
	if err != nil {
		t.Fatal(err)
	}

	grid := streaming.NewGrid(2, 2, 4, [2]float64{0, 0})
	tile := grid.At(0, 0)
	tile.SetChunkIndex(0)
	tile.Set(streaming.FlagUploaded)
	tile.Set(streaming.FlagProcessed)

	blitted := up.RunFrame(grid, 0, 0, 0, 0)
	if blitted != 0 {
		t.Errorf("RunFrame blitted %d tiles, want 0 (already Processed)", blitted)
	}
}

func TestSwapAdvancesFrameIndex(t *testing.T) {
	fa := newFakeAdapter()
	a, err := New(fa, 4, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	first := a.ActiveTexture()
	a.Swap()
	second := a.ActiveTexture()
	if first == second {
		t.Error("Swap() should advance frameIndex to a different active texture")
	}

	for i := 0; i < FrameCount-1; i++ {
		a.Swap()
	}
	if a.ActiveTexture() != first {
		t.Error("Swap() should cycle back to the first active texture after FrameCount calls")
	}
}
