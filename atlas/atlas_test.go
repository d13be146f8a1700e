package atlas

import "testing"

func TestNewCreatesExpectedTextureCount(t *testing.T) {
	fa := newFakeAdapter()
	a, err := New(fa, 256, 4, 3)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer a.Close()

	if a.Resolution() != 1024 {
		t.Errorf("Resolution() = %d, want 1024 (256*4)", a.Resolution())
	}
	// raw + processed + dummy + full + FrameCount active = 4+FrameCount
	want := 4 + FrameCount
	if got := len(fa.textures); got != want {
		t.Errorf("created %d textures, want %d", got, want)
	}
}

func TestNewRejectsZeroDimensions(t *testing.T) {
	fa := newFakeAdapter()
	if _, err := New(fa, 0, 4, 3); err == nil {
		t.Error("New() with tileSize=0 should error")
	}
	if _, err := New(fa, 256, 0, 3); err == nil {
		t.Error("New() with atlasK=0 should error")
	}
}

func TestSlotForWrapsToroidally(t *testing.T) {
	fa := newFakeAdapter()
	a, err := New(fa, 256, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	slotX, slotY := a.SlotFor(3, 3, 2, 2)
	if slotX != 1 || slotY != 1 {
		t.Errorf("SlotFor(3,3,2,2) = (%d,%d), want (1,1) ((3+2) mod 4)", slotX, slotY)
	}
}

func TestOffsetPxScalesByTileSize(t *testing.T) {
	fa := newFakeAdapter()
	a, err := New(fa, 256, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	x, y := a.OffsetPx(2, 1)
	if x != 512 || y != 256 {
		t.Errorf("OffsetPx(2,1) = (%d,%d), want (512,256)", x, y)
	}
}
