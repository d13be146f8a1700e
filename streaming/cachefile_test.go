package streaming

import (
	"errors"
	"testing"

	"github.com/gogpu/cdlod/coreerr"
)

func TestWriteReadMetadataRoundTrips(t *testing.T) {
	c := NewFileCache(t.TempDir(), 256)
	if err := c.WriteMetadata("src", 3, 7); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	m, err := c.ReadMetadata("src")
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if m.Version != cacheMetadataVersion || m.XAlignment != 3 || m.YAlignment != 7 {
		t.Fatalf("ReadMetadata = %+v, want version=%d x=3 y=7", m, cacheMetadataVersion)
	}
}

func TestReadMetadataMissingIsNotFound(t *testing.T) {
	c := NewFileCache(t.TempDir(), 256)
	_, err := c.ReadMetadata("missing")
	if !errors.Is(err, coreerr.ErrNotFound) {
		t.Fatalf("err = %v, want wrapping ErrNotFound", err)
	}
}

func TestInvalidateDetectsAlignmentMismatch(t *testing.T) {
	c := NewFileCache(t.TempDir(), 256)
	c.WriteMetadata("src", 3, 7)

	if !c.Invalidate("src", 3, 7) {
		t.Error("Invalidate should report reusable cache for matching alignment")
	}
	if c.Invalidate("src", 1, 1) {
		t.Error("Invalidate should report stale cache for mismatched alignment")
	}
}

func TestLoadPayloadEmptyTileIsZeroFilled(t *testing.T) {
	c := NewFileCache(t.TempDir(), 4)
	data, err := c.LoadPayload("src", 0, 0, true)
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	want := 4 * 4 * 2
	if len(data) != want {
		t.Fatalf("len(data) = %d, want %d", len(data), want)
	}
	for _, b := range data {
		if b != 0 {
			t.Fatal("empty tile payload should be all zeros")
		}
	}
}

func TestWriteLoadPayloadRoundTrips(t *testing.T) {
	c := NewFileCache(t.TempDir(), 2)
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := c.WritePayload("src", 1, 2, payload); err != nil {
		t.Fatalf("WritePayload: %v", err)
	}
	got, err := c.LoadPayload("src", 1, 2, false)
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("LoadPayload = %v, want %v", got, payload)
	}
}

func TestLoadPayloadMissingFileIsZeroFilled(t *testing.T) {
	c := NewFileCache(t.TempDir(), 4)
	data, err := c.LoadPayload("nonexistent", 9, 9, false)
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	if len(data) != 4*4*2 {
		t.Fatalf("len(data) = %d, want %d", len(data), 4*4*2)
	}
}
