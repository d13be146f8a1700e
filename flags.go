package cdlod

import "strings"

// Flags is a bitset controlling terrain-wide behavior (§6 Configuration
// structure — Flags).
type Flags uint32

// Flag bits. Values are independent and may be combined freely.
const (
	// FlagWireframe draws the full-world and clipmap meshes with the
	// wireframe shader variant.
	FlagWireframe Flags = 1 << iota

	// FlagTileStreaming enables the background tile worker. When unset,
	// the terrain only renders whatever is already resident (useful for
	// static, fully-cached test scenes).
	FlagTileStreaming

	// FlagShowOrigin names a world-origin debug marker. No code in this
	// module reads the bit; setting it draws nothing.
	FlagShowOrigin

	// FlagShowBoundary names chunk/tile boundary overlays. No code in this
	// module reads the bit; setting it draws nothing.
	FlagShowBoundary

	// FlagShowGrid names a world tile grid overlay. No code in this module
	// reads the bit; setting it draws nothing.
	FlagShowGrid

	// FlagCacheTiles names the on-disk per-tile cache of §4.5. No code in
	// this module reads the bit; streaming.FileCache is used whether or
	// not it is set.
	FlagCacheTiles

	// FlagDebugTools names extra validation and Debug-level output. No
	// code in this module reads the bit; it enables no assertion and no
	// extra logging.
	FlagDebugTools

	// FlagHighRes names a preference for the nested-ring clipmap mesh. No
	// code in this module reads the bit; Drawer.Draw always records both
	// the full-world and the clipmap draw.
	FlagHighRes

	// FlagLowRes names a full-world-only rendering mode. No code in this
	// module reads the bit; Drawer.Draw always records both the
	// full-world and the clipmap draw.
	FlagLowRes
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Set returns f with mask set.
func (f Flags) Set(mask Flags) Flags { return f | mask }

// Clear returns f with mask cleared.
func (f Flags) Clear(mask Flags) Flags { return f &^ mask }

// String renders the set flags as a pipe-separated list, for logging.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		bit  Flags
		name string
	}{
		{FlagWireframe, "Wireframe"},
		{FlagTileStreaming, "TileStreaming"},
		{FlagShowOrigin, "ShowOrigin"},
		{FlagShowBoundary, "ShowBoundary"},
		{FlagShowGrid, "ShowGrid"},
		{FlagCacheTiles, "CacheTiles"},
		{FlagDebugTools, "DebugTools"},
		{FlagHighRes, "HighRes"},
		{FlagLowRes, "LowRes"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
