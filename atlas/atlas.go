package atlas

import (
	"fmt"

	"github.com/gogpu/cdlod/gpucore"
)

// FrameCount is the number of triple-buffered active-texture copies
// (§4.3 step 4: "Copy every mip of processed into active[frameIndex]").
const FrameCount = 3

// MipWorkgroupSize is the compute workgroup side used for both the
// heightfield-preprocess pass and the mip-chain build (§4.3 steps 2-3:
// "one workgroup per 8x8 texels").
const MipWorkgroupSize = 8

// Atlas owns the GPU textures backing one terrain's tile atlas: the raw
// 16-bit upload target, the post-process RGBA32F target, a scratch
// texture used while building the mip chain, the triple-buffered active
// texture the clipmap shader samples, and the low-resolution full-world
// base (§3 Atlas, §4.3).
type Atlas struct {
	gpu gpucore.Adapter

	tileSize   int // T
	atlasK     int // K, tiles per atlas side
	resolution int // H = T*K
	mipCount   int

	raw       gpucore.TextureID
	processed gpucore.TextureID
	dummy     gpucore.TextureID
	active    [FrameCount]gpucore.TextureID
	full      gpucore.TextureID

	frameIndex int
	fullReady  bool
}

// New creates the raw, processed, dummy, active, and full-world textures.
// mipCount is the number of mip levels beyond the base (§4.3 step 3: "for
// each mip level m in 1..mipCount").
func New(gpu gpucore.Adapter, tileSize, atlasK, mipCount int) (*Atlas, error) {
	if tileSize <= 0 || atlasK <= 0 {
		return nil, fmt.Errorf("atlas: invalid dimensions tileSize=%d atlasK=%d", tileSize, atlasK)
	}
	resolution := tileSize * atlasK

	a := &Atlas{gpu: gpu, tileSize: tileSize, atlasK: atlasK, resolution: resolution, mipCount: mipCount}

	raw, err := gpu.CreateTexture(resolution, resolution, gpucore.TextureFormatR16Uint,
		gpucore.TextureUsageCopyDst|gpucore.TextureUsageTextureBinding|gpucore.TextureUsageStorageBinding)
	if err != nil {
		return nil, fmt.Errorf("atlas: create raw texture: %w", err)
	}
	a.raw = raw

	processed, err := gpu.CreateTexture(resolution, resolution, gpucore.TextureFormatRGBA32Float,
		gpucore.TextureUsageCopySrc|gpucore.TextureUsageTextureBinding|gpucore.TextureUsageStorageBinding)
	if err != nil {
		return nil, fmt.Errorf("atlas: create processed texture: %w", err)
	}
	a.processed = processed

	dummy, err := gpu.CreateTexture(resolution, resolution, gpucore.TextureFormatRGBA32Float,
		gpucore.TextureUsageCopySrc|gpucore.TextureUsageStorageBinding)
	if err != nil {
		return nil, fmt.Errorf("atlas: create mip-build dummy texture: %w", err)
	}
	a.dummy = dummy

	for i := range a.active {
		active, err := gpu.CreateTexture(resolution, resolution, gpucore.TextureFormatRGBA32Float,
			gpucore.TextureUsageCopyDst|gpucore.TextureUsageTextureBinding)
		if err != nil {
			return nil, fmt.Errorf("atlas: create active texture %d: %w", i, err)
		}
		a.active[i] = active
	}

	full, err := gpu.CreateTexture(resolution, resolution, gpucore.TextureFormatRGBA32Float,
		gpucore.TextureUsageCopyDst|gpucore.TextureUsageTextureBinding)
	if err != nil {
		return nil, fmt.Errorf("atlas: create full-world texture: %w", err)
	}
	a.full = full

	return a, nil
}

// Close destroys every texture the atlas owns.
func (a *Atlas) Close() {
	a.gpu.DestroyTexture(a.raw)
	a.gpu.DestroyTexture(a.processed)
	a.gpu.DestroyTexture(a.dummy)
	for _, id := range a.active {
		a.gpu.DestroyTexture(id)
	}
	a.gpu.DestroyTexture(a.full)
}

// Resolution returns H, the atlas side in texels.
func (a *Atlas) Resolution() int { return a.resolution }

// TileSize returns T.
func (a *Atlas) TileSize() int { return a.tileSize }

// AtlasK returns K, the atlas side in tiles.
func (a *Atlas) AtlasK() int { return a.atlasK }

// RawTexture returns the raw 16-bit upload target.
func (a *Atlas) RawTexture() gpucore.TextureID { return a.raw }

// ProcessedTexture returns the post-process RGBA32F target.
func (a *Atlas) ProcessedTexture() gpucore.TextureID { return a.processed }

// FullTexture returns the low-resolution full-world base texture.
func (a *Atlas) FullTexture() gpucore.TextureID { return a.full }

// ActiveTexture returns the active texture for the current frame (§4.4
// per-frame draw: "active[frame]").
func (a *Atlas) ActiveTexture() gpucore.TextureID { return a.active[a.frameIndex] }

// FullReady reports whether the low-resolution base has been preprocessed
// at least once (§4.3 "Low-resolution base": "preprocess once").
func (a *Atlas) FullReady() bool { return a.fullReady }

// SlotFor computes the atlas slot for a tile at column-row offset (i,j)
// from the active window's top-left, given wrap offset (x0,y0) (§4.3
// "Tile-to-slot formula").
func (a *Atlas) SlotFor(x0, y0, i, j int) (int, int) {
	return mod(x0+i, a.atlasK), mod(y0+j, a.atlasK)
}

// OffsetPx converts an atlas slot into pixel offsets.
func (a *Atlas) OffsetPx(slotX, slotY int) (int, int) {
	return slotX * a.tileSize, slotY * a.tileSize
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
