package gpuadapter

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/cdlod/gpucore"
)

type textureEntry struct {
	handle core.TextureID
	width  int
	height int
	format gpucore.TextureFormat
}

type viewEntry struct {
	handle core.TextureViewID
	texture gpucore.TextureID
}

func toWGPUTextureFormat(format gpucore.TextureFormat) gputypes.TextureFormat {
	switch format {
	case gpucore.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case gpucore.TextureFormatRGBA8UnormSRGB:
		return gputypes.TextureFormatRGBA8UnormSRGB
	case gpucore.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case gpucore.TextureFormatBGRA8UnormSRGB:
		return gputypes.TextureFormatBGRA8UnormSRGB
	case gpucore.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case gpucore.TextureFormatR16Uint:
		return gputypes.TextureFormatR16Uint
	case gpucore.TextureFormatR32Float:
		return gputypes.TextureFormatR32Float
	case gpucore.TextureFormatRG32Float:
		return gputypes.TextureFormatRG32Float
	case gpucore.TextureFormatRGBA32Float:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

func toWGPUTextureUsage(usage gpucore.TextureUsage) gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if usage&gpucore.TextureUsageCopySrc != 0 {
		out |= gputypes.TextureUsageCopySrc
	}
	if usage&gpucore.TextureUsageCopyDst != 0 {
		out |= gputypes.TextureUsageCopyDst
	}
	if usage&gpucore.TextureUsageTextureBinding != 0 {
		out |= gputypes.TextureUsageTextureBinding
	}
	if usage&gpucore.TextureUsageStorageBinding != 0 {
		out |= gputypes.TextureUsageStorageBinding
	}
	if usage&gpucore.TextureUsageRenderAttachment != 0 {
		out |= gputypes.TextureUsageRenderAttachment
	}
	return out
}

// CreateTexture creates a GPU texture (§6). Used for the raw/processed
// atlas, the triple-buffered active texture, the full-world heightmap, and
// the noise/diffuse sampled textures of §4.4's bind group layout.
func (a *WGPUAdapter) CreateTexture(width, height int, format gpucore.TextureFormat, usage gpucore.TextureUsage) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("gpuadapter: invalid texture dimensions %dx%d", width, height)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	handle, err := core.CreateTexture(a.device, &gputypes.TextureDescriptor{
		Size: gputypes.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        toWGPUTextureFormat(format),
		Usage:         toWGPUTextureUsage(usage),
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create texture: %w", err)
	}

	a.nextID++
	id := gpucore.TextureID(a.nextID)
	a.textures[id] = &textureEntry{handle: handle, width: width, height: height, format: format}
	return id, nil
}

// DestroyTexture releases a GPU texture.
func (a *WGPUAdapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry, ok := a.textures[id]
	if !ok {
		return
	}
	core.DestroyTexture(entry.handle)
	delete(a.textures, id)
}

// CreateTextureView creates a view restricted to a mip range, used by the
// mip-chain builder (§4.3 step 3) which binds a sampled view of mip m-1
// and a storage view of the dummy texture per level.
func (a *WGPUAdapter) CreateTextureView(id gpucore.TextureID, baseMipLevel, mipLevelCount uint32) (gpucore.TextureViewID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.textures[id]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown texture %d", id)
	}

	handle, err := core.CreateTextureView(entry.handle, &gputypes.TextureViewDescriptor{
		BaseMipLevel:   baseMipLevel,
		MipLevelCount:  mipLevelCount,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create texture view: %w", err)
	}

	a.nextID++
	vid := gpucore.TextureViewID(a.nextID)
	a.views[vid] = &viewEntry{handle: handle, texture: id}
	return vid, nil
}

// WriteTexture uploads bytes to a texture (used for the noise/diffuse
// textures loaded once at startup, not the per-frame atlas path which
// goes through a BlitPassEncoder copy from the staging ring).
func (a *WGPUAdapter) WriteTexture(id gpucore.TextureID, data []byte) {
	a.mu.RLock()
	entry, ok := a.textures[id]
	a.mu.RUnlock()
	if !ok {
		return
	}
	core.QueueWriteTexture(a.queue, entry.handle, data, entry.width, entry.height)
}

// ReadTexture reads a texture back to host memory. This may stall; the
// core only uses it for tests and the offline full-world downsample.
func (a *WGPUAdapter) ReadTexture(id gpucore.TextureID) ([]byte, error) {
	a.mu.RLock()
	entry, ok := a.textures[id]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gpuadapter: unknown texture %d", id)
	}
	return core.ReadTexture(a.device, entry.handle)
}

// CreateSampler creates a texture sampler (§4.4 sampler 0/4).
func (a *WGPUAdapter) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.SamplerID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	_, err := core.CreateSampler(a.device, toWGPUSamplerDescriptor(desc))
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create sampler: %w", err)
	}

	a.nextID++
	id := gpucore.SamplerID(a.nextID)
	a.samplers[id] = struct{}{}
	return id, nil
}

// DestroySampler releases a sampler.
func (a *WGPUAdapter) DestroySampler(id gpucore.SamplerID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.samplers, id)
}

func toWGPUSamplerDescriptor(desc *gpucore.SamplerDesc) *gputypes.SamplerDescriptor {
	if desc == nil {
		return &gputypes.SamplerDescriptor{}
	}
	return &gputypes.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: toWGPUAddressMode(desc.AddressModeU),
		AddressModeV: toWGPUAddressMode(desc.AddressModeV),
		MagFilter:    toWGPUFilterMode(desc.MagFilter),
		MinFilter:    toWGPUFilterMode(desc.MinFilter),
		MipmapFilter: toWGPUFilterMode(desc.MipmapFilter),
	}
}

func toWGPUAddressMode(mode gpucore.SamplerAddressMode) gputypes.AddressMode {
	switch mode {
	case gpucore.SamplerAddressRepeat:
		return gputypes.AddressModeRepeat
	case gpucore.SamplerAddressMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func toWGPUFilterMode(mode gpucore.SamplerFilterMode) gputypes.FilterMode {
	if mode == gpucore.SamplerFilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}
