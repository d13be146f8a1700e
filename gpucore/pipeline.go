package gpucore

import "fmt"

// BuildBindGroupLayout is a small helper assembling a BindGroupLayoutDesc
// from binding/type pairs. No package in this module calls it; atlas and
// clipmap declare their layouts as BindGroupLayoutDesc struct literals.
func BuildBindGroupLayout(label string, entries ...BindGroupLayoutEntry) *BindGroupLayoutDesc {
	return &BindGroupLayoutDesc{Label: label, Entries: entries}
}

// UniformEntry is shorthand for a dynamic-uniform-buffer binding.
func UniformEntry(binding uint32, size uint64) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Binding: binding, Type: BindingTypeDynamicUniformBuffer, MinBindingSize: size}
}

// SamplerEntry is shorthand for a sampler binding.
func SamplerEntry(binding uint32) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Binding: binding, Type: BindingTypeSampler}
}

// TextureEntry is shorthand for a sampled-texture binding.
func TextureEntry(binding uint32) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Binding: binding, Type: BindingTypeSampledTexture}
}

// StorageTextureEntry is shorthand for a storage-texture binding, used by
// the compute passes of §4.3 (heightfield preprocess, mip build).
func StorageTextureEntry(binding uint32) BindGroupLayoutEntry {
	return BindGroupLayoutEntry{Binding: binding, Type: BindingTypeStorageTexture}
}

// ValidatePipelineDesc performs the cheap, backend-independent checks a
// concrete Adapter.CreateComputePipeline/CreateRenderPipeline implementation
// should run before touching the backend, mirroring the validation the
// teacher's HybridPipeline constructor ran for viewport/path-count bounds.
func ValidatePipelineDesc(layout PipelineLayoutID, shader ShaderModuleID, entry string) error {
	if layout == InvalidID {
		return fmt.Errorf("gpucore: pipeline layout is required")
	}
	if shader == InvalidID {
		return fmt.Errorf("gpucore: shader module is required")
	}
	if entry == "" {
		return fmt.Errorf("gpucore: entry point is required")
	}
	return nil
}
