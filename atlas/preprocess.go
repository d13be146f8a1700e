package atlas

import (
	"fmt"

	"github.com/gogpu/cdlod/gpucore"
)

// DefaultNormalReach is the texel offset used when sampling neighbors to
// compute a texel's normal (§4.3 step 2: "samples ±normalReach neighbors
// (with toroidal wrap)").
const DefaultNormalReach = 1

// ShaderSet bundles the compiled shader modules the atlas's compute
// passes dispatch (§1 Non-goals: shaders themselves are out of scope;
// they are compiled upstream by naga and referenced by compiled module
// here).
type ShaderSet struct {
	// Preprocess decodes raw height, computes a normal, writes RGBA32F
	// (§4.3 step 2).
	Preprocess []uint32
	// MipBuild downsamples one mip level into the next (§4.3 step 3).
	MipBuild []uint32
}

// Pipelines holds the compute pipelines and bind-group layouts built once
// at startup for the atlas's per-frame compute passes.
type Pipelines struct {
	gpu gpucore.Adapter

	preprocessLayout   gpucore.BindGroupLayoutID
	preprocessPipeline gpucore.ComputePipelineID

	mipLayout   gpucore.BindGroupLayoutID
	mipPipeline gpucore.ComputePipelineID
}

// BuildPipelines compiles and links the preprocess and mip-build compute
// pipelines from shader bytecode supplied by the caller's shader
// collaborator.
func BuildPipelines(gpu gpucore.Adapter, shaders ShaderSet) (*Pipelines, error) {
	p := &Pipelines{gpu: gpu}

	preprocessModule, err := gpu.CreateShaderModule(shaders.Preprocess, "atlas-preprocess")
	if err != nil {
		return nil, fmt.Errorf("atlas: compile preprocess shader: %w", err)
	}
	preprocessLayout, err := gpu.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "atlas-preprocess-layout",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeSampledTexture}, // raw
			{Binding: 1, Type: gpucore.BindingTypeStorageTexture}, // processed
		},
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create preprocess bind group layout: %w", err)
	}
	preprocessPipelineLayout, err := gpu.CreatePipelineLayout([]gpucore.BindGroupLayoutID{preprocessLayout})
	if err != nil {
		return nil, fmt.Errorf("atlas: create preprocess pipeline layout: %w", err)
	}
	preprocessPipeline, err := gpu.CreateComputePipeline(&gpucore.ComputePipelineDesc{
		Label:        "atlas-preprocess",
		Layout:       preprocessPipelineLayout,
		ShaderModule: preprocessModule,
		EntryPoint:   "main",
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create preprocess pipeline: %w", err)
	}
	p.preprocessLayout = preprocessLayout
	p.preprocessPipeline = preprocessPipeline

	mipModule, err := gpu.CreateShaderModule(shaders.MipBuild, "atlas-mipbuild")
	if err != nil {
		return nil, fmt.Errorf("atlas: compile mip-build shader: %w", err)
	}
	mipLayout, err := gpu.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "atlas-mipbuild-layout",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeSampledTexture}, // mip m-1
			{Binding: 1, Type: gpucore.BindingTypeStorageTexture}, // dummy
		},
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create mip-build bind group layout: %w", err)
	}
	mipPipelineLayout, err := gpu.CreatePipelineLayout([]gpucore.BindGroupLayoutID{mipLayout})
	if err != nil {
		return nil, fmt.Errorf("atlas: create mip-build pipeline layout: %w", err)
	}
	mipPipeline, err := gpu.CreateComputePipeline(&gpucore.ComputePipelineDesc{
		Label:        "atlas-mipbuild",
		Layout:       mipPipelineLayout,
		ShaderModule: mipModule,
		EntryPoint:   "main",
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create mip-build pipeline: %w", err)
	}
	p.mipLayout = mipLayout
	p.mipPipeline = mipPipeline

	return p, nil
}

// dispatchDims returns the workgroup counts to cover a size x size region
// at MipWorkgroupSize granularity, rounding up.
func dispatchDims(size int) uint32 {
	return uint32((size + MipWorkgroupSize - 1) / MipWorkgroupSize)
}
