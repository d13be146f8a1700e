package gpuadapter

import (
	"fmt"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	"github.com/gogpu/cdlod/gpucore"
)

type bindGroupLayoutEntry struct {
	handle core.BindGroupLayoutID
}

type pipelineLayoutEntry struct {
	handle core.PipelineLayoutID
}

type computePipelineEntry struct {
	handle core.ComputePipelineID
}

type renderPipelineEntry struct {
	handle core.RenderPipelineID
}

type bindGroupEntry struct {
	handle core.BindGroupID
}

func toWGPUBindingType(t gpucore.BindingType) types.BindingType {
	switch t {
	case gpucore.BindingTypeUniformBuffer:
		return types.BindingTypeUniformBuffer
	case gpucore.BindingTypeDynamicUniformBuffer:
		return types.BindingTypeUniformBufferDynamic
	case gpucore.BindingTypeStorageBuffer:
		return types.BindingTypeStorageBuffer
	case gpucore.BindingTypeReadOnlyStorageBuffer:
		return types.BindingTypeReadOnlyStorageBuffer
	case gpucore.BindingTypeSampler:
		return types.BindingTypeSampler
	case gpucore.BindingTypeSampledTexture:
		return types.BindingTypeSampledTexture
	case gpucore.BindingTypeStorageTexture:
		return types.BindingTypeStorageTexture
	default:
		return types.BindingTypeUniformBuffer
	}
}

// CreateBindGroupLayout creates a bind group layout (§4.4's sampler/texture
// binding slots and the dynamic uniform binding shared by every draw).
func (a *WGPUAdapter) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	if desc == nil {
		return 0, fmt.Errorf("gpuadapter: nil bind group layout descriptor")
	}

	entries := make([]types.BindGroupLayoutEntryDescriptor, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = types.BindGroupLayoutEntryDescriptor{
			Binding:        e.Binding,
			Type:           toWGPUBindingType(e.Type),
			MinBindingSize: e.MinBindingSize,
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	handle, err := core.CreateBindGroupLayout(a.device, &types.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create bind group layout %q: %w", desc.Label, err)
	}

	a.nextID++
	id := gpucore.BindGroupLayoutID(a.nextID)
	a.bindGroupLayouts[id] = &bindGroupLayoutEntry{handle: handle}
	return id, nil
}

// DestroyBindGroupLayout releases a bind group layout.
func (a *WGPUAdapter) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.bindGroupLayouts, id)
}

// CreatePipelineLayout combines bind group layouts into a pipeline layout.
func (a *WGPUAdapter) CreatePipelineLayout(layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	handles := make([]core.BindGroupLayoutID, len(layouts))
	for i, l := range layouts {
		entry, ok := a.bindGroupLayouts[l]
		if !ok {
			return 0, fmt.Errorf("gpuadapter: unknown bind group layout %d", l)
		}
		handles[i] = entry.handle
	}

	handle, err := core.CreatePipelineLayout(a.device, &types.PipelineLayoutDescriptor{
		BindGroupLayouts: handles,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create pipeline layout: %w", err)
	}

	a.nextID++
	id := gpucore.PipelineLayoutID(a.nextID)
	a.pipelineLayouts[id] = &pipelineLayoutEntry{handle: handle}
	return id, nil
}

// DestroyPipelineLayout releases a pipeline layout.
func (a *WGPUAdapter) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pipelineLayouts, id)
}

// CreateComputePipeline creates the heightfield-preprocess or mip-build
// compute pipeline (§4.3 steps 2-3).
func (a *WGPUAdapter) CreateComputePipeline(desc *gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	if desc == nil {
		return 0, fmt.Errorf("gpuadapter: nil compute pipeline descriptor")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	layout, ok := a.pipelineLayouts[desc.Layout]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown pipeline layout %d", desc.Layout)
	}
	shader, ok := a.shaderHandles[desc.ShaderModule]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown shader module %d", desc.ShaderModule)
	}

	handle, err := core.CreateComputePipeline(a.device, &types.ComputePipelineDescriptor{
		Label:      desc.Label,
		Layout:     layout.handle,
		Module:     shader,
		EntryPoint: desc.EntryPoint,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create compute pipeline %q: %w", desc.Label, err)
	}

	a.nextID++
	id := gpucore.ComputePipelineID(a.nextID)
	a.computePipelines[id] = &computePipelineEntry{handle: handle}
	return id, nil
}

// DestroyComputePipeline releases a compute pipeline.
func (a *WGPUAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.computePipelines, id)
}

func toWGPUVertexFormat(f gpucore.VertexFormat) types.VertexFormat {
	switch f {
	case gpucore.VertexFormatFloat32x2:
		return types.VertexFormatFloat32x2
	case gpucore.VertexFormatFloat32x3:
		return types.VertexFormatFloat32x3
	case gpucore.VertexFormatFloat32x4:
		return types.VertexFormatFloat32x4
	default:
		return types.VertexFormatFloat32
	}
}

func toWGPUTopology(t gpucore.PrimitiveTopology) types.PrimitiveTopology {
	if t == gpucore.PrimitiveTopologyLineList {
		return types.PrimitiveTopologyLineList
	}
	return types.PrimitiveTopologyTriangleList
}

// CreateRenderPipeline creates the full-world or clipmap draw pipeline
// (§4.4). Wireframe mirrors the Flags.Wireframe debug toggle (§6).
func (a *WGPUAdapter) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.RenderPipelineID, error) {
	if desc == nil {
		return 0, fmt.Errorf("gpuadapter: nil render pipeline descriptor")
	}

	buffers := make([]types.VertexBufferLayoutDescriptor, len(desc.Buffers))
	for i, b := range desc.Buffers {
		attrs := make([]types.VertexAttributeDescriptor, len(b.Attributes))
		for j, attr := range b.Attributes {
			attrs[j] = types.VertexAttributeDescriptor{
				Format:         toWGPUVertexFormat(attr.Format),
				Offset:         attr.Offset,
				ShaderLocation: attr.ShaderLocation,
			}
		}
		buffers[i] = types.VertexBufferLayoutDescriptor{
			ArrayStride: b.ArrayStride,
			Attributes:  attrs,
		}
	}

	topology := toWGPUTopology(desc.Topology)
	polygonMode := types.PolygonModeFill
	if desc.Wireframe {
		polygonMode = types.PolygonModeLine
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	layout, ok := a.pipelineLayouts[desc.Layout]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown pipeline layout %d", desc.Layout)
	}
	vertexModule, ok := a.shaderHandles[desc.VertexModule]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown vertex shader module %d", desc.VertexModule)
	}
	fragmentModule, ok := a.shaderHandles[desc.FragmentModule]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown fragment shader module %d", desc.FragmentModule)
	}

	handle, err := core.CreateRenderPipeline(a.device, &types.RenderPipelineDescriptor{
		Label:          desc.Label,
		Layout:         layout.handle,
		VertexModule:   vertexModule,
		VertexEntry:    desc.VertexEntry,
		FragmentModule: fragmentModule,
		FragmentEntry:  desc.FragmentEntry,
		Buffers:        buffers,
		Topology:       topology,
		PolygonMode:    polygonMode,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create render pipeline %q: %w", desc.Label, err)
	}

	a.nextID++
	id := gpucore.RenderPipelineID(a.nextID)
	a.renderPipelines[id] = &renderPipelineEntry{handle: handle}
	return id, nil
}

// DestroyRenderPipeline releases a render pipeline.
func (a *WGPUAdapter) DestroyRenderPipeline(id gpucore.RenderPipelineID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.renderPipelines, id)
}

// CreateBindGroup binds concrete resources to a layout's slots.
func (a *WGPUAdapter) CreateBindGroup(desc *gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	if desc == nil {
		return 0, fmt.Errorf("gpuadapter: nil bind group descriptor")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return 0, ErrNotInitialized
	}

	layout, ok := a.bindGroupLayouts[desc.Layout]
	if !ok {
		return 0, fmt.Errorf("gpuadapter: unknown bind group layout %d", desc.Layout)
	}

	entries := make([]types.BindGroupEntryDescriptor, len(desc.Entries))
	for i, e := range desc.Entries {
		entry := types.BindGroupEntryDescriptor{Binding: e.Binding}
		switch {
		case e.Buffer != 0:
			buf, ok := a.buffers[e.Buffer]
			if !ok {
				return 0, fmt.Errorf("gpuadapter: unknown buffer %d in bind group entry", e.Buffer)
			}
			entry.Buffer = buf.handle
			entry.Offset = e.Offset
			entry.Size = e.Size
		case e.Texture != 0:
			view, ok := a.views[e.Texture]
			if !ok {
				return 0, fmt.Errorf("gpuadapter: unknown texture view %d in bind group entry", e.Texture)
			}
			entry.TextureView = view.handle
		case e.Sampler != 0:
			if _, ok := a.samplers[e.Sampler]; !ok {
				return 0, fmt.Errorf("gpuadapter: unknown sampler %d in bind group entry", e.Sampler)
			}
		}
		entries[i] = entry
	}

	handle, err := core.CreateBindGroup(a.device, &types.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout.handle,
		Entries: entries,
	})
	if err != nil {
		return 0, fmt.Errorf("gpuadapter: create bind group %q: %w", desc.Label, err)
	}

	a.nextID++
	id := gpucore.BindGroupID(a.nextID)
	a.bindGroups[id] = &bindGroupEntry{handle: handle}
	return id, nil
}

// DestroyBindGroup releases a bind group.
func (a *WGPUAdapter) DestroyBindGroup(id gpucore.BindGroupID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.bindGroups, id)
}
