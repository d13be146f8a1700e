package cdlod

import "github.com/gogpu/cdlod/gpucore"

// fakeAdapter is an in-memory gpucore.Adapter sufficient to exercise
// Terrain's construction, frame preparation, and render sequencing
// without a real GPU backend.
type fakeAdapter struct {
	nextID uint64

	buffers  map[gpucore.BufferID][]byte
	textures map[gpucore.TextureID]struct{}

	renderCalls int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		buffers:  make(map[gpucore.BufferID][]byte),
		textures: make(map[gpucore.TextureID]struct{}),
	}
}

func (f *fakeAdapter) id() uint64 { f.nextID++; return f.nextID }

func (f *fakeAdapter) SupportsCompute() bool       { return true }
func (f *fakeAdapter) MaxWorkgroupSize() [3]uint32 { return [3]uint32{256, 256, 64} }
func (f *fakeAdapter) MaxBufferSize() uint64       { return 1 << 30 }

func (f *fakeAdapter) CreateShaderModule(spirv []uint32, label string) (gpucore.ShaderModuleID, error) {
	return gpucore.ShaderModuleID(f.id()), nil
}
func (f *fakeAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {}

func (f *fakeAdapter) CreateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	id := gpucore.BufferID(f.id())
	f.buffers[id] = make([]byte, size)
	return id, nil
}
func (f *fakeAdapter) DestroyBuffer(id gpucore.BufferID) { delete(f.buffers, id) }
func (f *fakeAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	copy(f.buffers[id][offset:], data)
}
func (f *fakeAdapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	out := make([]byte, size)
	copy(out, f.buffers[id][offset:offset+size])
	return out, nil
}

func (f *fakeAdapter) CreateTexture(width, height int, format gpucore.TextureFormat, usage gpucore.TextureUsage) (gpucore.TextureID, error) {
	id := gpucore.TextureID(f.id())
	f.textures[id] = struct{}{}
	return id, nil
}
func (f *fakeAdapter) DestroyTexture(id gpucore.TextureID) { delete(f.textures, id) }
func (f *fakeAdapter) CreateTextureView(id gpucore.TextureID, baseMipLevel, mipLevelCount uint32) (gpucore.TextureViewID, error) {
	return gpucore.TextureViewID(f.id()), nil
}
func (f *fakeAdapter) WriteTexture(id gpucore.TextureID, data []byte)  {}
func (f *fakeAdapter) ReadTexture(id gpucore.TextureID) ([]byte, error) { return nil, nil }

func (f *fakeAdapter) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.SamplerID, error) {
	return gpucore.SamplerID(f.id()), nil
}
func (f *fakeAdapter) DestroySampler(id gpucore.SamplerID) {}

func (f *fakeAdapter) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	return gpucore.BindGroupLayoutID(f.id()), nil
}
func (f *fakeAdapter) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {}
func (f *fakeAdapter) CreatePipelineLayout(layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	return gpucore.PipelineLayoutID(f.id()), nil
}
func (f *fakeAdapter) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {}
func (f *fakeAdapter) CreateComputePipeline(desc *gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	return gpucore.ComputePipelineID(f.id()), nil
}
func (f *fakeAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {}
func (f *fakeAdapter) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.RenderPipelineID, error) {
	return gpucore.RenderPipelineID(f.id()), nil
}
func (f *fakeAdapter) DestroyRenderPipeline(id gpucore.RenderPipelineID) {}
func (f *fakeAdapter) CreateBindGroup(desc *gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	return gpucore.BindGroupID(f.id()), nil
}
func (f *fakeAdapter) DestroyBindGroup(id gpucore.BindGroupID) {}

func (f *fakeAdapter) AllocateUniform(size uint64) (gpucore.DynamicUniformAllocation, error) {
	return gpucore.DynamicUniformAllocation{Data: make([]byte, size), Buffer: gpucore.BufferID(f.id())}, nil
}

type fakeBlitPass struct{}

func (p *fakeBlitPass) Barrier(b gpucore.Barrier) {}
func (p *fakeBlitPass) CopyBufferToTexture(src gpucore.BufferID, srcOffset uint64, dst gpucore.TextureID, dstX, dstY, width, height int) {
}
func (p *fakeBlitPass) CopyTextureToTexture(src, dst gpucore.TextureID, width, height int) {}
func (p *fakeBlitPass) End()                                                              {}

func (f *fakeAdapter) BeginBlitPass() gpucore.BlitPassEncoder { return &fakeBlitPass{} }

type fakeComputePass struct{}

func (p *fakeComputePass) SetPipeline(pipeline gpucore.ComputePipelineID)       {}
func (p *fakeComputePass) SetBindGroup(index uint32, group gpucore.BindGroupID) {}
func (p *fakeComputePass) Dispatch(x, y, z uint32)                              {}
func (p *fakeComputePass) End()                                                 {}

func (f *fakeAdapter) BeginComputePass() gpucore.ComputePassEncoder { return &fakeComputePass{} }

type fakeRenderPass struct{ a *fakeAdapter }

func (p *fakeRenderPass) SetPipeline(pipeline gpucore.RenderPipelineID) {}
func (p *fakeRenderPass) SetBindGroup(index uint32, group gpucore.BindGroupID, dynamicOffsets []uint32) {
}
func (p *fakeRenderPass) SetVertexBuffer(slot uint32, buffer gpucore.BufferID, offset uint64) {}
func (p *fakeRenderPass) SetIndexBuffer(buffer gpucore.BufferID, format gpucore.IndexFormat, offset uint64) {
}
func (p *fakeRenderPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {}
func (p *fakeRenderPass) SetScissorRect(x, y, width, height uint32)                   {}
func (p *fakeRenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.a.renderCalls++
}
func (p *fakeRenderPass) End() {}

func (f *fakeAdapter) BeginRenderPass() gpucore.RenderPassEncoder { return &fakeRenderPass{a: f} }

func (f *fakeAdapter) Submit()   {}
func (f *fakeAdapter) WaitIdle() {}
