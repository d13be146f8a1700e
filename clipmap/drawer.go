package clipmap

import (
	"fmt"

	"github.com/gogpu/cdlod/gpucore"
)

// ShaderSet bundles the compiled vertex/fragment modules for the full-
// world and clipmap draws (§4.4 "Bind the 'full' shader ...", "Bind the
// clipmap shader ..."), plus a wireframe variant of the full-world
// fragment shader selected by a Flags bit.
type ShaderSet struct {
	FullVertex         []uint32
	FullFragment       []uint32
	FullFragmentWire   []uint32
	ClipmapVertex      []uint32
	ClipmapFragment    []uint32
}

// Textures bundles the texture IDs the bind group layout of §4.4
// references: slot 1 active heightmap, slot 2 noise, slot 3 diffuse
// grass, slot 5 full-world heightmap.
type Textures struct {
	Active  gpucore.TextureID
	Noise   gpucore.TextureID
	Diffuse gpucore.TextureID
	Full    gpucore.TextureID
}

// Mesh is one committed clipmap or full-world vertex/index buffer pair.
type Mesh struct {
	VertexBuffer gpucore.BufferID
	IndexBuffer  gpucore.BufferID
	IndexCount   uint32
}

// Drawer owns the render pipelines, samplers, bind group layout, and
// vertex/index buffers for the per-frame clipmap draw.
type Drawer struct {
	gpu gpucore.Adapter

	layout         gpucore.BindGroupLayoutID
	pipelineLayout gpucore.PipelineLayoutID

	fullPipeline    gpucore.RenderPipelineID
	clipmapPipeline gpucore.RenderPipelineID

	samplerClamp gpucore.SamplerID
	samplerWrap  gpucore.SamplerID

	full    Mesh
	clipmap Mesh

	wireframe bool
}

// uploadMesh creates and populates vertex/index buffers for one mesh.
func uploadMesh(gpu gpucore.Adapter, vertices []float32, indices []uint32) (Mesh, error) {
	vbSize := len(vertices) * 4
	vb, err := gpu.CreateBuffer(vbSize, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst)
	if err != nil {
		return Mesh{}, fmt.Errorf("clipmap: create vertex buffer: %w", err)
	}
	gpu.WriteBuffer(vb, 0, float32SliceToBytes(vertices))

	ibSize := len(indices) * 4
	ib, err := gpu.CreateBuffer(ibSize, gpucore.BufferUsageIndex|gpucore.BufferUsageCopyDst)
	if err != nil {
		return Mesh{}, fmt.Errorf("clipmap: create index buffer: %w", err)
	}
	gpu.WriteBuffer(ib, 0, uint32SliceToBytes(indices))

	return Mesh{VertexBuffer: vb, IndexBuffer: ib, IndexCount: uint32(len(indices))}, nil
}

// NewDrawer builds the bind group layout, both render pipelines, and both
// meshes' GPU buffers. fullVertices/fullIndices and clipVertices/
// clipIndices are the flattened (x,L,z) triples and triangle indices from
// the full-world mesh and BuildMesh respectively.
func NewDrawer(gpu gpucore.Adapter, shaders ShaderSet, wireframe bool,
	fullVertices []float32, fullIndices []uint32,
	clipVertices []float32, clipIndices []uint32) (*Drawer, error) {

	d := &Drawer{gpu: gpu, wireframe: wireframe}

	layout, err := gpu.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "clipmap-bind-layout",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeSampler},        // linear clamp
			{Binding: 1, Type: gpucore.BindingTypeSampledTexture}, // active heightmap
			{Binding: 2, Type: gpucore.BindingTypeSampledTexture}, // noise
			{Binding: 3, Type: gpucore.BindingTypeSampledTexture}, // diffuse grass
			{Binding: 4, Type: gpucore.BindingTypeSampler},        // linear wrap (full variant)
			{Binding: 5, Type: gpucore.BindingTypeSampledTexture}, // full-world heightmap
			{Binding: 6, Type: gpucore.BindingTypeDynamicUniformBuffer},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("clipmap: create bind group layout: %w", err)
	}
	d.layout = layout

	pipelineLayout, err := gpu.CreatePipelineLayout([]gpucore.BindGroupLayoutID{layout})
	if err != nil {
		return nil, fmt.Errorf("clipmap: create pipeline layout: %w", err)
	}
	d.pipelineLayout = pipelineLayout

	clampSampler, err := gpu.CreateSampler(&gpucore.SamplerDesc{
		Label: "clipmap-sampler-clamp",
		MagFilter: gpucore.SamplerFilterLinear, MinFilter: gpucore.SamplerFilterLinear,
		MipmapFilter: gpucore.SamplerFilterLinear,
		AddressModeU: gpucore.SamplerAddressClampToEdge, AddressModeV: gpucore.SamplerAddressClampToEdge,
	})
	if err != nil {
		return nil, fmt.Errorf("clipmap: create clamp sampler: %w", err)
	}
	d.samplerClamp = clampSampler

	wrapSampler, err := gpu.CreateSampler(&gpucore.SamplerDesc{
		Label: "clipmap-sampler-wrap",
		MagFilter: gpucore.SamplerFilterLinear, MinFilter: gpucore.SamplerFilterLinear,
		MipmapFilter: gpucore.SamplerFilterLinear,
		AddressModeU: gpucore.SamplerAddressRepeat, AddressModeV: gpucore.SamplerAddressRepeat,
	})
	if err != nil {
		return nil, fmt.Errorf("clipmap: create wrap sampler: %w", err)
	}
	d.samplerWrap = wrapSampler

	vertexLayout := gpucore.VertexBufferLayout{
		ArrayStride: 12,
		Attributes:  []gpucore.VertexAttribute{{Format: gpucore.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}},
	}

	fullFrag := shaders.FullFragment
	if wireframe && len(shaders.FullFragmentWire) > 0 {
		fullFrag = shaders.FullFragmentWire
	}
	fullVertexModule, err := gpu.CreateShaderModule(shaders.FullVertex, "clipmap-full-vs")
	if err != nil {
		return nil, fmt.Errorf("clipmap: compile full vertex shader: %w", err)
	}
	fullFragmentModule, err := gpu.CreateShaderModule(fullFrag, "clipmap-full-fs")
	if err != nil {
		return nil, fmt.Errorf("clipmap: compile full fragment shader: %w", err)
	}
	fullTopology := gpucore.PrimitiveTopologyTriangleList
	if wireframe {
		fullTopology = gpucore.PrimitiveTopologyLineList
	}
	fullPipeline, err := gpu.CreateRenderPipeline(&gpucore.RenderPipelineDesc{
		Label: "clipmap-full-pipeline", Layout: pipelineLayout,
		VertexModule: fullVertexModule, VertexEntry: "vs_main",
		FragmentModule: fullFragmentModule, FragmentEntry: "fs_main",
		Buffers: []gpucore.VertexBufferLayout{vertexLayout}, Topology: fullTopology, Wireframe: wireframe,
	})
	if err != nil {
		return nil, fmt.Errorf("clipmap: create full pipeline: %w", err)
	}
	d.fullPipeline = fullPipeline

	clipVertexModule, err := gpu.CreateShaderModule(shaders.ClipmapVertex, "clipmap-vs")
	if err != nil {
		return nil, fmt.Errorf("clipmap: compile clipmap vertex shader: %w", err)
	}
	clipFragmentModule, err := gpu.CreateShaderModule(shaders.ClipmapFragment, "clipmap-fs")
	if err != nil {
		return nil, fmt.Errorf("clipmap: compile clipmap fragment shader: %w", err)
	}
	clipmapPipeline, err := gpu.CreateRenderPipeline(&gpucore.RenderPipelineDesc{
		Label: "clipmap-pipeline", Layout: pipelineLayout,
		VertexModule: clipVertexModule, VertexEntry: "vs_main",
		FragmentModule: clipFragmentModule, FragmentEntry: "fs_main",
		Buffers: []gpucore.VertexBufferLayout{vertexLayout}, Topology: gpucore.PrimitiveTopologyTriangleList,
	})
	if err != nil {
		return nil, fmt.Errorf("clipmap: create clipmap pipeline: %w", err)
	}
	d.clipmapPipeline = clipmapPipeline

	full, err := uploadMesh(gpu, fullVertices, fullIndices)
	if err != nil {
		return nil, err
	}
	d.full = full

	clip, err := uploadMesh(gpu, clipVertices, clipIndices)
	if err != nil {
		return nil, err
	}
	d.clipmap = clip

	return d, nil
}

// Draw records the full-world pass then the clipmap pass onto one render
// pass (§4.4 "Per-frame draw"), binding group with the dynamic uniform
// offset returned by the caller's AllocateUniform call.
func (d *Drawer) Draw(bindGroup gpucore.BindGroupID, uniformOffset uint32) {
	pass := d.gpu.BeginRenderPass()
	defer pass.End()

	pass.SetPipeline(d.fullPipeline)
	pass.SetBindGroup(0, bindGroup, []uint32{uniformOffset})
	pass.SetVertexBuffer(0, d.full.VertexBuffer, 0)
	pass.SetIndexBuffer(d.full.IndexBuffer, gpucore.IndexFormatUint32, 0)
	pass.DrawIndexed(d.full.IndexCount, 1, 0, 0, 0)

	pass.SetPipeline(d.clipmapPipeline)
	pass.SetBindGroup(0, bindGroup, []uint32{uniformOffset})
	pass.SetVertexBuffer(0, d.clipmap.VertexBuffer, 0)
	pass.SetIndexBuffer(d.clipmap.IndexBuffer, gpucore.IndexFormatUint32, 0)
	pass.DrawIndexed(d.clipmap.IndexCount, 1, 0, 0, 0)
}

// BindGroupLayout returns the layout callers build their per-frame bind
// group against.
func (d *Drawer) BindGroupLayout() gpucore.BindGroupLayoutID { return d.layout }

// ClampSampler and WrapSampler return the two samplers of §4.4's bind
// group (slots 0 and 4).
func (d *Drawer) ClampSampler() gpucore.SamplerID { return d.samplerClamp }
func (d *Drawer) WrapSampler() gpucore.SamplerID  { return d.samplerWrap }

func float32SliceToBytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		putFloat32(out[i*4:], f)
	}
	return out
}

func uint32SliceToBytes(v []uint32) []byte {
	out := make([]byte, len(v)*4)
	for i, u := range v {
		putUint32(out[i*4:], u)
	}
	return out
}
