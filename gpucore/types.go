package gpucore

// Resource IDs
//
// These opaque IDs represent GPU resources. Each adapter implementation
// maintains a mapping between IDs and actual backend resources. IDs are
// uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// TextureViewID is an opaque handle to a texture view (a single mip level
// or the whole texture, depending on how it was created).
type TextureViewID uint64

// SamplerID is an opaque handle to a texture sampler.
type SamplerID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// ComputePipelineID is an opaque handle to a compute pipeline.
type ComputePipelineID uint64

// RenderPipelineID is an opaque handle to a graphics (render) pipeline.
type RenderPipelineID uint64

// BindGroupLayoutID is an opaque handle to a bind group layout.
type BindGroupLayoutID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// PipelineLayoutID is an opaque handle to a pipeline layout.
type PipelineLayoutID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	BufferUsageMapRead BufferUsage = 1 << iota
	BufferUsageMapWrite
	BufferUsageCopySrc
	BufferUsageCopyDst
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndirect
)

// TextureFormat specifies the format of texture data.
type TextureFormat uint32

// Texture formats. R16Uint is the raw-heightfield atlas format (§4.3 step
// 1 reads a raw 16-bit height); RGBA32Float is the post-process atlas
// format (RGB = normal, A = height, §4.3 step 2).
const (
	TextureFormatRGBA8Unorm TextureFormat = iota + 1
	TextureFormatRGBA8UnormSRGB
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSRGB
	TextureFormatR8Unorm
	TextureFormatR16Uint
	TextureFormatR32Float
	TextureFormatRG32Float
	TextureFormatRGBA32Float
)

// TextureUsage is a bitmask specifying how a texture will be used.
type TextureUsage uint32

// Texture usage flags.
const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// SamplerFilterMode selects nearest or linear filtering.
type SamplerFilterMode uint32

const (
	SamplerFilterNearest SamplerFilterMode = iota
	SamplerFilterLinear
)

// SamplerAddressMode controls out-of-range texture coordinate handling.
type SamplerAddressMode uint32

const (
	SamplerAddressClampToEdge SamplerAddressMode = iota
	SamplerAddressRepeat
	SamplerAddressMirrorRepeat
)

// SamplerDesc describes a texture sampler (§4.4: sampler 0 linear clamp,
// sampler 4 linear wrap for the full-world variant).
type SamplerDesc struct {
	Label         string
	MagFilter     SamplerFilterMode
	MinFilter     SamplerFilterMode
	MipmapFilter  SamplerFilterMode
	AddressModeU  SamplerAddressMode
	AddressModeV  SamplerAddressMode
}

// BindingType specifies the type of a shader binding.
type BindingType uint32

// Binding types.
const (
	BindingTypeUniformBuffer BindingType = iota + 1
	BindingTypeDynamicUniformBuffer
	BindingTypeStorageBuffer
	BindingTypeReadOnlyStorageBuffer
	BindingTypeSampler
	BindingTypeSampledTexture
	BindingTypeStorageTexture
)

// BindGroupLayoutDesc describes a bind group layout.
type BindGroupLayoutDesc struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindGroupLayoutEntry describes a single binding in a bind group layout.
type BindGroupLayoutEntry struct {
	Binding        uint32
	Type           BindingType
	MinBindingSize uint64
}

// BindGroupEntry describes a single binding in a bind group.
type BindGroupEntry struct {
	Binding uint32
	Buffer  BufferID
	Offset  uint64
	Size    uint64
	Texture TextureViewID
	Sampler SamplerID
}

// BindGroupDesc describes a bind group.
type BindGroupDesc struct {
	Label   string
	Layout  BindGroupLayoutID
	Entries []BindGroupEntry
}

// ComputePipelineDesc describes a compute pipeline.
type ComputePipelineDesc struct {
	Label        string
	Layout       PipelineLayoutID
	ShaderModule ShaderModuleID
	EntryPoint   string
}

// IndexFormat specifies the width of index buffer elements.
type IndexFormat uint32

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// VertexFormat specifies the layout of one vertex attribute.
type VertexFormat uint32

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// VertexAttribute describes one attribute within a vertex buffer layout.
type VertexAttribute struct {
	Format         VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// VertexBufferLayout describes the layout of one vertex buffer slot.
type VertexBufferLayout struct {
	ArrayStride uint64
	Attributes  []VertexAttribute
}

// RenderPipelineDesc describes a graphics (render) pipeline.
type RenderPipelineDesc struct {
	Label          string
	Layout         PipelineLayoutID
	VertexModule   ShaderModuleID
	VertexEntry    string
	FragmentModule ShaderModuleID
	FragmentEntry  string
	Buffers        []VertexBufferLayout
	Topology       PrimitiveTopology
	Wireframe      bool
}

// PrimitiveTopology selects how vertices assemble into primitives.
type PrimitiveTopology uint32

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyLineList
)

// DynamicUniformAllocation is a CPU-writable pointer/offset pair valid for
// the current frame (§6: "a dynamic-uniform allocator returning (pointer,
// offset) pairs valid for the frame").
type DynamicUniformAllocation struct {
	Data   []byte
	Buffer BufferID
	Offset uint64
}
