package gpucore

// Adapter abstracts over the GPU collaborator this terrain core consumes
// (§6 Consumed GPU interface). It is the only point of contact between
// the core and a concrete GPU backend; implementations must be safe for
// concurrent use from the main thread and the streaming worker, though in
// practice only the main thread issues GPU calls (§5).
//
// Resource lifecycle: resources are created via Create* methods and must
// be explicitly destroyed via Destroy* methods. IDs become invalid after
// destruction and must not be reused.
type Adapter interface {
	// === Capabilities ===

	SupportsCompute() bool
	MaxWorkgroupSize() [3]uint32
	MaxBufferSize() uint64

	// === Shader Compilation ===

	// CreateShaderModule creates a shader module from SPIR-V bytecode
	// produced upstream (by naga, §DOMAIN STACK). The core never compiles
	// GLSL/WGSL itself — shaders are referenced by name (§1 Non-goals).
	CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error)
	DestroyShaderModule(id ShaderModuleID)

	// === Buffer Management ===

	CreateBuffer(size int, usage BufferUsage) (BufferID, error)
	DestroyBuffer(id BufferID)
	WriteBuffer(id BufferID, offset uint64, data []byte)
	ReadBuffer(id BufferID, offset, size uint64) ([]byte, error)

	// === Texture Management ===

	CreateTexture(width, height int, format TextureFormat, usage TextureUsage) (TextureID, error)
	DestroyTexture(id TextureID)
	CreateTextureView(id TextureID, baseMipLevel, mipLevelCount uint32) (TextureViewID, error)
	WriteTexture(id TextureID, data []byte)
	ReadTexture(id TextureID) ([]byte, error)

	// === Samplers ===

	CreateSampler(desc *SamplerDesc) (SamplerID, error)
	DestroySampler(id SamplerID)

	// === Pipeline Management ===

	CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error)
	DestroyBindGroupLayout(id BindGroupLayoutID)
	CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error)
	DestroyPipelineLayout(id PipelineLayoutID)
	CreateComputePipeline(desc *ComputePipelineDesc) (ComputePipelineID, error)
	DestroyComputePipeline(id ComputePipelineID)
	CreateRenderPipeline(desc *RenderPipelineDesc) (RenderPipelineID, error)
	DestroyRenderPipeline(id RenderPipelineID)
	CreateBindGroup(desc *BindGroupDesc) (BindGroupID, error)
	DestroyBindGroup(id BindGroupID)

	// === Dynamic uniform allocator ===

	// AllocateUniform returns a CPU-writable slice and the buffer/offset
	// pair a bind group entry can reference for the remainder of the
	// current frame (§6; §4.4 per-frame draw allocates one per draw).
	AllocateUniform(size uint64) (DynamicUniformAllocation, error)

	// === Command Recording and Execution ===

	// BeginBlitPass begins the raw-upload blit pass (§4.3 step 1).
	BeginBlitPass() BlitPassEncoder

	// BeginComputePass begins a compute pass (§4.3 steps 2-3).
	BeginComputePass() ComputePassEncoder

	// BeginRenderPass begins a render pass (§4.4 per-frame draw).
	BeginRenderPass() RenderPassEncoder

	// Submit submits recorded commands to the GPU.
	Submit()

	// WaitIdle waits for all GPU operations to complete.
	WaitIdle()
}

// ResourceAccess is a bitmask of the memory-access stages a pipeline
// Barrier synchronizes, mirroring §5's "shader-read <-> transfer-write"
// ordering and §6's barrier vocabulary (VertexShader|ComputeShader|
// Transfer stages, ShaderRead|ShaderWrite|TransferRead|TransferWrite
// accesses). wgpu's automatic hazard tracking makes these barriers
// implicit on the concrete backend; the interface still exposes them
// explicitly so the core's pass ordering (§5 "within one frame, the blit
// pass strictly precedes...") is recorded the same way regardless of
// backend.
type ResourceAccess uint32

const (
	AccessShaderRead ResourceAccess = 1 << iota
	AccessShaderWrite
	AccessTransferRead
	AccessTransferWrite
)

// PipelineStage is a bitmask of pipeline stages a Barrier synchronizes
// between.
type PipelineStage uint32

const (
	StageVertexShader PipelineStage = 1 << iota
	StageComputeShader
	StageTransfer
)

// Barrier describes one pipeline barrier recorded between passes.
type Barrier struct {
	SrcStage  PipelineStage
	DstStage  PipelineStage
	SrcAccess ResourceAccess
	DstAccess ResourceAccess
	Texture   TextureID
}

// BlitPassEncoder records buffer<->texture and texture<->texture copies
// (§4.3 step 1, §4.3 step 4 active-texture swap).
type BlitPassEncoder interface {
	Barrier(b Barrier)
	CopyBufferToTexture(src BufferID, srcOffset uint64, dst TextureID, dstX, dstY, width, height int)
	CopyTextureToTexture(src TextureID, dst TextureID, width, height int)
	End()
}

// ComputePassEncoder records compute commands (§4.3 steps 2-3).
//
// Usage: obtain from Adapter.BeginComputePass, set pipeline and bind
// groups, dispatch, then End. The encoder is single-use.
type ComputePassEncoder interface {
	SetPipeline(pipeline ComputePipelineID)
	SetBindGroup(index uint32, group BindGroupID)
	Dispatch(x, y, z uint32)
	End()
}

// RenderPassEncoder records graphics commands (§4.4 per-frame draw).
type RenderPassEncoder interface {
	SetPipeline(pipeline RenderPipelineID)
	SetBindGroup(index uint32, group BindGroupID, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer BufferID, offset uint64)
	SetIndexBuffer(buffer BufferID, format IndexFormat, offset uint64)
	SetViewport(x, y, width, height, minDepth, maxDepth float32)
	SetScissorRect(x, y, width, height uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	End()
}

// AdapterCapabilities describes GPU adapter capabilities, as reported by
// a concrete Adapter implementation.
type AdapterCapabilities struct {
	SupportsCompute                  bool
	MaxWorkgroupSizeX                uint32
	MaxWorkgroupSizeY                uint32
	MaxWorkgroupSizeZ                uint32
	MaxWorkgroupInvocations          uint32
	MaxBufferSize                    uint64
	MaxStorageBufferBindingSize      uint64
	MaxComputeWorkgroupsPerDimension uint32
}
