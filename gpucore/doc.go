// Package gpucore defines the GPU abstraction this terrain core consumes.
//
// This package defines the [Adapter] interface (§6 "Consumed GPU
// interface"), which abstracts over different GPU backend implementations
// so the terrain packages (atlas, clipmap, heightfield) never import a
// concrete GPU backend directly. A single concrete implementation,
// gpuadapter.WGPUAdapter, backs it with github.com/gogpu/wgpu.
//
// # Architecture
//
//	               +-----------------+
//	               |     cdlod       |
//	               | (Terrain, atlas,|
//	               |  clipmap, ...)  |
//	               +--------+--------+
//	                        |
//	               +--------v--------+
//	               |     gpucore     |
//	               |   (Adapter)     |
//	               +--------+--------+
//	                        |
//	               +--------v--------+
//	               |   gpuadapter    |
//	               |  (WGPUAdapter)  |
//	               +--------+--------+
//	                        |
//	               +--------v--------+
//	               |   gogpu/wgpu    |
//	               +-----------------+
//
// # Resource management
//
// GPU resources are tracked via opaque IDs ([BufferID], [TextureID], and
// friends). The [Adapter] interface provides creation and destruction
// methods for each; an implementation owns the mapping from ID to actual
// backend resource.
//
// # Pipeline barriers
//
// Unlike wgpu's automatic hazard tracking, §5/§6 of this core's
// specification describe explicit pipeline barriers between the blit,
// compute, and render passes of a frame. [Barrier] and the pass-stage
// constants exist so that ordering is recorded the same way independent
// of what a concrete Adapter does with it (a wgpu-backed adapter may
// simply no-op the barrier call).
package gpucore
