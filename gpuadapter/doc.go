// Package gpuadapter implements gpucore.Adapter against a real WebGPU
// device via github.com/gogpu/wgpu.
//
// It is the concrete collaborator the terrain core's §1/§6 "external GPU
// interface" describes: instance/adapter/device acquisition, buffer and
// texture lifetime, shader-module compilation from naga-produced SPIR-V,
// and the blit/compute/render pass recording the offline and runtime
// pipelines need.
//
// Nothing outside this package imports github.com/gogpu/wgpu, github.com/
// gogpu/gputypes, or github.com/gogpu/naga directly — the terrain packages
// (atlas, clipmap, heightfield, streaming) are generic over gpucore.Adapter.
package gpuadapter
