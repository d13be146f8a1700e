package gpuadapter

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/cdlod/gpucore"
)

func (a *WGPUAdapter) ensureEncoder() core.CommandEncoderID {
	if a.pendingEncoder.IsZero() {
		a.pendingEncoder, _ = core.CreateCommandEncoder(a.device, nil)
	}
	return a.pendingEncoder
}

// blitPassEncoder records the raw-upload copies of §4.3 step 1 and the
// active-texture swap copies of §4.3 step 4. WebGPU issues these as
// encoder-level copy commands rather than within a dedicated pass object;
// Barrier is a recording no-op here since the concrete backend's automatic
// hazard tracking already orders these copies against the surrounding
// compute/render passes (§5, §9).
type blitPassEncoder struct {
	adapter *WGPUAdapter
	encoder core.CommandEncoderID
}

func (p *blitPassEncoder) Barrier(b gpucore.Barrier) {}

func (p *blitPassEncoder) CopyBufferToTexture(src gpucore.BufferID, srcOffset uint64, dst gpucore.TextureID, dstX, dstY, width, height int) {
	p.adapter.mu.RLock()
	srcEntry, srcOK := p.adapter.buffers[src]
	dstEntry, dstOK := p.adapter.textures[dst]
	p.adapter.mu.RUnlock()
	if !srcOK || !dstOK {
		return
	}
	bytesPerTexel := uint32(4)
	if dstEntry.format == gpucore.TextureFormatR16Uint {
		bytesPerTexel = 2 // raw 16-bit height samples
	}
	core.CommandEncoderCopyBufferToTexture(p.encoder,
		&gputypes.ImageCopyBuffer{Buffer: srcEntry.handle, Offset: srcOffset, BytesPerRow: uint32(width) * bytesPerTexel},
		&gputypes.ImageCopyTexture{Texture: dstEntry.handle, OriginX: uint32(dstX), OriginY: uint32(dstY)},
		uint32(width), uint32(height),
	)
}

func (p *blitPassEncoder) CopyTextureToTexture(src, dst gpucore.TextureID, width, height int) {
	p.adapter.mu.RLock()
	srcEntry, srcOK := p.adapter.textures[src]
	dstEntry, dstOK := p.adapter.textures[dst]
	p.adapter.mu.RUnlock()
	if !srcOK || !dstOK {
		return
	}
	core.CommandEncoderCopyTextureToTexture(p.encoder,
		&gputypes.ImageCopyTexture{Texture: srcEntry.handle},
		&gputypes.ImageCopyTexture{Texture: dstEntry.handle},
		uint32(width), uint32(height),
	)
}

func (p *blitPassEncoder) End() {}

// BeginBlitPass begins the raw-upload/active-texture-swap copy sequence.
func (a *WGPUAdapter) BeginBlitPass() gpucore.BlitPassEncoder {
	a.mu.Lock()
	defer a.mu.Unlock()
	return &blitPassEncoder{adapter: a, encoder: a.ensureEncoder()}
}

// computePassEncoder records the heightfield-preprocess and mip-build
// dispatches (§4.3 steps 2-3).
type computePassEncoder struct {
	adapter *WGPUAdapter
	pass    core.ComputePassEncoderID
	bound   bool
}

func (p *computePassEncoder) SetPipeline(pipeline gpucore.ComputePipelineID) {
	p.adapter.mu.RLock()
	entry, ok := p.adapter.computePipelines[pipeline]
	p.adapter.mu.RUnlock()
	if !ok {
		return
	}
	core.SetComputePipeline(p.pass, entry.handle)
	p.bound = true
}

func (p *computePassEncoder) SetBindGroup(index uint32, group gpucore.BindGroupID) {
	p.adapter.mu.RLock()
	entry, ok := p.adapter.bindGroups[group]
	p.adapter.mu.RUnlock()
	if !ok {
		return
	}
	core.SetComputeBindGroup(p.pass, index, entry.handle, nil)
}

func (p *computePassEncoder) Dispatch(x, y, z uint32) {
	if !p.bound {
		return
	}
	core.DispatchWorkgroups(p.pass, x, y, z)
}

func (p *computePassEncoder) End() {
	core.EndComputePass(p.pass)
}

// BeginComputePass begins a compute pass on the shared per-frame encoder.
func (a *WGPUAdapter) BeginComputePass() gpucore.ComputePassEncoder {
	a.mu.Lock()
	defer a.mu.Unlock()
	encoder := a.ensureEncoder()
	pass, _ := core.BeginComputePass(encoder, nil)
	return &computePassEncoder{adapter: a, pass: pass}
}

// renderPassEncoder records the full-world and clipmap draw calls
// (§4.4 per-frame draw).
type renderPassEncoder struct {
	adapter *WGPUAdapter
	pass    core.RenderPassEncoderID
	bound   bool
}

func (p *renderPassEncoder) SetPipeline(pipeline gpucore.RenderPipelineID) {
	p.adapter.mu.RLock()
	entry, ok := p.adapter.renderPipelines[pipeline]
	p.adapter.mu.RUnlock()
	if !ok {
		return
	}
	core.SetRenderPipeline(p.pass, entry.handle)
	p.bound = true
}

func (p *renderPassEncoder) SetBindGroup(index uint32, group gpucore.BindGroupID, dynamicOffsets []uint32) {
	p.adapter.mu.RLock()
	entry, ok := p.adapter.bindGroups[group]
	p.adapter.mu.RUnlock()
	if !ok {
		return
	}
	offsets := make([]uint32, len(dynamicOffsets))
	copy(offsets, dynamicOffsets)
	core.SetBindGroup(p.pass, index, entry.handle, offsets)
}

func (p *renderPassEncoder) SetVertexBuffer(slot uint32, buffer gpucore.BufferID, offset uint64) {
	p.adapter.mu.RLock()
	entry, ok := p.adapter.buffers[buffer]
	p.adapter.mu.RUnlock()
	if !ok {
		return
	}
	core.SetVertexBuffer(p.pass, slot, entry.handle, offset)
}

func (p *renderPassEncoder) SetIndexBuffer(buffer gpucore.BufferID, format gpucore.IndexFormat, offset uint64) {
	p.adapter.mu.RLock()
	entry, ok := p.adapter.buffers[buffer]
	p.adapter.mu.RUnlock()
	if !ok {
		return
	}
	wgpuFormat := core.IndexFormatUint16
	if format == gpucore.IndexFormatUint32 {
		wgpuFormat = core.IndexFormatUint32
	}
	core.SetIndexBuffer(p.pass, entry.handle, wgpuFormat, offset)
}

func (p *renderPassEncoder) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	core.SetViewport(p.pass, x, y, width, height, minDepth, maxDepth)
}

func (p *renderPassEncoder) SetScissorRect(x, y, width, height uint32) {
	core.SetScissorRect(p.pass, x, y, width, height)
}

func (p *renderPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	if !p.bound {
		return
	}
	core.DrawIndexed(p.pass, indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *renderPassEncoder) End() {
	core.EndRenderPass(p.pass)
}

// BeginRenderPass begins a render pass on the shared per-frame encoder.
func (a *WGPUAdapter) BeginRenderPass() gpucore.RenderPassEncoder {
	a.mu.Lock()
	defer a.mu.Unlock()
	encoder := a.ensureEncoder()
	pass, _ := core.BeginRenderPass(encoder, nil)
	return &renderPassEncoder{adapter: a, pass: pass}
}

// Submit finishes the shared per-frame command encoder and submits it to
// the queue (§5: blit precedes compute precedes swap precedes render,
// all within one submission).
func (a *WGPUAdapter) Submit() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pendingEncoder.IsZero() {
		return
	}
	buf, err := core.FinishCommandEncoder(a.pendingEncoder)
	a.pendingEncoder = core.CommandEncoderID{}
	if err != nil {
		a.logger.Warn("gpuadapter: finish command encoder failed", "err", err)
		return
	}
	if err := core.QueueSubmit(a.queue, []core.CommandBufferID{buf}); err != nil {
		a.logger.Warn("gpuadapter: queue submit failed", "err", err)
	}
}

// WaitIdle blocks until the device has finished all submitted work.
func (a *WGPUAdapter) WaitIdle() {
	a.mu.RLock()
	device := a.device
	a.mu.RUnlock()
	core.DevicePoll(device, true)
}
