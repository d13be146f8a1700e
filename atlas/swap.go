package atlas

import "github.com/gogpu/cdlod/gpucore"

// Swap copies every mip of processed into the current frame's active
// texture and advances frameIndex (§4.3 step 4 "Active-texture swap").
func (a *Atlas) Swap() gpucore.TextureID {
	dst := a.active[a.frameIndex]

	blit := a.gpu.BeginBlitPass()
	blit.Barrier(gpucore.Barrier{
		SrcStage: gpucore.StageVertexShader, DstStage: gpucore.StageTransfer,
		SrcAccess: gpucore.AccessShaderRead, DstAccess: gpucore.AccessTransferWrite,
		Texture: dst,
	})
	blit.CopyTextureToTexture(a.processed, dst, a.resolution, a.resolution)
	blit.Barrier(gpucore.Barrier{
		SrcStage: gpucore.StageTransfer, DstStage: gpucore.StageVertexShader,
		SrcAccess: gpucore.AccessTransferWrite, DstAccess: gpucore.AccessShaderRead,
		Texture: dst,
	})
	blit.End()

	a.frameIndex = (a.frameIndex + 1) % FrameCount
	return dst
}
