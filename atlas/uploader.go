package atlas

import (
	"github.com/gogpu/cdlod/gpucore"
	"github.com/gogpu/cdlod/streaming"
)

// Uploader runs the per-frame blit/compute/mip/swap sequence of §4.3,
// consuming newly-uploaded tiles from a streaming.Grid.
type Uploader struct {
	atlas     *Atlas
	gpu       gpucore.Adapter
	staging   *Staging
	pipelines *Pipelines
	mipChain  *mipChainBuilder

	rawView        gpucore.TextureViewID
	processedView  gpucore.TextureViewID
	preprocessBind gpucore.BindGroupID
}

// NewUploader wires an Uploader to its atlas, staging ring, and compiled
// pipelines. The preprocess bind group is created once since the raw and
// processed textures never change identity across frames.
func NewUploader(a *Atlas, gpu gpucore.Adapter, staging *Staging, pipelines *Pipelines) (*Uploader, error) {
	rawView, err := gpu.CreateTextureView(a.raw, 0, 1)
	if err != nil {
		return nil, err
	}
	processedView, err := gpu.CreateTextureView(a.processed, 0, 1)
	if err != nil {
		return nil, err
	}
	bind, err := gpu.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "atlas-preprocess-bg",
		Layout: pipelines.preprocessLayout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, Texture: rawView},
			{Binding: 1, Texture: processedView},
		},
	})
	if err != nil {
		return nil, err
	}

	mipChain, err := newMipChainBuilder(gpu, pipelines, a.processed, a.dummy, a.mipCount)
	if err != nil {
		return nil, err
	}

	return &Uploader{
		atlas: a, gpu: gpu, staging: staging, pipelines: pipelines, mipChain: mipChain,
		rawView: rawView, processedView: processedView, preprocessBind: bind,
	}, nil
}

// RunFrame executes one pass through §4.3's per-frame sequence against
// the tiles of grid whose column-row offset from (windowX0,windowY0) the
// caller supplies. It returns the count of tiles blitted this frame.
func (u *Uploader) RunFrame(grid *streaming.Grid, windowX0, windowY0, x0, y0 int) int {
	u.staging.Flush()

	blitted := u.blitRawUploads(grid, windowX0, windowY0, x0, y0)
	if len(blitted) > 0 {
		u.preprocess()
		for _, tile := range blitted {
			tile.Clear(streaming.FlagProcessedIntermediate)
			tile.Set(streaming.FlagProcessed)
		}
		u.mipChain.build(u.gpu, u.atlas.resolution)
	}
	u.atlas.Swap()

	return len(blitted)
}

// blitRawUploads copies every tile with Uploaded-but-not-Processed into
// its atlas slot (§4.3 step 1) and returns the tiles it touched.
func (u *Uploader) blitRawUploads(grid *streaming.Grid, windowX0, windowY0, x0, y0 int) []*streaming.Tile {
	T := u.atlas.tileSize
	var touched []*streaming.Tile

	for y := windowY0; y < windowY0+u.atlas.atlasK; y++ {
		for x := windowX0; x < windowX0+u.atlas.atlasK; x++ {
			tile := grid.At(x, y)
			if tile == nil {
				continue
			}
			if !tile.Has(streaming.FlagUploaded) || tile.Has(streaming.FlagProcessed) {
				continue
			}

			slotX, slotY := u.atlas.SlotFor(x0, y0, x-windowX0, y-windowY0)
			dstX, dstY := u.atlas.OffsetPx(slotX, slotY)

			blit := u.gpu.BeginBlitPass()
			blit.Barrier(gpucore.Barrier{
				SrcStage: gpucore.StageVertexShader, DstStage: gpucore.StageTransfer,
				SrcAccess: gpucore.AccessShaderRead, DstAccess: gpucore.AccessTransferWrite,
				Texture: u.atlas.raw,
			})
			blit.CopyBufferToTexture(u.staging.buffer, u.staging.SlabOffset(tile.ChunkIndex()), u.atlas.raw, dstX, dstY, T, T)
			blit.Barrier(gpucore.Barrier{
				SrcStage: gpucore.StageTransfer, DstStage: gpucore.StageVertexShader,
				SrcAccess: gpucore.AccessTransferWrite, DstAccess: gpucore.AccessShaderRead,
				Texture: u.atlas.raw,
			})
			blit.End()

			tile.Set(streaming.FlagProcessedIntermediate)
			touched = append(touched, tile)
		}
	}
	return touched
}

// preprocess dispatches the heightfield-decode/normal compute pass over
// the whole atlas (§4.3 step 2). The compiled shader itself (out of
// scope here) is responsible for skipping texels whose tile slot is not
// marked processed-intermediate, since the gpucore.Adapter contract this
// module targets does not expose sub-rectangle dispatch offsets.
func (u *Uploader) preprocess() {
	pass := u.gpu.BeginComputePass()
	pass.SetPipeline(u.pipelines.preprocessPipeline)
	pass.SetBindGroup(0, u.preprocessBind)
	pass.Dispatch(dispatchDims(u.atlas.resolution), dispatchDims(u.atlas.resolution), 1)
	pass.End()
}
