package atlas

import "github.com/gogpu/cdlod/gpucore"

// mipChainBuilder owns the per-mip-level bind groups used by the mip-chain
// build (§4.3 step 3). A sampled view of mip m-1 and a storage view of the
// dummy texture are bound each level because the target image view cannot
// be simultaneously read and written: the dummy texture receives the
// compute output, then a blit copies it into processed[m].
type mipChainBuilder struct {
	gpu       gpucore.Adapter
	pipelines *Pipelines
	processed gpucore.TextureID
	dummy     gpucore.TextureID

	bindGroups []gpucore.BindGroupID // one per mip level 1..mipCount
}

func newMipChainBuilder(gpu gpucore.Adapter, pipelines *Pipelines, processed, dummy gpucore.TextureID, mipCount int) (*mipChainBuilder, error) {
	b := &mipChainBuilder{gpu: gpu, pipelines: pipelines, processed: processed, dummy: dummy}

	for m := 1; m <= mipCount; m++ {
		srcView, err := gpu.CreateTextureView(processed, uint32(m-1), 1)
		if err != nil {
			return nil, err
		}
		dstView, err := gpu.CreateTextureView(dummy, 0, 1)
		if err != nil {
			return nil, err
		}
		bg, err := gpu.CreateBindGroup(&gpucore.BindGroupDesc{
			Label:  "atlas-mipbuild-bg",
			Layout: pipelines.mipLayout,
			Entries: []gpucore.BindGroupEntry{
				{Binding: 0, Texture: srcView},
				{Binding: 1, Texture: dstView},
			},
		})
		if err != nil {
			return nil, err
		}
		b.bindGroups = append(b.bindGroups, bg)
	}
	return b, nil
}

// build dispatches one compute pass per mip level and blits the dummy
// scratch texture into processed[m] after each.
func (b *mipChainBuilder) build(gpu gpucore.Adapter, resolution int) {
	size := resolution
	for m, bg := range b.bindGroups {
		size /= 2
		if size < 1 {
			size = 1
		}

		pass := gpu.BeginComputePass()
		pass.SetPipeline(b.pipelines.mipPipeline)
		pass.SetBindGroup(0, bg)
		pass.Dispatch(dispatchDims(size), dispatchDims(size), 1)
		pass.End()

		blit := gpu.BeginBlitPass()
		blit.CopyTextureToTexture(b.dummy, b.processed, size, size)
		blit.End()
		_ = m
	}
}
