package cdlod

import (
	"context"
	"fmt"

	"github.com/gogpu/cdlod/atlas"
	"github.com/gogpu/cdlod/clipmap"
	"github.com/gogpu/cdlod/gpucore"
	"github.com/gogpu/cdlod/streaming"
)

// mipCountFor picks a mip chain depth from the atlas resolution, one
// level per halving down to a 64-texel base, matching typical terrain
// heightmap mip budgets.
func mipCountFor(resolution int) int {
	count := 0
	for size := resolution; size > 64; size /= 2 {
		count++
	}
	if count < 1 {
		count = 1
	}
	return count
}

// Terrain is the runtime context tying the offline chunk format, the
// streaming tile manager, the GPU atlas, and the clipmap renderer
// together (§1 Overview; §6).
type Terrain struct {
	cfg  Config
	gpu  gpucore.Adapter
	opts terrainOptions

	streaming *streaming.Manager
	atlas     *atlas.Atlas
	staging   *atlas.Staging
	uploader  *atlas.Uploader
	drawer    *clipmap.Drawer

	lastWindowX0, lastWindowY0 int
}

// New constructs a Terrain: derives tile-grid/atlas/chunk sizing from
// cfg, allocates the GPU atlas and staging ring, wires the streaming
// subsystem, and starts its background worker when cfg.Flags has
// FlagTileStreaming (§4.1-§4.3).
func New(cfg Config, gpu gpucore.Adapter, opts ...Option) (*Terrain, error) {
	if gpu == nil {
		return nil, ErrNilAdapter
	}
	cfg = cfg.withDefaults()

	o := defaultTerrainOptions()
	for _, opt := range opts {
		opt(&o)
	}

	atlasK := cfg.atlasK()
	tileSize := int(cfg.TileSize)
	mipCount := mipCountFor(int(cfg.HeightmapResolution))

	a, err := atlas.New(gpu, tileSize, atlasK, mipCount)
	if err != nil {
		return nil, fmt.Errorf("cdlod: create atlas: %w", err)
	}

	chunkCapacity := o.chunkCapacity
	if chunkCapacity <= 0 {
		// Max-active (K*K) plus max-prefetched (one ring beyond it), per §3
		// Lifecycles: "total capacity = max-active + max-prefetched".
		chunkCapacity = atlasK*atlasK + 4*int(cfg.PrefetchRadius)*atlasK
	}

	staging, err := atlas.NewStaging(gpu, chunkCapacity, tileSize)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("cdlod: create staging ring: %w", err)
	}

	worldWidth := float64(cfg.WorldMax.X - cfg.WorldMin.X)
	worldHeight := float64(cfg.WorldMax.Y - cfg.WorldMin.Y)
	tilesX := int(worldWidth/float64(tileSize)) + 1
	tilesY := int(worldHeight/float64(tileSize)) + 1
	if tilesX < atlasK {
		tilesX = atlasK
	}
	if tilesY < atlasK {
		tilesY = atlasK
	}

	streamingCfg := streaming.Config{
		TilesX: tilesX, TilesY: tilesY, TileSize: float64(tileSize),
		WorldMin:       [2]float64{float64(cfg.WorldMin.X), float64(cfg.WorldMin.Y)},
		PrefetchRadius: int(cfg.PrefetchRadius),
		AtlasK:         atlasK,
		ChunkCapacity:  chunkCapacity,
		PrefetchCap:    chunkCapacity,
		CacheRoot:      o.cacheRoot,
	}
	mgr := streaming.NewManager(streamingCfg, staging, o.streamingOpts...)

	t := &Terrain{cfg: cfg, gpu: gpu, opts: o, streaming: mgr, atlas: a, staging: staging}

	if cfg.Flags.Has(FlagTileStreaming) && !o.skipWorkerSpin {
		mgr.Start()
	}

	return t, nil
}

// InitRenderer builds the GPU render pipelines and uploads the clipmap/
// full-world meshes. Separate from New because it needs externally
// compiled shader modules and bind-able textures (§1 Non-goals: shaders
// and image decode are out of core scope).
func (t *Terrain) InitRenderer(atlasShaders atlas.ShaderSet, shaders clipmap.ShaderSet, fullVertices []float32, fullIndices []uint32) error {
	clipVertices, clipIndices, _, _ := clipmap.BuildMesh(int(t.cfg.MeshLevels), int(t.cfg.MeshBaseLodExtentTexels))

	pipelines, err := atlas.BuildPipelines(t.gpu, atlasShaders)
	if err != nil {
		return fmt.Errorf("cdlod: build atlas pipelines: %w", err)
	}
	uploader, err := atlas.NewUploader(t.atlas, t.gpu, t.staging, pipelines)
	if err != nil {
		return fmt.Errorf("cdlod: build atlas uploader: %w", err)
	}
	t.uploader = uploader

	drawer, err := clipmap.NewDrawer(t.gpu, shaders, t.cfg.Flags.Has(FlagWireframe),
		fullVertices, fullIndices, clipmap.Flatten(clipVertices), clipIndices)
	if err != nil {
		return fmt.Errorf("cdlod: build clipmap drawer: %w", err)
	}
	t.drawer = drawer

	return nil
}

// PrepareFrame runs tile selection for the given camera position and
// stages newly-uploaded tiles into the atlas (§4.2 Selection, §4.3
// per-frame sequence).
func (t *Terrain) PrepareFrame(ctx context.Context, cameraWorldX, cameraWorldZ float64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cx, cz := t.streaming.Select(cameraWorldX, cameraWorldZ)
	atlasK := t.atlas.AtlasK()
	windowX0 := cx - atlasK/2
	windowY0 := cz - atlasK/2
	t.lastWindowX0, t.lastWindowY0 = windowX0, windowY0

	if t.uploader != nil {
		x0, y0 := t.streaming.Selector.WrapOffset()
		t.uploader.RunFrame(t.streaming.Grid, windowX0, windowY0, x0, y0)
	}

	return nil
}

// RenderFrame allocates the per-draw dynamic uniform block and records
// the full-world and clipmap draws (§4.4 Per-frame draw). Logs and
// returns nil if InitRenderer has not been called, since rendering
// without pipelines is a caller configuration choice (headless/test use)
// rather than a terrain-core failure.
func (t *Terrain) RenderFrame(u clipmap.FrameUniforms) error {
	if t.drawer == nil {
		Logger().Debug("cdlod: RenderFrame called before InitRenderer, skipping draw")
		return nil
	}

	alloc, err := t.gpu.AllocateUniform(clipmap.Size())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGPU, err)
	}
	u.WriteInto(alloc.Data)

	bind, err := t.gpu.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "cdlod-frame-bind-group",
		Layout: t.drawer.BindGroupLayout(),
		Entries: []gpucore.BindGroupEntry{
			{Binding: 6, Buffer: alloc.Buffer, Offset: alloc.Offset, Size: clipmap.Size()},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGPU, err)
	}
	defer t.gpu.DestroyBindGroup(bind)

	t.drawer.Draw(bind, uint32(alloc.Offset))
	t.gpu.Submit()
	return nil
}

// Close stops the streaming worker and releases the atlas and staging
// ring's GPU resources.
func (t *Terrain) Close() {
	t.streaming.Stop()
	t.staging.Close()
	t.atlas.Close()
}
