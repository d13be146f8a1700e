package cdlod

import "github.com/gogpu/cdlod/streaming"

// Vec2 is a 2-component world-space vector, used for min/max extents.
type Vec2 struct {
	X, Y float32
}

// Config is the terrain init configuration (§6 Configuration structure —
// terrain init). All fields are required unless noted; New applies the
// documented defaults to zero-valued fields.
type Config struct {
	// MetersPerTexel is the world-space size of one atlas texel.
	MetersPerTexel float32

	// MaxElevation and MinElevation bound the decoded height range.
	MaxElevation float32
	MinElevation float32

	// WorldMin and WorldMax bound the world-space extent covered by the
	// tile grid.
	WorldMin Vec2
	WorldMax Vec2

	// HeightmapResolution is the atlas side in texels (H). Defaults to 2048.
	HeightmapResolution uint32

	// TileSize is the tile side in texels (T). Defaults to 256.
	TileSize uint32

	// PrefetchRadius is the Chebyshev radius, in tiles, beyond the active
	// window that a chunk must clear before being recycled. Defaults to 2.
	PrefetchRadius uint32

	// MeshLevels is the number of nested clipmap rings.
	MeshLevels uint32

	// MeshBaseLodExtentTexels is the finest ring's extent in texels
	// (baseLodExtent in §4.4).
	MeshBaseLodExtentTexels uint32

	// Flags configures optional behavior (§6 Flags).
	Flags Flags
}

const (
	defaultHeightmapResolution = 2048
	defaultTileSize            = 256
	defaultPrefetchRadius      = 2
)

// withDefaults returns a copy of cfg with documented defaults applied to
// any zero-valued field that has one.
func (cfg Config) withDefaults() Config {
	out := cfg
	if out.HeightmapResolution == 0 {
		out.HeightmapResolution = defaultHeightmapResolution
	}
	if out.TileSize == 0 {
		out.TileSize = defaultTileSize
	}
	if out.PrefetchRadius == 0 {
		out.PrefetchRadius = defaultPrefetchRadius
	}
	return out
}

// atlasK returns K, the number of tiles spanning the atlas along one side
// (H = tileSize * K).
func (cfg Config) atlasK() int {
	return int(cfg.HeightmapResolution / cfg.TileSize)
}

// Option configures a Terrain during construction (dependency injection for
// the worker pool size, a custom tile cache root, and similar optional
// collaborators), following the functional-option pattern used throughout
// this module's ancestry.
type Option func(*terrainOptions)

// terrainOptions holds optional configuration for Terrain construction.
type terrainOptions struct {
	cacheRoot      string
	chunkCapacity  int
	meshBuilder    MeshBuilder
	decodeImage    DecodeFunc
	streamingOpts  []streaming.Option
	skipWorkerSpin bool
}

func defaultTerrainOptions() terrainOptions {
	return terrainOptions{
		cacheRoot: ".",
	}
}

// WithCacheRoot sets the directory tile cache files (§4.5) are read from
// and written to. Defaults to the current directory.
func WithCacheRoot(dir string) Option {
	return func(o *terrainOptions) { o.cacheRoot = dir }
}

// WithChunkCapacity overrides the total number of staging-ring chunks
// (max-active + max-prefetched, per §3 Lifecycles). If unset, Terrain
// derives it from PrefetchRadius and HeightmapResolution/TileSize.
func WithChunkCapacity(n int) Option {
	return func(o *terrainOptions) { o.chunkCapacity = n }
}

// WithMeshBuilder injects the external mesh-builder collaborator (§1: "The
// mesh builder used for offline nested-ring generation ... add-triangle +
// commit with deduplication by weld radius" is out of core scope).
func WithMeshBuilder(b MeshBuilder) Option {
	return func(o *terrainOptions) { o.meshBuilder = b }
}

// WithImageDecoder injects the external image-decode collaborator (§1: the
// core receives a raw byte buffer and calls a decode operation).
func WithImageDecoder(d DecodeFunc) Option {
	return func(o *terrainOptions) { o.decodeImage = d }
}

// WithStreamingOptions passes through additional options to the streaming
// subsystem's construction (worker pool sizing overrides, test clocks).
func WithStreamingOptions(opts ...streaming.Option) Option {
	return func(o *terrainOptions) { o.streamingOpts = append(o.streamingOpts, opts...) }
}
