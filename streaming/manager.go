package streaming

// Config bundles the streaming subsystem's derived sizing (tile grid
// extent, chunk pool capacity, prefetch ring capacity), computed by the
// root package's New from its Config (§6 Configuration structure).
type Config struct {
	TilesX, TilesY  int
	TileSize        float64
	WorldMin        [2]float64
	PrefetchRadius  int
	AtlasK          int
	ChunkCapacity   int
	PrefetchCap     int
	CacheRoot       string
}

// Option configures a Manager during construction.
type Option func(*options)

type options struct {
	clock func() (x, z float64) // test seam for camera position, unused by default
}

func defaultOptions() options { return options{} }

// WithClock overrides the default camera-position source (intended for
// deterministic tests that drive Select explicitly rather than polling a
// live camera); Manager itself does not call this automatically, so this
// option is reserved for future callers that want an injected clock rather
// than an active behavior today.
func WithClock(clock func() (x, z float64)) Option {
	return func(o *options) { o.clock = clock }
}

// Manager owns one streaming subsystem instance for a Terrain: the tile
// grid, chunk pool, prefetch queue, background worker, and selector.
type Manager struct {
	Grid      *Grid
	Pool      *ChunkPool
	Queue     *PrefetchQueue
	Cache     *FileCache
	Worker    *Worker
	Selector  *Selector

	opts options
}

// NewManager wires up a complete streaming subsystem from cfg and staging
// (the host-mapped slab collaborator the worker writes decoded tiles
// into). The worker goroutine is not started; call Start.
func NewManager(cfg Config, staging Staging, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	grid := NewGrid(cfg.TilesX, cfg.TilesY, cfg.TileSize, cfg.WorldMin)
	pool := NewChunkPool(cfg.ChunkCapacity)
	queue := NewPrefetchQueue(cfg.PrefetchCap)
	fileCache := NewFileCache(cfg.CacheRoot, int(cfg.TileSize))
	worker := NewWorker(queue, grid, fileCache, staging)
	selector := NewSelector(grid, pool, queue, cfg.PrefetchRadius, cfg.AtlasK)

	return &Manager{
		Grid:     grid,
		Pool:     pool,
		Queue:    queue,
		Cache:    fileCache,
		Worker:   worker,
		Selector: selector,
		opts:     o,
	}
}

// Start launches the background worker goroutine.
func (m *Manager) Start() { m.Worker.Run() }

// Stop shuts the worker down, waiting for any in-flight read to finish.
func (m *Manager) Stop() { m.Worker.Stop() }

// Select runs one frame's tile selection against the given world-space
// camera position, returning the new camera tile coordinate.
func (m *Manager) Select(worldX, worldZ float64) (int, int) {
	return m.Selector.Select(worldX, worldZ)
}
