package streaming

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/cdlod/corelog"
)

// Staging is the destination the worker writes decoded tile bytes into —
// the host-mapped staging ring buffer (§3 "Chunk (runtime streaming
// unit)"). The concrete implementation lives with the GPU-adjacent half of
// the module; streaming only needs to write into a chunk's byte slab.
type Staging interface {
	// Slab returns the byte slice backing chunk index idx. The worker
	// writes directly into it; callers must size each slab to
	// tileSize*tileSize*2 bytes.
	Slab(chunkIdx int32) []byte
}

// Worker is the single background goroutine that drains a PrefetchQueue,
// reading tile payloads from a FileCache into staging slabs (§4.2, §5
// "Scheduling model": "One long-lived worker thread per terrain performs
// disk reads").
type Worker struct {
	queue   *PrefetchQueue
	grid    *Grid
	cache   *FileCache
	staging Staging

	running atomic.Bool
	pending atomic.Int64 // mirrors queue depth for §5's "atomic pending count"
	wg      sync.WaitGroup
}

// NewWorker binds a Worker to its collaborators. Run must be called to
// start the goroutine.
func NewWorker(queue *PrefetchQueue, grid *Grid, cache *FileCache, staging Staging) *Worker {
	return &Worker{queue: queue, grid: grid, cache: cache, staging: staging}
}

// Run starts the background loop. It returns immediately; call Stop to
// shut it down.
func (w *Worker) Run() {
	w.running.Store(true)
	w.wg.Add(1)
	go w.loop()
}

// Stop sets running=false, wakes the worker, and waits for the in-flight
// read (if any) to finish before returning (§5 Cancellation: "In-flight
// reads are allowed to complete").
func (w *Worker) Stop() {
	w.running.Store(false)
	w.pending.Store(0)
	w.queue.Wake()
	w.wg.Wait()
}

// PendingCount returns the worker's view of outstanding queued work.
func (w *Worker) PendingCount() int64 { return w.pending.Load() }

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		ref, ok := w.queue.Pop(func() bool { return !w.running.Load() })
		if !ok {
			return
		}
		w.pending.Add(-1)
		w.fetch(ref)
	}
}

// fetch reads one tile's sample bytes and flips its Uploaded flag. A chunk
// that was recycled out from under a pending request (§5: "a recycled
// chunk whose tile is no longer queued simply has its work discarded") is
// silently skipped.
func (w *Worker) fetch(ref TileRef) {
	tile := w.grid.At(int(ref.X), int(ref.Y))
	if tile == nil || !tile.Has(FlagQueued) {
		return
	}

	chunkIdx := tile.ChunkIndex()
	if chunkIdx == NoChunk {
		corelog.Get().Debug("worker: queued tile lost its chunk before fetch", "x", ref.X, "y", ref.Y)
		tile.Clear(FlagQueued)
		return
	}

	data, err := w.cache.LoadPayload(tile.SourceFile, ref.X, ref.Y, tile.Empty)
	if err != nil {
		corelog.Get().Warn("worker: tile payload read failed", "x", ref.X, "y", ref.Y, "err", err)
		tile.Clear(FlagQueued)
		return
	}

	if !tile.Has(FlagQueued) || tile.ChunkIndex() != chunkIdx {
		// Recycled or reassigned mid-read; discard.
		return
	}
	copy(w.staging.Slab(chunkIdx), data)

	tile.Set(FlagUploaded)
	tile.Clear(FlagQueued)
	w.grid.MarkNeighborsDirty(int(ref.X), int(ref.Y))
	corelog.Get().Debug("worker: tile uploaded", "x", ref.X, "y", ref.Y, "chunk", chunkIdx)
}

// NotePending increments the worker's pending counter; callers invoke this
// alongside PrefetchQueue.Push to keep the atomic counter in sync (§5: "two
// atomic counters (pending count, dirty flag)").
func (w *Worker) NotePending() { w.pending.Add(1) }
