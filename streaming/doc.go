// Package streaming implements the runtime tile manager: a world-space
// tile grid, a chunk pool backed by an explicit free list, a prefetch
// queue drained by a single background worker, and the per-frame selector
// that drives all three from camera position.
package streaming
