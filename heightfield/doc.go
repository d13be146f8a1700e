// Package heightfield implements the offline CDLOD preprocessor: turning a
// raw heightmap image into a chunk file of simplified per-node meshes.
//
// The pipeline is Loader (decode + pad) -> ComputeErrors (LK update) ->
// Propagator (quadtree activation propagation) -> Mesher (BTT split + merge)
// -> WriteChunkFile. None of these steps touch the GPU or the runtime
// streaming path; they are pure, single-shot, CPU-only transforms run once
// per source heightmap.
package heightfield
