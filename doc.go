// Package cdlod implements a CDLOD (continuous-distance level-of-detail)
// terrain rendering core: an offline heightfield preprocessor, a runtime
// tile-streaming manager, and a per-frame geometry-clipmap renderer, built
// on a GPU-agnostic adapter interface.
//
// # Overview
//
// Terrain is represented as a quadtree of heightfield tiles backed by a
// toroidal GPU texture atlas. The offline pipeline (package heightfield)
// computes Lindstrom-Koller error metrics and activation levels for a
// source heightmap and bakes one chunk mesh per quadtree node to disk. The runtime
// pipeline (package streaming) maintains a sliding window of tiles around
// the camera, recycling chunk storage as the window moves and a background
// worker loads or decodes tiles that come into range. The render pipeline
// (package atlas and package clipmap) stages decoded tiles into the atlas,
// builds its mip chain, and draws the nested clipmap rings each frame.
//
// # Quick Start
//
//	import "github.com/gogpu/cdlod"
//
//	t, err := cdlod.New(cfg, adapter, cdlod.WithCacheRoot("./terrain-cache"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer t.Close()
//
//	for frame := range frames {
//		t.PrepareFrame(ctx, frame.CameraX, frame.CameraZ)
//		t.RenderFrame(frame.Uniforms) // a clipmap.FrameUniforms
//	}
//
// # Architecture
//
// The module is organized into:
//   - Root package: Config, Terrain orchestration, logging, errors
//   - gpucore: the GPU adapter interface this core consumes (buffers,
//     textures, bind groups, passes, barriers) — no concrete backend
//   - gpuadapter: a concrete gpucore.Adapter implementation over
//     github.com/gogpu/wgpu
//   - heightfield: offline LK error computation, activation propagation,
//     BTT chunk meshing, and the binary chunk file format
//   - streaming: the tile state machine, chunk pool, prefetch queue, and
//     background worker
//   - atlas: toroidal addressing, GPU staging, mip chain construction
//   - clipmap: nested-ring mesh rendering
//
// # Out of scope
//
// The core reaches the GPU only through the gpucore.Adapter interface;
// gpuadapter is one implementation of it. Image decoding
// (heightfield.Loader), vertex welding (meshbuilder) and the offline job
// pool (jobpool) ship as their own packages. New accepts a DecodeFunc and
// a MeshBuilder through options and stores them; the default code paths
// do not call them. No virtual file system is implemented.
package cdlod
