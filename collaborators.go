package cdlod

import "image"

// DecodeFunc decodes a raw source-image byte buffer into a heightmap. The
// core never parses an image format itself (§1 Non-goals); callers supply
// a decoder (for example, a thin wrapper over golang.org/x/image/tiff or
// image/png).
type DecodeFunc func(data []byte) (image.Image, error)

// MeshBuilder is the external mesh-builder collaborator used by the
// offline preprocessor to emit nested-ring chunk geometry (§1: add-triangle
// plus commit with deduplication by weld radius is out of core scope). The
// core calls AddTriangle for every BTT leaf it bisects down to and Commit
// once per chunk to obtain the final vertex/index buffers.
type MeshBuilder interface {
	// Reset discards any in-progress mesh and prepares for a new chunk.
	Reset()

	// AddTriangle submits one triangle in local chunk space. Vertices
	// within WeldRadius of an existing vertex are expected to be merged by
	// the builder.
	AddTriangle(a, b, c [3]float32)

	// Commit finalizes the mesh and returns interleaved vertex data and
	// 16-bit indices.
	Commit() (vertices []float32, indices []uint16, err error)
}
