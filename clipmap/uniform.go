package clipmap

import (
	"encoding/binary"
	"math"
)

// FrameUniforms is the dynamic uniform block allocated once per draw
// (§4.4 "Per-frame draw"): camera position, MVP, lighting, and the
// current atlas wrap offset plus the stencil/blur radii derived from it.
type FrameUniforms struct {
	CameraWorldPos  [3]float32
	MVP             [16]float32 // column-major 4x4
	MetersPerTexel  float32
	MinHeight       float32
	MaxHeight       float32
	SunDirection    [3]float32
	WrapOffset      [2]float32 // (X0/K, Y0/K)
	StencilRadius   float32    // T*(K/2)*metersPerTexel
	BlurRadius      float32    // T*K*metersPerTexel
	WorldMin        [2]float32
	WorldMax        [2]float32
}

// Radii computes the stencil and blur radii from tile size T, atlas side
// K, and metersPerTexel (§4.4).
func Radii(tileSize, atlasK int, metersPerTexel float32) (stencil, blur float32) {
	stencil = float32(tileSize) * (float32(atlasK) / 2) * metersPerTexel
	blur = float32(tileSize) * float32(atlasK) * metersPerTexel
	return stencil, blur
}

// Size returns the packed byte size of FrameUniforms.
func Size() uint64 {
	return 3*4 + 16*4 + 4 + 4 + 4 + 3*4 + 2*4 + 4 + 4 + 2*4 + 2*4
}

// WriteInto packs u into dst (which must be at least Size() bytes, as
// returned by gpucore.Adapter.AllocateUniform) in the field order
// declared above, little-endian.
func (u FrameUniforms) WriteInto(dst []byte) {
	off := 0
	putF32 := func(v float32) {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
		off += 4
	}

	for _, v := range u.CameraWorldPos {
		putF32(v)
	}
	for _, v := range u.MVP {
		putF32(v)
	}
	putF32(u.MetersPerTexel)
	putF32(u.MinHeight)
	putF32(u.MaxHeight)
	for _, v := range u.SunDirection {
		putF32(v)
	}
	for _, v := range u.WrapOffset {
		putF32(v)
	}
	putF32(u.StencilRadius)
	putF32(u.BlurRadius)
	for _, v := range u.WorldMin {
		putF32(v)
	}
	for _, v := range u.WorldMax {
		putF32(v)
	}
}
