package heightfield

import (
	"fmt"
	"math"
)

// EllipsoidConfig sphere-projects a heightmap's world positions around a
// center and radius instead of leaving it on a flat Cartesian plane (§3).
type EllipsoidConfig struct {
	CenterX, CenterY, CenterZ float64
	Radius                    float64
}

// Heightmap is a square grid of Side = 2^TreeDepth + 1 samples (§3).
type Heightmap struct {
	Side      int
	TreeDepth int

	Samples []Sample // row-major, index = z*Side+x

	MetersPerPixel float64
	MinHeight      float64
	MaxHeight      float64

	Ellipsoid      *EllipsoidConfig
	Use3DErrorCalc bool // per-heightmap flag, not build-wide (SPEC_FULL supplement 1)
}

// NewHeightmap allocates a heightmap of side 2^treeDepth+1 with every
// sample's grid/world position populated and activation set to
// InactiveLevel. Height values must be filled in by the caller (typically
// Loader.Load) before ComputeErrors runs.
func NewHeightmap(treeDepth int, metersPerPixel, minHeight, maxHeight float64, ellipsoid *EllipsoidConfig) *Heightmap {
	side := 1<<uint(treeDepth) + 1
	hm := &Heightmap{
		Side:           side,
		TreeDepth:      treeDepth,
		Samples:        make([]Sample, side*side),
		MetersPerPixel: metersPerPixel,
		MinHeight:      minHeight,
		MaxHeight:      maxHeight,
		Ellipsoid:      ellipsoid,
	}
	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			s := hm.at(x, z)
			s.X, s.Z = x, z
			s.Activation = InactiveLevel
		}
	}
	return hm
}

// at returns a pointer into Samples for in-bounds (x,z); callers must only
// call it with coordinates already known to be in [0, Side).
func (h *Heightmap) at(x, z int) *Sample {
	return &h.Samples[z*h.Side+x]
}

// At returns the sample at grid coordinate (x,z), or panics if out of
// range; the preprocessor never constructs out-of-range coordinates once
// NewHeightmap has run, so this is a programmer-error guard, not a runtime
// input check.
func (h *Heightmap) At(x, z int) *Sample {
	if x < 0 || x >= h.Side || z < 0 || z >= h.Side {
		panic(fmt.Sprintf("heightfield: coordinate (%d,%d) out of range for side %d", x, z, h.Side))
	}
	return h.at(x, z)
}

// SetHeight recomputes a sample's world position from a raw height value,
// applying the ellipsoid projection when configured.
func (h *Heightmap) SetHeight(x, z int, height float64) {
	s := h.At(x, z)
	wx := float64(x) * h.MetersPerPixel
	wz := float64(z) * h.MetersPerPixel

	if h.Ellipsoid == nil {
		s.WorldX, s.WorldY, s.WorldZ = wx, height, wz
		return
	}
	s.WorldX, s.WorldY, s.WorldZ = projectEllipsoid(wx, height, wz, h.Ellipsoid)
}

// projectEllipsoid maps a flat (x, height, z) position onto a sphere of the
// given radius centered at the ellipsoid's center, offsetting radially by
// height.
func projectEllipsoid(x, height, z float64, e *EllipsoidConfig) (float64, float64, float64) {
	// (x, z) is treated as a great-circle arc-length offset from the
	// ellipsoid's pole, so one world unit of horizontal distance maps to
	// one unit of arc length on the sphere's surface.
	theta := x / e.Radius
	phi := z / e.Radius
	r := e.Radius + height

	return e.CenterX + r*math.Sin(theta)*math.Cos(phi), e.CenterY + r*math.Cos(theta)*math.Cos(phi), e.CenterZ + r*math.Sin(phi)
}
