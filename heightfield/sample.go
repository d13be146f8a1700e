package heightfield

import "math"

// InactiveLevel is the activation level meaning "never active" (§3).
const InactiveLevel = -1

// Sample is one grid point of the offline heightmap (§3 "Heightmap
// (offline)"). World position is Cartesian unless the heightmap carries an
// ellipsoid, in which case it is the sphere-projected position.
type Sample struct {
	X, Z int // integer grid coordinates

	WorldX, WorldY, WorldZ float64 // world position; WorldY is height

	Error      float64 // signed LK error, valid once ComputeErrors has run
	Activation int     // [-1, treeDepth]; -1 = never active
}

// WorldLen returns the sample's world-position vector length, used by the
// 3D error calculation variant (§4.1).
func (s *Sample) WorldLen() float64 {
	return math.Sqrt(s.WorldX*s.WorldX + s.WorldY*s.WorldY + s.WorldZ*s.WorldZ)
}
