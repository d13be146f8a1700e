package heightfield

import "math"

// ComputeErrors runs the Lindstrom-Koller binary-triangle-tree error update
// over the whole heightmap (§4.1). maxBaseError is the ε threshold below
// which activation levels are not raised.
//
// The heightmap's two initial right triangles share the NW-SE diagonal as
// their hypotenuse, tiling the square exactly as the source's two root BTTs
// do.
func ComputeErrors(hm *Heightmap, maxBaseError float64) {
	half := hm.Side - 1
	nw := coord{0, 0}
	ne := coord{half, 0}
	sw := coord{0, half}
	se := coord{half, half}

	lkUpdate(hm, ne, nw, se, maxBaseError)
	lkUpdate(hm, sw, nw, se, maxBaseError)
}

type coord struct{ x, z int }

func midpoint(a, b coord) coord {
	return coord{(a.x + b.x) / 2, (a.z + b.z) / 2}
}

// lkUpdate implements the recursive bisection described in §4.1: apex,
// left, and right are the current triangle's three grid corners.
func lkUpdate(hm *Heightmap, apex, left, right coord, eps float64) {
	if absInt(left.x-right.x) <= 1 && absInt(left.z-right.z) <= 1 {
		return
	}

	b := midpoint(left, right)
	bSample := hm.At(b.x, b.z)
	lSample := hm.At(left.x, left.z)
	rSample := hm.At(right.x, right.z)

	var e float64
	if hm.Use3DErrorCalc {
		e = bSample.WorldLen() - (lSample.WorldLen()+rSample.WorldLen())/2
	} else {
		e = bSample.WorldY - (lSample.WorldY+rSample.WorldY)/2
	}
	bSample.Error = e

	if math.Abs(e) >= eps {
		level := int(math.Floor(math.Log2(math.Abs(e)/eps) + 0.5))
		if level > bSample.Activation {
			bSample.Activation = level
		}
	}

	lkUpdate(hm, b, apex, right, eps)
	lkUpdate(hm, b, left, apex, eps)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
