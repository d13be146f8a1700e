package heightfield

import "math/bits"

// LowestOne returns the bit position of the lowest set bit of v, or 32 if v
// is zero. This is `pl__lowest_one` from the source preserved bit-for-bit
// (SPEC_FULL supplement 2): Go's bits.TrailingZeros32 already returns 32 for
// a zero input, so this is a thin, documented wrapper rather than a
// reimplementation.
func LowestOne(v uint32) uint32 {
	return uint32(bits.TrailingZeros32(v))
}

// SampleGridLevel returns the coarsest LOD level at which grid coordinate
// (x, z) is a required vertex of the nested quadtree, independent of its
// computed error. A sample at (x,z) is a member of every LOD mesh from this
// level down to 0; the root (x=z=0 within the finest even power-of-two
// divisor) reports treeDepth.
//
// This is the restricted-quadtree identity the LK/BTT literature relies on:
// a grid point lies on level ℓ's vertex grid iff both x and z are multiples
// of 2^(treeDepth-ℓ).
func SampleGridLevel(x, z, treeDepth int) int {
	if x == 0 && z == 0 {
		return treeDepth
	}
	lowest := LowestOne(uint32(x | z))
	level := treeDepth - int(lowest)
	if level < 0 {
		return 0
	}
	return level
}

// NodeCount returns the number of nodes in a full quadtree of the given
// depth, including the implicit super-root (§6 chunkCount field): the
// 0x55555555 mask selects alternating bits, so masking the low 2*depth bits
// yields sum_{k=0}^{depth-1} 4^k.
func NodeCount(treeDepth int) uint32 {
	return 0x55555555 & ((uint32(1) << uint(treeDepth*2)) - 1)
}

// ChildIndex returns the breadth-first index of parent's child in
// [nw,ne,sw,se] order (quadrant in [0,3]), given the quaternary heap
// indexing where the implicit super-root is index 1.
func ChildIndex(parent uint32, quadrant int) uint32 {
	return 4*parent - 2 + uint32(quadrant)
}
