package heightfield

// Propagator runs the quadtree activation-propagation pass over a
// heightmap (§4.1 "Algorithm — quadtree activation propagation").
type Propagator struct {
	hm *Heightmap
}

// NewPropagator binds a propagator to a heightmap whose errors have
// already been computed by ComputeErrors.
func NewPropagator(hm *Heightmap) *Propagator {
	return &Propagator{hm: hm}
}

// Run propagates activation levels from every level 0 up to treeDepth-1.
// PropagateLevel is invoked twice per level for identical arguments,
// preserved verbatim from the source (SPEC_FULL supplement 4): the second
// call is idempotent and guarantees fixed-point convergence when two
// adjacent cells raise the same shared edge.
func (p *Propagator) Run() {
	for level := 0; level < p.hm.TreeDepth; level++ {
		p.PropagateLevel(level)
		p.PropagateLevel(level)
	}
}

// PropagateLevel performs one descent over every quadtree node at the
// given level, propagating child-center activation onto edge midpoints and
// then edge activation onto the node center.
func (p *Propagator) PropagateLevel(level int) {
	h := 1 << uint(level)
	span := 2 * h
	nodesPerAxis := (p.hm.Side - 1) / span

	for kz := 0; kz < nodesPerAxis; kz++ {
		for kx := 0; kx < nodesPerAxis; kx++ {
			cx := h + kx*span
			cz := h + kz*span
			p.propagateNode(cx, cz, h, level)
		}
	}
}

func (p *Propagator) propagateNode(cx, cz, h, level int) {
	if level > 0 {
		half := h / 2
		type child struct{ dx, dz int }
		nw := child{-half, -half}
		ne := child{half, -half}
		sw := child{-half, half}
		se := child{half, half}

		west := coord{cx - h, cz}
		east := coord{cx + h, cz}
		north := coord{cx, cz - h}
		south := coord{cx, cz + h}

		raise := func(target coord, childCenter child) {
			raiseActivation(p.hm, coord{cx + childCenter.dx, cz + childCenter.dz}, target)
		}

		raise(west, nw)
		raise(north, nw)
		raise(north, ne)
		raise(east, ne)
		raise(west, sw)
		raise(south, sw)
		raise(south, se)
		raise(east, se)
	}

	center := coord{cx, cz}
	for _, edge := range []coord{{cx - h, cz}, {cx + h, cz}, {cx, cz - h}, {cx, cz + h}} {
		raiseActivation(p.hm, edge, center)
	}
}

// raiseActivation sets target's activation to the max of its current value
// and source's, never lowering it.
func raiseActivation(hm *Heightmap, source, target coord) {
	src := hm.At(source.x, source.z)
	dst := hm.At(target.x, target.z)
	if src.Activation > dst.Activation {
		dst.Activation = src.Activation
	}
}

// ForceActivate raises a sample's activation level to at least level,
// matching `pl__activate_height_map_element` (SPEC_FULL supplement 3): the
// mesher uses this to force-activate a node's four corners before BTT leaf
// generation so chunk boundaries never crack.
func ForceActivate(hm *Heightmap, x, z, level int) {
	s := hm.At(x, z)
	if level > s.Activation {
		s.Activation = level
	}
}
