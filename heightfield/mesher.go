package heightfield

import "github.com/gogpu/cdlod/meshbuilder"

const weldRadius = 0.001

// Mesh runs the chunk-meshing pass over the whole heightmap (§4.1
// "Algorithm — chunk meshing"), returning one Chunk per quadtree node in
// depth-first pre-order, root first: each node is followed by its nw, ne,
// sw and se subtrees in turn.
func Mesh(hm *Heightmap) []*Chunk {
	chunks := make([]*Chunk, 0, NodeCount(hm.TreeDepth+1))
	region := nodeRegion{0, 0, hm.Side - 1, hm.Side - 1}
	meshNode(hm, region, hm.TreeDepth-1, 1, &chunks)
	return chunks
}

type nodeRegion struct{ x0, z0, x1, z1 int }

func meshNode(hm *Heightmap, region nodeRegion, level int, nodeIndex uint32, out *[]*Chunk) {
	// Step 1: force-activate corners so the chunk boundary is always
	// retained (SPEC_FULL supplement 3).
	ForceActivate(hm, region.x0, region.z0, level)
	ForceActivate(hm, region.x1, region.z0, level)
	ForceActivate(hm, region.x0, region.z1, level)
	ForceActivate(hm, region.x1, region.z1, level)

	*out = append(*out, buildNodeMesh(hm, region, level, nodeIndex))

	if level == 0 {
		return
	}
	midX := (region.x0 + region.x1) / 2
	midZ := (region.z0 + region.z1) / 2
	nw := nodeRegion{region.x0, region.z0, midX, midZ}
	ne := nodeRegion{midX, region.z0, region.x1, midZ}
	sw := nodeRegion{region.x0, midZ, midX, region.z1}
	se := nodeRegion{midX, midZ, region.x1, region.z1}

	meshNode(hm, nw, level-1, ChildIndex(nodeIndex, 0), out)
	meshNode(hm, ne, level-1, ChildIndex(nodeIndex, 1), out)
	meshNode(hm, sw, level-1, ChildIndex(nodeIndex, 2), out)
	meshNode(hm, se, level-1, ChildIndex(nodeIndex, 3), out)
}

// triNode is one node of the binary-triangle-tree nested inside a quadtree
// node, keyed by its BTT id: the two roots covering the node are ids 2 and
// 3 (children of the implicit id 1, the node's square), and the children of
// triangle id t are 2t and 2t+1.
type triNode struct{ apex, left, right coord }

// buildNodeMesh builds the finest BTT split for region, merges it bottom-up
// per the activation levels computed by ComputeErrors/Propagator.Run, and
// welds the surviving triangles into a Chunk (§4.1 steps 2-5).
func buildNodeMesh(hm *Heightmap, region nodeRegion, level int, nodeIndex uint32) *Chunk {
	logSize := level + 1
	target := 2 * logSize

	nw := coord{region.x0, region.z0}
	ne := coord{region.x1, region.z0}
	sw := coord{region.x0, region.z1}
	se := coord{region.x1, region.z1}

	nodes := make(map[uint64]triNode)
	present := make(map[uint64]bool)

	splitTriangle(ne, nw, se, 2, target, 0, nodes, present)
	splitTriangle(sw, nw, se, 3, target, 0, nodes, present)

	mergeDiamonds(hm, nodes, present, target, level)

	builder := meshbuilder.New(weldRadius)
	for id, isPresent := range present {
		if !isPresent {
			continue
		}
		n := nodes[id]
		builder.AddTriangle(
			worldVertex(hm, n.apex),
			worldVertex(hm, n.left),
			worldVertex(hm, n.right),
		)
	}

	vertices, indices := builder.Commit()
	min, max := builder.Bounds()

	verts := make([][3]float32, len(vertices))
	for i, v := range vertices {
		verts[i] = [3]float32(v)
	}

	return &Chunk{
		NodeIndex: nodeIndex,
		Level:     level,
		BBoxMin:   [3]float32(min),
		BBoxMax:   [3]float32(max),
		Vertices:  verts,
		Indices:   indices,
	}
}

func worldVertex(hm *Heightmap, c coord) meshbuilder.Vertex {
	s := hm.At(c.x, c.z)
	return meshbuilder.Vertex{float32(s.WorldX), float32(s.WorldY), float32(s.WorldZ)}
}

// splitTriangle recursively bisects (apex,left,right) until level reaches
// target, recording every intermediate and leaf triangle by BTT id. This
// mirrors lkUpdate's geometry exactly: new apex is the base midpoint, with
// children (B,apex,right) and (B,left,apex).
func splitTriangle(apex, left, right coord, id uint64, target, level int, nodes map[uint64]triNode, present map[uint64]bool) {
	nodes[id] = triNode{apex, left, right}
	if level == target {
		present[id] = true
		return
	}
	b := midpoint(left, right)
	splitTriangle(b, apex, right, 2*id, target, level+1, nodes, present)
	splitTriangle(b, left, apex, 2*id+1, target, level+1, nodes, present)
}

type edgeKey struct{ a, b coord }

func edgeKeyFor(left, right coord) edgeKey {
	if left.x < right.x || (left.x == right.x && left.z < right.z) {
		return edgeKey{left, right}
	}
	return edgeKey{right, left}
}

// mergeDiamonds performs the bottom-up merge of §4.1 step 3. For every
// level from target-1 down to 0, sibling leaf pairs whose shared parent's
// midpoint activation is below nodeLevel are merged back into their
// parent, provided a "diamond mate" sharing the same base edge is also
// mergeable.
func mergeDiamonds(hm *Heightmap, nodes map[uint64]triNode, present map[uint64]bool, target, nodeLevel int) {
	for cur := target - 1; cur >= 0; cur-- {
		lo := uint64(1) << uint(cur+1)
		hi := uint64(1) << uint(cur+2)

		edges := make(map[edgeKey][]uint64)
		for id := lo; id < hi; id++ {
			if present[id] {
				continue
			}
			if !present[2*id] || !present[2*id+1] {
				continue
			}
			n := nodes[id]
			key := edgeKeyFor(n.left, n.right)
			edges[key] = append(edges[key], id)
		}

		for id := lo; id < hi; id++ {
			if !present[2*id] || !present[2*id+1] {
				continue // already consumed as someone else's mate, or never a candidate
			}
			n := nodes[id]
			mid := midpoint(n.left, n.right)
			activationPrimary := hm.At(mid.x, mid.z).Activation
			if activationPrimary >= nodeLevel {
				continue
			}

			key := edgeKeyFor(n.left, n.right)
			var mate uint64
			found := false
			for _, candidate := range edges[key] {
				if candidate != id {
					mate = candidate
					found = true
					break
				}
			}
			if !found {
				continue
			}
			if !present[2*mate] || !present[2*mate+1] {
				continue
			}
			if mate <= id {
				continue // tie-break: process each diamond once
			}

			// iActivationB: the mate's own midpoint activation, computed
			// but never tested, preserved from the source (SPEC_FULL
			// supplement; spec.md §9 open question).
			mateNode := nodes[mate]
			mateMid := midpoint(mateNode.left, mateNode.right)
			_ = hm.At(mateMid.x, mateMid.z).Activation

			delete(present, 2*id)
			delete(present, 2*id+1)
			delete(present, 2*mate)
			delete(present, 2*mate+1)
			present[id] = true
			present[mate] = true
		}
	}
}
