package mesh

// Insert points in order, each search starting from where the last one ended,
// which is fast when the points are spatially coherent.
//
// With minDist > 0 the points are thinned: a point closer than minDist to the
// previous one is skipped, and so is a point which would land closer than
// minDist to any node (other than bounding box corners) whose element it
// conflicts with. Points on existing nodes merge their flags. Returns the
// number of nodes added, which is also valid when an error stops the batch
// part way.
func (m *Mesh) AddPoints(points []Point, minDist float64, flags NodeFlags) (added int, err error) {
	defer recoverInto(&err)
	minDistSq := minDist * minDist
	start := 0
	var last Point
	for i, p := range points {
		if i > 0 && minDist > 0 && distSq(p, last) < minDistSq {
			continue
		}
		last = p

		m.reserve(len(m.Elements)+2, len(m.Nodes)+1)
		loc := m.locate(p, start)
		switch loc.Outcome {
		case Outside:
			fatalf(InvalidArgument, "point %d (%g, %g) is outside the mesh", i, p.X, p.Y)
		case OnNode:
			m.mergeFlags(loc.Elem, p, flags)
			start = loc.Elem
			continue
		}

		region := m.conflictRegion(p, loc.Elem)
		if minDist > 0 && m.regionCrowds(region, p, minDistSq) {
			m.releaseRegion(region)
			m.tracef("add points: point %d (%g, %g) is within %g of a node, skipped", i, p.X, p.Y, minDist)
			start = loc.Elem
			continue
		}
		m.replaceRegion(region, p, flags)
		// The located element's slot is always reused by the replacement
		start = loc.Elem
		added++
	}
	return added, nil
}

// Does any node of the region, other than bounding box corners, lie within
// sqrt(minDistSq) of p?
func (m *Mesh) regionCrowds(region []int, p Point, minDistSq float64) bool {
	for _, e := range region {
		for _, n := range m.Elements[e].Nodes {
			node := &m.Nodes[n]
			if node.Flags&NodeBBox != 0 {
				continue
			}
			if distSq(node.Position, p) < minDistSq {
				return true
			}
		}
	}
	return false
}

// Refine e by inserting a node at its circumcentre. When the circumcentre is
// outside the mesh, the midpoint of the hull edge on the way to it is used
// instead. Returns the new node, or the existing node at that position.
func (m *Mesh) SplitElement(e int) (node int, err error) {
	defer recoverInto(&err)
	m.checkElement(e)
	if m.Elements[e].IsZombie() {
		fatalf(InvalidArgument, "element %d has been deleted", e)
	}
	v := m.ElementPositions(e)
	centre, ok := Circumcentre(v[0], v[1], v[2])
	if !ok {
		fatalf(Numerical, "element %d has no finite circumcentre", e)
	}

	m.reserve(len(m.Elements)+2, len(m.Nodes)+1)
	p, target := m.walkToward(centre, e)
	if slot := m.nodeSlotAt(target, p); slot >= 0 {
		return m.Elements[target].Nodes[slot], nil
	}
	m.tracef("split: element %d at (%g, %g) from element %d", target, p.X, p.Y, e)
	return m.insertInto(target, p, NodeNone), nil
}

// Walk from e toward p, and return the element which contains it. If the walk
// runs off the mesh, the returned point is the midpoint of the hull edge it
// crossed, and the element is the one on the inside of that edge.
func (m *Mesh) walkToward(p Point, e int) (Point, int) {
	previous := NoNeighbor
	for budget := len(m.Nodes) + len(m.Elements); budget > 0; budget-- {
		v := m.ElementPositions(e)
		slot := -1
		for i := 0; i < 3; i++ {
			if SignedArea2(v[(i+1)%3], v[(i+2)%3], p) < 0 {
				slot = i
				break
			}
		}
		if slot < 0 {
			return p, e
		}
		next := m.Elements[e].Neighbors[slot]
		if next == NoNeighbor {
			a, b := v[(slot+1)%3], v[(slot+2)%3]
			return a.Add(b).Mul(0.5), e
		}
		if next == previous {
			return p, e
		}
		previous = e
		e = next
	}
	fatalf(Numerical, "walk towards (%g, %g) did not terminate", p.X, p.Y)
	return p, e
}
