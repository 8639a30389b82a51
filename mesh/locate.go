package mesh

// Find the element containing p, starting the search at start. The search
// first walks across the mesh towards p, which is fast when start is nearby.
// If the walk runs into the mesh boundary (the mesh need not be convex) or
// cannot settle, every element is tested in turn.
//
// A point outside the mesh is not an error; the outcome is Outside and Elem is
// NoNeighbor.
func (m *Mesh) Locate(p Point, start int) (result Location, err error) {
	defer recoverInto(&err)
	return m.locate(p, start), nil
}

func (m *Mesh) locate(p Point, start int) Location {
	if len(m.Elements) == 0 {
		return Location{Elem: NoNeighbor, Outcome: Outside}
	}
	if start >= len(m.Elements) {
		fatalf(InvalidArgument, "start element %d out of range [0, %d)", start, len(m.Elements))
	}
	if start < 0 {
		start = 0
	}

	start = m.firstLiveFrom(start)
	if start < 0 {
		return Location{Elem: NoNeighbor, Outcome: Outside}
	}

	if loc, ok := m.walk(p, start); ok {
		return loc
	}
	return m.force(p)
}

// First live element at or after start, wrapping around. -1 if there is none.
func (m *Mesh) firstLiveFrom(start int) int {
	n := len(m.Elements)
	for i := 0; i < n; i++ {
		e := (start + i) % n
		if !m.Elements[e].IsZombie() {
			return e
		}
	}
	return -1
}

// Walk from element to element, always crossing an edge which has p on its far
// side. The second return is false if the walk ran off the mesh, or oscillated
// in strict mode.
func (m *Mesh) walk(p Point, e int) (Location, bool) {
	tolSq := m.Settings.toleranceSq()
	previous := NoNeighbor
	// A walk that doesn't cycle visits each element at most once
	for budget := len(m.Nodes) + len(m.Elements); budget > 0; budget-- {
		elem := &m.Elements[e]
		v := m.ElementPositions(e)
		area := SignedArea2(v[0], v[1], v[2])
		if area < tolSq {
			fatalf(Numerical, "walk reached element %d which has area %g", e, area)
		}

		for _, vertex := range v {
			if Coincident(vertex, p, tolSq) {
				return Location{Elem: e, Exists: true, Outcome: OnNode}, true
			}
		}

		// Find an edge with p on the outside. The third sub area is what is left
		// over from the first two.
		slot := -1
		area0 := SignedArea2(v[1], v[2], p)
		if area0 < 0 {
			slot = 0
		} else {
			area1 := SignedArea2(v[2], v[0], p)
			if area1 < 0 {
				slot = 1
			} else if area-area0-area1 < 0 {
				slot = 2
			}
		}
		if slot < 0 {
			return Location{Elem: e, Outcome: Inside}, true
		}

		next := elem.Neighbors[slot]
		if next == NoNeighbor {
			return Location{}, false
		}
		if next == previous {
			// Stepping straight back. Numerically, p is on the shared edge of both
			// elements, so either one is fine.
			if m.Settings.StrictLocate {
				m.tracef("locate: walk oscillates between %d and %d", e, next)
				return Location{}, false
			}
			return Location{Elem: e, Outcome: Inside}, true
		}
		previous = e
		e = next
	}
	fatalf(Numerical, "walk towards (%g, %g) did not terminate", p.X, p.Y)
	return Location{}, false
}

// Test every live element. Slow, but doesn't depend on the walk converging.
func (m *Mesh) force(p Point) Location {
	tolSq := m.Settings.toleranceSq()
	for e := range m.Elements {
		if m.Elements[e].IsZombie() {
			continue
		}
		v := m.ElementPositions(e)
		if InTriangle(v[0], v[1], v[2], p) < 0 {
			continue
		}
		for _, vertex := range v {
			if Coincident(vertex, p, tolSq) {
				return Location{Elem: e, Exists: true, Outcome: OnNode}
			}
		}
		return Location{Elem: e, Outcome: Inside}
	}
	return Location{Elem: NoNeighbor, Outcome: Outside}
}

// Local index of the node of element e which coincides with p, or -1.
func (m *Mesh) nodeSlotAt(e int, p Point) int {
	tolSq := m.Settings.toleranceSq()
	for i, n := range m.Elements[e].Nodes {
		if Coincident(m.Nodes[n].Position, p, tolSq) {
			return i
		}
	}
	return -1
}
