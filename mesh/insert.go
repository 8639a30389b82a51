package mesh

// Insertion is Bowyer-Watson: every element whose circumcircle contains the
// new point is in conflict with it, and the conflicting elements form a
// region which is star shaped around the point. The region is torn out and
// replaced with a fan of triangles joining the point to the region's boundary.
//
//          b₀─────────a₀                       b₀─────────a₀
//         ╱ ╲    z₁   ╱                       ╱ ╲        ╱
//        ╱ z₀ ╲     ╱      ──────────▶      ╱    ╲ T₀  ╱
//       ╱   .p  ╲  ╱                       ╱  T₁  p───╱
//      ╱_________╲╱                       ╱______╱__╲╱
//
// The region is marked by setting the zombie flag on its elements, which is
// also how the fill knows where it has already been.

// Add a node at p. If p coincides with an existing node, flags are merged
// into that node and nothing else changes. The search for p starts from start.
// Returns the node's index.
func (m *Mesh) Insert(p Point, flags NodeFlags, start int) (node int, err error) {
	defer recoverInto(&err)
	return m.insert(p, flags, start), nil
}

func (m *Mesh) insert(p Point, flags NodeFlags, start int) int {
	// One insertion adds one node and at most two elements. Grow before
	// anything else happens so we never fail half way through.
	m.reserve(len(m.Elements)+2, len(m.Nodes)+1)

	loc := m.locate(p, start)
	switch loc.Outcome {
	case Outside:
		fatalf(InvalidArgument, "point (%g, %g) is outside the mesh", p.X, p.Y)
	case OnNode:
		return m.mergeFlags(loc.Elem, p, flags)
	}

	return m.insertInto(loc.Elem, p, flags)
}

// Insert p, which is known to lie in or on element e and not on any of its
// nodes.
func (m *Mesh) insertInto(e int, p Point, flags NodeFlags) int {
	region := m.conflictRegion(p, e)
	return m.replaceRegion(region, p, flags)
}

func (m *Mesh) mergeFlags(e int, p Point, flags NodeFlags) int {
	slot := m.nodeSlotAt(e, p)
	if slot < 0 {
		fatalf(Numerical, "element %d was found for (%g, %g) but has no matching node", e, p.X, p.Y)
	}
	n := m.Elements[e].Nodes[slot]
	m.Nodes[n].Flags |= flags &^ NodeZombie
	return n
}

// Flood fill out from source through every neighbor in conflict with p. All
// elements in the region are marked as zombies and returned in the order they
// were found. The source is always included.
func (m *Mesh) conflictRegion(p Point, source int) []int {
	region := []int{source}
	m.Elements[source].Flags |= ElemZombie

	var visit func(e int)
	visit = func(e int) {
		for _, nbr := range m.Elements[e].Neighbors {
			if nbr == NoNeighbor || m.Elements[nbr].IsZombie() {
				continue
			}
			if m.inConflict(nbr, p) {
				m.Elements[nbr].Flags |= ElemZombie
				region = append(region, nbr)
				visit(nbr)
			}
		}
	}
	visit(source)
	return region
}

// An element conflicts with p if p is strictly inside its circumcircle, or if
// p lies on it. The second case catches points on an edge, which a
// circumcircle test can miss numerically, and which would otherwise leave the
// element across the edge with a T junction.
func (m *Mesh) inConflict(e int, p Point) bool {
	v := m.ElementPositions(e)
	return InCircumcircle(v[0], v[1], v[2], p) || m.onElement(v, p)
}

// Is p inside or within tolerance of the boundary of the triangle?
func (m *Mesh) onElement(v [3]Point, p Point) bool {
	tolSq := m.Settings.toleranceSq()
	return SignedArea2(v[1], v[2], p) > -tolSq &&
		SignedArea2(v[2], v[0], p) > -tolSq &&
		SignedArea2(v[0], v[1], p) > -tolSq
}

// Undo the zombie marking of a region which we failed to replace, then fail.
// Nothing else has been touched at this point, so the mesh is as it was.
func (m *Mesh) abandonRegion(region []int, format string, args ...interface{}) {
	m.releaseRegion(region)
	fatalf(Numerical, format, args...)
}

func (m *Mesh) releaseRegion(region []int) {
	for _, e := range region {
		m.Elements[e].Flags &^= ElemZombie
	}
}

func (m *Mesh) replaceRegion(region []int, p Point, flags NodeFlags) int {
	if len(region) == 1 {
		return m.replace1(region[0], p, flags)
	}
	return m.replaceN(region, p, flags)
}

// A region of one element. The point is either in the interior, which gives
// three new triangles, or on a boundary edge of the mesh, which gives two.
func (m *Mesh) replace1(e int, p Point, flags NodeFlags) int {
	tolSq := m.Settings.toleranceSq()
	v := m.ElementPositions(e)
	subAreas := [3]float64{
		SignedArea2(v[1], v[2], p),
		SignedArea2(v[2], v[0], p),
		SignedArea2(v[0], v[1], p),
	}
	count := 0
	degenerate := -1
	for i, area := range subAreas {
		if area >= tolSq {
			count++
		} else {
			degenerate = i
		}
	}

	switch count {
	case 3:
		n := m.newNode(p, flags)
		m.split3(e, n)
		m.tracef("insert: node %d splits element %d in three", n, e)
		return n
	case 2:
		if m.Elements[e].Neighbors[degenerate] != NoNeighbor {
			m.abandonRegion([]int{e}, "point (%g, %g) is on an interior edge of element %d but its neighbor is not in conflict", p.X, p.Y, e)
		}
		n := m.newNode(p, flags)
		m.split2(e, degenerate, n)
		m.tracef("insert: node %d splits boundary edge of element %d", n, e)
		return n
	}
	m.abandonRegion([]int{e}, "point (%g, %g) is degenerate in element %d (%d usable sub triangles)", p.X, p.Y, e, count)
	return -1
}

// Split e = (n0, n1, n2) around interior node n into
//
//	e  = (n0, n1, n)
//	e1 = (n,  n1, n2)
//	e2 = (n0, n,  n2)
//
// e keeps its slot and its neighbor across (n0, n1).
func (m *Mesh) split3(e, n int) {
	old := m.Elements[e]
	n0, n1, n2 := old.Nodes[0], old.Nodes[1], old.Nodes[2]
	e1 := m.newElement(n, n1, n2)
	e2 := m.newElement(n0, n, n2)

	m.Elements[e1].Neighbors = [3]int{old.Neighbors[0], e2, e}
	m.linkBack(e1, 0)
	m.Elements[e2].Neighbors = [3]int{e1, old.Neighbors[1], e}
	m.linkBack(e2, 1)

	m.resetElement(e, n0, n1, n)
	m.Elements[e].Neighbors = [3]int{e1, e2, old.Neighbors[2]}
}

// Split e across the edge opposite its node d, which n lies on. That edge is on
// the mesh boundary, so both halves of it stay unlinked.
//
// With a = Nodes[d], b = Nodes[d+1], c = Nodes[d+2], e becomes (a, b, n) and
// the new element is (a, n, c), both keeping e's rotation.
func (m *Mesh) split2(e, d, n int) {
	old := m.Elements[e]
	d1 := (d + 1) % 3
	d2 := (d + 2) % 3

	var nodes [3]int
	nodes[d] = old.Nodes[d]
	nodes[d1] = n
	nodes[d2] = old.Nodes[d2]
	e1 := m.newElement(nodes[0], nodes[1], nodes[2])
	m.Elements[e1].Neighbors[d1] = old.Neighbors[d1]
	m.Elements[e1].Neighbors[d2] = e
	m.linkBack(e1, d1)

	nodes = old.Nodes
	nodes[d2] = n
	m.resetElement(e, nodes[0], nodes[1], nodes[2])
	m.Elements[e].Neighbors[d1] = e1
	m.Elements[e].Neighbors[d2] = old.Neighbors[d2]
}

// One edge of the boundary of a conflict region, in counterclockwise order
// around the region, with whatever lies outside it.
type fanEdge struct {
	a, b  int
	outer int
}

// Collect the boundary of the region by walking around it counterclockwise.
// Returns an empty string on success, or what went wrong.
func (m *Mesh) regionBoundary(region []int) ([]fanEdge, string) {
	startElem, startSlot := -1, -1
	for _, z := range region {
		for slot, nbr := range m.Elements[z].Neighbors {
			if nbr == NoNeighbor || !m.Elements[nbr].IsZombie() {
				startElem, startSlot = z, slot
				break
			}
		}
		if startElem >= 0 {
			break
		}
	}
	if startElem < 0 {
		return nil, "conflict region has no boundary"
	}

	var edges []fanEdge
	z, slot := startElem, startSlot
	budget := 3*len(region) + 3
	for {
		elem := &m.Elements[z]
		b := elem.Nodes[(slot+2)%3]
		edges = append(edges, fanEdge{
			a:     elem.Nodes[(slot+1)%3],
			b:     b,
			outer: elem.Neighbors[slot],
		})

		// Turn around b to the next edge. While that edge is inside the region,
		// step over it into the element on the other side.
		slot = (slot + 1) % 3
		for {
			nbr := m.Elements[z].Neighbors[slot]
			if nbr == NoNeighbor || !m.Elements[nbr].IsZombie() {
				break
			}
			z = nbr
			j := m.nodeSlot(z, b)
			if j < 0 {
				return nil, "conflict region neighbors do not share a node"
			}
			slot = (j + 2) % 3
			if budget--; budget < 0 {
				return nil, "walk around conflict region did not close"
			}
		}

		if z == startElem && slot == startSlot {
			break
		}
		if budget--; budget < 0 {
			return nil, "walk around conflict region did not close"
		}
	}
	return edges, ""
}

// A region of several elements. The fan has one triangle per boundary edge,
// unless the point lies on a boundary edge of the mesh, in which case that
// triangle would be flat and is left out.
func (m *Mesh) replaceN(region []int, p Point, flags NodeFlags) int {
	tolSq := m.Settings.toleranceSq()
	edges, problem := m.regionBoundary(region)
	if problem != "" {
		m.abandonRegion(region, "inserting (%g, %g): %s", p.X, p.Y, problem)
	}
	// A disc of k triangles has k + 2 boundary edges
	if len(edges) != len(region)+2 {
		m.abandonRegion(region, "inserting (%g, %g): conflict region of %d elements has %d boundary edges", p.X, p.Y, len(region), len(edges))
	}

	flat := -1
	for i, edge := range edges {
		area := SignedArea2(p, m.Nodes[edge.a].Position, m.Nodes[edge.b].Position)
		if area >= tolSq {
			continue
		}
		if area <= -tolSq {
			m.abandonRegion(region, "inserting (%g, %g): conflict region is not star shaped", p.X, p.Y)
		}
		if flat >= 0 || edge.outer != NoNeighbor {
			m.abandonRegion(region, "inserting (%g, %g): fan triangle %d-%d is flat", p.X, p.Y, edge.a, edge.b)
		}
		flat = i
	}

	// Everything is known, so from here on we only write. The zombie slots are
	// reused in the order they were found, then new slots are appended.
	n := m.newNode(p, flags)
	slots := make([]int, len(edges))
	next := 0
	for i := range edges {
		if i == flat {
			slots[i] = NoNeighbor
			continue
		}
		if next < len(region) {
			slots[i] = region[next]
			next++
		} else {
			slots[i] = m.newElement(n, n, n)
		}
	}

	k := len(edges)
	for i, edge := range edges {
		if i == flat {
			continue
		}
		e := slots[i]
		m.resetElement(e, n, edge.a, edge.b)
		m.Elements[e].Neighbors = [3]int{
			edge.outer,
			slots[(i+1)%k],
			slots[(i+k-1)%k],
		}
		m.linkBack(e, 0)
	}
	if flat >= 0 {
		m.tracef("insert: node %d lies on boundary edge %d-%d, fan of %d", n, edges[flat].a, edges[flat].b, k-1)
	} else {
		m.tracef("insert: node %d replaces %d elements with a fan of %d", n, len(region), k)
	}
	return n
}
