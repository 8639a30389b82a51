package mesh

import "golang.org/x/exp/slices"

// The star of a node: the elements around it and the polygon they enclose.
//
// Elements are in counterclockwise order around the node. Nodes[j] and
// Nodes[j+1] are the outer edge of Elements[j], and Outer[j] is whatever lies
// across that edge. When the node is on the mesh boundary the star is open,
// there is one more ring node than there are elements, and the last edge of
// the polygon (closing it from the last node back to the first) has nothing
// across it.
type star struct {
	Elements []int
	Nodes    []int
	Outer    []int
	Closed   bool
}

// Remove a node, re-triangulating the hole it leaves behind. The node is found
// by locating its position, starting from start.
func (m *Mesh) Delete(node int, start int) (err error) {
	defer recoverInto(&err)
	m.deleteNode(node, start)
	return nil
}

// Delete several nodes in order. Nodes which are already deleted are skipped,
// so the list may contain repeats.
func (m *Mesh) DeleteNodes(nodes []int, start int) (err error) {
	defer recoverInto(&err)
	for _, n := range nodes {
		if n >= 0 && n < len(m.Nodes) && m.Nodes[n].IsZombie() {
			continue
		}
		m.deleteNode(n, start)
	}
	return nil
}

func (m *Mesh) deleteNode(node int, start int) {
	m.checkNode(node)
	p := m.Nodes[node].Position
	loc := m.locate(p, start)
	if !loc.Exists {
		fatalf(Numerical, "node %d at (%g, %g) is not in the mesh", node, p.X, p.Y)
	}
	slot := m.nodeSlot(loc.Elem, node)
	if slot < 0 {
		fatalf(Numerical, "element %d was found for node %d but does not use it", loc.Elem, node)
	}

	s := m.collectStar(loc.Elem, slot)
	for _, e := range s.Elements {
		m.unlink(e)
	}
	m.fillStar(s, p)
	m.Nodes[node].Flags = NodeZombie
	m.tracef("delete: node %d, %d elements around it, closed %v", node, len(s.Elements), s.Closed)
}

// Rotate around the node at the given slot of e. First clockwise, to find
// where the star starts (the boundary, or back where we began), then
// counterclockwise, collecting everything. Collected elements are marked as
// zombies.
//
// For element (c, x, y) around node c, the next element counterclockwise is
// across the edge (c, y), and the previous is across (x, c).
func (m *Mesh) collectStar(e, slot int) star {
	c := m.Elements[e].Nodes[slot]
	budget := len(m.Elements)

	first := e
	for {
		i := m.nodeSlot(first, c)
		prev := m.Elements[first].Neighbors[(i+2)%3]
		if prev == NoNeighbor || prev == e {
			break
		}
		first = prev
		if budget--; budget < 0 {
			fatalf(Numerical, "rotation around node %d did not close", c)
		}
	}

	var s star
	budget = len(m.Elements)
	current := first
	for {
		elem := &m.Elements[current]
		i := m.nodeSlot(current, c)
		if i < 0 {
			fatalf(Numerical, "element %d is linked around node %d but does not use it", current, c)
		}
		x := elem.Nodes[(i+1)%3]
		if slices.Contains(s.Nodes, x) {
			fatalf(Numerical, "star of node %d visits node %d twice", c, x)
		}
		s.Elements = append(s.Elements, current)
		s.Nodes = append(s.Nodes, x)
		s.Outer = append(s.Outer, elem.Neighbors[i])
		elem.Flags |= ElemZombie

		next := elem.Neighbors[(i+1)%3]
		if next == first {
			s.Closed = true
			break
		}
		if next == NoNeighbor {
			// Open star. The last node closes the polygon with a hull chord.
			s.Nodes = append(s.Nodes, elem.Nodes[(i+2)%3])
			s.Outer = append(s.Outer, NoNeighbor)
			break
		}
		current = next
		if budget--; budget < 0 {
			fatalf(Numerical, "rotation around node %d did not close", c)
		}
	}
	return s
}

// Fill the hole left by a star whose elements have already been unlinked.
// Each committed triangle recycles one of the star's zombie slots.
//
// A closed star is filled completely. An open star belongs to a boundary node,
// and only the pockets between its ring and the convex chain of the ring as
// seen from the deleted node are filled. Where the ring dips toward the
// deleted node, it simply becomes the new mesh boundary. A chord of the chain
// never passes on the far side of the deleted node, since it would leave the
// star. Where the star is wider than a half turn, the chain keeps the ring node
// that the chord would have skipped.
func (m *Mesh) fillStar(s star, deleted Point) {
	free := append([]int(nil), s.Elements...)
	if s.Closed {
		m.fillPolygon(s.Nodes, s.Outer, deleted, &free)
		return
	}

	tolSq := m.Settings.toleranceSq()
	position := func(i int) Point {
		return m.Nodes[s.Nodes[i]].Position
	}
	chain := []int{0}
	for i := 1; i < len(s.Nodes); i++ {
		for len(chain) >= 2 {
			a, b := position(chain[len(chain)-2]), position(chain[len(chain)-1])
			if SignedArea2(a, b, position(i)) <= tolSq || SignedArea2(a, position(i), deleted) < -tolSq {
				break
			}
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, i)
	}

	filled := make([]bool, len(s.Nodes))
	for k := 1; k < len(chain); k++ {
		a, b := chain[k-1], chain[k]
		if b-a < 2 {
			continue
		}
		outer := append(append([]int(nil), s.Outer[a:b]...), NoNeighbor)
		m.fillPolygon(s.Nodes[a:b+1], outer, deleted, &free)
		for i := a; i <= b; i++ {
			filled[i] = true
		}
	}
	m.traceStranded(s, filled)
}

// Ring nodes of an open star which end up in no element at all. This happens
// when the star was the node's only fan, and nothing can be filled next to it
// without leaving the star, such as when the ring is collinear. The node stays
// live, so it can still be located against or deleted, but no element uses it.
func (m *Mesh) traceStranded(s star, filled []bool) {
	if m.Tracef == nil {
		return
	}
	last := len(s.Nodes) - 1
	for i, n := range s.Nodes {
		if filled[i] {
			continue
		}
		// The edge before node i, and the edge after it, which for the last
		// node is the hull chord with nothing across it.
		if i > 0 && s.Outer[i-1] != NoNeighbor {
			continue
		}
		if i < last && s.Outer[i] != NoNeighbor {
			continue
		}
		if m.nodeUsed(n) {
			continue
		}
		m.tracef("delete: node %d is left without elements", n)
	}
}

func (m *Mesh) nodeUsed(n int) bool {
	for e := range m.Elements {
		if !m.Elements[e].IsZombie() && m.nodeSlot(e, n) >= 0 {
			return true
		}
	}
	return false
}

// Triangulate a simple counterclockwise polygon by clipping ears until one
// triangle is left. outer[j] is what lies across the edge from nodes[j] to the
// following node.
func (m *Mesh) fillPolygon(nodes, outer []int, deleted Point, free *[]int) {
	if len(nodes) < 3 {
		return
	}
	pop := func() int {
		if len(*free) == 0 {
			fatalf(Numerical, "ran out of element slots filling a polygon of %d nodes", len(nodes))
		}
		e := (*free)[len(*free)-1]
		*free = (*free)[:len(*free)-1]
		return e
	}

	list := newEarList(m, nodes, outer, deleted)
	for list.count > 3 {
		j := list.minPower()
		if j < 0 {
			fatalf(Numerical, "polygon of %d nodes left by deleted node has no ear", list.count)
		}
		e := pop()
		m.tracef("delete: ear %d-%d-%d into element %d", list.nodes[list.ears[j].prev], list.nodes[j], list.nodes[list.ears[j].next], e)
		list.commit(j, e)
		list.remove(j)
	}

	// The three ears left are rotations of the last triangle
	j := list.head
	list.updatePower(j)
	if list.ears[j].area2 < list.minArea2 {
		fatalf(Numerical, "last triangle of the polygon left by deleted node is degenerate")
	}
	list.commit(j, pop())
}
