package mesh

import "math"

// Ear clipping for the hole left by a deleted node. The polygon's vertices are
// the star's ring nodes. The ear at vertex j is the triangle made of j and its
// two neighbors in the list, and its power says how well it fits the
// circumcircles of its neighbors: clipping the minimum power ear first keeps
// the result close to Delaunay.
//
// The list is intrusive: prev and next are indices into the ears slice, which
// parallels the ring nodes.

type ear struct {
	prev, next int
	power      float64
	area2      float64
}

type earList struct {
	m        *Mesh
	deleted  Point
	minArea2 float64
	nodes    []int
	// outer[j] is across the polygon edge from nodes[j] to nodes[ears[j].next]
	outer []int
	ears  []ear
	count int
	head  int
}

func newEarList(m *Mesh, nodes, outer []int, deleted Point) *earList {
	n := len(nodes)
	list := &earList{
		m:        m,
		deleted:  deleted,
		minArea2: m.Settings.elemAreaTolerance() * 2,
		nodes:    nodes,
		outer:    append([]int(nil), outer...),
		ears:     make([]ear, n),
		count:    n,
	}
	for j := range list.ears {
		list.ears[j].prev = CircularIndex(j-1, n)
		list.ears[j].next = CircularIndex(j+1, n)
	}
	for j := range list.ears {
		list.updatePower(j)
	}
	return list
}

func (l *earList) position(j int) Point {
	return l.m.Nodes[l.nodes[j]].Position
}

func (l *earList) updatePower(j int) {
	a := l.position(l.ears[j].prev)
	b := l.position(j)
	c := l.position(l.ears[j].next)
	power, area2 := earPower(a, b, c, l.deleted, l.minArea2)
	if !math.IsInf(power, 1) && l.containsOtherVertex(j, a, b, c) {
		power = math.Inf(1)
	}
	l.ears[j].power = power
	l.ears[j].area2 = area2
}

// Does any polygon vertex other than the ear's own three lie inside or on it?
// Such an ear would cut across the polygon.
func (l *earList) containsOtherVertex(j int, a, b, c Point) bool {
	prev, next := l.ears[j].prev, l.ears[j].next
	for k := l.ears[next].next; k != prev; k = l.ears[k].next {
		if InTriangle(a, b, c, l.position(k)) >= 0 {
			return true
		}
	}
	return false
}

// Ear with the lowest finite power, or -1. If there is none, the powers may
// be stale from before earlier clips, so they are all recomputed once.
func (l *earList) minPower() int {
	if j := l.scanMin(); j >= 0 {
		return j
	}
	j := l.head
	for i := 0; i < l.count; i++ {
		l.updatePower(j)
		j = l.ears[j].next
	}
	return l.scanMin()
}

func (l *earList) scanMin() int {
	best := -1
	j := l.head
	for i := 0; i < l.count; i++ {
		if !math.IsInf(l.ears[j].power, 1) && (best < 0 || l.ears[j].power < l.ears[best].power) {
			best = j
		}
		j = l.ears[j].next
	}
	return best
}

// Write the ear at j into element e, linking it with whatever lies across its
// two polygon edges. Its third edge becomes the polygon edge which replaces
// them, so e is recorded as what lies across that. For the last triangle the
// third edge is a polygon edge too.
//
// Ear (a, b, c) as an element: slot 0 is across (b, c), slot 1 across (c, a),
// and slot 2 across (a, b).
func (l *earList) commit(j, e int) {
	prev, next := l.ears[j].prev, l.ears[j].next
	closing := NoNeighbor
	if l.count == 3 {
		closing = l.outer[next]
	}
	l.m.resetElement(e, l.nodes[prev], l.nodes[j], l.nodes[next])
	l.m.Elements[e].Neighbors = [3]int{l.outer[j], closing, l.outer[prev]}
	for slot := 0; slot < 3; slot++ {
		l.m.linkBack(e, slot)
	}
	l.outer[prev] = e
}

// Splice the ear at j out of the list, and re-score its neighbors.
func (l *earList) remove(j int) {
	prev, next := l.ears[j].prev, l.ears[j].next
	l.ears[prev].next = next
	l.ears[next].prev = prev
	if l.head == j {
		l.head = next
	}
	l.count--
	l.updatePower(prev)
	l.updatePower(next)
}

// Power of the ear (a, b, c) with respect to the deleted node's position p:
// the in circle determinant of p against the ear, scaled by the ear's area.
// Flat, clockwise and tiny ears (double area under minArea2) get +Inf so they
// are never chosen. Also returns the ear's double area.
func earPower(a, b, c, p Point, minArea2 float64) (power float64, area2 float64) {
	if math.Abs((a.Y-c.Y)*(b.X-a.X)-(a.X-c.X)*(b.Y-a.Y)) < Epsilon {
		return math.Inf(1), 0
	}
	x0y1 := a.X * b.Y
	x0y2 := a.X * c.Y
	x1y0 := b.X * a.Y
	x1y2 := b.X * c.Y
	x2y0 := c.X * a.Y
	x2y1 := c.X * b.Y
	area2 = x0y1 - x0y2 - x1y0 + x1y2 + x2y0 - x2y1
	if area2 < minArea2 {
		return math.Inf(1), area2
	}
	x0yp := a.X * p.Y
	x1yp := b.X * p.Y
	x2yp := c.X * p.Y
	xpy0 := p.X * a.Y
	xpy1 := p.X * b.Y
	xpy2 := p.X * c.Y
	det := (a.X*a.X+a.Y*a.Y)*(x1y2-x1yp-x2y1+x2yp+xpy1-xpy2) -
		(b.X*b.X+b.Y*b.Y)*(x0y2-x0yp-x2y0+x2yp+xpy0-xpy2) +
		(c.X*c.X+c.Y*c.Y)*(x0y1-x0yp-x1y0+x1yp+xpy0-xpy1) -
		(p.X*p.X+p.Y*p.Y)*area2
	return det / area2, area2
}
