package mesh

// Capacity never drops below this once the mesh has grown at all
const minCapacity = 64

func New(settings Settings) *Mesh {
	return &Mesh{Settings: settings}
}

type edgeKey struct {
	a, b int
}

// Build a mesh from a node list and a list of counterclockwise triangles over
// it. Neighbors are found by matching edges, so the triangles must form a
// manifold: every edge is used once in each direction at most.
func FromTriangles(points []Point, triangles [][3]int, settings Settings) (result *Mesh, err error) {
	defer recoverInto(&err)
	m := New(settings)
	m.reserve(len(triangles), len(points))
	for _, p := range points {
		m.newNode(p, NodeNone)
	}

	// Map each directed edge to the element and slot which owns it
	owners := make(map[edgeKey][2]int, len(triangles)*3)
	for _, tri := range triangles {
		for _, n := range tri {
			if n < 0 || n >= len(points) {
				fatalf(InvalidArgument, "triangle %v references node %d of %d", tri, n, len(points))
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			fatalf(InvalidArgument, "triangle %v repeats a node", tri)
		}
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		if SignedArea2(a, b, c) < m.Settings.toleranceSq() {
			fatalf(InvalidArgument, "triangle %v is clockwise or degenerate", tri)
		}
		e := m.newElement(tri[0], tri[1], tri[2])
		for slot := 0; slot < 3; slot++ {
			key := edgeKey{tri[(slot+1)%3], tri[(slot+2)%3]}
			if _, ok := owners[key]; ok {
				fatalf(InvalidArgument, "edge %d-%d is used by more than one triangle in the same direction", key.a, key.b)
			}
			owners[key] = [2]int{e, slot}
		}
	}

	for key, owner := range owners {
		if twin, ok := owners[edgeKey{key.b, key.a}]; ok {
			m.Elements[owner[0]].Neighbors[owner[1]] = twin[0]
		}
	}
	return m, nil
}

// Make sure there is room for at least minElements elements and minNodes
// nodes. Capacity doubles from a floor, and never shrinks. Growth is the only
// allocation the engine does, and it happens before any operation touches the
// topology.
func (m *Mesh) Expand(minElements, minNodes int) (err error) {
	defer recoverInto(&err)
	m.reserve(minElements, minNodes)
	return nil
}

func (m *Mesh) reserve(minElements, minNodes int) {
	if minElements < 0 || minNodes < 0 {
		fatalf(InvalidArgument, "negative capacity request (%d elements, %d nodes)", minElements, minNodes)
	}
	if limit := m.Settings.MaxElements; limit > 0 && minElements > limit {
		fatalf(Resource, "%d elements requested, limit is %d", minElements, limit)
	}
	if limit := m.Settings.MaxNodes; limit > 0 && minNodes > limit {
		fatalf(Resource, "%d nodes requested, limit is %d", minNodes, limit)
	}

	if c := cap(m.Elements); c < minElements {
		c = grownCapacity(c, minElements)
		elements := make([]Element, len(m.Elements), c)
		copy(elements, m.Elements)
		m.Elements = elements
	}
	if c := cap(m.Nodes); c < minNodes {
		c = grownCapacity(c, minNodes)
		nodes := make([]Node, len(m.Nodes), c)
		copy(nodes, m.Nodes)
		m.Nodes = nodes
	}
}

func grownCapacity(current, required int) int {
	for current < required {
		if current < minCapacity {
			current = minCapacity
		}
		current *= 2
	}
	return current
}

// Remove all zombie nodes and elements, renumbering everything that survives.
// Any handle held from before the squeeze is meaningless afterwards; use the
// returned tables to translate.
func (m *Mesh) Squeeze() (remap Remap, err error) {
	defer recoverInto(&err)
	nNodes := len(m.Nodes)
	nElements := len(m.Elements)

	remap.Nodes = make([]int, nNodes)
	liveNodes := 0
	for i := range m.Nodes {
		if m.Nodes[i].IsZombie() {
			remap.Nodes[i] = -1
			continue
		}
		remap.Nodes[i] = liveNodes
		liveNodes++
	}
	remap.Elements = make([]int, nElements)
	liveElements := 0
	for i := range m.Elements {
		if m.Elements[i].IsZombie() {
			remap.Elements[i] = -1
			continue
		}
		remap.Elements[i] = liveElements
		liveElements++
	}

	// Check everything before moving anything, so a corrupt mesh is left as it
	// was found.
	for i := range m.Elements {
		elem := &m.Elements[i]
		if elem.IsZombie() {
			continue
		}
		for _, n := range elem.Nodes {
			if n < 0 || n >= nNodes || remap.Nodes[n] < 0 {
				fatalf(Numerical, "element %d references node %d which is out of bounds or deleted", i, n)
			}
		}
		for _, nbr := range elem.Neighbors {
			if nbr == NoNeighbor {
				continue
			}
			if nbr < 0 || nbr >= nElements || remap.Elements[nbr] < 0 {
				fatalf(Numerical, "element %d has neighbor %d which is out of bounds or deleted", i, nbr)
			}
		}
	}

	for i := range m.Nodes {
		if to := remap.Nodes[i]; to >= 0 {
			m.Nodes[to] = m.Nodes[i]
			m.Nodes[to].Idx = to
		}
	}
	m.Nodes = m.Nodes[:liveNodes]

	for i := range m.Elements {
		to := remap.Elements[i]
		if to < 0 {
			continue
		}
		elem := m.Elements[i]
		elem.Idx = to
		for j, n := range elem.Nodes {
			elem.Nodes[j] = remap.Nodes[n]
		}
		for j, nbr := range elem.Neighbors {
			if nbr != NoNeighbor {
				elem.Neighbors[j] = remap.Elements[nbr]
			}
		}
		m.Elements[to] = elem
	}
	m.Elements = m.Elements[:liveElements]
	return remap, nil
}

func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Nodes:    make([]Node, len(m.Nodes), cap(m.Nodes)),
		Elements: make([]Element, len(m.Elements), cap(m.Elements)),
		Settings: m.Settings,
		Tracef:   m.Tracef,
	}
	copy(clone.Nodes, m.Nodes)
	copy(clone.Elements, m.Elements)
	return clone
}

func (m *Mesh) LiveNodes() int {
	count := 0
	for i := range m.Nodes {
		if !m.Nodes[i].IsZombie() {
			count++
		}
	}
	return count
}

func (m *Mesh) LiveElements() int {
	count := 0
	for i := range m.Elements {
		if !m.Elements[i].IsZombie() {
			count++
		}
	}
	return count
}

// Positions of the three nodes of an element
func (m *Mesh) ElementPositions(e int) [3]Point {
	elem := &m.Elements[e]
	return [3]Point{
		m.Nodes[elem.Nodes[0]].Position,
		m.Nodes[elem.Nodes[1]].Position,
		m.Nodes[elem.Nodes[2]].Position,
	}
}

func (m *Mesh) elementArea2(e int) float64 {
	v := m.ElementPositions(e)
	return SignedArea2(v[0], v[1], v[2])
}

// Append a node. The caller must have reserved room for it.
func (m *Mesh) newNode(p Point, flags NodeFlags) int {
	idx := len(m.Nodes)
	if idx >= cap(m.Nodes) {
		fatalf(Resource, "node capacity %d exhausted", cap(m.Nodes))
	}
	m.Nodes = append(m.Nodes, Node{Idx: idx, Flags: flags, Position: p})
	return idx
}

// Append an unlinked element. The caller must have reserved room for it.
func (m *Mesh) newElement(n0, n1, n2 int) int {
	idx := len(m.Elements)
	if idx >= cap(m.Elements) {
		fatalf(Resource, "element capacity %d exhausted", cap(m.Elements))
	}
	m.Elements = append(m.Elements, Element{
		Idx:       idx,
		Nodes:     [3]int{n0, n1, n2},
		Neighbors: [3]int{NoNeighbor, NoNeighbor, NoNeighbor},
	})
	return idx
}

// Overwrite a slot with a fresh, unlinked, live element.
func (m *Mesh) resetElement(e int, n0, n1, n2 int) {
	m.Elements[e] = Element{
		Idx:       e,
		Nodes:     [3]int{n0, n1, n2},
		Neighbors: [3]int{NoNeighbor, NoNeighbor, NoNeighbor},
	}
}

// Local index of node n within element e, or -1.
func (m *Mesh) nodeSlot(e, n int) int {
	for i, id := range m.Elements[e].Nodes {
		if id == n {
			return i
		}
	}
	return -1
}

// Neighbor slot of the edge between nodes a and b in element e, in either
// direction, or -1 if e has no such edge.
func (m *Mesh) nbrSlot(e, a, b int) int {
	nodes := &m.Elements[e].Nodes
	for i := 0; i < 3; i++ {
		n1, n2 := nodes[(i+1)%3], nodes[(i+2)%3]
		if (n1 == a && n2 == b) || (n1 == b && n2 == a) {
			return i
		}
	}
	return -1
}

// Point the neighbor across slot of e back at e. The neighbor's slot is found
// from the shared edge.
func (m *Mesh) linkBack(e, slot int) {
	nbr := m.Elements[e].Neighbors[slot]
	if nbr == NoNeighbor {
		return
	}
	nodes := &m.Elements[e].Nodes
	backSlot := m.nbrSlot(nbr, nodes[(slot+1)%3], nodes[(slot+2)%3])
	if backSlot < 0 {
		fatalf(Numerical, "element %d does not share an edge with its neighbor %d", e, nbr)
	}
	m.Elements[nbr].Neighbors[backSlot] = e
}

// Clear every link pointing at e from its neighbors, and e's own links.
func (m *Mesh) unlink(e int) {
	elem := &m.Elements[e]
	for slot, nbr := range elem.Neighbors {
		if nbr == NoNeighbor {
			continue
		}
		for i, back := range m.Elements[nbr].Neighbors {
			if back == e {
				m.Elements[nbr].Neighbors[i] = NoNeighbor
				break
			}
		}
		elem.Neighbors[slot] = NoNeighbor
	}
}

func (m *Mesh) tracef(format string, args ...interface{}) {
	if m.Tracef != nil {
		m.Tracef(format, args...)
	}
}

// Element and node handle checks, done before anything is mutated.
func (m *Mesh) checkElement(e int) {
	if e < 0 || e >= len(m.Elements) {
		fatalf(InvalidArgument, "element %d out of range [0, %d)", e, len(m.Elements))
	}
}

func (m *Mesh) checkNode(n int) {
	if n < 0 || n >= len(m.Nodes) {
		fatalf(InvalidArgument, "node %d out of range [0, %d)", n, len(m.Nodes))
	}
	if m.Nodes[n].IsZombie() {
		fatalf(InvalidArgument, "node %d has been deleted", n)
	}
}
