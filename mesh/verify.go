package mesh

import (
	"fmt"
	"strings"
)

// Bits describing what is wrong with an element
type ErrorSet uint

const (
	ErrNone ErrorSet = 0
	// Element is not counterclockwise, or is too small
	ErrElemCW ErrorSet = 1 << (iota - 1)
	// Element index doesn't match its slot
	ErrElemIndex
	// Element node is out of range, deleted, or repeated
	ErrElemNode
	// Element is an unreclaimed zombie
	ErrElemZombie
	// Displaced element is not counterclockwise
	ErrDElemCW
	// Neighbor index is out of range
	ErrNElemIndex
	// Neighbor doesn't share the edge's nodes
	ErrNElemNode
	// Neighbor doesn't link back
	ErrNElemNotNbr
	// Neighbor is a zombie
	ErrNElemZombie
)

var errorSetNames = []struct {
	bit  ErrorSet
	name string
}{
	{ErrElemCW, "element not CCW"},
	{ErrElemIndex, "element index invalid"},
	{ErrElemNode, "element node invalid"},
	{ErrElemZombie, "element is a zombie"},
	{ErrDElemCW, "displaced element not CCW"},
	{ErrNElemIndex, "neighbor index invalid"},
	{ErrNElemNode, "neighbor node invalid"},
	{ErrNElemNotNbr, "neighbor not a neighbor"},
	{ErrNElemZombie, "neighbor is a zombie"},
}

func (s ErrorSet) String() string {
	if s == ErrNone {
		return "none"
	}
	var names []string
	for _, entry := range errorSetNames {
		if s&entry.bit != 0 {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, ", ")
}

// The first bad element found by Verify
type VerifyError struct {
	Elem   int
	Errors ErrorSet
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("mesh element %d: %s", e.Elem, e.Errors)
}

// One bad element found by VerifyAll
type Fault struct {
	Elem   int
	Errors ErrorSet
}

// Check the mesh, stopping at the first bad element. Zombie elements are
// skipped; they are only wrong if something live refers to them. When
// checkDisplacement is set, displaced elements must also be counterclockwise.
// Returns a *VerifyError. Never modifies the mesh.
func (m *Mesh) Verify(checkDisplacement bool) error {
	for e := range m.Elements {
		if m.Elements[e].IsZombie() {
			continue
		}
		if errs := m.verifyElement(e, checkDisplacement, true); errs != ErrNone {
			return &VerifyError{Elem: e, Errors: errs}
		}
	}
	return nil
}

// Check the whole mesh, collecting every problem with every element.
func (m *Mesh) VerifyAll(checkDisplacement bool) []Fault {
	var faults []Fault
	for e := range m.Elements {
		if m.Elements[e].IsZombie() {
			continue
		}
		if errs := m.verifyElement(e, checkDisplacement, false); errs != ErrNone {
			faults = append(faults, Fault{Elem: e, Errors: errs})
		}
	}
	return faults
}

// Verify one element. When stopEarly is set, checking stops at the first
// problem, so only one bit is set.
func (m *Mesh) verifyElement(e int, checkDisplacement, stopEarly bool) ErrorSet {
	tolSq := m.Settings.toleranceSq()
	elem := &m.Elements[e]
	errs := ErrNone
	fail := func(bit ErrorSet) bool {
		errs |= bit
		return stopEarly
	}

	if elem.IsZombie() && fail(ErrElemZombie) {
		return errs
	}
	if elem.Idx != e && fail(ErrElemIndex) {
		return errs
	}

	nodesOK := true
	var material, displaced [3]Point
	for i, n := range elem.Nodes {
		if n < 0 || n >= len(m.Nodes) || m.Nodes[n].IsZombie() || elem.Nodes[(i+1)%3] == n {
			nodesOK = false
			if fail(ErrElemNode) {
				return errs
			}
			continue
		}
		material[i] = m.Nodes[n].Position
		displaced[i] = material[i].Add(m.Nodes[n].Displacement)
	}
	if nodesOK {
		if checkDisplacement && SignedArea2(displaced[0], displaced[1], displaced[2]) < tolSq && fail(ErrDElemCW) {
			return errs
		}
		if SignedArea2(material[0], material[1], material[2]) < tolSq && fail(ErrElemCW) {
			return errs
		}
	}

	for slot, nbr := range elem.Neighbors {
		if nbr == NoNeighbor {
			continue
		}
		if nbr < 0 || nbr >= len(m.Elements) {
			if fail(ErrNElemIndex) {
				return errs
			}
			continue
		}
		other := &m.Elements[nbr]
		if other.IsZombie() {
			if fail(ErrNElemZombie) {
				return errs
			}
			continue
		}
		a := elem.Nodes[(slot+1)%3]
		b := elem.Nodes[(slot+2)%3]
		// The neighbor runs the edge the other way, so b comes just before a
		j := -1
		for k, n := range other.Nodes {
			if n == a {
				j = k
				break
			}
		}
		if j < 0 || other.Nodes[(j+2)%3] != b {
			if fail(ErrNElemNode) {
				return errs
			}
			continue
		}
		// Edge (b, a) in the neighbor is opposite its remaining node
		if other.Neighbors[(j+1)%3] != e && fail(ErrNElemNotNbr) {
			return errs
		}
	}
	return errs
}
