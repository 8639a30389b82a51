package mesh

import "github.com/golang/geo/r2"

type Point = r2.Point

// Neighbor slots hold this when the edge is on the mesh boundary.
const NoNeighbor = -1

type NodeFlags uint

const (
	NodeNone NodeFlags = 0
	// Node is a corner of the bounding box the mesh was seeded from
	NodeBBox NodeFlags = 1 << (iota - 1)
	NodeBlock
	NodeIDom
	NodePoly
	// Soft deleted. Only Squeeze reclaims the slot.
	NodeZombie
)

type ElemFlags uint

const (
	ElemNone   ElemFlags = 0
	ElemZombie ElemFlags = 1 << (iota - 1)
	ElemRefine
	ElemOutside
)

type Node struct {
	Idx      int
	Flags    NodeFlags
	Position Point
	// Displacement belongs to whoever uses the mesh as a transform. The engine
	// never reads it outside of verification.
	Displacement Point
}

// A triangle of the mesh. Nodes are in counterclockwise order, and
// Neighbors[i] is the element across the edge opposite Nodes[i], which is the
// edge (Nodes[(i+1)%3], Nodes[(i+2)%3]).
type Element struct {
	Idx       int
	Flags     ElemFlags
	Nodes     [3]int
	Neighbors [3]int
	// Scratch space for deformation bookkeeping. Zeroed on creation.
	StrainU [3]float64
	StrainA float64
}

// The mesh is a pair of arenas. Handles are plain indices into them, which
// stay stable until the next Squeeze.
type Mesh struct {
	Nodes    []Node
	Elements []Element
	Settings Settings

	// Optional diagnostics hook, called at interesting points during insertion
	// and deletion.
	Tracef func(format string, args ...interface{})
}

type Settings struct {
	// Distance under which two positions are the same node
	Tolerance float64
	// Treat an oscillating locate walk as a failure and fall back to a linear
	// scan, instead of accepting either element.
	StrictLocate bool
	// Capacity limits, zero means unlimited.
	MaxElements int
	MaxNodes    int
}

func DefaultSettings() Settings {
	return Settings{Tolerance: MeshTolerance}
}

func (s Settings) toleranceSq() float64 {
	if s.Tolerance <= 0 {
		return ToleranceSq
	}
	return s.Tolerance * s.Tolerance
}

func (s Settings) elemAreaTolerance() float64 {
	return ElemAreaTolerance / ToleranceSq * s.toleranceSq()
}

type Outcome int

const (
	Outside Outcome = iota
	Inside
	OnNode
)

func (o Outcome) String() string {
	switch o {
	case Inside:
		return "inside"
	case OnNode:
		return "coincident"
	default:
		return "outside"
	}
}

// Result of a point location. Elem is NoNeighbor when the point is outside.
type Location struct {
	Elem    int
	Exists  bool
	Outcome Outcome
}

// Old to new index tables produced by Squeeze. Dropped slots map to -1.
type Remap struct {
	Nodes    []int
	Elements []int
}

func (n *Node) IsZombie() bool {
	return n.Flags&NodeZombie != 0
}

func (e *Element) IsZombie() bool {
	return e.Flags&ElemZombie != 0
}
