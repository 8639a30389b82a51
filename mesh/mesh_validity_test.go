package mesh

// This contains no actual tests. It is just a helper for testing mesh
// validity.

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// Helper to check that a mesh is valid. The rules are:
// 1. The verifier finds nothing wrong.
// 2. Every live element is counterclockwise with area above tolerance.
// 3. Every live node is used by some live element.
func AssertValidMesh(t *testing.T, m *Mesh) {
	t.Helper()
	require.NoError(t, m.Verify(false))
	require.Empty(t, m.VerifyAll(false))

	used := make([]bool, len(m.Nodes))
	for e := range m.Elements {
		if m.Elements[e].IsZombie() {
			continue
		}
		require.GreaterOrEqual(t, m.elementArea2(e), ToleranceSq, "element %d is too small", e)
		for _, n := range m.Elements[e].Nodes {
			used[n] = true
		}
	}
	for n := range m.Nodes {
		if !m.Nodes[n].IsZombie() {
			require.True(t, used[n], "node %d is not used by any element", n)
		}
	}
}

// Helper to check the Delaunay property: no live node is inside the
// circumcircle of a live element, give or take rounding for cocircular points.
func AssertDelaunay(t *testing.T, m *Mesh) {
	t.Helper()
	for e := range m.Elements {
		elem := &m.Elements[e]
		if elem.IsZombie() {
			continue
		}
		v := m.ElementPositions(e)
		for n := range m.Nodes {
			if m.Nodes[n].IsZombie() || slices.Contains(elem.Nodes[:], n) {
				continue
			}
			margin := circumcircleMargin(v[0], v[1], v[2], m.Nodes[n].Position)
			require.GreaterOrEqual(t, margin, -1e-6, "node %d is inside the circumcircle of element %d", n, e)
		}
	}
}

// The determinant behind InCircumcircle. Negative is inside.
func circumcircleMargin(a, b, c, p Point) float64 {
	x1, y1 := b.X-a.X, b.Y-a.Y
	x2, y2 := c.X-a.X, c.Y-a.Y
	xp, yp := p.X-a.X, p.Y-a.Y
	z1 := x1*x1 + y1*y1
	z2 := x2*x2 + y2*y2
	return (y1*z2-z1*y2)*xp + (x2*z1-x1*z2)*yp + (x1*y2-y1*x2)*(xp*xp+yp*yp)
}

// A live element as the positions of its nodes, rotated so the
// lexicographically smallest comes first. Two meshes with the same geometry
// have the same set of these no matter how they are numbered.
type positionTriple [3]Point

func pointLess(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func triples(m *Mesh) []positionTriple {
	var result []positionTriple
	for e := range m.Elements {
		if m.Elements[e].IsZombie() {
			continue
		}
		v := m.ElementPositions(e)
		first := 0
		for i := 1; i < 3; i++ {
			if pointLess(v[i], v[first]) {
				first = i
			}
		}
		result = append(result, positionTriple{v[first], v[(first+1)%3], v[(first+2)%3]})
	}
	slices.SortFunc(result, func(a, b positionTriple) bool {
		for i := 0; i < 3; i++ {
			if a[i] != b[i] {
				return pointLess(a[i], b[i])
			}
		}
		return false
	})
	return result
}

func AssertSameGeometry(t *testing.T, expected, actual *Mesh) {
	t.Helper()
	if diff := cmp.Diff(triples(expected), triples(actual)); diff != "" {
		t.Fatalf("meshes differ (-expected +actual):\n%s", diff)
	}
}

// Total area of the live elements
func meshArea(m *Mesh) float64 {
	var area2 float64
	for e := range m.Elements {
		if !m.Elements[e].IsZombie() {
			area2 += m.elementArea2(e)
		}
	}
	return area2 / 2
}

// Area of the convex hull of the points, by monotone chain
func hullArea(points []Point) float64 {
	sorted := append([]Point(nil), points...)
	slices.SortFunc(sorted, pointLess)
	if len(sorted) < 3 {
		return 0
	}
	var hull []Point
	half := func(points []Point) {
		start := len(hull)
		for _, p := range points {
			for len(hull)-start >= 2 && SignedArea2(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		// The last point starts the other half
		hull = hull[:len(hull)-1]
	}
	half(sorted)
	reversed := make([]Point, len(sorted))
	for i, p := range sorted {
		reversed[len(sorted)-1-i] = p
	}
	half(reversed)

	var area2 float64
	for i := range hull {
		a, b := hull[i], hull[(i+1)%len(hull)]
		area2 += a.X*b.Y - b.X*a.Y
	}
	return area2 / 2
}
