// Helpers for working with meshes as a whole: seeding one from a point set,
// and cleaning up afterwards.
package advanced

import (
	"github.com/golang/geo/r2"
	"github.com/osuushi/trimesh/mesh"
)

// A mesh of two elements covering the points, padded by margin on every side.
// The corners are nodes 0 to 3 in the order (lo.x, lo.y), (hi.x, lo.y),
// (lo.x, hi.y), (hi.x, hi.y), and are flagged NodeBBox. Every point can then
// be inserted.
func NewBoundingBox(points []mesh.Point, margin float64, settings mesh.Settings) (*mesh.Mesh, error) {
	if len(points) == 0 {
		return nil, mesh.NewError(mesh.InvalidArgument, "bounding box of no points")
	}
	if margin <= 0 {
		return nil, mesh.NewError(mesh.InvalidArgument, "bounding box margin must be positive, got %g", margin)
	}

	rect := r2.RectFromPoints(points...).ExpandedByMargin(margin)
	lo, hi := rect.Lo(), rect.Hi()
	corners := []mesh.Point{
		{X: lo.X, Y: lo.Y},
		{X: hi.X, Y: lo.Y},
		{X: lo.X, Y: hi.Y},
		{X: hi.X, Y: hi.Y},
	}
	m, err := mesh.FromTriangles(corners, [][3]int{{0, 1, 2}, {3, 2, 1}}, settings)
	if err != nil {
		return nil, err
	}
	for i := range m.Nodes {
		m.Nodes[i].Flags = mesh.NodeBBox
	}
	// Room for every point up front
	if err := m.Expand(2*len(points)+2, len(points)+4); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete every bounding box node, then squeeze.
func RemoveBoundingBox(m *mesh.Mesh) (mesh.Remap, error) {
	var corners []int
	for i := range m.Nodes {
		node := &m.Nodes[i]
		if !node.IsZombie() && node.Flags&mesh.NodeBBox != 0 {
			corners = append(corners, i)
		}
	}
	if err := m.DeleteNodes(corners, 0); err != nil {
		return mesh.Remap{}, err
	}
	return m.Squeeze()
}
