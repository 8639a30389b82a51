// A dynamic 2D Delaunay triangle mesh for Go.
//
// Nodes can be inserted into and deleted from the mesh at any time, and the
// mesh stays Delaunay throughout. Elements and nodes are addressed by index,
// and indices are stable until the mesh is squeezed.
//
// The mesh package has the engine. This package has the usual way of using it:
// build a mesh over a point set in one call.
package trimesh

import (
	"github.com/osuushi/trimesh/advanced"
	"github.com/osuushi/trimesh/config"
	"github.com/osuushi/trimesh/mesh"
	"github.com/pkg/errors"
)

type Point = mesh.Point
type Mesh = mesh.Mesh
type Node = mesh.Node
type Element = mesh.Element

// Triangulate the points. The mesh is seeded with a bounding box, the points
// are added, the box is removed again, and the result is verified. Nodes keep
// the order of the points, apart from any which were dropped as duplicates or
// for being closer than the configured minimum distance.
func Build(points []Point, cfg config.Config) (result *Mesh, err error) {
	defer func() {
		recoveredErr := mesh.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	flags, err := cfg.NodeFlags()
	if err != nil {
		return nil, err
	}

	m, err := advanced.NewBoundingBox(points, cfg.Build.Margin, cfg.Settings())
	if err != nil {
		return nil, errors.Wrap(err, "seeding mesh")
	}
	if _, err := m.AddPoints(points, cfg.Build.MinDist, flags); err != nil {
		return nil, errors.Wrap(err, "adding points")
	}
	if _, err := advanced.RemoveBoundingBox(m); err != nil {
		return nil, errors.Wrap(err, "removing bounding box")
	}
	if err := m.Verify(false); err != nil {
		return nil, errors.Wrap(err, "verifying mesh")
	}
	return m, nil
}
