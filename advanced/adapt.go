package advanced

import (
	"github.com/osuushi/trimesh/mesh"
	"github.com/pkg/errors"
)

// A compact copy of the mesh, with no zombies.
func Copy(m *mesh.Mesh) (*mesh.Mesh, error) {
	out := m.Clone()
	if _, err := out.Squeeze(); err != nil {
		return nil, err
	}
	return out, nil
}

// A copy of the mesh without small elements. Any element whose area, material
// or displaced, is under minArea loses the node opposite its longest displaced
// edge, and this repeats until there are no small elements left. Bounding box
// nodes are never removed. The result is squeezed.
func Adapt(m *mesh.Mesh, minArea float64) (*mesh.Mesh, error) {
	if minArea < mesh.ElemAreaTolerance {
		minArea = mesh.ElemAreaTolerance
	}
	out := m.Clone()
	for pass := len(out.Nodes); pass > 0; pass-- {
		victims := smallElementNodes(out, 2*minArea)
		if len(victims) == 0 {
			break
		}
		if err := out.DeleteNodes(victims, 0); err != nil {
			return nil, errors.Wrap(err, "adapting mesh")
		}
	}
	if _, err := out.Squeeze(); err != nil {
		return nil, err
	}
	return out, nil
}

// For every live element with a double area under minArea2, the node to remove
func smallElementNodes(m *mesh.Mesh, minArea2 float64) []int {
	var victims []int
	for e := range m.Elements {
		elem := &m.Elements[e]
		if elem.IsZombie() {
			continue
		}
		var material, displaced [3]mesh.Point
		for i, n := range elem.Nodes {
			material[i] = m.Nodes[n].Position
			displaced[i] = material[i].Add(m.Nodes[n].Displacement)
		}
		if mesh.SignedArea2(material[0], material[1], material[2]) >= minArea2 &&
			mesh.SignedArea2(displaced[0], displaced[1], displaced[2]) >= minArea2 {
			continue
		}

		// Edge i is opposite node i
		longest, length := 0, -1.0
		for i := 0; i < 3; i++ {
			edge := displaced[(i+2)%3].Sub(displaced[(i+1)%3])
			if l := edge.Dot(edge); l > length {
				longest, length = i, l
			}
		}
		n := elem.Nodes[longest]
		if m.Nodes[n].Flags&mesh.NodeBBox == 0 {
			victims = append(victims, n)
		}
	}
	return victims
}
