package mesh

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/trimesh/dbg"
)

// String methods for debugging. Zombies are red, bounding box nodes are cyan
// and live elements are green.

func (n Node) String() string {
	s := fmt.Sprintf("N%d(%s)[%g, %g]", n.Idx, dbg.Name("node", n.Idx), n.Position.X, n.Position.Y)
	switch {
	case n.IsZombie():
		return aurora.Red(s).String()
	case n.Flags&NodeBBox != 0:
		return aurora.Cyan(s).String()
	}
	return s
}

func (e Element) String() string {
	s := fmt.Sprintf("E%d(%s)<%d %d %d | %s %s %s>",
		e.Idx, dbg.Name("elem", e.Idx),
		e.Nodes[0], e.Nodes[1], e.Nodes[2],
		dbg.Name("elem", e.Neighbors[0]),
		dbg.Name("elem", e.Neighbors[1]),
		dbg.Name("elem", e.Neighbors[2]),
	)
	if e.IsZombie() {
		return aurora.Red(s).String()
	}
	return aurora.Green(s).String()
}

func (m *Mesh) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mesh: %d/%d nodes, %d/%d elements\n", m.LiveNodes(), len(m.Nodes), m.LiveElements(), len(m.Elements))
	for _, n := range m.Nodes {
		b.WriteString("  ")
		b.WriteString(n.String())
		b.WriteByte('\n')
	}
	for _, e := range m.Elements {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
