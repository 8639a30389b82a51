package mesh

import (
	"fmt"
	"strings"
	"testing"

	"github.com/osuushi/trimesh/dbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	m := boxMesh(t, 0, 4)
	n, err := m.Insert(Point{X: 1, Y: 2}, NodeNone, 0)
	require.NoError(t, err)

	t.Run("node", func(t *testing.T) {
		assert.Equal(t, fmt.Sprintf("N%d(%s)[1, 2]", n, dbg.Name("node", n)), m.Nodes[n].String())
		// Bounding box nodes are cyan
		assert.Contains(t, m.Nodes[0].String(), "\x1b[36m")
		assert.Contains(t, m.Nodes[0].String(), dbg.Name("node", 0))
	})

	t.Run("element", func(t *testing.T) {
		elem := m.Elements[0]
		s := elem.String()
		assert.Contains(t, s, "\x1b[32m")
		assert.Contains(t, s, fmt.Sprintf("<%d %d %d |", elem.Nodes[0], elem.Nodes[1], elem.Nodes[2]))
		for _, nbr := range elem.Neighbors {
			assert.Contains(t, s, dbg.Name("elem", nbr))
		}
	})

	t.Run("zombies", func(t *testing.T) {
		c := m.Clone()
		require.NoError(t, c.Delete(n, 0))
		assert.Contains(t, c.Nodes[n].String(), "\x1b[31m")
	})

	t.Run("mesh", func(t *testing.T) {
		lines := strings.Split(strings.TrimSpace(m.String()), "\n")
		assert.Equal(t, fmt.Sprintf("mesh: 5/5 nodes, %d/%d elements", m.LiveElements(), len(m.Elements)), lines[0])
		assert.Len(t, lines, 1+len(m.Nodes)+len(m.Elements))
	})
}
