package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Run("inside", func(t *testing.T) {
		m := triangleMesh(t)
		loc, err := m.Locate(Point{X: 1, Y: 1}, 0)
		require.NoError(t, err)
		assert.Equal(t, Location{Elem: 0, Outcome: Inside}, loc)
	})

	t.Run("far outside", func(t *testing.T) {
		m := triangleMesh(t)
		loc, err := m.Locate(Point{X: 10, Y: 10}, 0)
		require.NoError(t, err)
		assert.Equal(t, Outside, loc.Outcome)
		assert.Equal(t, NoNeighbor, loc.Elem)
		assert.False(t, loc.Exists)
	})

	t.Run("on a node", func(t *testing.T) {
		m := triangleMesh(t)
		loc, err := m.Locate(Point{X: 4, Y: 1e-6}, 0)
		require.NoError(t, err)
		assert.Equal(t, OnNode, loc.Outcome)
		assert.True(t, loc.Exists)
		assert.Equal(t, 1, m.Elements[loc.Elem].Nodes[m.nodeSlotAt(loc.Elem, Point{X: 4, Y: 0})])
	})

	t.Run("start out of range", func(t *testing.T) {
		m := triangleMesh(t)
		_, err := m.Locate(Point{X: 1, Y: 1}, 1)
		assert.Equal(t, InvalidArgument, KindOf(err))
	})

	t.Run("negative start", func(t *testing.T) {
		m := triangleMesh(t)
		loc, err := m.Locate(Point{X: 1, Y: 1}, -5)
		require.NoError(t, err)
		assert.Equal(t, Inside, loc.Outcome)
	})

	t.Run("empty mesh", func(t *testing.T) {
		m := New(DefaultSettings())
		loc, err := m.Locate(Point{X: 1, Y: 1}, 0)
		require.NoError(t, err)
		assert.Equal(t, Outside, loc.Outcome)
	})

	t.Run("zombie start", func(t *testing.T) {
		m := fixtureMesh(t, "scatter")
		require.NoError(t, m.Delete(10, 0))
		zombie := -1
		for e := range m.Elements {
			if m.Elements[e].IsZombie() {
				zombie = e
				break
			}
		}
		require.GreaterOrEqual(t, zombie, 0)
		loc, err := m.Locate(Point{X: 5, Y: 5}, zombie)
		require.NoError(t, err)
		assert.False(t, m.Elements[loc.Elem].IsZombie())
	})

	t.Run("point on a shared edge", func(t *testing.T) {
		for _, strict := range []bool{false, true} {
			m := boxMesh(t, 0, 4)
			m.Settings.StrictLocate = strict
			p := Point{X: 2, Y: 2}
			for start := range m.Elements {
				loc, err := m.Locate(p, start)
				require.NoError(t, err)
				require.Equal(t, Inside, loc.Outcome)
				v := m.ElementPositions(loc.Elem)
				assert.GreaterOrEqual(t, InTriangle(v[0], v[1], v[2], p), 0)
			}
		}
	})
}

// Every point found is in the element it was found in, wherever the search
// starts from.
func TestLocateRandom(t *testing.T) {
	for _, name := range []string{"scatter", "grid", "cluster", "ring"} {
		t.Run(name, func(t *testing.T) {
			m := fixtureMesh(t, name)
			for i, p := range randomPoints(int64(len(name)), 200, 0, 10) {
				loc, err := m.Locate(p, i%len(m.Elements))
				require.NoError(t, err)
				require.NotEqual(t, Outside, loc.Outcome, "point %v", p)
				v := m.ElementPositions(loc.Elem)
				if loc.Outcome == Inside {
					assert.GreaterOrEqual(t, InTriangle(v[0], v[1], v[2], p), 0, "point %v in element %d", p, loc.Elem)
				} else {
					assert.GreaterOrEqual(t, m.nodeSlotAt(loc.Elem, p), 0)
				}
			}

			loc, err := m.Locate(Point{X: -1, Y: 5}, 0)
			require.NoError(t, err)
			assert.Equal(t, Outside, loc.Outcome)
		})
	}
}

func TestLocateForce(t *testing.T) {
	m := fixtureMesh(t, "scatter")
	for _, p := range randomPoints(3, 50, 0.1, 9.9) {
		walked, ok := m.walk(p, 0)
		require.True(t, ok)
		forced := m.force(p)
		assert.Equal(t, forced.Outcome, walked.Outcome)
	}
}
