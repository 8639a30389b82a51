package mesh

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	corrupt := func(t *testing.T, mutate func(m *Mesh)) (*Mesh, *VerifyError) {
		m := boxMesh(t, 0, 4)
		_, err := m.Insert(Point{X: 1, Y: 2}, NodeNone, 0)
		require.NoError(t, err)
		require.NoError(t, m.Verify(true))
		mutate(m)
		err = m.Verify(false)
		require.Error(t, err)
		var verifyError *VerifyError
		require.True(t, errors.As(err, &verifyError))
		assert.Equal(t, Consistency, KindOf(err))
		return m, verifyError
	}

	t.Run("valid", func(t *testing.T) {
		m := fixtureMesh(t, "scatter")
		assert.NoError(t, m.Verify(false))
		assert.NoError(t, m.Verify(true))
		assert.Empty(t, m.VerifyAll(true))
	})

	t.Run("wrong index", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			m.Elements[2].Idx = 7
		})
		assert.Equal(t, &VerifyError{Elem: 2, Errors: ErrElemIndex}, err)
	})

	t.Run("clockwise element", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			nodes := &m.Elements[0].Nodes
			nodes[1], nodes[2] = nodes[2], nodes[1]
		})
		assert.Equal(t, 0, err.Elem)
		assert.Equal(t, ErrElemCW, err.Errors)
	})

	t.Run("node out of range", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			// Not on the edge element 0 shares with it
			m.Elements[1].Nodes[2] = 99
		})
		assert.Equal(t, &VerifyError{Elem: 1, Errors: ErrElemNode}, err)
	})

	t.Run("repeated node", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			m.Elements[1].Nodes[2] = m.Elements[1].Nodes[1]
		})
		assert.Equal(t, &VerifyError{Elem: 1, Errors: ErrElemNode}, err)
	})

	t.Run("deleted node", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			m.Nodes[m.Elements[3].Nodes[0]].Flags |= NodeZombie
		})
		assert.Equal(t, ErrElemNode, err.Errors)
	})

	t.Run("neighbor out of range", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			m.Elements[0].Neighbors[0] = 42
		})
		assert.Equal(t, &VerifyError{Elem: 0, Errors: ErrNElemIndex}, err)
	})

	t.Run("zombie neighbor", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			m.Elements[0].Flags |= ElemZombie
		})
		assert.Equal(t, ErrNElemZombie, err.Errors)
	})

	t.Run("neighbor doesn't link back", func(t *testing.T) {
		m, err := corrupt(t, func(m *Mesh) {
			for slot, nbr := range m.Elements[0].Neighbors {
				if nbr != NoNeighbor {
					back := m.nbrSlot(nbr, m.Elements[0].Nodes[(slot+1)%3], m.Elements[0].Nodes[(slot+2)%3])
					m.Elements[nbr].Neighbors[back] = NoNeighbor
					return
				}
			}
		})
		assert.Equal(t, ErrNElemNotNbr, err.Errors)
		assert.Equal(t, 0, err.Elem)
		assert.Len(t, m.VerifyAll(false), 1)
	})

	t.Run("neighbor doesn't share the edge", func(t *testing.T) {
		_, err := corrupt(t, func(m *Mesh) {
			// Point every link of element 0 at an element which isn't adjacent
			for slot, nbr := range m.Elements[0].Neighbors {
				if nbr != NoNeighbor {
					for e := range m.Elements {
						if e != 0 && m.nbrSlot(e, m.Elements[0].Nodes[(slot+1)%3], m.Elements[0].Nodes[(slot+2)%3]) < 0 {
							m.Elements[0].Neighbors[slot] = e
							return
						}
					}
				}
			}
		})
		assert.Equal(t, ErrNElemNode, err.Errors)
	})

	t.Run("displaced element turned over", func(t *testing.T) {
		m := triangleMesh(t)
		m.Nodes[0].Displacement = Point{X: 10, Y: 10}
		assert.NoError(t, m.Verify(false))
		err := m.Verify(true)
		assert.Equal(t, &VerifyError{Elem: 0, Errors: ErrDElemCW}, err)
	})
}

func TestVerifyAll(t *testing.T) {
	m := boxMesh(t, 0, 4)
	m.Elements[0].Idx = 5
	m.Elements[0].Neighbors[1] = 9
	m.Nodes[0].Displacement = Point{X: 10, Y: 10}

	faults := m.VerifyAll(true)
	require.Len(t, faults, 1)
	assert.Equal(t, 0, faults[0].Elem)
	assert.Equal(t, ErrElemIndex|ErrNElemIndex|ErrDElemCW, faults[0].Errors)

	// Stopping early reports one problem
	err := m.Verify(true)
	assert.Equal(t, &VerifyError{Elem: 0, Errors: ErrElemIndex}, err)
}

func TestErrorSetString(t *testing.T) {
	assert.Equal(t, "none", ErrNone.String())
	assert.Equal(t, "element not CCW", ErrElemCW.String())
	assert.Equal(t, "element index invalid, neighbor is a zombie", (ErrElemIndex | ErrNElemZombie).String())
	assert.EqualError(t, &VerifyError{Elem: 3, Errors: ErrNElemNotNbr}, "mesh element 3: neighbor not a neighbor")
}
