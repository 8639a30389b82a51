package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Run("stable within a run", func(t *testing.T) {
		assert.Equal(t, Name("node", 3), Name("node", 3))
	})

	t.Run("kinds are separate", func(t *testing.T) {
		assert.NotEmpty(t, Name("elem", 3))
		assert.NotEmpty(t, Name("node", 3))
	})

	t.Run("empty handle", func(t *testing.T) {
		assert.Equal(t, "Ø", Name("elem", -1))
	})

	t.Run("reset", func(t *testing.T) {
		Name("node", 7)
		Reset()
		assert.Empty(t, memo)
	})
}

func TestDump(t *testing.T) {
	type pair struct {
		A int
		B []string
	}
	v := pair{A: 1, B: []string{"x"}}

	assert.Contains(t, Dump(v), "A: (int) 1")
	assert.Contains(t, Pretty(v), "A:")
	assert.NotContains(t, Dump(&v), "0x")
}
