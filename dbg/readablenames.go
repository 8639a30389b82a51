package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts mesh handles into random readable names. It flagrantly leaks
// memory but generates the names lazily, so it's not a problem unless you're
// actually using it. "node 412" and "node 421" are easy to mix up in a trace;
// "node BriskOtter" and "node CalmHeron" are not.

type handle struct {
	kind string
	idx  int
}

var memo map[handle]string

func init() {
	memo = make(map[handle]string)
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Readable name for the handle idx of the given kind ("node", "elem"...).
// Negative handles are the empty neighbor.
func Name(kind string, idx int) string {
	if idx < 0 {
		return "Ø"
	}

	key := handle{kind, idx}
	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}

// Forget every name, for example after the handles have been renumbered.
func Reset() {
	memo = make(map[handle]string)
}
