package dbg

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/kr/pretty"
)

// Sorted keys and no pointer addresses, so dumps of the same value diff cleanly
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Deep dump of v, with types
func Dump(v interface{}) string {
	return dumpConfig.Sdump(v)
}

// Go syntax rendering of v, more compact than Dump
func Pretty(v interface{}) string {
	return pretty.Sprint(v)
}

