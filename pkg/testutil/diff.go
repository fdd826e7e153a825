package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

func diff(exp, act string) string {
	str, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	})
	return str
}

// AssertEqualText compares two multi-line strings and reports a unified
// diff on mismatch, which reads far better than a one-line quote of two
// heredocs.
func AssertEqualText(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	t.Errorf("text differs:\n%s", diff(exp, act))
	return false
}

// AssertEqualDump spew-dumps both values and diffs the dumps.
func AssertEqualDump(t *testing.T, exp, act interface{}) bool {
	t.Helper()
	expStr := spewConfig.Sdump(exp)
	actStr := spewConfig.Sdump(act)
	if expStr == actStr {
		return true
	}
	t.Errorf("values differ:\n%s", diff(expStr, actStr))
	return false
}
