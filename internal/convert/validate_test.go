package convert

import (
	"math"
	"strings"
	"testing"

	"github.com/typist/pylit/internal/ast"
	"github.com/typist/pylit/internal/testutil"
	"github.com/typist/pylit/internal/types"
)

func TestValidateOK(t *testing.T) {
	report := Validate(parseTree(t, "{'a': [1, 2.5], 'b': {True, None}}"), DefaultLimits())
	testutil.True(t, report.Valid, "report should be valid")
	testutil.Equal(t, "", report.Message, "no message")
	testutil.Equal(t, 3, report.MaxDepth, "max depth")
	testutil.Equal(t, 9, report.TotalElements, "total elements")
}

func TestValidateTypeCounts(t *testing.T) {
	report := Validate(parseTree(t, "[1, 2.5, 'x', True, None, (1,), {1}, {'k': 1}]"), DefaultLimits())
	testutil.True(t, report.Valid, "report should be valid")
	testutil.Equal(t, 4, report.TypeCounts["int"], "int count")
	testutil.Equal(t, 1, report.TypeCounts["float"], "float count")
	testutil.Equal(t, 2, report.TypeCounts["string"], "string count")
	testutil.Equal(t, 1, report.TypeCounts["bool"], "bool count")
	testutil.Equal(t, 1, report.TypeCounts["null"], "null count")
	testutil.Equal(t, 1, report.TypeCounts["list"], "list count")
	testutil.Equal(t, 1, report.TypeCounts["tuple"], "tuple count")
	testutil.Equal(t, 1, report.TypeCounts["set"], "set count")
	testutil.Equal(t, 1, report.TypeCounts["mapping"], "mapping count")
}

func TestValidateDepthLimit(t *testing.T) {
	limits := Limits{MaxDepth: 2}
	report := Validate(parseTree(t, "[[1]]"), limits)
	testutil.False(t, report.Valid, "nesting beyond limit")
	testutil.Contains(t, report.Message, "nesting too deep", "message")

	report = Validate(parseTree(t, "[1]"), limits)
	testutil.True(t, report.Valid, "nesting within limit")
}

func TestValidateContainerSize(t *testing.T) {
	report := Validate(parseTree(t, "[1, 2, 3, 4]"), Limits{MaxContainerSize: 3})
	testutil.False(t, report.Valid, "container beyond limit")
	testutil.Contains(t, report.Message, "list too large", "message")

	report = Validate(parseTree(t, "{'a': 1, 'b': 2}"), Limits{MaxContainerSize: 1})
	testutil.False(t, report.Valid, "mapping beyond limit")
	testutil.Contains(t, report.Message, "mapping too large", "message")
}

func TestValidateStringLength(t *testing.T) {
	long := "'" + strings.Repeat("x", 50) + "'"
	report := Validate(parseTree(t, long), Limits{MaxStringLen: 49})
	testutil.False(t, report.Valid, "string beyond limit")
	testutil.Contains(t, report.Message, "string too long", "message")
}

func TestValidateRejectsNonFiniteFloats(t *testing.T) {
	// No literal spells these; a hand-built tree stands in for a
	// hostile caller.
	tree := ast.NewList([]ast.Value{
		ast.NewScalar(math.NaN(), types.NewSpan(0, 0)),
	}, types.NewSpan(0, 0))
	report := Validate(tree, DefaultLimits())
	testutil.False(t, report.Valid, "NaN rejected")
	testutil.Contains(t, report.Message, "invalid numeric value", "message")
}

func TestValidateZeroLimitsAreUnlimited(t *testing.T) {
	report := Validate(parseTree(t, "[[[[[[1]]]]]]"), Limits{})
	testutil.True(t, report.Valid, "zero limits disable checks")
	testutil.Equal(t, 7, report.MaxDepth, "max depth tracked anyway")
}
