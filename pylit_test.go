package pylit_test

import (
	"errors"
	"testing"

	"github.com/typist/pylit"
	"github.com/typist/pylit/internal/testutil"
)

func TestToJSON(t *testing.T) {
	out, err := pylit.ToJSON("{'a': 1, 'b': (2, 3)}")
	testutil.NoError(t, err, "ToJSON")
	testutil.Equal(t, `{"a":1,"b":[2,3]}`, out, "output")
}

func TestToValue(t *testing.T) {
	out, err := pylit.ToValue("[1, 'two', None]")
	testutil.NoError(t, err, "ToValue")
	testutil.DeepEqual(t, []any{int64(1), "two", nil}, out, "output")
}

func TestScanErrorLowered(t *testing.T) {
	_, err := pylit.ToJSON("@nope")
	testutil.Error(t, err, "scan failure")

	var scanErr *pylit.ScanError
	testutil.True(t, errors.As(err, &scanErr), "error should be a *pylit.ScanError")
	testutil.Equal(t, '@', scanErr.Char, "char")
	testutil.Equal(t, 0, scanErr.Offset, "offset")
}

func TestSyntaxErrorLowered(t *testing.T) {
	_, err := pylit.ToValue("[1, 2,")
	testutil.Error(t, err, "syntax failure")

	var synErr *pylit.SyntaxError
	testutil.True(t, errors.As(err, &synErr), "error should be a *pylit.SyntaxError")
	testutil.Equal(t, "']'", synErr.Expected, "expected")
	testutil.Equal(t, "end of input", synErr.Actual, "actual")
	testutil.Equal(t, 6, synErr.Offset, "offset")
}

func TestWithMaxDepth(t *testing.T) {
	_, err := pylit.ToJSON("[[[1]]]", pylit.WithMaxDepth(2))
	testutil.Error(t, err, "nesting beyond limit")
	testutil.True(t, errors.Is(err, pylit.ErrMaxDepth), "sentinel match")

	out, err := pylit.ToJSON("[[[1]]]", pylit.WithMaxDepth(10))
	testutil.NoError(t, err, "nesting within limit")
	testutil.Equal(t, "[[[1]]]", out, "output")
}

func TestCheck(t *testing.T) {
	report, err := pylit.Check("{'a': [1, 2]}", pylit.DefaultLimits())
	testutil.NoError(t, err, "Check")
	testutil.True(t, report.Valid, "valid input")

	report, err = pylit.Check("[[1]]", pylit.Limits{MaxDepth: 2})
	testutil.NoError(t, err, "Check with tight limits")
	testutil.False(t, report.Valid, "violation lands in the report")
}

func TestCheckPipelineErrorStaysAnError(t *testing.T) {
	_, err := pylit.Check("[1,", pylit.DefaultLimits())
	testutil.Error(t, err, "parse failure is an error, not a report")
}
