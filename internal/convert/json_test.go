package convert

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/typist/pylit/internal/ast"
	"github.com/typist/pylit/internal/lexer"
	"github.com/typist/pylit/internal/parser"
	"github.com/typist/pylit/internal/testutil"
	"github.com/typist/pylit/internal/types"
)

// parseTree builds a value tree from source; conversion tests drive the
// real front half of the pipeline rather than hand-built trees.
func parseTree(t *testing.T, source string) ast.Value {
	t.Helper()
	lex := lexer.New([]byte(source), nil)
	tokens, err := lex.Tokenize()
	testutil.NoError(t, err, "tokenize %q", source)
	tree, err := parser.New(tokens, nil, 0).Parse()
	testutil.NoError(t, err, "parse %q", source)
	return tree
}

func toJSON(t *testing.T, source string) string {
	t.Helper()
	out, err := ToJSON(parseTree(t, source), nil)
	testutil.NoError(t, err, "convert %q", source)
	return out
}

func TestJSONScalars(t *testing.T) {
	cases := []struct{ source, want string }{
		{"42", "42"},
		{"-7", "-7"},
		{"3.14", "3.14"},
		{"'hello'", `"hello"`},
		{"True", "true"},
		{"False", "false"},
		{"None", "null"},
	}
	for _, tc := range cases {
		testutil.Equal(t, tc.want, toJSON(t, tc.source), "json for %q", tc.source)
	}
}

func TestJSONFloatKeepsPoint(t *testing.T) {
	testutil.Equal(t, "1.0", toJSON(t, "1.0"), "whole float")
	testutil.Equal(t, "-2.0", toJSON(t, "-2.0"), "negative whole float")
	testutil.Equal(t, "0.5", toJSON(t, "0.5"), "fraction")
}

func TestJSONList(t *testing.T) {
	testutil.Equal(t, "[1,2,3]", toJSON(t, "[1, 2, 3,]"), "list with trailing comma")
	testutil.Equal(t, "[]", toJSON(t, "[]"), "empty list")
}

func TestJSONTupleBecomesArray(t *testing.T) {
	testutil.Equal(t, "[1]", toJSON(t, "(1,)"), "one-tuple")
	testutil.Equal(t, "[1,2]", toJSON(t, "(1, 2)"), "pair")
	testutil.Equal(t, "[]", toJSON(t, "()"), "empty tuple")
}

func TestJSONSetKeepsParseOrder(t *testing.T) {
	testutil.Equal(t, "[3,1,2]", toJSON(t, "{3, 1, 2}"), "set order")
	testutil.Equal(t, "[1,1]", toJSON(t, "{1, 1}"), "set duplicates")
}

func TestJSONMapping(t *testing.T) {
	testutil.Equal(t, `{"a":1,"b":2}`, toJSON(t, "{'a': 1, 'b': 2}"), "mapping")
	testutil.Equal(t, "{}", toJSON(t, "{}"), "empty mapping")
}

func TestJSONMappingKeyStringification(t *testing.T) {
	testutil.Equal(t, `{"1":"one"}`, toJSON(t, "{1: 'one'}"), "integer key")
	testutil.Equal(t, `{"true":1}`, toJSON(t, "{True: 1}"), "boolean key")
	testutil.Equal(t, `{"null":1}`, toJSON(t, "{None: 1}"), "null key")
	testutil.Equal(t, `{"1.5":1}`, toJSON(t, "{1.5: 1}"), "float key")
}

func TestJSONMappingCollisionKeepsFirstPosition(t *testing.T) {
	// Numeric 1 and string '1' stringify identically; the later value
	// wins but the key keeps its first slot.
	out := toJSON(t, "{1: 'a', 'b': 2, '1': 'c'}")
	testutil.Equal(t, `{"1":"c","b":2}`, out, "collision handling")
}

func TestJSONStringEscaping(t *testing.T) {
	testutil.Equal(t, `"a\"b"`, toJSON(t, `'a"b'`), "double quote")
	testutil.Equal(t, `"a\\b"`, toJSON(t, `'a\\b'`), "backslash")
	testutil.Equal(t, `"a\nb\tc"`, toJSON(t, `'a\nb\tc'`), "newline and tab")
	testutil.Equal(t, `"héllo"`, toJSON(t, "'héllo'"), "unicode passthrough")
}

func TestJSONNested(t *testing.T) {
	out := toJSON(t, "{'xs': [1, (2, 3)], 'ys': {4}}")
	testutil.Equal(t, `{"xs":[1,[2,3]],"ys":[4]}`, out, "nested containers")
}

func TestJSONIdempotent(t *testing.T) {
	tree := parseTree(t, "{'a': [1, {2, 3}], 'b': None}")
	first, err := ToJSON(tree, nil)
	testutil.NoError(t, err, "first conversion")
	second, err := ToJSON(tree, nil)
	testutil.NoError(t, err, "second conversion")
	testutil.Equal(t, first, second, "idempotence")
}

func TestConvertersLogCompletionAtDebug(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	tree := parseTree(t, "[1, 2]")

	_, err := ToJSON(tree, logger)
	testutil.NoError(t, err, "json conversion")
	testutil.Contains(t, buf.String(), "json conversion complete", "json milestone")

	buf.Reset()
	_, err = ToNative(tree, logger)
	testutil.NoError(t, err, "native conversion")
	testutil.Contains(t, buf.String(), "native conversion complete", "native milestone")
}

func TestJSONControlCharEscape(t *testing.T) {
	tree := ast.NewScalar("a\x01b", types.NewSpan(0, 0))
	out, err := ToJSON(tree, nil)
	testutil.NoError(t, err, "convert control char")
	testutil.Equal(t, `"a\u0001b"`, out, "control char escape")
}
