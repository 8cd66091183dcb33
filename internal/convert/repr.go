package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/typist/pylit/internal/ast"
)

// ErrEmptySet is returned by Repr: an empty set has no literal spelling
// in the dialect ('{}' is an empty mapping by convention).
var ErrEmptySet = errors.New("empty set has no literal form")

// reprEmitter renders a value tree back into dialect source text. Parsing
// its output reproduces the tree, up to the empty-set restriction above.
type reprEmitter struct{}

// Repr emits the source-literal form of a value tree.
func Repr(root ast.Value) (string, error) {
	out, err := root.Accept(&reprEmitter{})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (e *reprEmitter) ConvertScalar(s *ast.Scalar) (any, error) {
	switch v := s.Val.(type) {
	case nil:
		return "None", nil
	case bool:
		if v {
			return "True", nil
		}
		return "False", nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return string(appendFloat(nil, v)), nil
	case string:
		return quoteSingle(v), nil
	default:
		return nil, fmt.Errorf("unsupported scalar payload %T", s.Val)
	}
}

func (e *reprEmitter) ConvertList(l *ast.List) (any, error) {
	inner, err := e.join(l.Elems)
	if err != nil {
		return nil, err
	}
	return "[" + inner + "]", nil
}

func (e *reprEmitter) ConvertTuple(t *ast.Tuple) (any, error) {
	inner, err := e.join(t.Elems)
	if err != nil {
		return nil, err
	}
	// One-element tuples keep the trailing comma, Python style.
	if len(t.Elems) == 1 {
		return "(" + inner + ",)", nil
	}
	return "(" + inner + ")", nil
}

func (e *reprEmitter) ConvertSet(s *ast.Set) (any, error) {
	if len(s.Elems) == 0 {
		return nil, ErrEmptySet
	}
	inner, err := e.join(s.Elems)
	if err != nil {
		return nil, err
	}
	return "{" + inner + "}", nil
}

func (e *reprEmitter) ConvertMapping(m *ast.Mapping) (any, error) {
	parts := make([]string, 0, len(m.Entries))
	for _, entry := range m.Entries {
		key, err := entry.Key.Accept(e)
		if err != nil {
			return nil, err
		}
		val, err := entry.Value.Accept(e)
		if err != nil {
			return nil, err
		}
		parts = append(parts, key.(string)+": "+val.(string))
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (e *reprEmitter) join(elems []ast.Value) (string, error) {
	parts := make([]string, 0, len(elems))
	for _, elem := range elems {
		out, err := elem.Accept(e)
		if err != nil {
			return "", err
		}
		parts = append(parts, out.(string))
	}
	return strings.Join(parts, ", "), nil
}

// quoteSingle renders a single-quoted string literal with the scanner's
// escape set.
func quoteSingle(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(b)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
