package convert

import (
	"fmt"
	"log/slog"

	"github.com/typist/pylit/internal/ast"
	"github.com/typist/pylit/internal/types"
)

// nativeConverter maps a value tree directly into Go values, skipping the
// interchange node tree. For every representable value the result equals
// what unmarshalling the JSON converter's output would produce, except
// that integers stay int64.
type nativeConverter struct {
	keys *jsonConverter
	types.Logger
}

// ToNative converts a value tree into native Go values: nil, bool, int64,
// float64, string, []any, and map[string]any.
func ToNative(root ast.Value, logger *slog.Logger) (any, error) {
	c := &nativeConverter{
		keys:   &jsonConverter{},
		Logger: types.Logger{L: logger},
	}
	out, err := root.Accept(c)
	if err != nil {
		return nil, err
	}
	c.Log(slog.LevelDebug, "native conversion complete",
		slog.String("root", root.Kind().String()))
	return out, nil
}

func (c *nativeConverter) ConvertScalar(s *ast.Scalar) (any, error) {
	switch s.Val.(type) {
	case nil, bool, int64, float64, string:
		return s.Val, nil
	default:
		return nil, fmt.Errorf("unsupported scalar payload %T", s.Val)
	}
}

func (c *nativeConverter) ConvertList(l *ast.List) (any, error) {
	return c.convertSequence(l.Elems)
}

func (c *nativeConverter) ConvertTuple(t *ast.Tuple) (any, error) {
	return c.convertSequence(t.Elems)
}

func (c *nativeConverter) ConvertSet(s *ast.Set) (any, error) {
	return c.convertSequence(s.Elems)
}

func (c *nativeConverter) convertSequence(elems []ast.Value) (any, error) {
	out := make([]any, 0, len(elems))
	for _, elem := range elems {
		v, err := elem.Accept(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ConvertMapping produces map[string]any with textual keys. Colliding
// keys collapse last-write-wins, silently.
func (c *nativeConverter) ConvertMapping(m *ast.Mapping) (any, error) {
	out := make(map[string]any, len(m.Entries))
	for _, entry := range m.Entries {
		key, err := keyString(entry.Key, c.keys)
		if err != nil {
			return nil, err
		}
		val, err := entry.Value.Accept(c)
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}
