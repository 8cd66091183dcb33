// Package convert provides the visitors that consume a value tree: the
// interchange-format (JSON) converter, the native Go value converter, a
// source-literal emitter, and a resource-guard validator. All of them are
// stateless across calls and recurse one child at a time, so conversion
// depth matches tree depth.
package convert

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/typist/pylit/internal/ast"
	"github.com/typist/pylit/internal/types"
)

// Node is one node of the interchange-format tree built by the JSON
// converter before serialization.
type Node interface {
	encode(dst []byte) []byte
}

// Encode renders a node as compact JSON with no inserted whitespace.
func Encode(n Node) string {
	return string(n.encode(make([]byte, 0, 64)))
}

type nullNode struct{}

func (nullNode) encode(dst []byte) []byte { return append(dst, "null"...) }

type boolNode bool

func (n boolNode) encode(dst []byte) []byte { return strconv.AppendBool(dst, bool(n)) }

type intNode int64

func (n intNode) encode(dst []byte) []byte { return strconv.AppendInt(dst, int64(n), 10) }

type floatNode float64

func (n floatNode) encode(dst []byte) []byte { return appendFloat(dst, float64(n)) }

type stringNode string

func (n stringNode) encode(dst []byte) []byte { return appendQuoted(dst, string(n)) }

type arrayNode []Node

func (n arrayNode) encode(dst []byte) []byte {
	dst = append(dst, '[')
	for i, elem := range n {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = elem.encode(dst)
	}
	return append(dst, ']')
}

type objectField struct {
	key   string
	value Node
}

// objectNode keeps fields in insertion order. A colliding key overwrites
// its value in place, retaining the first insertion position.
type objectNode struct {
	fields []objectField
	index  map[string]int
}

func newObjectNode() *objectNode {
	return &objectNode{index: make(map[string]int)}
}

func (n *objectNode) set(key string, value Node) {
	if i, ok := n.index[key]; ok {
		n.fields[i].value = value
		return
	}
	n.index[key] = len(n.fields)
	n.fields = append(n.fields, objectField{key: key, value: value})
}

func (n *objectNode) encode(dst []byte) []byte {
	dst = append(dst, '{')
	for i, f := range n.fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuoted(dst, f.key)
		dst = append(dst, ':')
		dst = f.value.encode(dst)
	}
	return append(dst, '}')
}

// appendFloat renders a float keeping a decimal point or exponent, so
// float-ness survives the interchange format.
func appendFloat(dst []byte, f float64) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	if !strings.ContainsAny(string(dst[start:]), ".eE") {
		dst = append(dst, '.', '0')
	}
	return dst
}

// appendQuoted writes a JSON string literal. Non-ASCII passes through
// as UTF-8.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"':
			dst = append(dst, '\\', '"')
		case b == '\\':
			dst = append(dst, '\\', '\\')
		case b == '\n':
			dst = append(dst, '\\', 'n')
		case b == '\t':
			dst = append(dst, '\\', 't')
		case b == '\r':
			dst = append(dst, '\\', 'r')
		case b < 0x20:
			dst = append(dst, fmt.Sprintf("\\u%04x", b)...)
		default:
			dst = append(dst, b)
		}
	}
	return append(dst, '"')
}

// jsonConverter builds the interchange node tree.
type jsonConverter struct {
	types.Logger
}

// ToNode converts a value tree into an interchange node tree.
func ToNode(root ast.Value, logger *slog.Logger) (Node, error) {
	c := &jsonConverter{Logger: types.Logger{L: logger}}
	out, err := root.Accept(c)
	if err != nil {
		return nil, err
	}
	c.Log(slog.LevelDebug, "json conversion complete",
		slog.String("root", root.Kind().String()))
	return out.(Node), nil
}

// ToJSON converts a value tree into its compact JSON rendering.
func ToJSON(root ast.Value, logger *slog.Logger) (string, error) {
	node, err := ToNode(root, logger)
	if err != nil {
		return "", err
	}
	return Encode(node), nil
}

func (c *jsonConverter) ConvertScalar(s *ast.Scalar) (any, error) {
	switch v := s.Val.(type) {
	case nil:
		return nullNode{}, nil
	case bool:
		return boolNode(v), nil
	case int64:
		return intNode(v), nil
	case float64:
		return floatNode(v), nil
	case string:
		return stringNode(v), nil
	default:
		return nil, fmt.Errorf("unsupported scalar payload %T", s.Val)
	}
}

func (c *jsonConverter) ConvertList(l *ast.List) (any, error) {
	return c.convertSequence(l.Elems)
}

// ConvertTuple renders tuples as arrays; the interchange format does not
// distinguish them from lists.
func (c *jsonConverter) ConvertTuple(t *ast.Tuple) (any, error) {
	return c.convertSequence(t.Elems)
}

// ConvertSet renders sets as arrays in parse order, neither sorted nor
// deduplicated.
func (c *jsonConverter) ConvertSet(s *ast.Set) (any, error) {
	return c.convertSequence(s.Elems)
}

func (c *jsonConverter) convertSequence(elems []ast.Value) (any, error) {
	arr := make(arrayNode, 0, len(elems))
	for _, elem := range elems {
		out, err := elem.Accept(c)
		if err != nil {
			return nil, err
		}
		arr = append(arr, out.(Node))
	}
	return arr, nil
}

// ConvertMapping renders a mapping as an object. Keys are the converted
// key node as text: string scalars verbatim, everything else its compact
// JSON. The target format has no duplicate-key concept, so colliding
// textual keys overwrite in insertion order.
func (c *jsonConverter) ConvertMapping(m *ast.Mapping) (any, error) {
	obj := newObjectNode()
	for _, entry := range m.Entries {
		keyOut, err := entry.Key.Accept(c)
		if err != nil {
			return nil, err
		}
		valOut, err := entry.Value.Accept(c)
		if err != nil {
			return nil, err
		}
		obj.set(nodeKey(keyOut.(Node)), valOut.(Node))
	}
	return obj, nil
}

// nodeKey stringifies a converted key node.
func nodeKey(n Node) string {
	if s, ok := n.(stringNode); ok {
		return string(s)
	}
	return Encode(n)
}

// keyString stringifies a key value the way the object renderer does.
// Both converters share it so their outputs stay equivalent.
func keyString(key ast.Value, c *jsonConverter) (string, error) {
	out, err := key.Accept(c)
	if err != nil {
		return "", err
	}
	return nodeKey(out.(Node)), nil
}
