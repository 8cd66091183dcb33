package convert

import (
	"fmt"
	"math"

	"github.com/typist/pylit/internal/ast"
)

// Limits bounds the resources a value tree may claim. Zero values mean
// unlimited for that dimension.
type Limits struct {
	MaxDepth         int // maximum nesting depth
	MaxContainerSize int // maximum elements per container
	MaxStringLen     int // maximum string scalar length in bytes
}

// DefaultLimits returns the stock resource guard configuration.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:         100,
		MaxContainerSize: 100000,
		MaxStringLen:     10000,
	}
}

// Report summarizes a validation pass.
type Report struct {
	Valid         bool
	Message       string         // first violation, empty when valid
	MaxDepth      int            // deepest nesting reached
	TotalElements int            // nodes visited
	TypeCounts    map[string]int // nodes per variant/scalar type
}

// validator walks a tree enforcing Limits and accumulating statistics.
// It stops at the first violation.
type validator struct {
	limits   Limits
	depth    int
	maxDepth int
	total    int
	counts   map[string]int
}

// Validate checks a value tree against the given limits. Violations are
// reported, not returned as errors: the tree itself is always
// well-formed, validation is a resource guard on top of it.
func Validate(root ast.Value, limits Limits) *Report {
	v := &validator{
		limits: limits,
		counts: make(map[string]int),
	}
	report := &Report{Valid: true}
	if _, err := root.Accept(v); err != nil {
		report.Valid = false
		report.Message = err.Error()
	}
	report.MaxDepth = v.maxDepth
	report.TotalElements = v.total
	report.TypeCounts = v.counts
	return report
}

func (v *validator) enter() error {
	v.depth++
	v.maxDepth = max(v.maxDepth, v.depth)
	if v.limits.MaxDepth > 0 && v.depth > v.limits.MaxDepth {
		return fmt.Errorf("nesting too deep: %d > %d", v.depth, v.limits.MaxDepth)
	}
	return nil
}

func (v *validator) leave() {
	v.depth--
}

func (v *validator) count(name string) {
	v.counts[name]++
	v.total++
}

func (v *validator) ConvertScalar(s *ast.Scalar) (any, error) {
	if err := v.enter(); err != nil {
		return nil, err
	}
	defer v.leave()

	switch val := s.Val.(type) {
	case nil:
		v.count("null")
	case bool:
		v.count("bool")
	case int64:
		v.count("int")
	case float64:
		v.count("float")
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return nil, fmt.Errorf("invalid numeric value: %v", val)
		}
	case string:
		v.count("string")
		if v.limits.MaxStringLen > 0 && len(val) > v.limits.MaxStringLen {
			return nil, fmt.Errorf("string too long: %d bytes", len(val))
		}
	default:
		return nil, fmt.Errorf("unsupported scalar payload %T", s.Val)
	}
	return nil, nil
}

func (v *validator) ConvertList(l *ast.List) (any, error) {
	return v.validateSequence(ast.KindList, l.Elems)
}

func (v *validator) ConvertTuple(t *ast.Tuple) (any, error) {
	return v.validateSequence(ast.KindTuple, t.Elems)
}

func (v *validator) ConvertSet(s *ast.Set) (any, error) {
	return v.validateSequence(ast.KindSet, s.Elems)
}

func (v *validator) ConvertMapping(m *ast.Mapping) (any, error) {
	if err := v.enter(); err != nil {
		return nil, err
	}
	defer v.leave()

	v.count(ast.KindMapping.String())
	if v.limits.MaxContainerSize > 0 && len(m.Entries) > v.limits.MaxContainerSize {
		return nil, fmt.Errorf("mapping too large: %d entries", len(m.Entries))
	}

	for _, entry := range m.Entries {
		if _, err := entry.Key.Accept(v); err != nil {
			return nil, err
		}
		if _, err := entry.Value.Accept(v); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (v *validator) validateSequence(kind ast.Kind, elems []ast.Value) (any, error) {
	if err := v.enter(); err != nil {
		return nil, err
	}
	defer v.leave()

	v.count(kind.String())
	if v.limits.MaxContainerSize > 0 && len(elems) > v.limits.MaxContainerSize {
		return nil, fmt.Errorf("%s too large: %d elements", kind, len(elems))
	}

	for _, elem := range elems {
		if _, err := elem.Accept(v); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
