// Package ast provides the value tree produced by parsing and consumed by
// the converters.
//
// The tree is a closed five-variant union:
//
//	Value (interface)
//	  Scalar:  int64, float64, bool, string, or nil
//	  List:    ordered child sequence, '[...]'
//	  Tuple:   ordered child sequence, '(...)'
//	  Set:     parse-order child sequence, '{...}'
//	  Mapping: ordered key/value pairs, '{k: v}'
//
// Nodes exclusively own their children and are immutable after
// construction: built bottom-up by the parser, handed whole to one
// converter, then discarded. Tuple differs from List only by source
// provenance. Set enforces neither uniqueness nor canonical order.
// Mapping permits duplicate keys; collisions collapse only during
// conversion.
package ast

import (
	"github.com/typist/pylit/internal/types"
)

// Kind discriminates the value tree variants.
type Kind int

const (
	// KindScalar is a leaf value.
	KindScalar Kind = iota
	// KindList is an ordered sequence from bracket syntax.
	KindList
	// KindTuple is an ordered sequence from parenthesis syntax.
	KindTuple
	// KindSet is a parse-order sequence from brace syntax.
	KindSet
	// KindMapping is an ordered key/value pair sequence.
	KindMapping
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindSet:
		return "set"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Visitor is the capability set shared by all converters. Each method
// receives one node and returns that node's converted form. Conversion of
// children is the visitor's own responsibility, one child at a time,
// so recursion depth matches tree depth.
type Visitor interface {
	ConvertScalar(*Scalar) (any, error)
	ConvertList(*List) (any, error)
	ConvertTuple(*Tuple) (any, error)
	ConvertSet(*Set) (any, error)
	ConvertMapping(*Mapping) (any, error)
}

// Value is one node of the tree. Its only behavior is the dispatch hook;
// all semantics live in the visitors.
type Value interface {
	Kind() Kind
	Span() types.Span
	Accept(v Visitor) (any, error)
}

// Scalar is a leaf value. Val is one of int64, float64, bool, string,
// or nil (for None).
type Scalar struct {
	Val  any
	span types.Span
}

// NewScalar creates a scalar leaf.
func NewScalar(val any, span types.Span) *Scalar {
	return &Scalar{Val: val, span: span}
}

func (s *Scalar) Kind() Kind                    { return KindScalar }
func (s *Scalar) Span() types.Span              { return s.span }
func (s *Scalar) Accept(v Visitor) (any, error) { return v.ConvertScalar(s) }

// List is an ordered child sequence, possibly empty.
type List struct {
	Elems []Value
	span  types.Span
}

// NewList creates a list node.
func NewList(elems []Value, span types.Span) *List {
	return &List{Elems: elems, span: span}
}

func (l *List) Kind() Kind                    { return KindList }
func (l *List) Span() types.Span              { return l.span }
func (l *List) Accept(v Visitor) (any, error) { return v.ConvertList(l) }

// Tuple is an ordered child sequence, possibly empty.
type Tuple struct {
	Elems []Value
	span  types.Span
}

// NewTuple creates a tuple node.
func NewTuple(elems []Value, span types.Span) *Tuple {
	return &Tuple{Elems: elems, span: span}
}

func (t *Tuple) Kind() Kind                    { return KindTuple }
func (t *Tuple) Span() types.Span              { return t.span }
func (t *Tuple) Accept(v Visitor) (any, error) { return v.ConvertTuple(t) }

// Set is a parse-order child sequence. No uniqueness, no canonical order.
type Set struct {
	Elems []Value
	span  types.Span
}

// NewSet creates a set node.
func NewSet(elems []Value, span types.Span) *Set {
	return &Set{Elems: elems, span: span}
}

func (s *Set) Kind() Kind                    { return KindSet }
func (s *Set) Span() types.Span              { return s.span }
func (s *Set) Accept(v Visitor) (any, error) { return v.ConvertSet(s) }

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   Value
	Value Value
}

// Mapping is an ordered key/value pair sequence. Duplicate keys are
// permitted at the tree level.
type Mapping struct {
	Entries []Entry
	span    types.Span
}

// NewMapping creates a mapping node.
func NewMapping(entries []Entry, span types.Span) *Mapping {
	return &Mapping{Entries: entries, span: span}
}

func (m *Mapping) Kind() Kind                    { return KindMapping }
func (m *Mapping) Span() types.Span              { return m.span }
func (m *Mapping) Accept(v Visitor) (any, error) { return v.ConvertMapping(m) }
