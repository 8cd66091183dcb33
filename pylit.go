// Package pylit parses a restricted Python object-literal dialect into
// either a compact JSON string or a native Go value tree.
//
// The dialect covers numbers, strings, booleans, None, and four container
// forms (lists, dicts, tuples, sets), arbitrarily nested. The pipeline is
// scanner -> parser -> converter, strictly downstream; nothing is shared
// between calls, so concurrent calls are safe.
package pylit

import (
	"log/slog"

	"github.com/typist/pylit/internal/ast"
	"github.com/typist/pylit/internal/convert"
	"github.com/typist/pylit/internal/lexer"
	"github.com/typist/pylit/internal/parser"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-token and per-node logging.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Limits bounds the resources a parsed tree may claim; see Check.
type Limits = convert.Limits

// Report summarizes a Check pass.
type Report = convert.Report

// DefaultLimits returns the stock resource guard configuration.
func DefaultLimits() Limits {
	return convert.DefaultLimits()
}

// Option configures ToJSON, ToValue, and Check.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	maxDepth int
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMaxDepth bounds input nesting depth during parsing. By default
// nesting is unlimited and recursion depth equals nesting depth, which
// leaves adversarially deep input bounded only by stack capacity.
// Exceeding the limit fails the call with an error matching ErrMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// ToJSON parses source and returns its compact JSON rendering: no
// inserted whitespace, keys and string values quoted, booleans and null
// spelled per JSON. Lists, tuples, and sets all become arrays; mapping
// keys are stringified.
//
// Example:
//
//	out, err := pylit.ToJSON("{'a': 1, 'b': (2, 3)}")
//	// out == `{"a":1,"b":[2,3]}`
func ToJSON(source string, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	tree, err := parseTree(source, cfg)
	if err != nil {
		return "", err
	}
	return convert.ToJSON(tree, componentLogger(cfg.logger, "convert"))
}

// ToValue parses source and returns native Go values: nil, bool, int64,
// float64, string, []any for the three sequence forms, and
// map[string]any with textual keys for mappings.
func ToValue(source string, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	tree, err := parseTree(source, cfg)
	if err != nil {
		return nil, err
	}
	return convert.ToNative(tree, componentLogger(cfg.logger, "convert"))
}

// Check parses source and runs the resource-guard validator over the
// tree. The error reports pipeline failures; limit violations land in
// the report instead.
func Check(source string, limits Limits, opts ...Option) (*Report, error) {
	cfg := newConfig(opts)
	tree, err := parseTree(source, cfg)
	if err != nil {
		return nil, err
	}
	return convert.Validate(tree, limits), nil
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// parseTree runs the scanner and parser, lowering internal errors into
// the public error types.
func parseTree(source string, cfg config) (ast.Value, error) {
	lex := lexer.New([]byte(source), componentLogger(cfg.logger, "lexer"))
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, lowerError(err)
	}

	p := parser.New(tokens, componentLogger(cfg.logger, "parser"), cfg.maxDepth)
	tree, err := p.Parse()
	if err != nil {
		return nil, lowerError(err)
	}
	return tree, nil
}
