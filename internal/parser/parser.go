// Package parser provides recursive-descent parsing of a token stream
// into a value tree.
//
// The grammar is LL(1) except at '{', where the parser reads one complete
// sub-value and then inspects the following token: ':' commits to a
// mapping, anything else to a set. An immediate '}' commits to an empty
// mapping by convention. Trailing commas are accepted in all four
// container forms.
//
// The first expected/actual token mismatch aborts parsing with a
// *SyntaxError; there is no recovery and no partial result. No state
// outlives the call stack, so recursion depth equals input nesting depth.
package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/typist/pylit/internal/ast"
	"github.com/typist/pylit/internal/lexer"
	"github.com/typist/pylit/internal/types"
)

// SyntaxError reports a token-kind mismatch against a grammar expectation.
type SyntaxError struct {
	Expected string
	Actual   string
	Offset   int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: expected %s, got %s at offset %d",
		e.Expected, e.Actual, e.Offset)
}

// ErrMaxDepth is returned (wrapped) when input nesting exceeds the
// configured limit.
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

// Parser converts a token stream into a value tree.
type Parser struct {
	tokens   []lexer.Token
	pos      int
	depth    int
	maxDepth int
	eofToken lexer.Token
	types.Logger
}

// New returns a Parser over the given token stream. Pass nil for logger
// to disable logging. maxDepth bounds input nesting; 0 disables the
// check, leaving recursion bounded only by stack capacity.
func New(tokens []lexer.Token, logger *slog.Logger, maxDepth int) *Parser {
	var eofSpan types.Span
	if n := len(tokens); n > 0 {
		eofSpan = tokens[n-1].Span
	}
	p := &Parser{
		tokens:   tokens,
		maxDepth: maxDepth,
		eofToken: lexer.NewToken(lexer.TokEOF, nil, eofSpan),
		Logger:   types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("tokens", len(tokens)))
	return p
}

// Parse parses one value and requires the stream to end there.
func (p *Parser) Parse() (ast.Value, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokEOF); err != nil {
		return nil, err
	}
	p.Log(slog.LevelDebug, "parse complete", slog.String("root", v.Kind().String()))
	return v, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eofToken
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) isEOF() bool {
	return p.peek().Kind == lexer.TokEOF
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.mismatch(kind.String())
}

// mismatch builds the syntax error for the current token.
func (p *Parser) mismatch(expected string) *SyntaxError {
	tok := p.peek()
	return &SyntaxError{
		Expected: expected,
		Actual:   tok.Kind.String(),
		Offset:   tok.Offset(),
	}
}

func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return fmt.Errorf("%w: depth %d at offset %d", ErrMaxDepth, p.depth, p.peek().Offset())
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseValue implements: Value := Scalar | List | Tuple | DictOrSet
func (p *Parser) parseValue() (ast.Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	if p.TraceEnabled() {
		p.Trace("value",
			slog.String("kind", tok.Kind.String()),
			slog.Int("offset", tok.Offset()))
	}

	switch tok.Kind {
	case lexer.TokNumber, lexer.TokString, lexer.TokBoolean, lexer.TokNull:
		p.advance()
		return ast.NewScalar(tok.Value, tok.Span), nil
	case lexer.TokLBracket:
		return p.parseList()
	case lexer.TokLParen:
		return p.parseTuple()
	case lexer.TokLBrace:
		return p.parseDictOrSet()
	default:
		return nil, p.mismatch("value")
	}
}

// parseList implements: List := '[' (Value (',' Value)*)? ','? ']'
func (p *Parser) parseList() (ast.Value, error) {
	open := p.advance()

	elems, err := p.parseElements(lexer.TokRBracket)
	if err != nil {
		return nil, err
	}

	close, err := p.expect(lexer.TokRBracket)
	if err != nil {
		return nil, err
	}
	return ast.NewList(elems, types.NewSpan(open.Span.Start, close.Span.End)), nil
}

// parseTuple implements: Tuple := '(' (Value (',' Value)*)? ','? ')'
func (p *Parser) parseTuple() (ast.Value, error) {
	open := p.advance()

	elems, err := p.parseElements(lexer.TokRParen)
	if err != nil {
		return nil, err
	}

	close, err := p.expect(lexer.TokRParen)
	if err != nil {
		return nil, err
	}
	return ast.NewTuple(elems, types.NewSpan(open.Span.Start, close.Span.End)), nil
}

// parseElements reads a comma-separated value sequence up to, but not
// including, the closing delimiter. A comma followed by the closer is a
// trailing comma. Stopping at EOF lets the caller's expect() name the
// missing closer.
func (p *Parser) parseElements(close lexer.TokenKind) ([]ast.Value, error) {
	var elems []ast.Value
	for !p.check(close) && !p.isEOF() {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		if p.check(lexer.TokComma) {
			p.advance()
		} else {
			break
		}
	}
	return elems, nil
}

// parseDictOrSet implements:
//
//	DictOrSet := '{' '}'
//	           | '{' Value ':' Value (',' Value ':' Value)* ','? '}'
//	           | '{' Value (',' Value)* ','? '}'
//
// An immediate '}' is an empty mapping. Otherwise one sub-value is parsed
// and the next token decides: ':' means mapping, anything else means set.
func (p *Parser) parseDictOrSet() (ast.Value, error) {
	open := p.advance()

	if p.check(lexer.TokRBrace) {
		close := p.advance()
		return ast.NewMapping(nil, types.NewSpan(open.Span.Start, close.Span.End)), nil
	}

	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.check(lexer.TokColon) {
		return p.parseMapping(open, first)
	}
	return p.parseSet(open, first)
}

// parseMapping finishes a mapping whose first key has been consumed.
func (p *Parser) parseMapping(open lexer.Token, firstKey ast.Value) (ast.Value, error) {
	p.advance() // ':'

	firstVal, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	entries := []ast.Entry{{Key: firstKey, Value: firstVal}}

	for p.check(lexer.TokComma) {
		p.advance()
		if p.check(lexer.TokRBrace) {
			break
		}

		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokColon); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.Entry{Key: key, Value: val})
	}

	close, err := p.expect(lexer.TokRBrace)
	if err != nil {
		return nil, err
	}
	return ast.NewMapping(entries, types.NewSpan(open.Span.Start, close.Span.End)), nil
}

// parseSet finishes a set whose first element has been consumed.
func (p *Parser) parseSet(open lexer.Token, first ast.Value) (ast.Value, error) {
	elems := []ast.Value{first}

	for p.check(lexer.TokComma) {
		p.advance()
		if p.check(lexer.TokRBrace) {
			break
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}

	close, err := p.expect(lexer.TokRBrace)
	if err != nil {
		return nil, err
	}
	return ast.NewSet(elems, types.NewSpan(open.Span.Start, close.Span.End)), nil
}
