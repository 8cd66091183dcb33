// Package lexer provides tokenization for Python object-literal source text.
package lexer

import (
	"github.com/typist/pylit/internal/types"
)

// Token is a token with kind, resolved value, and source span.
// The Value payload depends on the kind: int64 or float64 for TokNumber,
// string for TokString and TokIdentifier, bool for TokBoolean, and nil
// for TokNull, delimiters, and TokEOF.
type Token struct {
	Kind  TokenKind
	Value any
	Span  types.Span
}

// NewToken creates a new token.
func NewToken(kind TokenKind, value any, span types.Span) Token {
	return Token{Kind: kind, Value: value, Span: span}
}

// Offset returns the byte offset of the token's first character.
func (t Token) Offset() int {
	return int(t.Span.Start)
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokEOF is end of input.
	TokEOF TokenKind = iota

	// === Literals ===

	// TokNumber is an integer or float literal.
	TokNumber
	// TokString is a quoted string literal.
	TokString
	// TokBoolean is 'True' or 'False'.
	TokBoolean
	// TokNull is 'None'.
	TokNull
	// TokIdentifier is any other bare word. The grammar never accepts it;
	// it exists so the parser can name it in error messages.
	TokIdentifier

	// === Delimiters ===

	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokComma is ','.
	TokComma
	// TokColon is ':'.
	TokColon
)

var tokenKindNames = map[TokenKind]string{
	TokEOF:        "end of input",
	TokNumber:     "number",
	TokString:     "string",
	TokBoolean:    "boolean",
	TokNull:       "None",
	TokIdentifier: "identifier",
	TokLBracket:   "'['",
	TokRBracket:   "']'",
	TokLBrace:     "'{'",
	TokRBrace:     "'}'",
	TokLParen:     "'('",
	TokRParen:     "')'",
	TokComma:      "','",
	TokColon:      "':'",
}

// String returns the human-readable name used in error messages.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// delimiterKinds maps single-character delimiters to their token kinds.
var delimiterKinds = map[byte]TokenKind{
	'[': TokLBracket,
	']': TokRBracket,
	'{': TokLBrace,
	'}': TokRBrace,
	'(': TokLParen,
	')': TokRParen,
	',': TokComma,
	':': TokColon,
}

// keywordTokens maps the three reserved words to their resolved payloads.
// Any other identifier stays a plain TokIdentifier.
var keywordTokens = map[string]Token{
	"True":  {Kind: TokBoolean, Value: true},
	"False": {Kind: TokBoolean, Value: false},
	"None":  {Kind: TokNull, Value: nil},
}

// LookupKeyword resolves an identifier lexeme to its keyword token kind
// and payload, if it is one of True, False, or None.
func LookupKeyword(text string) (TokenKind, any, bool) {
	tok, ok := keywordTokens[text]
	return tok.Kind, tok.Value, ok
}
