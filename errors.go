package pylit

import (
	"errors"
	"fmt"

	"github.com/typist/pylit/internal/lexer"
	"github.com/typist/pylit/internal/parser"
)

// ErrMaxDepth matches errors returned when input nesting exceeds the
// WithMaxDepth limit; test with errors.Is.
var ErrMaxDepth = parser.ErrMaxDepth

// ScanError reports a character the scanner cannot start a lexeme with.
// Scanning aborts at the first such character.
type ScanError struct {
	Char   rune // the offending character
	Offset int  // byte offset in the source
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error: unexpected character %q (code %d) at offset %d",
		e.Char, e.Char, e.Offset)
}

// SyntaxError reports a token-kind mismatch against a grammar
// expectation. Parsing aborts at the first mismatch with no partial
// result.
type SyntaxError struct {
	Expected string // expected token kind
	Actual   string // actual token kind
	Offset   int    // byte offset of the actual token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: expected %s, got %s at offset %d",
		e.Expected, e.Actual, e.Offset)
}

// lowerError converts internal pipeline errors into their public forms.
func lowerError(err error) error {
	var scanErr *lexer.ScanError
	if errors.As(err, &scanErr) {
		return &ScanError{Char: scanErr.Char, Offset: scanErr.Offset}
	}

	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return &SyntaxError{
			Expected: synErr.Expected,
			Actual:   synErr.Actual,
			Offset:   synErr.Offset,
		}
	}
	return err
}
