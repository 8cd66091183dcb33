package lexer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/typist/pylit/internal/types"
)

// ScanError reports a character the scanner cannot start a lexeme with.
// It aborts tokenization immediately; there is no resynchronization.
type ScanError struct {
	Char   rune
	Offset int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error: unexpected character %q (code %d) at offset %d",
		e.Char, e.Char, e.Offset)
}

type lexerState int

const (
	stateDispatch lexerState = iota
	stateNumber
	stateString
	stateIdentifier
	stateDelimiter
)

// Lexer tokenizes Python object-literal source text.
type Lexer struct {
	source []byte
	pos    int
	state  lexerState
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		pos:    0,
		state:  stateDispatch,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Tokenize consumes all source text and returns the token stream
// terminated by a TokEOF token. The first unrecognized character aborts
// tokenization with a *ScanError.
func (l *Lexer) Tokenize() ([]Token, error) {
	estimatedTokens := max(len(l.source)/4, 16)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete", slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() (Token, error) {
	for {
		switch l.state {
		case stateNumber:
			return l.scanNumber()
		case stateString:
			return l.scanString()
		case stateIdentifier:
			return l.scanIdentifier()
		case stateDelimiter:
			return l.scanDelimiter()
		default:
			tok, emit, err := l.dispatch()
			if err != nil {
				return Token{}, err
			}
			if emit {
				return tok, nil
			}
		}
	}
}

// dispatch skips whitespace and routes to the scan state for the current
// character. It emits a token itself only at end of input.
func (l *Lexer) dispatch() (Token, bool, error) {
	l.skipWhitespace()

	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, nil, l.pos), true, nil
	}

	switch {
	case isDigit(b) || b == '-':
		l.state = stateNumber
	case b == '\'' || b == '"':
		l.state = stateString
	case isIdentStart(b):
		l.state = stateIdentifier
	default:
		l.state = stateDelimiter
	}
	return Token{}, false, nil
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if b < utf8.RuneSelf {
			if !isSpace(b) {
				return
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.source[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(l.pos),
	}
}

func (l *Lexer) token(kind TokenKind, value any, start int) Token {
	tok := Token{
		Kind:  kind,
		Value: value,
		Span:  l.spanFrom(start),
	}
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
	return tok
}

// scanError decodes the rune at the given offset and aborts.
func (l *Lexer) scanError(offset int) error {
	r, _ := utf8.DecodeRune(l.source[offset:])
	err := &ScanError{Char: r, Offset: offset}
	l.Log(slog.LevelDebug, "scan error",
		slog.String("char", string(r)),
		slog.Int("offset", offset))
	return err
}

// scanNumber reads an optional leading '-', digits, and at most one '.'
// followed by more digits. No exponent form. Lexemes containing '.' become
// float64; all others become int64, promoted to float64 when they overflow.
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos

	if b, ok := l.peek(); ok && b == '-' {
		l.advance()
	}

	hasDigits := false
	hasDot := false
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if isDigit(b) {
			l.advance()
			hasDigits = true
		} else if b == '.' && !hasDot {
			l.advance()
			hasDot = true
		} else {
			break
		}
	}

	// A bare '-' with no digits is not a number.
	if !hasDigits {
		l.state = stateDispatch
		return Token{}, l.scanError(start)
	}

	lexeme := string(l.source[start:l.pos])
	l.state = stateDispatch

	if hasDot {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return Token{}, l.scanError(start)
		}
		return l.token(TokNumber, f, start), nil
	}

	i, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		// Out of int64 range: promote to the wider representation.
		f, ferr := strconv.ParseFloat(lexeme, 64)
		if ferr != nil {
			return Token{}, l.scanError(start)
		}
		return l.token(TokNumber, f, start), nil
	}
	return l.token(TokNumber, i, start), nil
}

// scanString reads a string delimited by matching single or double quotes.
// Recognized escapes: \n \t \r \\ \' \". Unknown escapes pass the escaped
// character through literally. Reaching end of input before the closing
// delimiter yields the partial content rather than an error; the parser
// usually surfaces the malformed structure afterwards.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote, _ := l.advance()

	var sb strings.Builder
	for {
		b, ok := l.peek()
		if !ok || b == quote {
			break
		}
		l.advance()
		if b != '\\' {
			sb.WriteByte(b)
			continue
		}
		esc, ok := l.advance()
		if !ok {
			break
		}
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\', '\'', '"':
			sb.WriteByte(esc)
		default:
			sb.WriteByte(esc)
		}
	}

	// Closing quote is absent on truncated input.
	if b, ok := l.peek(); ok && b == quote {
		l.advance()
	}

	l.state = stateDispatch
	return l.token(TokString, sb.String(), start), nil
}

// scanIdentifier reads letters, digits, and underscores, then resolves the
// keywords True, False, and None. Any other lexeme becomes TokIdentifier.
func (l *Lexer) scanIdentifier() (Token, error) {
	start := l.pos

	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if b < utf8.RuneSelf {
			if !isAlphanumeric(b) && b != '_' {
				break
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.source[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}

	l.state = stateDispatch

	// A multibyte rune that is not a letter never leaves dispatch's
	// coarse byte check, so reject it here.
	if l.pos == start {
		return Token{}, l.scanError(start)
	}

	text := string(l.source[start:l.pos])
	if kind, value, ok := LookupKeyword(text); ok {
		return l.token(kind, value, start), nil
	}
	return l.token(TokIdentifier, text, start), nil
}

// scanDelimiter maps a single character through the delimiter table.
// Anything not in the table is a fatal scan error.
func (l *Lexer) scanDelimiter() (Token, error) {
	start := l.pos
	l.state = stateDispatch

	b, _ := l.peek()
	kind, ok := delimiterKinds[b]
	if !ok {
		return Token{}, l.scanError(start)
	}
	l.advance()
	return l.token(kind, nil, start), nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphanumeric(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// isIdentStart reports whether b can begin an identifier. Multibyte
// sequences are resolved to runes by the identifier state itself.
func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '_' || b >= utf8.RuneSelf
}
