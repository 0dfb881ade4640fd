// Package lexer implements the sheesh lexer (tokeniser).
//
// The lexer converts a source string into a flat stream of [ast.Token] values.
// Call [New] and then either [Lexer.NextToken] repeatedly until a token with
// Type == [ast.EOF] arrives, or [Lexer.Tokenize] to get the whole stream.
//
// Design notes:
//   - Single pass over the bytes with an explicit cursor and one byte of
//     look-ahead (peekChar).
//   - No global state; every [Lexer] is independent.
//   - Comments (// ...) are emitted as [ast.COMMENT] tokens for tooling; the
//     parser skips them.
//   - Operators are matched greedily against [ast.Operators], longest first.
//   - Anything that is not whitespace and does not start a token is an error.
package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/metaphox/sheesh/ast"
)

var (
	// ErrUnterminatedString is reported when input ends inside a string literal.
	ErrUnterminatedString = errors.New("unterminated string literal")
	// ErrUnexpectedChar is reported for a character that cannot start a token.
	ErrUnexpectedChar = errors.New("unexpected character")
)

// Error is a lexical error with the position where the offending token began.
type Error struct {
	Err     error  // ErrUnterminatedString or ErrUnexpectedChar
	Literal string // the text that could not be scanned
	Offset  int
	Line    int
	Col     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v %q", e.Line, e.Col, e.Err, e.Literal)
}

func (e *Error) Unwrap() error { return e.Err }

// Lexer holds all state required to tokenise a single source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input string
	pos   int // index of the current byte
	line  int // 1-based line of the current byte
	col   int // 1-based column of the current byte

	err *Error // first error seen by NextToken
}

// New creates a [Lexer] positioned at the first byte of input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize scans input completely. It is shorthand for New(input).Tokenize().
func Tokenize(input string) ([]ast.Token, error) {
	return New(input).Tokenize()
}

// Tokenize scans the rest of the input and returns every token, ending with
// exactly one EOF token. On the first lexical error it returns a *Error and
// no tokens.
func (l *Lexer) Tokenize() ([]ast.Token, error) {
	var toks []ast.Token
	for {
		tok := l.NextToken()
		if tok.Type == ast.ILLEGAL {
			return nil, l.err
		}
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks, nil
		}
	}
}

// Err returns the first error encountered by NextToken, or nil.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// NextToken returns the next token from the input.
//
// Whitespace is skipped before each token. When the input is exhausted,
// NextToken returns an EOF token on every subsequent call. A scanning failure
// yields an ILLEGAL token and records the error returned by [Lexer.Err].
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespace()

	if l.atEOF() {
		return l.makeToken(ast.EOF, l.pos, l.line, l.col)
	}

	ch := l.cur()
	switch {
	case ch == '"':
		return l.readString()
	case isLetter(ch):
		return l.readIdentifier()
	case isDigit(ch):
		return l.readNumber()
	case ch == '/' && l.peekChar() == '/':
		return l.readComment()
	case isOperatorStart(ch):
		return l.readOperator()
	}

	if tt, ok := ast.Punctuation[ch]; ok {
		offset, line, col := l.pos, l.line, l.col
		l.readChar()
		return l.makeToken(tt, offset, line, col)
	}

	return l.illegal()
}

// ── Internal helpers ──────────────────────────────────────────────────────────

func (l *Lexer) atEOF() bool { return l.pos >= len(l.input) }

// cur returns the byte under the cursor, or 0 at end of input.
func (l *Lexer) cur() byte {
	if l.atEOF() {
		return 0
	}
	return l.input[l.pos]
}

// peekChar returns the byte after the cursor without consuming anything.
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// readChar moves the cursor past the current byte, keeping line and col in step.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// makeToken builds a token whose literal is input[offset:l.pos].
func (l *Lexer) makeToken(tt ast.TokenType, offset, line, col int) ast.Token {
	return ast.Token{Type: tt, Literal: l.input[offset:l.pos], Offset: offset, Line: line, Col: col}
}

func (l *Lexer) fail(err error, literal string, offset, line, col int) ast.Token {
	if l.err == nil {
		l.err = &Error{Err: err, Literal: literal, Offset: offset, Line: line, Col: col}
	}
	return ast.Token{Type: ast.ILLEGAL, Literal: literal, Offset: offset, Line: line, Col: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.cur() {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() ast.Token {
	offset, line, col := l.pos, l.line, l.col
	for isLetter(l.cur()) || isDigit(l.cur()) {
		l.readChar()
	}
	tok := l.makeToken(ast.IDENT, offset, line, col)
	tok.Type = ast.LookupIdent(tok.Literal)
	return tok
}

// readNumber scans digits, at most one '.', then an optional exponent
// (e|E, optional sign, digits). The literal is not validated here: `1e`
// scans as a NUMBER and fails conversion in the parser.
func (l *Lexer) readNumber() ast.Token {
	offset, line, col := l.pos, l.line, l.col

	seenDot := false
	for {
		ch := l.cur()
		if isDigit(ch) {
			l.readChar()
		} else if ch == '.' && !seenDot {
			seenDot = true
			l.readChar()
		} else {
			break
		}
	}

	if ch := l.cur(); ch == 'e' || ch == 'E' {
		l.readChar()
		if ch := l.cur(); ch == '+' || ch == '-' {
			l.readChar()
		}
		for isDigit(l.cur()) {
			l.readChar()
		}
	}

	return l.makeToken(ast.NUMBER, offset, line, col)
}

// readString scans a double-quoted literal. The token literal excludes the
// quotes. There are no escape sequences and strings may span lines.
func (l *Lexer) readString() ast.Token {
	offset, line, col := l.pos, l.line, l.col
	l.readChar() // opening '"'

	start := l.pos
	for !l.atEOF() && l.cur() != '"' {
		l.readChar()
	}
	if l.atEOF() {
		return l.fail(ErrUnterminatedString, l.input[start:], offset, line, col)
	}

	tok := ast.Token{Type: ast.STRING, Literal: l.input[start:l.pos], Offset: offset, Line: line, Col: col}
	l.readChar() // closing '"'
	return tok
}

// readComment consumes `//` through the end of the line, not including the
// newline itself.
func (l *Lexer) readComment() ast.Token {
	offset, line, col := l.pos, l.line, l.col
	for !l.atEOF() && l.cur() != '\n' {
		l.readChar()
	}
	return l.makeToken(ast.COMMENT, offset, line, col)
}

// readOperator takes the longest lexeme in ast.Operators that matches at the
// cursor. Every operator start byte is itself an operator, so this always
// consumes at least one byte.
func (l *Lexer) readOperator() ast.Token {
	offset, line, col := l.pos, l.line, l.col
	for n := ast.MaxOperatorLen; n > 0; n-- {
		if l.pos+n > len(l.input) {
			continue
		}
		if tt, ok := ast.Operators[l.input[l.pos:l.pos+n]]; ok {
			for i := 0; i < n; i++ {
				l.readChar()
			}
			return l.makeToken(tt, offset, line, col)
		}
	}
	return l.illegal()
}

// illegal consumes one whole UTF-8 character and reports it.
func (l *Lexer) illegal() ast.Token {
	offset, line, col := l.pos, l.line, l.col
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return l.fail(ErrUnexpectedChar, l.input[offset:l.pos], offset, line, col)
}

func isOperatorStart(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '^', '&', '|', '!', '=', '<', '>':
		return true
	}
	return false
}

// isLetter reports whether b can start or continue an identifier.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
