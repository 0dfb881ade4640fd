// Package ast defines the token types, the Token struct, and the syntax tree
// produced by the sheesh lexer and parser.
//
// Tokens are the smallest meaningful units of a sheesh source unit. Every
// token carries its type, the exact literal text it was scanned from, and its
// source position. Position is 1-based for Line and Col and 0-based for Offset.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is returned by the streaming lexer for input it cannot scan:
	// an unterminated string literal or a character outside the language.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input. A materialised stream ends with exactly one.
	EOF
	// COMMENT is a full `// ...` line. The parser skips it.
	COMMENT

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]* that is not a keyword.
	IDENT
	// NUMBER is a decimal literal with optional fraction and exponent: 0.2E-3.
	// The literal is kept verbatim; conversion to float64 happens in the parser.
	NUMBER
	// STRING is a double-quoted literal. Literal holds the text between the quotes.
	STRING

	// ── Keywords ───────────────────────────────────────────────────────────────

	LET
	CONST
	IF
	ELSE
	WHILE
	DO
	FOR
	// FUNCTION is spelled either `fun` or `function` in source.
	FUNCTION
	RETURN
	BREAK
	CONTINUE

	// ── Operators ──────────────────────────────────────────────────────────────

	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	CARET
	AMPERSAND
	PIPE
	BANG
	EQ
	NEQ
	LT
	SHL
	SHL3
	GT
	SHR
	SHR3
	LTE
	GTE
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	ASTERISK_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	// AND is logical and: a && b
	AND
	// OR is logical or: a || b
	OR

	// ── Punctuation ────────────────────────────────────────────────────────────

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	DOT
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",
	IDENT:   "IDENT",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
}

// keywords maps the literal text of every keyword to its TokenType.
// Matching is case-sensitive: `Let` is an identifier.
var keywords = map[string]TokenType{
	"let":      LET,
	"const":    CONST,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"do":       DO,
	"for":      FOR,
	"fun":      FUNCTION,
	"function": FUNCTION,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
}

// Operators maps every operator lexeme to its TokenType. The lexer picks the
// longest entry that matches at the current position, so `<<=` never appears
// and `<<<` wins over `<<` and `<`.
//
// `//` is not listed: it starts a comment and is handled before the table.
var Operators = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   ASTERISK,
	"/":   SLASH,
	"%":   PERCENT,
	"^":   CARET,
	"&":   AMPERSAND,
	"|":   PIPE,
	"!":   BANG,
	"==":  EQ,
	"!=":  NEQ,
	"<":   LT,
	"<<":  SHL,
	"<<<": SHL3,
	">":   GT,
	">>":  SHR,
	">>>": SHR3,
	"<=":  LTE,
	">=":  GTE,
	"=":   ASSIGN,
	"+=":  PLUS_ASSIGN,
	"-=":  MINUS_ASSIGN,
	"*=":  ASTERISK_ASSIGN,
	"/=":  SLASH_ASSIGN,
	"%=":  PERCENT_ASSIGN,
	"&&":  AND,
	"||":  OR,
}

// MaxOperatorLen is the length of the longest lexeme in Operators.
const MaxOperatorLen = 3

// Punctuation maps each single-byte punctuation character to its TokenType.
var Punctuation = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	';': SEMICOLON,
	',': COMMA,
	'.': DOT,
}

func init() {
	for kw, tt := range keywords {
		if _, ok := tokenNames[tt]; !ok {
			tokenNames[tt] = kw
		}
	}
	tokenNames[FUNCTION] = "function"
	for op, tt := range Operators {
		tokenNames[tt] = "'" + op + "'"
	}
	for ch, tt := range Punctuation {
		tokenNames[tt] = "'" + string(ch) + "'"
	}
}

// String returns the name used for tt in diagnostics: IDENT, let, '+=', ';'.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsKeyword reports whether tt is one of the reserved words.
func (tt TokenType) IsKeyword() bool {
	return tt >= LET && tt <= CONTINUE
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int // byte offset of the first character
	Line    int
	Col     int
}

// String returns the literal, or the type name for tokens with no text.
func (t Token) String() string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return t.Literal
}

// Describe renders the token for error messages: `'+=' "+="` or `EOF`.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER, STRING, COMMENT, ILLEGAL:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	}
	return t.Type.String()
}
