// Package diag renders lexer and parser errors against their source text.
//
//	script.sh:2:11: error: expected ')' after expression, got ';'
//	  2 | let b = (2;
//	    |           ^
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metaphox/sheesh/ast"
	"github.com/metaphox/sheesh/lexer"
	"github.com/metaphox/sheesh/parser"
)

var (
	ColorError = lipgloss.Color("#EF4444") // Red
	ColorMuted = lipgloss.Color("#6B7280") // Gray

	errorStyle    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	locationStyle = lipgloss.NewStyle().Bold(true)
	gutterStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	caretStyle    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
)

// Position is a 1-based source location plus the length of the text to
// underline.
type Position struct {
	Line, Col int
	Len       int
}

// Locate extracts the message and source position from a lexer or parser
// error. ok is false for any other error.
func Locate(err error) (msg string, pos Position, ok bool) {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return fmt.Sprintf("%v %q", lerr.Err, lerr.Literal),
			Position{Line: lerr.Line, Col: lerr.Col, Len: len(lerr.Literal)}, true
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		n := len(perr.Token.Literal)
		if perr.Token.Type == ast.STRING {
			n += 2
		}
		return perr.Msg, Position{Line: perr.Token.Line, Col: perr.Token.Col, Len: n}, true
	}
	return "", Position{}, false
}

// Render writes a diagnostic for err to w. Errors that carry a position get
// the offending line and a caret beneath it. Styling is applied only when
// color is true.
func Render(w io.Writer, filename, src string, err error, color bool) {
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	msg, pos, ok := Locate(err)
	if !ok {
		fmt.Fprintf(w, "%s: %s %s\n", paint(locationStyle, filename), paint(errorStyle, "error:"), err)
		return
	}

	loc := fmt.Sprintf("%s:%d:%d:", filename, pos.Line, pos.Col)
	fmt.Fprintf(w, "%s %s %s\n", paint(locationStyle, loc), paint(errorStyle, "error:"), msg)

	line, found := sourceLine(src, pos.Line)
	if !found {
		return
	}
	num := strconv.Itoa(pos.Line)
	blank := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "  %s %s\n", paint(gutterStyle, num+" |"), line)
	fmt.Fprintf(w, "  %s %s%s\n", paint(gutterStyle, blank+" |"), padding(line, pos.Col), paint(caretStyle, carets(line, pos)))
}

// sourceLine returns the 1-based line n of src without its line ending.
func sourceLine(src string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}

// padding reproduces the whitespace before byte column col so the caret
// lines up under tabs as well as spaces.
func padding(line string, col int) string {
	end := col - 1
	if end > len(line) {
		end = len(line)
	}
	var b strings.Builder
	for _, r := range line[:end] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// carets underlines pos.Len bytes, clipped to the end of the line, and
// always at least one.
func carets(line string, pos Position) string {
	n := pos.Len
	if rest := len(line) - (pos.Col - 1); n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	return strings.Repeat("^", n)
}
