package ast_test

import (
	"reflect"
	"testing"

	"github.com/metaphox/sheesh/ast"
)

func TestDump_Expressions(t *testing.T) {
	prog := mustParse(t, `x += f("s", !y);`)
	got := ast.Dump(prog)
	want := map[string]any{
		"kind": "Program",
		"statements": []any{
			map[string]any{
				"kind": "Expr",
				"expr": map[string]any{
					"kind":   "Assign",
					"target": map[string]any{"kind": "Identifier", "name": "x"},
					"value": map[string]any{
						"kind": "Binary",
						"op":   "+",
						"left": map[string]any{"kind": "Identifier", "name": "x"},
						"right": map[string]any{
							"kind":   "Call",
							"callee": map[string]any{"kind": "Identifier", "name": "f"},
							"args": []any{
								map[string]any{"kind": "String", "value": "s"},
								map[string]any{
									"kind":    "Unary",
									"op":      "!",
									"operand": map[string]any{"kind": "Identifier", "name": "y"},
								},
							},
						},
					},
				},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %#v\nwant %#v", got, want)
	}
}

func TestDump_Statements(t *testing.T) {
	prog := mustParse(t, `fun f(a) { if (a) return; } let n;`)
	stmts := ast.Dump(prog).(map[string]any)["statements"].([]any)

	fn := stmts[0].(map[string]any)
	if fn["kind"] != "Function" || fn["name"] != "f" {
		t.Fatalf("function: %v", fn)
	}
	if !reflect.DeepEqual(fn["params"], []any{"a"}) {
		t.Errorf("params: %v", fn["params"])
	}

	body := fn["body"].(map[string]any)["statements"].([]any)
	ifs := body[0].(map[string]any)
	if _, ok := ifs["else"]; ok {
		t.Errorf("if without else dumped an else key: %v", ifs)
	}
	ret := ifs["then"].(map[string]any)
	if _, ok := ret["value"]; ok || ret["kind"] != "Return" {
		t.Errorf("bare return: %v", ret)
	}

	let := stmts[1].(map[string]any)
	want := map[string]any{"kind": "Let", "name": "n", "value": map[string]any{"kind": "Number", "value": 0.0}}
	if !reflect.DeepEqual(let, want) {
		t.Errorf("let: got %v, want %v", let, want)
	}
}

func TestDump_Nil(t *testing.T) {
	if got := ast.Dump(nil); got != nil {
		t.Errorf("Dump(nil) = %v", got)
	}
}

func TestTokenNames(t *testing.T) {
	tests := []struct {
		tt   ast.TokenType
		want string
	}{
		{ast.IDENT, "IDENT"},
		{ast.EOF, "EOF"},
		{ast.LET, "let"},
		{ast.FUNCTION, "function"},
		{ast.PLUS_ASSIGN, "'+='"},
		{ast.SHR3, "'>>>'"},
		{ast.AND, "'&&'"},
		{ast.SEMICOLON, "';'"},
	}
	for _, tt := range tests {
		if got := tt.tt.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.tt, got, tt.want)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	tests := map[string]ast.TokenType{
		"let":      ast.LET,
		"fun":      ast.FUNCTION,
		"function": ast.FUNCTION,
		"continue": ast.CONTINUE,
		"Let":      ast.IDENT,
		"lets":     ast.IDENT,
		"_":        ast.IDENT,
	}
	for in, want := range tests {
		if got := ast.LookupIdent(in); got != want {
			t.Errorf("LookupIdent(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestToken_Describe(t *testing.T) {
	tests := []struct {
		tok  ast.Token
		want string
	}{
		{ast.Token{Type: ast.EOF}, "end of input"},
		{ast.Token{Type: ast.IDENT, Literal: "x"}, `IDENT "x"`},
		{ast.Token{Type: ast.NUMBER, Literal: "1.5"}, `NUMBER "1.5"`},
		{ast.Token{Type: ast.SEMICOLON, Literal: ";"}, "';'"},
		{ast.Token{Type: ast.WHILE, Literal: "while"}, "while"},
	}
	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}
