package ast_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/metaphox/sheesh/ast"
	"github.com/metaphox/sheesh/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}
	return prog
}

// kinds lists the node types visited by Inspect in order, with "end" for the
// nil call that closes each node.
func kinds(n ast.Node) []string {
	var out []string
	ast.Inspect(n, func(n ast.Node) bool {
		if n == nil {
			out = append(out, "end")
			return false
		}
		out = append(out, strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast."))
		return true
	})
	return out
}

func TestInspect_Order(t *testing.T) {
	prog := mustParse(t, `let x = f(1, -y);`)
	got := strings.Join(kinds(prog), " ")
	want := "Program LetStmt CallExpr Identifier end NumberLiteral end " +
		"UnaryExpr Identifier end end end end end"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestInspect_Statements(t *testing.T) {
	src := `
fun f(a) {
	if (a) return; else return a;
	while (a) { a -= 1; }
}
const c = "s";
`
	seen := map[string]int{}
	ast.Inspect(mustParse(t, src), func(n ast.Node) bool {
		if n != nil {
			seen[strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")]++
		}
		return true
	})
	want := map[string]int{
		"Program":       1,
		"FunctionStmt":  1,
		"BlockStmt":     2,
		"IfStmt":        1,
		"ReturnStmt":    2,
		"WhileStmt":     1,
		"ExprStmt":      1,
		"AssignExpr":    1,
		"BinaryExpr":    1,
		"Identifier":    5,
		"NumberLiteral": 1,
		"ConstStmt":     1,
		"StringLiteral": 1,
	}
	for k, n := range want {
		if seen[k] != n {
			t.Errorf("%s: visited %d times, want %d", k, seen[k], n)
		}
	}
	if len(seen) != len(want) {
		t.Errorf("visited kinds %v, want %v", seen, want)
	}
}

func TestInspect_Prune(t *testing.T) {
	prog := mustParse(t, `f(g(h(1)));`)
	calls := 0
	ast.Inspect(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.CallExpr); ok {
			calls++
			return false
		}
		return true
	})
	if calls != 1 {
		t.Errorf("descended into a pruned call: saw %d calls", calls)
	}
}

// TestStrictTree checks that no node is reachable through two parents, in
// particular after compound assignment desugaring.
func TestStrictTree(t *testing.T) {
	prog := mustParse(t, `
let i = 0;
i += 1; i -= 2; i *= 3; i /= 4; i %= 5;
while (i < 10) i += i;
`)
	seen := map[ast.Node]bool{}
	ast.Inspect(prog, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if seen[n] {
			t.Errorf("node %s reached twice", n)
		}
		seen[n] = true
		return true
	})
}

type countingVisitor struct{ enter, leave int }

func (v *countingVisitor) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		v.leave++
		return nil
	}
	v.enter++
	return v
}

func TestWalk_Balanced(t *testing.T) {
	v := &countingVisitor{}
	ast.Walk(v, mustParse(t, `if (a && b) { x = y + 1; } else { return; }`))
	if v.enter == 0 || v.enter != v.leave {
		t.Errorf("enter %d, leave %d", v.enter, v.leave)
	}
}
