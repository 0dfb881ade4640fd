package ast

import "fmt"

// Dump converts the tree rooted at n into plain maps and slices so that
// generic encoders (YAML, JSON) can print it. Every map carries a "kind" key
// naming the variant; a nil node dumps as nil.
func Dump(n Node) any {
	switch n := n.(type) {
	case nil:
		return nil
	case *Program:
		return map[string]any{"kind": "Program", "statements": dumpStmts(n.Statements)}

	case *LetStmt:
		return map[string]any{"kind": "Let", "name": n.Name, "value": Dump(n.Value)}
	case *ConstStmt:
		return map[string]any{"kind": "Const", "name": n.Name, "value": Dump(n.Value)}
	case *ExprStmt:
		return map[string]any{"kind": "Expr", "expr": Dump(n.Expr)}
	case *IfStmt:
		m := map[string]any{"kind": "If", "condition": Dump(n.Condition), "then": Dump(n.Then)}
		if n.Else != nil {
			m["else"] = Dump(n.Else)
		}
		return m
	case *WhileStmt:
		return map[string]any{"kind": "While", "condition": Dump(n.Condition), "body": Dump(n.Body)}
	case *FunctionStmt:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}
		return map[string]any{"kind": "Function", "name": n.Name, "params": params, "body": Dump(n.Body)}
	case *ReturnStmt:
		m := map[string]any{"kind": "Return"}
		if n.Value != nil {
			m["value"] = Dump(n.Value)
		}
		return m
	case *BlockStmt:
		return map[string]any{"kind": "Block", "statements": dumpStmts(n.Statements)}

	case *NumberLiteral:
		return map[string]any{"kind": "Number", "value": n.Value}
	case *StringLiteral:
		return map[string]any{"kind": "String", "value": n.Value}
	case *Identifier:
		return map[string]any{"kind": "Identifier", "name": n.Name}
	case *BinaryExpr:
		return map[string]any{"kind": "Binary", "op": n.Op.String(), "left": Dump(n.Left), "right": Dump(n.Right)}
	case *UnaryExpr:
		return map[string]any{"kind": "Unary", "op": n.Op.String(), "operand": Dump(n.Operand)}
	case *CallExpr:
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = Dump(a)
		}
		return map[string]any{"kind": "Call", "callee": Dump(n.Callee), "args": args}
	case *AssignExpr:
		return map[string]any{"kind": "Assign", "target": Dump(n.Target), "value": Dump(n.Value)}
	}
	panic(fmt.Sprintf("ast.Dump: unexpected node type %T", n))
}

func dumpStmts(stmts []Statement) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = Dump(s)
	}
	return out
}
