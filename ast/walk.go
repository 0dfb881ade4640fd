package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node depth-first, children in source
// order. It panics on a node type it does not know, so adding a variant
// without teaching Walk about it fails loudly in tests.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Walk(v, s)
		}

	// statements
	case *LetStmt:
		Walk(v, n.Value)
	case *ConstStmt:
		Walk(v, n.Value)
	case *ExprStmt:
		Walk(v, n.Expr)
	case *IfStmt:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *WhileStmt:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *FunctionStmt:
		Walk(v, n.Body)
	case *ReturnStmt:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *BlockStmt:
		for _, s := range n.Statements {
			Walk(v, s)
		}

	// expressions
	case *NumberLiteral, *StringLiteral, *Identifier:
		// leaves
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Operand)
	case *CallExpr:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *AssignExpr:
		Walk(v, n.Target)
		Walk(v, n.Value)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree in depth-first order, calling f for each node.
// If f returns true, Inspect descends into the node's children; after the
// children it calls f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
