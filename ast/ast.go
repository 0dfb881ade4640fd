// Package ast defines the Abstract Syntax Tree (AST) node types for sheesh.
//
// The hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    LetStmt, ConstStmt, ExprStmt, IfStmt, WhileStmt
//	    FunctionStmt, ReturnStmt, BlockStmt
//	  Expression (interface)
//	    NumberLiteral, StringLiteral, Identifier
//	    BinaryExpr, UnaryExpr, CallExpr, AssignExpr
//
// The tree is built once by the parser and never mutated. Every node has
// exactly one parent; the parser never reuses a node in two places.
package ast

import (
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the AST.
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String returns a compact, fully parenthesised rendering of the node.
	// It is intended for debugging and test output, not pretty-printing.
	String() string
	// Pos returns the token the node was built from, for diagnostics.
	Pos() Token
}

// Statement is a Node in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root node produced by the parser: the top-level statements
// of one parse unit, in source order.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Pos returns the position of the first statement.
func (p *Program) Pos() Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return Token{Type: EOF}
}

// String returns all statements, one per line.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ── Operators ─────────────────────────────────────────────────────────────────

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Modulus
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	And
	Or
)

var binaryOpSymbols = [...]string{
	Add:          "+",
	Subtract:     "-",
	Multiply:     "*",
	Divide:       "/",
	Modulus:      "%",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
	And:          "&&",
	Or:           "||",
}

// String returns the source spelling of the operator.
func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp int

const (
	Not UnaryOp = iota
	Negate
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "!"
	case Negate:
		return "-"
	}
	return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
}

// ── Statements ────────────────────────────────────────────────────────────────

// LetStmt declares a mutable binding. Value is never nil: `let x;` carries a
// zero NumberLiteral.
//
//	let x = 42;
type LetStmt struct {
	Token Token // the 'let' token
	Name  string
	Value Expression
}

func (s *LetStmt) statementNode()       {}
func (s *LetStmt) TokenLiteral() string { return s.Token.Literal }
func (s *LetStmt) Pos() Token           { return s.Token }
func (s *LetStmt) String() string       { return "let " + s.Name + " = " + s.Value.String() + ";" }

// ConstStmt declares a binding whose initializer is mandatory.
//
//	const PI = 3.14159;
type ConstStmt struct {
	Token Token // the 'const' token
	Name  string
	Value Expression
}

func (s *ConstStmt) statementNode()       {}
func (s *ConstStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ConstStmt) Pos() Token           { return s.Token }
func (s *ConstStmt) String() string       { return "const " + s.Name + " = " + s.Value.String() + ";" }

// ExprStmt wraps an expression that appears in statement position.
type ExprStmt struct {
	Token Token // the first token of the expression
	Expr  Expression
}

func (s *ExprStmt) statementNode()       {}
func (s *ExprStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ExprStmt) Pos() Token           { return s.Token }
func (s *ExprStmt) String() string       { return s.Expr.String() + ";" }

// IfStmt is a conditional. Else is nil when there is no else branch; an
// `else if` chain nests another *IfStmt in Else.
type IfStmt struct {
	Token     Token // the 'if' token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStmt) statementNode()       {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Literal }
func (s *IfStmt) Pos() Token           { return s.Token }
func (s *IfStmt) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is a conditional loop. Body is any single statement.
type WhileStmt struct {
	Token     Token // the 'while' token
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) statementNode()       {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStmt) Pos() Token           { return s.Token }
func (s *WhileStmt) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// FunctionStmt is a named function declaration. The body is always a block.
//
//	fun add(a, b) { return a + b; }
type FunctionStmt struct {
	Token  Token // the 'fun' or 'function' token
	Name   string
	Params []string
	Body   *BlockStmt
}

func (s *FunctionStmt) statementNode()       {}
func (s *FunctionStmt) TokenLiteral() string { return s.Token.Literal }
func (s *FunctionStmt) Pos() Token           { return s.Token }
func (s *FunctionStmt) String() string {
	return "fun " + s.Name + "(" + strings.Join(s.Params, ", ") + ") " + s.Body.String()
}

// ReturnStmt returns from a function. Value is nil for a bare `return;`.
type ReturnStmt struct {
	Token Token
	Value Expression
}

func (s *ReturnStmt) statementNode()       {}
func (s *ReturnStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStmt) Pos() Token           { return s.Token }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// BlockStmt is a brace-delimited statement list. It owns its statements.
type BlockStmt struct {
	Token      Token // the '{' token
	Statements []Statement
}

func (s *BlockStmt) statementNode()       {}
func (s *BlockStmt) TokenLiteral() string { return s.Token.Literal }
func (s *BlockStmt) Pos() Token           { return s.Token }
func (s *BlockStmt) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, st := range s.Statements {
		b.WriteString(st.String())
		b.WriteByte(' ')
	}
	b.WriteString("}")
	return b.String()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// NumberLiteral is a numeric literal converted to float64.
type NumberLiteral struct {
	Token Token
	Value float64
}

func (e *NumberLiteral) expressionNode()      {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLiteral) Pos() Token           { return e.Token }
func (e *NumberLiteral) String() string       { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

// StringLiteral holds the text between the quotes, unprocessed.
type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteral) Pos() Token           { return e.Token }
func (e *StringLiteral) String() string       { return strconv.Quote(e.Value) }

// Identifier is a reference to a named binding or function.
type Identifier struct {
	Token Token
	Name  string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) Pos() Token           { return e.Token }
func (e *Identifier) String() string       { return e.Name }

// BinaryExpr is a binary infix expression: left op right.
type BinaryExpr struct {
	Token Token // the operator token
	Left  Expression
	Op    BinaryOp
	Right Expression
}

func (e *BinaryExpr) expressionNode()      {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) Pos() Token           { return e.Token }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// UnaryExpr is a prefix expression: !x or -x.
type UnaryExpr struct {
	Token   Token // the operator token
	Op      UnaryOp
	Operand Expression
}

func (e *UnaryExpr) expressionNode()      {}
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) Pos() Token           { return e.Token }
func (e *UnaryExpr) String() string       { return "(" + e.Op.String() + e.Operand.String() + ")" }

// CallExpr is a call. Callee may itself be a call: f()().
type CallExpr struct {
	Token  Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (e *CallExpr) expressionNode()      {}
func (e *CallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpr) Pos() Token           { return e.Token }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// AssignExpr stores Value into Target. Compound forms such as `i += 1` arrive
// here already rewritten to `i = (i + 1)`.
type AssignExpr struct {
	Token  Token // the assignment operator token
	Target *Identifier
	Value  Expression
}

func (e *AssignExpr) expressionNode()      {}
func (e *AssignExpr) TokenLiteral() string { return e.Token.Literal }
func (e *AssignExpr) Pos() Token           { return e.Token }
func (e *AssignExpr) String() string {
	return "(" + e.Target.String() + " = " + e.Value.String() + ")"
}
