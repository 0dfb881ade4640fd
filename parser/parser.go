// Package parser implements the sheesh recursive-descent parser.
//
// The parser walks a materialised token slice with a single cursor and one
// token of look-ahead, and builds an [ast.Program]. Expression precedence is
// encoded as a chain of grammar tiers, lowest binding first:
//
//	assignment  = += -= *= /= %=   (right-associative)
//	logic_or    ||
//	logic_and   &&
//	equality    == !=
//	comparison  < <= > >=
//	term        + -
//	factor      * / %
//	unary       ! -                (prefix)
//	call        f(...)             (chains left to right)
//
// Usage:
//
//	toks, err := lexer.Tokenize(source)
//	prog, err := parser.New(toks).Parse()
//
// There is no error recovery: the first grammar violation aborts the parse
// and is returned as a *Error.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/metaphox/sheesh/ast"
	"github.com/metaphox/sheesh/lexer"
)

var (
	// ErrUnexpectedToken is reported when the current token does not fit the grammar.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrInvalidAssignTarget is reported when the left side of an assignment
	// is not a plain identifier.
	ErrInvalidAssignTarget = errors.New("invalid assignment target")
	// ErrBadNumber is reported when a NUMBER token does not convert to float64.
	ErrBadNumber = errors.New("malformed number literal")
)

// Error is a parse error. Token is the offending token and Index its position
// in the token stream handed to [New].
type Error struct {
	Err   error
	Msg   string
	Token ast.Token
	Index int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s (token %d)", e.Token.Line, e.Token.Col, e.Msg, e.Index)
}

func (e *Error) Unwrap() error { return e.Err }

// Parser holds the token stream and the cursor into it.
// Create one with [New] and call [Parser.Parse] once.
type Parser struct {
	tokens  []ast.Token
	current int // index of the next unconsumed token
}

// New creates a Parser over tokens. The stream should end with an EOF token,
// as [lexer.Lexer.Tokenize] guarantees; one is appended if it is missing.
func New(tokens []ast.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != ast.EOF {
		eof := ast.Token{Type: ast.EOF}
		if n > 0 {
			last := tokens[n-1]
			eof.Offset = last.Offset + len(last.Literal)
			eof.Line = last.Line
			eof.Col = last.Col + len(last.Literal)
		}
		tokens = append(tokens[:n:n], eof)
	}
	p := &Parser{tokens: tokens}
	p.skipComments()
	return p
}

// ParseString tokenises and parses src in one step. Lexical failures come
// back as *lexer.Error, grammar failures as *Error.
func ParseString(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(toks).Parse()
}

// Parse builds the complete AST for the token stream.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		s, err := p.declaration()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog, nil
}

// ── Declarations and statements ──────────────────────────────────────────────

func (p *Parser) declaration() (ast.Statement, error) {
	switch p.peek().Type {
	case ast.LET:
		return p.letDeclaration()
	case ast.CONST:
		return p.constDeclaration()
	case ast.FUNCTION:
		return p.functionDeclaration()
	}
	return p.statement()
}

// letDeclaration parses `let name (= expr)? ;`. A missing initializer becomes
// a zero NumberLiteral positioned at the name.
func (p *Parser) letDeclaration() (ast.Statement, error) {
	tok := p.advance()
	name, err := p.consume(ast.IDENT, "variable name")
	if err != nil {
		return nil, err
	}

	var value ast.Expression
	if p.match(ast.ASSIGN) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	} else {
		zero := name
		zero.Type, zero.Literal = ast.NUMBER, "0"
		value = &ast.NumberLiteral{Token: zero, Value: 0}
	}

	if _, err := p.consume(ast.SEMICOLON, "';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Token: tok, Name: name.Literal, Value: value}, nil
}

func (p *Parser) constDeclaration() (ast.Statement, error) {
	tok := p.advance()
	name, err := p.consume(ast.IDENT, "constant name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.ASSIGN, "'=' after constant name"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.SEMICOLON, "';' after constant declaration"); err != nil {
		return nil, err
	}
	return &ast.ConstStmt{Token: tok, Name: name.Literal, Value: value}, nil
}

// functionDeclaration parses `fun name(a, b) { ... }`. The body must be a block.
func (p *Parser) functionDeclaration() (ast.Statement, error) {
	tok := p.advance()
	name, err := p.consume(ast.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.LPAREN, "'(' after function name"); err != nil {
		return nil, err
	}

	params := []string{}
	if !p.check(ast.RPAREN) {
		for {
			param, err := p.consume(ast.IDENT, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Literal)
			if !p.match(ast.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(ast.RPAREN, "')' after parameters"); err != nil {
		return nil, err
	}

	open, err := p.consume(ast.LBRACE, "'{' before function body")
	if err != nil {
		return nil, err
	}
	body, err := p.block(open)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Token: tok, Name: name.Literal, Params: params, Body: body}, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch p.peek().Type {
	case ast.IF:
		return p.ifStatement()
	case ast.WHILE:
		return p.whileStatement()
	case ast.RETURN:
		return p.returnStatement()
	case ast.LBRACE:
		return p.block(p.advance())
	}
	return p.expressionStatement()
}

// ifStatement parses `if (cond) stmt (else stmt)?`. An else binds to the
// nearest if, and `else if` falls out of the recursion into statement.
func (p *Parser) ifStatement() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parenCondition("if")
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}
	if p.match(ast.ELSE) {
		if stmt.Else, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parenCondition("while")
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}, nil
}

// parenCondition parses `( expr )` after the given keyword.
func (p *Parser) parenCondition(keyword string) (ast.Expression, error) {
	if _, err := p.consume(ast.LPAREN, "'(' after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.RPAREN, "')' after "+keyword+" condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// returnStatement parses `return expr? ;`. A ';' right after the keyword
// means there is no value.
func (p *Parser) returnStatement() (ast.Statement, error) {
	tok := p.advance()
	stmt := &ast.ReturnStmt{Token: tok}
	if !p.check(ast.SEMICOLON) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.consume(ast.SEMICOLON, "';' after return value"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// block parses declarations up to the closing '}'. The opening '{' has
// already been consumed and is passed in as open.
func (p *Parser) block(open ast.Token) (*ast.BlockStmt, error) {
	b := &ast.BlockStmt{Token: open, Statements: []ast.Statement{}}
	for !p.check(ast.RBRACE) && !p.isAtEnd() {
		s, err := p.declaration()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, s)
	}
	if _, err := p.consume(ast.RBRACE, "'}' after block"); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	tok := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.SEMICOLON, "';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Token: tok, Expr: expr}, nil
}

// ── Expressions ──────────────────────────────────────────────────────────────

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// compoundOps maps each compound assignment operator to the binary operator
// it expands to, and the token kind of that operator.
var compoundOps = map[ast.TokenType]struct {
	op  ast.BinaryOp
	tok ast.TokenType
}{
	ast.PLUS_ASSIGN:     {ast.Add, ast.PLUS},
	ast.MINUS_ASSIGN:    {ast.Subtract, ast.MINUS},
	ast.ASTERISK_ASSIGN: {ast.Multiply, ast.ASTERISK},
	ast.SLASH_ASSIGN:    {ast.Divide, ast.SLASH},
	ast.PERCENT_ASSIGN:  {ast.Modulus, ast.PERCENT},
}

// assignment parses a right-associative assignment. `x op= v` is rewritten to
// `x = x op v` with a fresh Identifier on the right so no node has two parents.
// The synthesized binary node carries a token for `op` at the position of `op=`.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	opTok := p.peek()
	desugar, compound := compoundOps[opTok.Type]
	if opTok.Type != ast.ASSIGN && !compound {
		return expr, nil
	}

	target, ok := expr.(*ast.Identifier)
	if !ok {
		return nil, &Error{
			Err:   ErrInvalidAssignTarget,
			Msg:   fmt.Sprintf("invalid assignment target for %s: %s", opTok.Type, expr),
			Token: opTok,
			Index: p.current,
		}
	}
	p.advance()

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if compound {
		binTok := opTok
		binTok.Type = desugar.tok
		binTok.Literal = strings.TrimSuffix(opTok.Literal, "=")
		left := &ast.Identifier{Token: target.Token, Name: target.Name}
		value = &ast.BinaryExpr{Token: binTok, Left: left, Op: desugar.op, Right: value}
	}
	return &ast.AssignExpr{Token: opTok, Target: target, Value: value}, nil
}

var (
	logicOrOps    = map[ast.TokenType]ast.BinaryOp{ast.OR: ast.Or}
	logicAndOps   = map[ast.TokenType]ast.BinaryOp{ast.AND: ast.And}
	equalityOps   = map[ast.TokenType]ast.BinaryOp{ast.EQ: ast.Equal, ast.NEQ: ast.NotEqual}
	comparisonOps = map[ast.TokenType]ast.BinaryOp{
		ast.LT:  ast.Less,
		ast.LTE: ast.LessEqual,
		ast.GT:  ast.Greater,
		ast.GTE: ast.GreaterEqual,
	}
	termOps   = map[ast.TokenType]ast.BinaryOp{ast.PLUS: ast.Add, ast.MINUS: ast.Subtract}
	factorOps = map[ast.TokenType]ast.BinaryOp{
		ast.ASTERISK: ast.Multiply,
		ast.SLASH:    ast.Divide,
		ast.PERCENT:  ast.Modulus,
	}
)

func (p *Parser) logicOr() (ast.Expression, error)  { return p.binary(p.logicAnd, logicOrOps) }
func (p *Parser) logicAnd() (ast.Expression, error) { return p.binary(p.equality, logicAndOps) }
func (p *Parser) equality() (ast.Expression, error) { return p.binary(p.comparison, equalityOps) }
func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term, comparisonOps)
}
func (p *Parser) term() (ast.Expression, error)   { return p.binary(p.factor, termOps) }
func (p *Parser) factor() (ast.Expression, error) { return p.binary(p.unary, factorOps) }

// binary parses one left-associative tier: next (op next)*.
func (p *Parser) binary(next func() (ast.Expression, error), ops map[ast.TokenType]ast.BinaryOp) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek().Type]
		if !ok {
			return expr, nil
		}
		tok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Token: tok, Left: expr, Op: op, Right: right}
	}
}

func (p *Parser) unary() (ast.Expression, error) {
	var op ast.UnaryOp
	switch p.peek().Type {
	case ast.BANG:
		op = ast.Not
	case ast.MINUS:
		op = ast.Negate
	default:
		return p.call()
	}
	tok := p.advance()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: operand}, nil
}

// call parses primary followed by any number of argument lists, so f()()
// calls the result of f().
func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.check(ast.LPAREN) {
		open := p.advance()
		args := []ast.Expression{}
		if !p.check(ast.RPAREN) {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(ast.COMMA) {
					break
				}
			}
		}
		if _, err := p.consume(ast.RPAREN, "')' after arguments"); err != nil {
			return nil, err
		}
		expr = &ast.CallExpr{Token: open, Callee: expr, Args: args}
	}
	return expr, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case ast.NUMBER:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			var numErr *strconv.NumError
			reason := err.Error()
			if errors.As(err, &numErr) {
				reason = numErr.Err.Error()
			}
			return nil, &Error{
				Err:   ErrBadNumber,
				Msg:   fmt.Sprintf("malformed number literal %q: %s", tok.Literal, reason),
				Token: tok,
				Index: p.current,
			}
		}
		p.advance()
		return &ast.NumberLiteral{Token: tok, Value: value}, nil

	case ast.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil

	case ast.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}, nil

	case ast.LPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.RPAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.unexpected("expression")
}

// ── Internal token management ────────────────────────────────────────────────

func (p *Parser) peek() ast.Token { return p.tokens[p.current] }

func (p *Parser) isAtEnd() bool { return p.peek().Type == ast.EOF }

func (p *Parser) check(tt ast.TokenType) bool { return p.peek().Type == tt }

// advance consumes the current token and returns it. EOF is never consumed;
// at the end of input advance returns the EOF token itself.
func (p *Parser) advance() ast.Token {
	if p.isAtEnd() {
		return p.peek()
	}
	tok := p.tokens[p.current]
	p.current++
	p.skipComments()
	return tok
}

func (p *Parser) skipComments() {
	for p.tokens[p.current].Type == ast.COMMENT {
		p.current++
	}
}

// match consumes the current token if it has type tt.
func (p *Parser) match(tt ast.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// consume requires the current token to have type tt. what names the
// construct for the error message, e.g. "';' after expression".
func (p *Parser) consume(tt ast.TokenType, what string) (ast.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return ast.Token{}, p.unexpected(what)
}

func (p *Parser) unexpected(what string) *Error {
	tok := p.peek()
	return &Error{
		Err:   ErrUnexpectedToken,
		Msg:   fmt.Sprintf("expected %s, got %s", what, tok.Describe()),
		Token: tok,
		Index: p.current,
	}
}
