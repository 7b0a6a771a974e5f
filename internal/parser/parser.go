// Package parser is a recursive-descent parser over internal/lexer's token
// stream, producing the generic surface tree in internal/ast. Grounded on
// the teacher's cmd/dwscript/cmd/run.go usage pattern: a parser accumulates
// string errors in an Errors() slice rather than panicking, so a host can
// report every syntax error found in one pass instead of stopping at the
// first one.
package parser

import (
	"fmt"
	"strconv"

	"github.com/simplipy-lang/simplipy-go/internal/ast"
	"github.com/simplipy-lang/simplipy-go/internal/lexer"
)

// Parser consumes tokens from a *lexer.Lexer and builds an *ast.Module.
type Parser struct {
	l      *lexer.Lexer
	cur    lexer.Token
	peek   lexer.Token
	errors []string
}

// New creates a Parser positioned at the first token of l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%s at %d:%d", msg, p.cur.Pos.Line, p.cur.Pos.Column))
}

func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == lexer.NEWLINE {
		p.next()
	}
}

// ParseModule parses the entire token stream into an *ast.Module.
func (p *Parser) ParseModule() *ast.Module {
	mod := &ast.Module{}
	p.skipNewlines()
	for p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			mod.Body = append(mod.Body, stmt)
		}
		p.skipNewlines()
	}
	return mod
}

func (p *Parser) parseBlock() []Statement {
	p.expect(lexer.COLON)
	p.expect(lexer.NEWLINE)
	p.skipNewlines()
	p.expect(lexer.INDENT)

	var body []Statement
	for p.cur.Type != lexer.DEDENT && p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT)
	return body
}

// Statement is a local alias so parseBlock reads naturally; it is the same
// interface as ast.Statement.
type Statement = ast.Statement

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.PASS:
		pos := p.cur.Pos
		p.next()
		p.expect(lexer.NEWLINE)
		return &ast.PassStmt{Position: pos}
	case lexer.BREAK:
		pos := p.cur.Pos
		p.next()
		p.expect(lexer.NEWLINE)
		return &ast.BreakStmt{Position: pos}
	case lexer.CONTINUE:
		pos := p.cur.Pos
		p.next()
		p.expect(lexer.NEWLINE)
		return &ast.ContinueStmt{Position: pos}
	case lexer.GLOBAL:
		pos := p.cur.Pos
		p.next()
		names := p.parseNameList()
		p.expect(lexer.NEWLINE)
		return &ast.GlobalStmt{Names: names, Position: pos}
	case lexer.NONLOCAL:
		pos := p.cur.Pos
		p.next()
		names := p.parseNameList()
		p.expect(lexer.NEWLINE)
		return &ast.NonlocalStmt{Names: names, Position: pos}
	case lexer.RETURN:
		pos := p.cur.Pos
		p.next()
		var val ast.Expression
		if p.cur.Type != lexer.NEWLINE {
			val = p.parseExpr()
		}
		p.expect(lexer.NEWLINE)
		return &ast.ReturnStmt{Value: val, Position: pos}
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.DEF:
		return p.parseDef()
	case lexer.FOR:
		return p.parseFor()
	case lexer.IMPORT:
		pos := p.cur.Pos
		p.next()
		name := p.expect(lexer.IDENT).Literal
		p.expect(lexer.NEWLINE)
		return &ast.ImportStmt{Name: name, Position: pos}
	case lexer.CLASS:
		return p.parseClass()
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseNameList() []string {
	var names []string
	names = append(names, p.expect(lexer.IDENT).Literal)
	for p.cur.Type == lexer.COMMA {
		p.next()
		names = append(names, p.expect(lexer.IDENT).Literal)
	}
	return names
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.cur.Pos
	p.next()
	test := p.parseExpr()
	then := p.parseBlock()
	var els []ast.Statement
	p.skipNewlines()
	if p.cur.Type == lexer.ELSE {
		p.next()
		els = p.parseBlock()
	}
	return &ast.IfStmt{Test: test, Then: then, Else: els, Position: pos}
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.cur.Pos
	p.next()
	test := p.parseExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{Test: test, Body: body, Position: pos}
}

func (p *Parser) parseDef() ast.Statement {
	pos := p.cur.Pos
	p.next()
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LPAREN)
	var params []string
	if p.cur.Type != lexer.RPAREN {
		params = append(params, p.expect(lexer.IDENT).Literal)
		for p.cur.Type == lexer.COMMA {
			p.next()
			params = append(params, p.expect(lexer.IDENT).Literal)
		}
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.DefStmt{Name: name, Params: params, Body: body, Position: pos}
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.cur.Pos
	p.next()
	target := p.parseExpr()
	p.expect(lexer.IN)
	iter := p.parseExpr()
	body := p.parseBlock()
	return &ast.ForStmt{Target: target, Iter: iter, Body: body, Position: pos}
}

func (p *Parser) parseClass() ast.Statement {
	pos := p.cur.Pos
	p.next()
	name := p.expect(lexer.IDENT).Literal
	body := p.parseBlock()
	return &ast.ClassStmt{Name: name, Body: body, Position: pos}
}

func (p *Parser) parseExprOrAssignStatement() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpr()

	switch p.cur.Type {
	case lexer.ASSIGN:
		p.next()
		value := p.parseExpr()
		p.expect(lexer.NEWLINE)
		return &ast.AssignStmt{Target: expr, Value: value, Position: pos}
	case lexer.PLUSEQ, lexer.MINUSEQ, lexer.STAREQ, lexer.SLASHEQ:
		op := augOp(p.cur.Type)
		p.next()
		value := p.parseExpr()
		p.expect(lexer.NEWLINE)
		return &ast.AugAssignStmt{Target: expr, Op: op, Value: value, Position: pos}
	default:
		p.expect(lexer.NEWLINE)
		return &ast.ExprStmt{Value: expr, Position: pos}
	}
}

func augOp(t lexer.TokenType) string {
	switch t {
	case lexer.PLUSEQ:
		return "+"
	case lexer.MINUSEQ:
		return "-"
	case lexer.STAREQ:
		return "*"
	case lexer.SLASHEQ:
		return "/"
	}
	return "?"
}

// Expression parsing, lowest to highest precedence:
//
//	or
//	and
//	not
//	comparisons (chained)
//	|
//	^
//	&
//	<< >>
//	+ -
//	* / // % @
//	unary + - ~
//	**
//	atom / call / grouping

func (p *Parser) parseExpr() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.cur.Type == lexer.OR {
		pos := p.cur.Pos
		p.next()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Op: "or", Left: left, Right: right, Position: pos}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.cur.Type == lexer.AND {
		pos := p.cur.Pos
		p.next()
		right := p.parseNot()
		left = &ast.BinaryExpr{Op: "and", Left: left, Right: right, Position: pos}
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.cur.Type == lexer.NOT {
		pos := p.cur.Pos
		p.next()
		operand := p.parseNot()
		return &ast.UnaryExpr{Op: "not", Operand: operand, Position: pos}
	}
	return p.parseComparison()
}

var compareOps = map[lexer.TokenType]string{
	lexer.EQ: "==", lexer.NE: "!=",
	lexer.LT: "<", lexer.LE: "<=",
	lexer.GT: ">", lexer.GE: ">=",
	lexer.IS: "is", lexer.IN: "in",
}

func (p *Parser) parseComparison() ast.Expression {
	first := p.parseBitOr()
	var operands []ast.Expression
	var ops []string
	pos := p.cur.Pos

	for {
		op, ok := p.tryCompareOp()
		if !ok {
			break
		}
		if len(operands) == 0 {
			operands = append(operands, first)
		}
		ops = append(ops, op)
		operands = append(operands, p.parseBitOr())
	}

	if len(ops) == 0 {
		return first
	}
	return &ast.CompareExpr{Operands: operands, Ops: ops, Position: pos}
}

// tryCompareOp consumes a (possibly two-word) comparison operator if one is
// present at the cursor: `is`, `is not`, `in`, `not in`, or a symbolic op.
func (p *Parser) tryCompareOp() (string, bool) {
	switch p.cur.Type {
	case lexer.IS:
		p.next()
		if p.cur.Type == lexer.NOT {
			p.next()
			return "is not", true
		}
		return "is", true
	case lexer.NOT:
		if p.peek.Type == lexer.IN {
			p.next()
			p.next()
			return "not in", true
		}
		return "", false
	default:
		if op, ok := compareOps[p.cur.Type]; ok {
			p.next()
			return op, true
		}
		return "", false
	}
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.cur.Type == lexer.PIPE {
		pos := p.cur.Pos
		p.next()
		left = &ast.BinaryExpr{Op: "|", Left: left, Right: p.parseBitXor(), Position: pos}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.cur.Type == lexer.CARET {
		pos := p.cur.Pos
		p.next()
		left = &ast.BinaryExpr{Op: "^", Left: left, Right: p.parseBitAnd(), Position: pos}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseShift()
	for p.cur.Type == lexer.AMP {
		pos := p.cur.Pos
		p.next()
		left = &ast.BinaryExpr{Op: "&", Left: left, Right: p.parseShift(), Position: pos}
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAddSub()
	for p.cur.Type == lexer.LSHIFT || p.cur.Type == lexer.RSHIFT {
		op := "<<"
		if p.cur.Type == lexer.RSHIFT {
			op = ">>"
		}
		pos := p.cur.Pos
		p.next()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: p.parseAddSub(), Position: pos}
	}
	return left
}

func (p *Parser) parseAddSub() ast.Expression {
	left := p.parseMulDiv()
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := "+"
		if p.cur.Type == lexer.MINUS {
			op = "-"
		}
		pos := p.cur.Pos
		p.next()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: p.parseMulDiv(), Position: pos}
	}
	return left
}

var mulDivOps = map[lexer.TokenType]string{
	lexer.STAR: "*", lexer.SLASH: "/", lexer.DBLSLASH: "//",
	lexer.PERCENT: "%", lexer.AT: "@",
}

func (p *Parser) parseMulDiv() ast.Expression {
	left := p.parseUnary()
	for {
		op, ok := mulDivOps[p.cur.Type]
		if !ok {
			break
		}
		pos := p.cur.Pos
		p.next()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: p.parseUnary(), Position: pos}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case lexer.PLUS, lexer.MINUS, lexer.TILDE:
		op := map[lexer.TokenType]string{lexer.PLUS: "+", lexer.MINUS: "-", lexer.TILDE: "~"}[p.cur.Type]
		pos := p.cur.Pos
		p.next()
		return &ast.UnaryExpr{Op: op, Operand: p.parseUnary(), Position: pos}
	default:
		return p.parsePower()
	}
}

func (p *Parser) parsePower() ast.Expression {
	base := p.parsePostfix()
	if p.cur.Type == lexer.DBLSTAR {
		pos := p.cur.Pos
		p.next()
		exp := p.parseUnary() // right-associative, binds tighter than unary on the left
		return &ast.BinaryExpr{Op: "**", Left: base, Right: exp, Position: pos}
	}
	return base
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseAtom()
	for p.cur.Type == lexer.LPAREN {
		pos := p.cur.Pos
		p.next()
		var args []ast.Expression
		if p.cur.Type != lexer.RPAREN {
			args = append(args, p.parseExpr())
			for p.cur.Type == lexer.COMMA {
				p.next()
				args = append(args, p.parseExpr())
			}
		}
		p.expect(lexer.RPAREN)
		expr = &ast.CallExpr{Callee: expr, Args: args, Position: pos}
	}
	return expr
}

func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case lexer.INT:
		p.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.IntLit{Value: v, Position: tok.Pos}
	case lexer.FLOAT:
		p.next()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf("invalid float literal %q", tok.Literal)
		}
		return &ast.FloatLit{Value: v, Position: tok.Pos}
	case lexer.STRING:
		p.next()
		return &ast.StringLit{Value: tok.Literal, Position: tok.Pos}
	case lexer.TRUE:
		p.next()
		return &ast.BoolLit{Value: true, Position: tok.Pos}
	case lexer.FALSE:
		p.next()
		return &ast.BoolLit{Value: false, Position: tok.Pos}
	case lexer.NONE:
		p.next()
		return &ast.NoneLit{Position: tok.Pos}
	case lexer.IDENT:
		p.next()
		return &ast.Name{Value: tok.Literal, Position: tok.Pos}
	case lexer.LAMBDA:
		p.errorf("lambda expressions are not supported")
		p.next()
		return &ast.NoneLit{Position: tok.Pos}
	case lexer.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN)
		return expr
	default:
		p.errorf("unexpected token %s %q in expression", tok.Type, tok.Literal)
		p.next()
		return &ast.NoneLit{Position: tok.Pos}
	}
}
