// Package parser implements a hand-written recursive-descent parser that
// turns a token stream from internal/lexer into the AST node shapes
// spec.md §6 requires. Like the lexer, the grammar itself is an external
// collaborator in spec.md's own framing — this implementation exists so
// the repository is a complete, runnable compiler.
package parser

import (
	"fmt"

	"github.com/goepl/epl/internal/ast"
	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/lexer"
)

// Parser consumes a token stream and builds an AST.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  lexer.Token
	peek lexer.Token

	err error
}

// New creates a Parser over l.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{File: p.file, Line: p.cur.Line, Offset: p.cur.Column}
}

func (p *Parser) fail(code string, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = &errors.Report{Code: code, Phase: errors.PhaseParser, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	tok := p.cur
	if tok.Type != t {
		p.fail(errors.PAR001, "unexpected token %s(%q) at %d:%d, expected %s", tok.Type, tok.Literal, tok.Line, tok.Column, t)
	}
	p.advance()
	return tok
}

// Parse parses an entire EPL source file into a Program.
func Parse(src, file string) (*ast.Program, error) {
	l := lexer.New(string(lexer.Normalize([]byte(src))), file)
	p := New(l, file)
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *Parser) parseProgram() *ast.Program {
	pos := p.pos()
	prog := &ast.Program{Pos: pos}
	for p.cur.Type != lexer.EOF && p.err == nil {
		stmt := p.parseStatement()
		if p.err != nil {
			break
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.pos()
	p.expect(lexer.LBRACE)
	b := &ast.Block{Pos: pos}
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF && p.err == nil {
		b.Statements = append(b.Statements, p.parseStatement())
	}
	p.expect(lexer.RBRACE)
	return b
}

func (p *Parser) parseStatement() ast.Node {
	switch p.cur.Type {
	case lexer.ENUM:
		return p.parseEnumDef()
	case lexer.TYPE:
		return p.parseTypeAlias()
	case lexer.LET, lexer.VAR:
		return p.parseVarDef()
	case lexer.FN:
		if p.peek.Type == lexer.IDENT {
			return p.parseFuncDef()
		}
		return p.parseExprStatement()
	case lexer.IDENT:
		if p.peek.Type == lexer.ASSIGN {
			return p.parseAssignment()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseExprStatement() ast.Node {
	return p.parseExpr()
}

func (p *Parser) parseAssignment() ast.Node {
	pos := p.pos()
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.ASSIGN)
	value := p.parseExpr()
	return &ast.Assignment{Destination: name, Value: value, Pos: pos}
}

func (p *Parser) parseEnumDef() *ast.Enum {
	pos := p.pos()
	p.expect(lexer.ENUM)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LBRACE)
	var values []string
	for p.cur.Type != lexer.RBRACE && p.err == nil {
		values = append(values, p.expect(lexer.IDENT).Literal)
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.Enum{Name: name, Values: values, Pos: pos}
}

func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	pos := p.pos()
	p.expect(lexer.TYPE)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.ASSIGN)
	target := p.parseExpr()
	return &ast.TypeAlias{Name: name, Target: target, Pos: pos}
}

func (p *Parser) parseVarDef() *ast.Var {
	pos := p.pos()
	readonly := p.cur.Type == lexer.LET
	p.advance() // LET or VAR
	name := p.expect(lexer.IDENT).Literal
	var typeExpr ast.Expr
	if p.cur.Type == lexer.COLON {
		p.advance()
		typeExpr = p.parseExpr()
	}
	p.expect(lexer.ASSIGN)
	value := p.parseExpr()
	return &ast.Var{Name: name, Type: typeExpr, Readonly: readonly, Value: value, Pos: pos}
}

func (p *Parser) parseArgList() []*ast.Var {
	var args []*ast.Var
	for p.cur.Type != lexer.RPAREN && p.err == nil {
		pos := p.pos()
		name := p.expect(lexer.IDENT).Literal
		p.expect(lexer.COLON)
		typeExpr := p.parseExpr()
		args = append(args, &ast.Var{Name: name, Type: typeExpr, Readonly: true, Pos: pos})
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	return args
}

func (p *Parser) parseFuncLiteralTail(pos ast.Pos, name string) *ast.Func {
	p.expect(lexer.LPAREN)
	args := p.parseArgList()
	p.expect(lexer.RPAREN)
	var ret ast.Expr
	if p.cur.Type == lexer.ARROW {
		p.advance()
		ret = p.parseExpr()
	}
	body := p.parseBlock()
	return &ast.Func{Name: name, Args: args, ReturnType: ret, Body: body, Pos: pos}
}

func (p *Parser) parseFuncDef() *ast.Func {
	pos := p.pos()
	p.expect(lexer.FN)
	name := p.expect(lexer.IDENT).Literal
	return p.parseFuncLiteralTail(pos, name)
}

func (p *Parser) parseIf() *ast.If {
	pos := p.pos()
	p.expect(lexer.IF)
	cond := p.parseExpr()
	onTrue := p.parseBlock()
	var onFalse *ast.Block
	if p.cur.Type == lexer.ELSE {
		p.advance()
		if p.cur.Type == lexer.IF {
			// `else if` desugars to `else { if ... }`
			innerPos := p.pos()
			onFalse = &ast.Block{Pos: innerPos, Statements: []ast.Node{p.parseIf()}}
		} else {
			onFalse = p.parseBlock()
		}
	}
	return &ast.If{Cond: cond, OnTrue: onTrue, OnFalse: onFalse, Pos: pos}
}

func (p *Parser) parseWhile() *ast.While {
	pos := p.pos()
	p.expect(lexer.WHILE)
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{Cond: cond, Body: body, Pos: pos}
}

// parseExpr parses a primary expression followed by any chain of call
// and attribute-access postfixes. EPL has no infix operators at all
// (arithmetic and comparison are ordinary calls, e.g. add(a, b)), so no
// precedence climbing is needed beyond this postfix loop.
func (p *Parser) parseExpr() ast.Expr {
	expr := p.parsePrimary()
	for p.err == nil {
		switch p.cur.Type {
		case lexer.LPAREN:
			expr = p.parseCallTail(expr)
		case lexer.DOT:
			expr = p.parseAttributeTail(expr)
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parseCallTail(callee ast.Expr) ast.Expr {
	pos := callee.Position()
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN && p.err == nil {
		args = append(args, p.parseExpr())
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.Call{Callee: callee, Args: args, Pos: pos}
}

func (p *Parser) parseAttributeTail(obj ast.Expr) ast.Expr {
	pos := obj.Position()
	p.expect(lexer.DOT)
	attr := p.expect(lexer.IDENT).Literal
	return &ast.AttributeAccess{Obj: obj, Attribute: attr, Pos: pos}
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.INT:
		lit := p.cur.Literal
		p.advance()
		var v int64
		fmt.Sscanf(lit, "%d", &v)
		return &ast.Value{Kind: ast.IntValue, Int: v, Pos: pos}
	case lexer.FLOAT:
		lit := p.cur.Literal
		p.advance()
		var v float64
		fmt.Sscanf(lit, "%g", &v)
		return &ast.Value{Kind: ast.FloatValue, Float: v, Pos: pos}
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.Term{Name: name, Pos: pos}
	case lexer.LPAREN:
		p.advance()
		var members []ast.Expr
		for p.cur.Type != lexer.RPAREN && p.err == nil {
			members = append(members, p.parseExpr())
			if p.cur.Type == lexer.COMMA {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
		if len(members) == 1 {
			return members[0]
		}
		return &ast.Tuple{Members: members, Pos: pos}
	case lexer.ENUM:
		p.advance()
		p.expect(lexer.LBRACE)
		var values []string
		for p.cur.Type != lexer.RBRACE && p.err == nil {
			values = append(values, p.expect(lexer.IDENT).Literal)
			if p.cur.Type == lexer.COMMA {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.RBRACE)
		return &ast.Enum{Values: values, Pos: pos}
	case lexer.FN:
		p.advance()
		return p.parseFuncLiteralTail(pos, "")
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		p.fail(errors.PAR001, "unexpected token %s(%q) at %d:%d", p.cur.Type, p.cur.Literal, p.cur.Line, p.cur.Column)
		p.advance()
		return &ast.Value{Kind: ast.IntValue, Int: 0, Pos: pos}
	}
}
