package parser

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/token"
)

// parseCall parses `callee(args...)`. The spread form `..expr` is permitted
// in argument position (spec.md §4.F.2 allows spreading an Array into a call).
func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	args := p.parseCommaExprs(token.RPAREN)
	return &ast.CallExpr{Callee: callee, Args: args}
}

// parseIndexOrSlice parses `[expr]` (index) or `[start? : end?]` (slice).
func (p *Parser) parseIndexOrSlice(receiver ast.Expr) ast.Expr {
	if p.peekIs(token.COLON) {
		p.nextToken() // consume ':'
		p.nextToken()
		end := p.parseExpression(precLowest)
		p.expect(token.RBRACKET)
		return &ast.SliceExpr{Receiver: receiver, Start: nil, End: end}
	}
	p.nextToken()
	idx := p.parseExpression(precLowest)
	if p.peekIs(token.COLON) {
		p.nextToken() // consume ':'
		if p.peekIs(token.RBRACKET) {
			p.nextToken()
			return &ast.SliceExpr{Receiver: receiver, Start: idx, End: nil}
		}
		p.nextToken()
		end := p.parseExpression(precLowest)
		p.expect(token.RBRACKET)
		return &ast.SliceExpr{Receiver: receiver, Start: idx, End: end}
	}
	p.expect(token.RBRACKET)
	return &ast.IndexExpr{Receiver: receiver, Index: idx}
}

// parseFieldOrMethod parses `.field`, `.0` (tuple/array positional access),
// and `.method(args...)`.
func (p *Parser) parseFieldOrMethod(receiver ast.Expr) ast.Expr {
	p.nextToken() // consume '.', land on field/method name or int
	switch p.cur.Type {
	case token.INT:
		return &ast.FieldAccessExpr{Receiver: receiver, Field: p.cur.Lexeme}
	case token.IDENT, token.OK, token.ERR, token.SOME, token.NONE:
		name := p.cur.Lexeme
		if p.peekIs(token.LPAREN) {
			p.nextToken() // consume '('
			args := p.parseCommaExprs(token.RPAREN)
			return &ast.MethodCallExpr{Receiver: receiver, Method: name, Args: args}
		}
		return &ast.FieldAccessExpr{Receiver: receiver, Field: name}
	}
	p.errorf("expected field or method name after '.', got %s", p.cur.Type)
	return receiver
}
