package parser

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/token"
)

// parseLet implements spec.md §4.F.2's `let pattern = value [else block]`,
// with an optional trailing body expression for non-block-terminal lets
// (REPL/expression-sequencing ergonomics noted on ast.LetExpr.Body).
func (p *Parser) parseLet() ast.Expr {
	p.nextToken() // consume LET
	if p.curIs(token.MUT) {
		// `let mut x = ...` — MUT is folded into the pattern as a MutPattern.
	}
	saveNoDefault := p.noPatternDefault
	p.noPatternDefault = true
	pat := p.parsePattern()
	p.noPatternDefault = saveNoDefault
	if p.peekIs(token.COLON) {
		p.nextToken() // consume ':'
		p.nextToken()
		// type annotation parsed and discarded (dynamically typed values).
		p.skipTypeAnnotation()
	}
	p.expect(token.ASSIGN)
	p.nextToken()
	val := p.parseExpression(precLowest)
	n := &ast.LetExpr{Pattern: pat, Value: val}
	if p.peekIs(token.ELSE) {
		p.nextToken() // consume ELSE
		p.expect(token.LBRACE)
		n.Else = p.parseBlock()
	}
	return n
}

func (p *Parser) parseIf() ast.Expr {
	save := p.noStructLiteral
	p.noStructLiteral = true
	p.nextToken() // consume IF, land on the condition's first token
	cond := p.parseExpression(precLowest)
	p.noStructLiteral = save
	p.expect(token.LBRACE)
	then := p.parseBlock()
	n := &ast.IfExpr{Cond: cond, Then: then}
	if p.peekIs(token.ELSE) {
		p.nextToken() // consume ELSE
		if p.peekIs(token.IF) {
			p.nextToken()
			n.Else = p.parseIf()
		} else {
			p.expect(token.LBRACE)
			n.Else = p.parseBlock()
		}
	}
	return n
}

func (p *Parser) parseMatch() ast.Expr {
	save := p.noStructLiteral
	p.noStructLiteral = true
	p.nextToken() // consume MATCH, land on the scrutinee's first token
	scrutinee := p.parseExpression(precLowest)
	p.noStructLiteral = save
	p.expect(token.LBRACE)
	n := &ast.MatchExpr{Scrutinee: scrutinee}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		pat := p.parsePattern()
		arm := ast.MatchArm{Pattern: pat}
		if p.peekIs(token.IF) {
			p.nextToken() // consume IF
			p.nextToken()
			arm.Guard = p.parseExpression(precLowest)
		}
		p.expect(token.FAT_ARROW)
		p.nextToken()
		arm.Body = p.parseExpression(precLowest)
		n.Arms = append(n.Arms, arm)
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return n
}

func (p *Parser) parseWhile(label string) ast.Expr {
	save := p.noStructLiteral
	p.noStructLiteral = true
	p.nextToken() // consume WHILE, land on the condition's first token
	cond := p.parseExpression(precLowest)
	p.noStructLiteral = save
	p.expect(token.LBRACE)
	body := p.parseBlock()
	return &ast.WhileExpr{Label: label, Cond: cond, Body: body}
}

func (p *Parser) parseFor(label string) ast.Expr {
	p.nextToken() // consume FOR
	n := &ast.ForExpr{Label: label}
	if p.curIs(token.IDENT) && p.peekIs(token.IN) {
		n.VarName = p.cur.Lexeme
		p.nextToken() // consume IN
	} else {
		n.Pattern = p.parsePattern()
		p.expect(token.IN)
	}
	save := p.noStructLiteral
	p.noStructLiteral = true
	p.nextToken()
	n.Iterable = p.parseExpression(precLowest)
	p.noStructLiteral = save
	p.expect(token.LBRACE)
	n.Body = p.parseBlock()
	return n
}

func (p *Parser) parseLoop(label string) ast.Expr {
	p.expect(token.LBRACE) // consume LOOP, land on '{'
	body := p.parseBlock()
	return &ast.LoopExpr{Label: label, Body: body}
}

// parseLabeledLoop handles `@label: while/for/loop { ... }` (spec.md §4.F.2
// labeled loops, used with labeled break/continue).
func (p *Parser) parseLabeledLoop() ast.Expr {
	p.nextToken() // consume '@'
	label := p.cur.Lexeme
	p.expect(token.COLON)
	p.nextToken()
	switch p.cur.Type {
	case token.WHILE:
		return p.parseWhile(label)
	case token.FOR:
		return p.parseFor(label)
	case token.LOOP:
		return p.parseLoop(label)
	}
	p.errorf("expected a loop after label, got %s", p.cur.Type)
	return nil
}

func (p *Parser) parseBreak() ast.Expr {
	n := &ast.BreakExpr{}
	if p.peekIs(token.AT) {
		p.nextToken() // consume '@'
		p.expect(token.IDENT)
		n.Label = p.cur.Lexeme
	}
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		n.Value = p.parseExpression(precLowest)
	}
	return n
}

func (p *Parser) parseContinue() ast.Expr {
	n := &ast.ContinueExpr{}
	if p.peekIs(token.AT) {
		p.nextToken() // consume '@'
		p.expect(token.IDENT)
		n.Label = p.cur.Lexeme
	}
	return n
}

func (p *Parser) parseReturn() ast.Expr {
	n := &ast.ReturnExpr{}
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		n.Value = p.parseExpression(precLowest)
	}
	return n
}

func (p *Parser) parseTry() ast.Expr {
	p.expect(token.LBRACE) // consume TRY, land on '{'
	n := &ast.TryExpr{Try: p.parseBlock()}
	for p.peekIs(token.CATCH) {
		p.nextToken() // consume CATCH
		p.nextToken()
		saveNoStructPat := p.noStructPattern
		p.noStructPattern = true
		pat := p.parsePattern()
		p.noStructPattern = saveNoStructPat
		p.expect(token.LBRACE)
		n.Catches = append(n.Catches, ast.CatchClause{Pattern: pat, Body: p.parseBlock()})
	}
	if p.peekIs(token.FINALLY) {
		p.nextToken() // consume FINALLY
		p.expect(token.LBRACE)
		n.Finally = p.parseBlock()
	}
	return n
}

// parseLambdaKeyword implements `fn(params) { body }` / `fn(params) => expr`.
func (p *Parser) parseLambdaKeyword() ast.Expr {
	p.expect(token.LPAREN) // consume FN, land on '('
	params := p.parseParamList()
	n := &ast.LambdaExpr{Params: params}
	if p.peekIs(token.FAT_ARROW) {
		p.nextToken() // consume '=>'
		p.nextToken()
		n.Body = p.parseExpression(precLowest)
		return n
	}
	p.expect(token.LBRACE)
	n.Body = p.parseBlock()
	return n
}

// parseLambdaPipe implements Rust-closure-style `|params| expr`.
func (p *Parser) parseLambdaPipe() ast.Expr {
	p.nextToken() // consume opening '|'
	var params []ast.Param
	if !p.curIs(token.PIPE) {
		for {
			name := p.cur.Lexeme
			param := ast.Param{Name: name}
			if p.peekIs(token.ASSIGN) {
				p.nextToken() // consume '='
				p.nextToken()
				param.Default = p.parseExpression(precLowest)
			}
			params = append(params, param)
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.PIPE)
	}
	p.nextToken()
	body := p.parseExpression(precLowest)
	return &ast.LambdaExpr{Params: params, Body: body}
}

func (p *Parser) parseAsync() ast.Expr {
	p.expect(token.LBRACE) // consume ASYNC, land on '{'
	return &ast.AsyncBlockExpr{Body: p.parseBlock()}
}

// parseParamList parses a parenthesized parameter list with optional
// `name = default` defaults; assumes cur is LPAREN on entry and leaves cur on
// RPAREN.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		if p.curIs(token.MUT) {
			p.nextToken()
		}
		name := p.cur.Lexeme
		param := ast.Param{Name: name}
		if p.peekIs(token.ASSIGN) {
			p.nextToken() // consume '='
			p.nextToken()
			param.Default = p.parseExpression(precLowest)
		}
		params = append(params, param)
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}
