package parser

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/token"
)

func (p *Parser) parseFunctionDecl(isPub bool) ast.Expr {
	p.expect(token.IDENT) // consume FN, land on the name
	name := p.cur.Lexeme
	p.expect(token.LPAREN)
	params := p.parseParamList()
	isAsync := false
	if p.peekIs(token.ARROW) {
		// optional return-type annotation: `fn f(x) -> Type { ... }`; glint's
		// value model is dynamically typed, so the annotation is parsed and
		// discarded rather than attached to the AST.
		p.nextToken() // consume '->'
		p.nextToken()
	}
	p.expect(token.LBRACE)
	body := p.parseBlock()
	return &ast.FunctionDecl{Name: name, Params: params, Body: body, IsAsync: isAsync, IsPub: isPub}
}

func (p *Parser) parseFieldDeclList() []ast.FieldDecl {
	var fields []ast.FieldDecl
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		if p.curIs(token.FN) {
			// lookahead hit a method inside what looks like a field list;
			// caller (parseClassDecl) handles this case separately.
			break
		}
		fd := ast.FieldDecl{Name: p.cur.Lexeme}
		if p.peekIs(token.COLON) {
			p.nextToken() // consume ':'
			p.nextToken()
			// type annotation parsed and discarded (dynamically typed values).
			p.skipTypeAnnotation()
		}
		if p.peekIs(token.ASSIGN) {
			p.nextToken() // consume '='
			p.nextToken()
			fd.Default = p.parseExpression(precLowest)
		}
		fields = append(fields, fd)
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
	}
	return fields
}

// skipTypeAnnotation consumes a bare type-name token (and an optional
// `<...>` generic suffix) without building any AST for it.
func (p *Parser) skipTypeAnnotation() {
	for p.peekIs(token.LT) {
		p.nextToken()
		depth := 1
		for depth > 0 && !p.peekIs(token.EOF) {
			p.nextToken()
			if p.curIs(token.LT) {
				depth++
			}
			if p.curIs(token.GT) {
				depth--
			}
		}
	}
}

func (p *Parser) parseStructDecl(isPub bool) ast.Expr {
	p.expect(token.IDENT) // consume STRUCT, land on the name
	name := p.cur.Lexeme
	p.expect(token.LBRACE)
	fields := p.parseFieldDeclList()
	p.expect(token.RBRACE)
	return &ast.StructDecl{Name: name, Fields: fields, IsPub: isPub}
}

func (p *Parser) parseClassDecl(isPub bool) ast.Expr {
	p.expect(token.IDENT) // consume CLASS, land on the name
	name := p.cur.Lexeme
	p.expect(token.LBRACE)
	decl := &ast.ClassDecl{Name: name, IsPub: isPub}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		if p.curIs(token.FN) {
			decl.Methods = append(decl.Methods, p.parseFunctionDecl(false).(*ast.FunctionDecl))
			continue
		}
		fd := ast.FieldDecl{Name: p.cur.Lexeme}
		if p.peekIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			p.skipTypeAnnotation()
		}
		if p.peekIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			fd.Default = p.parseExpression(precLowest)
		}
		decl.Fields = append(decl.Fields, fd)
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseEnumDecl(isPub bool) ast.Expr {
	p.expect(token.IDENT) // consume ENUM, land on the name
	name := p.cur.Lexeme
	p.expect(token.LBRACE)
	decl := &ast.EnumDecl{Name: name, IsPub: isPub}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		variant := ast.EnumVariantDecl{Name: p.cur.Lexeme}
		if p.peekIs(token.LPAREN) {
			p.nextToken() // consume '('
			if !p.peekIs(token.RPAREN) {
				p.nextToken()
				variant.Fields = append(variant.Fields, p.cur.Lexeme)
				for p.peekIs(token.COMMA) {
					p.nextToken()
					p.nextToken()
					variant.Fields = append(variant.Fields, p.cur.Lexeme)
				}
			}
			p.expect(token.RPAREN)
		}
		decl.Variants = append(decl.Variants, variant)
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseActorDecl(isPub bool) ast.Expr {
	p.expect(token.IDENT) // consume ACTOR, land on the name
	name := p.cur.Lexeme
	p.expect(token.LBRACE)
	decl := &ast.ActorDecl{Name: name, IsPub: isPub}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		if p.curIs(token.ON) {
			p.expect(token.IDENT)
			msgName := p.cur.Lexeme
			p.expect(token.LPAREN)
			params := p.parseParamList()
			p.expect(token.LBRACE)
			body := p.parseBlock()
			decl.Handlers = append(decl.Handlers, ast.MessageHandler{MessageName: msgName, Params: params, Body: body})
			continue
		}
		fd := ast.FieldDecl{Name: p.cur.Lexeme}
		if p.peekIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			p.skipTypeAnnotation()
		}
		if p.peekIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			fd.Default = p.parseExpression(precLowest)
		}
		decl.Fields = append(decl.Fields, fd)
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseImplDecl() ast.Expr {
	p.expect(token.IDENT) // consume IMPL, land on the target name
	target := p.cur.Lexeme
	p.expect(token.LBRACE)
	decl := &ast.ImplDecl{TargetType: target}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		if p.curIs(token.FN) {
			decl.Methods = append(decl.Methods, p.parseFunctionDecl(false).(*ast.FunctionDecl))
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseModuleDecl() ast.Expr {
	p.expect(token.IDENT) // consume MODULE, land on the name
	name := p.cur.Lexeme
	p.expect(token.LBRACE)
	decl := &ast.ModuleDecl{Name: name}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		stmt := p.parseStatement()
		if stmt != nil {
			decl.Body = append(decl.Body, stmt)
		}
		for p.peekIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseImportDecl() ast.Expr {
	p.expect(token.IDENT) // consume IMPORT/USE, land on the first path segment
	var path []string
	path = append(path, p.cur.Lexeme)
	for p.peekIs(token.COLONCOLON) {
		p.nextToken() // consume '::'
		p.expect(token.IDENT)
		path = append(path, p.cur.Lexeme)
	}
	decl := &ast.ImportDecl{Path: joinPath(path)}
	if p.peekIs(token.AS) {
		p.nextToken() // consume AS
		p.expect(token.IDENT)
		decl.Alias = p.cur.Lexeme
	}
	return decl
}

func joinPath(parts []string) string {
	out := parts[0]
	for _, s := range parts[1:] {
		out += "::" + s
	}
	return out
}
