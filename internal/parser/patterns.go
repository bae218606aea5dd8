package parser

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/token"
)

// parsePattern parses the ast.Pattern tagged union used by let/match/for
// (spec.md §4.F.2's pattern grammar: wildcard, bindings, literals, tuples,
// lists with rest/named-rest, structs with shorthand/rest fields, ranges,
// or-patterns, at-bindings, with-default, and mut-markers).
func (p *Parser) parsePattern() ast.Pattern {
	// suppressDefault applies only at this call's own top level — cleared
	// before recursing so a nested pattern (e.g. a tuple element) still
	// reads its own '=' default normally.
	suppressDefault := p.noPatternDefault
	p.noPatternDefault = false
	pat := p.parsePrimaryPattern()
	if p.peekIs(token.AT) {
		p.nextToken() // consume '@'
		ident, ok := pat.(*ast.IdentPattern)
		if !ok {
			p.errorf("at-binding must follow a plain identifier")
		} else {
			p.nextToken()
			inner := p.parsePrimaryPattern()
			pat = &ast.AtBindingPattern{Name: ident.Name, Inner: inner}
		}
	}
	if p.peekIs(token.ASSIGN) && !suppressDefault {
		p.nextToken() // consume '='
		p.nextToken()
		def := p.parseExpression(precLowest)
		pat = &ast.WithDefaultPattern{Inner: pat, Default: def}
	}
	if p.peekIs(token.PIPE) {
		alts := []ast.Pattern{pat}
		for p.peekIs(token.PIPE) {
			p.nextToken() // consume '|'
			p.nextToken()
			alts = append(alts, p.parsePrimaryPattern())
		}
		pat = &ast.OrPattern{Alternatives: alts}
	}
	return pat
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	switch p.cur.Type {
	case token.MUT:
		p.nextToken()
		return &ast.MutPattern{Inner: p.parsePrimaryPattern()}
	case token.IDENT:
		name := p.cur.Lexeme
		if name == "_" {
			return &ast.WildcardPattern{}
		}
		if p.peekIs(token.COLONCOLON) {
			return p.parseQualifiedOrEnumPattern()
		}
		if p.peekIs(token.LPAREN) {
			return p.parseTupleVariantPattern(name)
		}
		if p.peekIs(token.LBRACE) && !p.noStructPattern {
			return p.parseStructPattern(name)
		}
		if p.peekIs(token.DOTDOT) || p.peekIs(token.DOTDOTEQ) {
			return p.parseRangePatternFrom(&ast.Identifier{Name: name})
		}
		return &ast.IdentPattern{Name: name}
	case token.OK, token.ERR, token.SOME, token.NONE:
		name := p.cur.Lexeme
		if p.peekIs(token.LPAREN) {
			return p.parseTupleVariantPattern(name)
		}
		return &ast.TupleVariantPattern{Name: name}
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.CHAR, token.NIL:
		lit := p.parsePrefix()
		if p.peekIs(token.DOTDOT) || p.peekIs(token.DOTDOTEQ) {
			return p.parseRangePatternFrom(lit)
		}
		return &ast.LiteralPattern{Value: lit}
	case token.MINUS:
		lit := p.parsePrefix()
		if p.peekIs(token.DOTDOT) || p.peekIs(token.DOTDOTEQ) {
			return p.parseRangePatternFrom(lit)
		}
		return &ast.LiteralPattern{Value: lit}
	case token.DOTDOT:
		return &ast.RestPattern{}
	case token.LPAREN:
		return p.parseTuplePattern()
	case token.LBRACKET:
		return p.parseListPattern()
	}
	p.errorf("no pattern parse for token %s", p.cur.Type)
	return &ast.WildcardPattern{}
}

func (p *Parser) parseRangePatternFrom(startLit ast.Expr) ast.Pattern {
	inclusive := p.peekIs(token.DOTDOTEQ)
	p.nextToken() // consume '..' or '..='
	p.nextToken()
	endLit := p.parsePrefix()
	return &ast.RangePattern{Start: startLit, End: endLit, Inclusive: inclusive}
}

func (p *Parser) parseQualifiedOrEnumPattern() ast.Pattern {
	first := p.cur.Lexeme
	var parts []string
	parts = append(parts, first)
	for p.peekIs(token.COLONCOLON) {
		p.nextToken() // consume '::'
		p.expect(token.IDENT)
		parts = append(parts, p.cur.Lexeme)
	}
	variant := parts[len(parts)-1]
	enumName := ""
	if len(parts) > 1 {
		enumName = parts[0]
	}
	if p.peekIs(token.LPAREN) {
		p.nextToken() // consume '('
		payload := p.parsePatternCommaList(token.RPAREN)
		return &ast.EnumPattern{EnumName: enumName, VariantName: variant, Payload: payload}
	}
	if len(parts) > 1 {
		return &ast.QualifiedPattern{Parts: parts}
	}
	return &ast.IdentPattern{Name: first}
}

func (p *Parser) parseTupleVariantPattern(name string) ast.Pattern {
	p.nextToken() // consume '('
	payload := p.parsePatternCommaList(token.RPAREN)
	return &ast.TupleVariantPattern{Name: name, Payload: payload}
}

func (p *Parser) parsePatternCommaList(end token.Type) []ast.Pattern {
	var out []ast.Pattern
	if p.peekIs(end) {
		p.nextToken()
		return out
	}
	p.nextToken()
	out = append(out, p.parsePattern())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		if p.peekIs(end) {
			p.nextToken()
			return out
		}
		p.nextToken()
		out = append(out, p.parsePattern())
	}
	p.expect(end)
	return out
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	elems := p.parsePatternCommaList(token.RPAREN)
	return &ast.TuplePattern{Elems: elems}
}

// parseListPattern parses `[a, b, ..rest]` including a bare `..` rest marker
// and a named `..name` rest binding.
func (p *Parser) parseListPattern() ast.Pattern {
	var elems []ast.Pattern
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListPattern{}
	}
	p.nextToken()
	for {
		if p.curIs(token.DOTDOT) {
			if p.peekIs(token.IDENT) {
				p.nextToken()
				elems = append(elems, &ast.NamedRestPattern{Name: p.cur.Lexeme})
			} else {
				elems = append(elems, &ast.RestPattern{})
			}
		} else {
			elems = append(elems, p.parsePattern())
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			if p.peekIs(token.RBRACKET) {
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return &ast.ListPattern{Elems: elems}
}

// parseStructPattern parses `Name { field, field2: pat, ..}`.
func (p *Parser) parseStructPattern(name string) ast.Pattern {
	p.nextToken() // consume '{'
	decl := &ast.StructPattern{Name: name}
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return decl
	}
	p.nextToken()
	for {
		if p.curIs(token.DOTDOT) {
			decl.HasRest = true
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		fieldName := p.cur.Lexeme
		field := ast.StructFieldPattern{Name: fieldName}
		if p.peekIs(token.COLON) {
			p.nextToken() // consume ':'
			p.nextToken()
			field.Sub = p.parsePattern()
		}
		decl.Fields = append(decl.Fields, field)
		if p.peekIs(token.COMMA) {
			p.nextToken()
			if p.peekIs(token.RBRACE) {
				break
			}
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return decl
}
