package parser

import (
	"strconv"
	"strings"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/token"
)

// parseExpression is the Pratt loop: parse a prefix expression then fold in
// infix/postfix operators whose precedence exceeds the caller's floor
// (spec.md §4.A "precedence-aware" framing, mirrored from the teacher's
// expressions_core.go parseExpression).
func (p *Parser) parseExpression(precedence int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Type {
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		return &ast.StringLiteral{Value: p.cur.Lexeme}
	case token.FSTRING_START:
		return p.parseInterpolatedString()
	case token.TRUE:
		return &ast.BoolLiteral{Value: true}
	case token.FALSE:
		return &ast.BoolLiteral{Value: false}
	case token.NIL:
		return &ast.NullLiteral{}
	case token.CHAR:
		r := []rune(p.cur.Lexeme)
		if len(r) == 0 {
			return &ast.CharLiteral{Value: 0}
		}
		return &ast.CharLiteral{Value: r[0]}
	case token.ATOM:
		return &ast.AtomLiteral{Name: p.cur.Lexeme}
	case token.IDENT:
		return p.parseIdentOrQualified()
	case token.OK, token.ERR, token.SOME, token.NONE:
		return p.parseIdentOrQualified()
	case token.LPAREN:
		return p.parseGroupOrTuple()
	case token.LBRACKET:
		return p.parseBracketExpr()
	case token.LBRACE:
		return p.parseBraceExpr()
	case token.SET_KW:
		return p.parseSetLiteral()
	case token.DF:
		return p.parseDataFrameLiteral()
	case token.MINUS:
		p.nextToken()
		operand := p.parseExpression(precUnary)
		return &ast.UnaryExpr{Op: ast.UnaryNeg, Operand: operand}
	case token.BANG:
		p.nextToken()
		operand := p.parseExpression(precUnary)
		return &ast.UnaryExpr{Op: ast.UnaryNot, Operand: operand}
	case token.TILDE:
		p.nextToken()
		operand := p.parseExpression(precUnary)
		return &ast.UnaryExpr{Op: ast.UnaryBitNot, Operand: operand}
	case token.AMP:
		p.nextToken()
		operand := p.parseExpression(precUnary)
		return &ast.UnaryExpr{Op: ast.UnaryRef, Operand: operand}
	case token.ASTERISK:
		p.nextToken()
		operand := p.parseExpression(precUnary)
		return &ast.UnaryExpr{Op: ast.UnaryDeref, Operand: operand}
	case token.INCR, token.DECR:
		op := string(p.cur.Type)
		p.nextToken()
		target := p.parseExpression(precUnary)
		return &ast.IncDecExpr{Target: target, Op: op, IsPost: false}
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	case token.WHILE:
		return p.parseWhile("")
	case token.FOR:
		return p.parseFor("")
	case token.LOOP:
		return p.parseLoop("")
	case token.AT:
		return p.parseLabeledLoop()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		p.nextToken()
		v := p.parseExpression(precLowest)
		return &ast.ThrowExpr{Value: v}
	case token.TRY:
		return p.parseTry()
	case token.FN:
		return p.parseLambdaKeyword()
	case token.PIPE:
		return p.parseLambdaPipe()
	case token.ASYNC:
		return p.parseAsync()
	case token.AWAIT:
		p.nextToken()
		v := p.parseExpression(precUnary)
		return &ast.AwaitExpr{Value: v}
	case token.SPAWN:
		p.nextToken()
		v := p.parseExpression(precUnary)
		return &ast.SpawnExpr{Construct: v}
	}
	p.errorf("no prefix parse function for %s (%q)", p.cur.Type, p.cur.Lexeme)
	return nil
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.cur.Type {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LE, token.GT, token.GE,
		token.AND, token.OR, token.QUESTION_QUESTION,
		token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR:
		return p.parseBinary(left)
	case token.POWER:
		op := binOps[token.POWER]
		prec := p.curPrecedence()
		p.nextToken()
		right := p.parseExpression(prec - 1) // right-associative
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}
	case token.BANG:
		p.nextToken()
		msg := p.parseExpression(precSend)
		return &ast.SendExpr{Target: left, Message: msg, IsAsk: false}
	case token.QUESTION:
		p.nextToken()
		msg := p.parseExpression(precSend)
		return &ast.SendExpr{Target: left, Message: msg, IsAsk: true}
	case token.ASSIGN:
		p.nextToken()
		rhs := p.parseExpression(precLowest)
		return &ast.AssignExpr{Target: left, Value: rhs}
	case token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		op := compoundOps[p.cur.Type]
		p.nextToken()
		rhs := p.parseExpression(precLowest)
		return &ast.CompoundAssignExpr{Op: op, Target: left, Value: rhs}
	case token.INCR, token.DECR:
		op := string(p.cur.Type)
		return &ast.IncDecExpr{Target: left, Op: op, IsPost: true}
	case token.LPAREN:
		return p.parseCall(left)
	case token.LBRACKET:
		return p.parseIndexOrSlice(left)
	case token.DOT:
		return p.parseFieldOrMethod(left)
	case token.DOTDOT, token.DOTDOTEQ:
		inclusive := p.curIs(token.DOTDOTEQ)
		p.nextToken()
		end := p.parseExpression(precRelational)
		return &ast.RangeExpr{Start: left, End: end, Inclusive: inclusive}
	case token.PIPE_GT:
		p.nextToken()
		f := p.parseExpression(precLowest + 1)
		return &ast.PipelineExpr{Value: left, Func: f}
	case token.AS:
		p.nextToken()
		target := p.cur.Lexeme
		if p.cur.Type != token.IDENT {
			target = string(p.cur.Type)
		}
		return &ast.TypeCastExpr{Value: left, Target: target}
	}
	p.errorf("no infix parse function for %s", p.cur.Type)
	return left
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op, ok := binOps[p.cur.Type]
	if !ok {
		op = ast.OpAdd
	}
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	lex := p.cur.Lexeme
	v, err := strconv.ParseInt(lex, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", lex)
		return &ast.IntLiteral{Value: 0}
	}
	return &ast.IntLiteral{Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	lex := p.cur.Lexeme
	v, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		p.errorf("invalid float literal %q", lex)
		return &ast.FloatLiteral{Value: 0}
	}
	return &ast.FloatLiteral{Value: v}
}

func (p *Parser) parseIdentOrQualified() ast.Expr {
	name := p.cur.Lexeme
	if !p.peekIs(token.COLONCOLON) {
		if !p.noStructLiteral && p.peekIs(token.LBRACE) && p.structLiteralBodyFollows() {
			return p.parseStructLiteralBody(name)
		}
		return &ast.Identifier{Name: name}
	}
	parts := []string{name}
	for p.peekIs(token.COLONCOLON) {
		p.nextToken() // consume ::
		if !p.expect(token.IDENT) {
			break
		}
		parts = append(parts, p.cur.Lexeme)
	}
	if len(parts) == 1 {
		return &ast.Identifier{Name: parts[0]}
	}
	return &ast.QualifiedName{Parts: parts}
}

// structLiteralBodyFollows looks past the '{' at p.peek to decide whether it
// opens a struct literal body (empty, `..base`, or `field: value`) rather
// than an unrelated block — called with cur on the type name, peek on '{'.
// Mirrors parseBraceExpr's object-vs-block disambiguation one level out.
func (p *Parser) structLiteralBodyFollows() bool {
	savedCur, savedPeek := p.cur, p.peek
	savedLexer := *p.l
	p.nextToken() // cur = '{', peek = first token inside (or '}')
	result := p.peekIs(token.RBRACE) || p.peekIs(token.DOTDOT)
	if !result && (p.peekIs(token.IDENT) || p.peekIs(token.STRING)) {
		result = p.identFollowedByColon()
	}
	*p.l = savedLexer
	p.cur, p.peek = savedCur, savedPeek
	return result
}

// parseStructLiteralBody parses `{ field: value, ..base }` immediately
// following a type name into an ast.StructLiteralExpr (spec.md §4.F.2
// "Struct literal"), mirroring parseObjectLiteral's field-parsing shape.
func (p *Parser) parseStructLiteralBody(name string) ast.Expr {
	p.nextToken() // consume name, land on '{'
	lit := &ast.StructLiteralExpr{Name: name}
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return lit
	}
	for {
		if p.peekIs(token.DOTDOT) {
			p.nextToken() // consume '..'
			p.nextToken()
			lit.Base = p.parseExpression(precLowest)
		} else {
			p.nextToken() // key
			key := p.cur.Lexeme
			p.expect(token.COLON)
			p.nextToken()
			v := p.parseExpression(precLowest)
			lit.Fields = append(lit.Fields, ast.StructFieldInit{Name: key, Value: v})
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			if p.peekIs(token.RBRACE) {
				break
			}
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parseGroupOrTuple() ast.Expr {
	p.nextToken() // consume (
	if p.curIs(token.RPAREN) {
		return &ast.UnitLiteral{}
	}
	saveNoStruct := p.noStructLiteral
	p.noStructLiteral = false
	first := p.parseExpression(precLowest)
	if p.peekIs(token.COMMA) {
		elems := []ast.Expr{first}
		for p.peekIs(token.COMMA) {
			p.nextToken() // consume ,
			if p.peekIs(token.RPAREN) {
				break
			}
			p.nextToken()
			elems = append(elems, p.parseExpression(precLowest))
		}
		p.noStructLiteral = saveNoStruct
		p.expect(token.RPAREN)
		return &ast.TupleExpr{Elems: elems}
	}
	p.noStructLiteral = saveNoStruct
	p.expect(token.RPAREN)
	return first
}

func (p *Parser) parseCommaExprs(end token.Type) []ast.Expr {
	var out []ast.Expr
	if p.peekIs(end) {
		p.nextToken()
		return out
	}
	p.nextToken()
	out = append(out, p.parseExpressionMaybeSpread())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		if p.peekIs(end) {
			p.nextToken()
			return out
		}
		p.nextToken()
		out = append(out, p.parseExpressionMaybeSpread())
	}
	p.expect(end)
	return out
}

// parseExpressionMaybeSpread implements the `..expr` spread-element form
// inside list/set/object literals (spec.md §4.F.2, list literal spreads;
// this grammar reuses the `..` range token rather than introducing a
// separate ellipsis token the lexer doesn't have).
func (p *Parser) parseExpressionMaybeSpread() ast.Expr {
	if p.curIs(token.DOTDOT) {
		p.nextToken()
		v := p.parseExpression(precLowest)
		return &ast.SpreadElem{Value: v}
	}
	return p.parseExpression(precLowest)
}

func (p *Parser) parseBracketExpr() ast.Expr {
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListExpr{}
	}
	p.nextToken()
	first := p.parseExpressionMaybeSpread()

	if p.peekIs(token.SEMICOLON) {
		p.nextToken() // consume ;
		p.nextToken()
		count := p.parseExpression(precLowest)
		p.expect(token.RBRACKET)
		return &ast.ArrayInitExpr{Value: first, Count: count}
	}

	if p.peekIs(token.FOR) {
		return p.parseComprehensionTail(ast.CompList, nil, first)
	}

	elems := []ast.Expr{first}
	for p.peekIs(token.COMMA) {
		p.nextToken()
		if p.peekIs(token.RBRACKET) {
			break
		}
		p.nextToken()
		elems = append(elems, p.parseExpressionMaybeSpread())
	}
	p.expect(token.RBRACKET)
	return &ast.ListExpr{Elems: elems}
}

// parseComprehensionTail parses the `for x in it [if cond]...` clauses
// following a comprehension's element expression (spec.md §4.F.2).
func (p *Parser) parseComprehensionTail(kind ast.CompKind, keyElem, elem ast.Expr) ast.Expr {
	var clauses []ast.CompClause
	for p.peekIs(token.FOR) {
		p.nextToken() // consume FOR
		p.expect(token.IDENT)
		varName := p.cur.Lexeme
		p.expect(token.IN)
		p.nextToken()
		iterable := p.parseExpression(precRelational)
		clause := ast.CompClause{VarName: varName, Iterable: iterable}
		for p.peekIs(token.IF) {
			p.nextToken() // consume IF
			p.nextToken()
			clause.Conds = append(clause.Conds, p.parseExpression(precRelational))
		}
		clauses = append(clauses, clause)
	}
	closeTok := token.RBRACKET
	if kind != ast.CompList {
		closeTok = token.RBRACE
	}
	p.expect(closeTok)
	return &ast.ComprehensionExpr{Kind: kind, Elem: elem, KeyElem: keyElem, Clauses: clauses}
}

// parseBraceExpr disambiguates `{ ... }` between a block and an object
// literal: object literals look like `key: value` or `..spread` or `{}`, a
// bare block is everything else (spec.md §4.F.2 lists both as distinct
// expression kinds sharing brace syntax).
func (p *Parser) parseBraceExpr() ast.Expr {
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return &ast.ObjectExpr{}
	}
	if p.peekIs(token.DOTDOT) {
		return p.parseObjectLiteral()
	}
	if (p.peekIs(token.IDENT) || p.peekIs(token.STRING)) && p.identFollowedByColon() {
		return p.parseObjectLiteral()
	}
	return p.parseBlockBody()
}

// identFollowedByColon peeks two tokens ahead without consuming, by saving
// and restoring lexer/parser state.
func (p *Parser) identFollowedByColon() bool {
	savedCur, savedPeek := p.cur, p.peek
	savedLexer := *p.l
	p.nextToken() // cur = the ident/string, peek = token after it
	isColon := p.peekIs(token.COLON)
	*p.l = savedLexer
	p.cur, p.peek = savedCur, savedPeek
	return isColon
}

func (p *Parser) parseObjectLiteral() ast.Expr {
	obj := &ast.ObjectExpr{}
	for {
		if p.peekIs(token.DOTDOT) {
			p.nextToken() // consume ..
			p.nextToken()
			src := p.parseExpression(precLowest)
			obj.Spreads = append(obj.Spreads, src)
			obj.Order = append(obj.Order, -len(obj.Spreads))
		} else {
			p.nextToken() // key
			key := p.cur.Lexeme
			p.expect(token.COLON)
			p.nextToken()
			v := p.parseExpression(precLowest)
			obj.Fields = append(obj.Fields, ast.ObjectField{Key: key, Value: v})
			obj.Order = append(obj.Order, len(obj.Fields)-1)
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			if p.peekIs(token.RBRACE) {
				break
			}
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseBlockBody() ast.Expr {
	block := &ast.BlockExpr{}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		expr := p.parseStatement()
		if expr != nil {
			block.Exprs = append(block.Exprs, expr)
		}
		for p.peekIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return block
}

// parseBlock expects the current token to be LBRACE and parses through the
// matching RBRACE, landing on RBRACE.
func (p *Parser) parseBlock() ast.Expr {
	if !p.curIs(token.LBRACE) {
		p.errorf("expected '{', got %s", p.cur.Type)
		return &ast.BlockExpr{}
	}
	return p.parseBlockBody()
}

func (p *Parser) parseSetLiteral() ast.Expr {
	if !p.expect(token.LBRACE) {
		return &ast.SetExpr{}
	}
	elems := p.parseCommaExprs(token.RBRACE)
	return &ast.SetExpr{Elems: elems}
}

func (p *Parser) parseDataFrameLiteral() ast.Expr {
	if !p.expect(token.LBRACE) {
		return &ast.DataFrameExpr{}
	}
	df := &ast.DataFrameExpr{}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		name := p.cur.Lexeme
		p.expect(token.COLON)
		p.expect(token.LBRACKET)
		values := p.parseCommaExprs(token.RBRACKET)
		df.Columns = append(df.Columns, ast.DataFrameColumn{Name: name, Values: values})
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	return df
}

// parseInterpolatedString splits an f-string's already-unescaped lexeme on
// unescaped `{expr}` / `{expr:fmt}` segments and parses each expression with
// a fresh sub-parser (spec.md §4.F.2).
func (p *Parser) parseInterpolatedString() ast.Expr {
	lexeme := p.cur.Lexeme
	var parts []ast.StringPart
	var text strings.Builder
	i := 0
	for i < len(lexeme) {
		if lexeme[i] == '{' {
			if text.Len() > 0 {
				parts = append(parts, ast.TextPart{Text: text.String()})
				text.Reset()
			}
			depth := 1
			j := i + 1
			for j < len(lexeme) && depth > 0 {
				switch lexeme[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			inner := lexeme[i+1 : j]
			exprSrc, format := splitFormatSpec(inner)
			sub := New(exprSrc)
			expr := sub.parseExpression(precLowest)
			p.errors = append(p.errors, sub.errors...)
			if format != "" {
				parts = append(parts, ast.ExprPartWithFormat{Value: expr, Format: format})
			} else {
				parts = append(parts, ast.ExprPart{Value: expr})
			}
			i = j + 1
			continue
		}
		text.WriteByte(lexeme[i])
		i++
	}
	if text.Len() > 0 {
		parts = append(parts, ast.TextPart{Text: text.String()})
	}
	return &ast.InterpolatedStringExpr{Parts: parts}
}

func splitFormatSpec(inner string) (expr, format string) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ':':
			if depth == 0 {
				return inner[:i], inner[i+1:]
			}
		}
	}
	return inner, ""
}
