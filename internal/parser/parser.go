// Package parser is a Pratt (operator-precedence) recursive-descent parser
// turning a token.Token stream into the shared ast.Expr tree (spec.md §3.2).
//
// Grounded on the teacher's internal/parser package: prefix/infix parse-fn
// tables keyed by token type, a curToken/peekToken cursor, and a numeric
// precedence ladder drive expression parsing exactly the way
// expressions_core.go's parseExpression does; this package collapses the
// teacher's many small files into fewer ones since glint's grammar has no
// trait/kind-annotation surface to parse.
package parser

import (
	"fmt"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/lexer"
	"github.com/glint-lang/glint/internal/token"
)

const (
	_ int = iota
	precLowest
	precAssign         // = += -= *= /= %= (right-associative)
	precOr             // ||
	precNullCoalesce   // ??
	precAnd            // &&
	precBitOr          // |
	precBitXor         // ^
	precBitAnd         // &
	precEquality       // == !=
	precRelational     // < <= > >= Gt
	precShift          // << >>
	precAdditive       // + -
	precMultiplicative // * / %
	precPower          // ** (right-assoc)
	precSend           // ! ? as actor ops (spec.md line 272: "Send"=15)
	precUnary
	precPostfix // call, index, field, method, slice, ++/--
)

var precedences = map[token.Type]int{
	token.ASSIGN:         precAssign,
	token.PLUS_ASSIGN:    precAssign,
	token.MINUS_ASSIGN:   precAssign,
	token.STAR_ASSIGN:    precAssign,
	token.SLASH_ASSIGN:   precAssign,
	token.PERCENT_ASSIGN: precAssign,
	token.OR:             precOr,
	token.QUESTION_QUESTION: precNullCoalesce,
	token.AND:               precAnd,
	token.PIPE:              precBitOr,
	token.CARET:             precBitXor,
	token.AMP:               precBitAnd,
	token.EQ:                precEquality,
	token.NOT_EQ:            precEquality,
	token.LT:                precRelational,
	token.LE:                precRelational,
	token.GT:                precRelational,
	token.GE:                precRelational,
	token.SHL:               precShift,
	token.SHR:               precShift,
	token.PLUS:              precAdditive,
	token.MINUS:             precAdditive,
	token.ASTERISK:          precMultiplicative,
	token.SLASH:             precMultiplicative,
	token.PERCENT:           precMultiplicative,
	token.POWER:             precPower,
	token.BANG:              precSend,
	token.QUESTION:          precSend,
	token.LPAREN:            precPostfix,
	token.LBRACKET:          precPostfix,
	token.DOT:               precPostfix,
	token.DOTDOT:            precPostfix,
	token.DOTDOTEQ:          precPostfix,
	token.INCR:              precPostfix,
	token.DECR:              precPostfix,
	token.PIPE_GT:           precLowest + 1,
	token.AS:                precPostfix,
}

var binOps = map[token.Type]ast.BinaryOp{
	token.PLUS: ast.OpAdd, token.MINUS: ast.OpSub, token.ASTERISK: ast.OpMul,
	token.SLASH: ast.OpDiv, token.PERCENT: ast.OpMod, token.POWER: ast.OpPow,
	token.EQ: ast.OpEq, token.NOT_EQ: ast.OpNotEq, token.LT: ast.OpLt,
	token.LE: ast.OpLe, token.GT: ast.OpGt, token.GE: ast.OpGe,
	token.AND: ast.OpAnd, token.OR: ast.OpOr, token.QUESTION_QUESTION: ast.OpNullCoalesce,
	token.AMP: ast.OpBitAnd, token.PIPE: ast.OpBitOr, token.CARET: ast.OpBitXor,
	token.SHL: ast.OpShl, token.SHR: ast.OpShr,
}

var compoundOps = map[token.Type]ast.BinaryOp{
	token.PLUS_ASSIGN: ast.OpAdd, token.MINUS_ASSIGN: ast.OpSub,
	token.STAR_ASSIGN: ast.OpMul, token.SLASH_ASSIGN: ast.OpDiv,
	token.PERCENT_ASSIGN: ast.OpMod,
}

// Parser turns a token stream into an ast.Program, collecting errors rather
// than stopping at the first one (spec.md §7's embedding contract expects a
// batch of diagnostics, not a single panic).
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token

	noStructLiteral bool // Rust-style suppression of `Name { ... }` in condition position
	noStructPattern bool // same ambiguity for a bare pattern directly followed by a body block (catch e { ... })
	noPatternDefault bool // suppress WithDefaultPattern at the outermost level only (let pattern = value's '=' is the binding separator, not a default marker)
	errors          []*diagnostics.Error
}

func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []*diagnostics.Error { return p.errors }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.peek.Type, p.peek.Lexeme)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	sp := diagnostics.Span{Start: p.cur.StartPos, End: p.cur.EndPos}
	p.errors = append(p.errors, diagnostics.New(diagnostics.KindParseError, sp, fmt.Sprintf(format, args...)))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return precLowest
}

// ParseProgram parses a full source file into a Program, collecting every
// syntax error it can recover from rather than stopping at the first.
func ParseProgram(src string) (*ast.Program, []*diagnostics.Error) {
	p := New(src)
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		for p.curIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	return prog, p.errors
}

// parseStatement dispatches declaration keywords directly; everything else
// is an ordinary expression (spec.md §1: this is an expression-oriented
// language, there is no separate statement grammar).
func (p *Parser) parseStatement() ast.Expr {
	switch p.cur.Type {
	case token.PUB:
		p.nextToken()
		return p.parseDecl(true)
	case token.FN, token.STRUCT, token.CLASS, token.ENUM, token.ACTOR, token.IMPL, token.MODULE, token.IMPORT, token.USE:
		return p.parseDecl(false)
	}
	return p.parseExpression(precLowest)
}

func (p *Parser) parseDecl(isPub bool) ast.Expr {
	switch p.cur.Type {
	case token.FN:
		return p.parseFunctionDecl(isPub)
	case token.STRUCT:
		return p.parseStructDecl(isPub)
	case token.CLASS:
		return p.parseClassDecl(isPub)
	case token.ENUM:
		return p.parseEnumDecl(isPub)
	case token.ACTOR:
		return p.parseActorDecl(isPub)
	case token.IMPL:
		return p.parseImplDecl()
	case token.MODULE:
		return p.parseModuleDecl()
	case token.IMPORT, token.USE:
		return p.parseImportDecl()
	}
	p.errorf("unexpected token %s in declaration position", p.cur.Type)
	return nil
}
