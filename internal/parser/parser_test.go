package parser_test

import (
	"testing"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/parser"
)

// parseOK parses input and fails the test if any parse error is produced —
// the same parse(t, input) shape the teacher's internal/vm/vm_test.go uses,
// trimmed to this module's single-stage ParseProgram entry point.
func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, errs := parser.ParseProgram(input)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse error(s) for %q: %s", input, errs[0].Error())
	}
	return prog
}

func TestParsesWithoutError(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"2 ** 3 ** 2",
		"a = 5",
		"let x = 5",
		"let mut x: Int = 5",
		`let s = "hello"`,
		`let f = f"value is {x}"`,
		"[1, 2, 3]",
		"[1, ..rest, 4]",
		"set { 1, 2, 3 }",
		"{ key: 1, other: 2 }",
		"{ ..base, key: 1 }",
		"(1, true, \"x\")",
		"()",
		"if x > 0 { 1 } else { 0 }",
		"while x < 10 { x = x + 1 }",
		"for x in [1, 2, 3] { print(x) }",
		"loop { break }",
		"@outer: loop { break @outer }",
		"match x { 1 => \"one\" _ => \"other\" }",
		"match x { Ok(v) => v Err(e) => 0 }",
		"match x { (a, b) => a }",
		"match x { [a, b, ..rest] => a }",
		"match x { 1..10 => true _ => false }",
		"fn add(a, b) { a + b }",
		"fn add(a: Int, b: Int) -> Int { a + b }",
		"pub fn add(a, b) { a + b }",
		"fn(x) { x + 1 }",
		"|x| x + 1",
		"struct Point { x: Int, y: Int }",
		"class Counter { n: Int = 0 fn inc(self) { self.n = self.n + 1 } }",
		"enum Option { Some(v), None }",
		"actor Counter { n: Int = 0 on Inc() { self.n = self.n + 1 } }",
		"try { risky() } catch e { 0 } finally { cleanup() }",
		"async { 1 }",
		"a.b.c",
		"a[0]",
		"a[1:2]",
		"a ?? b",
		"x++",
		"++x",
		"x += 1",
		"a | b",
		"a & b",
		"a ^ b",
		"~a",
		"a << 1",
		"a >> 1",
		"actor_ref ! Msg(1, 2)",
		"spawn Worker()",
		"[x * 2 for x in [1, 2, 3]]",
		"DataFrame { a: [1, 2], b: [3, 4] }",
		"import foo::bar",
		"import foo::bar as baz",
		"module foo { }",
	}
	for _, src := range cases {
		parseOK(t, src)
	}
}

func TestBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	bin, ok := prog.Statements[0].(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr at top level, got %T", prog.Statements[0])
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level op to be +, got %s", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected right-hand side to be a * expression, got %#v", bin.Right)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	prog := parseOK(t, "2 ** 3 ** 2")
	bin, ok := prog.Statements[0].(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpPow {
		t.Fatalf("expected top-level **, got %#v", prog.Statements[0])
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected ** to be right-associative (3 ** 2 on the right), got %#v", bin.Right)
	}
	if _, ok := bin.Left.(*ast.IntLiteral); !ok {
		t.Fatalf("expected left side to be the literal 2, got %#v", bin.Left)
	}
}

func TestObjectVsBlockDisambiguation(t *testing.T) {
	prog := parseOK(t, "{ key: 1, other: 2 }")
	if _, ok := prog.Statements[0].(*ast.ObjectExpr); !ok {
		t.Fatalf("expected { key: value } to parse as an object literal, got %#v", prog.Statements[0])
	}

	prog = parseOK(t, "{ 1 + 1 }")
	if _, ok := prog.Statements[0].(*ast.BlockExpr); !ok {
		t.Fatalf("expected a bare expression brace to parse as a block, got %#v", prog.Statements[0])
	}
}

func TestParseErrorsReported(t *testing.T) {
	cases := []string{
		"let = 5",
		"fn () { }",
		"1 +",
		"let x = ",
	}
	for _, src := range cases {
		_, errs := parser.ParseProgram(src)
		if len(errs) == 0 {
			t.Errorf("expected a parse error for %q, got none", src)
		}
	}
}
