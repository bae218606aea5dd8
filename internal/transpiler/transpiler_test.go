package transpiler_test

import (
	"strings"
	"testing"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/transpiler"
)

func transpileOne(t *testing.T, e ast.Expr) string {
	t.Helper()
	out, err := transpiler.Transpile(&ast.Program{Statements: []ast.Expr{e}})
	if err != nil {
		t.Fatalf("Transpile errored: %s", err)
	}
	return out
}

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func TestTranspileNullCoalesceLowersToUnwrapOr(t *testing.T) {
	out := transpileOne(t, &ast.BinaryExpr{Op: ast.OpNullCoalesce, Left: ident("a"), Right: ident("b")})
	if !strings.Contains(out, "a.unwrap_or(b)") {
		t.Fatalf("a ?? b should lower to a.unwrap_or(b), got %q", out)
	}
	if strings.Contains(out, "??") {
		t.Fatalf("output must not contain the literal ?? token, which is not valid Rust: %q", out)
	}
}

func TestTranspileSliceTakesAReference(t *testing.T) {
	out := transpileOne(t, &ast.SliceExpr{
		Receiver: ident("v"),
		Start:    &ast.IntLiteral{Value: 1},
		End:      &ast.IntLiteral{Value: 3},
	})
	if !strings.Contains(out, "&v[1 as usize..3 as usize]") {
		t.Fatalf("slice should be taken by reference, got %q", out)
	}
}

func TestTranspileOpenEndedSliceOmitsBounds(t *testing.T) {
	out := transpileOne(t, &ast.SliceExpr{Receiver: ident("v")})
	if !strings.Contains(out, "&v[..]") {
		t.Fatalf("fully open slice should lower to &v[..], got %q", out)
	}
}

func TestTranspileIndexStringKeyUsesHashMapGet(t *testing.T) {
	out := transpileOne(t, &ast.IndexExpr{Receiver: ident("obj"), Index: &ast.StringLiteral{Value: "k"}})
	if !strings.Contains(out, `obj.get("k").unwrap()`) {
		t.Fatalf(`string-literal key should lower to .get("k").unwrap(), got %q`, out)
	}
}

func TestTranspileIndexNumericUsesUsizeCast(t *testing.T) {
	out := transpileOne(t, &ast.IndexExpr{Receiver: ident("arr"), Index: &ast.IntLiteral{Value: 0}})
	if !strings.Contains(out, "arr[0 as usize]") {
		t.Fatalf("numeric index should lower to [0 as usize], got %q", out)
	}
	if strings.Contains(out, ".get(") {
		t.Fatalf("numeric index must not take the HashMap .get() path: %q", out)
	}
}

func TestTranspileThrowEmitsFormatStringPanic(t *testing.T) {
	out := transpileOne(t, &ast.ThrowExpr{Value: &ast.StringLiteral{Value: "boom"}})
	if !strings.Contains(out, `panic!("{}", "boom")`) {
		t.Fatalf(`throw should lower to panic!("{}", expr), got %q`, out)
	}
	if strings.Contains(out, "Err(") {
		t.Fatalf("throw must not lower to a Result-returning Err(...), got %q", out)
	}
}

func TestTranspilePowerUsesPowMethod(t *testing.T) {
	out := transpileOne(t, &ast.BinaryExpr{Op: ast.OpPow, Left: &ast.IntLiteral{Value: 2}, Right: &ast.IntLiteral{Value: 10}})
	if !strings.Contains(out, "2.pow(10 as u32)") {
		t.Fatalf("** should lower to .pow(rhs as u32), got %q", out)
	}
}

func TestTranspileStringConcatUsesFormatMacro(t *testing.T) {
	out := transpileOne(t, &ast.BinaryExpr{
		Op: ast.OpAdd, Left: &ast.StringLiteral{Value: "a"}, Right: &ast.StringLiteral{Value: "b"},
	})
	if !strings.Contains(out, `format!("{}{}", "a", "b")`) {
		t.Fatalf(`"a" + "b" should lower to format!("{}{}", "a", "b"), got %q`, out)
	}
}

func TestTranspileNumericAddUsesPlusOperator(t *testing.T) {
	out := transpileOne(t, &ast.BinaryExpr{Op: ast.OpAdd, Left: &ast.IntLiteral{Value: 1}, Right: &ast.IntLiteral{Value: 2}})
	if !strings.Contains(out, "1 + 2") {
		t.Fatalf("numeric + should lower to a plain +, got %q", out)
	}
	if strings.Contains(out, "format!") {
		t.Fatalf("numeric + must not take the format! string-concat path: %q", out)
	}
}

func TestTranspileIntLiteralSuffix(t *testing.T) {
	small := transpileOne(t, &ast.IntLiteral{Value: 42})
	if strings.Contains(small, "i64") {
		t.Fatalf("a value within 32-bit range should not get an i64 suffix, got %q", small)
	}
	big := transpileOne(t, &ast.IntLiteral{Value: 1 << 40})
	if !strings.Contains(big, "i64") {
		t.Fatalf("a value outside 32-bit range should get an explicit i64 suffix, got %q", big)
	}
}

func TestTranspilePrecedencePreservesParens(t *testing.T) {
	// (1 + 2) * 3 — the addition must be parenthesized since * binds tighter.
	out := transpileOne(t, &ast.BinaryExpr{
		Op: ast.OpMul,
		Left: &ast.BinaryExpr{
			Op: ast.OpAdd, Left: &ast.IntLiteral{Value: 1}, Right: &ast.IntLiteral{Value: 2},
		},
		Right: &ast.IntLiteral{Value: 3},
	})
	if !strings.Contains(out, "(1 + 2) * 3") {
		t.Fatalf("lower-precedence left operand should be parenthesized, got %q", out)
	}
}

func TestTranspileClassDeclIsRejected(t *testing.T) {
	_, err := transpiler.Transpile(&ast.Program{Statements: []ast.Expr{&ast.ClassDecl{Name: "Foo"}}})
	if err == nil {
		t.Fatalf("class declarations have no Rust transpilation target and should fail")
	}
}

func TestTranspileComprehensionIsRejected(t *testing.T) {
	_, err := transpiler.Transpile(&ast.Program{Statements: []ast.Expr{&ast.ComprehensionExpr{Elem: ident("x")}}})
	if err == nil {
		t.Fatalf("comprehensions have no direct Rust transpilation target and should fail")
	}
}

func TestTranspileCompoundAssignRejectsUnsupportedOp(t *testing.T) {
	_, err := transpiler.Transpile(&ast.Program{Statements: []ast.Expr{
		&ast.CompoundAssignExpr{Op: ast.OpEq, Target: ident("x"), Value: &ast.IntLiteral{Value: 1}},
	}})
	if err == nil {
		t.Fatalf("== has no Rust compound-assignment form and should fail")
	}
}

func TestTranspileCompoundAssignAcceptsArith(t *testing.T) {
	out := transpileOne(t, &ast.CompoundAssignExpr{Op: ast.OpAdd, Target: ident("x"), Value: &ast.IntLiteral{Value: 1}})
	if !strings.Contains(out, "x += 1") {
		t.Fatalf("+= should pass through unchanged, got %q", out)
	}
}

func TestTranspilePostIncrementDesugarsToTemporary(t *testing.T) {
	out := transpileOne(t, &ast.IncDecExpr{Target: ident("x"), Op: "++", IsPost: true})
	if !strings.Contains(out, "let __tmp = x") || !strings.Contains(out, "__tmp }") {
		t.Fatalf("post-increment should desugar through a __tmp temporary, got %q", out)
	}
}

func TestTranspileArrayLiteralUsesVecMacro(t *testing.T) {
	out := transpileOne(t, &ast.ListExpr{Elems: []ast.Expr{&ast.IntLiteral{Value: 1}, &ast.IntLiteral{Value: 2}}})
	if !strings.Contains(out, "vec![1, 2]") {
		t.Fatalf("array literal should lower to vec![...], got %q", out)
	}
}

func TestTranspileObjectLiteralUsesHashMap(t *testing.T) {
	out := transpileOne(t, &ast.ObjectExpr{
		Fields: []ast.ObjectField{{Key: "a", Value: &ast.IntLiteral{Value: 1}}},
		Order:  []int{0},
	})
	if !strings.Contains(out, "std::collections::HashMap::from([") {
		t.Fatalf("object literal should lower to a HashMap, got %q", out)
	}
}
