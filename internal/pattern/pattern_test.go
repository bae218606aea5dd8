package pattern_test

import (
	"fmt"
	"testing"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/pattern"
	"github.com/glint-lang/glint/internal/value"
)

// evalLiteral evaluates the tiny slice of ast.Expr that this package's
// literal/range/with-default patterns embed, standing in for the evaluator
// dependency pattern.Match deliberately avoids importing.
func evalLiteral(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return value.Int(n.Value), nil
	case *ast.StringLiteral:
		return value.Str(n.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(n.Value), nil
	}
	return nil, fmt.Errorf("evalLiteral: unsupported node %T", e)
}

func TestMatchWildcardAndIdent(t *testing.T) {
	r := pattern.Match(&ast.WildcardPattern{}, value.Int(5), evalLiteral)
	if !r.Matches || len(r.Bindings) != 0 {
		t.Fatalf("wildcard should match anything with no bindings, got %+v", r)
	}

	r = pattern.Match(&ast.IdentPattern{Name: "x"}, value.Int(5), evalLiteral)
	if !r.Matches || r.Bindings["x"] != value.Int(5) {
		t.Fatalf("ident pattern should bind the value, got %+v", r)
	}
}

func TestMatchLiteral(t *testing.T) {
	lit := &ast.LiteralPattern{Value: &ast.IntLiteral{Value: 2}}
	if !pattern.Match(lit, value.Int(2), evalLiteral).Matches {
		t.Fatalf("literal pattern 2 should match Int(2)")
	}
	if pattern.Match(lit, value.Int(3), evalLiteral).Matches {
		t.Fatalf("literal pattern 2 should not match Int(3)")
	}
}

func TestMatchTuple(t *testing.T) {
	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.IdentPattern{Name: "a"},
		&ast.LiteralPattern{Value: &ast.IntLiteral{Value: 2}},
	}}
	v := &value.Tuple{Elems: []value.Value{value.Int(1), value.Int(2)}}
	r := pattern.Match(pat, v, evalLiteral)
	if !r.Matches || r.Bindings["a"] != value.Int(1) {
		t.Fatalf("tuple pattern should bind a=1, got %+v", r)
	}

	mismatchLen := &value.Tuple{Elems: []value.Value{value.Int(1)}}
	if pattern.Match(pat, mismatchLen, evalLiteral).Matches {
		t.Fatalf("tuple pattern should reject a value with a different arity")
	}
}

func TestMatchListWithRest(t *testing.T) {
	pat := &ast.ListPattern{Elems: []ast.Pattern{
		&ast.IdentPattern{Name: "first"},
		&ast.NamedRestPattern{Name: "rest"},
	}}
	arr := value.NewArray([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	r := pattern.Match(pat, arr, evalLiteral)
	if !r.Matches {
		t.Fatalf("list pattern with rest should match")
	}
	if r.Bindings["first"] != value.Int(1) {
		t.Fatalf("expected first=1, got %v", r.Bindings["first"])
	}
	restArr, ok := r.Bindings["rest"].(*value.Array)
	if !ok || restArr.Display() != "[2, 3]" {
		t.Fatalf("expected rest=[2, 3], got %v", r.Bindings["rest"])
	}
}

func TestMatchListExactLengthWithoutRest(t *testing.T) {
	pat := &ast.ListPattern{Elems: []ast.Pattern{
		&ast.IdentPattern{Name: "a"}, &ast.IdentPattern{Name: "b"},
	}}
	short := value.NewArray([]value.Value{value.Int(1)})
	if pattern.Match(pat, short, evalLiteral).Matches {
		t.Fatalf("list pattern without rest should require an exact length match")
	}
}

func TestMatchStruct(t *testing.T) {
	pat := &ast.StructPattern{Name: "Point", Fields: []ast.StructFieldPattern{
		{Name: "x"}, {Name: "y"},
	}}
	v := &value.Struct{Name: "Point", Fields: map[string]value.Value{"x": value.Int(1), "y": value.Int(2)}}
	r := pattern.Match(pat, v, evalLiteral)
	if !r.Matches || r.Bindings["x"] != value.Int(1) || r.Bindings["y"] != value.Int(2) {
		t.Fatalf("struct pattern should bind both fields, got %+v", r)
	}

	wrongName := &value.Struct{Name: "Other", Fields: map[string]value.Value{"x": value.Int(1), "y": value.Int(2)}}
	if pattern.Match(pat, wrongName, evalLiteral).Matches {
		t.Fatalf("struct pattern should reject a mismatched struct name")
	}
}

func TestMatchStructRestAllowsExtraFields(t *testing.T) {
	pat := &ast.StructPattern{Name: "Point", HasRest: true, Fields: []ast.StructFieldPattern{{Name: "x"}}}
	v := &value.Struct{Name: "Point", Fields: map[string]value.Value{"x": value.Int(1), "y": value.Int(2)}}
	if !pattern.Match(pat, v, evalLiteral).Matches {
		t.Fatalf("struct pattern with `..` rest should allow unmatched extra fields")
	}

	noRest := &ast.StructPattern{Name: "Point", Fields: []ast.StructFieldPattern{{Name: "x"}}}
	if pattern.Match(noRest, v, evalLiteral).Matches {
		t.Fatalf("struct pattern without rest should reject extra fields")
	}
}

func TestMatchEnumVariant(t *testing.T) {
	pat := &ast.EnumPattern{VariantName: "Some", Payload: []ast.Pattern{&ast.IdentPattern{Name: "v"}}}
	some := value.Option("Some", value.Int(42))
	r := pattern.Match(pat, some, evalLiteral)
	if !r.Matches || r.Bindings["v"] != value.Int(42) {
		t.Fatalf("enum pattern Some(v) should bind v=42, got %+v", r)
	}

	none := value.Option("None")
	if pattern.Match(pat, none, evalLiteral).Matches {
		t.Fatalf("enum pattern Some(v) should not match None")
	}
}

func TestMatchOrPattern(t *testing.T) {
	pat := &ast.OrPattern{Alternatives: []ast.Pattern{
		&ast.LiteralPattern{Value: &ast.IntLiteral{Value: 1}},
		&ast.LiteralPattern{Value: &ast.IntLiteral{Value: 2}},
	}}
	if !pattern.Match(pat, value.Int(2), evalLiteral).Matches {
		t.Fatalf("or-pattern 1 | 2 should match Int(2)")
	}
	if pattern.Match(pat, value.Int(3), evalLiteral).Matches {
		t.Fatalf("or-pattern 1 | 2 should not match Int(3)")
	}
}

func TestMatchRangePattern(t *testing.T) {
	pat := &ast.RangePattern{Start: &ast.IntLiteral{Value: 1}, End: &ast.IntLiteral{Value: 5}, Inclusive: true}
	if !pattern.Match(pat, value.Int(5), evalLiteral).Matches {
		t.Fatalf("1..=5 should match 5 (inclusive)")
	}
	excl := &ast.RangePattern{Start: &ast.IntLiteral{Value: 1}, End: &ast.IntLiteral{Value: 5}, Inclusive: false}
	if pattern.Match(excl, value.Int(5), evalLiteral).Matches {
		t.Fatalf("1..5 should not match 5 (exclusive)")
	}
}

func TestMatchWithDefaultPattern(t *testing.T) {
	pat := &ast.WithDefaultPattern{Inner: &ast.IdentPattern{Name: "x"}, Default: &ast.IntLiteral{Value: 9}}
	r := pattern.Match(pat, nil, evalLiteral)
	if !r.Matches || r.Bindings["x"] != value.Int(9) {
		t.Fatalf("with-default pattern should fall back to its default for a nil value, got %+v", r)
	}
	r = pattern.Match(pat, value.Int(1), evalLiteral)
	if !r.Matches || r.Bindings["x"] != value.Int(1) {
		t.Fatalf("with-default pattern should bind the provided value when present, got %+v", r)
	}
}

func TestMatchMutPatternCollectsNames(t *testing.T) {
	pat := &ast.MutPattern{Inner: &ast.IdentPattern{Name: "x"}}
	r := pattern.Match(pat, value.Int(1), evalLiteral)
	if !r.Matches || len(r.MutNames) != 1 || r.MutNames[0] != "x" {
		t.Fatalf("mut pattern should collect the bound name as mutable, got %+v", r)
	}
}

func TestMatchAtBindingPattern(t *testing.T) {
	pat := &ast.AtBindingPattern{Name: "whole", Inner: &ast.LiteralPattern{Value: &ast.IntLiteral{Value: 2}}}
	r := pattern.Match(pat, value.Int(2), evalLiteral)
	if !r.Matches || r.Bindings["whole"] != value.Int(2) {
		t.Fatalf("at-binding should bind the whole matched value, got %+v", r)
	}
}

func TestIsIrrefutable(t *testing.T) {
	if !pattern.IsIrrefutable(&ast.WildcardPattern{}) {
		t.Errorf("wildcard should be irrefutable")
	}
	if !pattern.IsIrrefutable(&ast.IdentPattern{Name: "x"}) {
		t.Errorf("plain ident should be irrefutable")
	}
	if pattern.IsIrrefutable(&ast.LiteralPattern{Value: &ast.IntLiteral{Value: 1}}) {
		t.Errorf("a literal pattern is refutable")
	}
	if pattern.IsIrrefutable(&ast.EnumPattern{VariantName: "Some"}) {
		t.Errorf("an enum-variant pattern is refutable")
	}
	tup := &ast.TuplePattern{Elems: []ast.Pattern{&ast.IdentPattern{Name: "a"}, &ast.WildcardPattern{}}}
	if !pattern.IsIrrefutable(tup) {
		t.Errorf("a tuple of irrefutable sub-patterns should itself be irrefutable")
	}
}
