package ops_test

import (
	"testing"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/ops"
	"github.com/glint-lang/glint/internal/value"
)

func mustBinary(t *testing.T, op ast.BinaryOp, lhs, rhs value.Value) value.Value {
	t.Helper()
	v, err := ops.Binary(op, lhs, rhs)
	if err != nil {
		t.Fatalf("Binary(%s, %v, %v) errored: %s", op, lhs, rhs, err.Error())
	}
	return v
}

func TestBinaryArithmetic(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		l, r value.Value
		want value.Value
	}{
		{ast.OpAdd, value.Int(2), value.Int(3), value.Int(5)},
		{ast.OpAdd, value.Int(2), value.Float(0.5), value.Float(2.5)},
		{ast.OpSub, value.Int(5), value.Int(2), value.Int(3)},
		{ast.OpMul, value.Int(4), value.Int(3), value.Int(12)},
		{ast.OpDiv, value.Int(9), value.Int(2), value.Int(4)},
		{ast.OpDiv, value.Float(9), value.Float(2), value.Float(4.5)},
		{ast.OpMod, value.Int(7), value.Int(3), value.Int(1)},
		{ast.OpPow, value.Int(2), value.Int(10), value.Int(1024)},
		{ast.OpAdd, value.Str("foo"), value.Str("bar"), value.Str("foobar")},
		{ast.OpMul, value.Str("ab"), value.Int(3), value.Str("ababab")},
	}
	for _, tc := range cases {
		got := mustBinary(t, tc.op, tc.l, tc.r)
		if !value.Equal(got, tc.want) {
			t.Errorf("%v %s %v = %v, want %v", tc.l, tc.op, tc.r, got, tc.want)
		}
	}
}

func TestBinaryArrayConcat(t *testing.T) {
	a := value.NewArray([]value.Value{value.Int(1)})
	b := value.NewArray([]value.Value{value.Int(2)})
	got := mustBinary(t, ast.OpAdd, a, b)
	if got.Display() != "[1, 2]" {
		t.Fatalf("array concat = %s, want [1, 2]", got.Display())
	}
}

func TestBinaryComparisonAndEquality(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		l, r value.Value
		want bool
	}{
		{ast.OpLt, value.Int(1), value.Int(2), true},
		{ast.OpLe, value.Int(2), value.Int(2), true},
		{ast.OpGt, value.Int(3), value.Int(2), true},
		{ast.OpGe, value.Int(2), value.Int(3), false},
		{ast.OpEq, value.Int(1), value.Int(1), true},
		{ast.OpNotEq, value.Int(1), value.Int(2), true},
		{ast.OpLt, value.Str("a"), value.Str("b"), true},
	}
	for _, tc := range cases {
		got := mustBinary(t, tc.op, tc.l, tc.r)
		b, ok := got.(value.Bool)
		if !ok || bool(b) != tc.want {
			t.Errorf("%v %s %v = %v, want %v", tc.l, tc.op, tc.r, got, tc.want)
		}
	}
}

func TestBinaryShortCircuitOperatorsAreImplementedForCompleteness(t *testing.T) {
	if got := mustBinary(t, ast.OpAnd, value.Bool(false), value.Int(1)); got != value.Value(value.Bool(false)) {
		t.Errorf("false && 1 = %v, want false", got)
	}
	if got := mustBinary(t, ast.OpOr, value.Int(5), value.Int(1)); got != value.Value(value.Int(5)) {
		t.Errorf("5 || 1 = %v, want 5", got)
	}
	if got := mustBinary(t, ast.OpNullCoalesce, value.Nil{}, value.Int(7)); got != value.Value(value.Int(7)) {
		t.Errorf("nil ?? 7 = %v, want 7", got)
	}
	if got := mustBinary(t, ast.OpNullCoalesce, value.Int(3), value.Int(7)); got != value.Value(value.Int(3)) {
		t.Errorf("3 ?? 7 = %v, want 3", got)
	}
}

func TestBinaryBitwiseAndShift(t *testing.T) {
	if got := mustBinary(t, ast.OpBitAnd, value.Int(6), value.Int(3)); got != value.Value(value.Int(2)) {
		t.Errorf("6 & 3 = %v, want 2", got)
	}
	if got := mustBinary(t, ast.OpBitOr, value.Int(4), value.Int(1)); got != value.Value(value.Int(5)) {
		t.Errorf("4 | 1 = %v, want 5", got)
	}
	if got := mustBinary(t, ast.OpBitXor, value.Int(5), value.Int(3)); got != value.Value(value.Int(6)) {
		t.Errorf("5 ^ 3 = %v, want 6", got)
	}
	if got := mustBinary(t, ast.OpShl, value.Int(1), value.Int(4)); got != value.Value(value.Int(16)) {
		t.Errorf("1 << 4 = %v, want 16", got)
	}
	if got := mustBinary(t, ast.OpShr, value.Int(16), value.Int(4)); got != value.Value(value.Int(1)) {
		t.Errorf("16 >> 4 = %v, want 1", got)
	}
}

func TestBinaryDivisionByZero(t *testing.T) {
	if _, err := ops.Binary(ast.OpDiv, value.Int(1), value.Int(0)); err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
	if _, err := ops.Binary(ast.OpMod, value.Int(1), value.Int(0)); err == nil {
		t.Fatalf("expected a division-by-zero error for modulo")
	}
}

func TestBinaryFloatDivisionByZeroIsNotAnError(t *testing.T) {
	got, err := ops.Binary(ast.OpDiv, value.Float(1), value.Float(0))
	if err != nil {
		t.Fatalf("float division by zero should produce Inf, not an error: %s", err.Error())
	}
	f, ok := got.(value.Float)
	if !ok {
		t.Fatalf("expected a Float result, got %T", got)
	}
	if !(float64(f) > 1e300) {
		t.Errorf("1.0 / 0.0 = %v, want +Inf", f)
	}
}

func TestBinaryIntegerOverflowIsAnError(t *testing.T) {
	if _, err := ops.Binary(ast.OpMul, value.Int(1<<62), value.Int(4)); err == nil {
		t.Fatalf("expected an integer overflow error")
	}
}

func TestBinaryTypeMismatchIsAnError(t *testing.T) {
	if _, err := ops.Binary(ast.OpAdd, value.Int(1), value.Bool(true)); err == nil {
		t.Fatalf("expected a type error adding Int and Bool")
	}
	if _, err := ops.Binary(ast.OpBitAnd, value.Str("x"), value.Int(1)); err == nil {
		t.Fatalf("expected a type error for bitwise-and on a String")
	}
}

func TestBinaryStringPlusIntegerIsAnError(t *testing.T) {
	// Repetition is String * Integer only (spec.md §4.D); String + Integer
	// has no defined meaning and must not silently repeat.
	if _, err := ops.Binary(ast.OpAdd, value.Str("x"), value.Int(3)); err == nil {
		t.Fatalf(`expected a type error for "x" + 3, repetition belongs to * only`)
	}
}

func TestShiftAmountOutOfRange(t *testing.T) {
	if _, err := ops.Binary(ast.OpShl, value.Int(1), value.Int(64)); err == nil {
		t.Fatalf("expected an out-of-range error for a shift amount of 64")
	}
	if _, err := ops.Binary(ast.OpShr, value.Int(1), value.Int(-1)); err == nil {
		t.Fatalf("expected an out-of-range error for a negative shift amount")
	}
}

func TestUnary(t *testing.T) {
	if got := mustUnary(t, ast.UnaryNot, value.Bool(false)); got != value.Value(value.Bool(true)) {
		t.Errorf("!false = %v, want true", got)
	}
	if got := mustUnary(t, ast.UnaryNeg, value.Int(5)); got != value.Value(value.Int(-5)) {
		t.Errorf("-5's negation = %v, want -5", got)
	}
	if got := mustUnary(t, ast.UnaryNeg, value.Float(1.5)); got != value.Value(value.Float(-1.5)) {
		t.Errorf("-1.5's negation = %v, want -1.5", got)
	}
	if got := mustUnary(t, ast.UnaryBitNot, value.Int(0)); got != value.Value(value.Int(-1)) {
		t.Errorf("~0 = %v, want -1", got)
	}
	if got := mustUnary(t, ast.UnaryRef, value.Int(9)); got != value.Value(value.Int(9)) {
		t.Errorf("&9 under interpretation should be a no-op, got %v", got)
	}
}

func TestUnaryDerefIsUnimplemented(t *testing.T) {
	if _, err := ops.Unary(ast.UnaryDeref, value.Int(1)); err == nil {
		t.Fatalf("expected an error for unary deref, which is not implemented under the tree-walker")
	}
}

func mustUnary(t *testing.T, op ast.UnaryOp, v value.Value) value.Value {
	t.Helper()
	got, err := ops.Unary(op, v)
	if err != nil {
		t.Fatalf("Unary(%s, %v) errored: %s", op, v, err.Error())
	}
	return got
}
