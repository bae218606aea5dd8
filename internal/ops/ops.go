// Package ops is the binary/unary operator kernel (spec.md §4.D): a pure
// function of two Values and an operator tag, with no Environment access.
// `&&`, `||`, and `??` are intercepted by the evaluator instead (spec.md
// §4.D, §4.F.2) so their right operand can be skipped; this package still
// implements them for completeness and for non-short-circuiting callers
// (e.g. the transpiler's constant-folding-free passthrough needs none of
// this, but tests exercise the kernel directly).
//
// Grounded on original_source/src/runtime/binary_ops.rs, which this
// package's dispatch table and per-operator functions mirror one-for-one,
// including the historical `Gt` alias routing through the same path as `>`.
package ops

import (
	"math"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// Binary evaluates `lhs op rhs` per spec.md §4.D.
func Binary(op ast.BinaryOp, lhs, rhs value.Value) (value.Value, *diagnostics.Error) {
	switch op.Canonical() {
	case ast.OpAdd:
		return add(lhs, rhs)
	case ast.OpSub:
		return arith(lhs, rhs, "-", func(a, b int64) (int64, bool) { return checkedSub(a, b) }, func(a, b float64) float64 { return a - b })
	case ast.OpMul:
		return arith(lhs, rhs, "*", func(a, b int64) (int64, bool) { return checkedMul(a, b) }, func(a, b float64) float64 { return a * b })
	case ast.OpDiv:
		return divide(lhs, rhs)
	case ast.OpMod:
		return modulo(lhs, rhs)
	case ast.OpPow:
		return power(lhs, rhs)
	case ast.OpEq:
		return value.Bool(value.Equal(lhs, rhs)), nil
	case ast.OpNotEq:
		return value.Bool(!value.Equal(lhs, rhs)), nil
	case ast.OpLt:
		return compare(lhs, rhs, func(c int) bool { return c < 0 })
	case ast.OpLe:
		return compare(lhs, rhs, func(c int) bool { return c <= 0 })
	case ast.OpGt:
		return compare(lhs, rhs, func(c int) bool { return c > 0 })
	case ast.OpGe:
		return compare(lhs, rhs, func(c int) bool { return c >= 0 })
	case ast.OpAnd:
		if !value.Truthy(lhs) {
			return lhs, nil
		}
		return rhs, nil
	case ast.OpOr:
		if value.Truthy(lhs) {
			return lhs, nil
		}
		return rhs, nil
	case ast.OpNullCoalesce:
		if _, isNil := lhs.(value.Nil); isNil || lhs == nil {
			return rhs, nil
		}
		return lhs, nil
	case ast.OpBitAnd:
		return bitwise(lhs, rhs, func(a, b int64) int64 { return a & b })
	case ast.OpBitOr:
		return bitwise(lhs, rhs, func(a, b int64) int64 { return a | b })
	case ast.OpBitXor:
		return bitwise(lhs, rhs, func(a, b int64) int64 { return a ^ b })
	case ast.OpShl:
		return shift(lhs, rhs, true)
	case ast.OpShr:
		return shift(lhs, rhs, false)
	}
	return nil, diagnostics.Typef("unsupported binary operator %q", string(op))
}

// Unary evaluates a unary operator per spec.md §4.D.
func Unary(op ast.UnaryOp, operand value.Value) (value.Value, *diagnostics.Error) {
	switch op {
	case ast.UnaryNot:
		return value.Bool(!value.Truthy(operand)), nil
	case ast.UnaryNeg:
		switch v := operand.(type) {
		case value.Int:
			return -v, nil
		case value.Float:
			return -v, nil
		}
		return nil, diagnostics.Typef("cannot negate %s", value.TypeName(operand))
	case ast.UnaryBitNot:
		i, ok := operand.(value.Int)
		if !ok {
			return nil, diagnostics.Typef("bitwise not requires Integer, got %s", value.TypeName(operand))
		}
		return ^i, nil
	case ast.UnaryRef:
		return operand, nil // no-op under interpretation, spec.md §4.D
	case ast.UnaryDeref:
		return nil, diagnostics.Runtimef("dereference is not implemented")
	}
	return nil, diagnostics.Typef("unsupported unary operator %q", string(op))
}

func asFloat(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	}
	return 0, false
}

func add(lhs, rhs value.Value) (value.Value, *diagnostics.Error) {
	if ls, ok := lhs.(value.Str); ok {
		if rs, ok2 := rhs.(value.Str); ok2 {
			return ls + rs, nil
		}
	}
	if la, ok := lhs.(*value.Array); ok {
		if ra, ok2 := rhs.(*value.Array); ok2 {
			out := make([]value.Value, 0, len(la.Elems)+len(ra.Elems))
			out = append(out, la.Elems...)
			out = append(out, ra.Elems...)
			return value.NewArray(out), nil
		}
	}
	return arith(lhs, rhs, "+", checkedAdd, func(a, b float64) float64 { return a + b })
}

func repeatString(s string, n int64) value.Str {
	if n <= 0 {
		return value.Str("")
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return value.Str(out)
}

// arith implements +, -, * with checked integer arithmetic (overflow is a
// runtime error, not wraparound — spec.md §4.D) and Int/Float promotion.
func arith(lhs, rhs value.Value, opName string, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) (value.Value, *diagnostics.Error) {
	if ls, ok := lhs.(value.Str); ok {
		if rn, ok2 := rhs.(value.Int); ok2 && opName == "*" {
			return repeatString(string(ls), int64(rn)), nil
		}
	}
	li, liOK := lhs.(value.Int)
	ri, riOK := rhs.(value.Int)
	if liOK && riOK {
		result, ok := intOp(int64(li), int64(ri))
		if !ok {
			return nil, diagnostics.Runtimef("integer overflow in %d %s %d", int64(li), opName, int64(ri))
		}
		return value.Int(result), nil
	}
	lf, lok := asFloat(lhs)
	rf, rok := asFloat(rhs)
	if lok && rok {
		return value.Float(floatOp(lf, rf)), nil
	}
	return nil, diagnostics.Typef("cannot apply %s to %s and %s", opName, value.TypeName(lhs), value.TypeName(rhs))
}

func checkedAdd(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

func checkedSub(a, b int64) (int64, bool) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, false
	}
	return r, true
}

func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func divide(lhs, rhs value.Value) (value.Value, *diagnostics.Error) {
	li, liOK := lhs.(value.Int)
	ri, riOK := rhs.(value.Int)
	if liOK && riOK {
		if ri == 0 {
			return nil, diagnostics.DivisionByZero()
		}
		return value.Int(int64(li) / int64(ri)), nil
	}
	lf, lok := asFloat(lhs)
	rf, rok := asFloat(rhs)
	if lok && rok {
		return value.Float(lf / rf), nil // IEEE 754: may be +-Inf or NaN, not an error (spec.md §4.D)
	}
	return nil, diagnostics.Typef("cannot divide %s by %s", value.TypeName(lhs), value.TypeName(rhs))
}

func modulo(lhs, rhs value.Value) (value.Value, *diagnostics.Error) {
	li, liOK := lhs.(value.Int)
	ri, riOK := rhs.(value.Int)
	if liOK && riOK {
		if ri == 0 {
			return nil, diagnostics.DivisionByZero()
		}
		return value.Int(int64(li) % int64(ri)), nil
	}
	lf, lok := asFloat(lhs)
	rf, rok := asFloat(rhs)
	if lok && rok {
		if rf == 0 {
			return nil, diagnostics.DivisionByZero()
		}
		return value.Float(math.Mod(lf, rf)), nil
	}
	return nil, diagnostics.Typef("cannot modulo %s by %s", value.TypeName(lhs), value.TypeName(rhs))
}

func power(lhs, rhs value.Value) (value.Value, *diagnostics.Error) {
	li, liOK := lhs.(value.Int)
	ri, riOK := rhs.(value.Int)
	if liOK && riOK && ri >= 0 {
		result := int64(1)
		base := int64(li)
		overflowed := false
		for i := int64(0); i < int64(ri); i++ {
			next, ok := checkedMul(result, base)
			if !ok {
				overflowed = true
				break
			}
			result = next
		}
		if !overflowed {
			return value.Int(result), nil
		}
		// falls through to float promotion on overflow, per spec.md §4.D
	}
	lf, lok := asFloat(lhs)
	rf, rok := asFloat(rhs)
	if lok && rok {
		return value.Float(math.Pow(lf, rf)), nil
	}
	return nil, diagnostics.Typef("cannot raise %s to %s", value.TypeName(lhs), value.TypeName(rhs))
}

func compare(lhs, rhs value.Value, pred func(cmp int) bool) (value.Value, *diagnostics.Error) {
	if ls, ok := lhs.(value.Str); ok {
		if rs, ok2 := rhs.(value.Str); ok2 {
			switch {
			case ls < rs:
				return value.Bool(pred(-1)), nil
			case ls > rs:
				return value.Bool(pred(1)), nil
			default:
				return value.Bool(pred(0)), nil
			}
		}
	}
	lf, lok := asFloat(lhs)
	rf, rok := asFloat(rhs)
	if lok && rok {
		switch {
		case lf < rf:
			return value.Bool(pred(-1)), nil
		case lf > rf:
			return value.Bool(pred(1)), nil
		default:
			return value.Bool(pred(0)), nil
		}
	}
	return nil, diagnostics.Typef("cannot compare %s and %s", value.TypeName(lhs), value.TypeName(rhs))
}

func bitwise(lhs, rhs value.Value, op func(a, b int64) int64) (value.Value, *diagnostics.Error) {
	li, liOK := lhs.(value.Int)
	ri, riOK := rhs.(value.Int)
	if !liOK || !riOK {
		return nil, diagnostics.Typef("bitwise operators require Integer operands, got %s and %s", value.TypeName(lhs), value.TypeName(rhs))
	}
	return value.Int(op(int64(li), int64(ri))), nil
}

func shift(lhs, rhs value.Value, left bool) (value.Value, *diagnostics.Error) {
	li, liOK := lhs.(value.Int)
	ri, riOK := rhs.(value.Int)
	if !liOK || !riOK {
		return nil, diagnostics.Typef("shift requires Integer operands, got %s and %s", value.TypeName(lhs), value.TypeName(rhs))
	}
	if ri < 0 || ri >= 64 {
		return nil, diagnostics.Runtimef("shift amount %d out of range [0, 64)", int64(ri))
	}
	if left {
		return value.Int(int64(li) << uint(ri)), nil
	}
	return value.Int(int64(li) >> uint(ri)), nil
}
