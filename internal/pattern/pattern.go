// Package pattern implements structural pattern matching against runtime
// Values (spec.md §4.E). It knows about ast.Pattern and value.Value but not
// about the evaluator — literal patterns and range-pattern bounds carry
// ast.Expr payloads that must be evaluated to compare against, so Match
// takes an EvalExpr callback rather than importing internal/eval (which
// itself imports this package for `let`/`match`/`for`).
//
// Grounded on spec.md §4.E directly; there is no single teacher file this
// maps to one-for-one (funxy's pattern matching is folded into its parser's
// destructuring code), so the shape here follows the description in §4.E
// almost literally, in the teacher's small-struct-plus-free-function style.
package pattern

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/value"
)

// EvalExpr evaluates an embedded expression (a literal's value, a range
// bound, a with-default default) to a Value.
type EvalExpr func(ast.Expr) (value.Value, error)

// Result is the outcome of a match attempt.
type Result struct {
	Matches  bool
	Bindings map[string]value.Value
	// MutNames collects names that were wrapped in a MutPattern anywhere in
	// the matched pattern tree, so the evaluator can mark_mut them.
	MutNames []string
}

func fail() Result { return Result{Matches: false} }

func ok(bindings map[string]value.Value, mut []string) Result {
	if bindings == nil {
		bindings = map[string]value.Value{}
	}
	return Result{Matches: true, Bindings: bindings, MutNames: mut}
}

func merge(a, b Result) Result {
	if !a.Matches || !b.Matches {
		return fail()
	}
	out := make(map[string]value.Value, len(a.Bindings)+len(b.Bindings))
	for k, v := range a.Bindings {
		out[k] = v
	}
	for k, v := range b.Bindings {
		out[k] = v
	}
	return ok(out, append(append([]string{}, a.MutNames...), b.MutNames...))
}

// Match attempts to match pat against v (spec.md §4.E).
func Match(pat ast.Pattern, v value.Value, eval EvalExpr) Result {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return ok(nil, nil)

	case *ast.IdentPattern:
		return ok(map[string]value.Value{p.Name: v}, nil)

	case *ast.LiteralPattern:
		lit, err := eval(p.Value)
		if err != nil {
			return fail()
		}
		if value.Equal(lit, v) {
			return ok(nil, nil)
		}
		return fail()

	case *ast.QualifiedPattern:
		ev, isEnum := v.(*value.EnumVariant)
		if !isEnum || len(p.Parts) == 0 {
			return fail()
		}
		if ev.VariantName != p.Parts[len(p.Parts)-1] {
			return fail()
		}
		return ok(nil, nil)

	case *ast.TuplePattern:
		t, isTuple := v.(*value.Tuple)
		if !isTuple || len(t.Elems) != len(p.Elems) {
			return fail()
		}
		return matchSeq(p.Elems, t.Elems, eval)

	case *ast.ListPattern:
		arr, isArr := v.(*value.Array)
		if !isArr {
			return fail()
		}
		return matchListPattern(p.Elems, arr.Elems, eval)

	case *ast.StructPattern:
		return matchStruct(p, v, eval)

	case *ast.RangePattern:
		start, err1 := eval(p.Start)
		end, err2 := eval(p.End)
		if err1 != nil || err2 != nil {
			return fail()
		}
		if inRange(start, end, v, p.Inclusive) {
			return ok(nil, nil)
		}
		return fail()

	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			r := Match(alt, v, eval)
			if r.Matches {
				return r
			}
		}
		return fail()

	case *ast.RestPattern:
		return ok(nil, nil)

	case *ast.NamedRestPattern:
		return ok(map[string]value.Value{p.Name: v}, nil)

	case *ast.EnumPattern:
		return matchEnum(p, v, eval)

	case *ast.TupleVariantPattern:
		return matchEnum(&ast.EnumPattern{VariantName: p.Name, Payload: p.Payload}, v, eval)

	case *ast.AtBindingPattern:
		inner := Match(p.Inner, v, eval)
		if !inner.Matches {
			return fail()
		}
		return merge(ok(map[string]value.Value{p.Name: v}, nil), inner)

	case *ast.WithDefaultPattern:
		if v == nil {
			def, err := eval(p.Default)
			if err != nil {
				return fail()
			}
			return Match(p.Inner, def, eval)
		}
		return Match(p.Inner, v, eval)

	case *ast.MutPattern:
		inner := Match(p.Inner, v, eval)
		if !inner.Matches {
			return fail()
		}
		names := collectNames(p.Inner)
		inner.MutNames = append(inner.MutNames, names...)
		return inner
	}
	return fail()
}

func matchSeq(pats []ast.Pattern, vals []value.Value, eval EvalExpr) Result {
	result := ok(nil, nil)
	for i, p := range pats {
		r := Match(p, vals[i], eval)
		result = merge(result, r)
		if !result.Matches {
			return fail()
		}
	}
	return result
}

// matchListPattern handles rest/named-rest elements within list patterns.
func matchListPattern(pats []ast.Pattern, vals []value.Value, eval EvalExpr) Result {
	restIdx := -1
	for i, p := range pats {
		switch p.(type) {
		case *ast.RestPattern, *ast.NamedRestPattern:
			restIdx = i
		}
	}
	if restIdx == -1 {
		if len(pats) != len(vals) {
			return fail()
		}
		return matchSeq(pats, vals, eval)
	}
	before := pats[:restIdx]
	after := pats[restIdx+1:]
	if len(vals) < len(before)+len(after) {
		return fail()
	}
	result := ok(nil, nil)
	for i, p := range before {
		result = merge(result, Match(p, vals[i], eval))
		if !result.Matches {
			return fail()
		}
	}
	restVals := vals[len(before) : len(vals)-len(after)]
	if named, isNamed := pats[restIdx].(*ast.NamedRestPattern); isNamed {
		result = merge(result, ok(map[string]value.Value{named.Name: value.NewArray(append([]value.Value{}, restVals...))}, nil))
		if !result.Matches {
			return fail()
		}
	}
	for i, p := range after {
		result = merge(result, Match(p, vals[len(vals)-len(after)+i], eval))
		if !result.Matches {
			return fail()
		}
	}
	return result
}

func matchStruct(p *ast.StructPattern, v value.Value, eval EvalExpr) Result {
	fields := map[string]value.Value{}
	var order []string
	switch s := v.(type) {
	case *value.Struct:
		if s.Name != p.Name {
			return fail()
		}
		fields, order = s.Fields, s.Order
	case *value.Class:
		if s.ClassName != p.Name {
			return fail()
		}
		fields, order = s.Snapshot(), nil
	case *value.ObjectMut:
		fields, order = s.Snapshot(), nil
	default:
		return fail()
	}
	_ = order
	result := ok(nil, nil)
	seen := map[string]bool{}
	for _, f := range p.Fields {
		seen[f.Name] = true
		fv, exists := fields[f.Name]
		if !exists {
			return fail()
		}
		if f.Sub == nil {
			result = merge(result, ok(map[string]value.Value{f.Name: fv}, nil))
		} else {
			result = merge(result, Match(f.Sub, fv, eval))
		}
		if !result.Matches {
			return fail()
		}
	}
	if !p.HasRest && len(seen) != len(fields) {
		return fail()
	}
	return result
}

func matchEnum(p *ast.EnumPattern, v value.Value, eval EvalExpr) Result {
	ev, isEnum := v.(*value.EnumVariant)
	if !isEnum {
		return fail()
	}
	if ev.VariantName != p.VariantName {
		return fail()
	}
	if p.EnumName != "" && ev.EnumName != "" && p.EnumName != ev.EnumName {
		return fail()
	}
	if len(p.Payload) != len(ev.Payload) {
		return fail()
	}
	return matchSeq(p.Payload, ev.Payload, eval)
}

func inRange(start, end, v value.Value, inclusive bool) bool {
	lt := func(a, b value.Value) bool {
		af, aok := toF(a)
		bf, bok := toF(b)
		if aok && bok {
			return af < bf
		}
		return false
	}
	le := func(a, b value.Value) bool { return lt(a, b) || value.Equal(a, b) }
	if inclusive {
		return le(start, v) && le(v, end)
	}
	return le(start, v) && lt(v, end)
}

func toF(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	}
	return 0, false
}

// IsIrrefutable reports whether pat matches every value of the expected
// shape, required for `let` bindings (spec.md §4.E).
func IsIrrefutable(pat ast.Pattern) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern:
		return true
	case *ast.TuplePattern:
		for _, e := range p.Elems {
			if !IsIrrefutable(e) {
				return false
			}
		}
		return true
	case *ast.ListPattern:
		for _, e := range p.Elems {
			if !IsIrrefutable(e) {
				return false
			}
		}
		return true
	case *ast.StructPattern:
		for _, f := range p.Fields {
			if f.Sub != nil && !IsIrrefutable(f.Sub) {
				return false
			}
		}
		return true
	case *ast.AtBindingPattern:
		return IsIrrefutable(p.Inner)
	case *ast.MutPattern:
		return IsIrrefutable(p.Inner)
	case *ast.WithDefaultPattern:
		return IsIrrefutable(p.Inner)
	}
	return false
}

func collectNames(pat ast.Pattern) []string {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		return []string{p.Name}
	case *ast.TuplePattern:
		var out []string
		for _, e := range p.Elems {
			out = append(out, collectNames(e)...)
		}
		return out
	case *ast.ListPattern:
		var out []string
		for _, e := range p.Elems {
			out = append(out, collectNames(e)...)
		}
		return out
	case *ast.AtBindingPattern:
		return append([]string{p.Name}, collectNames(p.Inner)...)
	case *ast.MutPattern:
		return collectNames(p.Inner)
	}
	return nil
}
