package eval

import (
	"fmt"
	"strings"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/env"
	"github.com/glint-lang/glint/internal/pattern"
	"github.com/glint-lang/glint/internal/value"
)

func (ev *Evaluator) evalRange(n *ast.RangeExpr, e *env.Environment) (value.Value, *Ctrl) {
	start, ctrl := ev.Eval(n.Start, e)
	if ctrl != nil {
		return nil, ctrl
	}
	end, ctrl := ev.Eval(n.End, e)
	if ctrl != nil {
		return nil, ctrl
	}
	return &value.Range{Start: start, End: end, Inclusive: n.Inclusive}, nil
}

// spreadInto evaluates a (possibly *ast.SpreadElem) element list into a flat
// Value slice, inlining Array/String spread sources (spec.md §4.F.2, "List
// literal": "... elements spread their contents").
func (ev *Evaluator) spreadInto(exprs []ast.Expr, e *env.Environment) ([]value.Value, *Ctrl) {
	out := make([]value.Value, 0, len(exprs))
	for _, elem := range exprs {
		if sp, ok := elem.(*ast.SpreadElem); ok {
			v, ctrl := ev.Eval(sp.Value, e)
			if ctrl != nil {
				return nil, ctrl
			}
			switch t := v.(type) {
			case *value.Array:
				out = append(out, t.Elems...)
			case value.Str:
				for _, r := range string(t) {
					out = append(out, value.Str(string(r)))
				}
			default:
				return nil, typeErr("cannot spread %s", value.TypeName(v))
			}
			continue
		}
		v, ctrl := ev.Eval(elem, e)
		if ctrl != nil {
			return nil, ctrl
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) evalList(n *ast.ListExpr, e *env.Environment) (value.Value, *Ctrl) {
	elems, ctrl := ev.spreadInto(n.Elems, e)
	if ctrl != nil {
		return nil, ctrl
	}
	return value.NewArray(elems), nil
}

func (ev *Evaluator) evalTuple(n *ast.TupleExpr, e *env.Environment) (value.Value, *Ctrl) {
	elems := make([]value.Value, len(n.Elems))
	for i, x := range n.Elems {
		v, ctrl := ev.Eval(x, e)
		if ctrl != nil {
			return nil, ctrl
		}
		elems[i] = v
	}
	return &value.Tuple{Elems: elems}, nil
}

// evalSet implements spec.md §3.1's Set literal: the value model has no
// distinct Set kind, so a set literal builds the same Array as a list
// literal but with duplicate elements (by Display) removed, matching a
// set's de-duplication semantics without adding a new Kind.
func (ev *Evaluator) evalSet(n *ast.SetExpr, e *env.Environment) (value.Value, *Ctrl) {
	elems, ctrl := ev.spreadInto(n.Elems, e)
	if ctrl != nil {
		return nil, ctrl
	}
	seen := map[string]bool{}
	out := make([]value.Value, 0, len(elems))
	for _, v := range elems {
		key := v.Display()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return value.NewArray(out), nil
}

// evalObject implements spec.md §4.F.2's "Object literal": Fields and
// Spreads are merged in source order per Order, later keys (whether from a
// direct field or a spread) winning over earlier ones.
func (ev *Evaluator) evalObject(n *ast.ObjectExpr, e *env.Environment) (value.Value, *Ctrl) {
	obj := value.NewObject()
	for _, idx := range n.Order {
		if idx < 0 {
			spreadExpr := n.Spreads[-idx-1]
			src, ctrl := ev.Eval(spreadExpr, e)
			if ctrl != nil {
				return nil, ctrl
			}
			o, ok := src.(*value.Object)
			if !ok {
				return nil, typeErr("cannot spread %s into an Object literal", value.TypeName(src))
			}
			for _, k := range o.Order {
				obj = obj.Set(k, o.Fields[k])
			}
			continue
		}
		field := n.Fields[idx]
		v, ctrl := ev.Eval(field.Value, e)
		if ctrl != nil {
			return nil, ctrl
		}
		obj = obj.Set(field.Key, v)
	}
	return obj, nil
}

// evalStructLiteral implements spec.md §4.F.2's "Struct literal" for
// `Name { field: value, ..base }` syntax, resolving Name against the
// declared type table rather than positional construction.
func (ev *Evaluator) evalStructLiteral(n *ast.StructLiteralExpr, e *env.Environment) (value.Value, *Ctrl) {
	td, ok := ev.Types[n.Name]
	if !ok {
		return nil, runtimeErr("unknown type %s", n.Name)
	}
	fields := map[string]value.Value{}
	var order []string
	if n.Base != nil {
		base, ctrl := ev.Eval(n.Base, e)
		if ctrl != nil {
			return nil, ctrl
		}
		bs, ok := base.(*value.Struct)
		if !ok {
			return nil, typeErr("struct-update base must be a %s", n.Name)
		}
		for _, k := range bs.Order {
			order = append(order, k)
			fields[k] = bs.Fields[k]
		}
	}
	for _, fi := range n.Fields {
		v, ctrl := ev.Eval(fi.Value, e)
		if ctrl != nil {
			return nil, ctrl
		}
		if _, exists := fields[fi.Name]; !exists {
			order = append(order, fi.Name)
		}
		fields[fi.Name] = v
	}
	for _, fd := range td.Fields {
		if _, exists := fields[fd.Name]; exists {
			continue
		}
		if fd.Default == nil {
			return nil, runtimeErr("missing field %q in %s construction", fd.Name, n.Name)
		}
		dv, ctrl := ev.Eval(fd.Default, ev.Global)
		if ctrl != nil {
			return nil, ctrl
		}
		fields[fd.Name] = dv
		order = append(order, fd.Name)
	}
	switch td.Kind {
	case "class":
		inst := value.NewClass(td.Name, ev.classMethodTable(td))
		for _, k := range order {
			inst.Set(k, fields[k])
		}
		return inst, nil
	default:
		return &value.Struct{Name: td.Name, Fields: fields, Order: order}, nil
	}
}

// evalArrayInit implements spec.md §4.F.2's `[value; count]` array-fill
// construct: Value is evaluated once per slot (matching a fresh literal
// evaluation each time, not a single shared reference) so Object/Struct
// elements don't alias.
func (ev *Evaluator) evalArrayInit(n *ast.ArrayInitExpr, e *env.Environment) (value.Value, *Ctrl) {
	countV, ctrl := ev.Eval(n.Count, e)
	if ctrl != nil {
		return nil, ctrl
	}
	count, ok := countV.(value.Int)
	if !ok {
		return nil, typeErr("array-fill count must be an Integer")
	}
	elems := make([]value.Value, 0, count)
	for i := int64(0); i < int64(count); i++ {
		v, ctrl := ev.Eval(n.Value, e)
		if ctrl != nil {
			return nil, ctrl
		}
		elems = append(elems, v)
	}
	return value.NewArray(elems), nil
}

func (ev *Evaluator) evalDataFrame(n *ast.DataFrameExpr, e *env.Environment) (value.Value, *Ctrl) {
	df := &value.DataFrame{ColumnData: map[string][]value.Value{}}
	for _, col := range n.Columns {
		df.Columns = append(df.Columns, col.Name)
		vals := make([]value.Value, len(col.Values))
		for i, x := range col.Values {
			v, ctrl := ev.Eval(x, e)
			if ctrl != nil {
				return nil, ctrl
			}
			vals[i] = v
		}
		df.ColumnData[col.Name] = vals
	}
	return df, nil
}

// evalInterpolated implements spec.md §4.F.2's string interpolation: text
// parts pass through verbatim, expression parts Display their value, and a
// format-spec part applies a Rust-like format string on a best-effort basis.
func (ev *Evaluator) evalInterpolated(n *ast.InterpolatedStringExpr, e *env.Environment) (value.Value, *Ctrl) {
	var sb strings.Builder
	for _, part := range n.Parts {
		switch p := part.(type) {
		case ast.TextPart:
			sb.WriteString(p.Text)
		case ast.ExprPart:
			v, ctrl := ev.Eval(p.Value, e)
			if ctrl != nil {
				return nil, ctrl
			}
			sb.WriteString(rawMessage(v))
		case ast.ExprPartWithFormat:
			v, ctrl := ev.Eval(p.Value, e)
			if ctrl != nil {
				return nil, ctrl
			}
			sb.WriteString(formatValue(v, p.Format))
		}
	}
	return value.Str(sb.String()), nil
}

// formatValue applies a small subset of Rust's format-spec mini-language
// (spec.md §4.F.2): a trailing ".Nf" truncates/pads a Float to N decimals;
// anything else falls back to Display.
func formatValue(v value.Value, spec string) string {
	if strings.HasSuffix(spec, "f") {
		var prec int
		if _, err := fmt.Sscanf(spec, ".%df", &prec); err == nil {
			switch f := v.(type) {
			case value.Float:
				return fmt.Sprintf("%.*f", prec, float64(f))
			case value.Int:
				return fmt.Sprintf("%.*f", prec, float64(f))
			}
		}
	}
	return rawMessage(v)
}

// evalComprehension implements spec.md §4.F.2's list/dict/set comprehensions
// by desugaring nested `for`/`if` clauses recursively, with each clause's
// bindings visible to the ones after it.
func (ev *Evaluator) evalComprehension(n *ast.ComprehensionExpr, e *env.Environment) (value.Value, *Ctrl) {
	var listOut []value.Value
	var dictOut *value.Object
	if n.Kind == ast.CompDict {
		dictOut = value.NewObject()
	}

	var walk func(clauseIdx int, scope *env.Environment) *Ctrl
	walk = func(clauseIdx int, scope *env.Environment) *Ctrl {
		if clauseIdx == len(n.Clauses) {
			switch n.Kind {
			case ast.CompDict:
				key, ctrl := ev.Eval(n.KeyElem, scope)
				if ctrl != nil {
					return ctrl
				}
				val, ctrl := ev.Eval(n.Elem, scope)
				if ctrl != nil {
					return ctrl
				}
				ks, ok := key.(value.Str)
				if !ok {
					return typeErr("dict comprehension key must be a String")
				}
				dictOut = dictOut.Set(string(ks), val)
			default:
				val, ctrl := ev.Eval(n.Elem, scope)
				if ctrl != nil {
					return ctrl
				}
				listOut = append(listOut, val)
			}
			return nil
		}
		clause := n.Clauses[clauseIdx]
		iterable, ctrl := ev.Eval(clause.Iterable, scope)
		if ctrl != nil {
			return ctrl
		}
		items, err := iterElements(iterable)
		if err != nil {
			return errCtrl(err)
		}
		for _, item := range items {
			inner := scope.PushScope()
			if clause.Pattern != nil {
				res := pattern.Match(clause.Pattern, item, ev.patternEval(inner))
				if !res.Matches {
					continue
				}
				for k, v := range res.Bindings {
					inner.Define(k, v)
				}
			} else {
				inner.Define(clause.VarName, item)
			}
			ok := true
			for _, cond := range clause.Conds {
				cv, ctrl := ev.Eval(cond, inner)
				if ctrl != nil {
					return ctrl
				}
				if !value.Truthy(cv) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if ctrl := walk(clauseIdx+1, inner); ctrl != nil {
				return ctrl
			}
		}
		return nil
	}

	if ctrl := walk(0, e); ctrl != nil {
		return nil, ctrl
	}
	if n.Kind == ast.CompDict {
		return dictOut, nil
	}
	if n.Kind == ast.CompSet {
		seen := map[string]bool{}
		out := make([]value.Value, 0, len(listOut))
		for _, v := range listOut {
			key := v.Display()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
		return value.NewArray(out), nil
	}
	return value.NewArray(listOut), nil
}
