package eval

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/env"
	"github.com/glint-lang/glint/internal/ops"
	"github.com/glint-lang/glint/internal/value"
)

// evalAssign implements spec.md §4.F.2's "Assignment": plain identifier
// rebinds via Environment; field access copy-on-writes through Object or
// writes in place through ObjectMut/Class or copy-on-writes a Struct;
// index access copy-on-writes an Array.
func (ev *Evaluator) evalAssign(n *ast.AssignExpr, e *env.Environment) (value.Value, *Ctrl) {
	rhs, ctrl := ev.Eval(n.Value, e)
	if ctrl != nil {
		return nil, ctrl
	}
	if ctrl := ev.assignTo(n.Target, rhs, e); ctrl != nil {
		return nil, ctrl
	}
	return rhs, nil
}

// assignTo writes v into the addressable path denoted by target.
func (ev *Evaluator) assignTo(target ast.Expr, v value.Value, e *env.Environment) *Ctrl {
	switch t := target.(type) {
	case *ast.Identifier:
		e.Assign(t.Name, v)
		return nil

	case *ast.FieldAccessExpr:
		recv, ctrl := ev.Eval(t.Receiver, e)
		if ctrl != nil {
			return ctrl
		}
		switch r := recv.(type) {
		case *value.Object:
			updated := r.Set(t.Field, v)
			return ev.assignTo(t.Receiver, updated, e)
		case *value.ObjectMut:
			r.Set(t.Field, v)
			return nil
		case *value.Class:
			r.Set(t.Field, v)
			return nil
		case *value.Struct:
			updated := r.With(t.Field, v)
			return ev.assignTo(t.Receiver, updated, e)
		}
		return typeErr("cannot assign field %q on %s", t.Field, value.TypeName(recv))

	case *ast.IndexExpr:
		recv, ctrl := ev.Eval(t.Receiver, e)
		if ctrl != nil {
			return ctrl
		}
		idx, ctrl := ev.Eval(t.Index, e)
		if ctrl != nil {
			return ctrl
		}
		switch r := recv.(type) {
		case *value.Array:
			i, ok := normalizeIndex(idx, len(r.Elems))
			if !ok {
				return runtimeErr("index out of bounds for length %d", len(r.Elems))
			}
			next := append([]value.Value{}, r.Elems...)
			next[i] = v
			return ev.assignTo(t.Receiver, value.NewArray(next), e)
		case *value.Object:
			key, ok := idx.(value.Str)
			if !ok {
				return typeErr("Object index assignment requires a String key")
			}
			updated := r.Set(string(key), v)
			return ev.assignTo(t.Receiver, updated, e)
		case *value.ObjectMut:
			key, ok := idx.(value.Str)
			if !ok {
				return typeErr("ObjectMut index assignment requires a String key")
			}
			r.Set(string(key), v)
			return nil
		}
		return typeErr("cannot index-assign %s", value.TypeName(recv))
	}
	return typeErr("invalid assignment target")
}

func (ev *Evaluator) evalCompoundAssign(n *ast.CompoundAssignExpr, e *env.Environment) (value.Value, *Ctrl) {
	cur, ctrl := ev.Eval(n.Target, e)
	if ctrl != nil {
		return nil, ctrl
	}
	rhs, ctrl := ev.Eval(n.Value, e)
	if ctrl != nil {
		return nil, ctrl
	}
	next, err := ops.Binary(n.Op, cur, rhs)
	if err != nil {
		return nil, errCtrl(err)
	}
	if ctrl := ev.assignTo(n.Target, next, e); ctrl != nil {
		return nil, ctrl
	}
	return next, nil
}

func (ev *Evaluator) evalIncDec(n *ast.IncDecExpr, e *env.Environment) (value.Value, *Ctrl) {
	cur, ctrl := ev.Eval(n.Target, e)
	if ctrl != nil {
		return nil, ctrl
	}
	delta := value.Int(1)
	if n.Op == "--" {
		delta = value.Int(-1)
	}
	next, err := ops.Binary(ast.OpAdd, cur, delta)
	if err != nil {
		return nil, errCtrl(err)
	}
	if ctrl := ev.assignTo(n.Target, next, e); ctrl != nil {
		return nil, ctrl
	}
	if n.IsPost {
		return cur, nil
	}
	return next, nil
}
