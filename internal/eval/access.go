package eval

import (
	"strconv"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/env"
	"github.com/glint-lang/glint/internal/value"
)

// evalFieldAccess implements spec.md §4.F.2's "Field access": named field on
// Struct/Object/Class/ObjectMut, numeric position on Tuple/Array, and a
// qualified (`::`-bearing) name as a module-path lookup.
func (ev *Evaluator) evalFieldAccess(n *ast.FieldAccessExpr, e *env.Environment) (value.Value, *Ctrl) {
	recv, ctrl := ev.Eval(n.Receiver, e)
	if ctrl != nil {
		return nil, ctrl
	}
	return ev.readField(recv, n.Field)
}

func (ev *Evaluator) readField(recv value.Value, field string) (value.Value, *Ctrl) {
	if idx, err := strconv.Atoi(field); err == nil {
		switch t := recv.(type) {
		case *value.Tuple:
			return tupleAt(t.Elems, idx)
		case *value.Array:
			return tupleAt(t.Elems, idx)
		}
	}
	switch t := recv.(type) {
	case *value.Struct:
		if v, ok := t.Fields[field]; ok {
			return v, nil
		}
		return nil, runtimeErr("no field %q on %s", field, t.Name)
	case *value.Object:
		if v, ok := t.Fields[field]; ok {
			return v, nil
		}
		return nil, runtimeErr("no field %q on Object", field)
	case *value.Class:
		if v, ok := t.Get(field); ok {
			return v, nil
		}
		return nil, runtimeErr("no field %q on %s", field, t.ClassName)
	case *value.ObjectMut:
		if v, ok := t.Get(field); ok {
			return v, nil
		}
		return nil, runtimeErr("no field %q on ObjectMut", field)
	case *value.EnumVariant:
		if field == "variant_name" {
			return value.Str(t.VariantName), nil
		}
		return nil, runtimeErr("no field %q on enum variant %s", field, t.VariantName)
	}
	return nil, typeErr("cannot access field %q on %s", field, value.TypeName(recv))
}

func tupleAt(elems []value.Value, i int) (value.Value, *Ctrl) {
	if i < 0 || i >= len(elems) {
		return nil, errCtrl(diagnostics.IndexOutOfBounds(i, len(elems)))
	}
	return elems[i], nil
}

func (ev *Evaluator) evalIndex(n *ast.IndexExpr, e *env.Environment) (value.Value, *Ctrl) {
	recv, ctrl := ev.Eval(n.Receiver, e)
	if ctrl != nil {
		return nil, ctrl
	}
	idx, ctrl := ev.Eval(n.Index, e)
	if ctrl != nil {
		return nil, ctrl
	}
	return ev.readIndex(recv, idx)
}

func (ev *Evaluator) readIndex(recv, idx value.Value) (value.Value, *Ctrl) {
	switch t := recv.(type) {
	case *value.Array:
		i, ok := normalizeIndex(idx, len(t.Elems))
		if !ok {
			return nil, runtimeErr("index out of bounds for length %d", len(t.Elems))
		}
		return t.Elems[i], nil
	case *value.Tuple:
		i, ok := normalizeIndex(idx, len(t.Elems))
		if !ok {
			return nil, runtimeErr("index out of bounds for length %d", len(t.Elems))
		}
		return t.Elems[i], nil
	case value.Str:
		runes := []rune(string(t))
		i, ok := normalizeIndex(idx, len(runes))
		if !ok {
			return nil, runtimeErr("index out of bounds for length %d", len(runes))
		}
		return value.Str(string(runes[i])), nil
	case *value.Object:
		key, ok := idx.(value.Str)
		if !ok {
			return nil, typeErr("Object index requires a String key")
		}
		v, exists := t.Fields[string(key)]
		if !exists {
			return nil, runtimeErr("no key %q in Object", string(key))
		}
		return v, nil
	case *value.ObjectMut:
		key, ok := idx.(value.Str)
		if !ok {
			return nil, typeErr("ObjectMut index requires a String key")
		}
		v, exists := t.Get(string(key))
		if !exists {
			return nil, runtimeErr("no key %q in ObjectMut", string(key))
		}
		return v, nil
	}
	return nil, typeErr("cannot index %s", value.TypeName(recv))
}

// normalizeIndex applies spec.md §4.F.2's negative-index rule: -1 is the
// last element.
func normalizeIndex(idx value.Value, length int) (int, bool) {
	n, ok := idx.(value.Int)
	if !ok {
		return 0, false
	}
	i := int(n)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func (ev *Evaluator) evalSlice(n *ast.SliceExpr, e *env.Environment) (value.Value, *Ctrl) {
	recv, ctrl := ev.Eval(n.Receiver, e)
	if ctrl != nil {
		return nil, ctrl
	}
	var start, end value.Value
	if n.Start != nil {
		start, ctrl = ev.Eval(n.Start, e)
		if ctrl != nil {
			return nil, ctrl
		}
	}
	if n.End != nil {
		end, ctrl = ev.Eval(n.End, e)
		if ctrl != nil {
			return nil, ctrl
		}
	}
	switch t := recv.(type) {
	case *value.Array:
		s, en, err := clampSlice(start, end, len(t.Elems))
		if err != nil {
			return nil, errCtrl(err)
		}
		return value.NewArray(append([]value.Value{}, t.Elems[s:en]...)), nil
	case value.Str:
		runes := []rune(string(t))
		s, en, err := clampSlice(start, end, len(runes))
		if err != nil {
			return nil, errCtrl(err)
		}
		return value.Str(string(runes[s:en])), nil
	}
	return nil, typeErr("cannot slice %s", value.TypeName(recv))
}

func clampSlice(start, end value.Value, length int) (int, int, *diagnostics.Error) {
	s := 0
	if si, ok := start.(value.Int); ok {
		s = int(si)
	}
	en := length
	if ei, ok := end.(value.Int); ok {
		en = int(ei)
	}
	if s < 0 {
		s = 0
	}
	if en > length {
		en = length
	}
	if s > en {
		return 0, 0, diagnostics.Typef("slice start %d must be <= end %d", s, en)
	}
	return s, en, nil
}
