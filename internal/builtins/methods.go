package builtins

import (
	"strings"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// CallMethod dispatches a built-in method call by receiver kind (spec.md
// §4.F.2: "a fixed per-type method table consulted before falling back to
// user-defined methods on Struct/Class"). The evaluator calls this after
// failing to find a user method, passing the receiver plus call args (not
// including the receiver) and a CallFn for higher-order methods like map/
// filter/reduce.
//
// Grounded on the teacher's internal/evaluator/builtins_methods.go, which
// keys the same way on runtime Value kind rather than any static type.
func CallMethod(receiver value.Value, name string, args []value.Value, call CallFn) (value.Value, bool, *diagnostics.Error) {
	switch recv := receiver.(type) {
	case *value.Array:
		v, err := arrayMethod(recv, name, args, call)
		return v, v != nil || err != nil, err
	case value.Str:
		v, err := stringMethod(recv, name, args, call)
		return v, v != nil || err != nil, err
	case value.Int:
		v, err := intMethod(recv, name, args)
		return v, v != nil || err != nil, err
	case value.Float:
		v, err := floatMethod(recv, name, args)
		return v, v != nil || err != nil, err
	case *value.Range:
		v, err := rangeMethod(recv, name, args, call)
		return v, v != nil || err != nil, err
	}
	return nil, false, nil
}

func arrayMethod(a *value.Array, name string, args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	switch name {
	case "len":
		return value.Int(int64(len(a.Elems))), nil
	case "map":
		if len(args) != 1 {
			return nil, argErr("map", 1, len(args))
		}
		out := make([]value.Value, len(a.Elems))
		for i, e := range a.Elems {
			r, err := call(args[0], []value.Value{e})
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return value.NewArray(out), nil
	case "filter":
		if len(args) != 1 {
			return nil, argErr("filter", 1, len(args))
		}
		var out []value.Value
		for _, e := range a.Elems {
			r, err := call(args[0], []value.Value{e})
			if err != nil {
				return nil, err
			}
			if value.Truthy(r) {
				out = append(out, e)
			}
		}
		return value.NewArray(out), nil
	case "reduce":
		if len(args) != 2 {
			return nil, argErr("reduce", 2, len(args))
		}
		acc := args[0]
		for _, e := range a.Elems {
			r, err := call(args[1], []value.Value{acc, e})
			if err != nil {
				return nil, err
			}
			acc = r
		}
		return acc, nil
	case "find":
		if len(args) != 1 {
			return nil, argErr("find", 1, len(args))
		}
		for _, e := range a.Elems {
			r, err := call(args[0], []value.Value{e})
			if err != nil {
				return nil, err
			}
			if value.Truthy(r) {
				return value.Option("Some", e), nil
			}
		}
		return value.Option("None"), nil
	case "any":
		if len(args) != 1 {
			return nil, argErr("any", 1, len(args))
		}
		for _, e := range a.Elems {
			r, err := call(args[0], []value.Value{e})
			if err != nil {
				return nil, err
			}
			if value.Truthy(r) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case "all":
		if len(args) != 1 {
			return nil, argErr("all", 1, len(args))
		}
		for _, e := range a.Elems {
			r, err := call(args[0], []value.Value{e})
			if err != nil {
				return nil, err
			}
			if !value.Truthy(r) {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	case "join":
		sep := ""
		if len(args) == 1 {
			s, err := wantString("join", args, 0)
			if err != nil {
				return nil, err
			}
			sep = s
		}
		parts := make([]string, len(a.Elems))
		for i, e := range a.Elems {
			parts[i] = rawDisplay(e)
		}
		return value.Str(strings.Join(parts, sep)), nil
	case "contains":
		if len(args) != 1 {
			return nil, argErr("contains", 1, len(args))
		}
		for _, e := range a.Elems {
			if value.Equal(e, args[0]) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case "sort":
		return value.SortArray(a, defaultLess), nil
	case "reverse":
		return value.ReverseArray(a), nil
	case "push":
		if len(args) != 1 {
			return nil, argErr("push", 1, len(args))
		}
		return value.NewArray(append(append([]value.Value{}, a.Elems...), args[0])), nil
	case "first":
		if len(a.Elems) == 0 {
			return value.Option("None"), nil
		}
		return value.Option("Some", a.Elems[0]), nil
	case "last":
		if len(a.Elems) == 0 {
			return value.Option("None"), nil
		}
		return value.Option("Some", a.Elems[len(a.Elems)-1]), nil
	case "to_string":
		return value.Str(a.Display()), nil
	}
	return nil, nil
}

func stringMethod(s value.Str, name string, args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	str := string(s)
	switch name {
	case "len":
		return value.Int(int64(len([]rune(str)))), nil
	case "upper":
		return value.Str(strings.ToUpper(str)), nil
	case "lower":
		return value.Str(strings.ToLower(str)), nil
	case "trim":
		return value.Str(strings.TrimSpace(str)), nil
	case "split":
		sep, err := wantString("split", args, 0)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(str, sep)
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.Str(p)
		}
		return value.NewArray(out), nil
	case "contains":
		sub, err := wantString("contains", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.Contains(str, sub)), nil
	case "starts_with":
		prefix, err := wantString("starts_with", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasPrefix(str, prefix)), nil
	case "ends_with":
		suffix, err := wantString("ends_with", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasSuffix(str, suffix)), nil
	case "replace":
		old, err := wantString("replace", args, 0)
		if err != nil {
			return nil, err
		}
		newStr, err := wantString("replace", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Str(strings.ReplaceAll(str, old, newStr)), nil
	case "to_string":
		return s, nil
	}
	return nil, nil
}

func intMethod(n value.Int, name string, args []value.Value) (value.Value, *diagnostics.Error) {
	switch name {
	case "abs":
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case "to_string":
		return value.Str(n.Display()), nil
	case "to_float":
		return value.Float(float64(n)), nil
	}
	return nil, nil
}

func floatMethod(f value.Float, name string, args []value.Value) (value.Value, *diagnostics.Error) {
	switch name {
	case "floor":
		return value.Int(int64(f)), nil
	case "ceil":
		i := int64(f)
		if float64(i) < float64(f) {
			i++
		}
		return value.Int(i), nil
	case "round":
		return value.Int(int64(f + 0.5)), nil
	case "abs":
		if f < 0 {
			return -f, nil
		}
		return f, nil
	case "to_string":
		return value.Str(f.Display()), nil
	}
	return nil, nil
}

func rangeMethod(rg *value.Range, name string, args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	start, end, ok := rg.IntBounds()
	if !ok {
		return nil, diagnostics.Typef("range method %q requires integer bounds", name)
	}
	switch name {
	case "to_array":
		var out []value.Value
		if rg.Inclusive {
			end++
		}
		for i := start; i < end; i++ {
			out = append(out, value.Int(i))
		}
		return value.NewArray(out), nil
	case "contains":
		if len(args) != 1 {
			return nil, argErr("contains", 1, len(args))
		}
		n, ierr := wantIntValue(args[0])
		if ierr != nil {
			return nil, ierr
		}
		if rg.Inclusive {
			return value.Bool(n >= start && n <= end), nil
		}
		return value.Bool(n >= start && n < end), nil
	}
	return nil, nil
}

func wantIntValue(v value.Value) (int64, *diagnostics.Error) {
	if n, ok := v.(value.Int); ok {
		return int64(n), nil
	}
	return 0, diagnostics.Typef("expected Integer, got %s", value.TypeName(v))
}
