package builtins

import (
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerCollections wires the free-function collection builtins of
// spec.md §4.G (len/push/pop/sort/reverse/zip/enumerate/range). The
// per-receiver method forms (arr.map(...), arr.filter(...), ...) live in
// methods.go instead, dispatched by the evaluator via CallMethod.
func registerCollections(r *Registry) {
	r.register("len", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("len", 1, len(args))
		}
		n, err := lengthOf(args[0])
		if err != nil {
			return nil, err
		}
		return value.Int(n), nil
	})

	r.register("push", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 2 {
			return nil, argErr("push", 2, len(args))
		}
		arr, err := wantArray("push", args, 0)
		if err != nil {
			return nil, err
		}
		out := append(append([]value.Value{}, arr.Elems...), args[1])
		return value.NewArray(out), nil
	})

	r.register("pop", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		arr, err := wantArray("pop", args, 0)
		if err != nil {
			return nil, err
		}
		if len(arr.Elems) == 0 {
			return value.Option("None"), nil
		}
		last := arr.Elems[len(arr.Elems)-1]
		return value.Option("Some", last), nil
	})

	r.register("sort", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		arr, err := wantArray("sort", args, 0)
		if err != nil {
			return nil, err
		}
		return value.SortArray(arr, defaultLess), nil
	})

	r.register("reverse", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		arr, err := wantArray("reverse", args, 0)
		if err != nil {
			return nil, err
		}
		return value.ReverseArray(arr), nil
	})

	r.register("zip", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		a, err := wantArray("zip", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := wantArray("zip", args, 1)
		if err != nil {
			return nil, err
		}
		n := len(a.Elems)
		if len(b.Elems) < n {
			n = len(b.Elems)
		}
		out := make([]value.Value, n)
		for i := 0; i < n; i++ {
			out[i] = &value.Tuple{Elems: []value.Value{a.Elems[i], b.Elems[i]}}
		}
		return value.NewArray(out), nil
	})

	r.register("enumerate", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		arr, err := wantArray("enumerate", args, 0)
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			out[i] = &value.Tuple{Elems: []value.Value{value.Int(i), e}}
		}
		return value.NewArray(out), nil
	})

	r.register("range", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		switch len(args) {
		case 1:
			end, err := wantInt("range", args, 0)
			if err != nil {
				return nil, err
			}
			return rangeSlice(0, end, 1), nil
		case 2:
			start, err := wantInt("range", args, 0)
			if err != nil {
				return nil, err
			}
			end, err := wantInt("range", args, 1)
			if err != nil {
				return nil, err
			}
			return rangeSlice(start, end, 1), nil
		case 3:
			start, err := wantInt("range", args, 0)
			if err != nil {
				return nil, err
			}
			end, err := wantInt("range", args, 1)
			if err != nil {
				return nil, err
			}
			step, err := wantInt("range", args, 2)
			if err != nil {
				return nil, err
			}
			return rangeSlice(start, end, step), nil
		}
		return nil, argErr("range", 1, len(args))
	})
}

func rangeSlice(start, end, step int64) *value.Array {
	var out []value.Value
	if step == 0 {
		return value.NewArray(out)
	}
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, value.Int(i))
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, value.Int(i))
		}
	}
	return value.NewArray(out)
}

// defaultLess orders numerics numerically and everything else by Display
// string, matching the teacher's builtins_collections.go fallback ordering
// for a plain `sort` call with no comparator.
func defaultLess(a, b value.Value) bool {
	af, aok := wantFloatValue(a)
	bf, bok := wantFloatValue(b)
	if aok && bok {
		return af < bf
	}
	return a.Display() < b.Display()
}

func lengthOf(v value.Value) (int64, *diagnostics.Error) {
	switch t := v.(type) {
	case *value.Array:
		return int64(len(t.Elems)), nil
	case *value.Tuple:
		return int64(len(t.Elems)), nil
	case value.Str:
		return int64(len([]rune(string(t)))), nil
	case *value.Object:
		return int64(len(t.Order)), nil
	case *value.Struct:
		return int64(len(t.Order)), nil
	}
	return 0, diagnostics.Typef("len: argument must be a collection, got %s", value.TypeName(v))
}
