package builtins

import (
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerDataFrame wires the second-class DataFrame builtins of spec.md
// §3.1/§6 (DataFrame is explicitly "a fixed set of builtins", not a
// general value any user code constructs from scratch). Grounded on the
// teacher's builtins_dataframe.go, which backs its DataFrame literal
// surface with the same column-major map[string][]Value shape kept here in
// value.DataFrame.
func registerDataFrame(r *Registry) {
	r.register("df_new", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		obj, err := wantObjectLike("df_new", args, 0)
		if err != nil {
			return nil, err
		}
		df := &value.DataFrame{ColumnData: map[string][]value.Value{}}
		for _, col := range obj.Order {
			arr, ok := obj.Fields[col].(*value.Array)
			if !ok {
				return nil, diagnostics.Typef("df_new: column %q must be an array", col)
			}
			df.Columns = append(df.Columns, col)
			df.ColumnData[col] = arr.Elems
		}
		return df, nil
	})

	r.register("df_rows", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		df, err := wantDataFrame("df_rows", args, 0)
		if err != nil {
			return nil, err
		}
		n := 0
		if len(df.Columns) > 0 {
			n = len(df.ColumnData[df.Columns[0]])
		}
		return value.Int(int64(n)), nil
	})

	r.register("df_column", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		df, err := wantDataFrame("df_column", args, 0)
		if err != nil {
			return nil, err
		}
		name, serr := wantString("df_column", args, 1)
		if serr != nil {
			return nil, serr
		}
		col, ok := df.ColumnData[name]
		if !ok {
			return nil, diagnostics.Runtimef("df_column: no such column %q", name)
		}
		return value.NewArray(col), nil
	})

	r.register("df_select", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		df, err := wantDataFrame("df_select", args, 0)
		if err != nil {
			return nil, err
		}
		names, aerr := wantArray("df_select", args, 1)
		if aerr != nil {
			return nil, aerr
		}
		out := &value.DataFrame{ColumnData: map[string][]value.Value{}}
		for _, n := range names.Elems {
			name, ok := n.(value.Str)
			if !ok {
				return nil, diagnostics.Typef("df_select: column names must be strings")
			}
			col, exists := df.ColumnData[string(name)]
			if !exists {
				return nil, diagnostics.Runtimef("df_select: no such column %q", string(name))
			}
			out.Columns = append(out.Columns, string(name))
			out.ColumnData[string(name)] = col
		}
		return out, nil
	})
}

func wantDataFrame(name string, args []value.Value, i int) (*value.DataFrame, *diagnostics.Error) {
	if i >= len(args) {
		return nil, diagnostics.Runtimef("%s: missing argument %d", name, i)
	}
	df, ok := args[i].(*value.DataFrame)
	if !ok {
		return nil, diagnostics.Typef("%s: argument %d must be a DataFrame, got %s", name, i, value.TypeName(args[i]))
	}
	return df, nil
}

func wantObjectLike(name string, args []value.Value, i int) (*value.Object, *diagnostics.Error) {
	if i >= len(args) {
		return nil, diagnostics.Runtimef("%s: missing argument %d", name, i)
	}
	obj, ok := args[i].(*value.Object)
	if !ok {
		return nil, diagnostics.Typef("%s: argument %d must be an Object, got %s", name, i, value.TypeName(args[i]))
	}
	return obj, nil
}
