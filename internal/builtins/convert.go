package builtins

import (
	"strconv"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

func registerConvert(r *Registry) {
	r.register("str", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("str", 1, len(args))
		}
		return value.Str(rawDisplay(args[0])), nil
	})
	r.register("to_string", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("to_string", 1, len(args))
		}
		return value.Str(rawDisplay(args[0])), nil
	})

	r.register("int", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("int", 1, len(args))
		}
		switch v := args[0].(type) {
		case value.Int:
			return v, nil
		case value.Float:
			return value.Int(int64(v)), nil
		case value.Bool:
			if v {
				return value.Int(1), nil
			}
			return value.Int(0), nil
		case value.Str:
			n, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return nil, diagnostics.Runtimef("int: cannot parse %q as integer", string(v))
			}
			return value.Int(n), nil
		}
		return nil, diagnostics.Typef("int: cannot convert %s", value.TypeName(args[0]))
	})

	r.register("float", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("float", 1, len(args))
		}
		switch v := args[0].(type) {
		case value.Float:
			return v, nil
		case value.Int:
			return value.Float(float64(v)), nil
		case value.Str:
			f, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return nil, diagnostics.Runtimef("float: cannot parse %q as float", string(v))
			}
			return value.Float(f), nil
		}
		return nil, diagnostics.Typef("float: cannot convert %s", value.TypeName(args[0]))
	})

	r.register("bool", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("bool", 1, len(args))
		}
		return value.Bool(value.Truthy(args[0])), nil
	})

	r.register("parse_int", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("parse_int", args, 0)
		if err != nil {
			return nil, err
		}
		n, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			return value.Result("Err", value.Str("invalid integer: "+s)), nil
		}
		return value.Result("Ok", value.Int(n)), nil
	})

	r.register("parse_float", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("parse_float", args, 0)
		if err != nil {
			return nil, err
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return value.Result("Err", value.Str("invalid float: "+s)), nil
		}
		return value.Result("Ok", value.Float(f)), nil
	})
}
