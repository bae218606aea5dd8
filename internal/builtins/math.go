package builtins

import (
	"math"
	"math/rand"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

func registerMath(r *Registry) {
	unary := func(name string, f func(float64) float64) {
		r.register(name, func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
			if len(args) != 1 {
				return nil, argErr(name, 1, len(args))
			}
			x, err := wantFloat(name, args, 0)
			if err != nil {
				return nil, err
			}
			return value.Float(f(x)), nil
		})
	}
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("log", math.Log)
	unary("log10", math.Log10)
	unary("exp", math.Exp)

	r.register("pow", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 2 {
			return nil, argErr("pow", 2, len(args))
		}
		base, err := wantFloat("pow", args, 0)
		if err != nil {
			return nil, err
		}
		exp, err := wantFloat("pow", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Float(math.Pow(base, exp)), nil
	})

	r.register("abs", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("abs", 1, len(args))
		}
		switch v := args[0].(type) {
		case value.Int:
			if v < 0 {
				return -v, nil
			}
			return v, nil
		case value.Float:
			return value.Float(math.Abs(float64(v))), nil
		}
		return nil, diagnostics.Typef("abs: argument must be numeric, got %s", value.TypeName(args[0]))
	})

	minMax := func(name string, pickLess bool) {
		r.register(name, func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
			if len(args) == 0 {
				return nil, argErr(name, 1, 0)
			}
			best := args[0]
			for _, a := range args[1:] {
				bf, _ := wantFloatValue(best)
				af, _ := wantFloatValue(a)
				if (pickLess && af < bf) || (!pickLess && af > bf) {
					best = a
				}
			}
			return best, nil
		})
	}
	minMax("min", true)
	minMax("max", false)

	round := func(name string, f func(float64) float64) {
		r.register(name, func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
			if len(args) != 1 {
				return nil, argErr(name, 1, len(args))
			}
			x, err := wantFloat(name, args, 0)
			if err != nil {
				return nil, err
			}
			return value.Int(int64(f(x))), nil
		})
	}
	round("floor", math.Floor)
	round("ceil", math.Ceil)
	round("round", math.Round)

	r.register("random", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		return value.Float(rand.Float64()), nil
	})
}

func wantFloatValue(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	}
	return 0, false
}
