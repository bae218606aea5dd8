package builtins

import (
	"os"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerEnv wires process environment access (spec.md §4.G, §6 "host
// collaborators"). Grounded on the teacher's builtins_env.go, which exposes
// the same env_args/env_var/env_set_var/env_vars surface over os.Args/os.Getenv.
func registerEnv(r *Registry) {
	r.register("env_args", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		out := make([]value.Value, len(os.Args))
		for i, a := range os.Args {
			out[i] = value.Str(a)
		}
		return value.NewArray(out), nil
	})

	r.register("env_var", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		name, err := wantString("env_var", args, 0)
		if err != nil {
			return nil, err
		}
		v, ok := os.LookupEnv(name)
		if !ok {
			return value.Option("None"), nil
		}
		return value.Option("Some", value.Str(v)), nil
	})

	r.register("env_set_var", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		name, err := wantString("env_set_var", args, 0)
		if err != nil {
			return nil, err
		}
		val, err := wantString("env_set_var", args, 1)
		if err != nil {
			return nil, err
		}
		if setErr := os.Setenv(name, val); setErr != nil {
			return nil, diagnostics.Runtimef("env_set_var: %s", setErr)
		}
		return value.Nil{}, nil
	})

	r.register("env_vars", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		obj := value.NewObject()
		for _, kv := range os.Environ() {
			key, val := splitEnvPair(kv)
			obj = obj.Set(key, value.Str(val))
		}
		return obj, nil
	})
}

func splitEnvPair(kv string) (string, string) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:]
		}
	}
	return kv, ""
}
