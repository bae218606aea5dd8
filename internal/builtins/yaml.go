package builtins

import (
	"gopkg.in/yaml.v3"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerYAML wires yaml_parse/yaml_stringify over gopkg.in/yaml.v3, reusing
// the toNative/fromNative bridge from json.go. Grounded on the teacher's
// internal/evaluator/builtins_yaml.go, which is this module's only consumer
// of yaml.v3 in the teacher's own code — carried forward per SPEC_FULL.md's
// domain-stack wiring table.
func registerYAML(r *Registry) {
	r.register("yaml_stringify", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) == 0 {
			return nil, argErr("yaml_stringify", 1, 0)
		}
		data, err := yaml.Marshal(toNative(args[0]))
		if err != nil {
			return value.Result("Err", value.Str(err.Error())), nil
		}
		return value.Result("Ok", value.Str(string(data))), nil
	})

	r.register("yaml_parse", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("yaml_parse", args, 0)
		if err != nil {
			return nil, err
		}
		var native interface{}
		if yerr := yaml.Unmarshal([]byte(s), &native); yerr != nil {
			return value.Result("Err", value.Str(yerr.Error())), nil
		}
		return value.Result("Ok", fromNative(native)), nil
	})
}
