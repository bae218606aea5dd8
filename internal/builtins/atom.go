package builtins

import (
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerAtom wires atom_id, the only surface that observes an Atom's
// interned uuid.UUID identity (value.InternAtom) — ordinary Glint code never
// needs it since atoms already compare equal by name, but it gives scripts a
// stable cross-process handle for logging/correlation.
func registerAtom(r *Registry) {
	r.register("atom_id", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) != 1 {
			return nil, argErr("atom_id", 1, len(args))
		}
		a, ok := args[0].(value.Atom)
		if !ok {
			return nil, diagnostics.Typef("atom_id: argument 1 must be Atom, got %s", value.TypeName(args[0]))
		}
		return value.Str(value.InternAtom(a).String()), nil
	})
}
