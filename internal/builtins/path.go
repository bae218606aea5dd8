package builtins

import (
	"path/filepath"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerPath wires path-manipulation builtins, split from registerFS
// (which performs actual I/O) following the teacher's separate
// builtins_fs.go/builtins_path.go files.
func registerPath(r *Registry) {
	r.register("path_join", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		parts := make([]string, len(args))
		for i := range args {
			s, err := wantString("path_join", args, i)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		return value.Str(filepath.Join(parts...)), nil
	})

	r.register("path_basename", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("path_basename", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(filepath.Base(s)), nil
	})

	r.register("path_dirname", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("path_dirname", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(filepath.Dir(s)), nil
	})

	r.register("path_extension", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("path_extension", args, 0)
		if err != nil {
			return nil, err
		}
		ext := filepath.Ext(s)
		if ext == "" {
			return value.Option("None"), nil
		}
		return value.Option("Some", value.Str(ext[1:])), nil
	})

	r.register("path_is_absolute", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("path_is_absolute", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(filepath.IsAbs(s)), nil
	})
}
