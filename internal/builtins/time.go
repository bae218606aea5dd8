package builtins

import (
	"time"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerTime wires wall-clock builtins (spec.md §6 "host collaborators");
// grounded on the teacher's builtins_time.go naming (now/now_millis/sleep).
func registerTime(r *Registry) {
	r.register("now", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		return value.Float(float64(time.Now().UnixNano()) / 1e9), nil
	})

	r.register("now_millis", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		return value.Int(time.Now().UnixMilli()), nil
	})

	r.register("sleep", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		secs, err := wantFloat("sleep", args, 0)
		if err != nil {
			return nil, err
		}
		time.Sleep(time.Duration(secs * float64(time.Second)))
		return value.Nil{}, nil
	})

	r.register("format_time", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		secs, err := wantFloat("format_time", args, 0)
		if err != nil {
			return nil, err
		}
		layout, lerr := wantString("format_time", args, 1)
		if lerr != nil {
			layout = time.RFC3339
		}
		t := time.Unix(int64(secs), 0).UTC()
		return value.Str(t.Format(layout)), nil
	})
}
