// Package builtins is the table-dispatched host-function registry of
// spec.md §4.G: a flat, name-keyed dispatch table built once at evaluator
// construction and read-only thereafter (spec.md §5, "Shared resources").
//
// Grounded on the teacher's internal/evaluator/builtins*.go family (one file
// per category: builtins_io.go, builtins_math.go, builtins_json.go, …) —
// the same per-category-file layout is kept here, generalized from the
// teacher's trait-dictionary-aware Funxy builtins down to the flat registry
// spec.md §4.G describes (no generics/typeclass dispatch, since static
// typing is a non-goal).
package builtins

import (
	"strings"
	"sync"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// CallFn invokes a Value as a callable (Closure or BuiltinFunction) from
// inside a builtin — used by higher-order builtins like map/filter/reduce
// and by the actor/gRPC builtins that must call back into user code.
type CallFn func(fn value.Value, args []value.Value) (value.Value, *diagnostics.Error)

// Fn is one registry entry: a function of [Value] -> Result<Value, Error>
// (spec.md §4.G).
type Fn func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error)

// Registry is the process-wide, write-once-then-read-only builtin table.
type Registry struct {
	fns map[string]Fn
	out *OutputBuffer
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the shared process-wide registry, building it on first use
// (spec.md §4.G, "Registration happens once at evaluator construction").
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

func newRegistry() *Registry {
	r := &Registry{fns: make(map[string]Fn), out: NewOutputBuffer()}
	registerIO(r)
	registerMath(r)
	registerConvert(r)
	registerCollections(r)
	registerEnv(r)
	registerFS(r)
	registerPath(r)
	registerJSON(r)
	registerYAML(r)
	registerHTTP(r)
	registerProcess(r)
	registerTime(r)
	registerDataFrame(r)
	registerDB(r)
	registerRPC(r)
	registerAtom(r)
	return r
}

func (r *Registry) register(name string, fn Fn) {
	r.fns[name] = fn
}

// Lookup returns the registry entry for name, or false if unregistered —
// the caller turns a miss into `RuntimeError("Unknown builtin function: X")`
// per spec.md §4.G.
func (r *Registry) Lookup(name string) (Fn, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

// Names returns every registered builtin name (the public built-in surface
// of spec.md §6, which "reducing is a breaking change").
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.fns))
	for name := range r.fns {
		out = append(out, name)
	}
	return out
}

// Output returns the process-global captured-output buffer (spec.md §4.G
// "Output capture").
func (r *Registry) Output() *OutputBuffer { return r.out }

// OutputBuffer is the mutex-guarded process-global buffer that println/print
// mirror to, alongside stdout, so embedding environments (notebooks, tests)
// can retrieve emitted text via get_captured_output() (spec.md §4.G, §6).
type OutputBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func NewOutputBuffer() *OutputBuffer { return &OutputBuffer{} }

func (o *OutputBuffer) Write(s string) {
	o.mu.Lock()
	o.buf.WriteString(s)
	o.mu.Unlock()
}

// Drain returns everything captured so far and clears the buffer — this is
// get_captured_output() from spec.md §6.
func (o *OutputBuffer) Drain() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.buf.String()
	o.buf.Reset()
	return s
}

// arity/type helpers shared across builtin files.

func argErr(name string, want, got int) *diagnostics.Error {
	return diagnostics.Runtimef("%s expects %d argument(s), got %d", name, want, got)
}

func wantInt(name string, args []value.Value, i int) (int64, *diagnostics.Error) {
	if i >= len(args) {
		return 0, diagnostics.Runtimef("%s: missing argument %d", name, i)
	}
	iv, ok := args[i].(value.Int)
	if !ok {
		return 0, diagnostics.Typef("%s: argument %d must be Integer, got %s", name, i, value.TypeName(args[i]))
	}
	return int64(iv), nil
}

func wantFloat(name string, args []value.Value, i int) (float64, *diagnostics.Error) {
	if i >= len(args) {
		return 0, diagnostics.Runtimef("%s: missing argument %d", name, i)
	}
	switch v := args[i].(type) {
	case value.Int:
		return float64(v), nil
	case value.Float:
		return float64(v), nil
	}
	return 0, diagnostics.Typef("%s: argument %d must be numeric, got %s", name, i, value.TypeName(args[i]))
}

func wantString(name string, args []value.Value, i int) (string, *diagnostics.Error) {
	if i >= len(args) {
		return "", diagnostics.Runtimef("%s: missing argument %d", name, i)
	}
	sv, ok := args[i].(value.Str)
	if !ok {
		return "", diagnostics.Typef("%s: argument %d must be String, got %s", name, i, value.TypeName(args[i]))
	}
	return string(sv), nil
}

func wantArray(name string, args []value.Value, i int) (*value.Array, *diagnostics.Error) {
	if i >= len(args) {
		return nil, diagnostics.Runtimef("%s: missing argument %d", name, i)
	}
	av, ok := args[i].(*value.Array)
	if !ok {
		return nil, diagnostics.Typef("%s: argument %d must be Array, got %s", name, i, value.TypeName(args[i]))
	}
	return av, nil
}
