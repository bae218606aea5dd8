// Package env implements the lexically scoped frame stack of spec.md §3.3 /
// §4.C: a chain of shared, interior-mutable frames so that a closure
// capturing a frame reference observes mutations made to it after the
// closure was constructed (spec.md §9, "Shared-frame closures").
//
// Grounded on the teacher's internal/evaluator/environment.go, which is
// already exactly this shape (store map + outer pointer + RWMutex);
// generalized here with the mutable-name bookkeeping spec.md §3.3 asks for.
package env

import (
	"sync"

	"github.com/glint-lang/glint/internal/value"
)

// Environment is one frame in the stack. Frames are reference types: two
// Environment pointers with the same outer chain observe each other's
// Define/Assign calls, which is the mechanism spec.md's Closure relies on.
type Environment struct {
	mu     sync.RWMutex
	store  map[string]value.Value
	mutset map[string]bool
	outer  *Environment
}

// New creates the root frame. The evaluator creates exactly one of these at
// construction and it persists for the program's lifetime (spec.md §4.C
// invariant).
func New() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// PushScope returns a new frame enclosed by env — used for function bodies,
// blocks, loop bodies, and match arms (spec.md §3.3).
func (e *Environment) PushScope() *Environment {
	return &Environment{store: make(map[string]value.Value), outer: e}
}

// PopScope returns the enclosing frame, or env itself if it is the root.
// Scope bookkeeping in this evaluator is purely lexical — callers simply
// discard the child *Environment and resume using the parent they already
// held, so PopScope exists only to make that discipline explicit at call
// sites that walk the chain generically.
func (e *Environment) PopScope() *Environment {
	if e.outer == nil {
		return e
	}
	return e.outer
}

// Lookup walks from this frame outward (spec.md §4.C).
func (e *Environment) Lookup(name string) (value.Value, bool) {
	e.mu.RLock()
	v, ok := e.store[name]
	e.mu.RUnlock()
	if ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Lookup(name)
	}
	return nil, false
}

// Define binds name in the top (this) frame, shadowing any outer binding
// (spec.md §3.3 "Variable creation binds in the top frame").
func (e *Environment) Define(name string, v value.Value) {
	e.mu.Lock()
	e.store[name] = v
	e.mu.Unlock()
}

// Assign updates the nearest existing binding; if none exists anywhere in
// the chain, it defines one in the top frame — "same behavior as a
// declaration" per spec.md §3.3.
func (e *Environment) Assign(name string, v value.Value) {
	if e.update(name, v) {
		return
	}
	e.Define(name, v)
}

func (e *Environment) update(name string, v value.Value) bool {
	e.mu.Lock()
	if _, ok := e.store[name]; ok {
		e.store[name] = v
		e.mu.Unlock()
		return true
	}
	e.mu.Unlock()
	if e.outer != nil {
		return e.outer.update(name, v)
	}
	return false
}

// MarkMut records that name was introduced through a `mut` pattern marker.
// Assignment to a non-mut binding is not a hard error today, matching
// spec.md §3.3's note that this is "the intended hook for future
// enforcement" rather than an enforced invariant.
func (e *Environment) MarkMut(name string) {
	e.mu.Lock()
	if e.mutset == nil {
		e.mutset = make(map[string]bool)
	}
	e.mutset[name] = true
	e.mu.Unlock()
}

// IsMut reports whether name was declared mutable in this frame chain.
func (e *Environment) IsMut(name string) bool {
	e.mu.RLock()
	mut := e.mutset[name]
	e.mu.RUnlock()
	if mut {
		return true
	}
	if e.outer != nil {
		return e.outer.IsMut(name)
	}
	return false
}

// Capture returns the shared frame reference to embed in a Closure
// (spec.md §4.C). Because Environment is always used through a pointer,
// capturing is just handing out the pointer — no copy is made, which is
// what makes post-definition mutation visible to the closure.
func (e *Environment) Capture() *Environment { return e }

// Snapshot returns a shallow copy of this frame's own bindings (not the
// whole chain) — used by the struct `&mut self` write-back design (spec.md
// §9) to compare pre-/post-call field state.
func (e *Environment) Snapshot() map[string]value.Value {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]value.Value, len(e.store))
	for k, v := range e.store {
		out[k] = v
	}
	return out
}
