package value

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Array is an immutable view over a shared sequence of Values. Mutating
// methods on arrays (push, sort, …) return a new Array; see spec.md §3.1.
type Array struct {
	Elems []Value
}

func NewArray(elems []Value) *Array { return &Array{Elems: elems} }

func (*Array) Kind() Kind { return KindArray }
func (a *Array) Display() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = displayOf(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is an immutable, positionally indexed sequence.
type Tuple struct {
	Elems []Value
}

func (*Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) Display() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = displayOf(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Object is an immutable string→Value map. A field "update" allocates a new
// Object rather than mutating this one (spec.md §3.1, §4.F.2).
type Object struct {
	Fields map[string]Value
	// Order records insertion order so Display is stable for a given
	// construction, even though spec.md leaves key order unspecified.
	Order []string
}

func NewObject() *Object { return &Object{Fields: map[string]Value{}} }

func (o *Object) Set(key string, v Value) *Object {
	next := &Object{Fields: make(map[string]Value, len(o.Fields)+1), Order: append([]string{}, o.Order...)}
	for k, vv := range o.Fields {
		next.Fields[k] = vv
	}
	if _, exists := next.Fields[key]; !exists {
		next.Order = append(next.Order, key)
	}
	next.Fields[key] = v
	return next
}

func (*Object) Kind() Kind { return KindObject }
func (o *Object) Display() string {
	parts := make([]string, 0, len(o.Order))
	for _, k := range o.Order {
		parts = append(parts, fmt.Sprintf("%s: %s", k, displayOf(o.Fields[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ObjectMut is a shared, interior-mutable string→Value map guarded by a
// mutex. Actor instances and `&mut self` receivers are ObjectMut so that an
// assignment observed through one alias is visible through every other
// alias holding the same handle (spec.md §3.1's sharing discipline).
type ObjectMut struct {
	mu     sync.Mutex
	fields map[string]Value
	order  []string
	// Tag marks the interior kind for method dispatch (spec.md §4.F.2):
	// "ActorInstance", "ClassInstance" (unused, Class covers that), or "File".
	Tag string
}

func NewObjectMut(tag string) *ObjectMut {
	return &ObjectMut{fields: map[string]Value{}, Tag: tag}
}

func (o *ObjectMut) Get(key string) (Value, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.fields[key]
	return v, ok
}

func (o *ObjectMut) Set(key string, v Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.fields[key]; !exists {
		o.order = append(o.order, key)
	}
	o.fields[key] = v
}

func (o *ObjectMut) Snapshot() map[string]Value {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[string]Value, len(o.fields))
	for k, v := range o.fields {
		out[k] = v
	}
	return out
}

func (*ObjectMut) Kind() Kind { return KindObjectMut }
func (o *ObjectMut) Display() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	parts := make([]string, 0, len(o.order))
	for _, k := range o.order {
		parts = append(parts, fmt.Sprintf("%s: %s", k, displayOf(o.fields[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Struct is a nominal, copy-on-write record (spec.md §3.1).
type Struct struct {
	Name   string
	Fields map[string]Value
	Order  []string
}

func (*Struct) Kind() Kind { return KindStruct }
func (s *Struct) Display() string {
	parts := make([]string, 0, len(s.Order))
	for _, k := range s.Order {
		parts = append(parts, fmt.Sprintf("%s: %s", k, displayOf(s.Fields[k])))
	}
	return s.Name + " {" + strings.Join(parts, ", ") + "}"
}

// With returns a new Struct with key updated, leaving s untouched
// (copy-on-write assignment, spec.md §4.F.2).
func (s *Struct) With(key string, v Value) *Struct {
	next := &Struct{Name: s.Name, Fields: make(map[string]Value, len(s.Fields)), Order: append([]string{}, s.Order...)}
	for k, vv := range s.Fields {
		next.Fields[k] = vv
	}
	if _, exists := next.Fields[key]; !exists {
		next.Order = append(next.Order, key)
	}
	next.Fields[key] = v
	return next
}

// Class is nominal and mutable: fields live behind a lock and methods are
// shared with every instance (spec.md §3.1).
type Class struct {
	mu        sync.RWMutex
	ClassName string
	fields    map[string]Value
	order     []string
	Methods   map[string]Value // method name -> Closure, shared across instances
}

func NewClass(name string, methods map[string]Value) *Class {
	return &Class{ClassName: name, fields: map[string]Value{}, Methods: methods}
}

func (c *Class) Get(key string) (Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.fields[key]
	return v, ok
}

func (c *Class) Set(key string, v Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.fields[key]; !exists {
		c.order = append(c.order, key)
	}
	c.fields[key] = v
}

func (c *Class) Snapshot() map[string]Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Value, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}

func (*Class) Kind() Kind { return KindClass }
func (c *Class) Display() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parts := make([]string, 0, len(c.order))
	for _, k := range c.order {
		parts = append(parts, fmt.Sprintf("%s: %s", k, displayOf(c.fields[k])))
	}
	return c.ClassName + " {" + strings.Join(parts, ", ") + "}"
}

// Range is `{start, end, inclusive}`; both bounds are themselves Values,
// typically Int (spec.md §3.1).
type Range struct {
	Start     Value
	End       Value
	Inclusive bool
}

func (*Range) Kind() Kind { return KindRange }
func (r *Range) Display() string {
	sep := ".."
	if r.Inclusive {
		sep = "..="
	}
	return displayOf(r.Start) + sep + displayOf(r.End)
}

// IntBounds returns the integer endpoints of an integer Range.
func (r *Range) IntBounds() (start, end int64, ok bool) {
	s, ok1 := r.Start.(Int)
	e, ok2 := r.End.(Int)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return int64(s), int64(e), true
}

// ClosureParam mirrors ast.Param without importing the ast package, to keep
// value free of a dependency on the AST; the evaluator bridges the two.
type ClosureParam struct {
	Name       string
	HasDefault bool
	Default    interface{} // ast.Expr, evaluated lazily by the evaluator
}

// Closure is a callable capturing a shared environment handle (spec.md
// §3.1, §9). Env and Body are opaque to this package (ast.Expr / a shared
// frame reference) so that internal/value never imports internal/ast or
// internal/env — only internal/eval, which owns both, interprets them.
type Closure struct {
	Name   string // non-empty for named functions (self-bound for recursion)
	Params []ClosureParam
	Body   interface{} // ast.Expr
	Env    interface{} // *env.Environment
	IsAsync bool
}

func (*Closure) Kind() Kind       { return KindClosure }
func (c *Closure) Display() string {
	return fmt.Sprintf("<function %s>", nameOr(c.Name, "anonymous"))
}

func nameOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// BuiltinFunction references a host function by name in the registry
// (spec.md §3.1, §4.G).
type BuiltinFunction struct {
	Name string
}

func (*BuiltinFunction) Kind() Kind       { return KindBuiltin }
func (b *BuiltinFunction) Display() string { return fmt.Sprintf("<builtin %s>", b.Name) }

// EnumVariant also models Result::Ok/Err and Option::Some/None (spec.md §3.1).
type EnumVariant struct {
	EnumName    string
	VariantName string
	Payload     []Value
}

func (*EnumVariant) Kind() Kind { return KindEnum }
func (e *EnumVariant) Display() string {
	if len(e.Payload) == 0 {
		return e.VariantName
	}
	parts := make([]string, len(e.Payload))
	for i, p := range e.Payload {
		parts[i] = displayOf(p)
	}
	return e.VariantName + "(" + strings.Join(parts, ", ") + ")"
}

// Result builds a Result::Ok/Err EnumVariant, used throughout builtins that
// return a fallible outcome instead of raising a runtime error (spec.md §3.1).
func Result(variant string, payload Value) *EnumVariant {
	return &EnumVariant{EnumName: "Result", VariantName: variant, Payload: []Value{payload}}
}

// Option builds an Option::Some/None EnumVariant.
func Option(variant string, payload ...Value) *EnumVariant {
	return &EnumVariant{EnumName: "Option", VariantName: variant, Payload: payload}
}

// DataFrame is a second-class value used only by a fixed set of built-ins
// (spec.md §3.1).
type DataFrame struct {
	Columns     []string
	ColumnData  map[string][]Value
}

func (*DataFrame) Kind() Kind { return KindDataFrame }
func (d *DataFrame) Display() string {
	return fmt.Sprintf("DataFrame[%d cols]", len(d.Columns))
}

// TypeRef is the callable value an identifier referring to a struct/class/
// enum/actor declaration evaluates to (spec.md §4.F.2, "If callee is a
// Struct/Class/Enum type value: constructs an instance positionally"). The
// evaluator resolves the declaration behind DeclKind+Name at call time; this
// package only carries the tag.
type TypeRef struct {
	DeclKind string // "struct", "class", "enum", "actor"
	Name     string
}

func (*TypeRef) Kind() Kind        { return KindTypeRef }
func (t *TypeRef) Display() string { return fmt.Sprintf("<type %s>", t.Name) }

func displayOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Display()
}

// SortArray returns a new Array sorted by the given less function —
// `sort(sort(xs)) == sort(xs)` (spec.md §8 idempotence law) holds because
// sort.SliceStable is itself idempotent on an already-sorted slice.
func SortArray(a *Array, less func(i, j Value) bool) *Array {
	elems := append([]Value{}, a.Elems...)
	sort.SliceStable(elems, func(i, j int) bool { return less(elems[i], elems[j]) })
	return &Array{Elems: elems}
}

// ReverseArray returns a new reversed Array.
func ReverseArray(a *Array) *Array {
	elems := make([]Value, len(a.Elems))
	for i, v := range a.Elems {
		elems[len(a.Elems)-1-i] = v
	}
	return &Array{Elems: elems}
}
