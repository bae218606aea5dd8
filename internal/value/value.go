// Package value implements the runtime Value model (spec.md §3.1, component
// A). Composite values share their payload through a pointer so that cloning
// a Value clones only the handle, exactly as spec.md's "Sharing discipline"
// requires; ObjectMut and Class additionally guard their payload with a
// lock so mutation through one alias is visible through another.
//
// Grounded on the teacher's internal/evaluator/object*.go: one Object
// interface implemented by a family of small structs, an ObjectType string
// tag, and free functions for Inspect-style rendering — generalized here to
// the richer variant set spec.md §3.1 requires (ObjectMut, Class, Range,
// EnumVariant, DataFrame) and stripped of the teacher's static type-system
// plumbing, which has no counterpart in this dynamically-typed language.
package value

import "fmt"

// Kind tags a Value's runtime variant, used for type_name() diagnostics and
// dispatch (spec.md §4.A).
type Kind string

const (
	KindInt       Kind = "Int"
	KindFloat     Kind = "Float"
	KindBool      Kind = "Bool"
	KindByte      Kind = "Byte"
	KindChar      Kind = "Char"
	KindAtom      Kind = "Atom"
	KindNil       Kind = "Nil"
	KindString    Kind = "String"
	KindArray     Kind = "Array"
	KindTuple     Kind = "Tuple"
	KindObject    Kind = "Object"
	KindObjectMut Kind = "ObjectMut"
	KindStruct    Kind = "Struct"
	KindClass     Kind = "Class"
	KindRange     Kind = "Range"
	KindClosure   Kind = "Closure"
	KindBuiltin   Kind = "BuiltinFunction"
	KindEnum      Kind = "EnumVariant"
	KindDataFrame Kind = "DataFrame"
	KindTypeRef   Kind = "TypeRef"
)

// Value is the tagged union of runtime values (spec.md §3.1).
type Value interface {
	Kind() Kind
	Display() string
}

// TypeName returns the diagnostic type name for v (spec.md §4.A).
func TypeName(v Value) string {
	if v == nil {
		return "Nil"
	}
	if s, ok := v.(*Struct); ok {
		return s.Name
	}
	if c, ok := v.(*Class); ok {
		return c.ClassName
	}
	return string(v.Kind())
}

// Truthy implements the §3.1 truthiness rule.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case Nil:
		return false
	case Bool:
		return bool(t)
	case Int:
		return t != 0
	case Float:
		return t != 0
	case Str:
		return len(t) > 0
	case *Array:
		return len(t.Elems) > 0
	default:
		return true
	}
}

// ---- scalars ----
// Scalars are plain Go value types: copying a Value interface holding one of
// these copies the scalar itself, which is correct since scalars have no
// shared payload to alias.

type Int int64

func (Int) Kind() Kind         { return KindInt }
func (i Int) Display() string  { return fmt.Sprintf("%d", int64(i)) }

type Float float64

func (Float) Kind() Kind { return KindFloat }
func (f Float) Display() string {
	s := fmt.Sprintf("%g", float64(f))
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}

type Bool bool

func (Bool) Kind() Kind        { return KindBool }
func (b Bool) Display() string { return fmt.Sprintf("%t", bool(b)) }

type Byte byte

func (Byte) Kind() Kind        { return KindByte }
func (b Byte) Display() string { return fmt.Sprintf("%d", byte(b)) }

// Char is encoded as a one-character string per spec.md §3.1.
type Char rune

func (Char) Kind() Kind        { return KindChar }
func (c Char) Display() string { return string(rune(c)) }

// Atom is an interned symbol.
type Atom string

func (Atom) Kind() Kind        { return KindAtom }
func (a Atom) Display() string { return ":" + string(a) }

type Nil struct{}

func (Nil) Kind() Kind        { return KindNil }
func (Nil) Display() string   { return "nil" }

// Str is an immutable, already-shared Go string.
type Str string

func (Str) Kind() Kind { return KindString }
func (s Str) Display() string {
	return "\"" + string(s) + "\""
}

// Raw returns the underlying Go string, for use sites that don't want quoting.
func (s Str) Raw() string { return string(s) }
