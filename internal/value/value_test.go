package value_test

import (
	"testing"

	"github.com/glint-lang/glint/internal/value"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"nil interface", nil, false},
		{"Nil{}", value.Nil{}, false},
		{"false", value.Bool(false), false},
		{"true", value.Bool(true), true},
		{"zero int", value.Int(0), false},
		{"nonzero int", value.Int(5), true},
		{"zero float", value.Float(0), false},
		{"nonzero float", value.Float(0.5), true},
		{"empty string", value.Str(""), false},
		{"nonempty string", value.Str("x"), true},
		{"empty array", value.NewArray(nil), false},
		{"nonempty array", value.NewArray([]value.Value{value.Int(1)}), true},
		{"struct is always truthy", &value.Struct{Name: "P"}, true},
	}
	for _, tc := range cases {
		if got := value.Truthy(tc.v); got != tc.want {
			t.Errorf("%s: Truthy() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	if got := value.TypeName(nil); got != "Nil" {
		t.Errorf("TypeName(nil) = %s, want Nil", got)
	}
	if got := value.TypeName(value.Int(1)); got != "Int" {
		t.Errorf("TypeName(Int) = %s, want Int", got)
	}
	if got := value.TypeName(&value.Struct{Name: "Point"}); got != "Point" {
		t.Errorf("TypeName(*Struct) = %s, want Point (nominal name, not \"Struct\")", got)
	}
	if got := value.TypeName(value.NewClass("Counter", nil)); got != "Counter" {
		t.Errorf("TypeName(*Class) = %s, want Counter", got)
	}
}

func TestScalarDisplay(t *testing.T) {
	cases := []struct {
		v    value.Value
		want string
	}{
		{value.Int(42), "42"},
		{value.Int(-3), "-3"},
		{value.Float(2.5), "2.5"},
		{value.Float(2), "2.0"},
		{value.Bool(true), "true"},
		{value.Nil{}, "nil"},
		{value.Str("hi"), `"hi"`},
		{value.Atom("ok"), ":ok"},
		{value.Char('a'), "a"},
	}
	for _, tc := range cases {
		if got := tc.v.Display(); got != tc.want {
			t.Errorf("%#v.Display() = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestArrayAndTupleDisplay(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Int(1), value.Int(2)})
	if got := arr.Display(); got != "[1, 2]" {
		t.Errorf("Array.Display() = %q, want [1, 2]", got)
	}
	tup := &value.Tuple{Elems: []value.Value{value.Int(1), value.Bool(true)}}
	if got := tup.Display(); got != "(1, true)" {
		t.Errorf("Tuple.Display() = %q, want (1, true)", got)
	}
}

func TestObjectSetIsCopyOnWrite(t *testing.T) {
	base := value.NewObject()
	updated := base.Set("x", value.Int(1))
	if _, ok := base.Fields["x"]; ok {
		t.Fatalf("Set mutated the original Object")
	}
	if v, ok := updated.Fields["x"]; !ok || v != value.Int(1) {
		t.Fatalf("Set did not add the field to the new Object")
	}

	updated2 := updated.Set("x", value.Int(2))
	if v := updated.Fields["x"]; v != value.Int(1) {
		t.Fatalf("Set on updated mutated it; got %v", v)
	}
	if v := updated2.Fields["x"]; v != value.Int(2) {
		t.Fatalf("Set did not overwrite existing key's value")
	}
	if len(updated2.Order) != 1 {
		t.Fatalf("overwriting an existing key should not grow Order, got %v", updated2.Order)
	}
}

func TestStructWithIsCopyOnWrite(t *testing.T) {
	s := &value.Struct{Name: "Point", Fields: map[string]value.Value{"x": value.Int(1)}, Order: []string{"x"}}
	s2 := s.With("x", value.Int(9))
	if s.Fields["x"] != value.Int(1) {
		t.Fatalf("With mutated the original Struct")
	}
	if s2.Fields["x"] != value.Int(9) {
		t.Fatalf("With did not update the new Struct")
	}
	if s2.Name != "Point" {
		t.Fatalf("With lost the struct name")
	}
}

func TestObjectMutSharesStateAcrossHandles(t *testing.T) {
	o := value.NewObjectMut("ActorInstance")
	alias := o
	o.Set("count", value.Int(1))
	v, ok := alias.Get("count")
	if !ok || v != value.Int(1) {
		t.Fatalf("ObjectMut mutation not visible through aliasing handle")
	}
}

func TestClassFieldsAreMutable(t *testing.T) {
	c := value.NewClass("Counter", map[string]value.Value{})
	c.Set("n", value.Int(0))
	c.Set("n", value.Int(1))
	v, ok := c.Get("n")
	if !ok || v != value.Int(1) {
		t.Fatalf("Class.Set did not update in place")
	}
}

func TestRangeIntBounds(t *testing.T) {
	r := &value.Range{Start: value.Int(1), End: value.Int(5), Inclusive: true}
	start, end, ok := r.IntBounds()
	if !ok || start != 1 || end != 5 {
		t.Fatalf("IntBounds() = %d, %d, %v; want 1, 5, true", start, end, ok)
	}
	if got := r.Display(); got != "1..=5" {
		t.Errorf("Range.Display() = %q, want 1..=5", got)
	}

	nonInt := &value.Range{Start: value.Str("a"), End: value.Str("z")}
	if _, _, ok := nonInt.IntBounds(); ok {
		t.Fatalf("IntBounds() should fail for a non-integer range")
	}
}

func TestEnumVariantDisplay(t *testing.T) {
	none := value.Option("None")
	if got := none.Display(); got != "None" {
		t.Errorf("None.Display() = %q, want None", got)
	}
	some := value.Option("Some", value.Int(3))
	if got := some.Display(); got != "Some(3)" {
		t.Errorf("Some(3).Display() = %q, want Some(3)", got)
	}
	err := value.Result("Err", value.Str("boom"))
	if got := err.Display(); got != `Err("boom")` {
		t.Errorf("Err.Display() = %q, want Err(\"boom\")", got)
	}
}

func TestSortAndReverseArray(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Int(3), value.Int(1), value.Int(2)})
	sorted := value.SortArray(arr, func(i, j value.Value) bool {
		return i.(value.Int) < j.(value.Int)
	})
	if sorted.Display() != "[1, 2, 3]" {
		t.Fatalf("SortArray = %s, want [1, 2, 3]", sorted.Display())
	}
	if arr.Display() != "[3, 1, 2]" {
		t.Fatalf("SortArray mutated the original array: %s", arr.Display())
	}

	rev := value.ReverseArray(arr)
	if rev.Display() != "[2, 1, 3]" {
		t.Fatalf("ReverseArray = %s, want [2, 1, 3]", rev.Display())
	}
}
