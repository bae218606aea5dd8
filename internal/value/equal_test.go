package value_test

import (
	"testing"

	"github.com/glint-lang/glint/internal/value"
)

func TestEqualScalars(t *testing.T) {
	cases := []struct {
		name string
		a, b value.Value
		want bool
	}{
		{"int == int", value.Int(1), value.Int(1), true},
		{"int != int", value.Int(1), value.Int(2), false},
		{"int promotes to float", value.Int(2), value.Float(2.0), true},
		{"float promotes to int", value.Float(2.5), value.Int(2), false},
		{"string content equality", value.Str("hi"), value.Str("hi"), true},
		{"string differs by content", value.Str("hi"), value.Str("ho"), false},
		{"bool equality", value.Bool(true), value.Bool(true), true},
		{"nil interface and Nil{}", nil, value.Nil{}, true},
		{"Nil{} and Nil{}", value.Nil{}, value.Nil{}, true},
		{"mismatched kinds", value.Int(1), value.Str("1"), false},
	}
	for _, tc := range cases {
		if got := value.Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: Equal(%#v, %#v) = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEqualArraysAndTuplesAreStructural(t *testing.T) {
	a := value.NewArray([]value.Value{value.Int(1), value.Int(2)})
	b := value.NewArray([]value.Value{value.Int(1), value.Int(2)})
	if !value.Equal(a, b) {
		t.Fatalf("two distinct arrays with equal elements should be Equal")
	}
	c := value.NewArray([]value.Value{value.Int(1), value.Int(3)})
	if value.Equal(a, c) {
		t.Fatalf("arrays with differing elements should not be Equal")
	}

	t1 := &value.Tuple{Elems: []value.Value{value.Int(1), value.Bool(true)}}
	t2 := &value.Tuple{Elems: []value.Value{value.Int(1), value.Bool(true)}}
	if !value.Equal(t1, t2) {
		t.Fatalf("two distinct tuples with equal elements should be Equal")
	}
}

func TestEqualObjectsByKeySetAndValue(t *testing.T) {
	a := value.NewObject().Set("x", value.Int(1)).Set("y", value.Int(2))
	b := value.NewObject().Set("y", value.Int(2)).Set("x", value.Int(1))
	if !value.Equal(a, b) {
		t.Fatalf("objects with the same fields in different insertion order should be Equal")
	}
	c := value.NewObject().Set("x", value.Int(1))
	if value.Equal(a, c) {
		t.Fatalf("objects with differing key sets should not be Equal")
	}
}

func TestEqualStructsCompareNameAndFields(t *testing.T) {
	a := &value.Struct{Name: "Point", Fields: map[string]value.Value{"x": value.Int(1)}}
	b := &value.Struct{Name: "Point", Fields: map[string]value.Value{"x": value.Int(1)}}
	if !value.Equal(a, b) {
		t.Fatalf("structs with the same name and fields should be Equal")
	}
	c := &value.Struct{Name: "Other", Fields: map[string]value.Value{"x": value.Int(1)}}
	if value.Equal(a, c) {
		t.Fatalf("structs with differing names should not be Equal even with identical fields")
	}
}

func TestEqualEnumVariantsCompareNameAndPayload(t *testing.T) {
	a := value.Option("Some", value.Int(1))
	b := value.Option("Some", value.Int(1))
	if !value.Equal(a, b) {
		t.Fatalf("EnumVariants with equal variant/payload should be Equal")
	}
	c := value.Option("Some", value.Int(2))
	if value.Equal(a, c) {
		t.Fatalf("EnumVariants with differing payload should not be Equal")
	}
	d := value.Option("None")
	if value.Equal(a, d) {
		t.Fatalf("EnumVariants with differing variant names should not be Equal")
	}
}

func TestEqualByIdentityForSharedHandles(t *testing.T) {
	c1 := value.NewClass("Counter", nil)
	c2 := value.NewClass("Counter", nil)
	if value.Equal(c1, c2) {
		t.Fatalf("two distinct Class instances should not be Equal even with the same name")
	}
	if !value.Equal(c1, c1) {
		t.Fatalf("a Class should be Equal to itself")
	}

	closure := &value.Closure{Name: "f"}
	if !value.Equal(closure, closure) {
		t.Fatalf("a Closure should be Equal to itself")
	}
	if value.Equal(closure, &value.Closure{Name: "f"}) {
		t.Fatalf("distinct Closures should not be Equal even with the same name")
	}
}

func TestEqualBuiltinFunctionsByName(t *testing.T) {
	a := &value.BuiltinFunction{Name: "print"}
	b := &value.BuiltinFunction{Name: "print"}
	if !value.Equal(a, b) {
		t.Fatalf("BuiltinFunctions with the same name should be Equal")
	}
	c := &value.BuiltinFunction{Name: "len"}
	if value.Equal(a, c) {
		t.Fatalf("BuiltinFunctions with differing names should not be Equal")
	}
}
