package eval_test

import (
	"testing"

	"github.com/glint-lang/glint/internal/eval"
	"github.com/glint-lang/glint/internal/parser"
	"github.com/glint-lang/glint/internal/value"
)

// run parses and evaluates input, failing the test on any parse or runtime
// error — the same parse(t, input) -> run shape as the teacher's
// internal/vm/vm_test.go, collapsed into one helper since this module has
// no separate compile step.
func run(t *testing.T, input string) value.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(input)
	if len(errs) > 0 {
		t.Fatalf("parse error for %q: %s", input, errs[0].Error())
	}
	v, err := eval.New().RunProgram(prog)
	if err != nil {
		t.Fatalf("eval error for %q: %s", input, err.Error())
	}
	return v
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"2 * 3 + 4", "10"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"10 / 4", "2"},
		{"10.0 / 4.0", "2.5"},
		{"2 ** 10", "1024"},
		{"-5 + 3", "-2"},
		{"7 % 3", "1"},
	}
	for _, tc := range cases {
		if got := run(t, tc.input).Display(); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestComparisonAndLogic(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1 < 2", "true"},
		{"2 <= 2", "true"},
		{"3 > 4", "false"},
		{"1 == 1", "true"},
		{"1 != 2", "true"},
		{"true && false", "false"},
		{"true || false", "true"},
		{"nil ?? 5", "5"},
		{"3 ?? 5", "3"},
	}
	for _, tc := range cases {
		if got := run(t, tc.input).Display(); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestLetAndIf(t *testing.T) {
	if got := run(t, "let x = 10\nif x > 5 { 1 } else { 0 }").Display(); got != "1" {
		t.Errorf("got %s, want 1", got)
	}
	if got := run(t, "let mut x = 1\nx = x + 1\nx").Display(); got != "2" {
		t.Errorf("got %s, want 2", got)
	}
}

func TestWhileAndFor(t *testing.T) {
	src := `let mut total = 0
let mut i = 0
while i < 5 {
	total = total + i
	i = i + 1
}
total`
	if got := run(t, src).Display(); got != "10" {
		t.Errorf("got %s, want 10", got)
	}

	src = `let mut total = 0
for x in [1, 2, 3] {
	total = total + x
}
total`
	if got := run(t, src).Display(); got != "6" {
		t.Errorf("got %s, want 6", got)
	}
}

func TestFunctionsAndClosures(t *testing.T) {
	src := `fn add(a, b) { a + b }
add(2, 3)`
	if got := run(t, src).Display(); got != "5" {
		t.Errorf("got %s, want 5", got)
	}

	src = `fn makeAdder(n) { fn(x) { x + n } }
let addFive = makeAdder(5)
addFive(10)`
	if got := run(t, src).Display(); got != "15" {
		t.Errorf("got %s, want 15", got)
	}
}

func TestMatch(t *testing.T) {
	src := `let x = 2
match x {
	1 => "one"
	2 => "two"
	_ => "other"
}`
	str, ok := run(t, src).(value.Str)
	if !ok {
		t.Fatalf("expected value.Str, got %T", run(t, src))
	}
	if got := str.Raw(); got != "two" {
		t.Errorf("got %s, want two", got)
	}
}

func TestSetDeduplicates(t *testing.T) {
	got := run(t, "set { 1, 2, 2, 3, 1 }")
	arr, ok := got.(*value.Array)
	if !ok {
		t.Fatalf("expected *value.Array, got %T", got)
	}
	if len(arr.Elems) != 3 {
		t.Errorf("got %d elements, want 3 (deduplicated)", len(arr.Elems))
	}
}

func TestActorSpawnHasStableID(t *testing.T) {
	src := `actor Counter {
	count: Int = 0
}
let a = spawn Counter()
let b = spawn Counter()
a.id() != b.id()`
	if got := run(t, src).Display(); got != "true" {
		t.Errorf("got %s, want true (distinct actor identities)", got)
	}
}
