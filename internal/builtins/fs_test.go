package builtins_test

import (
	"path/filepath"
	"testing"

	"github.com/glint-lang/glint/internal/builtins"
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

func noopCall(value.Value, []value.Value) (value.Value, *diagnostics.Error) { return nil, nil }

func callBuiltin(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	fn, ok := builtins.Global().Lookup(name)
	if !ok {
		t.Fatalf("builtin %q is not registered", name)
	}
	v, err := fn(args, noopCall)
	if err != nil {
		t.Fatalf("%s errored: %s", name, err.Error())
	}
	return v
}

func mustOk(t *testing.T, v value.Value) value.Value {
	t.Helper()
	ev, ok := v.(*value.EnumVariant)
	if !ok || ev.VariantName != "Ok" {
		t.Fatalf("expected Ok(...), got %v", v)
	}
	return ev.Payload[0]
}

func TestWriteThenReadFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.txt")
	callBuiltin(t, "write_file", value.Str(path), value.Str("hello"))

	got := mustOk(t, callBuiltin(t, "read_file", value.Str(path)))
	s, ok := got.(value.Str)
	if !ok || string(s) != "hello" {
		t.Fatalf("expected read_file to return \"hello\", got %v", got)
	}
}

func TestFsExistsAndIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	callBuiltin(t, "write_file", value.Str(path), value.Str("x"))

	if b, ok := callBuiltin(t, "fs_exists", value.Str(path)).(value.Bool); !ok || !bool(b) {
		t.Fatalf("fs_exists should report true for an existing file")
	}
	if b, ok := callBuiltin(t, "fs_exists", value.Str(filepath.Join(dir, "missing.txt"))).(value.Bool); !ok || bool(b) {
		t.Fatalf("fs_exists should report false for a missing file")
	}
	if b, ok := callBuiltin(t, "fs_is_file", value.Str(path)).(value.Bool); !ok || !bool(b) {
		t.Fatalf("fs_is_file should report true for a plain file")
	}
	if b, ok := callBuiltin(t, "fs_is_file", value.Str(dir)).(value.Bool); !ok || bool(b) {
		t.Fatalf("fs_is_file should report false for a directory")
	}
}

func TestAppendFileAppendsRatherThanOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	callBuiltin(t, "write_file", value.Str(path), value.Str("a"))
	callBuiltin(t, "append_file", value.Str(path), value.Str("b"))

	got := mustOk(t, callBuiltin(t, "read_file", value.Str(path)))
	if s, ok := got.(value.Str); !ok || string(s) != "ab" {
		t.Fatalf("expected appended content \"ab\", got %v", got)
	}
}

func TestFsRemoveFileDeletesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doomed.txt")
	callBuiltin(t, "write_file", value.Str(path), value.Str("x"))
	callBuiltin(t, "fs_remove_file", value.Str(path))

	if b, ok := callBuiltin(t, "fs_exists", value.Str(path)).(value.Bool); !ok || bool(b) {
		t.Fatalf("file should no longer exist after fs_remove_file")
	}
}

func TestComputeHashIsStableAndSHA256Sized(t *testing.T) {
	h1 := callBuiltin(t, "compute_hash", value.Str("glint"))
	h2 := callBuiltin(t, "compute_hash", value.Str("glint"))
	s1, ok1 := h1.(value.Str)
	s2, ok2 := h2.(value.Str)
	if !ok1 || !ok2 || s1 != s2 {
		t.Fatalf("compute_hash should be deterministic, got %v and %v", h1, h2)
	}
	if len(string(s1)) != 64 {
		t.Fatalf("expected a 64-hex-char sha256 digest, got %d chars", len(string(s1)))
	}
}

func TestOpenReadsWholeFileIntoLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt")
	callBuiltin(t, "write_file", value.Str(path), value.Str("line1\nline2\nline3"))

	handle := mustOk(t, callBuiltin(t, "open", value.Str(path)))
	f, ok := handle.(*value.ObjectMut)
	if !ok || f.Tag != "File" {
		t.Fatalf("open should return a File-tagged ObjectMut, got %v", handle)
	}

	lines, ok := f.Get("lines")
	if !ok {
		t.Fatalf("File handle should have a lines field")
	}
	arr, ok := lines.(*value.Array)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	if arr.Elems[0] != value.Value(value.Str("line1")) {
		t.Fatalf("expected first line \"line1\", got %v", arr.Elems[0])
	}

	closed, _ := f.Get("closed")
	if closed != value.Value(value.Bool(false)) {
		t.Fatalf("a freshly opened file should not be closed")
	}
	pos, _ := f.Get("position")
	if pos != value.Value(value.Int(0)) {
		t.Fatalf("a freshly opened file should start at position 0")
	}
}

func TestOpenMissingFileReturnsErr(t *testing.T) {
	v := callBuiltin(t, "open", value.Str(filepath.Join(t.TempDir(), "nope.txt")))
	ev, ok := v.(*value.EnumVariant)
	if !ok || ev.VariantName != "Err" {
		t.Fatalf("opening a missing file should return Err(...), got %v", v)
	}
}
