package builtins

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerFS wires the filesystem builtin family (spec.md §6 names these as
// host collaborators "specified only by name and intent"; grounded on the
// teacher's builtins_fs.go for the read_file/write_file/fs_* naming and
// Result-wrapping convention).
func registerFS(r *Registry) {
	r.register("read_file", fsReadFile)
	r.register("fs_read", fsReadFile)

	r.register("write_file", fsWriteFile)
	r.register("fs_write", fsWriteFile)

	r.register("append_file", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("append_file", args, 0)
		if err != nil {
			return nil, err
		}
		content, err := wantString("append_file", args, 1)
		if err != nil {
			return nil, err
		}
		f, oerr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if oerr != nil {
			return value.Result("Err", value.Str(oerr.Error())), nil
		}
		defer f.Close()
		if _, werr := f.WriteString(content); werr != nil {
			return value.Result("Err", value.Str(werr.Error())), nil
		}
		return value.Result("Ok", value.Nil{}), nil
	})

	r.register("fs_exists", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_exists", args, 0)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(path)
		return value.Bool(statErr == nil), nil
	})

	r.register("fs_is_file", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_is_file", args, 0)
		if err != nil {
			return nil, err
		}
		info, statErr := os.Stat(path)
		return value.Bool(statErr == nil && !info.IsDir()), nil
	})

	r.register("fs_create_dir", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_create_dir", args, 0)
		if err != nil {
			return nil, err
		}
		if mkErr := os.MkdirAll(path, 0755); mkErr != nil {
			return value.Result("Err", value.Str(mkErr.Error())), nil
		}
		return value.Result("Ok", value.Nil{}), nil
	})

	r.register("fs_remove_file", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_remove_file", args, 0)
		if err != nil {
			return nil, err
		}
		if rmErr := os.Remove(path); rmErr != nil {
			return value.Result("Err", value.Str(rmErr.Error())), nil
		}
		return value.Result("Ok", value.Nil{}), nil
	})

	r.register("fs_remove_dir", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_remove_dir", args, 0)
		if err != nil {
			return nil, err
		}
		if rmErr := os.RemoveAll(path); rmErr != nil {
			return value.Result("Err", value.Str(rmErr.Error())), nil
		}
		return value.Result("Ok", value.Nil{}), nil
	})

	r.register("fs_rename", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		from, err := wantString("fs_rename", args, 0)
		if err != nil {
			return nil, err
		}
		to, err := wantString("fs_rename", args, 1)
		if err != nil {
			return nil, err
		}
		if rnErr := os.Rename(from, to); rnErr != nil {
			return value.Result("Err", value.Str(rnErr.Error())), nil
		}
		return value.Result("Ok", value.Nil{}), nil
	})

	r.register("fs_copy", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		from, err := wantString("fs_copy", args, 0)
		if err != nil {
			return nil, err
		}
		to, err := wantString("fs_copy", args, 1)
		if err != nil {
			return nil, err
		}
		data, rerr := os.ReadFile(from)
		if rerr != nil {
			return value.Result("Err", value.Str(rerr.Error())), nil
		}
		if werr := os.WriteFile(to, data, 0644); werr != nil {
			return value.Result("Err", value.Str(werr.Error())), nil
		}
		return value.Result("Ok", value.Nil{}), nil
	})

	r.register("fs_canonicalize", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_canonicalize", args, 0)
		if err != nil {
			return nil, err
		}
		abs, aerr := filepath.Abs(path)
		if aerr != nil {
			return value.Result("Err", value.Str(aerr.Error())), nil
		}
		return value.Result("Ok", value.Str(abs)), nil
	})

	r.register("fs_read_dir", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_read_dir", args, 0)
		if err != nil {
			return nil, err
		}
		entries, rerr := os.ReadDir(path)
		if rerr != nil {
			return value.Result("Err", value.Str(rerr.Error())), nil
		}
		out := make([]value.Value, len(entries))
		for i, e := range entries {
			out[i] = value.Str(e.Name())
		}
		return value.Result("Ok", value.NewArray(out)), nil
	})

	r.register("fs_metadata", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("fs_metadata", args, 0)
		if err != nil {
			return nil, err
		}
		info, serr := os.Stat(path)
		if serr != nil {
			return value.Result("Err", value.Str(serr.Error())), nil
		}
		obj := value.NewObject().
			Set("size", value.Int(info.Size())).
			Set("is_dir", value.Bool(info.IsDir())).
			Set("modified", value.Str(info.ModTime().Format("2006-01-02T15:04:05Z07:00")))
		return value.Result("Ok", obj), nil
	})

	r.register("glob", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		pattern, err := wantString("glob", args, 0)
		if err != nil {
			return nil, err
		}
		matches, gerr := filepath.Glob(pattern)
		if gerr != nil {
			return value.Result("Err", value.Str(gerr.Error())), nil
		}
		out := make([]value.Value, len(matches))
		for i, m := range matches {
			out[i] = value.Str(m)
		}
		return value.Result("Ok", value.NewArray(out)), nil
	})

	r.register("walk", fsWalk)
	r.register("walk_with_options", fsWalk)
	r.register("walk_parallel", fsWalk)

	r.register("open", fsOpen)

	r.register("compute_hash", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		data, err := wantString("compute_hash", args, 0)
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256([]byte(data))
		return value.Str(hex.EncodeToString(sum[:])), nil
	})
}

func fsReadFile(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	path, err := wantString("read_file", args, 0)
	if err != nil {
		return nil, err
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return value.Result("Err", value.Str(rerr.Error())), nil
	}
	return value.Result("Ok", value.Str(string(data))), nil
}

func fsWriteFile(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	path, err := wantString("write_file", args, 0)
	if err != nil {
		return nil, err
	}
	content, err := wantString("write_file", args, 1)
	if err != nil {
		return nil, err
	}
	if werr := os.WriteFile(path, []byte(content), 0644); werr != nil {
		return value.Result("Err", value.Str(werr.Error())), nil
	}
	return value.Result("Ok", value.Nil{}), nil
}

// fsOpen reads path into a line-backed File handle (spec.md §4.F.2's
// `ObjectMut tagged as File`), grounded on the original's file-object model
// in interpreter_methods_instance.rs: eager whole-file read into a "lines"
// array plus "position"/"closed" cursor fields, rather than a live OS
// descriptor — read/read_line/close walk that array instead of the
// filesystem. The original never exposes this construction through a named
// builtin (its tests build the HashMap by hand); "open" is this port's name
// for it, chosen from spec.md's receiver-kind table, which names the File
// tag and its method set but not an opener.
func fsOpen(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	path, err := wantString("open", args, 0)
	if err != nil {
		return nil, err
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return value.Result("Err", value.Str(rerr.Error())), nil
	}
	rawLines := strings.Split(string(data), "\n")
	if n := len(rawLines); n > 0 && rawLines[n-1] == "" {
		// a trailing newline produces no extra line, matching Rust's
		// str::lines() rather than a literal split on "\n".
		rawLines = rawLines[:n-1]
	}
	lines := make([]value.Value, len(rawLines))
	for i, l := range rawLines {
		lines[i] = value.Str(strings.TrimSuffix(l, "\r"))
	}
	f := value.NewObjectMut("File")
	f.Set("lines", value.NewArray(lines))
	f.Set("position", value.Int(0))
	f.Set("closed", value.Bool(false))
	return value.Result("Ok", f), nil
}

// fsWalk recursively lists every file under root. The "_with_options" and
// "_parallel" variants (spec.md's names for the original's concurrent walker)
// share this implementation: spec.md §1 excludes true parallel scheduling
// from scope, so walk_parallel degrades to the same sequential walk.
func fsWalk(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
	root, err := wantString("walk", args, 0)
	if err != nil {
		return nil, err
	}
	var out []value.Value
	werr := filepath.Walk(root, func(path string, info os.FileInfo, ierr error) error {
		if ierr != nil {
			return ierr
		}
		if !info.IsDir() {
			out = append(out, value.Str(path))
		}
		return nil
	})
	if werr != nil {
		return value.Result("Err", value.Str(werr.Error())), nil
	}
	return value.Result("Ok", value.NewArray(out)), nil
}
