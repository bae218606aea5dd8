package eval

import (
	"strings"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/builtins"
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/env"
	"github.com/glint-lang/glint/internal/value"
)

// callValue implements builtins.CallFn, letting higher-order built-ins
// (map/filter/reduce, the gRPC/actor bridges) invoke user closures and
// builtins uniformly (spec.md §4.G).
func (ev *Evaluator) callValue(fn value.Value, args []value.Value) (value.Value, *diagnostics.Error) {
	switch f := fn.(type) {
	case *value.Closure:
		v, ctrl := ev.callClosure(f, args)
		if ctrl != nil {
			if ctrl.Kind == CtrlError {
				return nil, ctrl.Err
			}
			return nil, diagnostics.Runtimef("unexpected control flow escaping function call")
		}
		return v, nil
	case *value.BuiltinFunction:
		return ev.callBuiltin(f.Name, args)
	}
	return nil, diagnostics.Typef("%s is not callable", value.TypeName(fn))
}

func (ev *Evaluator) callBuiltin(name string, args []value.Value) (value.Value, *diagnostics.Error) {
	fn, ok := ev.Builtins.Lookup(name)
	if !ok {
		return nil, diagnostics.Runtimef("Unknown builtin function: %s", name)
	}
	return fn(args, ev.callValue)
}

// callClosure invokes a user-defined function/lambda (spec.md §4.F.2,
// "Call"): arity is checked against declared params, missing trailing
// arguments with defaults are filled in (evaluated in the closure's own
// captured env), a new scope is pushed off that captured env, params are
// bound, the body runs, and a Return effect is caught at the boundary.
func (ev *Evaluator) callClosure(clo *value.Closure, args []value.Value) (value.Value, *Ctrl) {
	ev.callDepth++
	defer func() { ev.callDepth-- }()
	if ev.callDepth > maxCallDepth {
		return nil, errCtrl(diagnostics.StackOverflow())
	}

	closureEnv, ok := clo.Env.(*env.Environment)
	if !ok {
		return nil, runtimeErr("closure %s has no captured environment", clo.Name)
	}
	body, ok := clo.Body.(ast.Expr)
	if !ok {
		return nil, runtimeErr("closure %s has no body", clo.Name)
	}

	if len(args) > len(clo.Params) {
		return nil, runtimeErr("%s expects at most %d argument(s), got %d", calleeLabel(clo.Name), len(clo.Params), len(args))
	}
	callScope := closureEnv.PushScope()
	if clo.Name != "" {
		callScope.Define(clo.Name, clo)
	}
	for i, p := range clo.Params {
		if i < len(args) {
			callScope.Define(p.Name, args[i])
			continue
		}
		if !p.HasDefault {
			return nil, runtimeErr("%s expects %d argument(s), got %d", calleeLabel(clo.Name), len(clo.Params), len(args))
		}
		defExpr, ok := p.Default.(ast.Expr)
		if !ok {
			return nil, runtimeErr("parameter %q has an invalid default expression", p.Name)
		}
		defVal, ctrl := ev.Eval(defExpr, closureEnv)
		if ctrl != nil {
			return nil, ctrl
		}
		callScope.Define(p.Name, defVal)
	}

	v, ctrl := ev.Eval(body, callScope)
	if ctrl != nil {
		if ctrl.Kind == CtrlReturn {
			return ctrl.Value, nil
		}
		return nil, ctrl
	}
	return v, nil
}

func calleeLabel(name string) string {
	if name == "" {
		return "<anonymous function>"
	}
	return name
}

func (ev *Evaluator) evalCall(n *ast.CallExpr, e *env.Environment) (value.Value, *Ctrl) {
	callee, ctrl := ev.Eval(n.Callee, e)
	if ctrl != nil {
		return nil, ctrl
	}
	args, ctrl := ev.evalArgs(n.Args, e)
	if ctrl != nil {
		return nil, ctrl
	}
	return ev.applyCallable(callee, args)
}

func (ev *Evaluator) evalArgs(exprs []ast.Expr, e *env.Environment) ([]value.Value, *Ctrl) {
	args := make([]value.Value, 0, len(exprs))
	for _, a := range exprs {
		v, ctrl := ev.Eval(a, e)
		if ctrl != nil {
			return nil, ctrl
		}
		args = append(args, v)
	}
	return args, nil
}

func (ev *Evaluator) applyCallable(callee value.Value, args []value.Value) (value.Value, *Ctrl) {
	switch f := callee.(type) {
	case *value.Closure:
		return ev.callClosure(f, args)
	case *value.BuiltinFunction:
		v, err := ev.callBuiltin(f.Name, args)
		if err != nil {
			return nil, errCtrl(err)
		}
		return v, nil
	case *value.TypeRef:
		return ev.constructPositional(f, args)
	}
	return nil, typeErr("%s is not callable", value.TypeName(callee))
}

// constructPositional builds a Struct/Class/Actor/EnumVariant instance from
// positional constructor args, in declared-field order (spec.md §4.F.2).
func (ev *Evaluator) constructPositional(ref *value.TypeRef, args []value.Value) (value.Value, *Ctrl) {
	td, ok := ev.Types[ref.Name]
	if !ok {
		return nil, runtimeErr("unknown type %s", ref.Name)
	}
	switch td.Kind {
	case "struct":
		fields := map[string]value.Value{}
		var order []string
		for i, fd := range td.Fields {
			order = append(order, fd.Name)
			if i < len(args) {
				fields[fd.Name] = args[i]
			} else if fd.Default != nil {
				dv, ctrl := ev.Eval(fd.Default, ev.Global)
				if ctrl != nil {
					return nil, ctrl
				}
				fields[fd.Name] = dv
			} else {
				return nil, runtimeErr("missing field %q in %s construction", fd.Name, td.Name)
			}
		}
		return &value.Struct{Name: td.Name, Fields: fields, Order: order}, nil
	case "class":
		inst := value.NewClass(td.Name, ev.classMethodTable(td))
		for i, fd := range td.Fields {
			if i < len(args) {
				inst.Set(fd.Name, args[i])
			} else if fd.Default != nil {
				dv, ctrl := ev.Eval(fd.Default, ev.Global)
				if ctrl != nil {
					return nil, ctrl
				}
				inst.Set(fd.Name, dv)
			} else {
				return nil, runtimeErr("missing field %q in %s construction", fd.Name, td.Name)
			}
		}
		return inst, nil
	case "actor":
		return ev.instantiateActor(td, args)
	case "enum":
		return nil, runtimeErr("enum %s must be constructed via a variant, e.g. %s::Variant(...)", td.Name, td.Name)
	}
	return nil, runtimeErr("cannot construct %s", td.Name)
}

func (ev *Evaluator) classMethodTable(td *TypeDecl) map[string]value.Value {
	methods := map[string]value.Value{}
	for name, fn := range td.Methods {
		methods[name] = ev.makeClosure(name, fn.Params, fn.Body, fn.IsAsync, ev.Global)
	}
	return methods
}

func (ev *Evaluator) evalMethodCall(n *ast.MethodCallExpr, e *env.Environment) (value.Value, *Ctrl) {
	recv, ctrl := ev.Eval(n.Receiver, e)
	if ctrl != nil {
		return nil, ctrl
	}
	args, ctrl := ev.evalArgs(n.Args, e)
	if ctrl != nil {
		return nil, ctrl
	}
	result, newSelf, ctrl := ev.dispatchMethod(recv, n.Method, args)
	if ctrl != nil {
		return nil, ctrl
	}
	// Struct `&mut self` write-back (spec.md §9): if the method body rebound
	// `self` to a new (copy-on-written) Struct and the receiver was a plain
	// identifier, propagate the new value back into that binding.
	if newSelf != nil {
		if ident, ok := n.Receiver.(*ast.Identifier); ok {
			e.Assign(ident.Name, newSelf)
		}
	}
	return result, nil
}

// dispatchMethod implements the receiver-kind dispatch table of spec.md
// §4.F.2's "Method call" section. The second return value is non-nil only
// when the receiver was a Struct whose method body rebound `self` to a new
// value (the copy-on-write write-back design of spec.md §9).
func (ev *Evaluator) dispatchMethod(recv value.Value, name string, args []value.Value) (value.Value, value.Value, *Ctrl) {
	switch r := recv.(type) {
	case *value.Struct:
		if clo, ok := ev.Global.Lookup(r.Name + "::" + name); ok {
			v, newSelf, ctrl := ev.invokeBoundMethod(clo, recv, args)
			return v, newSelf, ctrl
		}
	case *value.Class:
		if m, ok := r.Methods[name]; ok {
			v, _, ctrl := ev.invokeBoundMethod(m, recv, args)
			return v, nil, ctrl
		}
	case *value.ObjectMut:
		switch r.Tag {
		case "ActorInstance":
			if name == "send" && len(args) == 1 {
				v, ctrl := ev.sendToActor(r, args[0], false)
				return v, nil, ctrl
			}
			if name == "id" && len(args) == 0 {
				id, _ := r.Get("__id")
				return id, nil, nil
			}
			v, ctrl := ev.dispatchActorHandler(r, name, args, false)
			return v, nil, ctrl
		case "File":
			v, ctrl := ev.dispatchFileMethod(r, name, args)
			return v, nil, ctrl
		default:
			if td := ev.typeDeclForObjectMut(r); td != nil {
				if fn, ok := td.Methods[name]; ok {
					clo := ev.makeClosure(name, fn.Params, fn.Body, fn.IsAsync, ev.Global)
					v, _, ctrl := ev.invokeBoundMethod(clo, recv, args)
					return v, nil, ctrl
				}
			}
		}
	case *value.Object:
		if v, ok, err := ev.objectMethod(r, name, args); ok || err != nil {
			if err != nil {
				return nil, nil, errCtrl(err)
			}
			return v, nil, nil
		}
	case *value.EnumVariant:
		// spec.md §4.F.2: "None; only field-style variant_name introspection".
	}
	v, handled, err := builtins.CallMethod(recv, name, args, ev.callValue)
	if err != nil {
		return nil, nil, errCtrl(err)
	}
	if handled {
		return v, nil, nil
	}
	return nil, nil, runtimeErr("no method %q on %s", name, value.TypeName(recv))
}

// invokeBoundMethod calls a method closure with `self` bound to the
// receiver. newSelf is returned non-nil when self is a Struct and the body
// rebound it to a different Struct value (spec.md §9's write-back design).
func (ev *Evaluator) invokeBoundMethod(method value.Value, self value.Value, args []value.Value) (value.Value, value.Value, *Ctrl) {
	clo, ok := method.(*value.Closure)
	if !ok {
		return nil, nil, typeErr("%s is not a method", value.TypeName(method))
	}
	closureEnv, ok := clo.Env.(*env.Environment)
	if !ok {
		closureEnv = ev.Global
	}
	body, ok := clo.Body.(ast.Expr)
	if !ok {
		return nil, nil, runtimeErr("method %s has no body", clo.Name)
	}
	callScope := closureEnv.PushScope()
	callScope.Define("self", self)
	for i, p := range clo.Params {
		if i < len(args) {
			callScope.Define(p.Name, args[i])
		} else if p.HasDefault {
			defExpr, _ := p.Default.(ast.Expr)
			dv, ctrl := ev.Eval(defExpr, closureEnv)
			if ctrl != nil {
				return nil, nil, ctrl
			}
			callScope.Define(p.Name, dv)
		} else {
			return nil, nil, runtimeErr("%s expects %d argument(s), got %d", clo.Name, len(clo.Params), len(args))
		}
	}

	v, ctrl := ev.Eval(body, callScope)

	var newSelf value.Value
	if sPtr, isStruct := self.(*value.Struct); isStruct {
		if reboundSelf, ok := callScope.Snapshot()["self"]; ok {
			if ns, ok2 := reboundSelf.(*value.Struct); ok2 && ns != sPtr {
				newSelf = ns
			}
		}
	}

	if ctrl != nil {
		if ctrl.Kind == CtrlReturn {
			return ctrl.Value, newSelf, nil
		}
		return nil, newSelf, ctrl
	}
	return v, newSelf, nil
}

func (ev *Evaluator) typeDeclForObjectMut(o *value.ObjectMut) *TypeDecl {
	tagVal, ok := o.Get("__type")
	if !ok {
		return nil
	}
	name, ok := tagVal.(value.Str)
	if !ok {
		return nil
	}
	return ev.Types[string(name)]
}

func (ev *Evaluator) objectMethod(o *value.Object, name string, args []value.Value) (value.Value, bool, *diagnostics.Error) {
	switch name {
	case "keys":
		out := make([]value.Value, len(o.Order))
		for i, k := range o.Order {
			out[i] = value.Str(k)
		}
		return value.NewArray(out), true, nil
	case "values":
		out := make([]value.Value, len(o.Order))
		for i, k := range o.Order {
			out[i] = o.Fields[k]
		}
		return value.NewArray(out), true, nil
	case "len":
		return value.Int(int64(len(o.Order))), true, nil
	case "contains_key":
		if len(args) != 1 {
			return nil, true, diagnostics.Runtimef("contains_key expects 1 argument")
		}
		key, ok := args[0].(value.Str)
		if !ok {
			return nil, true, diagnostics.Typef("contains_key: argument must be String")
		}
		_, exists := o.Fields[string(key)]
		return value.Bool(exists), true, nil
	case "get":
		if len(args) != 1 {
			return nil, true, diagnostics.Runtimef("get expects 1 argument")
		}
		key, ok := args[0].(value.Str)
		if !ok {
			return nil, true, diagnostics.Typef("get: argument must be String")
		}
		v, exists := o.Fields[string(key)]
		if !exists {
			return value.Option("None"), true, nil
		}
		return value.Option("Some", v), true, nil
	case "to_string":
		return value.Str(o.Display()), true, nil
	}
	return nil, false, nil
}

// dispatchFileMethod implements the File receiver's closed method set
// (spec.md §4.F.2), grounded on
// original_source/src/runtime/interpreter_methods_instance.rs's
// eval_file_method_mut: a File handle (built by the `open` builtin) is an
// ObjectMut holding a "lines" array plus a "position" cursor and a "closed"
// flag, rather than a live OS descriptor.
func (ev *Evaluator) dispatchFileMethod(f *value.ObjectMut, name string, args []value.Value) (value.Value, *Ctrl) {
	closed, _ := f.Get("closed")
	isClosed, _ := closed.(value.Bool)

	switch name {
	case "read_line":
		if len(args) != 0 {
			return nil, runtimeErr("read_line() takes no arguments")
		}
		if bool(isClosed) {
			return nil, runtimeErr("cannot read from closed file")
		}
		lines, ok := fileLines(f)
		if !ok {
			return nil, runtimeErr("File object corrupted: missing lines")
		}
		pos := fileInt(f, "position")
		if pos >= int64(len(lines)) {
			return value.Str(""), nil
		}
		f.Set("position", value.Int(pos+1))
		return lines[pos], nil
	case "read":
		if len(args) != 0 {
			return nil, runtimeErr("read() takes no arguments")
		}
		if bool(isClosed) {
			return nil, runtimeErr("cannot read from closed file")
		}
		lines, ok := fileLines(f)
		if !ok {
			return nil, runtimeErr("File object corrupted: missing lines")
		}
		parts := make([]string, len(lines))
		for i, l := range lines {
			s, _ := l.(value.Str)
			parts[i] = string(s)
		}
		return value.Str(strings.Join(parts, "\n")), nil
	case "close":
		if len(args) != 0 {
			return nil, runtimeErr("close() takes no arguments")
		}
		f.Set("closed", value.Bool(true))
		return value.Nil{}, nil
	}
	return nil, runtimeErr("no method %q on File", name)
}

func fileLines(f *value.ObjectMut) ([]value.Value, bool) {
	v, ok := f.Get("lines")
	if !ok {
		return nil, false
	}
	arr, ok := v.(*value.Array)
	if !ok {
		return nil, false
	}
	return arr.Elems, true
}

func fileInt(f *value.ObjectMut, key string) int64 {
	v, ok := f.Get(key)
	if !ok {
		return 0
	}
	n, ok := v.(value.Int)
	if !ok {
		return 0
	}
	return int64(n)
}
