// Package eval is the evaluator (component F, spec.md §4.F): a big type
// switch over ast.Expr variants that consults the Environment (C), the op
// kernel (D), the pattern matcher (E), the value model (A), and the
// built-in registry (G), producing either a Value or a control-flow effect.
//
// Grounded on the teacher's internal/evaluator/evaluator.go dispatch loop,
// generalized from its double-dispatch Visitor to a direct type switch —
// matching spec.md §4.F's own "big switch over expression variants"
// language and the style mcgru-funxy/sentra-language-sentra use for their
// own tree-walkers.
package eval

import (
	"fmt"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/builtins"
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/env"
	"github.com/glint-lang/glint/internal/gc"
	"github.com/glint-lang/glint/internal/ops"
	"github.com/glint-lang/glint/internal/pattern"
	"github.com/glint-lang/glint/internal/value"
)

// CtrlKind tags the non-value outcomes of evaluation (spec.md §4.F.1).
type CtrlKind int

const (
	CtrlNone CtrlKind = iota
	CtrlBreak
	CtrlContinue
	CtrlReturn
	CtrlError
)

// Ctrl is the control-flow effect channel, distinct from language-level
// errors carried as CtrlError (spec.md §4.F.1). A nil *Ctrl means normal
// completion.
type Ctrl struct {
	Kind  CtrlKind
	Label string
	Value value.Value
	Err   *diagnostics.Error
}

func errCtrl(err *diagnostics.Error) *Ctrl { return &Ctrl{Kind: CtrlError, Err: err} }

func runtimeErr(format string, args ...interface{}) *Ctrl {
	return errCtrl(diagnostics.Runtimef(format, args...))
}

func typeErr(format string, args ...interface{}) *Ctrl {
	return errCtrl(diagnostics.Typef(format, args...))
}

// TypeDecl is the runtime descriptor behind a struct/class/enum/actor
// declaration (spec.md §4.F.2, §4.F.3): field defaults, methods, and
// (for actors) message handlers, keyed by declaration name.
type TypeDecl struct {
	Kind          string // "struct", "class", "enum", "actor"
	Name          string
	Fields        []ast.FieldDecl
	Methods       map[string]*ast.FunctionDecl
	EnumVariants  map[string]ast.EnumVariantDecl
	ActorHandlers map[string]ast.MessageHandler
}

// Evaluator owns the program-lifetime state: the global frame, the GC, the
// built-in registry, and the type-declaration table (spec.md §4.F, §4.G).
type Evaluator struct {
	Global   *env.Environment
	GC       *gc.GC
	Builtins *builtins.Registry
	Types    map[string]*TypeDecl

	callDepth int
}

const maxCallDepth = 2000

// New constructs an Evaluator with a fresh global frame.
func New() *Evaluator {
	return &Evaluator{
		Global:   env.New(),
		GC:       gc.New(),
		Builtins: builtins.Global(),
		Types:    map[string]*TypeDecl{},
	}
}

// RunProgram evaluates every top-level statement in order, returning the
// last statement's value or the first uncaught error (spec.md §6, the
// embedding contract for `run`).
func (ev *Evaluator) RunProgram(p *ast.Program) (value.Value, *diagnostics.Error) {
	ev.hoistDecls(p.Statements, ev.Global)
	var result value.Value = value.Nil{}
	for _, stmt := range p.Statements {
		v, ctrl := ev.Eval(stmt, ev.Global)
		if ctrl != nil {
			if ctrl.Kind == CtrlError {
				return nil, ctrl.Err
			}
			// Break/Continue/Return escaping the top level are treated as
			// simply yielding their carried value, matching a REPL's
			// tolerance of a bare top-level `return`/`break`.
			return ctrl.Value, nil
		}
		result = v
	}
	return result, nil
}

// hoistDecls pre-registers every struct/class/enum/actor/function/impl
// declaration in a statement list before evaluating any of them, so mutually
// recursive functions and forward type references resolve (spec.md §4.F.2,
// "Named functions additionally self-bind ... to allow recursion").
func (ev *Evaluator) hoistDecls(stmts []ast.Expr, e *env.Environment) {
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.StructDecl:
			ev.Types[d.Name] = &TypeDecl{Kind: "struct", Name: d.Name, Fields: d.Fields, Methods: map[string]*ast.FunctionDecl{}}
			e.Define(d.Name, &value.TypeRef{DeclKind: "struct", Name: d.Name})
		case *ast.ClassDecl:
			methods := map[string]*ast.FunctionDecl{}
			for _, m := range d.Methods {
				methods[m.Name] = m
			}
			ev.Types[d.Name] = &TypeDecl{Kind: "class", Name: d.Name, Fields: d.Fields, Methods: methods}
			e.Define(d.Name, &value.TypeRef{DeclKind: "class", Name: d.Name})
		case *ast.EnumDecl:
			variants := map[string]ast.EnumVariantDecl{}
			for _, v := range d.Variants {
				variants[v.Name] = v
			}
			ev.Types[d.Name] = &TypeDecl{Kind: "enum", Name: d.Name, EnumVariants: variants}
			e.Define(d.Name, &value.TypeRef{DeclKind: "enum", Name: d.Name})
		case *ast.ActorDecl:
			handlers := map[string]ast.MessageHandler{}
			for _, h := range d.Handlers {
				handlers[h.MessageName] = h
			}
			ev.Types[d.Name] = &TypeDecl{Kind: "actor", Name: d.Name, Fields: d.Fields, ActorHandlers: handlers}
			e.Define(d.Name, &value.TypeRef{DeclKind: "actor", Name: d.Name})
		case *ast.ImplDecl:
			td, ok := ev.Types[d.TargetType]
			if !ok {
				td = &TypeDecl{Kind: "struct", Name: d.TargetType, Methods: map[string]*ast.FunctionDecl{}}
				ev.Types[d.TargetType] = td
			}
			if td.Methods == nil {
				td.Methods = map[string]*ast.FunctionDecl{}
			}
			for _, m := range d.Methods {
				td.Methods[m.Name] = m
				e.Define(d.TargetType+"::"+m.Name, ev.makeClosure(m.Name, m.Params, m.Body, m.IsAsync, e))
			}
		case *ast.FunctionDecl:
			clo := ev.makeClosure(d.Name, d.Params, d.Body, d.IsAsync, e)
			e.Define(d.Name, clo)
		}
	}
}

func (ev *Evaluator) makeClosure(name string, params []ast.Param, body ast.Expr, isAsync bool, e *env.Environment) *value.Closure {
	cp := make([]value.ClosureParam, len(params))
	for i, p := range params {
		cp[i] = value.ClosureParam{Name: p.Name, HasDefault: p.Default != nil, Default: p.Default}
	}
	return &value.Closure{Name: name, Params: cp, Body: body, Env: e, IsAsync: isAsync}
}

// Eval is the central dispatch (spec.md §4.F).
func (ev *Evaluator) Eval(node ast.Expr, e *env.Environment) (value.Value, *Ctrl) {
	switch n := node.(type) {

	// ---- literals ----
	case *ast.IntLiteral:
		return value.Int(n.Value), nil
	case *ast.FloatLiteral:
		return value.Float(n.Value), nil
	case *ast.StringLiteral:
		return value.Str(n.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(n.Value), nil
	case *ast.CharLiteral:
		return value.Char(n.Value), nil
	case *ast.ByteLiteral:
		return value.Byte(n.Value), nil
	case *ast.AtomLiteral:
		return value.Atom(n.Name), nil
	case *ast.UnitLiteral:
		return value.Nil{}, nil
	case *ast.NullLiteral:
		return value.Nil{}, nil

	case *ast.Identifier:
		return ev.evalIdentifier(n, e)
	case *ast.QualifiedName:
		return ev.evalQualifiedName(n, e)

	case *ast.BinaryExpr:
		return ev.evalBinary(n, e)
	case *ast.UnaryExpr:
		return ev.evalUnary(n, e)

	case *ast.BlockExpr:
		return ev.evalBlock(n, e)
	case *ast.IfExpr:
		return ev.evalIf(n, e)
	case *ast.MatchExpr:
		return ev.evalMatch(n, e)
	case *ast.WhileExpr:
		return ev.evalWhile(n, e)
	case *ast.ForExpr:
		return ev.evalFor(n, e)
	case *ast.LoopExpr:
		return ev.evalLoop(n, e)
	case *ast.BreakExpr:
		var v value.Value = value.Nil{}
		if n.Value != nil {
			var ctrl *Ctrl
			v, ctrl = ev.Eval(n.Value, e)
			if ctrl != nil {
				return nil, ctrl
			}
		}
		return nil, &Ctrl{Kind: CtrlBreak, Label: n.Label, Value: v}
	case *ast.ContinueExpr:
		return nil, &Ctrl{Kind: CtrlContinue, Label: n.Label}
	case *ast.ReturnExpr:
		var v value.Value = value.Nil{}
		if n.Value != nil {
			var ctrl *Ctrl
			v, ctrl = ev.Eval(n.Value, e)
			if ctrl != nil {
				return nil, ctrl
			}
		}
		return nil, &Ctrl{Kind: CtrlReturn, Value: v}

	case *ast.LetExpr:
		return ev.evalLet(n, e)

	case *ast.AssignExpr:
		return ev.evalAssign(n, e)
	case *ast.CompoundAssignExpr:
		return ev.evalCompoundAssign(n, e)
	case *ast.IncDecExpr:
		return ev.evalIncDec(n, e)

	case *ast.LambdaExpr:
		return ev.makeClosure("", n.Params, n.Body, n.IsAsync, e), nil
	case *ast.FunctionDecl:
		clo := ev.makeClosure(n.Name, n.Params, n.Body, n.IsAsync, e)
		e.Define(n.Name, clo)
		return clo, nil

	case *ast.CallExpr:
		return ev.evalCall(n, e)
	case *ast.MethodCallExpr:
		return ev.evalMethodCall(n, e)
	case *ast.FieldAccessExpr:
		return ev.evalFieldAccess(n, e)
	case *ast.IndexExpr:
		return ev.evalIndex(n, e)
	case *ast.SliceExpr:
		return ev.evalSlice(n, e)

	case *ast.RangeExpr:
		return ev.evalRange(n, e)
	case *ast.ListExpr:
		return ev.evalList(n, e)
	case *ast.TupleExpr:
		return ev.evalTuple(n, e)
	case *ast.SetExpr:
		return ev.evalSet(n, e)
	case *ast.ObjectExpr:
		return ev.evalObject(n, e)
	case *ast.StructLiteralExpr:
		return ev.evalStructLiteral(n, e)
	case *ast.ArrayInitExpr:
		return ev.evalArrayInit(n, e)
	case *ast.DataFrameExpr:
		return ev.evalDataFrame(n, e)

	case *ast.InterpolatedStringExpr:
		return ev.evalInterpolated(n, e)
	case *ast.ComprehensionExpr:
		return ev.evalComprehension(n, e)

	case *ast.TryExpr:
		return ev.evalTry(n, e)
	case *ast.ThrowExpr:
		v, ctrl := ev.Eval(n.Value, e)
		if ctrl != nil {
			return nil, ctrl
		}
		return nil, errCtrl(diagnostics.Runtimef("%s", rawMessage(v)))

	case *ast.TypeCastExpr:
		return ev.evalCast(n, e)
	case *ast.PipelineExpr:
		return ev.evalPipeline(n, e)

	case *ast.SpawnExpr:
		return ev.evalSpawn(n, e)
	case *ast.SendExpr:
		return ev.evalSend(n, e)
	case *ast.AsyncBlockExpr:
		return ev.Eval(n.Body, e)
	case *ast.AwaitExpr:
		return ev.Eval(n.Value, e)

	case *ast.StructDecl, *ast.ClassDecl, *ast.EnumDecl, *ast.ActorDecl, *ast.ImplDecl:
		// Declarations are hoisted up-front by hoistDecls; re-encountering
		// one mid-stream (e.g. inside a block) is a no-op here.
		return value.Nil{}, nil
	case *ast.ModuleDecl:
		ev.hoistDecls(n.Body, e)
		return value.Nil{}, nil
	case *ast.ImportDecl:
		return value.Nil{}, nil
	}
	return nil, runtimeErr("unhandled expression kind %T", node)
}

func rawMessage(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return string(s)
	}
	return v.Display()
}

func (ev *Evaluator) evalIdentifier(n *ast.Identifier, e *env.Environment) (value.Value, *Ctrl) {
	if v, ok := e.Lookup(n.Name); ok {
		return v, nil
	}
	if _, ok := ev.Builtins.Lookup(n.Name); ok {
		return &value.BuiltinFunction{Name: n.Name}, nil
	}
	return nil, runtimeErr("Undefined variable %s", n.Name)
}

func (ev *Evaluator) evalQualifiedName(n *ast.QualifiedName, e *env.Environment) (value.Value, *Ctrl) {
	full := ""
	for i, p := range n.Parts {
		if i > 0 {
			full += "::"
		}
		full += p
	}
	if v, ok := e.Lookup(full); ok {
		return v, nil
	}
	if len(n.Parts) > 0 {
		last := n.Parts[len(n.Parts)-1]
		if v, ok := e.Lookup(last); ok {
			return v, nil
		}
	}
	return nil, runtimeErr("Undefined qualified name %s", full)
}

func (ev *Evaluator) evalBinary(n *ast.BinaryExpr, e *env.Environment) (value.Value, *Ctrl) {
	switch n.Op.Canonical() {
	case ast.OpAnd:
		l, ctrl := ev.Eval(n.Left, e)
		if ctrl != nil {
			return nil, ctrl
		}
		if !value.Truthy(l) {
			return l, nil
		}
		return ev.Eval(n.Right, e)
	case ast.OpOr:
		l, ctrl := ev.Eval(n.Left, e)
		if ctrl != nil {
			return nil, ctrl
		}
		if value.Truthy(l) {
			return l, nil
		}
		return ev.Eval(n.Right, e)
	case ast.OpNullCoalesce:
		l, ctrl := ev.Eval(n.Left, e)
		if ctrl != nil {
			return nil, ctrl
		}
		if _, isNil := l.(value.Nil); isNil {
			return ev.Eval(n.Right, e)
		}
		return l, nil
	case ast.OpSend:
		return ev.evalSend(&ast.SendExpr{Target: n.Left, Message: n.Right, IsAsk: false}, e)
	case ast.OpAsk:
		return ev.evalSend(&ast.SendExpr{Target: n.Left, Message: n.Right, IsAsk: true}, e)
	}
	l, ctrl := ev.Eval(n.Left, e)
	if ctrl != nil {
		return nil, ctrl
	}
	r, ctrl := ev.Eval(n.Right, e)
	if ctrl != nil {
		return nil, ctrl
	}
	v, err := ops.Binary(n.Op, l, r)
	if err != nil {
		return nil, errCtrl(err)
	}
	return v, nil
}

func (ev *Evaluator) evalUnary(n *ast.UnaryExpr, e *env.Environment) (value.Value, *Ctrl) {
	v, ctrl := ev.Eval(n.Operand, e)
	if ctrl != nil {
		return nil, ctrl
	}
	out, err := ops.Unary(n.Op, v)
	if err != nil {
		return nil, errCtrl(err)
	}
	return out, nil
}

func (ev *Evaluator) evalBlock(n *ast.BlockExpr, e *env.Environment) (value.Value, *Ctrl) {
	inner := e.PushScope()
	ev.hoistDecls(n.Exprs, inner)
	var result value.Value = value.Nil{}
	for _, stmt := range n.Exprs {
		v, ctrl := ev.Eval(stmt, inner)
		if ctrl != nil {
			return nil, ctrl
		}
		result = v
	}
	return result, nil
}

func (ev *Evaluator) evalIf(n *ast.IfExpr, e *env.Environment) (value.Value, *Ctrl) {
	cond, ctrl := ev.Eval(n.Cond, e)
	if ctrl != nil {
		return nil, ctrl
	}
	if value.Truthy(cond) {
		return ev.Eval(n.Then, e)
	}
	if n.Else != nil {
		return ev.Eval(n.Else, e)
	}
	return value.Nil{}, nil
}

func (ev *Evaluator) evalMatch(n *ast.MatchExpr, e *env.Environment) (value.Value, *Ctrl) {
	scrutinee, ctrl := ev.Eval(n.Scrutinee, e)
	if ctrl != nil {
		return nil, ctrl
	}
	for _, arm := range n.Arms {
		armScope := e.PushScope()
		res := pattern.Match(arm.Pattern, scrutinee, ev.patternEval(armScope))
		if !res.Matches {
			continue
		}
		for k, v := range res.Bindings {
			armScope.Define(k, v)
		}
		for _, name := range res.MutNames {
			armScope.MarkMut(name)
		}
		if arm.Guard != nil {
			g, gctrl := ev.Eval(arm.Guard, armScope)
			if gctrl != nil {
				return nil, gctrl
			}
			if !value.Truthy(g) {
				continue
			}
		}
		return ev.Eval(arm.Body, armScope)
	}
	return nil, runtimeErr("No match arm matched")
}

func (ev *Evaluator) patternEval(e *env.Environment) pattern.EvalExpr {
	return func(expr ast.Expr) (value.Value, error) {
		v, ctrl := ev.Eval(expr, e)
		if ctrl != nil {
			if ctrl.Kind == CtrlError {
				return nil, ctrl.Err
			}
			return nil, fmt.Errorf("non-value control flow in pattern expression")
		}
		return v, nil
	}
}

func (ev *Evaluator) evalWhile(n *ast.WhileExpr, e *env.Environment) (value.Value, *Ctrl) {
	for {
		cond, ctrl := ev.Eval(n.Cond, e)
		if ctrl != nil {
			return nil, ctrl
		}
		if !value.Truthy(cond) {
			return value.Nil{}, nil
		}
		bodyScope := e.PushScope()
		_, ctrl = ev.Eval(n.Body, bodyScope)
		if ctrl != nil {
			if stop, v, out := handleLoopCtrl(ctrl, n.Label); stop {
				return v, out
			}
		}
	}
}

func (ev *Evaluator) evalLoop(n *ast.LoopExpr, e *env.Environment) (value.Value, *Ctrl) {
	for {
		bodyScope := e.PushScope()
		_, ctrl := ev.Eval(n.Body, bodyScope)
		if ctrl != nil {
			if stop, v, out := handleLoopCtrl(ctrl, n.Label); stop {
				return v, out
			}
		}
	}
}

// handleLoopCtrl interprets a control-flow effect raised from a loop body.
// stop=true means the loop should return (v, out) to its caller; stop=false
// means the loop continues iterating. Continue effects are swallowed here
// (matching or unlabeled); Break effects with a non-matching label and
// Return/Error always propagate.
func handleLoopCtrl(ctrl *Ctrl, label string) (stop bool, v value.Value, out *Ctrl) {
	switch ctrl.Kind {
	case CtrlBreak:
		if ctrl.Label == "" || ctrl.Label == label {
			return true, ctrl.Value, nil
		}
		return true, nil, ctrl
	case CtrlContinue:
		if ctrl.Label == "" || ctrl.Label == label {
			return false, nil, nil
		}
		return true, nil, ctrl
	default: // Return, Error
		return true, nil, ctrl
	}
}

func (ev *Evaluator) evalFor(n *ast.ForExpr, e *env.Environment) (value.Value, *Ctrl) {
	iterable, ctrl := ev.Eval(n.Iterable, e)
	if ctrl != nil {
		return nil, ctrl
	}
	items, err := iterElements(iterable)
	if err != nil {
		return nil, errCtrl(err)
	}
	for _, item := range items {
		bodyScope := e.PushScope()
		if n.Pattern != nil {
			res := pattern.Match(n.Pattern, item, ev.patternEval(bodyScope))
			if !res.Matches {
				return nil, runtimeErr("for-loop pattern did not match element %s", item.Display())
			}
			for k, v := range res.Bindings {
				bodyScope.Define(k, v)
			}
		} else {
			bodyScope.Define(n.VarName, item)
		}
		_, ctrl := ev.Eval(n.Body, bodyScope)
		if ctrl != nil {
			if stop, _, out := handleLoopCtrl(ctrl, n.Label); stop {
				if out != nil {
					return nil, out
				}
				return value.Nil{}, nil
			}
		}
	}
	return value.Nil{}, nil
}

// iterElements realizes the three iterable shapes spec.md §4.F.2 names for
// `for`: Array, integer Range, String (per character).
func iterElements(v value.Value) ([]value.Value, *diagnostics.Error) {
	switch t := v.(type) {
	case *value.Array:
		return t.Elems, nil
	case *value.Range:
		start, end, ok := t.IntBounds()
		if !ok {
			return nil, diagnostics.Typef("for-loop range must have Integer bounds")
		}
		var out []value.Value
		if start <= end {
			if t.Inclusive {
				end++
			}
			for i := start; i < end; i++ {
				out = append(out, value.Int(i))
			}
		}
		return out, nil
	case value.Str:
		var out []value.Value
		for _, r := range string(t) {
			out = append(out, value.Str(string(r)))
		}
		return out, nil
	}
	return nil, diagnostics.Typef("cannot iterate over %s", value.TypeName(v))
}

func (ev *Evaluator) evalLet(n *ast.LetExpr, e *env.Environment) (value.Value, *Ctrl) {
	rhs, ctrl := ev.Eval(n.Value, e)
	if ctrl != nil {
		return nil, ctrl
	}
	res := pattern.Match(n.Pattern, rhs, ev.patternEval(e))
	if !res.Matches {
		if n.Else != nil {
			return ev.Eval(n.Else, e)
		}
		return nil, runtimeErr("let pattern did not match value %s", rhs.Display())
	}
	for k, v := range res.Bindings {
		e.Define(k, v)
	}
	for _, name := range res.MutNames {
		e.MarkMut(name)
	}
	if n.Body == nil {
		return rhs, nil
	}
	if _, isUnit := n.Body.(*ast.UnitLiteral); isUnit {
		return rhs, nil
	}
	return ev.Eval(n.Body, e)
}
