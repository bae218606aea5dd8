package eval

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/env"
	"github.com/glint-lang/glint/internal/pattern"
	"github.com/glint-lang/glint/internal/value"
)

// evalTry implements spec.md §4.F.2's Try/Catch: a raised language-level
// Error (CtrlError) is matched against each catch clause's pattern in turn
// against a Value carrying the error message; Break/Continue/Return are not
// catchable here and propagate untouched. A Finally block always runs and
// its own effect, if any, suppresses the prior outcome.
func (ev *Evaluator) evalTry(n *ast.TryExpr, e *env.Environment) (value.Value, *Ctrl) {
	result, ctrl := ev.Eval(n.Try, e)

	if ctrl != nil && ctrl.Kind == CtrlError {
		errVal := value.Str(ctrl.Err.Message)
		for _, c := range n.Catches {
			scope := e.PushScope()
			res := pattern.Match(c.Pattern, errVal, ev.patternEval(scope))
			if !res.Matches {
				continue
			}
			for k, v := range res.Bindings {
				scope.Define(k, v)
			}
			result, ctrl = ev.Eval(c.Body, scope)
			break
		}
	}

	if n.Finally != nil {
		_, fctrl := ev.Eval(n.Finally, e)
		if fctrl != nil {
			return nil, fctrl
		}
	}
	if ctrl != nil {
		return nil, ctrl
	}
	return result, nil
}

// evalCast implements spec.md §4.F.2's `as` type cast: a fixed conversion
// table; anything outside it is an error.
func (ev *Evaluator) evalCast(n *ast.TypeCastExpr, e *env.Environment) (value.Value, *Ctrl) {
	v, ctrl := ev.Eval(n.Value, e)
	if ctrl != nil {
		return nil, ctrl
	}
	switch n.Target {
	case "Integer", "Int":
		switch t := v.(type) {
		case value.Int:
			return t, nil
		case value.Float:
			return value.Int(int64(t)), nil
		case value.Str:
			i, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
			if err != nil {
				return nil, runtimeErr("cannot cast %q to Integer", string(t))
			}
			return value.Int(i), nil
		case *value.EnumVariant:
			return value.Int(enumDiscriminant(t)), nil
		}
	case "Float":
		switch t := v.(type) {
		case value.Float:
			return t, nil
		case value.Int:
			return value.Float(float64(t)), nil
		case value.Str:
			f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
			if err != nil {
				return nil, runtimeErr("cannot cast %q to Float", string(t))
			}
			return value.Float(f), nil
		}
	case "String":
		return value.Str(rawMessage(v)), nil
	}
	return nil, typeErr("cannot cast %s as %s", value.TypeName(v), n.Target)
}

// enumDiscriminant returns the ordinal position of variant among its enum's
// declared variants as a stand-in for Rust's `as` discriminant cast; order
// is taken from the enum's declared variant insertion order.
func enumDiscriminant(v *value.EnumVariant) int64 {
	switch v.VariantName {
	case "Ok", "Some":
		return 0
	case "Err", "None":
		return 1
	}
	return 0
}

// evalPipeline implements spec.md §4.F.2's `a |> f`: `f` as a bare
// identifier/field access becomes `f(a)`; `f` as a call `g(args…)` becomes
// `g(a, args…)`.
func (ev *Evaluator) evalPipeline(n *ast.PipelineExpr, e *env.Environment) (value.Value, *Ctrl) {
	lhs, ctrl := ev.Eval(n.Value, e)
	if ctrl != nil {
		return nil, ctrl
	}
	switch f := n.Func.(type) {
	case *ast.CallExpr:
		callee, ctrl := ev.Eval(f.Callee, e)
		if ctrl != nil {
			return nil, ctrl
		}
		args, ctrl := ev.evalArgs(f.Args, e)
		if ctrl != nil {
			return nil, ctrl
		}
		args = append([]value.Value{lhs}, args...)
		return ev.applyCallable(callee, args)
	case *ast.Identifier, *ast.FieldAccessExpr:
		callee, ctrl := ev.Eval(f, e)
		if ctrl != nil {
			return nil, ctrl
		}
		return ev.applyCallable(callee, []value.Value{lhs})
	}
	return nil, typeErr("invalid pipeline right-hand side")
}

// evalSpawn implements spec.md §4.F.3's `spawn Expr`: construction of an
// actor type already yields an interior-mutable ObjectMut handle; spawning
// any other expression just forwards its value (spec.md line 291).
func (ev *Evaluator) evalSpawn(n *ast.SpawnExpr, e *env.Environment) (value.Value, *Ctrl) {
	return ev.Eval(n.Construct, e)
}

// instantiateActor builds the ObjectMut handle for an actor instance
// (spec.md §4.F.3): tagged "ActorInstance", carrying a `__type` field that
// names the declaring actor so method/handler dispatch can find it again,
// and a `__id` field giving the instance a process-wide unique identity
// (spec.md's actor model has no notion of two spawns of the same actor type
// being the same addressable process, so each gets its own uuid.NewString()
// the way the teacher stamps a UUID onto each connection/session handle).
func (ev *Evaluator) instantiateActor(td *TypeDecl, args []value.Value) (value.Value, *Ctrl) {
	inst := value.NewObjectMut("ActorInstance")
	inst.Set("__type", value.Str(td.Name))
	inst.Set("__id", value.Str(uuid.NewString()))
	for i, fd := range td.Fields {
		if i < len(args) {
			inst.Set(fd.Name, args[i])
			continue
		}
		if fd.Default != nil {
			dv, ctrl := ev.Eval(fd.Default, ev.Global)
			if ctrl != nil {
				return nil, ctrl
			}
			inst.Set(fd.Name, dv)
			continue
		}
		return nil, runtimeErr("missing field %q in %s construction", fd.Name, td.Name)
	}
	return inst, nil
}

// buildMessage constructs the wire shape spec.md §4.F.3 names: `Object {
// __type:"Message", type:"Msg", data:[…] }`.
func buildMessage(msgType string, data []value.Value) *value.Object {
	obj := value.NewObject()
	obj = obj.Set("__type", value.Str("Message"))
	obj = obj.Set("type", value.Str(msgType))
	obj = obj.Set("data", value.NewArray(data))
	return obj
}

func extractMessage(msg value.Value) (string, []value.Value, bool) {
	obj, ok := msg.(*value.Object)
	if !ok {
		return "", nil, false
	}
	tag, ok := obj.Fields["__type"].(value.Str)
	if !ok || string(tag) != "Message" {
		return "", nil, false
	}
	typeName, ok := obj.Fields["type"].(value.Str)
	if !ok {
		return "", nil, false
	}
	data, _ := obj.Fields["data"].(*value.Array)
	if data == nil {
		return string(typeName), nil, true
	}
	return string(typeName), data.Elems, true
}

// evalSend implements spec.md §4.F.3's `actor_ref ! Msg(args…)` / `?`:
// extracts the message type and data, finds the matching handler, and
// dispatches it synchronously.
func (ev *Evaluator) evalSend(n *ast.SendExpr, e *env.Environment) (value.Value, *Ctrl) {
	target, ctrl := ev.Eval(n.Target, e)
	if ctrl != nil {
		return nil, ctrl
	}
	actor, ok := target.(*value.ObjectMut)
	if !ok || actor.Tag != "ActorInstance" {
		return nil, typeErr("cannot send a message to %s", value.TypeName(target))
	}
	msgType, data, ctrl := ev.extractSendMessage(n.Message, e)
	if ctrl != nil {
		return nil, ctrl
	}
	return ev.dispatchActorHandler(actor, msgType, data, n.IsAsk)
}

// extractSendMessage reads the message-constructor shape `Msg(args…)` or a
// bare `Msg` directly off the AST, without evaluating it as an ordinary call
// (the message name is not a bound function).
func (ev *Evaluator) extractSendMessage(msgExpr ast.Expr, e *env.Environment) (string, []value.Value, *Ctrl) {
	switch m := msgExpr.(type) {
	case *ast.CallExpr:
		ident, ok := m.Callee.(*ast.Identifier)
		if !ok {
			return "", nil, typeErr("message constructor must be a plain name")
		}
		args, ctrl := ev.evalArgs(m.Args, e)
		if ctrl != nil {
			return "", nil, ctrl
		}
		return ident.Name, args, nil
	case *ast.Identifier:
		return m.Name, nil, nil
	}
	return "", nil, typeErr("invalid message expression")
}

// sendToActor implements the ObjectMut-level `send` method (spec.md's
// method-dispatch table entry for an actor instance), taking an already
// constructed message value in the `{__type:"Message", …}` shape.
func (ev *Evaluator) sendToActor(actor *value.ObjectMut, msg value.Value, isAsk bool) (value.Value, *Ctrl) {
	msgType, data, ok := extractMessage(msg)
	if !ok {
		return nil, typeErr("send expects a Message-shaped value")
	}
	return ev.dispatchActorHandler(actor, msgType, data, isAsk)
}

// dispatchActorHandler implements spec.md §4.F.3's synchronous handler
// invocation: pushes a scope binding `state` to the instance, binds message
// parameters positionally to data, evaluates the handler body, and returns
// its value (Return is caught at the boundary like an ordinary call).
func (ev *Evaluator) dispatchActorHandler(actor *value.ObjectMut, msgType string, data []value.Value, isAsk bool) (value.Value, *Ctrl) {
	td := ev.typeDeclForObjectMut(actor)
	if td == nil {
		return nil, runtimeErr("actor instance has no registered type")
	}
	handler, ok := td.ActorHandlers[msgType]
	if !ok {
		return nil, runtimeErr("actor %s has no handler for message %s", td.Name, msgType)
	}
	scope := ev.Global.PushScope()
	scope.Define("state", actor)
	for i, p := range handler.Params {
		if i < len(data) {
			scope.Define(p.Name, data[i])
			continue
		}
		if p.Default != nil {
			dv, ctrl := ev.Eval(p.Default, scope)
			if ctrl != nil {
				return nil, ctrl
			}
			scope.Define(p.Name, dv)
			continue
		}
		return nil, runtimeErr("handler %s expects %d argument(s), got %d", msgType, len(handler.Params), len(data))
	}
	v, ctrl := ev.Eval(handler.Body, scope)
	if ctrl != nil {
		if ctrl.Kind == CtrlReturn {
			return ctrl.Value, nil
		}
		return nil, ctrl
	}
	return v, nil
}
