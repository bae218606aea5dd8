package builtins

import (
	"encoding/json"
	"fmt"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerJSON wires json_parse/json_stringify over encoding/json, converting
// through toNative/fromNative (shared with registerYAML) — grounded on the
// teacher's builtins_json.go, which does the same Value<->interface{} bridge
// around its own serde-style codec.
func registerJSON(r *Registry) {
	r.register("json_stringify", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) == 0 {
			return nil, argErr("json_stringify", 1, 0)
		}
		data, err := json.Marshal(toNative(args[0]))
		if err != nil {
			return value.Result("Err", value.Str(err.Error())), nil
		}
		return value.Result("Ok", value.Str(string(data))), nil
	})

	r.register("json_parse", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s, err := wantString("json_parse", args, 0)
		if err != nil {
			return nil, err
		}
		var native interface{}
		if jerr := json.Unmarshal([]byte(s), &native); jerr != nil {
			return value.Result("Err", value.Str(jerr.Error())), nil
		}
		return value.Result("Ok", fromNative(native)), nil
	})
}

// toNative converts a Value into plain Go data (map/slice/string/float64/...)
// suitable for json.Marshal or yaml.Marshal.
func toNative(v value.Value) interface{} {
	switch t := v.(type) {
	case value.Nil:
		return nil
	case value.Bool:
		return bool(t)
	case value.Int:
		return int64(t)
	case value.Float:
		return float64(t)
	case value.Str:
		return string(t)
	case value.Atom:
		return string(t)
	case value.Char:
		return string(t)
	case value.Byte:
		return int(t)
	case *value.Array:
		out := make([]interface{}, len(t.Elems))
		for i, e := range t.Elems {
			out[i] = toNative(e)
		}
		return out
	case *value.Tuple:
		out := make([]interface{}, len(t.Elems))
		for i, e := range t.Elems {
			out[i] = toNative(e)
		}
		return out
	case *value.Object:
		out := make(map[string]interface{}, len(t.Order))
		for _, k := range t.Order {
			out[k] = toNative(t.Fields[k])
		}
		return out
	case *value.Struct:
		out := make(map[string]interface{}, len(t.Order))
		for _, k := range t.Order {
			out[k] = toNative(t.Fields[k])
		}
		return out
	}
	return v.Display()
}

// fromNative converts decoded JSON/YAML data back into a Value tree.
func fromNative(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Bool(t)
	case string:
		return value.Str(t)
	case int:
		return value.Int(int64(t))
	case int64:
		return value.Int(t)
	case float64:
		return value.Float(t)
	case []interface{}:
		out := make([]value.Value, len(t))
		for i, e := range t {
			out[i] = fromNative(e)
		}
		return value.NewArray(out)
	case map[string]interface{}:
		obj := value.NewObject()
		for k, val := range t {
			obj = obj.Set(k, fromNative(val))
		}
		return obj
	case map[interface{}]interface{}:
		obj := value.NewObject()
		for k, val := range t {
			obj = obj.Set(toKeyString(k), fromNative(val))
		}
		return obj
	}
	return value.Nil{}
}

func toKeyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", k)
}
