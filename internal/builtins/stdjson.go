package builtins

import (
	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RegisterStdJSON registers "std.json": parse/stringify (round-trip through
// ALang's Value model) plus query/set, which operate directly on JSON text
// via gjson/sjson without a full unmarshal round trip (SPEC_FULL.md §2).
func RegisterStdJSON(reg *module.Registry) {
	reg.Register("std.json", func() *module.Package {
		return &module.Package{
			Name: "std.json",
			Exports: map[string]object.Value{
				"parse": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return object.NullVal, nil
					}
					text := object.ToStringValue(args[0])
					if !gjson.Valid(text) {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: "invalid JSON"}
					}
					return gjsonToValue(gjson.Parse(text)), nil
				}),
				"stringify": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return &object.String{Value: "null"}, nil
					}
					return &object.String{Value: valueToJSON(args[0])}, nil
				}),
				"query": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) < 2 {
						return object.NullVal, nil
					}
					text := object.ToStringValue(args[0])
					path := object.ToStringValue(args[1])
					res := gjson.Get(text, path)
					if !res.Exists() {
						return object.NullVal, nil
					}
					return gjsonToValue(res), nil
				}),
				"set": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) < 3 {
						return object.NullVal, nil
					}
					text := object.ToStringValue(args[0])
					path := object.ToStringValue(args[1])
					raw, err := sjson.Set(text, path, rawGoValue(args[2]))
					if err != nil {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: err.Error()}
					}
					return &object.String{Value: raw}, nil
				}),
			},
		}
	})
}

func gjsonToValue(res gjson.Result) object.Value {
	switch res.Type {
	case gjson.Null:
		return object.NullVal
	case gjson.False:
		return object.FalseVal
	case gjson.True:
		return object.TrueVal
	case gjson.Number:
		return &object.Number{Value: res.Num}
	case gjson.String:
		return &object.String{Value: res.Str}
	}
	if res.IsArray() {
		arr := &object.Array{}
		for _, el := range res.Array() {
			arr.Elements = append(arr.Elements, gjsonToValue(el))
		}
		return arr
	}
	if res.IsObject() {
		obj := object.NewObject()
		res.ForEach(func(key, val gjson.Result) bool {
			obj.Set(key.String(), gjsonToValue(val))
			return true
		})
		return obj
	}
	return object.NullVal
}

func rawGoValue(v object.Value) interface{} {
	switch t := v.(type) {
	case *object.Null:
		return nil
	case *object.Boolean:
		return t.Value
	case *object.Number:
		return t.Value
	case *object.String:
		return t.Value
	case *object.Array:
		out := make([]interface{}, len(t.Elements))
		for i, el := range t.Elements {
			out[i] = rawGoValue(el)
		}
		return out
	case *object.Object:
		out := make(map[string]interface{}, len(t.Keys))
		for _, k := range t.Keys {
			out[k] = rawGoValue(t.Map[k])
		}
		return out
	}
	return nil
}

func valueToJSON(v object.Value) string {
	raw, err := sjson.Set("", "x", rawGoValue(v))
	if err != nil {
		return "null"
	}
	return gjson.Get(raw, "x").Raw
}
