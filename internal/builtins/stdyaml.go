package builtins

import (
	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
	"github.com/goccy/go-yaml"
)

// RegisterStdYAML registers "std.yaml": parse/stringify between YAML text
// and the ALang Value model (SPEC_FULL.md §2), for scripts that read or
// write the same config-file format the CLI itself loads (cmd/alang).
func RegisterStdYAML(reg *module.Registry) {
	reg.Register("std.yaml", func() *module.Package {
		return &module.Package{
			Name: "std.yaml",
			Exports: map[string]object.Value{
				"parse": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return object.NullVal, nil
					}
					var decoded interface{}
					if err := yaml.Unmarshal([]byte(object.ToStringValue(args[0])), &decoded); err != nil {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: err.Error()}
					}
					return goToValue(decoded), nil
				}),
				"stringify": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return &object.String{Value: "null\n"}, nil
					}
					raw, err := yaml.Marshal(rawGoValue(args[0]))
					if err != nil {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: err.Error()}
					}
					return &object.String{Value: string(raw)}, nil
				}),
			},
		}
	})
}

// goToValue converts a value produced by yaml.Unmarshal's interface{} mode
// into the ALang Value model, the inverse of rawGoValue.
func goToValue(v interface{}) object.Value {
	switch t := v.(type) {
	case nil:
		return object.NullVal
	case bool:
		return object.NativeBool(t)
	case string:
		return &object.String{Value: t}
	case int:
		return &object.Number{Value: float64(t)}
	case int64:
		return &object.Number{Value: float64(t)}
	case uint64:
		return &object.Number{Value: float64(t)}
	case float64:
		return &object.Number{Value: t}
	case []interface{}:
		arr := &object.Array{Elements: make([]object.Value, len(t))}
		for i, el := range t {
			arr.Elements[i] = goToValue(el)
		}
		return arr
	case map[string]interface{}:
		obj := object.NewObject()
		for k, val := range t {
			obj.Set(k, goToValue(val))
		}
		return obj
	case map[interface{}]interface{}:
		obj := object.NewObject()
		for k, val := range t {
			if ks, ok := k.(string); ok {
				obj.Set(ks, goToValue(val))
			}
		}
		return obj
	}
	return object.NullVal
}
