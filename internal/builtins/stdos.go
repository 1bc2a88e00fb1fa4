package builtins

import (
	"os"
	"runtime"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
	"github.com/google/uuid"
)

// RegisterStdOS registers "std.os": args, env, exit, and a `handle()`
// opaque-id generator backed by google/uuid for native Instance handles
// (SPEC_FULL.md §4, spec §6 "opaque handle").
func RegisterStdOS(reg *module.Registry, args []string) {
	reg.Register("std.os", func() *module.Package {
		argv := &object.Array{}
		for _, a := range args {
			argv.Elements = append(argv.Elements, &object.String{Value: a})
		}
		return &module.Package{
			Name: "std.os",
			Exports: map[string]object.Value{
				"args": argv,
				"env": builtin(func(callArgs []object.Value) (object.Value, *object.ExceptionValue) {
					if len(callArgs) == 0 {
						return object.NullVal, nil
					}
					name := object.ToStringValue(callArgs[0])
					if v, ok := os.LookupEnv(name); ok {
						return &object.String{Value: v}, nil
					}
					return object.NullVal, nil
				}),
				"environ": builtin(func(callArgs []object.Value) (object.Value, *object.ExceptionValue) {
					out := &object.Array{}
					for _, kv := range os.Environ() {
						out.Elements = append(out.Elements, &object.String{Value: kv})
					}
					return out, nil
				}),
				"exit": builtin(func(callArgs []object.Value) (object.Value, *object.ExceptionValue) {
					code := 0
					if len(callArgs) > 0 {
						code = int(object.ToNumber(callArgs[0]))
					}
					os.Exit(code)
					return object.NullVal, nil
				}),
				"handle": builtin(func(callArgs []object.Value) (object.Value, *object.ExceptionValue) {
					return &object.String{Value: uuid.NewString()}, nil
				}),
				"platform": &object.String{Value: runtime.GOOS},
			},
		}
	})
}
