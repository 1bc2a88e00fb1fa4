package builtins

import (
	"fmt"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

// RegisterStdTest registers "std.test": assert/assertEqual, used by this
// repo's own example scripts (SPEC_FULL.md §4) and by any script-level test
// harness a host builds on top of the embedding API.
func RegisterStdTest(reg *module.Registry) {
	reg.Register("std.test", func() *module.Package {
		return &module.Package{
			Name: "std.test",
			Exports: map[string]object.Value{
				"assert": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 || !object.Truthy(args[0]) {
						msg := "assertion failed"
						if len(args) > 1 {
							msg = object.ToStringValue(args[1])
						}
						return nil, &object.ExceptionValue{Class: "AssertionError", Message: msg}
					}
					return object.NullVal, nil
				}),
				"assertEqual": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) < 2 {
						return nil, &object.ExceptionValue{Class: "AssertionError", Message: "assertEqual requires two arguments"}
					}
					if !object.StrictEquals(args[0], args[1]) {
						msg := fmt.Sprintf("expected %s, got %s", object.Inspect(args[1]), object.Inspect(args[0]))
						return nil, &object.ExceptionValue{Class: "AssertionError", Message: msg}
					}
					return object.NullVal, nil
				}),
			},
		}
	})
}
