package builtins

import (
	"github.com/asultop/alang/internal/alog"
	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

// RegisterStdLog registers "std.log": leveled logging backed by the same
// alog.Logger the CLI's own verbose mode uses, so script-emitted diagnostics
// and host diagnostics share one structured sink.
func RegisterStdLog(reg *module.Registry, logger *alog.Logger) {
	reg.Register("std.log", func() *module.Package {
		msg := func(args []object.Value) string {
			if len(args) == 0 {
				return ""
			}
			return object.ToStringValue(args[0])
		}
		return &module.Package{
			Name: "std.log",
			Exports: map[string]object.Value{
				"debug": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					logger.Debugf("%s", msg(args))
					return object.NullVal, nil
				}),
				"info": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					logger.Infof("%s", msg(args))
					return object.NullVal, nil
				}),
				"warn": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					logger.Warnf("%s", msg(args))
					return object.NullVal, nil
				}),
				"error": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					logger.Errorf("%s", msg(args))
					return object.NullVal, nil
				}),
			},
		}
	})
}
