package builtins

import (
	"time"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

// RegisterStdTime registers "std.time": now() and an async sleep(ms) that
// resolves its Promise from a separate goroutine, exercising the
// cross-thread settlement path of spec §5 rather than the event loop's own
// posted-task path.
func RegisterStdTime(reg *module.Registry, rt Runtime) {
	reg.Register("std.time", func() *module.Package {
		return &module.Package{
			Name: "std.time",
			Exports: map[string]object.Value{
				"now": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					return &object.Number{Value: float64(time.Now().UnixMilli())}, nil
				}),
				"sleep": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					ms := object.ToNumber(argOr(args, 0, &object.Number{Value: 0}))
					p := object.NewPromise()
					go func() {
						time.Sleep(time.Duration(ms) * time.Millisecond)
						p.Settle(object.Fulfilled, object.NullVal, dispatch(rt))
					}()
					return p, nil
				}),
			},
		}
	})
}
