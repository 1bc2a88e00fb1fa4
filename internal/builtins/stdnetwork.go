package builtins

import (
	"io"
	"net/http"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

// RegisterStdNetwork registers "std.network": httpGet(url) -> Promise<String>,
// settled from a worker goroutine the same way std.time.sleep settles its
// Promise, so a real network boundary exercises the cross-thread settlement
// path (SPEC_FULL.md §4 "Network package presence, not protocol depth").
func RegisterStdNetwork(reg *module.Registry, rt Runtime) {
	reg.Register("std.network", func() *module.Package {
		return &module.Package{
			Name: "std.network",
			Exports: map[string]object.Value{
				"httpGet": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: "httpGet requires a url argument"}
					}
					url := object.ToStringValue(args[0])
					p := object.NewPromise()
					go func() {
						resp, err := http.Get(url)
						if err != nil {
							p.Settle(object.Rejected, &object.String{Value: err.Error()}, dispatch(rt))
							return
						}
						defer resp.Body.Close()
						body, err := io.ReadAll(resp.Body)
						if err != nil {
							p.Settle(object.Rejected, &object.String{Value: err.Error()}, dispatch(rt))
							return
						}
						p.Settle(object.Fulfilled, &object.String{Value: string(body)}, dispatch(rt))
					}()
					return p, nil
				}),
				// httpGetAll fans N requests out concurrently on one worker
				// goroutine (via Runtime.RunWorkers) and settles a single
				// Promise with all results once every request completes,
				// rejecting with the first error encountered if any fail.
				"httpGetAll": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					arr, ok := firstArray(args)
					if !ok {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: "httpGetAll requires an array of urls"}
					}
					p := object.NewPromise()
					results := make([]object.Value, len(arr.Elements))
					go func() {
						fns := make([]func() error, len(arr.Elements))
						for idx, el := range arr.Elements {
							idx, url := idx, object.ToStringValue(el)
							fns[idx] = func() error {
								resp, err := http.Get(url)
								if err != nil {
									return err
								}
								defer resp.Body.Close()
								body, err := io.ReadAll(resp.Body)
								if err != nil {
									return err
								}
								results[idx] = &object.String{Value: string(body)}
								return nil
							}
						}
						if err := rt.RunWorkers(fns...); err != nil {
							p.Settle(object.Rejected, &object.String{Value: err.Error()}, dispatch(rt))
							return
						}
						p.Settle(object.Fulfilled, &object.Array{Elements: results}, dispatch(rt))
					}()
					return p, nil
				}),
			},
		}
	})
}

func firstArray(args []object.Value) (*object.Array, bool) {
	if len(args) == 0 {
		return nil, false
	}
	arr, ok := args[0].(*object.Array)
	return arr, ok
}
