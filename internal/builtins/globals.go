package builtins

import (
	"bufio"
	"fmt"
	"io"

	"github.com/asultop/alang/internal/object"
)

// Globals returns the script-visible free functions bound into the global
// environment at startup (print/println/typeof/...), writing script output
// to out (defaulting to os.Stdout in the embedding API, spec §4.9
// `set_output`-equivalent option).
func Globals(out io.Writer, in io.Reader) map[string]object.Value {
	reader := bufio.NewReader(in)
	return map[string]object.Value{
		"print": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			for idx, a := range args {
				if idx > 0 {
					fmt.Fprint(out, " ")
				}
				fmt.Fprint(out, object.ToStringValue(a))
			}
			return object.NullVal, nil
		}),
		"println": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			for idx, a := range args {
				if idx > 0 {
					fmt.Fprint(out, " ")
				}
				fmt.Fprint(out, object.ToStringValue(a))
			}
			fmt.Fprintln(out)
			return object.NullVal, nil
		}),
		"readLine": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return object.NullVal, nil
			}
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			return &object.String{Value: line}, nil
		}),
		"typeof": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(args) == 0 {
				return &object.String{Value: "null"}, nil
			}
			return &object.String{Value: args[0].Type()}, nil
		}),
		"toString": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(args) == 0 {
				return &object.String{Value: "null"}, nil
			}
			return &object.String{Value: object.ToStringValue(args[0])}, nil
		}),
		"toNumber": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(args) == 0 {
				return &object.Number{Value: 0}, nil
			}
			return &object.Number{Value: object.ToNumber(args[0])}, nil
		}),
	}
}
