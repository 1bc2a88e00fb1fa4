package builtins

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

// RegisterStdCSV registers "std.csv": parse/stringify over Array-of-Array
// values, wrapping encoding/csv the same way the rest of the std surface
// wraps a narrow stdlib/ecosystem codec behind a builtin function
// (SPEC_FULL.md §4, mirroring original_source's Csv package).
func RegisterStdCSV(reg *module.Registry) {
	reg.Register("std.csv", func() *module.Package {
		return &module.Package{
			Name: "std.csv",
			Exports: map[string]object.Value{
				"parse": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return &object.Array{}, nil
					}
					r := csv.NewReader(strings.NewReader(object.ToStringValue(args[0])))
					records, err := r.ReadAll()
					if err != nil {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: err.Error()}
					}
					rows := &object.Array{}
					for _, rec := range records {
						row := &object.Array{}
						for _, cell := range rec {
							row.Elements = append(row.Elements, &object.String{Value: cell})
						}
						rows.Elements = append(rows.Elements, row)
					}
					return rows, nil
				}),
				"stringify": builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
					if len(args) == 0 {
						return &object.String{Value: ""}, nil
					}
					rows, ok := args[0].(*object.Array)
					if !ok {
						return nil, &object.ExceptionValue{Class: "TypeError", Message: "stringify requires an array of arrays"}
					}
					var buf bytes.Buffer
					w := csv.NewWriter(&buf)
					for _, rowVal := range rows.Elements {
						row, ok := rowVal.(*object.Array)
						if !ok {
							continue
						}
						rec := make([]string, len(row.Elements))
						for i, cell := range row.Elements {
							rec[i] = object.ToStringValue(cell)
						}
						if err := w.Write(rec); err != nil {
							return nil, &object.ExceptionValue{Class: "TypeError", Message: err.Error()}
						}
					}
					w.Flush()
					return &object.String{Value: buf.String()}, nil
				}),
			},
		}
	})
}
