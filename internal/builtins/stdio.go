package builtins

import (
	"io"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

// RegisterStdIO registers "std.io": print/println/readLine, grounded on the
// same free-function implementations Globals exposes (SPEC_FULL.md §4).
func RegisterStdIO(reg *module.Registry, out io.Writer, in io.Reader) {
	reg.Register("std.io", func() *module.Package {
		g := Globals(out, in)
		return &module.Package{
			Name: "std.io",
			Exports: map[string]object.Value{
				"print":    g["print"],
				"println":  g["println"],
				"readLine": g["readLine"],
			},
		}
	})
}
