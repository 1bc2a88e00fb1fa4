package cmd

import (
	"fmt"

	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse ALang source and print its AST",
	Long: `Parse ALang source code and display the Abstract Syntax Tree.

If no file is given, reads from stdin unless -e is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse an inline expression instead of a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readProgramInput(parseEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("parse error in %s: %s\n", filename, e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Println(program.String())
	return nil
}
