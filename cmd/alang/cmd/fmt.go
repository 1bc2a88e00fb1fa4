package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/parser"
	"github.com/spf13/cobra"
)

var (
	fmtWrite     bool
	fmtList      bool
	fmtDiff      bool
	fmtRecursive bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files or directories...]",
	Short: "Format ALang source files",
	Long: `Format ALang source files using the AST-driven printer.

By default, fmt formats the files named on the command line and writes
the result to standard output. If no path is given, it reads from
standard input.`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to (source) file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "display diffs instead of rewriting files")
	fmtCmd.Flags().BoolVarP(&fmtRecursive, "recursive", "r", false, "process directories recursively")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}
	if fmtWrite && fmtDiff {
		return fmt.Errorf("cannot use -w and -d together")
	}

	if len(args) == 0 {
		return formatStdin()
	}

	hasErrors := false
	for _, path := range args {
		if err := processPath(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("formatting failed for one or more files")
	}
	return nil
}

func processPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if fmtRecursive {
			return processDirectory(path)
		}
		return fmt.Errorf("%s is a directory (use -r to process recursively)", path)
	}
	return formatFile(path)
}

func processDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".alang") {
			return nil
		}
		if err := formatFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", path, err)
		}
		return nil
	})
}

func formatStdin() error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("error reading stdin: %w", err)
	}
	formatted, err := formatSource(string(src))
	if err != nil {
		return err
	}
	fmt.Print(formatted)
	return nil
}

func formatFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	original := string(src)
	formatted, err := formatSource(original)
	if err != nil {
		return err
	}
	changed := original != formatted

	switch {
	case fmtList:
		if changed {
			fmt.Println(filename)
		}
	case fmtDiff:
		if changed {
			fmt.Printf("--- %s (original)\n", filename)
			fmt.Printf("+++ %s (formatted)\n", filename)
			showDiff(original, formatted)
		}
	case fmtWrite:
		if changed {
			if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("error writing file: %w", err)
			}
			if verbose {
				fmt.Printf("Formatted %s\n", filename)
			}
		}
	default:
		fmt.Print(formatted)
	}
	return nil
}

// formatSource parses source and renders it back via the AST's own String
// method, which is the printer this CLI has: every node's String already
// produces normalized, re-parseable source.
func formatSource(source string) (string, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		var sb strings.Builder
		sb.WriteString("Parse errors:\n")
		for _, e := range errs {
			fmt.Fprintf(&sb, "  %s\n", e)
		}
		return "", fmt.Errorf("%s", sb.String())
	}
	out := program.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func showDiff(original, formatted string) {
	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")
	maxLines := len(origLines)
	if len(fmtLines) > maxLines {
		maxLines = len(fmtLines)
	}
	for i := 0; i < maxLines; i++ {
		var o, f string
		if i < len(origLines) {
			o = origLines[i]
		}
		if i < len(fmtLines) {
			f = fmtLines[i]
		}
		if o != f {
			if o != "" {
				fmt.Printf("- %s\n", o)
			}
			if f != "" {
				fmt.Printf("+ %s\n", f)
			}
		}
	}
}
