package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEval       string
	lexShowPos    bool
	lexShowType   bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an ALang file or expression",
	Long: `Tokenize (lex) an ALang program and print the resulting tokens.

Examples:
  alang lex script.alang
  alang lex -e "let x = 42;"
  alang lex --show-type --show-pos script.alang`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readProgramInput(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)

	tokenCount := 0
	for {
		tok := l.NextToken()
		if lexOnlyErrors && tok.Type != token.ILLEGAL {
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		tokenCount++
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if len(l.Errors()) > 0 {
		return fmt.Errorf("found %d lexer error(s)", len(l.Errors()))
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Type == token.EOF {
		out += " EOF"
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}

// readProgramInput resolves the (input, filename) pair shared by run/lex/parse:
// an inline -e expression, a file argument, or stdin.
func readProgramInput(eval string, args []string) (input, filename string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	default:
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", readErr)
		}
		return string(data), "<stdin>", nil
	}
}
