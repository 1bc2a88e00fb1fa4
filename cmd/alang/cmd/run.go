package cmd

import (
	"fmt"
	"os"

	"github.com/asultop/alang/pkg/alang"
	"github.com/spf13/cobra"
)

var (
	runEval string
	runArgs []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ALang file or expression",
	Long: `Execute an ALang program from a file or inline expression.

Examples:
  alang run script.alang
  alang run -e "println(\"hello\")"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringArrayVar(&runArgs, "arg", nil, "argument to expose via std.os.args (repeatable)")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readProgramInput(runEval, args)
	if err != nil {
		return err
	}

	cfg, err := loadFileConfig(configPath)
	if err != nil {
		return fmt.Errorf("reading config %q: %w", configPath, err)
	}
	effectiveVerbose := verbose
	if !cmd.Flags().Changed("verbose") && cfg.Verbose {
		effectiveVerbose = true
	}
	effectiveArgs := runArgs
	if !cmd.Flags().Changed("arg") && len(cfg.Args) > 0 {
		effectiveArgs = cfg.Args
	}

	eng := alang.New(
		alang.WithOutput(os.Stdout),
		alang.WithInput(os.Stdin),
		alang.WithArgs(effectiveArgs),
		alang.WithDebugLogging(effectiveVerbose),
	)
	eng.SetSource(input, filename)

	if _, err := eng.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %s\n", err)
		return fmt.Errorf("execution failed")
	}
	return nil
}
