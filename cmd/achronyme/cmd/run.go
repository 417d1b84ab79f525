package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/soerr/render"
	"github.com/eddndev/achronyme-go/pkg/achronyme"
)

var (
	evalExpr   string
	dumpAST    bool
	trace      bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a SOC expression file or inline expression",
	Long: `Evaluate a SOC program from a file or inline expression and print its
canonical result form.

Examples:
  # Run a script file
  achronyme run script.soc

  # Evaluate an inline expression
  achronyme run -e "1 + 2 * 3"

  # Dump the parsed AST (for debugging)
  achronyme run --dump-ast script.soc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "emit diagnostic logging (handle counters, import resolution)")
	runCmd.Flags().StringVar(&configPath, "config", "achronyme.yaml", "project config file")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename, baseDir string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
		baseDir, _ = os.Getwd()
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
		baseDir = filepath.Dir(filename)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	cfg, err := loadConfig(configPath)
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", configPath, err)
	}
	searchDir := baseDir
	if len(cfg.ImportPaths) > 0 {
		searchDir = cfg.ImportPaths[0]
	}

	opts := []achronyme.Option{
		achronyme.WithImportResolver(achronyme.NewFileImportResolver(searchDir)),
	}
	if trace {
		opts = append(opts, achronyme.WithDiagnosticLog(os.Stderr))
	}
	engine := achronyme.New(opts...)

	prog, err := engine.Parse(input, filename)
	if err != nil {
		printError(err, input)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(prog.String())
		fmt.Println()
	}

	result, err := engine.EvalProgram(prog)
	if err != nil {
		printError(err, input)
		return fmt.Errorf("evaluation failed")
	}

	fmt.Println(result)
	return nil
}

func printError(err error, source string) {
	se, ok := err.(*soerr.Error)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if isTerminal(os.Stderr) {
		fmt.Fprintln(os.Stderr, render.Pretty(se))
		return
	}
	fmt.Fprintln(os.Stderr, se.Format(false))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
