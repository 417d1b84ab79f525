package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "achronyme",
	Short: "SOC numeric engine interpreter",
	Long: `achronyme is a Go implementation of the SOC expression language: a
small, expression-oriented numeric scripting language with vectors,
matrices, complex numbers, records, closures, and built-in numerical
methods (linear algebra, calculus, signal processing, optimization).

Every expression evaluates to a Value and eval() returns its canonical
textual form — there is no statement/expression split and no print
side-channel.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

