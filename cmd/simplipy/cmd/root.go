package cmd

import (
	"fmt"
	"os"

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
	Use:   "simplipy",
	Short: "A small-step, observable interpreter for a restricted Python subset",
	Long: `simplipy interprets a restricted, Python-like imperative subset one
instruction at a time: assignment, call-assignment, if/else, while,
nested function definitions, return, break, continue, and global/
nonlocal declarations.

Every step exposes the interpreter's full internal state: the
environment store, the parent-environment graph, and the continuation
(call) stack. That makes it suitable for driving an educational
debugger rather than just running programs to completion.`,
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
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a .simplipy.yaml config file (default: ./.simplipy.yaml)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
