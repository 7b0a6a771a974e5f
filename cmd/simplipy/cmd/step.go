package cmd

import (
	"fmt"
	"os"

	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/session"
	"github.com/spf13/cobra"
)

var stepCount int

var stepCmd = &cobra.Command{
	Use:   "step [file]",
	Short: "Step a program N instructions at a time, printing each snapshot",
	Long: `Create a session from a file or inline source and advance it one
instruction at a time, printing the snapshot after every step. Useful for
driving the interpreter interactively the way a debugger frontend would
through the same create/step/get operations a session.Manager exposes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().IntVarP(&stepCount, "count", "n", 1, "number of instructions to step")
	stepCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	stepCmd.Flags().StringVar(&outputFormat, "format", "", "output format: text or json (default: config's output_format)")
}

func runStep(_ *cobra.Command, args []string) error {
	input, _, err := readSource(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format := cfg.OutputFormat
	if outputFormat != "" {
		format = outputFormat
	}

	mgr := session.NewManager(cfg)
	id, snap, structure, err := mgr.Create(input)
	if err != nil {
		return reportBuildError(err)
	}
	if verbose {
		stmts, _ := structure["statements"].([]ir.StructureRecord)
		fmt.Fprintf(os.Stderr, "session %s created, %d top-level statement(s)\n", id, len(stmts))
	}

	finished := false
	for i := 0; i < stepCount && !finished; i++ {
		snap, finished, err = mgr.Step(id)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Printf("--- step %d ---\n", i+1)
		if err := printSnapshot(snap, format); err != nil {
			return err
		}
	}
	if finished {
		fmt.Println("program reached its final state")
	}
	return nil
}
