package cmd

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"sort"

	"github.com/simplipy-lang/simplipy-go/internal/errors"
	"github.com/simplipy-lang/simplipy-go/internal/interp"
	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/lexer"
	"github.com/simplipy-lang/simplipy-go/internal/parser"
	"github.com/simplipy-lang/simplipy-go/internal/simplify"
	"github.com/simplipy-lang/simplipy-go/internal/value"
	"github.com/spf13/cobra"
)

// sourceContextLines is how many lines of context FormatErrorsWithContext
// prints around a parse error (the plain Format path a single error would
// get prints only the offending line itself).
const sourceContextLines = 2

var (
	evalExpr      string
	dumpAST       bool
	dumpStructure bool
	trace         bool
	outputFormat  string
	maxStepsFlag  int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a simplipy program to completion",
	Long: `Step a simplipy program to its final state, one instruction at a
time, and print the resulting environment store, parent chain, and
continuation stack.

Examples:
  # Run a script file
  simplipy run script.spy

  # Evaluate inline source
  simplipy run -e "x = 1
y = x + 2"

  # Dump the static program structure instead of running it
  simplipy run --dump-structure script.spy

  # Trace every step's line as it executes
  simplipy run --trace script.spy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&dumpStructure, "dump-structure", false, "dump the static program structure instead of running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print the executing line after every step")
	runCmd.Flags().StringVar(&outputFormat, "format", "", "output format: text or json (default: config's output_format)")
	runCmd.Flags().IntVar(&maxStepsFlag, "max-steps", 0, "override the configured step budget (0: use config)")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) > 0 {
		compilerErrors := errors.FromStringErrors(errs, input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrorsWithContext(compilerErrors, sourceContextLines, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Printf("%+v\n\n", mod)
	}

	pgm, err := simplify.Build(mod)
	if err != nil {
		return reportBuildError(err)
	}

	if dumpStructure {
		return printJSON(ir.ProgramStructure(pgm))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if maxStepsFlag > 0 {
		cfg.MaxSteps = maxStepsFlag
	}
	format := cfg.OutputFormat
	if outputFormat != "" {
		format = outputFormat
	}

	state, err := interp.Create(pgm)
	if err != nil {
		return reportBuildError(err)
	}

	steps := 0
	for !state.IsFinal() {
		if cfg.MaxSteps > 0 && steps >= cfg.MaxSteps {
			return fmt.Errorf("execution exceeded max_steps (%d)", cfg.MaxSteps)
		}
		if cfg.MaxCallDepth > 0 && state.Machine.Cont.Len() > cfg.MaxCallDepth {
			return fmt.Errorf("execution exceeded max_call_depth (%d)", cfg.MaxCallDepth)
		}
		if err := state.Step(); err != nil {
			reportRuntimeError(state, err)
			return fmt.Errorf("execution failed: %w", err)
		}
		steps++
		if trace {
			top := state.Machine.Cont.Top()
			fmt.Fprintf(os.Stderr, "[step %d] line=%d depth=%d\n", steps, top.Line, state.Machine.Cont.Len())
		}
	}

	return printSnapshot(state.Snapshot(), format)
}

func readSource(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline source")
}

func reportBuildError(err error) error {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	return fmt.Errorf("build failed")
}

// reportRuntimeError prints a call-stack trace alongside a CallError or
// LookupError, the two categories a debugger frontend would want a frame
// trace for (an Internal or EvalError points at one instruction, not a
// chain of calls).
func reportRuntimeError(state *interp.State, err error) {
	var simErr *errors.SimplipyError
	if !stderrors.As(err, &simErr) {
		return
	}
	if simErr.Category != errors.CategoryCall && simErr.Category != errors.CategoryLookup {
		return
	}
	trace := state.Machine.StackTrace()
	fmt.Fprintln(os.Stderr, "Call stack (most recent call first):")
	fmt.Fprintln(os.Stderr, trace.String())
}

func printSnapshot(snap interp.Snapshot, format string) error {
	if format == "json" {
		return printJSON(snap)
	}
	return printSnapshotText(snap)
}

func printSnapshotText(snap interp.Snapshot) error {
	fmt.Println("Environments:")
	envIDs := make([]int, 0, len(snap.E))
	for id := range snap.E {
		envIDs = append(envIDs, id)
	}
	sort.Ints(envIDs)
	for _, id := range envIDs {
		parent := "-"
		if p, ok := snap.P[id]; ok {
			parent = fmt.Sprintf("%d", p)
		}
		fmt.Printf("  env %d (parent %s):\n", id, parent)
		for _, name := range value.SortedKeys(snap.E[id]) {
			fmt.Printf("    %s = %v\n", name, snap.E[id][name])
		}
	}

	fmt.Println("Continuation stack (bottom to top):")
	for _, frame := range snap.K {
		fmt.Printf("  line %d in env %d\n", frame.Line, frame.EnvID)
	}

	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
