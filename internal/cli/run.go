package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/motion/internal/harness"
	"github.com/roach88/motion/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	File      string   `json:"file"`
	Name      string   `json:"name"`
	Pass      bool     `json:"pass"`
	Frames    int      `json:"frames"`
	Complete  bool     `json:"complete"`
	Recording string   `json:"recording,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// RunResult is the outcome of a run command.
type RunResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario>...",
		Short: "Run scenarios and check their expectations",
		Long: `Run one or more scenario files and check their expectations.

With --db, every sampled frame is recorded to a SQLite database under the
scenario's name, so a later "motion replay" can detect drift.

Exit codes:
  0 - All scenarios passed
  1 - One or more expectations failed
  2 - Command error (unreadable scenario, database error, etc.)

Examples:
  motion run testdata/scenarios/fade.yaml
  motion run --db ./motion.db testdata/scenarios/*.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record frames to this SQLite database")

	return cmd
}

func runScenarios(ctx context.Context, opts *RunOptions, files []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	var st *store.Store
	if opts.Database != "" {
		var err error
		st, err = store.Open(opts.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, "failed to open database", err.Error())
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	result := RunResult{Scenarios: make([]ScenarioResult, 0, len(files))}
	for _, file := range files {
		sr, err := runScenarioFile(ctx, file, st, logger)
		if err != nil {
			_ = formatter.Error(ErrCodeRun, fmt.Sprintf("%s: %v", file, err), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run %s", file), err)
		}
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Scenarios = append(result.Scenarios, sr)
	}

	if formatter.JSON() {
		if result.Failed > 0 {
			if err := formatter.Failure(ErrCodeRun, fmt.Sprintf("%d scenario(s) failed", result.Failed), result); err != nil {
				return err
			}
		} else if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printRunText(cmd, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

func runScenarioFile(ctx context.Context, file string, st *store.Store, logger *slog.Logger) (ScenarioResult, error) {
	s, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{}, err
	}

	opts := []harness.Option{harness.WithLogger(logger)}
	var rec *store.Recorder
	if st != nil {
		rec, err = st.NewRecorder(ctx, s.Name)
		if err != nil {
			return ScenarioResult{}, fmt.Errorf("create recording: %w", err)
		}
		opts = append(opts, harness.WithRecorder(rec))
	}

	logger.Debug("running scenario", "file", file, "name", s.Name)
	res, err := harness.Run(ctx, s, opts...)
	if err != nil {
		return ScenarioResult{}, err
	}

	sr := ScenarioResult{
		File:   file,
		Name:   s.Name,
		Pass:   res.Pass,
		Frames: len(res.Trace),
		Errors: res.Errors,
	}
	if n := len(res.Trace); n > 0 {
		sr.Complete = res.Trace[n-1].Complete
	}
	if rec != nil {
		sr.Recording = rec.Recording().ID
	}
	return sr, nil
}

func printRunText(cmd *cobra.Command, result RunResult) {
	w := cmd.OutOrStdout()
	for _, sr := range result.Scenarios {
		mark := "✓"
		if !sr.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s (%d frames)\n", mark, sr.Name, sr.Frames)
		if sr.Recording != "" {
			fmt.Fprintf(w, "  recording: %s\n", sr.Recording)
		}
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", result.Passed, result.Failed)
}
