package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/motion/internal/harness"
	"github.com/roach88/motion/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	Recording string // optional; defaults to the latest recording of the scenario
}

// ReplayResult holds the outcome of a replay.
type ReplayResult struct {
	Scenario      string   `json:"scenario"`
	Recording     string   `json:"recording"`
	Frames        int      `json:"frames"`
	Deterministic bool     `json:"deterministic"`
	Mismatches    []string `json:"mismatches"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Re-run a scenario and compare it with a recording",
		Long: `Re-run a scenario and compare every sampled frame with one recorded
earlier by "motion run --db".

By default the latest recording made under the scenario's name is used.

Exit codes:
  0 - The run matches the recording
  1 - Frames differ from the recording
  2 - Command error (database or recording not found, etc.)

Examples:
  motion replay --db ./motion.db testdata/scenarios/fade.yaml
  motion replay --db ./motion.db --recording 0190... fade.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Recording, "recording", "", "compare with this recording id")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, file string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	s, err := harness.LoadScenario(file)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "failed to open database", err.Error())
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	rec, err := findRecording(ctx, st, opts.Recording, s.Name)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to find recording", err)
	}
	logger.Debug("replaying", "scenario", s.Name, "recording", rec.ID)

	want, err := st.ReadFrames(ctx, rec.ID)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read frames", err)
	}

	res, err := harness.Run(ctx, s, harness.WithLogger(logger))
	if err != nil {
		_ = formatter.Error(ErrCodeRun, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	result := ReplayResult{
		Scenario:   s.Name,
		Recording:  rec.ID,
		Frames:     len(want),
		Mismatches: []string{},
	}
	for _, m := range store.DiffFrames(want, res.Frames()) {
		result.Mismatches = append(result.Mismatches, m.String())
	}
	result.Deterministic = len(result.Mismatches) == 0

	if formatter.JSON() {
		if result.Deterministic {
			return formatter.Success(result)
		}
		if err := formatter.Failure(ErrCodeMismatch, "replay diverged from recording", result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "replay diverged from recording")
	}

	w := formatter.Writer
	if result.Deterministic {
		fmt.Fprintf(w, "✓ %s matches recording %s (%d frames)\n", result.Scenario, result.Recording, result.Frames)
		return nil
	}
	fmt.Fprintf(w, "✗ %s differs from recording %s\n", result.Scenario, result.Recording)
	for _, m := range result.Mismatches {
		fmt.Fprintf(w, "  %s\n", m)
	}
	return NewExitError(ExitFailure, "replay diverged from recording")
}

func findRecording(ctx context.Context, st *store.Store, id, name string) (store.Recording, error) {
	if id != "" {
		rec, err := st.ReadRecording(ctx, id)
		if err != nil {
			return store.Recording{}, fmt.Errorf("recording %s: %w", id, err)
		}
		return rec, nil
	}
	rec, err := st.FindRecording(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Recording{}, fmt.Errorf("no recording named %q", name)
	}
	if err != nil {
		return store.Recording{}, err
	}
	return rec, nil
}
