package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/motion/internal/harness"
)

// InspectResult describes a scenario's compiled timeline.
type InspectResult struct {
	Name   string              `json:"name"`
	Tracks []harness.TrackInfo `json:"tracks"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <scenario>",
		Short: "Show the compiled tracks of a scenario",
		Long: `Compile a scenario's tracks without running it and print the layout:
each track's duration and, per node field, the clips scheduled on it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInspect(opts *RootOptions, file string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	s, err := harness.LoadScenario(file)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	tracks, err := harness.Inspect(s)
	if err != nil {
		_ = formatter.Error(ErrCodeRun, err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to compile scenario", err)
	}

	result := InspectResult{Name: s.Name, Tracks: tracks}
	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s: %d track(s)\n", result.Name, len(tracks))
	for _, tr := range tracks {
		fmt.Fprintf(w, "\ntrack %d (duration %g)\n", tr.Index, tr.Duration)
		for _, seq := range tr.Sequences {
			fmt.Fprintf(w, "  %s.%s\n", seq.Node, seq.Field)
			for _, c := range seq.Clips {
				fmt.Fprintf(w, "    action %d: %g..%g\n", c.Action, c.Start, c.Start+c.Duration)
			}
		}
	}
	return nil
}
