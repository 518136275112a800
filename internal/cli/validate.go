package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/motion/internal/harness"
)

// FileValidation is the validation outcome of one scenario file.
type FileValidation struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario>...",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files against the scenario schema and check node
references, value types and frame definitions.

Schema errors are reported with the file, line and column of the offending
value.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		fv := FileValidation{File: file, Valid: true}
		if _, err := harness.LoadScenario(file); err != nil {
			fv.Valid = false
			fv.Code = ErrCodeLoad
			var ve *harness.ValidationError
			if errors.As(err, &ve) {
				fv.Code = ErrCodeSchema
			}
			fv.Error = err.Error()
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if result.Valid {
		if formatter.JSON() {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ %d scenario(s) valid\n", len(files))
		return nil
	}

	failed := 0
	for _, fv := range result.Files {
		if !fv.Valid {
			failed++
		}
	}
	msg := fmt.Sprintf("validation failed for %d file(s)", failed)

	if formatter.JSON() {
		if err := formatter.Failure(ErrCodeSchema, msg, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, fv := range result.Files {
		if fv.Valid {
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s\n  %s: %s\n\n", fv.File, fv.Code, fv.Error)
	}
	return NewExitError(ExitFailure, msg)
}
