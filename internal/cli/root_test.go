package cli

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "motion", cmd.Use)
	assert.Contains(t, cmd.Long, "scenario")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"run", "validate", "inspect", "replay"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	db := runCmd.Flags().Lookup("db")
	require.NotNil(t, db)
	assert.Equal(t, "", db.DefValue)
}

func TestReplayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replayCmd, _, err := cmd.Find([]string{"replay"})
	require.NoError(t, err)

	assert.NotNil(t, replayCmd.Flags().Lookup("db"))
	assert.NotNil(t, replayCmd.Flags().Lookup("recording"))
}

func TestFormatValidationIntegration(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fade.yaml", fadeScenario)

	_, err := execute(NewRootCommand(), "--format", "xml", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootOptions_LoggerLevel(t *testing.T) {
	quiet := (&RootOptions{}).Logger(io.Discard)
	assert.False(t, quiet.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, quiet.Enabled(t.Context(), slog.LevelWarn))

	loud := (&RootOptions{Verbose: true}).Logger(io.Discard)
	assert.True(t, loud.Enabled(t.Context(), slog.LevelDebug))
}
