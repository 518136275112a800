package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const fadeScenario = `
name: fade
description: Fade a box out
nodes:
  - id: box
tracks:
  - act: { node: box, field: opacity, to: 0, duration: 1 }
frames:
  - time: 0
  - time: 0.5
  - time: 1
expect:
  - { frame: 2, node: box, field: opacity, value: 0.5 }
`

const failingScenario = `
name: failing
description: Expects the wrong value
nodes:
  - id: box
tracks:
  - act: { node: box, field: scale, to: 3, duration: 1 }
frames:
  - time: 0.5
expect:
  - { frame: 1, node: box, field: scale, value: 9 }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns its combined output.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// executeSplit runs cmd with args and returns stdout and stderr separately.
func executeSplit(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
