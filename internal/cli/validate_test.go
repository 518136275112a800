package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "fade.yaml", fadeScenario)
	b := writeFile(t, dir, "failing.yaml", failingScenario)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 2 scenario(s) valid")
}

func TestValidate_SchemaError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `
name: bad
description: Unknown field name
nodes: [{ id: box }]
tracks: [{ act: { node: box, field: rotation, to: 1, duration: 1 } }]
frames: [{ time: 0 }]
`)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, ErrCodeSchema)
	assert.Contains(t, out, "bad.yaml")
}

func TestValidate_SemanticErrorJSON(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "fade.yaml", fadeScenario)
	bad := writeFile(t, dir, "ghost.yaml", `
name: ghost
description: Refers to a missing node
nodes: [{ id: box }]
tracks: [{ act: { node: ghost, field: scale, to: 1, duration: 1 } }]
frames: [{ time: 0 }]
`)

	stdout, _, err := executeSplit(NewValidateCommand(&RootOptions{Format: "json"}), good, bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Files, 2)
	assert.True(t, resp.Data.Files[0].Valid)
	assert.False(t, resp.Data.Files[1].Valid)
	assert.Equal(t, ErrCodeLoad, resp.Data.Files[1].Code)
	assert.Contains(t, resp.Data.Files[1].Error, `unknown node "ghost"`)
}

func TestValidate_VerboseGoesToStderr(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fade.yaml", fadeScenario)

	stdout, stderr, err := executeSplit(NewValidateCommand(&RootOptions{Format: "json", Verbose: true}), path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Validating ")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
}
