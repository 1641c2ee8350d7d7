package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelScript = `steps:
  - op: psm/create-schema
    as: schema
  - op: psm/create-class
    as: person
    args: {schema: $schema, technicalLabel: person}
  - op: psm/set-schema-roots
    args: {schema: $schema, roots: [$person]}
  - op: psm/create-attribute
    as: name
    args: {owner: $person, technicalLabel: name}
  - op: psm/create-class
    as: orphan
    args: {schema: $schema}
assertions:
  - type: field
    resource: $schema
    field: roots
    equals: [$person]
`

// applyModel saves modelScript into a new database and returns the
// database path with the script bindings.
func applyModel(t *testing.T) (string, map[string]string) {
	t.Helper()
	db := filepath.Join(t.TempDir(), "model.db")
	script := writeFile(t, "model.yaml", modelScript)

	out, err := execute(t, "apply", "--db", db, "--script", script, "--format", "json")
	require.NoError(t, err)
	resp := decode[ApplyResult](t, out)
	require.Equal(t, "ok", resp.Status)
	require.True(t, resp.Data.Saved)
	return db, resp.Data.Bindings
}

func TestApply_SavesScript(t *testing.T) {
	db, bindings := applyModel(t)
	assert.Contains(t, bindings, "schema")
	assert.Contains(t, bindings, "orphan")

	out, err := execute(t, "show", "--db", db, "--format", "json")
	require.NoError(t, err)
	shown := decode[ShowResult](t, out).Data
	assert.Len(t, shown.Resources, 4)
	assert.Equal(t, 5, shown.Operations)
}

func TestApply_TextOutput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	script := writeFile(t, "model.yaml", modelScript)

	out, err := execute(t, "apply", "--db", db, "--script", script, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "5 of 5 steps committed")
	assert.Contains(t, out, "✓ [3] psm/set-schema-roots")
}

func TestApply_RejectedStep(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	script := writeFile(t, "bad.yaml", `steps:
  - op: psm/delete-class
    args: {class: "https://example.org/none"}
  - op: psm/create-schema
`)

	out, err := execute(t, "apply", "--db", db, "--script", script)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "0 of 2 steps committed")
	assert.Contains(t, out, "✗ [1] psm/delete-class")
	assert.Contains(t, out, "Database not modified.")
	assert.Contains(t, out, "Error [E004]")
}

func TestApply_PartialScriptKeepsCommits(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	script := writeFile(t, "partial.yaml", `steps:
  - op: psm/create-schema
  - op: psm/delete-class
    args: {class: "https://example.org/none"}
`)

	out, err := execute(t, "apply", "--db", db, "--script", script, "--format", "json")
	require.Error(t, err)
	resp := decode[ApplyResult](t, out)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Committed)
	assert.True(t, resp.Data.Saved)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeRejected, resp.Error.Code)
}

func TestApply_DryRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	script := writeFile(t, "model.yaml", modelScript)

	out, err := execute(t, "apply", "--db", db, "--script", script, "--dry-run", "--format", "json")
	require.NoError(t, err)
	assert.False(t, decode[ApplyResult](t, out).Data.Saved)

	out, err = execute(t, "show", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Empty(t, decode[ShowResult](t, out).Data.Resources)
}

func TestApply_FailedAssertion(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	script := writeFile(t, "assert.yaml", `steps:
  - op: psm/create-schema
    as: schema
assertions:
  - type: field
    resource: $schema
    field: technicalLabel
    value: expected
`)

	_, err := execute(t, "apply", "--db", db, "--script", script)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestApply_BadScript(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")

	_, err := execute(t, "apply", "--db", db, "--script", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	script := writeFile(t, "unknown.yaml", "steps:\n  - op: psm/create-widget\n")
	_, err = execute(t, "apply", "--db", db, "--script", script)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown operation kind")
}
