package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countResult struct {
	Count int `json:"count"`
}

func (r countResult) WriteText(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "%d resources\n", r.Count)
	if verbose {
		fmt.Fprintln(w, "(verbose)")
	}
}

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(countResult{Count: 3}))

	var resp struct {
		Status string      `json:"status"`
		Data   countResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.Count)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeDatabase, "failed to open journal", map[string]string{"path": "x.db"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E003", resp.Error.Code)
	assert.Equal(t, "failed to open journal", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_JSONFailureKeepsData(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Failure(ErrCodeRejected, "step 2 was rejected", countResult{Count: 1}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, map[string]any{"count": float64(1)}, resp.Data)
	assert.Equal(t, ErrCodeRejected, resp.Error.Code)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("journal saved"))
	assert.Equal(t, "journal saved\n", buf.String())

	buf.Reset()
	require.NoError(t, formatter.Success(countResult{Count: 2}))
	assert.Equal(t, "2 resources\n", buf.String())

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Success(countResult{Count: 2}))
	assert.Equal(t, "2 resources\n(verbose)\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error(ErrCodeSource, "source unreadable", []string{"model.nt"}))
			assert.Contains(t, buf.String(), "Error [E005]: source unreadable")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: [model.nt]")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}

	formatter.VerboseLog("opened %s", "model.db")
	assert.Empty(t, out.String())
	assert.Equal(t, "opened model.db\n", diag.String())

	formatter.Verbose = false
	formatter.VerboseLog("ignored")
	assert.Equal(t, "opened model.db\n", diag.String())

	formatter = &OutputFormatter{Format: "text", Writer: out, Verbose: true}
	formatter.VerboseLog("to stdout")
	assert.Equal(t, "to stdout\n", out.String())
}

func TestExitErrors(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to save journal", inner)

	assert.Equal(t, "failed to save journal: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("apply: %w", err)))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "digest mismatch")))
	assert.Equal(t, ExitFailure, GetExitCode(inner))
	assert.Equal(t, "digest mismatch", NewExitError(ExitFailure, "digest mismatch").Error())
}
