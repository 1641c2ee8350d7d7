package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var triplesFile = filepath.Join("..", "ingest", "testdata", "schema.nt")

func TestIngest_File(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")

	out, err := execute(t, "ingest", "--db", db, "--source", triplesFile, "--root", "https://example.org/s", "--format", "json")
	require.NoError(t, err)
	res := decode[IngestResult](t, out).Data
	assert.Equal(t, 5, res.Loaded)
	assert.Equal(t, 5, res.Created)
	assert.Equal(t, []string{"https://example.org/mystery", "https://example.org/widget"}, res.Missing)
	assert.NotEmpty(t, res.Operation)

	out, err = execute(t, "show", "--db", db, "--type", "psm/Class", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/address", "https://example.org/person"}, decode[ShowResult](t, out).Data.Resources)
}

func TestIngest_TwiceUpdates(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	args := []string{"ingest", "--db", db, "--source", triplesFile, "--root", "https://example.org/s"}

	_, err := execute(t, args...)
	require.NoError(t, err)
	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "5 resources (0 created, 5 changed)")
	assert.Contains(t, out, "2 referenced resources were not found")
}

func TestIngest_HTTPSource(t *testing.T) {
	data, err := os.ReadFile(triplesFile)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/n-triples")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	db := filepath.Join(t.TempDir(), "model.db")
	out, err := execute(t, "ingest", "--db", db, "--source", srv.URL+"/model.nt", "--root", "https://example.org/s", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 5, decode[IngestResult](t, out).Data.Loaded)
}

func TestIngest_ConfiguredSources(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")
	abs, err := filepath.Abs(triplesFile)
	require.NoError(t, err)
	cfg := writeFile(t, "config.cue", `sources: ["`+abs+`"]`)

	out, err := execute(t, "ingest", "--config", cfg, "--db", db, "--root", "https://example.org/s", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, decode[IngestResult](t, out).Data.Sources)
}

func TestIngest_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "model.db")

	_, err := execute(t, "ingest", "--db", db, "--root", "https://example.org/s")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no sources")

	_, err = execute(t, "ingest", "--db", db, "--source", filepath.Join(t.TempDir(), "missing.nt"), "--root", "https://example.org/s")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load sources")
}
