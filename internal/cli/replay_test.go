package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/store"
	"github.com/roach88/schemagraph/internal/testutil"
)

func TestReplay_EmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")

	out, err := execute(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No operations found")

	out, err = execute(t, "replay", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.True(t, decode[ReplayResult](t, out).Data.Deterministic)
}

func TestReplay_AfterEdits(t *testing.T) {
	db, bindings := applyModel(t)
	_, err := execute(t, "gc", "--db", db, "--schema", bindings["schema"])
	require.NoError(t, err)
	_, err = execute(t, "ingest", "--db", db, "--source", triplesFile, "--root", "https://example.org/s")
	require.NoError(t, err)

	out, err := execute(t, "replay", "--db", db, "--format", "json")
	require.NoError(t, err)
	res := decode[ReplayResult](t, out).Data
	assert.True(t, res.Deterministic)
	assert.Equal(t, 7, res.Operations)
	assert.Equal(t, 8, res.Resources)
	assert.Equal(t, res.SavedDigest, res.ReplayedDigest)

	out, err = execute(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Replayed graph matches the saved graph")
}

func TestReplay_DigestMismatch(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "model.db")
	base := "https://example.org/m"

	j, err := store.OpenJournal(db)
	require.NoError(t, err)
	st := store.New(base, store.WithLogger(testutil.DiscardLogger()))
	schema := testutil.MustCreate(t, st, ir.NewCreatePsmSchema())
	require.NoError(t, j.Save(ctx, st))

	// Save a graph that the log does not produce.
	p := st.Export()
	p.Resources[schema].(*ir.PsmSchema).TechnicalLabel = "forged"
	tampered := store.New(base, store.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, tampered.Import(p))
	require.NoError(t, j.Save(ctx, tampered))
	require.NoError(t, j.Close())

	out, err := execute(t, "replay", "--db", db, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode[ReplayResult](t, out)
	assert.False(t, resp.Data.Deterministic)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDigestMismatch, resp.Error.Code)
}
