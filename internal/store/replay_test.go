package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/testutil"
)

func TestReplay_ReproducesGraphWithoutOriginalAllocator(t *testing.T) {
	s := buildMixedStore(t)

	// A fresh sequential allocator would hand out the same IRIs again; a
	// different base proves identities come from the log.
	replayed, err := Replay(context.Background(), testBase, s.Operations(),
		WithAllocator(testutil.NewSequentialAllocator("https://elsewhere.example/")),
		WithLogger(testutil.DiscardLogger()),
	)
	require.NoError(t, err)

	if diff := cmp.Diff(s.Resources(), replayed.Resources()); diff != "" {
		t.Errorf("replayed graph differs (-want +got):\n%s", diff)
	}
	original := s.Operations()
	got := replayed.Operations()
	require.Len(t, got, len(original))
	for i := range original {
		assert.Equal(t, original[i].IRI(), got[i].IRI())
		assert.Equal(t, original[i].Parent(), got[i].Parent())
	}
}

func TestReplay_AcceptsShuffledLog(t *testing.T) {
	s := buildMixedStore(t)
	ops := s.Operations()
	shuffled := append([]ir.Operation{}, ops[len(ops)/2:]...)
	shuffled = append(shuffled, ops[:len(ops)/2]...)

	replayed, err := Replay(context.Background(), testBase, shuffled, WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)

	want, err := s.Digest()
	require.NoError(t, err)
	got, err := replayed.Digest()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOrderOperations(t *testing.T) {
	mk := func(iri, parent string) ir.Operation {
		op := ir.NewCreatePsmSchema()
		op.Relink(iri, parent)
		return op
	}

	tests := []struct {
		name    string
		ops     []ir.Operation
		want    []string
		wantErr bool
	}{
		{name: "empty", ops: nil, want: []string{}},
		{name: "in order", ops: []ir.Operation{mk("a", ""), mk("b", "a"), mk("c", "b")}, want: []string{"a", "b", "c"}},
		{name: "reversed", ops: []ir.Operation{mk("c", "b"), mk("b", "a"), mk("a", "")}, want: []string{"a", "b", "c"}},
		{name: "fork", ops: []ir.Operation{mk("a", ""), mk("b", "a"), mk("c", "a")}, wantErr: true},
		{name: "missing head", ops: []ir.Operation{mk("b", "a"), mk("c", "b")}, wantErr: true},
		{name: "duplicate", ops: []ir.Operation{mk("a", ""), mk("a", "")}, wantErr: true},
		{name: "no iri", ops: []ir.Operation{mk("", "")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderOperations(tt.ops)
			if tt.wantErr {
				var ce *ChainError
				require.ErrorAs(t, err, &ce)
				return
			}
			require.NoError(t, err)
			iris := []string{}
			for _, op := range got {
				iris = append(iris, op.IRI())
			}
			assert.Equal(t, tt.want, iris)
		})
	}
}
