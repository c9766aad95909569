package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_Lists(t *testing.T) {
	f := newFixture(t, CachePolicyAlways)
	ctx := context.Background()
	signedUp(t, f, "a@x.com")
	signedUp(t, f, "b@x.com")

	_, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "r.pdf", Content: []byte("hello")})
	require.NoError(t, err)
	_, err = f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "r.pdf", Content: []byte("hello!")})
	require.NoError(t, err)

	users, err := f.admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Identity)
	assert.Equal(t, "b@x.com", users[1].Identity)

	docs, err := f.admin.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	want := []models.DocumentSummary{
		{ID: docs[0].ID, Owner: "a@x.com", Name: "r.pdf", TextLength: 5},
		{ID: docs[1].ID, Owner: "a@x.com", Name: "r.pdf", TextLength: 6},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}
