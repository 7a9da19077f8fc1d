package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/storage"
)

func TestPutGet_RoundTrips(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "t1", "User", "u1", map[string]any{"userName": "jdoe"}))

	doc, ok, err := s.Get(ctx, "t1", "User", "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jdoe", doc["userName"])
}

func TestGet_AbsentReturnsNotOK(t *testing.T) {
	s := New()
	_, ok, err := s.Get(context.Background(), "t1", "User", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_DoesNotAliasStoredDocument(t *testing.T) {
	s := New()
	ctx := context.Background()
	original := map[string]any{"userName": "jdoe"}
	require.NoError(t, s.Put(ctx, "t1", "User", "u1", original))

	doc, _, err := s.Get(ctx, "t1", "User", "u1")
	require.NoError(t, err)
	doc["userName"] = "mutated"

	reread, _, err := s.Get(ctx, "t1", "User", "u1")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", reread["userName"])
}

func TestDelete_ReportsExistence(t *testing.T) {
	s := New()
	ctx := context.Background()
	existed, err := s.Delete(ctx, "t1", "User", "missing")
	require.NoError(t, err)
	assert.False(t, existed)

	require.NoError(t, s.Put(ctx, "t1", "User", "u1", map[string]any{}))
	existed, err = s.Delete(ctx, "t1", "User", "u1")
	require.NoError(t, err)
	assert.True(t, existed)

	_, ok, _ := s.Get(ctx, "t1", "User", "u1")
	assert.False(t, ok)
}

func TestList_PaginatesAndSortsByID(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, id := range []string{"u3", "u1", "u2"} {
		require.NoError(t, s.Put(ctx, "t1", "User", id, map[string]any{"id": id}))
	}

	page, total, err := s.List(ctx, "t1", "User", storage.Query{StartIndex: 1, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "u2", page[0]["id"])
	assert.Equal(t, "u3", page[1]["id"])
}

func TestList_IsolatedByTenantAndResourceType(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "t1", "User", "u1", map[string]any{"id": "u1"}))
	require.NoError(t, s.Put(ctx, "t2", "User", "u2", map[string]any{"id": "u2"}))
	require.NoError(t, s.Put(ctx, "t1", "Group", "g1", map[string]any{"id": "g1"}))

	page, total, err := s.List(ctx, "t1", "User", storage.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "u1", page[0]["id"])
}

func TestFindByAttributeValue(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "t1", "User", "u1", map[string]any{"userName": "jdoe"}))

	doc, ok, err := s.FindByAttributeValue(ctx, "t1", "User", "userName", "jdoe")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jdoe", doc["userName"])

	_, ok, err = s.FindByAttributeValue(ctx, "t1", "User", "userName", "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExists(t *testing.T) {
	s := New()
	ctx := context.Background()
	ok, err := s.Exists(ctx, "t1", "User", "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "t1", "User", "u1", map[string]any{}))
	ok, err = s.Exists(ctx, "t1", "User", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}
