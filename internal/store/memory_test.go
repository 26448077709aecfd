package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Insert(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return stamp })

	doc, err := s.Insert(context.Background(), CollectionPosts, map[string]interface{}{
		FieldTitle: "hello",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "hello", doc.Fields[FieldTitle])
	// createdAt is server-assigned, never caller-supplied.
	assert.Equal(t, stamp, doc.Fields[FieldCreatedAt])
}

func TestMemoryStore_Insert_DoesNotAliasCallerMap(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	fields := map[string]interface{}{FieldTitle: "hello"}
	doc, err := s.Insert(context.Background(), CollectionPosts, fields)
	require.NoError(t, err)

	fields[FieldTitle] = "mutated"
	got, err := s.Query(context.Background(), CollectionPosts, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Fields[FieldTitle])
	assert.Equal(t, doc.ID, got[0].ID)
}

func TestMemoryStore_Query(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	for _, userID := range []string{"u1", "u1", "u2"} {
		_, err := s.Insert(ctx, CollectionLikes, map[string]interface{}{
			FieldPostID: "p1",
			FieldUserID: userID,
		})
		require.NoError(t, err)
	}

	t.Run("nil filters match everything", func(t *testing.T) {
		t.Parallel()
		docs, err := s.Query(ctx, CollectionLikes, nil)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("filters are conjoined", func(t *testing.T) {
		t.Parallel()
		docs, err := s.Query(ctx, CollectionLikes, Filters{
			FieldPostID: "p1",
			FieldUserID: "u1",
		})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		t.Parallel()
		docs, err := s.Query(ctx, CollectionLikes, Filters{FieldUserID: "u9"})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("unknown collection yields empty", func(t *testing.T) {
		t.Parallel()
		docs, err := s.Query(ctx, "nonexistent", nil)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	doc, err := s.Insert(ctx, CollectionComments, map[string]interface{}{FieldText: "hi"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, CollectionComments, doc.ID))
	docs, err := s.Query(ctx, CollectionComments, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// Deleting a missing id is not an error.
	assert.NoError(t, s.Delete(ctx, CollectionComments, doc.ID))
	assert.NoError(t, s.Delete(ctx, "nonexistent", "nope"))
}
