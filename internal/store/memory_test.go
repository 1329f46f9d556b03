package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.InsertOne(ctx, CollectionTask, Document{"title": "one", "status": "pending"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = s.InsertOne(ctx, CollectionTask, Document{"title": "two", "status": "done"})
	require.NoError(t, err)

	all, err := s.Find(ctx, CollectionTask, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, id, all[0]["_id"])

	done, err := s.Find(ctx, CollectionTask, Filter{"status": "done"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "two", done[0]["title"])
}

func TestMemory_FindNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.InsertOne(ctx, CollectionActivity, Document{"message": title})
		require.NoError(t, err)
	}

	docs, err := s.Find(ctx, CollectionActivity, nil, NewestFirst(), Limit(2))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c", docs[0]["message"])
	assert.Equal(t, "b", docs[1]["message"])
}

func TestMemory_FindOneAndUpdate_MergesPatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.InsertOne(ctx, CollectionTask, Document{
		"title":    "keep me",
		"status":   "pending",
		"priority": "high",
	})
	require.NoError(t, err)

	updated, err := s.FindOneAndUpdate(ctx, CollectionTask, id, Document{"status": "done"})
	require.NoError(t, err)
	assert.Equal(t, "done", updated["status"])
	assert.Equal(t, "keep me", updated["title"])
	assert.Equal(t, "high", updated["priority"])
}

func TestMemory_FindOneAndUpdate_ExplicitNullClearsField(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.InsertOne(ctx, CollectionTask, Document{"title": "t", "due_date": "2026-09-01T00:00:00Z"})
	require.NoError(t, err)

	updated, err := s.FindOneAndUpdate(ctx, CollectionTask, id, Document{"due_date": nil})
	require.NoError(t, err)
	assert.Contains(t, updated, "due_date")
	assert.Nil(t, updated["due_date"])
}

func TestMemory_FindOneAndUpdate_Errors(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.FindOneAndUpdate(ctx, CollectionTask, "not-an-id", Document{"status": "done"})
	assert.True(t, errors.Is(err, ErrInvalidID))

	_, err = s.FindOneAndUpdate(ctx, CollectionTask, "0b862a38-4b25-4c2a-9d2e-6c9a1a3f1b70", Document{"status": "done"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemory_FindOneAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.InsertOne(ctx, CollectionNote, Document{"title": "gone"})
	require.NoError(t, err)

	deleted, err := s.FindOneAndDelete(ctx, CollectionNote, id)
	require.NoError(t, err)
	assert.Equal(t, "gone", deleted["title"])

	_, err = s.FindOneAndDelete(ctx, CollectionNote, id)
	assert.True(t, errors.Is(err, ErrNotFound))

	docs, err := s.Find(ctx, CollectionNote, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemory_InsertManyAndListCollections(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	ids, err := s.InsertMany(ctx, CollectionNote, []Document{
		{"title": "one"},
		{"title": "two"},
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = s.InsertOne(ctx, CollectionTask, Document{"title": "t"})
	require.NoError(t, err)

	names, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{CollectionNote, CollectionTask}, names)
}
