package library

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
	"github.com/mrlokans/highlights-keeper/internal/entities"
)

// imported builds a highlight the way the parser does.
func imported(title, author, location, text, timestamp string) entities.Highlight {
	bookID := clippings.BookID(title, author)
	return entities.Highlight{
		ID:           clippings.HighlightID(bookID, location),
		BookID:       bookID,
		Title:        title,
		Author:       author,
		Text:         text,
		Location:     location,
		Timestamp:    timestamp,
		OriginalData: &entities.OriginalData{Title: title, Author: author},
	}
}

func edited(h entities.Highlight, title, author string) entities.Highlight {
	h.Title = title
	h.Author = author
	h.IsEdited = true
	return h
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected entities.MergePolicy
		wantErr  bool
	}{
		{"", "", false},
		{"merge", entities.MergePolicyMerge, false},
		{"Overwrite", entities.MergePolicyOverwrite, false},
		{" merge ", entities.MergePolicyMerge, false},
		{"append", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			policy, err := ParsePolicy(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy)
		})
	}
}

func TestMerger_Overwrite_ReplacesEverything(t *testing.T) {
	a1 := imported("Dune", "Frank Herbert", "1", "a1", "2024-01-01")
	a2 := imported("Dune", "Frank Herbert", "2", "a2", "2024-01-02")
	b1 := imported("Foundation", "Isaac Asimov", "7", "b1", "2024-02-01")

	store := newMemStore()
	merger := NewMerger(store, nil)
	ctx := context.Background()

	_, err := merger.Apply(ctx, []entities.Highlight{a1, a2}, entities.MergePolicyOverwrite)
	require.NoError(t, err)

	result, err := merger.Apply(ctx, []entities.Highlight{b1}, entities.MergePolicyOverwrite)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b1.ID, all[0].ID)
}

func TestMerger_Merge_PreservesEdits(t *testing.T) {
	original := imported("Dune", "Frank Herbert", "1", "old text", "2024-01-01")
	stored := edited(original, "Custom", "Someone Else")

	store := newMemStore(stored)
	merger := NewMerger(store, nil)

	reimported := imported("Dune", "Frank Herbert", "1", "new text", "2024-05-05")
	require.Equal(t, stored.ID, reimported.ID)

	result, err := merger.Apply(context.Background(), []entities.Highlight{reimported}, entities.MergePolicyMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.PreservedEdits)

	got, ok := store.get(stored.ID)
	require.True(t, ok)
	assert.Equal(t, "Custom", got.Title)
	assert.Equal(t, "Someone Else", got.Author)
	assert.True(t, got.IsEdited)
	assert.Equal(t, "new text", got.Text)
	assert.Equal(t, "2024-05-05", got.Timestamp)
	require.NotNil(t, got.OriginalData)
	assert.Equal(t, "Dune", got.OriginalData.Title)
}

func TestMerger_Merge_UneditedIsFullyReplaced(t *testing.T) {
	stored := imported("Dune", "Frank Herbert", "1", "old text", "2024-01-01")
	store := newMemStore(stored)

	incoming := stored
	incoming.Text = "new text"
	incoming.Timestamp = "2024-06-06"
	incoming.Title = "Dune (Deluxe Edition)"
	incoming.Author = "F. Herbert"
	incoming.OriginalData = &entities.OriginalData{Title: "Dune (Deluxe Edition)", Author: "F. Herbert"}

	result, err := NewMerger(store, nil).Apply(context.Background(), []entities.Highlight{incoming}, entities.MergePolicyMerge)
	require.NoError(t, err)
	assert.Zero(t, result.PreservedEdits)

	got, _ := store.get(stored.ID)
	assert.Equal(t, incoming, got)
}

func TestMerger_Merge_InsertsNewAndKeepsUntouched(t *testing.T) {
	kept := imported("Foundation", "Isaac Asimov", "7", "kept", "2024-02-01")
	store := newMemStore(kept)

	fresh := imported("Dune", "Frank Herbert", "1", "fresh", "2024-01-01")
	result, err := NewMerger(store, nil).Apply(context.Background(), []entities.Highlight{fresh}, entities.MergePolicyMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Zero(t, result.Updated)

	count, _ := store.Count(context.Background())
	assert.Equal(t, int64(2), count)
	_, ok := store.get(kept.ID)
	assert.True(t, ok)
}

func TestMerger_Merge_EditsSurviveRepeatedImports(t *testing.T) {
	stored := edited(imported("Dune", "Frank Herbert", "1", "v1", "2024-01-01"), "Custom", "Me")
	store := newMemStore(stored)
	merger := NewMerger(store, nil)

	for _, text := range []string{"v2", "v3", "v4"} {
		_, err := merger.Apply(context.Background(),
			[]entities.Highlight{imported("Dune", "Frank Herbert", "1", text, "2024-01-01")},
			entities.MergePolicyMerge)
		require.NoError(t, err)
	}

	got, _ := store.get(stored.ID)
	assert.Equal(t, "Custom", got.Title)
	assert.Equal(t, "v4", got.Text)
	assert.True(t, got.IsEdited)
}

func TestMerger_CollapsesDuplicateIDs(t *testing.T) {
	first := imported("Dune", "Frank Herbert", "1", "first", "2024-01-01")
	other := imported("Dune", "Frank Herbert", "2", "other", "2024-01-01")
	last := imported("Dune", "Frank Herbert", "1", "last", "2024-01-03")

	store := newMemStore()
	result, err := NewMerger(store, nil).Apply(context.Background(),
		[]entities.Highlight{first, other, last}, entities.MergePolicyOverwrite)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	require.Len(t, store.putManyCalls, 1)
	written := store.putManyCalls[0]
	require.Len(t, written, 2)
	assert.Equal(t, "last", written[0].Text)
	assert.Equal(t, "other", written[1].Text)
}

func TestMerger_WritesInBatchOrder(t *testing.T) {
	batch := []entities.Highlight{
		imported("Z", "A", "3", "z", ""),
		imported("A", "A", "1", "a", ""),
		imported("M", "A", "2", "m", ""),
	}
	store := newMemStore(imported("Other", "B", "9", "x", ""))

	_, err := NewMerger(store, nil).Apply(context.Background(), batch, entities.MergePolicyMerge)
	require.NoError(t, err)

	require.Len(t, store.putManyCalls, 1)
	for i, h := range store.putManyCalls[0] {
		assert.Equal(t, batch[i].ID, h.ID)
	}
}

func TestMerger_StorageFailures(t *testing.T) {
	batch := []entities.Highlight{imported("Dune", "Frank Herbert", "1", "t", "")}

	t.Run("clear fails", func(t *testing.T) {
		store := newMemStore()
		store.failClear = true
		_, err := NewMerger(store, nil).Apply(context.Background(), batch, entities.MergePolicyOverwrite)
		assert.True(t, errors.Is(err, errInjected))
	})

	t.Run("put many fails after clear", func(t *testing.T) {
		store := newMemStore(imported("Old", "X", "1", "old", ""))
		store.failPutMany = true
		_, err := NewMerger(store, nil).Apply(context.Background(), batch, entities.MergePolicyOverwrite)
		assert.True(t, errors.Is(err, errInjected))

		// partial write: the clear is not rolled back
		count, _ := store.Count(context.Background())
		assert.Zero(t, count)
	})

	t.Run("load fails on merge", func(t *testing.T) {
		store := newMemStore()
		store.failGetAll = true
		_, err := NewMerger(store, nil).Apply(context.Background(), batch, entities.MergePolicyMerge)
		assert.True(t, errors.Is(err, errInjected))
	})
}

func TestMerger_UnknownPolicy(t *testing.T) {
	_, err := NewMerger(newMemStore(), nil).Apply(context.Background(), nil, entities.MergePolicy("append"))
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestMergeHighlight_NilExisting(t *testing.T) {
	incoming := imported("Dune", "Frank Herbert", "1", "t", "")
	assert.Equal(t, incoming, MergeHighlight(nil, incoming))
}
