package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

func TestAggregateTitles_Counts(t *testing.T) {
	highlights := []entities.Highlight{
		imported("Dune", "Frank Herbert", "1", "a", "2024-01-01T10:00:00Z"),
		imported("Foundation", "Isaac Asimov", "1", "b", "2023-05-01"),
		imported("Dune", "Frank Herbert", "2", "c", "2024-03-15T08:30:00Z"),
		imported("Dune", "Frank Herbert", "3", "d", "2024-02-01"),
		imported("Foundation", "Isaac Asimov", "2", "e", "2023-07-04 12:00:00"),
	}

	titles := AggregateTitles(highlights)
	require.Len(t, titles, 2)

	dune := titles[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Frank Herbert", dune.Author)
	assert.Equal(t, 3, dune.HighlightCount)
	require.NotNil(t, dune.LastHighlightDate)
	assert.True(t, dune.LastHighlightDate.Equal(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)))

	foundation := titles[1]
	assert.Equal(t, "Foundation", foundation.Title)
	assert.Equal(t, 2, foundation.HighlightCount)
	require.NotNil(t, foundation.LastHighlightDate)
	assert.Equal(t, time.July, foundation.LastHighlightDate.Month())
}

func TestAggregateTitles_KeysOnBookID(t *testing.T) {
	// two distinct books that an edit made share a display title
	a := edited(imported("Dune", "Frank Herbert", "1", "a", ""), "Classics", "Various")
	b := edited(imported("Foundation", "Isaac Asimov", "1", "b", ""), "Classics", "Various")

	titles := AggregateTitles([]entities.Highlight{a, b})
	require.Len(t, titles, 2)
	assert.Equal(t, "Classics", titles[0].Title)
	assert.Equal(t, "Classics", titles[1].Title)
	assert.NotEqual(t, titles[0].BookID, titles[1].BookID)
}

func TestAggregateTitles_EditedHighlightIsRepresentative(t *testing.T) {
	// a merge after an edit adds highlights that still carry the imported title
	first := imported("Dune", "Frank Herbert", "0", "a", "")
	second := edited(imported("Dune", "Frank Herbert", "1", "b", ""), "Dune!", "FH")
	third := edited(imported("Dune", "Frank Herbert", "2", "c", ""), "Dune!", "FH")

	titles := AggregateTitles([]entities.Highlight{first, second, third})
	require.Len(t, titles, 1)
	assert.Equal(t, "Dune!", titles[0].Title)
	assert.Equal(t, "FH", titles[0].Author)
	assert.Equal(t, 3, titles[0].HighlightCount)
	// any edited member marks the group
	assert.True(t, titles[0].IsEdited)
}

func TestAggregateTitles_FirstHighlightWithoutEdits(t *testing.T) {
	legacy := imported("Dune", "Frank Herbert", "1", "a", "")
	renamed := legacy
	renamed.ID, renamed.Location, renamed.Title = "h2", "2", "Dune (typo fixed upstream)"

	titles := AggregateTitles([]entities.Highlight{legacy, renamed})
	require.Len(t, titles, 1)
	assert.Equal(t, "Dune", titles[0].Title)
	assert.False(t, titles[0].IsEdited)
}

func TestAggregateTitles_UnparseableDates(t *testing.T) {
	titles := AggregateTitles([]entities.Highlight{
		imported("Dune", "Frank Herbert", "1", "a", ""),
		imported("Dune", "Frank Herbert", "2", "b", "sometime"),
	})
	require.Len(t, titles, 1)
	assert.Nil(t, titles[0].LastHighlightDate)
	assert.Equal(t, 2, titles[0].HighlightCount)
}

func TestAggregateTitles_LegacyRecordsWithoutBookID(t *testing.T) {
	titles := AggregateTitles([]entities.Highlight{
		{ID: "1", Title: "Old"},
		{ID: "2", Title: "Old"},
		{ID: "3", Title: "Older"},
	})
	require.Len(t, titles, 2)
	assert.Equal(t, 2, titles[0].HighlightCount)
}

func TestAggregateTitles_Empty(t *testing.T) {
	titles := AggregateTitles(nil)
	assert.NotNil(t, titles)
	assert.Empty(t, titles)
}

func TestParseSort(t *testing.T) {
	field, order, err := ParseSort("", "")
	require.NoError(t, err)
	assert.Equal(t, SortByTitle, field)
	assert.Equal(t, SortAsc, order)

	field, order, err = ParseSort("COUNT", "desc")
	require.NoError(t, err)
	assert.Equal(t, SortByCount, field)
	assert.Equal(t, SortDesc, order)

	_, _, err = ParseSort("color", "asc")
	assert.Error(t, err)
	_, _, err = ParseSort("title", "sideways")
	assert.Error(t, err)
}

func TestSortTitles(t *testing.T) {
	day := func(d int) *time.Time {
		ts := time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	titles := func() []entities.Title {
		return []entities.Title{
			{Title: "dune", Author: "Herbert", HighlightCount: 3, LastHighlightDate: day(5)},
			{Title: "Brave New World", Author: "huxley", HighlightCount: 1},
			{Title: "Catch-22", Author: "Heller", HighlightCount: 3, LastHighlightDate: day(2)},
		}
	}
	names := func(ts []entities.Title) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.Title)
		}
		return out
	}

	byTitle := titles()
	SortTitles(byTitle, SortByTitle, SortAsc)
	assert.Equal(t, []string{"Brave New World", "Catch-22", "dune"}, names(byTitle))

	byAuthorDesc := titles()
	SortTitles(byAuthorDesc, SortByAuthor, SortDesc)
	assert.Equal(t, []string{"Brave New World", "dune", "Catch-22"}, names(byAuthorDesc))

	byCount := titles()
	SortTitles(byCount, SortByCount, SortAsc)
	assert.Equal(t, []string{"Brave New World", "dune", "Catch-22"}, names(byCount))

	byDate := titles()
	SortTitles(byDate, SortByDate, SortAsc)
	assert.Equal(t, []string{"Brave New World", "Catch-22", "dune"}, names(byDate))

	byDateDesc := titles()
	SortTitles(byDateDesc, SortByDate, SortDesc)
	assert.Equal(t, []string{"dune", "Catch-22", "Brave New World"}, names(byDateDesc))
}
