package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
	"github.com/mrlokans/highlights-keeper/internal/entities"
)

// AggregateTitles groups highlights by book ID, in the order each book is first
// seen. The first edited highlight of a group supplies the displayed title and
// author, falling back to the first highlight. A group counts as edited when any
// of its highlights is.
func AggregateTitles(highlights []entities.Highlight) []entities.Title {
	titles := []entities.Title{}
	positions := make(map[string]int)
	fromEdit := []bool{}

	for _, h := range highlights {
		key := groupKey(h)
		i, ok := positions[key]
		if !ok {
			titles = append(titles, entities.Title{
				BookID: h.BookID,
				Title:  h.Title,
				Author: h.Author,
			})
			fromEdit = append(fromEdit, false)
			i = len(titles) - 1
			positions[key] = i
		}

		title := &titles[i]
		title.HighlightCount++
		if h.IsEdited {
			title.IsEdited = true
			if !fromEdit[i] {
				title.Title, title.Author = h.Title, h.Author
				fromEdit[i] = true
			}
		}
		if ts, ok := clippings.ParseTimestamp(h.Timestamp); ok {
			if title.LastHighlightDate == nil || ts.After(*title.LastHighlightDate) {
				title.LastHighlightDate = &ts
			}
		}
	}

	return titles
}

// Records written before book IDs existed have none; group those by title.
func groupKey(h entities.Highlight) string {
	if h.BookID != "" {
		return h.BookID
	}
	return "title:" + h.Title
}

type SortField string

const (
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
	SortByCount  SortField = "count"
	SortByDate   SortField = "date"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSort validates sort parameters. Empty values default to title, ascending.
func ParseSort(field, order string) (SortField, SortOrder, error) {
	f := SortField(strings.ToLower(field))
	switch f {
	case "":
		f = SortByTitle
	case SortByTitle, SortByAuthor, SortByCount, SortByDate:
	default:
		return "", "", fmt.Errorf("invalid sort field %q", field)
	}

	o := SortOrder(strings.ToLower(order))
	switch o {
	case "":
		o = SortAsc
	case SortAsc, SortDesc:
	default:
		return "", "", fmt.Errorf("invalid sort order %q", order)
	}
	return f, o, nil
}

// SortTitles sorts titles in place. Equal elements keep their relative order.
// Titles without a date sort before dated ones in ascending order.
func SortTitles(titles []entities.Title, field SortField, order SortOrder) {
	compare := func(a, b entities.Title) int {
		switch field {
		case SortByAuthor:
			return cmp.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		case SortByCount:
			return cmp.Compare(a.HighlightCount, b.HighlightCount)
		case SortByDate:
			return compareDates(a, b)
		default:
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	}

	slices.SortStableFunc(titles, func(a, b entities.Title) int {
		if order == SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func compareDates(a, b entities.Title) int {
	switch {
	case a.LastHighlightDate == nil && b.LastHighlightDate == nil:
		return 0
	case a.LastHighlightDate == nil:
		return -1
	case b.LastHighlightDate == nil:
		return 1
	default:
		return a.LastHighlightDate.Compare(*b.LastHighlightDate)
	}
}
