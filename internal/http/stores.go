package http

import (
	"context"
	"io"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
	"github.com/mrlokans/highlights-keeper/internal/entities"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

// This file consolidates the library interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// Importer parses and stores uploaded clippings files.
type Importer interface {
	Parse(r io.Reader) (*clippings.ParseResult, error)
	Import(ctx context.Context, batch []entities.Highlight, policy entities.MergePolicy) (library.ImportResult, error)
	HasHighlights(ctx context.Context) (bool, error)
}

// TitleStore backs the titles table.
type TitleStore interface {
	LoadTitles(ctx context.Context) ([]entities.Title, error)
	EditHighlightGroup(ctx context.Context, originalTitle, newTitle, newAuthor string) (int, error)
	EditBook(ctx context.Context, bookID, newTitle, newAuthor string) (int, error)
}

// HighlightReader provides read access to highlights.
type HighlightReader interface {
	Search(ctx context.Context, query string) ([]entities.Highlight, error)
	HighlightsForBook(ctx context.Context, bookID string) ([]entities.Highlight, error)
}

// MarkdownRenderer renders one book as markdown.
type MarkdownRenderer interface {
	BookMarkdown(ctx context.Context, bookID string) (string, bool, error)
}

// HistoryReader lists recorded imports and edits.
type HistoryReader interface {
	GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Library combines all library capabilities for wiring and tests.
type Library interface {
	HighlightCounter
	Importer
	TitleStore
	HighlightReader
}
