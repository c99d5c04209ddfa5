package exporters

import (
	"context"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

// HighlightSource is the read side of the highlights library.
type HighlightSource interface {
	AllHighlights(ctx context.Context) ([]entities.Highlight, error)
	HighlightsForBook(ctx context.Context, bookID string) ([]entities.Highlight, error)
}

// LibraryExporter renders stored highlights as markdown.
type LibraryExporter struct {
	source   HighlightSource
	markdown *MarkdownExporter
}

func NewLibraryExporter(source HighlightSource, exportDir string, logger *zap.Logger) *LibraryExporter {
	return &LibraryExporter{
		source:   source,
		markdown: NewMarkdownExporter(exportDir, logger),
	}
}

// ExportAll writes every stored book to the export directory.
func (exporter *LibraryExporter) ExportAll(ctx context.Context) (ExportResult, error) {
	highlights, err := exporter.source.AllHighlights(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	return exporter.markdown.Export(GroupByBook(highlights))
}

// BookMarkdown renders one book. The boolean is false when no highlight has bookID.
func (exporter *LibraryExporter) BookMarkdown(ctx context.Context, bookID string) (string, bool, error) {
	highlights, err := exporter.source.HighlightsForBook(ctx, bookID)
	if err != nil {
		return "", false, err
	}
	books := GroupByBook(highlights)
	if len(books) == 0 {
		return "", false, nil
	}
	return GenerateMarkdown(&books[0], exporter.markdown.now()), true, nil
}
