package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
)

var unsafeFileChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

type MarkdownExporter struct {
	ExportDir string
	Result    ExportResult
	logger    *zap.Logger
	now       func() time.Time
}

func NewMarkdownExporter(exportDir string, logger *zap.Logger) *MarkdownExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkdownExporter{
		ExportDir: exportDir,
		logger:    logger,
		now:       time.Now,
	}
}

// FileName returns the markdown file name used for book.
func FileName(book Book) string {
	name := book.Title
	if book.Author != "" {
		name = fmt.Sprintf("%s (%s)", book.Title, book.Author)
	}
	name = strings.TrimSpace(unsafeFileChars.Replace(name))
	if name == "" {
		name = book.ID
	}
	return name + ".md"
}

// uniqueFileName is FileName, with the book ID appended when another book of
// the same export already took that name. Comparison ignores case.
func uniqueFileName(book Book, taken map[string]bool) string {
	name := FileName(book)
	if taken[strings.ToLower(name)] {
		name = strings.TrimSuffix(name, ".md") + " [" + unsafeFileChars.Replace(book.ID) + "].md"
	}
	taken[strings.ToLower(name)] = true
	return name
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

// GenerateMarkdown renders book with front matter and one blockquote per highlight.
func GenerateMarkdown(book *Book, createdAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "book_id: %s\n", book.ID)
	fmt.Fprintf(&builder, "content_type: book_highlights\n")
	fmt.Fprintf(&builder, "created_at: %s\n", createdAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "title: %s\n", quote(book.Title))
	fmt.Fprintf(&builder, "author: %s\n", quote(book.Author))
	if len(book.Highlights) > 0 {
		if original := book.Highlights[0].OriginalData; original != nil && book.Highlights[0].IsEdited {
			fmt.Fprintf(&builder, "original_title: %s\n", quote(original.Title))
			fmt.Fprintf(&builder, "original_author: %s\n", quote(original.Author))
		}
	}
	fmt.Fprintf(&builder, "tags: [highlights, books]\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "## Highlights\n\n")

	for _, highlight := range book.Highlights {
		heading := highlight.Location
		if ts, ok := clippings.ParseTimestamp(highlight.Timestamp); ok {
			heading = strings.TrimSpace(heading + " " + ts.Format("2006-01-02 15:04"))
		} else if highlight.Timestamp != "" {
			heading = strings.TrimSpace(heading + " " + highlight.Timestamp)
		}
		if heading != "" {
			fmt.Fprintf(&builder, "### %s\n\n", heading)
		}
		fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(highlight.Text, "\n", "\n> "))
	}

	return builder.String()
}

func (exporter *MarkdownExporter) exportBook(book Book, name string) (string, error) {
	outputPath := filepath.Join(exporter.ExportDir, name)
	content := GenerateMarkdown(&book, exporter.now())
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// Export writes one file per book. A book that fails to write is logged and
// counted; the remaining books are still exported.
func (exporter *MarkdownExporter) Export(books []Book) (ExportResult, error) {
	exporter.Result = ExportResult{}

	if err := os.MkdirAll(exporter.ExportDir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	taken := make(map[string]bool, len(books))
	for _, book := range books {
		path, err := exporter.exportBook(book, uniqueFileName(book, taken))
		if err != nil {
			exporter.logger.Warn("failed to export book",
				zap.String("book_id", book.ID), zap.String("title", book.Title), zap.Error(err))
			exporter.Result.BooksFailed++
			continue
		}
		exporter.logger.Debug("exported book", zap.String("book_id", book.ID), zap.String("path", path))
		exporter.Result.BooksProcessed++
		exporter.Result.HighlightsProcessed += len(book.Highlights)
	}

	return exporter.Result, nil
}

var _ BookExporter = (*MarkdownExporter)(nil)
