package exporters

import "github.com/mrlokans/highlights-keeper/internal/entities"

type BookExporter interface {
	Export(books []Book) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed      int `json:"books_processed"`
	HighlightsProcessed int `json:"highlights_processed"`
	BooksFailed         int `json:"books_failed"`
}

// Book is the export view of one book: its highlights in storage order.
type Book struct {
	ID         string
	Title      string
	Author     string
	Highlights []entities.Highlight
}

// GroupByBook groups highlights by book ID in first-seen order. The first
// edited highlight of each book supplies its title and author, falling back to
// the first highlight.
func GroupByBook(highlights []entities.Highlight) []Book {
	var books []Book
	index := make(map[string]int)
	fromEdit := make(map[int]bool)

	for _, h := range highlights {
		key := h.BookID
		if key == "" {
			key = "title:" + h.Title
		}
		i, ok := index[key]
		if !ok {
			i = len(books)
			index[key] = i
			books = append(books, Book{ID: h.BookID, Title: h.Title, Author: h.Author})
		}
		if h.IsEdited && !fromEdit[i] {
			books[i].Title, books[i].Author = h.Title, h.Author
			fromEdit[i] = true
		}
		books[i].Highlights = append(books[i].Highlights, h)
	}
	return books
}
