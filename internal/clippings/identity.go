package clippings

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	bookIDPrefix      = "book_"
	highlightIDPrefix = "highlight_"
	bookKeySeparator  = "|"
)

// BookID derives the book identifier from title and author. It folds the
// lowercased "title|author" key with a 31-multiplier rolling hash over UTF-16
// code units, wrapped to a signed 32-bit integer, and renders |hash| in base 36.
func BookID(title, author string) string {
	key := strings.ToLower(title) + bookKeySeparator + strings.ToLower(author)

	var hash int32
	for _, unit := range utf16.Encode([]rune(key)) {
		hash = hash*31 + int32(unit)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return bookIDPrefix + strconv.FormatInt(abs, 36)
}

// HighlightID derives the highlight identifier from a book ID and the raw location token.
func HighlightID(bookID, location string) string {
	return highlightIDPrefix + bookID + "_" + stripNonAlphanumeric(location)
}

func stripNonAlphanumeric(s string) string {
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			result.WriteRune(r)
		}
	}
	return result.String()
}
