package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HighlightsController struct {
	reader   HighlightReader
	markdown MarkdownRenderer
}

func NewHighlightsController(reader HighlightReader, markdown MarkdownRenderer) *HighlightsController {
	return &HighlightsController{
		reader:   reader,
		markdown: markdown,
	}
}

// Search handles GET /api/highlights/search?q=. An empty query lists everything.
func (c *HighlightsController) Search(ctx *gin.Context) {
	query := ctx.Query("q")

	highlights, err := c.reader.Search(ctx.Request.Context(), query)
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"query":      query,
		"highlights": highlights,
		"count":      len(highlights),
	})
}

// ForBook handles GET /api/books/:bookId/highlights.
func (c *HighlightsController) ForBook(ctx *gin.Context) {
	bookID := ctx.Param("bookId")

	highlights, err := c.reader.HighlightsForBook(ctx.Request.Context(), bookID)
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}
	if len(highlights) == 0 {
		respondNotFound(ctx, "book")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"bookId":     bookID,
		"highlights": highlights,
		"count":      len(highlights),
	})
}

// Markdown handles GET /api/books/:bookId/markdown.
func (c *HighlightsController) Markdown(ctx *gin.Context) {
	if c.markdown == nil {
		respondNotFound(ctx, "markdown export")
		return
	}

	content, found, err := c.markdown.BookMarkdown(ctx.Request.Context(), ctx.Param("bookId"))
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}
	if !found {
		respondNotFound(ctx, "book")
		return
	}

	ctx.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

