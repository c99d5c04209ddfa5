package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-keeper/internal/library"
)

type TitlesController struct {
	store TitleStore
}

func NewTitlesController(store TitleStore) *TitlesController {
	return &TitlesController{store: store}
}

type EditTitleRequest struct {
	BookID        string `json:"book_id" binding:"required_without=OriginalTitle"`
	OriginalTitle string `json:"original_title" binding:"required_without=BookID"`
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author"`
}

// List returns the per-book titles table, sorted by ?sort= and ?order=.
func (c *TitlesController) List(ctx *gin.Context) {
	field, order, err := library.ParseSort(ctx.Query("sort"), ctx.Query("order"))
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	titles, err := c.store.LoadTitles(ctx.Request.Context())
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}
	library.SortTitles(titles, field, order)

	ctx.JSON(http.StatusOK, gin.H{
		"titles": titles,
		"count":  len(titles),
	})
}

// Edit renames every highlight of book_id, or every highlight currently
// carrying original_title when no book_id is given.
func (c *TitlesController) Edit(ctx *gin.Context) {
	var req EditTitleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request: "+err.Error())
		return
	}

	var updated int
	var err error
	if req.BookID != "" {
		updated, err = c.store.EditBook(ctx.Request.Context(), req.BookID, req.Title, req.Author)
	} else {
		updated, err = c.store.EditHighlightGroup(ctx.Request.Context(), req.OriginalTitle, req.Title, req.Author)
	}
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}
