package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-keeper/internal/entities"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

const defaultMaxUploadBytes = 10 * 1024 * 1024 // 10 MB

type ImportController struct {
	importer Importer
	maxBytes int64
}

func NewImportController(importer Importer, maxBytes int64) *ImportController {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &ImportController{
		importer: importer,
		maxBytes: maxBytes,
	}
}

type ParsePreview struct {
	Highlights []entities.Highlight `json:"highlights"`
	Count      int                  `json:"count"`
	Sections   int                  `json:"sections"`
	Skipped    int                  `json:"skipped"`
}

type ImportResponse struct {
	Success bool `json:"success"`
	library.ImportResult
	Skipped int `json:"skipped"`
}

// readUpload parses the clippings_file form field. It writes the error response
// itself and returns false on failure.
func (c *ImportController) readUpload(ctx *gin.Context) (*ParsePreview, bool) {
	file, header, err := ctx.Request.FormFile("clippings_file")
	if err != nil {
		respondBadRequest(ctx, "Clippings file not provided")
		return nil, false
	}
	defer file.Close()

	if header.Size > c.maxBytes {
		respondError(ctx, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large (max %d MB)", c.maxBytes/(1024*1024)), CodeFileTooLarge)
		return nil, false
	}

	result, err := c.importer.Parse(io.LimitReader(file, c.maxBytes))
	if err != nil {
		respondLibraryError(ctx, err)
		return nil, false
	}

	highlights := result.Highlights
	if highlights == nil {
		highlights = []entities.Highlight{}
	}
	return &ParsePreview{
		Highlights: highlights,
		Count:      len(highlights),
		Sections:   result.Sections,
		Skipped:    result.Skipped,
	}, true
}

// Parse previews an upload without storing anything.
func (c *ImportController) Parse(ctx *gin.Context) {
	preview, ok := c.readUpload(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, preview)
}

// Import stores an upload. When highlights already exist and no policy form
// value is sent, it answers 409 with code needs_confirmation.
func (c *ImportController) Import(ctx *gin.Context) {
	preview, ok := c.readUpload(ctx)
	if !ok {
		return
	}

	policy := entities.MergePolicy(ctx.PostForm("policy"))
	result, err := c.importer.Import(ctx.Request.Context(), preview.Highlights, policy)
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ImportResponse{
		Success:      true,
		ImportResult: result,
		Skipped:      preview.Skipped,
	})
}

// Status reports whether an import will need a merge policy.
func (c *ImportController) Status(ctx *gin.Context) {
	exists, err := c.importer.HasHighlights(ctx.Request.Context())
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"has_highlights": exists})
}
