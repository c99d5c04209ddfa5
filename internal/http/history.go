package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

const maxHistoryLimit = 200

type HistoryController struct {
	history HistoryReader
}

func NewHistoryController(history HistoryReader) *HistoryController {
	return &HistoryController{history: history}
}

// List returns recorded events, newest first. Accepts ?type=import|edit,
// ?limit= and ?offset=.
func (c *HistoryController) List(ctx *gin.Context) {
	eventType := entities.AuditEventType(ctx.Query("type"))
	switch eventType {
	case "", entities.AuditEventImport, entities.AuditEventEdit:
	default:
		respondBadRequest(ctx, "unknown event type: "+string(eventType))
		return
	}

	limit, err := queryInt(ctx, "limit", 50)
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		respondBadRequest(ctx, "limit must be between 1 and 200")
		return
	}
	offset, err := queryInt(ctx, "offset", 0)
	if err != nil || offset < 0 {
		respondBadRequest(ctx, "offset must be a non-negative integer")
		return
	}

	events, total, err := c.history.GetEvents(ctx.Request.Context(), eventType, limit, offset)
	if err != nil {
		respondLibraryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func queryInt(ctx *gin.Context, key string, fallback int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
