package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HighlightCounter reports the size of the collection.
type HighlightCounter interface {
	CountHighlights(ctx context.Context) (int64, error)
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version,omitempty"`
	Highlights *int64            `json:"highlights,omitempty"`
	Checks     map[string]string `json:"checks"`
}

type HealthController struct {
	db      Pinger
	library HighlightCounter
	version string
	started time.Time
}

// NewHealthController accepts nil for either dependency; the matching check is
// then reported as not configured.
func NewHealthController(db Pinger, library HighlightCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		library: library,
		version: version,
		started: time.Now(),
	}
}

// Status answers 200 when every configured check passes, 503 otherwise.
func (h *HealthController) Status(c *gin.Context) {
	ctx := c.Request.Context()
	response := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Version: h.version,
		Checks:  map[string]string{"database": "not configured", "library": "not configured"},
	}

	fail := func(check string, err error) {
		response.Checks[check] = "error: " + err.Error()
		response.Status = "unhealthy"
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			fail("database", err)
		} else {
			response.Checks["database"] = "ok"
		}
	}

	if h.library != nil {
		if count, err := h.library.CountHighlights(ctx); err != nil {
			fail("library", err)
		} else {
			response.Checks["library"] = "ok"
			response.Highlights = &count
		}
	}

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, response)
}
