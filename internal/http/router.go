package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	var db Pinger
	if cfg.Database != nil {
		db = cfg.Database
	}
	var counter HighlightCounter
	if cfg.Library != nil {
		counter = cfg.Library
	}
	health := NewHealthController(db, counter, cfg.Version)
	importer := NewImportController(cfg.Library, cfg.MaxUploadBytes)
	titles := NewTitlesController(cfg.Library)
	highlights := NewHighlightsController(cfg.Library, cfg.Markdown)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/parse", importer.Parse)
		api.POST("/import", importer.Import)
		api.GET("/import/status", importer.Status)

		api.GET("/titles", titles.List)
		api.PUT("/titles", titles.Edit)

		api.GET("/highlights/search", highlights.Search)
		api.GET("/books/:bookId/highlights", highlights.ForBook)
		api.GET("/books/:bookId/markdown", highlights.Markdown)

		if cfg.History != nil {
			api.GET("/history", NewHistoryController(cfg.History).List)
		}
	}

	return router
}
