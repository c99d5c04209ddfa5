package http

import (
	"github.com/mrlokans/highlights-keeper/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  Library
	Markdown MarkdownRenderer
	History  HistoryReader // optional
	Database *database.Database

	// Upload limit for clippings files, in bytes
	MaxUploadBytes int64

	// Application info
	Version string
}
