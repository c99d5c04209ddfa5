package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/highlights-keeper/internal/audit"
	"github.com/mrlokans/highlights-keeper/internal/database"
	"github.com/mrlokans/highlights-keeper/internal/database/highlights"
	"github.com/mrlokans/highlights-keeper/internal/exporters"
	"github.com/mrlokans/highlights-keeper/internal/http"
	"github.com/mrlokans/highlights-keeper/internal/library"
	"github.com/mrlokans/highlights-keeper/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Store implementations
var _ library.Store = (*highlights.Repository)(nil)

// =============================================================================
// Library Consumers
// =============================================================================

// HTTP controllers
var _ http.Library = (*library.Service)(nil)
var _ http.MarkdownRenderer = (*exporters.LibraryExporter)(nil)
var _ http.Pinger = (*database.Database)(nil)

// History
var _ http.HistoryReader = (*audit.Service)(nil)
var _ library.Recorder = (*audit.Service)(nil)
var _ library.Snapshotter = (*audit.Snapshotter)(nil)

// Export
var _ exporters.HighlightSource = (*library.Service)(nil)
var _ exporters.BookExporter = (*exporters.MarkdownExporter)(nil)

// Scheduler
var _ scheduler.Importer = (*library.Service)(nil)
var _ scheduler.Exporter = (*exporters.LibraryExporter)(nil)
