// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - Store: keyed and indexed access to highlight records (internal/library/store.go)
//
// ## Library Interfaces
//
//   - Importer, TitleStore, HighlightReader: what HTTP controllers need from the
//     library (internal/http/stores.go)
//   - MarkdownRenderer: single-book markdown for the HTTP API (internal/http/stores.go)
//   - HighlightSource: read side consumed by exporters (internal/exporters/library_markdown.go)
//   - scheduler.Importer, scheduler.Exporter: what the auto-import job drives
//     (internal/scheduler/auto_import.go)
//
// # Adding a New Export Source
//
// To import highlights from another e-reader format:
//
//  1. Write a parser in its own package that produces []entities.Highlight,
//     using clippings.BookID and clippings.HighlightID so re-imports line up
//     with existing records.
//
//  2. Pass the batch to library.Service.Import; merge and overwrite policies
//     apply unchanged.
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add compile-time check:
//
//     var _ SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks in this module.
package interfaces
