// Package database opens the local SQLite store that holds imported highlights.
//
// # Layout
//
//	database/
//	├── database.go      # Connection setup, migrations, storage error sentinels
//	├── highlights/      # Record access for the highlights collection
//	└── audit/           # Activity history of imports and edits
//
// # Usage
//
//	db, err := database.NewDatabase("./highlights.db", logger)
//	repo := highlights.NewRepository(db.DB)
//
//	all, err := repo.GetAll(ctx)
//	byBook, err := repo.GetAllByIndex(ctx, entities.IndexBookID, bookID)
//
// # Errors
//
// Failures to open or migrate the file wrap ErrStorageInit. Every failed read,
// write or clear in a sub-package wraps ErrStorageIO, so callers can tell the
// two apart with errors.Is.
package database
