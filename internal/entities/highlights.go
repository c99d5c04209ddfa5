package entities

import "time"

type MergePolicy string

const (
	// MergePolicyMerge keeps user edits and refreshes imported content.
	MergePolicyMerge MergePolicy = "merge"
	// MergePolicyOverwrite discards everything stored before the import.
	MergePolicyOverwrite MergePolicy = "overwrite"
)

// OriginalData is the title/author pair captured when a highlight was first imported.
type OriginalData struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Highlight is a single excerpted passage. ID is derived from BookID and Location,
// BookID from the lowercased title and author at first import.
type Highlight struct {
	ID     string `gorm:"primaryKey;size:320" json:"id"`
	BookID string `gorm:"size:64;not null;index:idx_highlights_book_id;uniqueIndex:idx_highlights_book_location,priority:1" json:"bookId"`

	// Display values, possibly edited by the user
	Title  string `gorm:"size:512;index:idx_highlights_title" json:"title"`
	Author string `gorm:"size:256" json:"author"`

	Text      string `gorm:"type:text" json:"text"`
	Location  string `gorm:"size:256;uniqueIndex:idx_highlights_book_location,priority:2" json:"location"`
	Timestamp string `gorm:"size:128" json:"timestamp"`

	OriginalData *OriginalData `gorm:"serializer:json" json:"originalData,omitempty"`
	IsEdited     bool          `json:"isEdited"`
}

func (Highlight) TableName() string {
	return "highlights"
}

// Title is the per-book projection shown in the titles table. It is never persisted.
type Title struct {
	BookID            string     `json:"bookId"`
	Title             string     `json:"title"`
	Author            string     `json:"author"`
	HighlightCount    int        `json:"highlightCount"`
	LastHighlightDate *time.Time `json:"lastHighlightDate,omitempty"`
	IsEdited          bool       `json:"isEdited"`
}

// HighlightIndex names a secondary lookup key of the highlights collection.
type HighlightIndex string

const (
	IndexBookID       HighlightIndex = "bookId"
	IndexTitle        HighlightIndex = "title"
	IndexBookLocation HighlightIndex = "bookId_location" // compound, unique
)
