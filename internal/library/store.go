package library

import (
	"context"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

// Store is the record access the library needs from the highlights collection.
type Store interface {
	GetAll(ctx context.Context) ([]entities.Highlight, error)
	GetAllByIndex(ctx context.Context, index entities.HighlightIndex, values ...string) ([]entities.Highlight, error)
	Count(ctx context.Context) (int64, error)
	Put(ctx context.Context, highlight *entities.Highlight) error
	PutMany(ctx context.Context, highlights []entities.Highlight) error
	Clear(ctx context.Context) error
}
