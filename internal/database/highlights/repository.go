// Package highlights provides record access for the highlights collection.
//
// The collection is keyed by highlight ID with secondary lookups by book ID,
// by display title, and a unique compound lookup by (book ID, location).
//
// # Usage
//
//	repo := highlights.NewRepository(db)
//	err := repo.PutMany(ctx, batch)
package highlights

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/highlights-keeper/internal/database"
	"github.com/mrlokans/highlights-keeper/internal/entities"
)

const batchSize = 100

var indexColumns = map[entities.HighlightIndex][]string{
	entities.IndexBookID:       {"book_id"},
	entities.IndexTitle:        {"title"},
	entities.IndexBookLocation: {"book_id", "location"},
}

// Repository handles highlight database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new highlights repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every stored highlight in primary key order.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&highlights).Error; err != nil {
		return nil, ioError("get all", err)
	}
	return highlights, nil
}

// GetAllByIndex returns highlights whose secondary key equals values.
// Compound indexes take one value per column, in index order.
func (r *Repository) GetAllByIndex(ctx context.Context, index entities.HighlightIndex, values ...string) ([]entities.Highlight, error) {
	columns, ok := indexColumns[index]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", index)
	}
	if len(values) != len(columns) {
		return nil, fmt.Errorf("index %q expects %d values, got %d", index, len(columns), len(values))
	}

	query := r.db.WithContext(ctx).Model(&entities.Highlight{})
	for i, column := range columns {
		query = query.Where(column+" = ?", values[i])
	}

	var highlights []entities.Highlight
	if err := query.Order("id ASC").Find(&highlights).Error; err != nil {
		return nil, ioError("get by "+string(index), err)
	}
	return highlights, nil
}

// Count returns the number of stored highlights.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Highlight{}).Count(&count).Error; err != nil {
		return 0, ioError("count", err)
	}
	return count, nil
}

// Put inserts or replaces one highlight.
func (r *Repository) Put(ctx context.Context, highlight *entities.Highlight) error {
	err := r.db.WithContext(ctx).Clauses(upsert()).Create(highlight).Error
	if err != nil {
		return ioError("put "+highlight.ID, err)
	}
	return nil
}

// PutMany inserts or replaces highlights in one transaction, in slice order.
func (r *Repository) PutMany(ctx context.Context, highlights []entities.Highlight) error {
	if len(highlights) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(upsert()).CreateInBatches(highlights, batchSize).Error
	})
	if err != nil {
		return ioError("put many", err)
	}
	return nil
}

// Clear removes every stored highlight.
func (r *Repository) Clear(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Highlight{}).Error
	if err != nil {
		return ioError("clear", err)
	}
	return nil
}

func upsert() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}
}

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", database.ErrStorageIO, op, err)
}
