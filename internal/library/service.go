// Package library implements the operations offered on a personal highlights
// collection: parsing exports, importing them under a merge or overwrite policy,
// the per-book titles view, group edits and search.
//
// Every operation reports failure as an *OpError carrying one generic message
// per category; the cause is logged and kept for errors.Is.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
	"github.com/mrlokans/highlights-keeper/internal/entities"
)

// Recorder receives the outcome of every write operation.
type Recorder interface {
	RecordImport(ctx context.Context, result ImportResult, err error)
	RecordEdit(ctx context.Context, originalTitle, newTitle string, updated int, err error)
}

// Snapshotter persists the collection about to be discarded by an overwrite
// and returns a reference to the copy.
type Snapshotter interface {
	SaveJSON(data any) (string, error)
}

// Service serializes operations on one store: each call completes before the next starts.
type Service struct {
	mu       sync.Mutex
	store    Store
	parser   *clippings.Parser
	merger   *Merger
	logger   *zap.Logger
	recorder Recorder
	snapshot Snapshotter
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		parser: clippings.NewParser(logger.Named("parser")),
		merger: NewMerger(store, logger.Named("merge")),
		logger: logger,
	}
}

// WithRecorder attaches r to the service.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// WithSnapshots makes overwrite imports of a non-empty store save the
// current collection first. An import whose snapshot fails is aborted.
func (s *Service) WithSnapshots(sn Snapshotter) *Service {
	s.snapshot = sn
	return s
}

// Parse turns an export into highlight candidates without touching the store.
func (s *Service) Parse(r io.Reader) (*clippings.ParseResult, error) {
	result, err := s.parser.Parse(r)
	if err != nil {
		return nil, s.fail(OpParse, err)
	}
	return result, nil
}

// HasHighlights reports whether an import would need a policy choice.
func (s *Service) HasHighlights(ctx context.Context) (bool, error) {
	count, err := s.CountHighlights(ctx)
	return count > 0, err
}

func (s *Service) CountHighlights(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, s.fail(OpLoad, err)
	}
	return count, nil
}

// Import stores batch. With an empty store the policy is ignored and the batch
// overwrites silently; otherwise an empty policy returns ErrPolicyRequired.
func (s *Service) Import(ctx context.Context, batch []entities.Highlight, policy entities.MergePolicy) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.importLocked(ctx, batch, policy)
	if s.recorder != nil && !errors.Is(err, ErrPolicyRequired) {
		s.recorder.RecordImport(ctx, result, err)
	}
	return result, err
}

func (s *Service) importLocked(ctx context.Context, batch []entities.Highlight, policy entities.MergePolicy) (ImportResult, error) {
	policy, err := ParsePolicy(string(policy))
	if err != nil {
		return ImportResult{Policy: policy}, err
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return ImportResult{Policy: policy}, s.fail(OpImport, err)
	}

	resolved, err := resolvePolicy(policy, count == 0)
	if err != nil {
		return ImportResult{}, err
	}

	var snapshot string
	if resolved == entities.MergePolicyOverwrite && count > 0 && s.snapshot != nil {
		if snapshot, err = s.saveSnapshot(ctx); err != nil {
			return ImportResult{Policy: resolved}, s.fail(OpImport, err)
		}
	}

	result, err := s.merger.Apply(ctx, batch, resolved)
	if err != nil {
		return ImportResult{Policy: resolved, Snapshot: snapshot}, s.fail(OpImport, err)
	}
	result.Snapshot = snapshot

	s.logger.Info("imported highlights",
		zap.String("policy", string(result.Policy)),
		zap.Int("highlights", result.Imported),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("preserved_edits", result.PreservedEdits),
		zap.String("snapshot", snapshot))

	return result, nil
}

func (s *Service) saveSnapshot(ctx context.Context) (string, error) {
	existing, err := s.store.GetAll(ctx)
	if err != nil {
		return "", err
	}
	name, err := s.snapshot.SaveJSON(existing)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot highlights: %w", err)
	}
	return name, nil
}

// LoadTitles recomputes the per-book view from the whole collection.
func (s *Service) LoadTitles(ctx context.Context) ([]entities.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highlights, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.fail(OpLoad, err)
	}
	return AggregateTitles(highlights), nil
}

// EditHighlightGroup renames every highlight whose current title equals
// originalTitle and returns how many were rewritten. Provenance is captured on
// first edit and never replaced; the edit flag tracks whether the new values
// differ from it.
func (s *Service) EditHighlightGroup(ctx context.Context, originalTitle, newTitle, newAuthor string) (int, error) {
	return s.edit(ctx, entities.IndexTitle, originalTitle, newTitle, newAuthor)
}

// EditBook renames every highlight of bookID, the key of a LoadTitles row,
// whatever title each one currently carries. Highlights added by a merge
// after an earlier edit still carry the imported title; this brings them in
// line with the rest of the book.
func (s *Service) EditBook(ctx context.Context, bookID, newTitle, newAuthor string) (int, error) {
	if strings.TrimSpace(bookID) == "" {
		return 0, ErrInvalidEdit
	}
	return s.edit(ctx, entities.IndexBookID, bookID, newTitle, newAuthor)
}

func (s *Service) edit(ctx context.Context, index entities.HighlightIndex, key, newTitle, newAuthor string) (int, error) {
	newTitle = strings.TrimSpace(newTitle)
	newAuthor = strings.TrimSpace(newAuthor)
	if newTitle == "" {
		return 0, ErrInvalidEdit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, previous, err := s.editLocked(ctx, index, key, newTitle, newAuthor)
	if s.recorder != nil && !errors.Is(err, ErrGroupNotFound) {
		s.recorder.RecordEdit(ctx, previous, newTitle, updated, err)
	}
	return updated, err
}

// editLocked returns the number of rewritten highlights and the title the
// group was displayed under before the edit.
func (s *Service) editLocked(ctx context.Context, index entities.HighlightIndex, key, newTitle, newAuthor string) (int, string, error) {
	previous := key
	matches, err := s.store.GetAllByIndex(ctx, index, key)
	if err != nil {
		return 0, previous, s.fail(OpEdit, err)
	}
	if len(matches) == 0 {
		return 0, previous, ErrGroupNotFound
	}
	if index != entities.IndexTitle {
		previous = AggregateTitles(matches)[0].Title
	}

	for i := range matches {
		applyEdit(&matches[i], newTitle, newAuthor)
	}

	if err := s.store.PutMany(ctx, matches); err != nil {
		return 0, previous, s.fail(OpEdit, err)
	}

	s.logger.Info("edited highlight group",
		zap.String(string(index), key),
		zap.String("original_title", previous),
		zap.String("title", newTitle),
		zap.Int("highlights", len(matches)))

	return len(matches), previous, nil
}

func applyEdit(h *entities.Highlight, title, author string) {
	if h.OriginalData == nil {
		h.OriginalData = &entities.OriginalData{Title: h.Title, Author: h.Author}
	}
	h.Title = title
	h.Author = author
	h.IsEdited = title != h.OriginalData.Title || author != h.OriginalData.Author
}

// Search returns highlights whose title, author or text contains query,
// ignoring case. An empty query matches everything.
func (s *Service) Search(ctx context.Context, query string) ([]entities.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highlights, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.fail(OpLoad, err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := []entities.Highlight{}
	for _, h := range highlights {
		if strings.Contains(strings.ToLower(h.Title), needle) ||
			strings.Contains(strings.ToLower(h.Author), needle) ||
			strings.Contains(strings.ToLower(h.Text), needle) {
			matches = append(matches, h)
		}
	}
	return matches, nil
}

// HighlightsForBook returns the highlights sharing bookID.
func (s *Service) HighlightsForBook(ctx context.Context, bookID string) ([]entities.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highlights, err := s.store.GetAllByIndex(ctx, entities.IndexBookID, bookID)
	if err != nil {
		return nil, s.fail(OpLoad, err)
	}
	return highlights, nil
}

// AllHighlights returns the whole collection in storage order.
func (s *Service) AllHighlights(ctx context.Context) ([]entities.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highlights, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.fail(OpLoad, err)
	}
	return highlights, nil
}

func (s *Service) fail(op Operation, err error) error {
	s.logger.Error("operation failed", zap.String("operation", string(op)), zap.Error(err))
	return opError(op, err)
}
