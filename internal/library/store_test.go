package library

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

var errInjected = errors.New("injected storage failure")

// memStore is an in-memory Store with per-method failure injection.
type memStore struct {
	records map[string]entities.Highlight
	order   []string

	failGetAll  bool
	failIndex   bool
	failCount   bool
	failPutMany bool
	failClear   bool

	putManyCalls [][]entities.Highlight
}

func newMemStore(initial ...entities.Highlight) *memStore {
	s := &memStore{records: map[string]entities.Highlight{}}
	for _, h := range initial {
		s.put(h)
	}
	return s
}

func (s *memStore) put(h entities.Highlight) {
	if _, ok := s.records[h.ID]; !ok {
		s.order = append(s.order, h.ID)
		sort.Strings(s.order)
	}
	s.records[h.ID] = h
}

func (s *memStore) GetAll(ctx context.Context) ([]entities.Highlight, error) {
	if s.failGetAll {
		return nil, errInjected
	}
	out := make([]entities.Highlight, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *memStore) GetAllByIndex(ctx context.Context, index entities.HighlightIndex, values ...string) ([]entities.Highlight, error) {
	if s.failIndex {
		return nil, errInjected
	}
	all, _ := s.GetAll(ctx)
	var out []entities.Highlight
	for _, h := range all {
		switch index {
		case entities.IndexBookID:
			if h.BookID == values[0] {
				out = append(out, h)
			}
		case entities.IndexTitle:
			if h.Title == values[0] {
				out = append(out, h)
			}
		case entities.IndexBookLocation:
			if h.BookID == values[0] && h.Location == values[1] {
				out = append(out, h)
			}
		default:
			return nil, fmt.Errorf("unknown index %q", index)
		}
	}
	return out, nil
}

func (s *memStore) Count(ctx context.Context) (int64, error) {
	if s.failCount {
		return 0, errInjected
	}
	return int64(len(s.records)), nil
}

func (s *memStore) Put(ctx context.Context, h *entities.Highlight) error {
	s.put(*h)
	return nil
}

func (s *memStore) PutMany(ctx context.Context, highlights []entities.Highlight) error {
	if s.failPutMany {
		return errInjected
	}
	s.putManyCalls = append(s.putManyCalls, append([]entities.Highlight(nil), highlights...))
	for _, h := range highlights {
		s.put(h)
	}
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	if s.failClear {
		return errInjected
	}
	s.records = map[string]entities.Highlight{}
	s.order = nil
	return nil
}

func (s *memStore) get(id string) (entities.Highlight, bool) {
	h, ok := s.records[id]
	return h, ok
}

var _ Store = (*memStore)(nil)
