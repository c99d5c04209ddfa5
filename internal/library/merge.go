package library

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

// ImportResult summarises one import.
type ImportResult struct {
	Policy entities.MergePolicy `json:"policy"`
	// Imported is the number of records written.
	Imported int `json:"imported"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	// PreservedEdits counts replaced records that kept a user-edited title/author.
	PreservedEdits int `json:"preservedEdits"`
	// Snapshot names the saved copy of the collection an overwrite replaced.
	Snapshot string `json:"snapshot,omitempty"`
}

// ParsePolicy validates a policy name. The empty string is accepted and means
// "not chosen yet".
func ParsePolicy(name string) (entities.MergePolicy, error) {
	switch policy := entities.MergePolicy(strings.ToLower(strings.TrimSpace(name))); policy {
	case "", entities.MergePolicyMerge, entities.MergePolicyOverwrite:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// resolvePolicy applies the confirmation rule: an empty store is always
// overwritten; a non-empty one needs an explicit choice.
func resolvePolicy(policy entities.MergePolicy, storeEmpty bool) (entities.MergePolicy, error) {
	if storeEmpty {
		return entities.MergePolicyOverwrite, nil
	}
	if policy == "" {
		return "", ErrPolicyRequired
	}
	return policy, nil
}

// Merger reconciles a parsed batch with the stored collection.
type Merger struct {
	store  Store
	logger *zap.Logger
}

func NewMerger(store Store, logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{store: store, logger: logger}
}

// Apply writes batch under policy. A storage failure aborts the import; earlier
// writes of the same call (the clear of an overwrite) are not rolled back.
func (m *Merger) Apply(ctx context.Context, batch []entities.Highlight, policy entities.MergePolicy) (ImportResult, error) {
	batch = collapseDuplicates(batch)

	switch policy {
	case entities.MergePolicyOverwrite:
		return m.overwrite(ctx, batch)
	case entities.MergePolicyMerge:
		return m.merge(ctx, batch)
	default:
		return ImportResult{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

func (m *Merger) overwrite(ctx context.Context, batch []entities.Highlight) (ImportResult, error) {
	if err := m.store.Clear(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("failed to clear highlights: %w", err)
	}
	if err := m.store.PutMany(ctx, batch); err != nil {
		return ImportResult{}, fmt.Errorf("failed to store highlights: %w", err)
	}

	return ImportResult{
		Policy:   entities.MergePolicyOverwrite,
		Imported: len(batch),
		Inserted: len(batch),
	}, nil
}

func (m *Merger) merge(ctx context.Context, batch []entities.Highlight) (ImportResult, error) {
	stored, err := m.store.GetAll(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to load stored highlights: %w", err)
	}

	existing := make(map[string]*entities.Highlight, len(stored))
	for i := range stored {
		existing[stored[i].ID] = &stored[i]
	}

	result := ImportResult{Policy: entities.MergePolicyMerge}
	merged := make([]entities.Highlight, 0, len(batch))
	for _, incoming := range batch {
		previous, ok := existing[incoming.ID]
		switch {
		case !ok:
			result.Inserted++
		case previous.IsEdited:
			result.Updated++
			result.PreservedEdits++
		default:
			result.Updated++
		}
		if ok {
			incoming = MergeHighlight(previous, incoming)
		}
		merged = append(merged, incoming)
	}

	if err := m.store.PutMany(ctx, merged); err != nil {
		return ImportResult{}, fmt.Errorf("failed to store highlights: %w", err)
	}
	result.Imported = len(merged)

	m.logger.Debug("merged highlights",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("preserved_edits", result.PreservedEdits))

	return result, nil
}

// MergeHighlight resolves a re-imported highlight against the stored record with
// the same ID. An edited record keeps its title, author, edit flag and provenance;
// everything else comes from the incoming record.
func MergeHighlight(existing *entities.Highlight, incoming entities.Highlight) entities.Highlight {
	if existing == nil || !existing.IsEdited {
		return incoming
	}

	incoming.Title = existing.Title
	incoming.Author = existing.Author
	incoming.IsEdited = existing.IsEdited
	incoming.OriginalData = existing.OriginalData
	return incoming
}

// collapseDuplicates keeps one record per ID: the last occurrence, placed at the
// position of the first.
func collapseDuplicates(batch []entities.Highlight) []entities.Highlight {
	positions := make(map[string]int, len(batch))
	out := make([]entities.Highlight, 0, len(batch))
	for _, h := range batch {
		if i, ok := positions[h.ID]; ok {
			out[i] = h
			continue
		}
		positions[h.ID] = len(out)
		out = append(out, h)
	}
	return out
}
