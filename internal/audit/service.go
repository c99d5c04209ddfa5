// Package audit keeps the activity history: one event per import or title
// edit, stored next to the highlights, plus JSON snapshots of collections
// replaced by an overwrite import.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/database/audit"
	"github.com/mrlokans/highlights-keeper/internal/entities"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

const maxErrorLen = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo   *audit.Repository
	logger *zap.Logger
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Log records an event. A failure is logged and otherwise ignored so that
// history never blocks the operation being recorded.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) {
	if err := s.repo.LogEvent(ctx, event); err != nil {
		s.logger.Warn("failed to log audit event", zap.String("action", event.Action), zap.Error(err))
	}
}

// RecordImport records an import event.
func (s *Service) RecordImport(ctx context.Context, result library.ImportResult, err error) {
	action := "import"
	if result.Policy != "" {
		action = string(result.Policy) + "_import"
	}

	event := &entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    action,
		Description: fmt.Sprintf("Imported %d highlights (%d new, %d updated, %d edits kept)",
			result.Imported, result.Inserted, result.Updated, result.PreservedEdits),
		Metadata: metadata(map[string]any{
			"policy":          result.Policy,
			"imported":        result.Imported,
			"inserted":        result.Inserted,
			"updated":         result.Updated,
			"preserved_edits": result.PreservedEdits,
			"snapshot":        result.Snapshot,
		}),
	}
	setStatus(event, err)

	s.Log(ctx, event)
}

// RecordEdit records a title edit event.
func (s *Service) RecordEdit(ctx context.Context, originalTitle, newTitle string, updated int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventEdit,
		Action:      "title_edit",
		Description: truncate(fmt.Sprintf("Renamed %q to %q (%d highlights)", originalTitle, newTitle, updated), maxErrorLen),
		Metadata: metadata(map[string]any{
			"original_title": originalTitle,
			"title":          newTitle,
			"updated":        updated,
		}),
	}
	setStatus(event, err)

	s.Log(ctx, event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(ctx, time.Now().Add(-retention))
}

func setStatus(event *entities.AuditEvent, err error) {
	event.Status = entities.AuditStatusSuccess
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}
}

func metadata(values map[string]any) string {
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
