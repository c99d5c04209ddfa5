package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
	"github.com/mrlokans/highlights-keeper/internal/entities"
	"github.com/mrlokans/highlights-keeper/internal/exporters"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

// Importer is the part of the library the scheduler drives.
type Importer interface {
	Parse(r io.Reader) (*clippings.ParseResult, error)
	Import(ctx context.Context, batch []entities.Highlight, policy entities.MergePolicy) (library.ImportResult, error)
}

// Exporter refreshes markdown after a successful import.
type Exporter interface {
	ExportAll(ctx context.Context) (exporters.ExportResult, error)
}

// fileState identifies one version of the watched file.
type fileState struct {
	modTime time.Time
	size    int64
}

// AutoImportScheduler periodically re-imports a clippings file with the merge
// policy whenever the file has changed since the last successful import.
type AutoImportScheduler struct {
	path     string
	schedule string
	importer Importer
	exporter Exporter
	logger   *zap.Logger

	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.RWMutex
	running bool

	runMu sync.Mutex
	last  fileState
}

// NewAutoImportScheduler creates a new scheduler instance. exporter may be nil.
func NewAutoImportScheduler(path, schedule string, importer Importer, exporter Exporter, logger *zap.Logger) *AutoImportScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoImportScheduler{
		path:     path,
		schedule: schedule,
		importer: importer,
		exporter: exporter,
		logger:   logger,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start begins the scheduler. The job stops when ctx is cancelled.
func (s *AutoImportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if s.path == "" {
		s.logger.Info("auto-import: no clippings path configured, skipping")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule auto-import job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	s.logger.Info("auto-import: started",
		zap.String("path", s.path),
		zap.String("schedule", s.schedule),
		zap.String("description", DescribeSchedule(s.schedule)),
		zap.Time("next_run", nextRun))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running import to finish and stops the scheduler.
func (s *AutoImportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.running = false

	s.logger.Info("auto-import: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *AutoImportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// NextRun returns when the next check will occur, or nil when stopped.
func (s *AutoImportScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunOnce imports the watched file if it changed. It reports whether an import
// happened.
func (s *AutoImportScheduler) RunOnce(ctx context.Context) bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		s.logger.Warn("auto-import: cannot stat clippings file", zap.String("path", s.path), zap.Error(err))
		return false
	}

	current := fileState{modTime: info.ModTime(), size: info.Size()}
	if current.modTime.Equal(s.last.modTime) && current.size == s.last.size {
		s.logger.Debug("auto-import: file unchanged", zap.String("path", s.path))
		return false
	}

	startTime := time.Now()
	if err := s.importFile(ctx); err != nil {
		s.logger.Error("auto-import: failed", zap.String("path", s.path), zap.Error(err))
		return false
	}
	s.last = current

	if s.exporter != nil {
		result, err := s.exporter.ExportAll(ctx)
		if err != nil {
			s.logger.Warn("auto-import: markdown export failed", zap.Error(err))
		} else {
			s.logger.Info("auto-import: markdown exported",
				zap.Int("books", result.BooksProcessed),
				zap.Int("highlights", result.HighlightsProcessed))
		}
	}

	s.logger.Info("auto-import: completed",
		zap.String("path", s.path),
		zap.Duration("duration", time.Since(startTime).Round(time.Millisecond)))
	return true
}

func (s *AutoImportScheduler) importFile(ctx context.Context) error {
	file, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	parsed, err := s.importer.Parse(file)
	if err != nil {
		return err
	}

	result, err := s.importer.Import(ctx, parsed.Highlights, entities.MergePolicyMerge)
	if err != nil {
		return err
	}

	s.logger.Info("auto-import: imported",
		zap.Int("highlights", result.Imported),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", parsed.Skipped))
	return nil
}
