package entrypoint

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/audit"
	"github.com/mrlokans/highlights-keeper/internal/config"
	"github.com/mrlokans/highlights-keeper/internal/database"
	dbaudit "github.com/mrlokans/highlights-keeper/internal/database/audit"
	"github.com/mrlokans/highlights-keeper/internal/database/highlights"
	"github.com/mrlokans/highlights-keeper/internal/exporters"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

// App holds the components shared by the server and the CLI commands.
type App struct {
	Database *database.Database
	Library  *library.Service
	Exporter *exporters.LibraryExporter
	Audit    *audit.Service
	Logger   *zap.Logger
}

// Open connects to the configured database and builds the library on top of it.
func Open(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.NewDatabase(cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	auditService := audit.NewService(dbaudit.NewRepository(db.DB), logger.Named("audit"))
	service := library.NewService(highlights.NewRepository(db.DB), logger.Named("library")).
		WithRecorder(auditService).
		WithSnapshots(audit.NewSnapshotter(cfg.Audit.Dir))

	return &App{
		Database: db,
		Library:  service,
		Exporter: exporters.NewLibraryExporter(service, cfg.Export.Dir, logger.Named("export")),
		Audit:    auditService,
		Logger:   logger,
	}, nil
}

// PruneHistory drops events older than the configured retention.
func (a *App) PruneHistory(ctx context.Context, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	deleted, err := a.Audit.DeleteOldEvents(ctx, time.Duration(retentionDays)*24*time.Hour)
	if err != nil {
		a.Logger.Warn("failed to prune history", zap.Error(err))
		return
	}
	if deleted > 0 {
		a.Logger.Info("pruned history", zap.Int64("deleted", deleted))
	}
}

func (a *App) Close() error {
	return a.Database.Close()
}
