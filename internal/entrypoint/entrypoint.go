package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/config"
	http_controllers "github.com/mrlokans/highlights-keeper/internal/http"
	"github.com/mrlokans/highlights-keeper/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is done or SIGINT/SIGTERM arrives, then
// shuts it down within the configured timeout.
func Serve(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// Run wires configuration, storage, the library, the router and the
// auto-import scheduler, and serves until interrupted.
func Run(ctx context.Context, cfg *config.Config, version string, logger *zap.Logger) error {
	logger.Info("starting highlights keeper", zap.String("version", version))

	app, err := Open(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	app.PruneHistory(ctx, cfg.Audit.RetentionDays)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library:        app.Library,
		Markdown:       app.Exporter,
		History:        app.Audit,
		Database:       app.Database,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Version:        version,
	})

	schedCtx, schedCancel := context.WithCancel(ctx)
	defer schedCancel()

	var autoImport *scheduler.AutoImportScheduler
	if cfg.AutoImport.Enabled {
		autoImport = scheduler.NewAutoImportScheduler(
			cfg.AutoImport.Path,
			cfg.AutoImport.Schedule,
			app.Library,
			app.Exporter,
			logger.Named("scheduler"),
		)
		if err := autoImport.Start(schedCtx); err != nil {
			return fmt.Errorf("failed to start auto-import: %w", err)
		}
	} else {
		logger.Info("auto-import: disabled")
	}

	onShutdown := func(ctx context.Context) {
		if autoImport != nil {
			autoImport.Stop()
		}
	}

	return Serve(ctx, router, cfg, logger, onShutdown)
}
