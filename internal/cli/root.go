// Package cli implements the keeper command line: the HTTP server plus one
// command per library operation, all working against the same database file.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-keeper/internal/config"
	"github.com/mrlokans/highlights-keeper/internal/entrypoint"
	"github.com/mrlokans/highlights-keeper/internal/logging"
)

// rootOptions carries state shared by every subcommand.
type rootOptions struct {
	version  string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the keeper command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "keeper",
		Short: "Keep, merge and browse e-reader highlights",
		Long: `keeper imports highlights exported by e-readers (Kindle "My Clippings.txt"),
merges re-imports without losing your title/author edits, and serves them over HTTP.

Configuration comes from the environment (DATABASE_PATH, LOG_LEVEL, PORT, ...);
flags override it per command.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to the highlights database (default $DATABASE_PATH or "+config.DefaultDatabasePath+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newImportCommand(opts),
		newParseCommand(opts),
		newTitlesCommand(opts),
		newSearchCommand(opts),
		newEditCommand(opts),
		newExportCommand(opts),
		newHistoryCommand(opts),
	)

	return rootCmd
}

// Execute runs the command line with os.Args.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	o.cfg = config.NewConfig()
	if o.dbPath != "" {
		o.cfg.Database.Path = o.dbPath
	}
	if o.logLevel != "" {
		o.cfg.Logging.Level = o.logLevel
	}

	logger, err := logging.New(o.cfg.Logging.Level, o.cfg.Logging.Format)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

// openApp opens the database for one command. The caller closes the app.
func (o *rootOptions) openApp() (*entrypoint.App, error) {
	app, err := entrypoint.Open(o.cfg, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return app, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
