package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-keeper/internal/exporters"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every book as a markdown file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = opts.cfg.Export.Dir
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := exporters.NewLibraryExporter(app.Library, output, opts.logger).ExportAll(commandContext(cmd))
			if err != nil {
				return err
			}
			printExportResult(cmd.OutOrStdout(), output, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output directory (default $EXPORT_DIR or ./markdown)")

	return cmd
}
