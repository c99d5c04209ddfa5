package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-keeper/internal/entities"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var eventType string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent imports and title edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch entities.AuditEventType(eventType) {
			case "", entities.AuditEventImport, entities.AuditEventEdit:
			default:
				return fmt.Errorf("unknown event type %q: use import or edit", eventType)
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			events, total, err := app.Audit.GetEvents(commandContext(cmd), entities.AuditEventType(eventType), limit, 0)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tACTION\tSTATUS\tDESCRIPTION")
			for _, e := range events {
				description := e.Description
				if e.ErrorMsg != "" {
					description += ": " + e.ErrorMsg
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Action, e.Status, description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d events\n", len(events), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "", "only show import or edit events")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events")

	return cmd
}
