package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-keeper/internal/library"
)

func newTitlesCommand(opts *rootOptions) *cobra.Command {
	var sortField, sortOrder string

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List books with highlight counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, order, err := library.ParseSort(sortField, sortOrder)
			if err != nil {
				return err
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			titles, err := app.Library.LoadTitles(commandContext(cmd))
			if err != nil {
				return err
			}
			library.SortTitles(titles, field, order)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BOOK ID\tTITLE\tAUTHOR\tHIGHLIGHTS\tLAST\tEDITED")
			for _, t := range titles {
				last := "-"
				if t.LastHighlightDate != nil {
					last = t.LastHighlightDate.Format("2006-01-02")
				}
				edited := ""
				if t.IsEdited {
					edited = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", t.BookID, t.Title, t.Author, t.HighlightCount, last, edited)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&sortField, "sort", "title", "sort by title, author, count or date")
	cmd.Flags().StringVar(&sortOrder, "order", "asc", "asc or desc")

	return cmd
}
