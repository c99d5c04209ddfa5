package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search highlights by title, author or text",
		Long: `Search stored highlights. Matching ignores case; an empty query lists everything.

Examples:
  keeper search "mind-killer"
  keeper search herbert --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			results, err := app.Library.Search(commandContext(cmd), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found.")
				return nil
			}

			shown := results
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for i, h := range shown {
				fmt.Fprintf(out, "%d. %s by %s [%s]\n", i+1, h.Title, authorOrPlaceholder(h.Author), h.Location)
				fmt.Fprintf(out, "   %s\n", strings.ReplaceAll(h.Text, "\n", "\n   "))
			}
			fmt.Fprintf(out, "\nFound %d highlights\n", len(results))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results to print (0 = all)")

	return cmd
}
