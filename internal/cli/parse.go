package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCommand(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a clippings file and print the highlights found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseFile(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, h := range parsed.Highlights {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", h.ID, h.Title, h.Location, h.Timestamp)
			}
			fmt.Fprintf(out, "\n%d highlights, %d sections, %d skipped\n",
				len(parsed.Highlights), parsed.Sections, parsed.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the clippings file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
