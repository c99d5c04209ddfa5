package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCommand(opts *rootOptions) *cobra.Command {
	var bookID, title, newTitle, newAuthor string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Rename the title and author of every highlight of a book",
		Long: `Rename a book. With --book-id every highlight of that book (the BOOK ID
column of "keeper titles") gets the new title and author; with --title every
highlight whose current title matches does. The values first imported are
kept, so later merge imports preserve the edit.`,
		Example: `  keeper edit --title "Dune" --new-title "Dune (Deluxe Edition)" --new-author "Frank Herbert"
  keeper edit --book-id book_tntyhk --new-title "Dune" --new-author "Frank Herbert"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var updated int
			from := title
			if bookID != "" {
				from = bookID
				updated, err = app.Library.EditBook(commandContext(cmd), bookID, newTitle, newAuthor)
			} else {
				updated, err = app.Library.EditHighlightGroup(commandContext(cmd), title, newTitle, newAuthor)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d highlights: %q -> %q by %s\n",
				updated, from, newTitle, authorOrPlaceholder(newAuthor))
			return nil
		},
	}

	cmd.Flags().StringVar(&bookID, "book-id", "", "book to rename, as listed by keeper titles")
	cmd.Flags().StringVar(&title, "title", "", "current title")
	cmd.Flags().StringVar(&newTitle, "new-title", "", "new title (required)")
	cmd.Flags().StringVar(&newAuthor, "new-author", "", "new author")
	cmd.MarkFlagsOneRequired("book-id", "title")
	cmd.MarkFlagsMutuallyExclusive("book-id", "title")
	_ = cmd.MarkFlagRequired("new-title")

	return cmd
}
