package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-keeper/internal/clippings"
	"github.com/mrlokans/highlights-keeper/internal/exporters"
	"github.com/mrlokans/highlights-keeper/internal/library"
)

type importOptions struct {
	file    string
	policy  string
	output  string
	dryRun  bool
	verbose bool
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	o := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a clippings file into the database",
		Long: `Import highlights from a Kindle "My Clippings.txt" file.

The clippings file is typically found at:
  /Volumes/Kindle/documents/My Clippings.txt

The first import needs no policy. Once the database holds highlights, choose:
  merge      keep your title/author edits, update everything else
  overwrite  discard the stored collection and replace it with the file`,
		Example: `  # Import from connected Kindle device:
  keeper import --file "/Volumes/Kindle/documents/My Clippings.txt"

  # Re-import keeping edits, and refresh markdown:
  keeper import --file "My Clippings.txt" --policy merge --output ~/Obsidian/Highlights

  # Preview what would be imported:
  keeper import --file "My Clippings.txt" --dry-run --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, o)
		},
	}

	cmd.Flags().StringVar(&o.file, "file", "", "path to the clippings file (required)")
	cmd.Flags().StringVar(&o.policy, "policy", "", "merge or overwrite; required when the database is not empty")
	cmd.Flags().StringVar(&o.output, "output", "", "also export markdown files to this directory")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "show what would be imported without making changes")
	cmd.Flags().BoolVar(&o.verbose, "verbose", false, "list every book found")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, opts *rootOptions, o *importOptions) error {
	out := cmd.OutOrStdout()

	policy, err := library.ParsePolicy(o.policy)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Clippings Import")
	fmt.Fprintln(out, "================")
	if o.dryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
	}
	fmt.Fprintf(out, "File: %s\n", o.file)

	parsed, err := parseFile(o.file)
	if err != nil {
		return err
	}

	books := exporters.GroupByBook(parsed.Highlights)
	fmt.Fprintf(out, "Found %d books with %d highlights (%d sections skipped)\n",
		len(books), len(parsed.Highlights), parsed.Skipped)

	if o.verbose {
		printBooks(out, books)
	}

	if o.dryRun {
		fmt.Fprintln(out, "\nDry run complete. Use without --dry-run to import.")
		return nil
	}

	app, err := opts.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := commandContext(cmd)
	result, err := app.Library.Import(ctx, parsed.Highlights, policy)
	if errors.Is(err, library.ErrPolicyRequired) {
		return fmt.Errorf("database %s already holds highlights: rerun with --policy merge or --policy overwrite", opts.cfg.Database.Path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Policy: %s\n", result.Policy)
	fmt.Fprintf(out, "Highlights saved: %d (new: %d, updated: %d, edits kept: %d)\n",
		result.Imported, result.Inserted, result.Updated, result.PreservedEdits)

	if o.output != "" {
		exporter := exporters.NewLibraryExporter(app.Library, o.output, opts.logger)
		exported, err := exporter.ExportAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to export to markdown: %w", err)
		}
		printExportResult(out, o.output, exported)
	}

	fmt.Fprintln(out, "\nImport complete!")
	return nil
}

func parseFile(path string) (*clippings.ParseResult, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("clippings file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open clippings file: %w", err)
	}
	defer file.Close()

	return clippings.NewParser(nil).Parse(file)
}

func printBooks(out io.Writer, books []exporters.Book) {
	fmt.Fprintln(out, "\n=== Books Found ===")
	for i, book := range books {
		fmt.Fprintf(out, "%d. \"%s\" by %s (%d highlights)\n",
			i+1, book.Title, authorOrPlaceholder(book.Author), len(book.Highlights))
	}
}

func printExportResult(out io.Writer, dir string, result exporters.ExportResult) {
	fmt.Fprintf(out, "\nExported %d books (%d highlights) to %s\n",
		result.BooksProcessed, result.HighlightsProcessed, dir)
	if result.BooksFailed > 0 {
		fmt.Fprintf(out, "%d books failed to export\n", result.BooksFailed)
	}
}

func authorOrPlaceholder(author string) string {
	if author == "" {
		return "(no author)"
	}
	return author
}

