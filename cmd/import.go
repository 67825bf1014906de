package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookshelf/internal/dataset"
	"github.com/lehigh-university-libraries/bookshelf/internal/storage"
)

func newImportCmd(opts *options) *cobra.Command {
	var datasetPath string
	var sampleSize int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import books from a JSONL or Parquet dataset",
		Long: `Append books from a JSONL or Parquet file to the library.

Each row needs title, author, year, genre and read columns. Rows missing a
title, author or genre are skipped. The library file is rewritten unless
--dry-run is given.`,
		Example: `  # Import every row
  bookshelf import --dataset books.parquet

  # Check the first 10 rows without saving
  bookshelf import --dataset books.jsonl --sample 10 --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check if dataset file exists
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", datasetPath)
			}

			rows, err := dataset.NewLoader(datasetPath).LoadSample(sampleSize)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			library := storage.NewFile(opts.cfg.LibraryFile)
			collection, warnings, err := library.Load()
			if err != nil {
				return fmt.Errorf("error loading library: %w", err)
			}
			out := cmd.OutOrStdout()
			printWarnings(out, warnings)

			result := dataset.Import(collection, rows)
			fmt.Fprintf(out, "Imported %d books, skipped %d invalid rows.\n", result.Added, result.Skipped)

			if dryRun {
				fmt.Fprintln(out, "Dry run, library file not changed.")
				return nil
			}
			if err := library.Save(collection); err != nil {
				return err
			}
			fmt.Fprintf(out, "✅ Library saved to: %s\n", library.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a .jsonl or .parquet file (required)")
	cmd.Flags().IntVar(&sampleSize, "sample", -1, "Number of rows to import (-1 for all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be imported without saving")

	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}
