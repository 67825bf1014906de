package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookshelf/internal/export"
	"github.com/lehigh-university-libraries/bookshelf/internal/storage"
)

func newExportCmd(opts *options) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library as text, JSON, CSV, YAML or Parquet",
		Long: `Export every book in the library file to another format.

Invalid lines in the library file are skipped, as on a normal load.
CSV, JSON, YAML and Parquet exports keep commas inside fields intact.`,
		Example: `  # Print the library as YAML
  bookshelf export --format yaml

  # Write a Parquet file
  bookshelf export --format parquet --output books.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isFormat(format) {
				return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(export.Formats, ", "))
			}

			path := opts.cfg.LibraryFile
			collection, warnings, err := storage.Load(path)
			if err != nil {
				return fmt.Errorf("error loading library: %w", err)
			}
			if len(warnings) > 0 {
				slog.Warn("Exporting without invalid lines", "skipped", len(warnings))
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer file.Close()
				w = file
			}

			if err := export.Write(w, format, path, collection); err != nil {
				return fmt.Errorf("failed to export library: %w", err)
			}

			if output != "-" {
				absPath, _ := filepath.Abs(output)
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %d books to: %s\n", collection.Len(), absPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")

	return cmd
}

func isFormat(format string) bool {
	for _, f := range export.Formats {
		if f == format {
			return true
		}
	}
	return false
}
