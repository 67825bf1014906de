package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookshelf/internal/config"
	"github.com/lehigh-university-libraries/bookshelf/internal/menu"
	"github.com/lehigh-university-libraries/bookshelf/internal/storage"
)

// options are the persistent flags plus the config they resolve to.
type options struct {
	configPath  string
	libraryFile string
	logLevel    string

	cfg *config.Config
}

// load resolves config files, environment and flags, then installs the logger.
func (o *options) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if o.libraryFile != "" {
		cfg.LibraryFile = o.libraryFile
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	o.cfg = cfg
	return nil
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "Personal library manager for tracking the books you own and read",
		Long: `Bookshelf keeps a personal book collection in a plain text file.

Run without a subcommand to use the interactive menu: add, remove, search
and list books, view reading statistics, then save and exit. Use "serve"
for the same actions in a web browser.`,
		Example: `  # Interactive menu on ./library.txt
  bookshelf

  # Use another library file
  bookshelf --file ~/books/library.txt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts.cfg.LibraryFile)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/bookshelf/config.toml and ./bookshelf.toml)")
	cmd.PersistentFlags().StringVarP(&opts.libraryFile, "file", "f", "", "Library file (default library.txt)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newImportCmd(opts))

	return cmd
}

func runMenu(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	library := storage.NewFile(path)

	collection, warnings, err := library.Load()
	if err != nil {
		return fmt.Errorf("error loading library: %w", err)
	}
	printWarnings(out, warnings)

	return menu.New(collection, library, cmd.InOrStdin(), out).Run(cmd.Context())
}

func printWarnings(out io.Writer, warnings []storage.LineWarning) {
	for _, w := range warnings {
		fmt.Fprintf(out, "⚠️ Skipping invalid line %d in library file: %s\n", w.Line, w.Text)
	}
}
