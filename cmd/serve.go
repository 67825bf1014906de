package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookshelf/internal/handlers"
	"github.com/lehigh-university-libraries/bookshelf/internal/storage"
)

func newServeCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the library interface",
		Long: `Starts the Bookshelf web interface on the specified port.

Each browser session works on its own copy of the library, loaded from the
library file when the session starts. "Save Library" writes that copy back.
Sessions idle for longer than server.session_idle are dropped with their
unsaved changes.`,
		Example: `  # Start server on default port 8888
  bookshelf serve

  # Start server on custom port
  bookshelf serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = opts.cfg.Server.Port
			}

			handler := handlers.New(storage.NewFile(opts.cfg.LibraryFile))

			if idle := opts.cfg.Server.SessionIdle; idle > 0 {
				go handler.SweepSessions(cmd.Context(), min(idle, time.Minute), idle)
			}

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/books/add", handler.HandleAdd)
			mux.HandleFunc("/books/remove", handler.HandleRemove)
			mux.HandleFunc("/books/search", handler.HandleSearch)
			mux.HandleFunc("/library/save", handler.HandleSave)
			mux.HandleFunc("/api/books", handler.HandleBooks)
			mux.HandleFunc("/api/stats", handler.HandleStats)
			mux.HandleFunc("/", handler.HandleIndex)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Bookshelf interface available", "addr", addr, "url", "http://localhost"+addr, "library", opts.cfg.LibraryFile)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
