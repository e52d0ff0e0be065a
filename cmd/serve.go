package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/config"
	"github.com/lehigh-university-libraries/callno/internal/handlers"
	"github.com/lehigh-university-libraries/callno/internal/metric"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the call number HTTP API",
		Long: `Starts the call number API on the specified port.

POST a mnemonic MARC record as JSON, or upload a .mrc/.mrk file, to
/api/callnumbers. Constructed call numbers are kept in memory and listed at
GET /api/callnumbers. Prometheus metrics are served at /metrics.`,
		Example: `  # Start server on the port from CALLNO_PORT (default 8888)
  callno serve

  # Start server on custom port
  callno serve --port 3000

  # Build a call number
  curl -s localhost:8888/api/callnumbers -H 'Content-Type: application/json' \
    -d '{"library":"bpl","call_type":"auto","marc":"=LDR  ..."}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Port
			}

			constructor := callno.New(callno.WithClassifier(cfg.Classifier()))
			handler := handlers.New(constructor, metric.NewMetrics(), cfg.Library)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Call number API available", "addr", addr, "library", cfg.Library, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
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

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $CALLNO_PORT or 8888)")

	return cmd
}
