package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/bank-statement-tool/internal/api"
	"github.com/insightdelivered/bank-statement-tool/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var (
		host      string
		port      int
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload-and-download HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("static") {
				cfg.Server.StaticDir = staticDir
			}

			log := logger.FromContext(cmd.Context())
			h := &api.Handler{
				Log:         log,
				Version:     Version,
				MaxUploadMB: cfg.Server.MaxUploadMB,
				StaticDir:   cfg.Server.StaticDir,
			}
			app := h.NewApp()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server listening")
				errCh <- app.Listen(cfg.Server.Addr())
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from STATEMENT_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from STATEMENT_PORT)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory of static frontend files to serve at /")

	return cmd
}
