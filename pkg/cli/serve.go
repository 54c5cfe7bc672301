package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/cli/config"
	controller "github.com/m-mizutani/localstamp/pkg/controller/http"
	"github.com/m-mizutani/localstamp/pkg/usecase"
	"github.com/m-mizutani/localstamp/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe(offsetCfg *config.Offset) *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			store, err := offsetCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure offset")
			}

			logger.Info("Starting localstamp server",
				slog.String("addr", serverCfg.Addr),
				slog.Bool("pinned", offsetCfg.Pinned()),
			)

			clockUC := usecase.NewClock(store)

			// Detect once up front so the first request does not pay for it
			if !offsetCfg.Pinned() {
				if _, err := clockUC.Refresh(ctx); err != nil {
					logger.Warn("Initial offset detection failed", slog.Any("error", err))
				}
			}

			server, err := controller.NewServer(
				ctx,
				clockUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithOffsetUpdate(serverCfg.AllowUpdate),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Re-detect periodically to follow DST transitions
			if !offsetCfg.Pinned() && serverCfg.RefreshInterval > 0 {
				stop := async.Every(ctx, "offset-refresh", serverCfg.RefreshInterval, func(ctx context.Context) error {
					_, err := clockUC.Refresh(ctx)
					return err
				})
				defer stop()
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
