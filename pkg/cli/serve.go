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
	"github.com/urfave/cli/v3"

	controller "github.com/relware/mapship/pkg/controller/http"
	"github.com/relware/mapship/pkg/domain/types"
)

func cmdServe() *cli.Command {
	var (
		addr    string
		dataDir string
		token   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &addr,
			Sources:     cli.EnvVars("MAPSHIP_ADDR"),
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory to store received uploads under",
			Value:       "mapship-data",
			Destination: &dataDir,
			Sources:     cli.EnvVars("MAPSHIP_DATA_DIR"),
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Integration token uploads must present (empty disables the check)",
			Destination: &token,
			Sources:     cli.EnvVars("MAPSHIP_TOKEN"),
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start a local collector for plugin development",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting local collector",
				slog.String("addr", addr),
				slog.String("data_dir", dataDir),
			)

			server, err := controller.NewServer(
				ctx,
				controller.WithAddr(addr),
				controller.WithDataDir(dataDir),
				controller.WithToken(types.Secret(token)),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
