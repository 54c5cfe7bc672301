package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/localstamp/pkg/cli/config"
	"github.com/m-mizutani/localstamp/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		loggerCfg = config.Logger{Output: stderr}
		offsetCfg config.Offset
		logger    *slog.Logger
	)

	app := &cli.Command{
		Name:      "localstamp",
		Usage:     "Local RFC 3339 timestamps with a process-wide UTC offset",
		Version:   types.Version,
		Flags:     append(loggerCfg.Flags(), offsetCfg.Flags()...),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdNow(&offsetCfg),
			cmdOffset(&offsetCfg),
			cmdServe(&offsetCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
