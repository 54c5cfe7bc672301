package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/cli/config"
	"github.com/m-mizutani/localstamp/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var warnColor = color.New(color.FgYellow)

func cmdNow(offsetCfg *config.Offset) *cli.Command {
	var quiet bool

	return &cli.Command{
		Name:    "now",
		Aliases: []string{"n"},
		Usage:   "Print the current local timestamp",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "Do not print offset detection warnings",
				Destination: &quiet,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := offsetCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure offset")
			}

			ts, err := usecase.NewClock(store).Now(ctx)
			if err != nil {
				return err
			}

			if !quiet {
				for _, w := range ts.Warnings {
					warnColor.Fprintf(c.Root().ErrWriter, "warning: %s\n", w)
				}
			}
			fmt.Fprintln(c.Root().Writer, ts.Value)
			return nil
		},
	}
}
