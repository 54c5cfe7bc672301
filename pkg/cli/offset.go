package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdOffset(offsetCfg *config.Offset) *cli.Command {
	return &cli.Command{
		Name:    "offset",
		Aliases: []string{"o"},
		Usage:   "Print the resolved UTC offset and detection warnings",
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := offsetCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure offset")
			}

			o, warns := store.UTCOffset(ctx)
			for _, w := range warns {
				warnColor.Fprintf(c.Root().ErrWriter, "warning: %s\n", w)
			}
			fmt.Fprintln(c.Root().Writer, o.String())
			return nil
		},
	}
}
