package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/interfaces"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
	"github.com/m-mizutani/localstamp/pkg/infra/source"
	"github.com/m-mizutani/localstamp/pkg/stamp"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Offset holds offset configuration. A value from the command line or the
// environment wins over the config file.
type Offset struct {
	Value      string
	ConfigPath string
	NoCommand  bool
}

// File is the TOML config file layout
type File struct {
	Offset    string `toml:"offset"`
	NoCommand bool   `toml:"no_command"`
}

// Flags returns CLI flags for offset configuration
func (c *Offset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "offset",
			Usage:       "Fixed UTC offset such as +09:00 or -0930",
			Destination: &c.Value,
			Sources:     cli.EnvVars("LOCALSTAMP_OFFSET"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML config file",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("LOCALSTAMP_CONFIG"),
		},
		&cli.BoolFlag{
			Name:        "no-command",
			Usage:       "Do not run the system time command to detect the offset",
			Destination: &c.NoCommand,
			Sources:     cli.EnvVars("LOCALSTAMP_NO_COMMAND"),
		},
	}
}

// LoadFile merges the config file at ConfigPath into c
func (c *Offset) LoadFile() error {
	if c.ConfigPath == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.ConfigPath))
	}

	var file File
	if err := toml.Unmarshal(raw, &file); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigPath))
	}

	if c.Value == "" {
		c.Value = file.Offset
	}
	c.NoCommand = c.NoCommand || file.NoCommand
	return nil
}

// Pinned reports whether a fixed offset is configured
func (c *Offset) Pinned() bool {
	return c.Value != ""
}

// Detector builds the detection chain for the configuration. A pinned
// offset comes first so that re-detection keeps returning it.
func (c *Offset) Detector() interfaces.OffsetSource {
	var sources []interfaces.OffsetSource
	if c.Pinned() {
		sources = append(sources, source.NewFixed(c.Value))
	}
	sources = append(sources, source.NewZone(time.Local))
	if !c.NoCommand {
		sources = append(sources, source.NewCommand(nil))
	}
	return source.NewChain(sources...)
}

// Configure loads the config file and returns a Store. A pinned offset is
// validated and stored immediately.
func (c *Offset) Configure() (*stamp.Store, error) {
	if err := c.LoadFile(); err != nil {
		return nil, err
	}

	store := stamp.NewStore(stamp.WithDetector(c.Detector()))
	if !c.Pinned() {
		return store, nil
	}

	o, err := model.ParseOffset(c.Value)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid offset configuration")
	}
	if err := store.TrySetGlobalOffset(o); err != nil {
		return nil, err
	}
	return store, nil
}
