package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr            string
	RefreshInterval time.Duration
	AllowUpdate     bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("LOCALSTAMP_ADDR"),
		},
		&cli.DurationFlag{
			Name:        "refresh-interval",
			Usage:       "Interval to re-detect the local offset (0 disables)",
			Value:       15 * time.Minute,
			Destination: &c.RefreshInterval,
			Sources:     cli.EnvVars("LOCALSTAMP_REFRESH_INTERVAL"),
		},
		&cli.BoolFlag{
			Name:        "allow-update",
			Usage:       "Accept PUT /offset to change the global offset",
			Destination: &c.AllowUpdate,
			Sources:     cli.EnvVars("LOCALSTAMP_ALLOW_UPDATE"),
		},
	}
}
