package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/relware/mapship/pkg/domain/model"
)

// DefaultEndpoint is the hosted collector's upload URL
const DefaultEndpoint = "https://in.mapship.dev/api/v1/upload"

// Collector holds collector connection configuration
type Collector struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Flags returns CLI flags for collector configuration
func (c *Collector) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "Collector upload URL",
			Value:       DefaultEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("MAPSHIP_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Integration token sent as a bearer credential",
			Destination: &c.Token,
			Sources:     cli.EnvVars("MAPSHIP_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-request timeout for collector calls",
			Value:       model.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("MAPSHIP_TIMEOUT"),
		},
	}
}
