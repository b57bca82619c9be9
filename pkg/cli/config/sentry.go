package config

import (
	"github.com/m-mizutani/contribmap/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (empty disables error reporting)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("CONTRIBMAP_SENTRY_DSN", "SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("CONTRIBMAP_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client
func (c *Sentry) Configure() error {
	return errutil.InitSentry(c.DSN, c.Env)
}
