package config

import (
	"github.com/m-mizutani/contribmap/pkg/infra/l10n"
	"github.com/urfave/cli/v3"
)

// L10n holds localization configuration
type L10n struct {
	CatalogFile string
}

// Flags returns CLI flags for localization configuration
func (c *L10n) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "l10n-catalog",
			Usage:       "TOML message catalog overriding the built-in English messages",
			Destination: &c.CatalogFile,
			Sources:     cli.EnvVars("CONTRIBMAP_L10N_CATALOG"),
		},
	}
}

// Configure loads the message catalog
func (c *L10n) Configure() (*l10n.Catalog, error) {
	var opts []l10n.Option
	if c.CatalogFile != "" {
		opts = append(opts, l10n.WithFile(c.CatalogFile))
	}
	return l10n.New(opts...)
}
