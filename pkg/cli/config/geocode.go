package config

import (
	"github.com/m-mizutani/contribmap/pkg/infra/geocode"
	"github.com/urfave/cli/v3"
)

// Geocode holds geocoding API configuration
type Geocode struct {
	APIKey    string
	CacheSize int
}

// Flags returns CLI flags for geocoding configuration
func (c *Geocode) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "geocode-api-key",
			Usage:       "Google Geocoding API key",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("CONTRIBMAP_GEOCODE_API_KEY"),
		},
		&cli.IntFlag{
			Name:        "geocode-cache-size",
			Usage:       "Number of geocoding results kept in memory",
			Value:       1024,
			Destination: &c.CacheSize,
			Sources:     cli.EnvVars("CONTRIBMAP_GEOCODE_CACHE_SIZE"),
		},
	}
}

// Configure creates the geocoding client
func (c *Geocode) Configure() (*geocode.Client, error) {
	return geocode.NewClient(c.APIKey, c.CacheSize)
}
