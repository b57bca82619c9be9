package config

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/infra/postgres"
	"github.com/urfave/cli/v3"
)

// Database holds PostgreSQL configuration
type Database struct {
	DSN     string
	Migrate bool
}

// Flags returns CLI flags for database configuration
func (c *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "database-dsn",
			Usage:       "PostgreSQL connection string",
			Required:    true,
			Destination: &c.DSN,
			Sources:     cli.EnvVars("CONTRIBMAP_DATABASE_DSN", "DATABASE_URL"),
		},
	}
}

// MigrateFlag returns the flag that applies migrations at startup
func (c *Database) MigrateFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:        "database-migrate",
		Usage:       "Apply schema migrations before serving",
		Destination: &c.Migrate,
		Sources:     cli.EnvVars("CONTRIBMAP_DATABASE_MIGRATE"),
	}
}

// Connect opens the database
func (c *Database) Connect(ctx context.Context) (*postgres.Client, error) {
	return postgres.Open(ctx, c.DSN)
}
