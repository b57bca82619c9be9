package cli

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/cli/config"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var dbCfg config.Database

	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database schema migrations",
		Flags: dbCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			db, err := dbCfg.Connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(); err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Database migrations applied")
			return nil
		},
	}
}
