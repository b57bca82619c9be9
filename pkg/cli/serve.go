package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/contribmap/pkg/cli/config"
	controller "github.com/m-mizutani/contribmap/pkg/controller/http"
	"github.com/m-mizutani/contribmap/pkg/infra/popup"
	"github.com/m-mizutani/contribmap/pkg/usecase"
	"github.com/m-mizutani/contribmap/pkg/utils/errutil"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		githubCfg   config.GitHub
		dbCfg       config.Database
		l10nCfg     config.L10n
		geocodeCfg  config.Geocode
		notifierCfg config.Notifier
		sentryCfg   config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, dbCfg.Flags()...)
	flags = append(flags, dbCfg.MigrateFlag())
	flags = append(flags, l10nCfg.Flags()...)
	flags = append(flags, geocodeCfg.Flags()...)
	flags = append(flags, notifierCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting contribmap server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("notifier", notifierCfg),
				slog.Int("popup_limit", serverCfg.PopupLimit),
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer errutil.Flush(2 * time.Second)

			db, err := dbCfg.Connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if dbCfg.Migrate {
				if err := db.Migrate(); err != nil {
					return err
				}
				logger.Info("Database migrations applied")
			}

			catalog, err := l10nCfg.Configure()
			if err != nil {
				return err
			}

			geocoder, err := geocodeCfg.Configure()
			if err != nil {
				return err
			}

			notifier, closeNotifier, err := notifierCfg.Configure()
			if err != nil {
				return err
			}
			defer closeNotifier()

			hub := popup.New(popup.WithCapacity(serverCfg.PopupLimit))

			// Create use cases
			notificationUC := usecase.NewNotification(db, catalog, hub, notifier)
			webhookUC := usecase.NewWebhook(notificationUC)
			eventUC := usecase.NewEvents(
				notificationUC,
				usecase.NewLocation(geocoder, db),
				usecase.NewAccount(db),
			)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
				controller.WithEvents(eventUC, serverCfg.EventToken),
				controller.WithPopups(hub),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
