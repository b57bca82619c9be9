package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/contribmap/pkg/cli/config"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNotifier_Configure(t *testing.T) {
	t.Run("no back ends", func(t *testing.T) {
		cfg := &config.Notifier{}
		n, closer, err := cfg.Configure()
		gt.NoError(t, err)
		defer closer()

		gt.NoError(t, n.Notify(context.Background(), types.EventKindPush, nil))
	})

	t.Run("slack without channel", func(t *testing.T) {
		cfg := &config.Notifier{SlackToken: "xoxb-test"}
		_, _, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("slack enabled", func(t *testing.T) {
		cfg := &config.Notifier{SlackToken: "xoxb-test", SlackChannel: "C1"}
		n, closer, err := cfg.Configure()
		gt.NoError(t, err)
		defer closer()
		gt.NotNil(t, n)
	})
}

func TestL10n_Configure(t *testing.T) {
	t.Run("built-in catalog", func(t *testing.T) {
		catalog, err := (&config.L10n{}).Configure()
		gt.NoError(t, err)
		gt.Value(t, catalog.Render("commit_plural", nil)).Equal("commits")
	})

	t.Run("catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fr.toml")
		gt.NoError(t, os.WriteFile(path, []byte("[messages]\ncommit_plural = \"commits (fr)\"\n"), 0600))

		catalog, err := (&config.L10n{CatalogFile: path}).Configure()
		gt.NoError(t, err)
		gt.Value(t, catalog.Render("commit_plural", nil)).Equal("commits (fr)")
	})
}

func TestGeocode_Configure(t *testing.T) {
	client, err := (&config.Geocode{APIKey: "k", CacheSize: 0}).Configure()
	gt.NoError(t, err)
	gt.NotNil(t, client)
}

func TestSentry_Configure_Disabled(t *testing.T) {
	gt.NoError(t, (&config.Sentry{}).Configure())
}
